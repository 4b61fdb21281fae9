package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrUsernameTaken   = errors.New("nombre de usuario en uso")
	ErrDuplicateFolio  = errors.New("folio duplicado")
	ErrFolioExhausted  = errors.New("no se pudo generar folio único")
	ErrNothingToUpdate = errors.New("nada para actualizar")
)
