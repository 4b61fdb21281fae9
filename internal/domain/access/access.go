// Package access centraliza la autorización por propiedad y rol.
// Reemplaza los chequeos isOwner || isAdmin repartidos por cada ruta con
// un único punto de decisión usado por reportes, novedades y usuarios.
package access

import "github.com/jcamargo/desviaciones-api/internal/domain/entity"

// Actor es la identidad autenticada que ejecuta una operación.
// Viene del token JWT; el dominio la recibe ya verificada.
type Actor struct {
	ID       string
	Username string
	FullName string
	Role     string
}

// IsAdmin indica si el actor tiene rol de administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// DisplayName nombre a estampar como OwnerName en recursos nuevos.
func (a Actor) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}

// Owned es cualquier recurso con un dueño exclusivo.
type Owned interface {
	OwnedBy() string
}

// CanAccess decide si el actor puede leer/modificar/eliminar el recurso:
// el dueño siempre puede; el admin puede sobre cualquier recurso.
func CanAccess(actor Actor, res Owned) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.ID != "" && actor.ID == res.OwnedBy()
}
