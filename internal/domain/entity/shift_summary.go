package entity

import "time"

// ShiftSummary es la novedad de cambio de turno de un área.
// No tiene flujo de estados: solo propiedad (dueño o admin pueden modificarla).
type ShiftSummary struct {
	ID        string
	Fecha     string // "YYYY-MM-DD"
	Area      string
	Ubicacion string
	Novedades string
	Fotos     []Foto
	OwnerID   string
	OwnerName string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy implementa access.Owned.
func (s *ShiftSummary) OwnedBy() string { return s.OwnerID }
