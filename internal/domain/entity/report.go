package entity

import "time"

// Severidades válidas para un reporte de desviación.
const (
	SeveridadBaja    = "Baja"
	SeveridadMedia   = "Media"
	SeveridadAlta    = "Alta"
	SeveridadCritica = "Crítica"
)

// Severidades lista cerrada, en orden de gravedad.
var Severidades = []string{SeveridadBaja, SeveridadMedia, SeveridadAlta, SeveridadCritica}

// ValidSeveridad indica si s pertenece al conjunto de severidades.
func ValidSeveridad(s string) bool {
	for _, v := range Severidades {
		if v == s {
			return true
		}
	}
	return false
}

// Foto es una foto adjunta con nota; el orden del slice es el orden de despliegue.
type Foto struct {
	URL  string `json:"url"`
	Nota string `json:"nota"`
}

// Report representa un reporte de desviación.
// Folio y OwnerID son inmutables una vez asignados.
type Report struct {
	ID          string
	Folio       string
	Fecha       string // fecha de negocio "YYYY-MM-DD", no la de creación
	Hora        string // "HH:mm"
	Reportante  string
	Area        string
	Ubicacion   string
	Tipo        string
	Severidad   string
	Descripcion string
	Causas      string
	Acciones    string
	Responsable string
	Compromiso  string
	Tags        string
	Fotos       []Foto
	Status      Status
	OwnerID     string
	OwnerName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy implementa access.Owned.
func (r *Report) OwnedBy() string { return r.OwnerID }
