package entity

import "fmt"

// Status es el estado del flujo de tratamiento de un reporte.
type Status string

const (
	StatusPendiente   Status = "pendiente"
	StatusTratamiento Status = "tratamiento"
	StatusConcluido   Status = "concluido"
)

// Statuses lista cerrada de estados.
var Statuses = []Status{StatusPendiente, StatusTratamiento, StatusConcluido}

// Valid indica si s es uno de los tres estados conocidos.
func (s Status) Valid() bool {
	switch s {
	case StatusPendiente, StatusTratamiento, StatusConcluido:
		return true
	}
	return false
}

// transiciones tabla explícita de transiciones permitidas (from -> to).
// Un estado nunca retrocede: concluido es terminal.
var transiciones = map[Status]map[Status]bool{
	StatusPendiente:   {StatusTratamiento: true, StatusConcluido: true},
	StatusTratamiento: {StatusConcluido: true},
	StatusConcluido:   {},
}

// CanTransition indica si la transición from -> to está permitida.
// La transición al mismo estado se considera permitida (no-op).
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	return transiciones[from][to]
}

// Transition valida la transición; retorna *TransitionError si no está permitida.
func Transition(from, to Status) error {
	if !to.Valid() {
		return &TransitionError{From: from, To: to}
	}
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// TransitionError nombra la transición de estado rechazada.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida: %q a %q", e.From, e.To)
}
