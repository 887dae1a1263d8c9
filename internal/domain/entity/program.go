package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Estados válidos de Program. No hay restricción de transición entre ellos.
const (
	ProgramStateDraft    = "DRAFT"
	ProgramStateActive   = "ACTIVE"
	ProgramStateDisabled = "DISABLED"
)

// Límites de longitud (en caracteres) de los campos de Program.
const (
	ProgramNameMin        = 3
	ProgramNameMax        = 100
	ProgramDescriptionMin = 10
	ProgramDescriptionMax = 500
)

// Program representa un programa de subsidio de vivienda.
type Program struct {
	ID                string
	Name              string
	Description       string
	ResponsibleEntity string
	Code              string // <año>BS<4 hex>, inmutable una vez asignado
	State             string // DRAFT, ACTIVE, DISABLED
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProgramStates devuelve los estados válidos en orden de ciclo de vida.
func ProgramStates() []string {
	return []string{ProgramStateDraft, ProgramStateActive, ProgramStateDisabled}
}

// IsValidProgramState informa si s es un estado de programa permitido.
func IsValidProgramState(s string) bool {
	switch s {
	case ProgramStateDraft, ProgramStateActive, ProgramStateDisabled:
		return true
	}
	return false
}

// NewProgramCode genera un código con el año de now y 4 dígitos hex aleatorios en mayúscula.
func NewProgramCode(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:4]
	return fmt.Sprintf("%04dBS%s", now.Year(), strings.ToUpper(suffix))
}

// EnsureCode asigna el código solo si aún no tiene uno.
func (p *Program) EnsureCode(now time.Time) {
	if p.Code == "" {
		p.Code = NewProgramCode(now)
	}
}
