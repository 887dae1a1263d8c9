package repository

import (
	"context"

	"github.com/jhoicas/vivienda-api/internal/domain/entity"
)

// ProgramPatch campos a modificar en un Update; nil = no se toca la columna.
type ProgramPatch struct {
	Name              *string
	Description       *string
	ResponsibleEntity *string
	State             *string
}

// IsEmpty informa si el patch no modifica ningún campo.
func (p ProgramPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ResponsibleEntity == nil && p.State == nil
}

// ProgramStats conteos agregados de programas.
type ProgramStats struct {
	Total   int
	ByState map[string]int // siempre incluye los tres estados
}

// ProgramRepository define el puerto de persistencia para Program (DIP).
// GetByID y GetByCode devuelven (nil, nil) si no existe.
type ProgramRepository interface {
	Create(ctx context.Context, program *entity.Program) error
	GetByID(ctx context.Context, id string) (*entity.Program, error)
	GetByCode(ctx context.Context, code string) (*entity.Program, error)
	List(ctx context.Context, state string) ([]*entity.Program, error)
	Update(ctx context.Context, id string, patch ProgramPatch) (*entity.Program, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (ProgramStats, error)
}

// NewProgramStats devuelve estadísticas con todos los estados en cero.
func NewProgramStats() ProgramStats {
	byState := make(map[string]int, 3)
	for _, s := range entity.ProgramStates() {
		byState[s] = 0
	}
	return ProgramStats{ByState: byState}
}
