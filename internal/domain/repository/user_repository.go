package repository

import (
	"context"

	"github.com/jhoicas/vivienda-api/internal/domain/entity"
)

// UserPatch campos a modificar en un Update; nil = no se toca la columna.
type UserPatch struct {
	FirstName      *string
	LastName       *string
	DocumentNumber *string
	Email          *string
	Role           *string
	State          *string
}

// IsEmpty informa si el patch no modifica ningún campo.
func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.DocumentNumber == nil &&
		p.Email == nil && p.Role == nil && p.State == nil
}

// UserStats conteos agregados de usuarios.
type UserStats struct {
	Total  int
	Active int
	ByRole map[string]int // siempre incluye los tres roles
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByDocument(ctx context.Context, documentNumber string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// Search busca sin distinguir mayúsculas en nombre, apellidos, correo y documento.
	Search(ctx context.Context, term string) ([]*entity.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (UserStats, error)
}

// NewUserStats devuelve estadísticas con todos los roles en cero.
func NewUserStats() UserStats {
	byRole := make(map[string]int, 3)
	for _, r := range entity.UserRoles() {
		byRole[r] = 0
	}
	return UserStats{ByRole: byRole}
}
