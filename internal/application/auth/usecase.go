package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/vivienda-api/internal/application/dto"
	"github.com/jhoicas/vivienda-api/internal/domain"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
	"github.com/jhoicas/vivienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emite tokens para usuarios existentes. No hay contraseñas:
// el token lo entrega un operador con acceso al almacenamiento.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// IssueToken busca el usuario por email y firma un JWT con su rol.
// Devuelve ErrUnauthorized si no existe y ErrForbidden si está INACTIVE.
func (uc *AuthUseCase) IssueToken(ctx context.Context, email string) (*dto.TokenResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.NewValidationError("El correo es requerido")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:      token,
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		ExpMinutes: uc.jwtCfg.ExpMinutes,
	}, nil
}
