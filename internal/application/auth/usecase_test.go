package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vivienda-api/internal/application/auth"
	"github.com/jhoicas/vivienda-api/internal/application/dto"
	"github.com/jhoicas/vivienda-api/internal/application/usecase"
	"github.com/jhoicas/vivienda-api/internal/domain"
	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/vivienda-api/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, *usecase.UserUseCase) {
	t.Helper()
	db, err := sqlite.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := sqlite.NewUserRepository(db)
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "vivienda-api"}),
		usecase.NewUserUseCase(repo)
}

func TestIssueToken_UsuarioActivo(t *testing.T) {
	ctx := context.Background()
	uc, users := setup(t)
	u, err := users.Create(ctx, dto.CreateUserRequest{
		FirstName: "Ana", LastName: "Gómez", DocumentNumber: "1020304050",
		Email: "ana@vivienda.gov.co", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.IssueToken(ctx, "  ana@vivienda.gov.co ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, out.UserID)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.Equal(t, 30, out.ExpMinutes)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ana@vivienda.gov.co", claims.Email)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, "vivienda-api", claims.Issuer)
}

func TestIssueToken_Errores(t *testing.T) {
	ctx := context.Background()
	uc, users := setup(t)
	_, err := users.Create(ctx, dto.CreateUserRequest{
		FirstName: "Luis", LastName: "Pérez", DocumentNumber: "99887766",
		Email: "luis@vivienda.gov.co", Role: entity.RoleStaff, State: entity.UserStateInactive,
	})
	require.NoError(t, err)

	_, err = uc.IssueToken(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.IssueToken(ctx, "nadie@vivienda.gov.co")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.IssueToken(ctx, "luis@vivienda.gov.co")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
