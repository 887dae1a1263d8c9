package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vivienda-api/internal/domain"
	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleProgram(code string) *entity.Program {
	now := time.Now().UTC()
	return &entity.Program{
		ID:                uuid.NewString(),
		Name:              "Mi Casa Ya",
		Description:       "Subsidio para vivienda nueva",
		ResponsibleEntity: "Ministerio de Vivienda",
		Code:              code,
		State:             entity.ProgramStateDraft,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func sampleUser(doc, email string) *entity.User {
	now := time.Now().UTC()
	return &entity.User{
		ID:             uuid.NewString(),
		FirstName:      "Ana",
		LastName:       "Gómez",
		DocumentNumber: doc,
		Email:          email,
		Role:           entity.RoleStaff,
		State:          entity.UserStateActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestMigrate_Idempotente(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
}

func TestProgramRepo_RoundTrip(t *testing.T) {
	repo := NewProgramRepository(openTestDB(t))
	ctx := context.Background()

	p := sampleProgram("2025BSAAAA")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Code, got.Code)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

	byCode, err := repo.GetByCode(ctx, "2025BSAAAA")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byCode.ID)

	missing, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProgramRepo_CodigoDuplicado(t *testing.T) {
	repo := NewProgramRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleProgram("2025BSBBBB")))
	err := repo.Create(ctx, sampleProgram("2025BSBBBB"))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestProgramRepo_UpdateYDelete(t *testing.T) {
	repo := NewProgramRepository(openTestDB(t))
	ctx := context.Background()

	p := sampleProgram("2025BSCCCC")
	require.NoError(t, repo.Create(ctx, p))

	state := entity.ProgramStateDisabled
	updated, err := repo.Update(ctx, p.ID, repository.ProgramPatch{State: &state})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, state, updated.State)
	assert.Equal(t, p.Name, updated.Name)
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))

	none, err := repo.Update(ctx, uuid.NewString(), repository.ProgramPatch{State: &state})
	require.NoError(t, err)
	assert.Nil(t, none)

	deleted, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserRepo_UniqueYStats(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleUser("12345", "ana@example.com")))
	assert.ErrorIs(t, repo.Create(ctx, sampleUser("12345", "otra@example.com")), domain.ErrDuplicateDocument)
	assert.ErrorIs(t, repo.Create(ctx, sampleUser("67890", "ana@example.com")), domain.ErrDuplicateEmail)

	other := sampleUser("67890", "luis@example.com")
	other.Role = entity.RoleTechnician
	other.State = entity.UserStateInactive
	require.NoError(t, repo.Create(ctx, other))

	doc := "12345"
	_, err := repo.Update(ctx, other.ID, repository.UserPatch{DocumentNumber: &doc})
	assert.ErrorIs(t, err, domain.ErrDuplicateDocument)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, map[string]int{"ADMIN": 0, "STAFF": 1, "TECHNICIAN": 1}, stats.ByRole)
}

func TestUserRepo_SearchUnicode(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	u := sampleUser("12345", "ana@example.com")
	u.LastName = "Núñez"
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Create(ctx, sampleUser("67890", "luis@example.com")))

	found, err := repo.Search(ctx, "NÚÑ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, u.ID, found[0].ID)

	found, err = repo.Search(ctx, "EXAMPLE")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestMigrator_DownYVersion(t *testing.T) {
	db := openTestDB(t)
	mg, err := NewMigrator(db)
	require.NoError(t, err)

	v, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	require.NoError(t, mg.Down())
	v, _, err = mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)

	_, err = db.Exec(`SELECT 1 FROM programs`)
	assert.Error(t, err, "la tabla debe haberse eliminado")

	require.NoError(t, mg.Up())
	_, err = db.Exec(`SELECT 1 FROM programs`)
	assert.NoError(t, err)
}
