package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vivienda-api/internal/domain"
	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
)

var programCols = []string{"id", "name", "description", "responsible_entity", "code", "state", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestProgramRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewProgramRepository(mock)
	now := time.Now().UTC()
	p := &entity.Program{
		ID: uuid.NewString(), Name: "Mi Casa Ya", Description: "Subsidio de vivienda",
		ResponsibleEntity: "Minvivienda", Code: "2025BS0A1B", State: entity.ProgramStateDraft,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec(`INSERT INTO programs`).
		WithArgs(p.ID, p.Name, p.Description, p.ResponsibleEntity, p.Code, p.State, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, repo.Create(context.Background(), p))

	mock.ExpectExec(`INSERT INTO programs`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_programs_code"})
	assert.ErrorIs(t, repo.Create(context.Background(), p), domain.ErrDuplicateCode)
}

func TestProgramRepo_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewProgramRepository(mock)
	id := uuid.NewString()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM programs WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(programCols).
			AddRow(id, "Mi Casa Ya", "Subsidio de vivienda", "Minvivienda", "2025BS0A1B", "ACTIVE", now, now))

	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "2025BS0A1B", p.Code)
	assert.Equal(t, "ACTIVE", p.State)

	mock.ExpectQuery(`SELECT .+ FROM programs WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	p, err = repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, p)

	// Un ID que no es UUID no llega a la base.
	p, err = repo.GetByID(context.Background(), "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProgramRepo_ListConFiltro(t *testing.T) {
	mock := newMock(t)
	repo := NewProgramRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`FROM programs WHERE state = \$1 ORDER BY created_at DESC`).
		WithArgs("DRAFT").
		WillReturnRows(pgxmock.NewRows(programCols).
			AddRow(uuid.NewString(), "A", "Descripción A", "E", "2025BS0001", "DRAFT", now, now).
			AddRow(uuid.NewString(), "B", "Descripción B", "E", "2025BS0002", "DRAFT", now, now))

	list, err := repo.List(context.Background(), "DRAFT")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	mock.ExpectQuery(`FROM programs ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows(programCols))
	list, err = repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestProgramRepo_UpdateSoloCamposPresentes(t *testing.T) {
	mock := newMock(t)
	repo := NewProgramRepository(mock)
	id := uuid.NewString()
	now := time.Now()
	name, state := "Nuevo nombre", "DISABLED"

	mock.ExpectQuery(`UPDATE programs SET name = \$2, state = \$3, updated_at = NOW\(\) WHERE id = \$1 RETURNING`).
		WithArgs(id, name, state).
		WillReturnRows(pgxmock.NewRows(programCols).
			AddRow(id, name, "Descripción", "Entidad", "2025BS0001", state, now, now))

	p, err := repo.Update(context.Background(), id, repository.ProgramPatch{Name: &name, State: &state})
	require.NoError(t, err)
	assert.Equal(t, name, p.Name)
	assert.Equal(t, state, p.State)

	mock.ExpectQuery(`UPDATE programs SET updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	p, err = repo.Update(context.Background(), id, repository.ProgramPatch{})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProgramRepo_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewProgramRepository(mock)
	id := uuid.NewString()

	mock.ExpectExec(`DELETE FROM programs WHERE id = \$1`).WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	ok, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(`DELETE FROM programs WHERE id = \$1`).WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	ok, err = repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectExec(`DELETE FROM programs`).WithArgs(id).
		WillReturnError(errors.New("conexión perdida"))
	_, err = repo.Delete(context.Background(), id)
	assert.Error(t, err)
}

func TestProgramRepo_Stats(t *testing.T) {
	mock := newMock(t)
	repo := NewProgramRepository(mock)

	mock.ExpectQuery(`SELECT state, COUNT\(\*\) FROM programs GROUP BY state`).
		WillReturnRows(pgxmock.NewRows([]string{"state", "count"}).
			AddRow("DRAFT", 3).
			AddRow("ACTIVE", 2))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, map[string]int{"DRAFT": 3, "ACTIVE": 2, "DISABLED": 0}, stats.ByState)
}
