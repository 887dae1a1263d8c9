package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vivienda-api/internal/domain"
	"github.com/jhoicas/vivienda-api/internal/infrastructure/sqlite"
)

func newStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// validationMessages extrae los mensajes de un *domain.ValidationError o falla el test.
func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr), "se esperaba ValidationError, se obtuvo %v", err)
	return vErr.Messages
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	var nfErr *domain.NotFoundError
	require.True(t, errors.As(err, &nfErr), "se esperaba NotFoundError, se obtuvo %v", err)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
