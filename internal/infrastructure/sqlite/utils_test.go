package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vivienda-api/internal/domain"
)

func TestTimeLayout_OrdenLexicograficoCronologico(t *testing.T) {
	a := time.Date(2025, 1, 1, 10, 0, 5, 100_000_000, time.UTC)
	b := time.Date(2025, 1, 1, 10, 0, 5, 120_000_000, time.UTC)
	assert.Less(t, formatTime(a), formatTime(b))

	parsed, err := parseTime(formatTime(b))
	require.NoError(t, err)
	assert.True(t, b.Equal(parsed))
}

func TestUniqueViolationError(t *testing.T) {
	assert.Nil(t, uniqueViolationError(nil))
	assert.Nil(t, uniqueViolationError(errors.New("disk I/O error")))
	assert.ErrorIs(t, uniqueViolationError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")), domain.ErrDuplicateEmail)
	assert.ErrorIs(t, uniqueViolationError(errors.New("UNIQUE constraint failed: programs.code")), domain.ErrDuplicateCode)
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("Muñoz", "MUÑ"))
	assert.True(t, containsFold("Straße", "STRASSE"))
	assert.False(t, containsFold("Gómez", "gomez"))
}
