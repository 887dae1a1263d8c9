package sqlite

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/vivienda-api/internal/domain"
)

// Las fechas se guardan como TEXT de ancho fijo en UTC para que ORDER BY sea cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// uniqueViolationError traduce "UNIQUE constraint failed: tabla.columna" al error de dominio.
// Devuelve nil si err no es una violación de UNIQUE.
func uniqueViolationError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *sqlite.Error
	isUnique := errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	msg := err.Error()
	if !isUnique && !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	switch {
	case strings.Contains(msg, "programs.code"):
		return domain.ErrDuplicateCode
	case strings.Contains(msg, "users.document_number"):
		return domain.ErrDuplicateDocument
	case strings.Contains(msg, "users.email"):
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicate
}

// containsFold compara sin distinguir mayúsculas con reglas Unicode (SQLite LIKE solo pliega ASCII).
func containsFold(haystack, needle string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

// setClause acumula "col = ?" para UPDATE con columnas opcionales.
type setClause struct {
	parts []string
	args  []any
}

func (s *setClause) addIfSet(column string, value *string) {
	if value != nil {
		s.parts = append(s.parts, column+" = ?")
		s.args = append(s.args, *value)
	}
}

func (s *setClause) String() string {
	return strings.Join(s.parts, ", ")
}
