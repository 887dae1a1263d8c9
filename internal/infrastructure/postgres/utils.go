package postgres

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/vivienda-api/internal/domain"
)

// Nombres de constraints UNIQUE definidos en migrations/000001_init.up.sql.
const (
	constraintProgramCode  = "uq_programs_code"
	constraintUserDocument = "uq_users_document_number"
	constraintUserEmail    = "uq_users_email"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// uniqueViolationError traduce la violación al error de dominio según el constraint.
// Devuelve nil si err no es una violación de UNIQUE conocida.
func uniqueViolationError(err error) error {
	if err == nil || !isUniqueViolation(err) {
		return nil
	}
	var constraint string
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		constraint = pgErr.ConstraintName
	}
	switch constraint {
	case constraintProgramCode:
		return domain.ErrDuplicateCode
	case constraintUserDocument:
		return domain.ErrDuplicateDocument
	case constraintUserEmail:
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicate
}

// setClause acumula "col = $n" para UPDATE con columnas opcionales.
type setClause struct {
	parts []string
	args  []any
}

func newSetClause(firstArgs ...any) *setClause {
	return &setClause{args: firstArgs}
}

func (s *setClause) add(column string, value any) {
	s.args = append(s.args, value)
	s.parts = append(s.parts, column+" = $"+strconv.Itoa(len(s.args)))
}

func (s *setClause) addIfSet(column string, value *string) {
	if value != nil {
		s.add(column, *value)
	}
}

func (s *setClause) String() string {
	return strings.Join(s.parts, ", ")
}

// isUUID evita enviar a PostgreSQL IDs que fallarían con 22P02; se tratan como inexistentes.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// escapeLike escapa los comodines de LIKE para buscar el término literal.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
