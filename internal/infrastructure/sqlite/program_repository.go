package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
)

var _ repository.ProgramRepository = (*ProgramRepo)(nil)

const programColumns = `id, name, description, responsible_entity, code, state, created_at, updated_at`

// ProgramRepo implementación del puerto ProgramRepository sobre SQLite.
type ProgramRepo struct {
	db *sql.DB
}

// NewProgramRepository construye el adaptador SQLite para programas.
func NewProgramRepository(db *sql.DB) *ProgramRepo {
	return &ProgramRepo{db: db}
}

// Create persiste un nuevo programa.
func (r *ProgramRepo) Create(ctx context.Context, p *entity.Program) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO programs (`+programColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.ResponsibleEntity, p.Code, p.State,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if dup := uniqueViolationError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

// GetByID obtiene un programa por ID; (nil, nil) si no existe.
func (r *ProgramRepo) GetByID(ctx context.Context, id string) (*entity.Program, error) {
	return r.getOne(ctx, "get program", `SELECT `+programColumns+` FROM programs WHERE id = ?`, id)
}

// GetByCode obtiene un programa por código; (nil, nil) si no existe.
func (r *ProgramRepo) GetByCode(ctx context.Context, code string) (*entity.Program, error) {
	return r.getOne(ctx, "get program by code", `SELECT `+programColumns+` FROM programs WHERE code = ?`, code)
}

// List lista programas, más recientes primero. state vacío = todos.
func (r *ProgramRepo) List(ctx context.Context, state string) ([]*entity.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs`
	var args []any
	if state != "" {
		query += ` WHERE state = ?`
		args = append(args, state)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Program, 0)
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update escribe solo las columnas del patch más updated_at. (nil, nil) si no existe.
func (r *ProgramRepo) Update(ctx context.Context, id string, patch repository.ProgramPatch) (*entity.Program, error) {
	var set setClause
	set.addIfSet("name", patch.Name)
	set.addIfSet("description", patch.Description)
	set.addIfSet("responsible_entity", patch.ResponsibleEntity)
	set.addIfSet("state", patch.State)
	set.parts = append(set.parts, "updated_at = ?")
	set.args = append(set.args, formatTime(time.Now()), id)

	query := `UPDATE programs SET ` + set.String() + ` WHERE id = ? RETURNING ` + programColumns
	p, err := scanProgram(r.db.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if dup := uniqueViolationError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("update program: %w", err)
	}
	return p, nil
}

// Delete elimina un programa. Informa si existía.
func (r *ProgramRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete program: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete program: %w", err)
	}
	return n > 0, nil
}

// Stats cuenta programas por estado.
func (r *ProgramRepo) Stats(ctx context.Context) (repository.ProgramStats, error) {
	stats := repository.NewProgramStats()
	rows, err := r.db.QueryContext(ctx, `SELECT state, COUNT(*) FROM programs GROUP BY state`)
	if err != nil {
		return stats, fmt.Errorf("program stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			state string
			count int
		)
		if err := rows.Scan(&state, &count); err != nil {
			return stats, fmt.Errorf("scan program stats: %w", err)
		}
		stats.ByState[state] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

func (r *ProgramRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Program, error) {
	p, err := scanProgram(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgram(row scanner) (*entity.Program, error) {
	var (
		p                entity.Program
		created, updated string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.ResponsibleEntity, &p.Code, &p.State, &created, &updated)
	if err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}
	return &p, nil
}
