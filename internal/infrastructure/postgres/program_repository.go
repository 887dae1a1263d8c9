package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
)

var _ repository.ProgramRepository = (*ProgramRepo)(nil)

const programColumns = `id, name, description, responsible_entity, code, state, created_at, updated_at`

// ProgramRepo implementación del puerto ProgramRepository sobre PostgreSQL.
type ProgramRepo struct {
	q Querier
}

// NewProgramRepository construye el adaptador de persistencia para programas. Pasar pool o tx (Querier).
func NewProgramRepository(q Querier) *ProgramRepo {
	return &ProgramRepo{q: q}
}

// Create persiste un nuevo programa.
func (r *ProgramRepo) Create(ctx context.Context, p *entity.Program) error {
	query := `
		INSERT INTO programs (` + programColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.ResponsibleEntity, p.Code, p.State, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if dup := uniqueViolationError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

// GetByID obtiene un programa por ID.
func (r *ProgramRepo) GetByID(ctx context.Context, id string) (*entity.Program, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + programColumns + ` FROM programs WHERE id = $1`
	return r.getOne(ctx, "get program", query, id)
}

// GetByCode obtiene un programa por su código.
func (r *ProgramRepo) GetByCode(ctx context.Context, code string) (*entity.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE code = $1`
	return r.getOne(ctx, "get program by code", query, code)
}

// List lista programas, más recientes primero. state vacío = todos.
func (r *ProgramRepo) List(ctx context.Context, state string) ([]*entity.Program, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if state != "" {
		rows, err = r.q.Query(ctx, `SELECT `+programColumns+` FROM programs WHERE state = $1 ORDER BY created_at DESC`, state)
	} else {
		rows, err = r.q.Query(ctx, `SELECT `+programColumns+` FROM programs ORDER BY created_at DESC`)
	}
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

// Update escribe solo las columnas presentes en el patch y actualiza updated_at.
// Devuelve (nil, nil) si el programa ya no existe.
func (r *ProgramRepo) Update(ctx context.Context, id string, patch repository.ProgramPatch) (*entity.Program, error) {
	if !isUUID(id) {
		return nil, nil
	}
	set := newSetClause(id)
	set.addIfSet("name", patch.Name)
	set.addIfSet("description", patch.Description)
	set.addIfSet("responsible_entity", patch.ResponsibleEntity)
	set.addIfSet("state", patch.State)
	query := `UPDATE programs SET ` + set.String()
	if len(set.parts) > 0 {
		query += `, `
	}
	query += `updated_at = NOW() WHERE id = $1 RETURNING ` + programColumns

	p, err := scanProgram(r.q.QueryRow(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update program: %w", err)
	}
	return p, nil
}

// Delete elimina un programa por ID. Informa si se borró alguna fila.
func (r *ProgramRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete program: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Stats cuenta programas agrupados por estado.
func (r *ProgramRepo) Stats(ctx context.Context) (repository.ProgramStats, error) {
	stats := repository.NewProgramStats()
	rows, err := r.q.Query(ctx, `SELECT state, COUNT(*) FROM programs GROUP BY state`)
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
	p, err := scanProgram(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProgram(row pgx.Row) (*entity.Program, error) {
	var p entity.Program
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.ResponsibleEntity, &p.Code, &p.State, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
