package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, first_name, last_name, document_number, email, role, state, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Las violaciones de UNIQUE se traducen a errores de dominio.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.DocumentNumber, u.Email, u.Role, u.State, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if dup := uniqueViolationError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByDocument obtiene un usuario por número de documento.
func (r *UserRepo) GetByDocument(ctx context.Context, documentNumber string) (*entity.User, error) {
	return r.getOne(ctx, "get user by document", `SELECT `+userColumns+` FROM users WHERE document_number = $1`, documentNumber)
}

// GetByEmail obtiene un usuario por correo.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

// List lista todos los usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collectUsers(rows)
}

// Search busca el término (ILIKE) en nombre, apellidos, correo y documento.
func (r *UserRepo) Search(ctx context.Context, term string) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR document_number ILIKE $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, "%"+escapeLike(term)+"%")
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return collectUsers(rows)
}

// Update escribe solo las columnas presentes en el patch y actualiza updated_at.
// Devuelve (nil, nil) si el usuario ya no existe.
func (r *UserRepo) Update(ctx context.Context, id string, patch repository.UserPatch) (*entity.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	set := newSetClause(id)
	set.addIfSet("first_name", patch.FirstName)
	set.addIfSet("last_name", patch.LastName)
	set.addIfSet("document_number", patch.DocumentNumber)
	set.addIfSet("email", patch.Email)
	set.addIfSet("role", patch.Role)
	set.addIfSet("state", patch.State)
	query := `UPDATE users SET ` + set.String()
	if len(set.parts) > 0 {
		query += `, `
	}
	query += `updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns

	u, err := scanUser(r.q.QueryRow(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if dup := uniqueViolationError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete elimina un usuario por ID. Informa si se borró alguna fila.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Stats cuenta usuarios por rol y activos en una sola consulta.
func (r *UserRepo) Stats(ctx context.Context) (repository.UserStats, error) {
	stats := repository.NewUserStats()
	query := `
		SELECT role, COUNT(*), COUNT(*) FILTER (WHERE state = 'ACTIVE')
		FROM users GROUP BY role`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return stats, fmt.Errorf("user stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			role          string
			count, active int
		)
		if err := rows.Scan(&role, &count, &active); err != nil {
			return stats, fmt.Errorf("scan user stats: %w", err)
		}
		stats.ByRole[role] = count
		stats.Total += count
		stats.Active += active
	}
	return stats, rows.Err()
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.DocumentNumber, &u.Email, &u.Role, &u.State,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
