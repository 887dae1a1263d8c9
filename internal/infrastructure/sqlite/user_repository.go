package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, first_name, last_name, document_number, email, role, state, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepository construye el adaptador SQLite para usuarios.
func NewUserRepository(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un usuario; los UNIQUE de documento y correo se traducen a errores de dominio.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.DocumentNumber, u.Email, u.Role, u.State,
		formatTime(u.CreatedAt), formatTime(u.UpdatedAt),
	)
	if err != nil {
		if dup := uniqueViolationError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByDocument obtiene un usuario por número de documento.
func (r *UserRepo) GetByDocument(ctx context.Context, documentNumber string) (*entity.User, error) {
	return r.getOne(ctx, "get user by document", `SELECT `+userColumns+` FROM users WHERE document_number = ?`, documentNumber)
}

// GetByEmail obtiene un usuario por correo.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// List lista todos los usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
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

// Search filtra en memoria con plegado Unicode sobre nombre, apellidos, correo y documento.
func (r *UserRepo) Search(ctx context.Context, term string) ([]*entity.User, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(all, func(u *entity.User, _ int) bool {
		return containsFold(u.FirstName, term) ||
			containsFold(u.LastName, term) ||
			containsFold(u.Email, term) ||
			containsFold(u.DocumentNumber, term)
	}), nil
}

// Update escribe solo las columnas del patch más updated_at. (nil, nil) si no existe.
func (r *UserRepo) Update(ctx context.Context, id string, patch repository.UserPatch) (*entity.User, error) {
	var set setClause
	set.addIfSet("first_name", patch.FirstName)
	set.addIfSet("last_name", patch.LastName)
	set.addIfSet("document_number", patch.DocumentNumber)
	set.addIfSet("email", patch.Email)
	set.addIfSet("role", patch.Role)
	set.addIfSet("state", patch.State)
	set.parts = append(set.parts, "updated_at = ?")
	set.args = append(set.args, formatTime(time.Now()), id)

	query := `UPDATE users SET ` + set.String() + ` WHERE id = ? RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if dup := uniqueViolationError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete elimina un usuario. Informa si existía.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return n > 0, nil
}

// Stats cuenta usuarios por rol y activos.
func (r *UserRepo) Stats(ctx context.Context) (repository.UserStats, error) {
	stats := repository.NewUserStats()
	rows, err := r.db.QueryContext(ctx, `
		SELECT role, COUNT(*), COALESCE(SUM(CASE WHEN state = 'ACTIVE' THEN 1 ELSE 0 END), 0)
		FROM users GROUP BY role`)
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
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row scanner) (*entity.User, error) {
	var (
		u                entity.User
		created, updated string
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.DocumentNumber, &u.Email, &u.Role, &u.State, &created, &updated)
	if err != nil {
		return nil, err
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}
	return &u, nil
}
