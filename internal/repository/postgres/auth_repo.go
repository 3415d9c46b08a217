// internal/repository/postgres/auth_repo.go
package postgres

import (
	"context"
	"time"

	"garimoto-service/internal/domain/auth"
	xerrors "garimoto-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type AuthRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{db: db}
}

// CreateAdmin inserts a new console identity
func (r *AuthRepository) CreateAdmin(ctx context.Context, a *auth.Admin) error {
	query := `
		INSERT INTO admins (email, full_name, password_hash, roles, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.Email, a.FullName, a.PasswordHash, pq.Array(a.Roles), a.IsActive,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapError("create admin", err)
}

// FindAdminByEmail retrieves an admin by email
func (r *AuthRepository) FindAdminByEmail(ctx context.Context, email string) (*auth.Admin, error) {
	query := `
		SELECT id, email, full_name, password_hash, roles, is_active, created_at, updated_at
		FROM admins WHERE LOWER(email) = LOWER($1)
	`

	var a auth.Admin
	err := r.db.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.FullName, &a.PasswordHash,
		pq.Array(&a.Roles), &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("find admin by email", err)
	}
	return &a, nil
}

// FindAdminByID retrieves an admin by ID
func (r *AuthRepository) FindAdminByID(ctx context.Context, id int64) (*auth.Admin, error) {
	query := `
		SELECT id, email, full_name, password_hash, roles, is_active, created_at, updated_at
		FROM admins WHERE id = $1
	`

	var a auth.Admin
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Email, &a.FullName, &a.PasswordHash,
		pq.Array(&a.Roles), &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("find admin by id", err)
	}
	return &a, nil
}

// UpdatePassword replaces an admin's password hash
func (r *AuthRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE admins SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hash, time.Now(), id,
	)
	if err != nil {
		return mapError("update password", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ExistsAdminByEmail checks whether any admin uses the email
func (r *AuthRepository) ExistsAdminByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admins WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&exists)
	return exists, mapError("check admin email", err)
}
