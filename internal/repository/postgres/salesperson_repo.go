// internal/repository/postgres/salesperson_repo.go
package postgres

import (
	"context"
	"time"

	"garimoto-service/internal/domain/salesperson"
	xerrors "garimoto-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type SalespersonRepository struct {
	db *pgxpool.Pool
}

func NewSalespersonRepository(db *pgxpool.Pool) *SalespersonRepository {
	return &SalespersonRepository{db: db}
}

// Create inserts a new salesperson
func (r *SalespersonRepository) Create(ctx context.Context, s *salesperson.Salesperson) error {
	if s.ID == "" {
		s.ID = ulid.Make().String()
	}

	query := `
		INSERT INTO salespeople (id, name, email, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, s.ID, s.Name, s.Email, s.UserID).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	return mapError("create salesperson", err)
}

// FindByID retrieves a salesperson by ID
func (r *SalespersonRepository) FindByID(ctx context.Context, id string) (*salesperson.Salesperson, error) {
	query := `
		SELECT id, name, email, user_id, created_at, updated_at
		FROM salespeople WHERE id = $1
	`

	var s salesperson.Salesperson
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.UserID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, mapError("find salesperson", err)
	}
	return &s, nil
}

// FindAll retrieves all salespeople ordered by name
func (r *SalespersonRepository) FindAll(ctx context.Context) ([]*salesperson.Salesperson, error) {
	query := `
		SELECT id, name, email, user_id, created_at, updated_at
		FROM salespeople ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("list salespeople", err)
	}
	defer rows.Close()

	people := []*salesperson.Salesperson{}
	for rows.Next() {
		var s salesperson.Salesperson
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, mapError("scan salesperson", err)
		}
		people = append(people, &s)
	}
	return people, rows.Err()
}

// Update replaces the mutable fields of a salesperson
func (r *SalespersonRepository) Update(ctx context.Context, id string, s *salesperson.Salesperson) error {
	query := `
		UPDATE salespeople SET name = $1, email = $2, user_id = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, s.Name, s.Email, s.UserID, time.Now(), id)
	if err != nil {
		return mapError("update salesperson", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes a salesperson. Vehicles referencing the id keep their weak
// reference; it simply dangles.
func (r *SalespersonRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM salespeople WHERE id = $1`, id)
	if err != nil {
		return mapError("delete salesperson", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ExistsByEmail checks whether an email is already registered
func (r *SalespersonRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM salespeople WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&exists)
	return exists, mapError("check salesperson email", err)
}
