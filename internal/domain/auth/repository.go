// internal/domain/auth/repository.go
package auth

import "context"

type Repository interface {
	CreateAdmin(ctx context.Context, a *Admin) error
	FindAdminByEmail(ctx context.Context, email string) (*Admin, error)
	FindAdminByID(ctx context.Context, id int64) (*Admin, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	ExistsAdminByEmail(ctx context.Context, email string) (bool, error)
}
