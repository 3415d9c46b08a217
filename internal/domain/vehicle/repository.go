// internal/domain/vehicle/repository.go
package vehicle

import "context"

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	FindAll(ctx context.Context) ([]*Vehicle, error)
	FindByStatus(ctx context.Context, status Status) ([]*Vehicle, error)
	Update(ctx context.Context, id string, v *Vehicle) error
	Delete(ctx context.Context, id string) error
}
