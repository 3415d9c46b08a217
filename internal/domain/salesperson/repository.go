// internal/domain/salesperson/repository.go
package salesperson

import "context"

type Repository interface {
	Create(ctx context.Context, s *Salesperson) error
	FindByID(ctx context.Context, id string) (*Salesperson, error)
	FindAll(ctx context.Context) ([]*Salesperson, error)
	Update(ctx context.Context, id string, s *Salesperson) error
	Delete(ctx context.Context, id string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
