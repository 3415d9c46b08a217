// internal/service/salesperson/salesperson.go
package salesperson

import (
	"context"
	"fmt"
	"strings"

	"garimoto-service/internal/domain/salesperson"
	xerrors "garimoto-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type SalespersonService struct {
	repo   salesperson.Repository
	logger *zap.Logger
}

func NewSalespersonService(repo salesperson.Repository, logger *zap.Logger) *SalespersonService {
	return &SalespersonService{repo: repo, logger: logger}
}

// CreateSalesperson registers a new staff member. Emails are unique,
// case-insensitively.
func (s *SalespersonService) CreateSalesperson(ctx context.Context, req *salesperson.CreateSalespersonRequest) (*salesperson.Salesperson, error) {
	email := strings.TrimSpace(req.Email)
	if !salesperson.ValidEmail(email) {
		return nil, fmt.Errorf("invalid email address: %w", xerrors.ErrValidation)
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check salesperson email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email %s is already registered: %w", email, xerrors.ErrConflict)
	}

	p := &salesperson.Salesperson{
		Name:   strings.TrimSpace(req.Name),
		Email:  email,
		UserID: req.UserID,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create salesperson", zap.Error(err))
		return nil, err
	}

	s.logger.Info("salesperson created",
		zap.String("salesperson_id", p.ID),
		zap.String("email", p.Email),
	)
	return p, nil
}

// GetSalesperson retrieves a salesperson by ID
func (s *SalespersonService) GetSalesperson(ctx context.Context, id string) (*salesperson.Salesperson, error) {
	return s.repo.FindByID(ctx, id)
}

// ListSalespeople returns all staff ordered by name
func (s *SalespersonService) ListSalespeople(ctx context.Context) ([]*salesperson.Salesperson, error) {
	return s.repo.FindAll(ctx)
}

// UpdateSalesperson merges the supplied fields into the stored record.
func (s *SalespersonService) UpdateSalesperson(ctx context.Context, id string, req *salesperson.UpdateSalespersonRequest) (*salesperson.Salesperson, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !salesperson.ValidEmail(email) {
			return nil, fmt.Errorf("invalid email address: %w", xerrors.ErrValidation)
		}
		if !strings.EqualFold(email, p.Email) {
			exists, err := s.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check salesperson email: %w", err)
			}
			if exists {
				return nil, fmt.Errorf("email %s is already registered: %w", email, xerrors.ErrConflict)
			}
		}
		p.Email = email
	}
	if req.UserID != nil {
		p.UserID = req.UserID
	}

	if err := s.repo.Update(ctx, id, p); err != nil {
		return nil, err
	}

	s.logger.Info("salesperson updated", zap.String("salesperson_id", id))
	return p, nil
}

// DeleteSalesperson removes a staff record. Sold vehicles keep their weak
// reference to the id; the history view renders the name as absent.
func (s *SalespersonService) DeleteSalesperson(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("salesperson deleted", zap.String("salesperson_id", id))
	return nil
}
