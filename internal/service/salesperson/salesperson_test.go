package salesperson

import (
	"context"
	"fmt"
	"testing"

	spdomain "garimoto-service/internal/domain/salesperson"
	xerrors "garimoto-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeRepo struct {
	people map[string]*spdomain.Salesperson
	seq    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{people: map[string]*spdomain.Salesperson{}}
}

func (r *fakeRepo) Create(ctx context.Context, s *spdomain.Salesperson) error {
	r.seq++
	s.ID = fmt.Sprintf("sp-%d", r.seq)
	cp := *s
	r.people[s.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*spdomain.Salesperson, error) {
	s, ok := r.people[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) FindAll(ctx context.Context) ([]*spdomain.Salesperson, error) {
	out := make([]*spdomain.Salesperson, 0, len(r.people))
	for _, s := range r.people {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, id string, s *spdomain.Salesperson) error {
	if _, ok := r.people[id]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *s
	cp.ID = id
	r.people[id] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.people[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.people, id)
	return nil
}

func (r *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, s := range r.people {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateSalesperson(t *testing.T) {
	svc := NewSalespersonService(newFakeRepo(), zap.NewNop())

	p, err := svc.CreateSalesperson(context.Background(), &spdomain.CreateSalespersonRequest{
		Name:  "  Jane Wanjiku  ",
		Email: "jane@garimoto.co.ke",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.Name != "Jane Wanjiku" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
}

func TestCreateRejectsBadEmail(t *testing.T) {
	svc := NewSalespersonService(newFakeRepo(), zap.NewNop())

	_, err := svc.CreateSalesperson(context.Background(), &spdomain.CreateSalespersonRequest{
		Name:  "Jane",
		Email: "not-an-email",
	})
	if !xerrors.Is(err, xerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewSalespersonService(newFakeRepo(), zap.NewNop())

	if _, err := svc.CreateSalesperson(ctx, &spdomain.CreateSalespersonRequest{
		Name: "Jane", Email: "jane@garimoto.co.ke",
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateSalesperson(ctx, &spdomain.CreateSalespersonRequest{
		Name: "Other Jane", Email: "jane@garimoto.co.ke",
	})
	if !xerrors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateKeepsOwnEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewSalespersonService(newFakeRepo(), zap.NewNop())

	p, _ := svc.CreateSalesperson(ctx, &spdomain.CreateSalespersonRequest{
		Name: "Jane", Email: "jane@garimoto.co.ke",
	})

	// Re-submitting the same email must not trip the uniqueness check.
	newName := "Jane W."
	sameEmail := "jane@garimoto.co.ke"
	updated, err := svc.UpdateSalesperson(ctx, p.ID, &spdomain.UpdateSalespersonRequest{
		Name:  &newName,
		Email: &sameEmail,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Jane W." {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
}

func TestDeleteUnknown(t *testing.T) {
	svc := NewSalespersonService(newFakeRepo(), zap.NewNop())
	if err := svc.DeleteSalesperson(context.Background(), "missing"); !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
