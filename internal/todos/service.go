package todos

import (
	"context"
)

// RepositoryPort defines data access methods for todos.
type RepositoryPort interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]Todo, error)
	ListAll(ctx context.Context) ([]Todo, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*Todo, error)
	Create(ctx context.Context, todo *Todo) error
	Update(ctx context.Context, todo *Todo) error
	DeleteByOwner(ctx context.Context, id, ownerID int64) error
	DeleteAny(ctx context.Context, id int64) error
}

// Service handles todo business logic. Ownership is enforced by delegating
// to owner-filtered repository queries; the admin methods bypass the filter.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// TodoParams carries the mutable fields of a todo.
type TodoParams struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// List returns the caller's todos.
func (s *Service) List(ctx context.Context, ownerID int64) ([]Todo, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns a single todo owned by the caller.
func (s *Service) Get(ctx context.Context, id, ownerID int64) (*Todo, error) {
	return s.repo.FindByIDAndOwner(ctx, id, ownerID)
}

// Create stores a new todo for the caller.
func (s *Service) Create(ctx context.Context, ownerID int64, params TodoParams) (*Todo, error) {
	todo := &Todo{
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Complete:    params.Complete,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update rewrites a todo owned by the caller.
func (s *Service) Update(ctx context.Context, id, ownerID int64, params TodoParams) error {
	return s.repo.Update(ctx, &Todo{
		ID:          id,
		OwnerID:     ownerID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Complete:    params.Complete,
	})
}

// Delete removes a todo owned by the caller.
func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	return s.repo.DeleteByOwner(ctx, id, ownerID)
}

// ListAll returns every user's todos. Admin only.
func (s *Service) ListAll(ctx context.Context) ([]Todo, error) {
	return s.repo.ListAll(ctx)
}

// DeleteAny removes a todo regardless of owner. Admin only.
func (s *Service) DeleteAny(ctx context.Context, id int64) error {
	return s.repo.DeleteAny(ctx, id)
}
