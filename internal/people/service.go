// ABOUTME: Person service orchestrating store calls for the people API
// ABOUTME: Translates store absence into NotFoundError and implements update-by-overwrite

package people

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/2389/people-api/internal/store"
)

// PersonService is the behaviour the HTTP handler depends on.
//
//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks
type PersonService interface {
	Save(ctx context.Context, p *store.Person) (*store.Person, error)
	GetAllPersons(ctx context.Context) ([]*store.Person, error)
	GetPersonByID(ctx context.Context, id int64) (*store.Person, error)
	Update(ctx context.Context, id int64, data *store.Person) (*store.Person, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements PersonService on top of a store.Store.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService creates a Service backed by s.
func NewService(s store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  s,
		logger: logger.With("component", "people"),
	}
}

// Save persists p, inserting it when it has no ID.
func (s *Service) Save(ctx context.Context, p *store.Person) (*store.Person, error) {
	saved, err := s.store.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("saving person: %w", err)
	}
	s.logger.Info("person saved", "id", saved.ID)
	return saved, nil
}

// GetAllPersons returns every stored person; the slice is empty, not nil, when there are none.
func (s *Service) GetAllPersons(ctx context.Context) ([]*store.Person, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	if all == nil {
		all = []*store.Person{}
	}
	return all, nil
}

// GetPersonByID returns a *NotFoundError when no person has the given ID.
func (s *Service) GetPersonByID(ctx context.Context, id int64) (*store.Person, error) {
	p, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting person %d: %w", id, err)
	}
	return p, nil
}

// Update overwrites name, age and profession of the person with the given ID.
// data.ID is ignored. Nothing is written when the person does not exist.
func (s *Service) Update(ctx context.Context, id int64, data *store.Person) (*store.Person, error) {
	existing, err := s.GetPersonByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = data.Name
	existing.Age = data.Age
	existing.Profession = data.Profession

	updated, err := s.store.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("updating person %d: %w", id, err)
	}
	s.logger.Info("person updated", "id", id)
	return updated, nil
}

// Delete removes the person with the given ID, or returns a *NotFoundError.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetPersonByID(ctx, id); err != nil {
		return err
	}

	err := s.store.Delete(ctx, id)
	// Removed by a concurrent request between the lookup and the delete
	if errors.Is(err, store.ErrNotFound) {
		return newNotFoundError(id)
	}
	if err != nil {
		return fmt.Errorf("deleting person %d: %w", id, err)
	}
	s.logger.Info("person deleted", "id", id)
	return nil
}
