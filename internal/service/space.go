// Package service contains the business logic for the space reservation API.
// Services run the booking validation engine, enforce business rules, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/lmorales/espacios-api/internal/booking"
	"github.com/lmorales/espacios-api/internal/domain"
	"github.com/lmorales/espacios-api/internal/repo"
)

// SpaceService implements business logic for Space operations.
type SpaceService struct {
	spaces repo.SpaceRepo
}

// NewSpaceService constructs a SpaceService backed by the provided SpaceRepo.
func NewSpaceService(spaces repo.SpaceRepo) *SpaceService {
	return &SpaceService{spaces: spaces}
}

// Create validates and persists a new space.
// Returns *domain.ValidationErrors (errors.Is domain.ErrValidation) carrying
// the full field-tagged list when input violates the field rules.
func (s *SpaceService) Create(ctx context.Context, in booking.SpaceInput) (domain.Space, error) {
	if errs := booking.ValidateSpace(in); len(errs) > 0 {
		return domain.Space{}, domain.NewValidationErrors(errs)
	}

	created, err := s.spaces.Create(ctx, domain.Space{Name: in.Name, Description: in.Description})
	if err != nil {
		return domain.Space{}, fmt.Errorf("service.SpaceService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single space by ID.
// Returns domain.ErrNotFound if no space with that ID exists.
func (s *SpaceService) GetByID(ctx context.Context, id int64) (domain.Space, error) {
	space, err := s.spaces.GetByID(ctx, id)
	if err != nil {
		return domain.Space{}, fmt.Errorf("service.SpaceService.GetByID: %w", err)
	}
	return space, nil
}

// List returns all spaces.
// Always returns a non-nil slice so callers can safely range over it.
func (s *SpaceService) List(ctx context.Context) ([]domain.Space, error) {
	spaces, err := s.spaces.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SpaceService.List: %w", err)
	}
	if spaces == nil {
		return []domain.Space{}, nil
	}
	return spaces, nil
}

// Delete removes a space by ID. Reservations at the space go with it.
// Returns domain.ErrNotFound if the space does not exist.
func (s *SpaceService) Delete(ctx context.Context, id int64) error {
	if err := s.spaces.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SpaceService.Delete: %w", err)
	}
	return nil
}
