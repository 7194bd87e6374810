package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lmorales/espacios-api/internal/booking"
	"github.com/lmorales/espacios-api/internal/domain"
	"github.com/lmorales/espacios-api/internal/repo"
)

// Clock supplies the current time. Injected so the validation engine's
// past-date and advance-horizon rules are deterministic in tests.
type Clock func() time.Time

// ReservationService implements business logic for Reservation operations.
// It holds both repos because creating a reservation requires verifying the
// parent space exists.
type ReservationService struct {
	spaces       repo.SpaceRepo
	reservations repo.ReservationRepo
	clock        Clock
}

// NewReservationService constructs a ReservationService backed by the
// provided repos. A nil clock falls back to time.Now in UTC.
func NewReservationService(spaces repo.SpaceRepo, reservations repo.ReservationRepo, clock Clock) *ReservationService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &ReservationService{spaces: spaces, reservations: reservations, clock: clock}
}

// Create validates the candidate against the business rules and the current
// snapshot of conflicting reservations, verifies the space exists, then
// persists.
//
// The clock is sampled exactly once per call so every temporal check inside
// one validation pass agrees on "now". The in-memory overlap check is a
// fast-path courtesy; the database exclusion constraints remain the
// authoritative check, so a concurrent booking that slips past the snapshot
// still surfaces as domain.ErrConflict.
func (s *ReservationService) Create(ctx context.Context, in booking.ReservationInput) (domain.Reservation, error) {
	now := s.clock()

	var existing []domain.Reservation
	if in.SpaceID != nil && in.StartTime != nil && in.EndTime != nil {
		var err error
		existing, err = s.reservations.ListConflictCandidates(ctx, *in.SpaceID, in.Cedula, *in.StartTime, *in.EndTime)
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("service.ReservationService.Create: %w", err)
		}
	}

	if errs := booking.ValidateReservation(in, existing, now); len(errs) > 0 {
		return domain.Reservation{}, domain.NewValidationErrors(errs)
	}

	if _, err := s.spaces.GetByID(ctx, *in.SpaceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reservation{}, domain.NewValidationErrors([]domain.FieldError{
				{Field: "spaceId", Message: "space does not exist"},
			})
		}
		return domain.Reservation{}, fmt.Errorf("service.ReservationService.Create: %w", err)
	}

	created, err := s.reservations.Create(ctx, domain.Reservation{
		SpaceID:   *in.SpaceID,
		Cedula:    in.Cedula,
		StartTime: in.StartTime.UTC(),
		EndTime:   in.EndTime.UTC(),
	})
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("service.ReservationService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single reservation by ID.
func (s *ReservationService) GetByID(ctx context.Context, id int64) (domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("service.ReservationService.GetByID: %w", err)
	}
	return res, nil
}

// ListPaged returns the filtered reservations plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ReservationService) ListPaged(ctx context.Context, f repo.ReservationFilter, p domain.PaginationParams) ([]domain.Reservation, int64, error) {
	reservations, total, err := s.reservations.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ReservationService.ListPaged: %w", err)
	}
	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	return reservations, total, nil
}

// Delete removes a reservation by ID.
// Returns domain.ErrNotFound if the reservation does not exist.
func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	if err := s.reservations.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ReservationService.Delete: %w", err)
	}
	return nil
}
