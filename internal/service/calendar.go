package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lmorales/espacios-api/internal/booking"
	"github.com/lmorales/espacios-api/internal/repo"
)

// CalendarService assembles the month and week grids for the calendar views.
// It fetches the reservation snapshot covering the visible range and hands it
// to the pure bucketing functions in the booking package.
type CalendarService struct {
	reservations repo.ReservationRepo
	clock        Clock
}

// NewCalendarService constructs a CalendarService backed by the provided
// ReservationRepo. A nil clock falls back to time.Now in UTC.
func NewCalendarService(reservations repo.ReservationRepo, clock Clock) *CalendarService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &CalendarService{reservations: reservations, clock: clock}
}

// MonthGrid returns the whole-week day cells for the month containing anchor,
// optionally restricted to one space. The fetch window covers the padded
// grid, not just the anchor month, so leading and trailing cells carry their
// reservations too.
func (s *CalendarService) MonthGrid(ctx context.Context, anchor time.Time, spaceID *int64) ([]booking.CalendarDay, error) {
	anchor = anchor.UTC()
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := first.AddDate(0, 0, -int(first.Weekday()))
	// Six weeks past the grid start always covers the longest month grid.
	to := from.AddDate(0, 0, 42)

	reservations, err := s.reservations.ListRange(ctx, from, to, spaceID)
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.MonthGrid: %w", err)
	}
	return booking.BuildMonthGrid(anchor, reservations), nil
}

// WeekGrid returns the seven day cells for the week containing anchor,
// optionally restricted to one space.
func (s *CalendarService) WeekGrid(ctx context.Context, anchor time.Time, spaceID *int64) ([]booking.CalendarDay, error) {
	anchor = anchor.UTC()
	from := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	from = from.AddDate(0, 0, -int(from.Weekday()))
	to := from.AddDate(0, 0, 7)

	reservations, err := s.reservations.ListRange(ctx, from, to, spaceID)
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.WeekGrid: %w", err)
	}
	return booking.BuildWeekGrid(anchor, reservations), nil
}

// Today returns the current date with time-of-day zeroed, in UTC. Handlers
// use it as the default grid anchor when none is given.
func (s *CalendarService) Today() time.Time {
	now := s.clock().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
