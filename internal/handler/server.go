// Package handler implements the HTTP handlers for the space reservation API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (health.go, space.go, reservation.go, calendar.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lmorales/espacios-api/internal/booking"
	"github.com/lmorales/espacios-api/internal/domain"
	"github.com/lmorales/espacios-api/internal/repo"
)

// SpaceServicer defines the business operations the space handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type SpaceServicer interface {
	Create(ctx context.Context, in booking.SpaceInput) (domain.Space, error)
	GetByID(ctx context.Context, id int64) (domain.Space, error)
	List(ctx context.Context) ([]domain.Space, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationServicer defines the business operations the reservation
// handlers depend on.
type ReservationServicer interface {
	Create(ctx context.Context, in booking.ReservationInput) (domain.Reservation, error)
	ListPaged(ctx context.Context, f repo.ReservationFilter, p domain.PaginationParams) ([]domain.Reservation, int64, error)
	Delete(ctx context.Context, id int64) error
}

// CalendarServicer defines the grid operations the calendar handlers depend on.
type CalendarServicer interface {
	MonthGrid(ctx context.Context, anchor time.Time, spaceID *int64) ([]booking.CalendarDay, error)
	WeekGrid(ctx context.Context, anchor time.Time, spaceID *int64) ([]booking.CalendarDay, error)
	Today() time.Time
}

// Server holds the dependencies shared by all handlers.
// Wire it in main.go via NewServer(...).Routes().
type Server struct {
	spaces       SpaceServicer
	reservations ReservationServicer
	calendar     CalendarServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(spaces SpaceServicer, reservations ReservationServicer, calendar CalendarServicer) *Server {
	return &Server{spaces: spaces, reservations: reservations, calendar: calendar}
}

// Routes builds the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/spaces", func(r chi.Router) {
			r.Get("/", s.ListSpaces)
			r.Post("/", s.CreateSpace)
			r.Get("/{id}", s.GetSpace)
			r.Delete("/{id}", s.DeleteSpace)
		})
		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", s.ListReservations)
			r.Post("/", s.CreateReservation)
			r.Delete("/{id}", s.DeleteReservation)
		})
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/month", s.GetMonthGrid)
			r.Get("/week", s.GetWeekGrid)
		})
	})

	return r
}
