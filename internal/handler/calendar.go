package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lmorales/espacios-api/internal/booking"
	"github.com/lmorales/espacios-api/internal/domain"
)

// CalendarDayResponse is one cell of the month or week grid as served over
// HTTP. Reservations carry their timeline placement so the client renders
// without re-deriving offsets.
type CalendarDayResponse struct {
	Date           string                      `json:"date"`
	IsCurrentMonth bool                        `json:"isCurrentMonth"`
	Reservations   []PlacedReservationResponse `json:"reservations"`
}

// PlacedReservationResponse pairs a reservation with its vertical placement
// on the 08:00–22:00 hourly timeline.
type PlacedReservationResponse struct {
	domain.Reservation
	Placement booking.Placement `json:"placement"`
}

// CalendarGridResponse is the body of the calendar endpoints.
type CalendarGridResponse struct {
	Anchor string                `json:"anchor"`
	Days   []CalendarDayResponse `json:"days"`
}

// GetMonthGrid handles GET /api/calendar/month?anchor=YYYY-MM-DD[&spaceId=].
// anchor defaults to today.
func (s *Server) GetMonthGrid(w http.ResponseWriter, r *http.Request) {
	s.grid(w, r, s.calendar.MonthGrid)
}

// GetWeekGrid handles GET /api/calendar/week?anchor=YYYY-MM-DD[&spaceId=].
// anchor defaults to today.
func (s *Server) GetWeekGrid(w http.ResponseWriter, r *http.Request) {
	s.grid(w, r, s.calendar.WeekGrid)
}

// grid is the shared implementation of both calendar endpoints; only the
// bucketing call differs.
func (s *Server) grid(w http.ResponseWriter, r *http.Request, build func(context.Context, time.Time, *int64) ([]booking.CalendarDay, error)) {
	anchor, spaceID, err := parseGridParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if anchor.IsZero() {
		anchor = s.calendar.Today()
	}

	days, err := build(r.Context(), anchor, spaceID)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CalendarGridResponse{
		Anchor: anchor.Format("2006-01-02"),
		Days:   daysToResponse(days),
	})
}

// parseGridParams reads the anchor date and optional space filter. A zero
// anchor means the parameter was absent and the caller should default it.
func parseGridParams(r *http.Request) (time.Time, *int64, error) {
	var anchor time.Time
	if v := r.URL.Query().Get("anchor"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, nil, errors.New("anchor must be a YYYY-MM-DD date")
		}
		anchor = t
	}

	f, err := parseReservationFilter(r)
	if err != nil {
		return time.Time{}, nil, err
	}
	return anchor, f.SpaceID, nil
}

// daysToResponse converts core CalendarDay values into the wire shape,
// attaching each reservation's placement.
func daysToResponse(days []booking.CalendarDay) []CalendarDayResponse {
	out := make([]CalendarDayResponse, len(days))
	for i, d := range days {
		placed := make([]PlacedReservationResponse, len(d.Reservations))
		for j, res := range d.Reservations {
			placed[j] = PlacedReservationResponse{
				Reservation: res,
				Placement:   booking.Place(res),
			}
		}
		out[i] = CalendarDayResponse{
			Date:           d.Date.Format("2006-01-02"),
			IsCurrentMonth: d.IsCurrentMonth,
			Reservations:   placed,
		}
	}
	return out
}
