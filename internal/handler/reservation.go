package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/lmorales/espacios-api/internal/booking"
	"github.com/lmorales/espacios-api/internal/domain"
	"github.com/lmorales/espacios-api/internal/repo"
)

// CreateReservationRequest is the body of POST /api/reservations.
// All fields are optional at the JSON level; absences surface as field-tagged
// validation errors from the booking engine.
type CreateReservationRequest struct {
	SpaceID   *int64     `json:"spaceId"`
	Cedula    string     `json:"cedula"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

// ReservationListResponse is the body of GET /api/reservations.
type ReservationListResponse struct {
	Data       []domain.Reservation `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// Pagination echoes the applied paging parameters plus the total match count.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// CreateReservation handles POST /api/reservations.
// The booking engine gates the submission: a 422 carries the full ordered
// field list, while a 409 means the database caught a concurrent booking
// after client-side validation had already passed.
func (s *Server) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var body CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "request body is required and must be valid JSON")
		return
	}

	created, err := s.reservations.Create(r.Context(), booking.ReservationInput{
		SpaceID:   body.SpaceID,
		Cedula:    body.Cedula,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListReservations handles GET /api/reservations.
// Supports ?spaceId=, ?cedula=, ?from=, ?to= filters plus ?page= and ?limit=
// (defaults: page=1, limit=20, max=100). Date filters accept either RFC 3339
// timestamps or plain dates; a plain ?to= date is widened to the end of that
// day so a single-day filter behaves as users expect.
func (s *Server) ListReservations(w http.ResponseWriter, r *http.Request) {
	f, err := parseReservationFilter(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	p := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	reservations, total, err := s.reservations.ListPaged(r.Context(), f, p)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ReservationListResponse{
		Data: reservations,
		Pagination: Pagination{
			Page:  p.Page,
			Limit: p.Limit,
			Total: total,
		},
	})
}

// DeleteReservation handles DELETE /api/reservations/{id}.
func (s *Server) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}

	if err := s.reservations.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "reservation not found")
			return
		}
		serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- query parsing helpers --------------------------------------------------

// parseReservationFilter reads the list filter query parameters.
func parseReservationFilter(r *http.Request) (repo.ReservationFilter, error) {
	var f repo.ReservationFilter

	if v := r.URL.Query().Get("spaceId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return repo.ReservationFilter{}, errors.New("spaceId must be an integer")
		}
		f.SpaceID = &id
	}

	f.Cedula = r.URL.Query().Get("cedula")

	from, _, err := queryTime(r, "from")
	if err != nil {
		return repo.ReservationFilter{}, err
	}
	f.From = from

	to, dateOnly, err := queryTime(r, "to")
	if err != nil {
		return repo.ReservationFilter{}, err
	}
	if to != nil && dateOnly {
		// widen to the end of the named day
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	f.To = to

	return f, nil
}

// queryTime parses an optional timestamp query parameter, accepting RFC 3339
// or a plain YYYY-MM-DD date (interpreted as midnight UTC). The second return
// reports whether the date-only form was used.
func queryTime(r *http.Request, name string) (*time.Time, bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return &t, false, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t, true, nil
	}
	return nil, false, errors.New(name + " must be an RFC 3339 timestamp or YYYY-MM-DD date")
}

// queryInt parses an optional integer query parameter, returning nil when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
