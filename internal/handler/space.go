package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lmorales/espacios-api/internal/booking"
	"github.com/lmorales/espacios-api/internal/domain"
)

// CreateSpaceRequest is the body of POST /api/spaces.
type CreateSpaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateSpace handles POST /api/spaces.
func (s *Server) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var body CreateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "request body is required and must be valid JSON")
		return
	}

	created, err := s.spaces.Create(r.Context(), booking.SpaceInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListSpaces handles GET /api/spaces.
func (s *Server) ListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := s.spaces.List(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spaces)
}

// GetSpace handles GET /api/spaces/{id}.
func (s *Server) GetSpace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}

	space, err := s.spaces.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "space not found")
			return
		}
		serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, space)
}

// DeleteSpace handles DELETE /api/spaces/{id}.
func (s *Server) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}

	if err := s.spaces.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "space not found")
			return
		}
		serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} URL parameter as an int64.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
