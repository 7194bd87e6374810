// Package booking contains the pure business core of the reservation system:
// the validation engine that decides whether a candidate space or reservation
// is acceptable, and the calendar bucketing that lays reservations out on
// month and week grids. Nothing in this package performs I/O or reads the
// wall clock ambiently — "now" is always a parameter — so every function is
// deterministic given its inputs.
package booking

import (
	"strings"
	"time"

	"github.com/lmorales/espacios-api/internal/domain"
)

// Business rule constants for reservations.
const (
	MaxNameLen        = 100 // space name length cap, in characters
	MaxDescriptionLen = 500 // space description length cap
	MaxCedulaLen      = 20  // requester identifier length cap

	MinDurationMinutes = 30  // shortest allowed reservation
	MaxDurationMinutes = 480 // longest allowed reservation (8 hours)
	MaxAdvanceDays     = 180 // advance-booking horizon
)

// SpaceInput is a candidate space as submitted by a client, before any
// server-assigned fields exist.
type SpaceInput struct {
	Name        string
	Description string
}

// ReservationInput is a candidate reservation. Fields are pointers because a
// candidate may be an incomplete in-progress form: nil means the field was
// not provided, and absence is reported as a validation error rather than
// treated as a zero value.
type ReservationInput struct {
	SpaceID   *int64
	Cedula    string
	StartTime *time.Time
	EndTime   *time.Time
}

// ValidateSpace checks a candidate space against the static field rules.
// All applicable errors are collected — a candidate with a blank name and an
// oversized description reports both. The returned slice preserves check
// order and is empty (nil) for a valid candidate.
func ValidateSpace(in SpaceInput) []domain.FieldError {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "name is required"})
	} else if len(in.Name) > MaxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "name must not exceed 100 characters"})
	}

	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "description is required"})
	} else if len(in.Description) > MaxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "description must not exceed 500 characters"})
	}

	return errs
}

// ValidateReservation checks a candidate reservation against the business
// rules and the supplied snapshot of existing reservations.
//
// The function does not filter existing by space: callers decide which
// comparison set is relevant (typically reservations at the same space plus
// any held by the same cedula). The only intrinsic space condition is the
// equality test inside the overlap check.
//
// now must be sampled once by the caller and passed in, so the past-date and
// advance-horizon checks within a single call agree with each other.
//
// Checks never short-circuit: every applicable error is appended, and the
// result order is the fixed enumeration order below. The function never
// panics; missing fields are validation errors, not exceptions.
func ValidateReservation(in ReservationInput, existing []domain.Reservation, now time.Time) []domain.FieldError {
	var errs []domain.FieldError

	if in.SpaceID == nil {
		errs = append(errs, domain.FieldError{Field: "spaceId", Message: "space selection is required"})
	}

	if strings.TrimSpace(in.Cedula) == "" {
		errs = append(errs, domain.FieldError{Field: "cedula", Message: "cedula is required"})
	} else if len(in.Cedula) > MaxCedulaLen {
		errs = append(errs, domain.FieldError{Field: "cedula", Message: "cedula must not exceed 20 characters"})
	}

	if in.StartTime == nil {
		errs = append(errs, domain.FieldError{Field: "startTime", Message: "start time is required"})
	}
	if in.EndTime == nil {
		errs = append(errs, domain.FieldError{Field: "endTime", Message: "end time is required"})
	}

	// The temporal rules only make sense once both endpoints exist.
	if in.StartTime == nil || in.EndTime == nil {
		return errs
	}
	start, end := *in.StartTime, *in.EndTime

	if start.Before(now) {
		errs = append(errs, domain.FieldError{Field: "startTime", Message: "reservations cannot start in the past"})
	}

	if !end.After(start) {
		errs = append(errs, domain.FieldError{Field: "endTime", Message: "end time must be after start time"})
	}

	minutes := end.Sub(start).Minutes()
	if minutes < MinDurationMinutes {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "reservations must be at least 30 minutes"})
	}
	if minutes > MaxDurationMinutes {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "reservations cannot exceed 8 hours"})
	}

	if start.After(now.AddDate(0, 0, MaxAdvanceDays)) {
		errs = append(errs, domain.FieldError{Field: "startTime", Message: "reservations cannot be made more than 180 days in advance"})
	}

	// Space overlap and requester overlap are evaluated independently;
	// a candidate can collide both ways and report two time errors.
	if in.SpaceID != nil {
		for _, e := range existing {
			if e.SpaceID == *in.SpaceID && e.Overlaps(start, end) {
				errs = append(errs, domain.FieldError{Field: "time", Message: "the space is already reserved for the selected period"})
				break
			}
		}
	}
	for _, e := range existing {
		if e.Cedula == in.Cedula && e.Overlaps(start, end) {
			errs = append(errs, domain.FieldError{Field: "time", Message: "you already have a reservation during this period"})
			break
		}
	}

	return errs
}
