package domain

import "time"

// Reservation represents a time-bounded claim on a Space by a requester,
// identified by cedula. StartTime and EndTime are stored and compared in UTC;
// the interval is half-open [StartTime, EndTime), so a reservation that starts
// exactly when another ends does not overlap it.
type Reservation struct {
	ID        int64     `json:"id"`
	SpaceID   int64     `json:"spaceId"`
	Cedula    string    `json:"cedula"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	// SpaceName is denormalized for display; populated by list queries that
	// join the spaces table, empty otherwise.
	SpaceName string `json:"spaceName,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Overlaps reports whether the reservation's interval intersects [start, end)
// under half-open semantics: touching endpoints do not count as overlap.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return start.Before(r.EndTime) && end.After(r.StartTime)
}
