// Package domain contains the core data types for the space reservation API.
// This package has zero external dependencies and is imported by every other
// internal package (booking, repo, service, handler).
package domain

import "time"

// Space represents a bookable physical or logical resource (e.g. a room).
// A space is the parent aggregate; reservations belong to a space.
type Space struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
