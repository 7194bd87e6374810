package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lmorales/espacios-api/internal/domain"
)

// pgExclusionViolation is the Postgres error code raised when an EXCLUDE
// constraint rejects a row. Both overlap constraints on the reservations
// table report through it.
const pgExclusionViolation = "23P01"

// ReservationFilter narrows reservation list queries. Zero-valued fields are
// ignored, so the empty filter matches everything.
type ReservationFilter struct {
	SpaceID *int64
	Cedula  string
	// From/To bound the reservation's start_time; half-open [From, To).
	From *time.Time
	To   *time.Time
}

// ReservationRepo defines the persistence operations for Reservations.
type ReservationRepo interface {
	// Create inserts a new reservation and returns the persisted record.
	// Returns domain.ErrConflict when the database's overlap constraints
	// reject the row — the authoritative double-booking check that catches
	// races the in-memory validation snapshot cannot see.
	Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error)

	// GetByID retrieves a single reservation by its primary key.
	// Returns domain.ErrNotFound if no reservation with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Reservation, error)

	// ListPaged returns the filtered reservations ordered by start_time
	// ascending, plus the total count for the pagination envelope.
	ListPaged(ctx context.Context, f ReservationFilter, p domain.PaginationParams) ([]domain.Reservation, int64, error)

	// ListRange returns all reservations starting within [from, to),
	// optionally restricted to one space, ordered by start_time ascending.
	// Used by the calendar views, so no pagination.
	ListRange(ctx context.Context, from, to time.Time, spaceID *int64) ([]domain.Reservation, error)

	// ListConflictCandidates returns reservations that could collide with a
	// candidate [from, to) at the given space or held by the given cedula.
	// This is the snapshot handed to the validation engine.
	ListConflictCandidates(ctx context.Context, spaceID int64, cedula string, from, to time.Time) ([]domain.Reservation, error)

	// Delete removes a reservation by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgReservationRepo is the Postgres implementation of ReservationRepo.
type pgReservationRepo struct {
	db db
}

// NewReservationRepo constructs a ReservationRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewReservationRepo(db db) ReservationRepo {
	return &pgReservationRepo{db: db}
}

// reservationCols is the select list shared by every read; space_name comes
// from the join so list responses can show it without a second query.
const reservationCols = `
	r.id, r.space_id, r.cedula, r.start_time, r.end_time, s.name, r.created_at`

func (r *pgReservationRepo) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO reservations (space_id, cedula, start_time, end_time)
			VALUES (@space_id, @cedula, @start_time, @end_time)
			RETURNING id, space_id, cedula, start_time, end_time, created_at
		)
		SELECT r.id, r.space_id, r.cedula, r.start_time, r.end_time, s.name, r.created_at
		FROM inserted r
		JOIN spaces s ON s.id = r.space_id`

	args := pgx.NamedArgs{
		"space_id":   res.SpaceID,
		"cedula":     res.Cedula,
		"start_time": res.StartTime,
		"end_time":   res.EndTime,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanReservation(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgReservationRepo) GetByID(ctx context.Context, id int64) (domain.Reservation, error) {
	const q = `
		SELECT` + reservationCols + `
		FROM reservations r
		JOIN spaces s ON s.id = r.space_id
		WHERE r.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanReservation(row)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.GetByID: %w", err)
	}
	return result, nil
}

// filterClause renders the shared WHERE conditions for a ReservationFilter.
// Conditions are ANDed; absent fields contribute nothing.
func filterClause(f ReservationFilter, args pgx.NamedArgs) string {
	clause := ` WHERE true`
	if f.SpaceID != nil {
		clause += ` AND r.space_id = @space_id`
		args["space_id"] = *f.SpaceID
	}
	if f.Cedula != "" {
		clause += ` AND r.cedula = @cedula`
		args["cedula"] = f.Cedula
	}
	if f.From != nil {
		clause += ` AND r.start_time >= @from`
		args["from"] = *f.From
	}
	if f.To != nil {
		clause += ` AND r.start_time < @to`
		args["to"] = *f.To
	}
	return clause
}

func (r *pgReservationRepo) ListPaged(ctx context.Context, f ReservationFilter, p domain.PaginationParams) ([]domain.Reservation, int64, error) {
	args := pgx.NamedArgs{
		"limit":  p.Limit,
		"offset": p.Offset(),
	}
	where := filterClause(f, args)

	q := `
		SELECT` + reservationCols + `, count(*) OVER ()
		FROM reservations r
		JOIN spaces s ON s.id = r.space_id` + where + `
		ORDER BY r.start_time, r.id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ReservationRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		reservations []domain.Reservation
		total        int64
	)
	for rows.Next() {
		var res domain.Reservation
		err := rows.Scan(&res.ID, &res.SpaceID, &res.Cedula, &res.StartTime, &res.EndTime, &res.SpaceName, &res.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ReservationRepo.ListPaged: scan: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ReservationRepo.ListPaged: rows: %w", err)
	}

	return reservations, total, nil
}

func (r *pgReservationRepo) ListRange(ctx context.Context, from, to time.Time, spaceID *int64) ([]domain.Reservation, error) {
	f := ReservationFilter{SpaceID: spaceID, From: &from, To: &to}
	args := pgx.NamedArgs{}
	where := filterClause(f, args)

	q := `
		SELECT` + reservationCols + `
		FROM reservations r
		JOIN spaces s ON s.id = r.space_id` + where + `
		ORDER BY r.start_time, r.id`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.ListRange: %w", err)
	}
	defer rows.Close()

	reservations, err := collectReservations(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.ListRange: %w", err)
	}
	return reservations, nil
}

func (r *pgReservationRepo) ListConflictCandidates(ctx context.Context, spaceID int64, cedula string, from, to time.Time) ([]domain.Reservation, error) {
	// Interval intersection is half-open on both sides, matching the
	// validation engine and the tstzrange exclusion constraints.
	const q = `
		SELECT` + reservationCols + `
		FROM reservations r
		JOIN spaces s ON s.id = r.space_id
		WHERE (r.space_id = @space_id OR r.cedula = @cedula)
		  AND r.start_time < @to
		  AND r.end_time > @from
		ORDER BY r.start_time, r.id`

	args := pgx.NamedArgs{
		"space_id": spaceID,
		"cedula":   cedula,
		"from":     from,
		"to":       to,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.ListConflictCandidates: %w", err)
	}
	defer rows.Close()

	reservations, err := collectReservations(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.ListConflictCandidates: %w", err)
	}
	return reservations, nil
}

func (r *pgReservationRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM reservations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ReservationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ReservationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanReservation maps a single joined row into a domain.Reservation.
func scanReservation(s scanner) (domain.Reservation, error) {
	var res domain.Reservation
	err := s.Scan(&res.ID, &res.SpaceID, &res.Cedula, &res.StartTime, &res.EndTime, &res.SpaceName, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reservation{}, domain.ErrNotFound
		}
		return domain.Reservation{}, err
	}
	return res, nil
}

// collectReservations drains rows into a slice using scanReservation.
func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return reservations, nil
}
