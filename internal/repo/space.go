// Package repo contains all database access logic for the space reservation API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lmorales/espacios-api/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SpaceRepo defines the persistence operations for Spaces.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type SpaceRepo interface {
	// Create inserts a new space and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, space domain.Space) (domain.Space, error)

	// GetByID retrieves a single space by its primary key.
	// Returns domain.ErrNotFound if no space with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Space, error)

	// List returns all spaces ordered by name ascending.
	List(ctx context.Context) ([]domain.Space, error)

	// Delete removes a space by ID along with its reservations (ON DELETE
	// CASCADE). Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgSpaceRepo is the Postgres implementation of SpaceRepo.
type pgSpaceRepo struct {
	db db
}

// NewSpaceRepo constructs a SpaceRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSpaceRepo(db db) SpaceRepo {
	return &pgSpaceRepo{db: db}
}

// Create inserts a new space row and returns the full persisted record.
func (r *pgSpaceRepo) Create(ctx context.Context, space domain.Space) (domain.Space, error) {
	const q = `
		INSERT INTO spaces (name, description)
		VALUES (@name, @description)
		RETURNING id, name, description, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":        space.Name,
		"description": space.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSpace(row)
	if err != nil {
		return domain.Space{}, fmt.Errorf("repo.SpaceRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a space by primary key.
func (r *pgSpaceRepo) GetByID(ctx context.Context, id int64) (domain.Space, error) {
	const q = `
		SELECT id, name, description, created_at, updated_at
		FROM spaces
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanSpace(row)
	if err != nil {
		return domain.Space{}, fmt.Errorf("repo.SpaceRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all spaces ordered by name.
func (r *pgSpaceRepo) List(ctx context.Context) ([]domain.Space, error) {
	const q = `
		SELECT id, name, description, created_at, updated_at
		FROM spaces
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.SpaceRepo.List: %w", err)
	}
	defer rows.Close()

	var spaces []domain.Space
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SpaceRepo.List: scan: %w", err)
		}
		spaces = append(spaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SpaceRepo.List: rows: %w", err)
	}

	return spaces, nil
}

// Delete removes a space by primary key.
func (r *pgSpaceRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM spaces WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SpaceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SpaceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanSpace maps a single database row into a domain.Space.
func scanSpace(s scanner) (domain.Space, error) {
	var sp domain.Space
	err := s.Scan(&sp.ID, &sp.Name, &sp.Description, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Space{}, domain.ErrNotFound
		}
		return domain.Space{}, err
	}
	return sp, nil
}
