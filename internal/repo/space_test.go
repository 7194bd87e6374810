package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackc/pgx/v5"

	"github.com/lmorales/espacios-api/internal/domain"
	"github.com/lmorales/espacios-api/internal/repo"
	"github.com/lmorales/espacios-api/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// automatically rolled back when the test finishes, giving free per-test
// isolation.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

func newTestSpaceRepo(t *testing.T) repo.SpaceRepo {
	t.Helper()
	return repo.NewSpaceRepo(newTestTx(t))
}

// spaceFixture returns a domain.Space with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func spaceFixture() domain.Space {
	return domain.Space{
		Name:        "Sala de Juntas",
		Description: "Meeting room on the second floor",
	}
}

func TestSpaceRepo_Create(t *testing.T) {
	r := newTestSpaceRepo(t)
	ctx := context.Background()

	input := spaceFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotZero(t, got.ID, "ID should be DB-generated")
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Description, got.Description)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestSpaceRepo_GetByID(t *testing.T) {
	r := newTestSpaceRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, spaceFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestSpaceRepo_GetByID_NotFound(t *testing.T) {
	r := newTestSpaceRepo(t)

	_, err := r.GetByID(context.Background(), 999999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpaceRepo_List_OrderedByName(t *testing.T) {
	r := newTestSpaceRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Cancha", "Auditorio", "Biblioteca"} {
		s := spaceFixture()
		s.Name = name
		_, err := r.Create(ctx, s)
		require.NoError(t, err)
	}

	got, err := r.List(ctx)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Auditorio", got[0].Name)
	assert.Equal(t, "Biblioteca", got[1].Name)
	assert.Equal(t, "Cancha", got[2].Name)
}

func TestSpaceRepo_Delete(t *testing.T) {
	r := newTestSpaceRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, spaceFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpaceRepo_Delete_NotFound(t *testing.T) {
	r := newTestSpaceRepo(t)

	err := r.Delete(context.Background(), 999999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
