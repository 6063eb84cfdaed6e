package pgsql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
)

// fakeDB keeps pending_changes rows in memory keyed by user and workspace.
type fakeDB struct {
	rows    map[portsrepo.DraftKey][]byte
	execErr error
	queries []string
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[portsrepo.DraftKey][]byte)}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	key := portsrepo.DraftKey{UserID: args[0].(string), WorkspaceID: args[1].(string)}
	switch {
	case strings.Contains(sql, "INSERT INTO pending_changes"):
		f.rows[key] = args[2].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "DELETE FROM pending_changes"):
		delete(f.rows, key)
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.CommandTag{}, errors.New("unexpected statement")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	key := portsrepo.DraftKey{UserID: args[0].(string), WorkspaceID: args[1].(string)}
	payload, ok := f.rows[key]
	return fakeRow{key: key, payload: payload, found: ok}
}

type fakeRow struct {
	key     portsrepo.DraftKey
	payload []byte
	found   bool
}

func (r fakeRow) Scan(dest ...any) error {
	if !r.found {
		return pgx.ErrNoRows
	}
	*dest[0].(*string) = r.key.UserID
	*dest[1].(*string) = r.key.WorkspaceID
	*dest[2].(*[]byte) = r.payload
	*dest[3].(*time.Time) = time.Now()
	*dest[4].(*time.Time) = time.Now()
	return nil
}

func TestDraftRepository_RoundTrip(t *testing.T) {
	db := newFakeDB()
	repo := newPgxDraftRepository(db)
	ctx := context.Background()
	key := portsrepo.DraftKey{UserID: "u1", WorkspaceID: "ws-1"}

	_, err := repo.FindDraft(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.SaveDraft(ctx, key, []byte(`{"v":1}`)))
	require.NoError(t, repo.SaveDraft(ctx, key, []byte(`{"v":2}`)))

	payload, err := repo.FindDraft(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(payload))

	require.NoError(t, repo.DeleteDraft(ctx, key))
	_, err = repo.FindDraft(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Contains(t, db.queries[0], "ON CONFLICT (user_id, workspace_id)")
}

func TestDraftRepository_KeysAreIsolated(t *testing.T) {
	db := newFakeDB()
	repo := newPgxDraftRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveDraft(ctx, portsrepo.DraftKey{UserID: "u1", WorkspaceID: "ws-1"}, []byte(`{}`)))

	_, err := repo.FindDraft(ctx, portsrepo.DraftKey{UserID: "u2", WorkspaceID: "ws-1"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDraftRepository_WrapsDriverErrors(t *testing.T) {
	db := newFakeDB()
	db.execErr = errors.New("connection reset")
	repo := newPgxDraftRepository(db)

	err := repo.SaveDraft(context.Background(), portsrepo.DraftKey{UserID: "u1", WorkspaceID: "ws-1"}, []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ws-1")
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
