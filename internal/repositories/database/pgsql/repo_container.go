package pgsql

import "github.com/jackc/pgx/v5/pgxpool"

// NewDraftRepository returns the pgx-backed draft store.
func NewDraftRepository(dbPool *pgxpool.Pool) *PgxDraftRepository {
	return newPgxDraftRepository(dbPool)
}
