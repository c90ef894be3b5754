// Package dbtest opens migrated stores for package tests.
package dbtest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/stretchr/testify/require"
)

// New returns a migrated SQLite store living in the test's temp dir.
func New(t *testing.T) database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewSQLite(ctx, filepath.Join(t.TempDir(), "jtx.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.Migrate(ctx, db))
	return db
}

// Postgres returns a migrated PostgreSQL store when TEST_POSTGRES_URL is set
// and skips the test otherwise. Tables are truncated before use.
func Postgres(t *testing.T) database.DB {
	t.Helper()

	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL is not set")
	}

	ctx := context.Background()
	db, err := database.NewPGX(ctx, url)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.Migrate(ctx, db))
	_, err = db.ExecRaw(ctx, "TRUNCATE icalobject, relatedto, category, attachment, attendee, comment, alarm, resource RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return db
}

// LocalCollectionID is the collection Migrate seeds into an empty store.
const LocalCollectionID = database.LocalCollectionID
