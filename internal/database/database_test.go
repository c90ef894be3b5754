package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/database/dbtest"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxRollbackOnExecError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := database.NewSQL(sqlDB, database.DriverSQLite)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO category \(icalobject_id,text\) VALUES \(\?,\?\)`).
		WithArgs(int64(7), "work").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, database.SQL.
		Insert(database.CategoryTable).
		Columns("icalobject_id", "text").
		Values(int64(7), "work"))
	require.Error(t, err)

	require.NoError(t, tx.Rollback(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRollbackAfterCommitIsNoop(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := database.NewSQL(sqlDB, database.DriverSQLite)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM relatedto WHERE id = \?`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)

	n, err := tx.Exec(ctx, database.SQL.Delete(database.RelatedtoTable).Where("id = ?", int64(3)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, tx.Rollback(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWithoutRowsReturnsErrNoRecord(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := database.NewSQL(sqlDB, database.DriverSQLite)

	mock.ExpectQuery(`SELECT id FROM icalobject WHERE uid = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var id int64
	err = db.Get(context.Background(), &id, database.SQL.
		Select("id").
		From(database.ICalObjectTable).
		Where("uid = ?", "missing"))

	assert.ErrorIs(t, err, model.ErrNoRecord)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	require.NoError(t, database.Migrate(ctx, db))

	var count int64
	require.NoError(t, db.Get(ctx, &count, database.SQL.Select("COUNT(*)").From(database.CollectionTable)))
	assert.Equal(t, int64(1), count)

	var rows int64
	require.NoError(t, db.Get(ctx, &rows, database.SQL.Select("COUNT(*)").From(database.ICal4ListView)))
	assert.Zero(t, rows)
}

func TestConstraintErrorsAreMapped(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	insert := func(uid string) error {
		_, err := db.Exec(ctx, database.SQL.
			Insert(database.ICalObjectTable).
			Columns("module", "component", "collection_id", "uid", "created", "last_modified", "dtstamp").
			Values("NOTE", "VJOURNAL", dbtest.LocalCollectionID, uid, 0, 0, 0))
		return err
	}

	require.NoError(t, insert("a"))
	assert.ErrorIs(t, insert("a"), model.ErrAlreadyExists)

	_, err := db.Exec(ctx, database.SQL.
		Insert(database.CategoryTable).
		Columns("icalobject_id", "text").
		Values(int64(999), "orphan"))
	assert.ErrorIs(t, err, model.ErrNoRecord)
}
