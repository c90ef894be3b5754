package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/georgysavva/scany/sqlscan"
	_ "github.com/mattn/go-sqlite3"
)

// sqlUtil обертка для работы с database/sql драйверами.
type sqlUtil struct {
	db     *sql.DB
	driver string
}

// NewSQLite открывает локальную базу. Используется одно соединение:
// внутри открытой транзакции нельзя обращаться к DB напрямую.
func NewSQLite(ctx context.Context, path string) (DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	db, err := sql.Open("sqlite3", path+sep+"_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return NewSQL(db, DriverSQLite), nil
}

// NewSQL оборачивает уже открытый *sql.DB.
func NewSQL(db *sql.DB, driver string) DB {
	return &sqlUtil{db: db, driver: driver}
}

func (s *sqlUtil) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}

	return &sqlTxUtil{tx: tx}, nil
}

func (s *sqlUtil) Driver() string {
	return s.driver
}

func (s *sqlUtil) Close() {
	s.db.Close()
}

func (s *sqlUtil) ExecRaw(ctx context.Context, query string, arguments ...interface{}) (int64, error) {
	return sqlExecRaw(ctx, s.db, query, arguments...)
}

func (s *sqlUtil) Exec(ctx context.Context, sqlizer Sqlizer) (int64, error) {
	return sqlExecFn(ctx, s.db, sqlizer)
}

func (s *sqlUtil) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return sqlSelectFn(ctx, s.db, dst, sqlizer)
}

func (s *sqlUtil) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return sqlGetFn(ctx, s.db, dst, sqlizer)
}

type sqlTxUtil struct {
	tx *sql.Tx
}

func (t *sqlTxUtil) ExecRaw(ctx context.Context, query string, arguments ...interface{}) (int64, error) {
	return sqlExecRaw(ctx, t.tx, query, arguments...)
}

func (t *sqlTxUtil) Exec(ctx context.Context, sqlizer Sqlizer) (int64, error) {
	return sqlExecFn(ctx, t.tx, sqlizer)
}

func (t *sqlTxUtil) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return sqlSelectFn(ctx, t.tx, dst, sqlizer)
}

func (t *sqlTxUtil) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return sqlGetFn(ctx, t.tx, dst, sqlizer)
}

func (t *sqlTxUtil) Commit(_ context.Context) error {
	return mapError(t.tx.Commit())
}

// Rollback после Commit ничего не делает.
func (t *sqlTxUtil) Rollback(_ context.Context) error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func sqlExecRaw(ctx context.Context, e sqlExecer, query string, args ...interface{}) (int64, error) {
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return n, nil
}

func sqlExecFn(ctx context.Context, e sqlExecer, sqlizer Sqlizer) (int64, error) {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return 0, fmt.Errorf("ToSql: %w", err)
	}

	return sqlExecRaw(ctx, e, query, args...)
}

func sqlSelectFn(ctx context.Context, q sqlscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return mapError(sqlscan.Select(ctx, q, dst, query, args...))
}

func sqlGetFn(ctx context.Context, q sqlscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	if err := sqlscan.Get(ctx, q, dst, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return model.ErrNoRecord
		}
		return mapError(err)
	}

	return nil
}
