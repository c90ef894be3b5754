package database

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// pgxUtil обертка для упрощенной работы с pgx.
type pgxUtil struct {
	pool *pgxpool.Pool
}

// NewPGX создает структуру, с помощью которой получается доступ к pgx pool
func NewPGX(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}

	return &pgxUtil{pool: pool}, nil
}

// BeginTx транзакцию.
func (p *pgxUtil) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}

	return &pgxTxUtil{pgxTx: tx}, nil
}

func (p *pgxUtil) Driver() string {
	return DriverPostgres
}

func (p *pgxUtil) Close() {
	p.pool.Close()
}

// ExecRaw исполняет query.
func (p *pgxUtil) ExecRaw(ctx context.Context, sql string, arguments ...interface{}) (int64, error) {
	return pgxExecRaw(ctx, p.pool, sql, arguments...)
}

// Exec исполняет query.
func (p *pgxUtil) Exec(ctx context.Context, sqlizer Sqlizer) (int64, error) {
	return pgxExecFn(ctx, p.pool, sqlizer)
}

// Select может сканировать сразу несколько рядов в slice.
// Если рядов нет, возвращает nil.
func (p *pgxUtil) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return pgxSelectFn(ctx, p.pool, dst, sqlizer)
}

// Get сканирует один ряд.
// Если рядов нет, возвращает model.ErrNoRecord.
func (p *pgxUtil) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return pgxGetFn(ctx, p.pool, dst, sqlizer)
}

// pgxTxUtil обертка над транзакцией.
type pgxTxUtil struct {
	pgxTx pgx.Tx
}

func (t *pgxTxUtil) ExecRaw(ctx context.Context, sql string, arguments ...interface{}) (int64, error) {
	return pgxExecRaw(ctx, t.pgxTx, sql, arguments...)
}

// Exec исполняет query.
func (t *pgxTxUtil) Exec(ctx context.Context, sqlizer Sqlizer) (int64, error) {
	return pgxExecFn(ctx, t.pgxTx, sqlizer)
}

// Select может сканировать сразу несколько рядов в slice.
// Если рядов нет, возвращает nil.
func (t *pgxTxUtil) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return pgxSelectFn(ctx, t.pgxTx, dst, sqlizer)
}

// Get сканирует один ряд.
// Если рядов нет, возвращает model.ErrNoRecord.
func (t *pgxTxUtil) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return pgxGetFn(ctx, t.pgxTx, dst, sqlizer)
}

// Commit завершает транзакцию.
func (t *pgxTxUtil) Commit(ctx context.Context) error {
	return mapError(t.pgxTx.Commit(ctx))
}

// Rollback откатывает транзакцию.
// Повторный вызов после Commit ничего не делает.
func (t *pgxTxUtil) Rollback(ctx context.Context) error {
	err := t.pgxTx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

type pgxExecer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// Запросы строятся с плейсхолдерами "?", postgres ожидает "$n".
func toDollar(sqlizer Sqlizer) (string, []interface{}, error) {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("ToSql: %w", err)
	}

	query, err = sq.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return "", nil, fmt.Errorf("replace placeholders: %w", err)
	}

	return query, args, nil
}

func pgxExecRaw(ctx context.Context, e pgxExecer, query string, args ...interface{}) (int64, error) {
	query, err := sq.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return 0, fmt.Errorf("replace placeholders: %w", err)
	}

	tag, err := e.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}

	return tag.RowsAffected(), nil
}

func pgxExecFn(ctx context.Context, e pgxExecer, sqlizer Sqlizer) (int64, error) {
	query, args, err := toDollar(sqlizer)
	if err != nil {
		return 0, err
	}

	tag, err := e.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}

	return tag.RowsAffected(), nil
}

func pgxSelectFn(ctx context.Context, q pgxscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := toDollar(sqlizer)
	if err != nil {
		return err
	}

	return mapError(pgxscan.Select(ctx, q, dst, query, args...))
}

func pgxGetFn(ctx context.Context, q pgxscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := toDollar(sqlizer)
	if err != nil {
		return err
	}

	if err := pgxscan.Get(ctx, q, dst, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return model.ErrNoRecord
		}
		return mapError(err)
	}

	return nil
}
