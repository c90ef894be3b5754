package database

import (
	"context"
)

// Драйверы хранилища.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB содержит основные операции для работы с базой данных.
type DB interface {
	Queryable
	BeginTx(ctx context.Context) (Tx, error)
	Driver() string
	Close()
}

// Tx - транзакция
type Tx interface {
	Queryable
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Queryable содержит основные операции для query-инга db.
// Exec возвращает количество затронутых рядов.
type Queryable interface {
	Exec(ctx context.Context, sqlizer Sqlizer) (int64, error)
	Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error
	Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error
	ExecRaw(ctx context.Context, sql string, arguments ...interface{}) (int64, error)
}

// Sqlizer is satisfied by every squirrel builder and by prebuilt queries.
type Sqlizer interface {
	ToSql() (sql string, args []interface{}, err error)
}
