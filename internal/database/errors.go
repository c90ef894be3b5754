package database

import (
	"errors"
	"fmt"

	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/jackc/pgconn"
	"github.com/mattn/go-sqlite3"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError переводит нарушения ограничений обоих драйверов в ошибки модели.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", model.ErrAlreadyExists, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %w", model.ErrNoRecord, err)
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", model.ErrAlreadyExists, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", model.ErrNoRecord, err)
		}
	}

	return err
}
