package icalobject

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/jtx-board/internal/database"
)

// DeleteObjects removes the rows. Properties and relations cascade.
func (*Repository) DeleteObjects(ctx context.Context, q database.Queryable, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	qb := database.SQL.
		Delete(database.ICalObjectTable).
		Where(sq.Eq{"id": ids})

	n, err := q.Exec(ctx, qb)
	if err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return n, nil
}
