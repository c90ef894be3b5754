package icalobject

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

func (*Repository) CreateObject(ctx context.Context, q database.Queryable, o *model.ICalObject) (int64, error) {
	qb := database.SQL.
		Insert(database.ICalObjectTable).
		Columns(columns[1:]...).
		Values(values(o)...).
		Suffix("RETURNING id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
