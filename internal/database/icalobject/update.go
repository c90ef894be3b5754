package icalobject

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

// UpdateObject overwrites every stored column of the object.
func (*Repository) UpdateObject(ctx context.Context, q database.Queryable, o *model.ICalObject) error {
	set := make(map[string]interface{}, len(columns)-1)
	for i, v := range values(o) {
		set[columns[i+1]] = v
	}

	qb := database.SQL.
		Update(database.ICalObjectTable).
		SetMap(set).
		Where(sq.Eq{"id": o.ID})

	n, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if n == 0 {
		return model.ErrNoRecord
	}

	return nil
}

// ClearOrigin cuts the back-reference of the given instances.
// The instances become plain entities.
func (*Repository) ClearOrigin(ctx context.Context, q database.Queryable, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	qb := database.SQL.
		Update(database.ICalObjectTable).
		Set("recur_original_icalobject_id", nil).
		Set("is_recur_linked_instance", false).
		Where(sq.Eq{"id": ids})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
