package icalobject

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

func (*Repository) GetObjectByID(ctx context.Context, q database.Queryable, id int64) (*model.ICalObject, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	var dtos []*icalObjectDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToObject(dtos[0]), nil
}

func (*Repository) GetObjectByUID(ctx context.Context, q database.Queryable, uid string) (*model.ICalObject, error) {
	qb := baseQuery.
		Where(sq.Eq{"uid": uid})

	var dtos []*icalObjectDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToObject(dtos[0]), nil
}

// GetInstances returns linked and unlinked instances of an origin ordered by recurid.
func (*Repository) GetInstances(ctx context.Context, q database.Queryable, originID int64) ([]*model.ICalObject, error) {
	qb := baseQuery.
		Where(sq.Eq{"recur_original_icalobject_id": originID}).
		OrderBy("recurid", "id")

	var dtos []*icalObjectDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.ICalObject, len(dtos))
	for i, d := range dtos {
		res[i] = mapToObject(d)
	}

	return res, nil
}

// GetOriginIDs returns the ids of all objects carrying a recurrence rule.
func (*Repository) GetOriginIDs(ctx context.Context, q database.Queryable) ([]int64, error) {
	qb := database.SQL.
		Select("id").
		From(database.ICalObjectTable).
		Where(sq.And{
			sq.NotEq{"rrule": nil},
			sq.NotEq{"rrule": ""},
			sq.Eq{"recur_original_icalobject_id": nil},
		}).
		OrderBy("id")

	var dtos []*struct{ ID int64 }
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]int64, len(dtos))
	for i, d := range dtos {
		res[i] = d.ID
	}

	return res, nil
}
