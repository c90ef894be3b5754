package ical4list

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// List runs the query built from filter against the list view.
func (*Repository) List(ctx context.Context, q database.Queryable, filter model.ListFilter, clock Clock) ([]*model.ICal4List, error) {
	query, err := BuildListQuery(filter, clock)
	if err != nil {
		return nil, err
	}

	var dtos []*ical4ListDTO
	if err := q.Select(ctx, &dtos, query); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.ICal4List, len(dtos))
	for i, d := range dtos {
		res[i] = mapToRow(d)
	}

	return res, nil
}

func (*Repository) GetByID(ctx context.Context, q database.Queryable, id int64) (*model.ICal4List, error) {
	qb := database.SQL.
		Select("*").
		From(database.ICal4ListView).
		Where(sq.Eq{"id": id})

	var dtos []*ical4ListDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToRow(dtos[0]), nil
}
