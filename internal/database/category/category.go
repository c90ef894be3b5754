package category

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

type categoryDTO struct {
	ID           int64  `db:"id"`
	ICalObjectID int64  `db:"icalobject_id"`
	Text         string `db:"text"`
}

func (*Repository) GetCategories(ctx context.Context, q database.Queryable, objectID int64) ([]*model.Category, error) {
	qb := database.SQL.
		Select("id", "icalobject_id", "text").
		From(database.CategoryTable).
		Where(sq.Eq{"icalobject_id": objectID}).
		OrderBy("id")

	var dtos []*categoryDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Category, len(dtos))
	for i, d := range dtos {
		res[i] = &model.Category{
			ID:           d.ID,
			ICalObjectID: d.ICalObjectID,
			Text:         d.Text,
		}
	}

	return res, nil
}

// ReplaceCategories sets the categories of an object, keeping the given order.
// Duplicates and empty texts are dropped.
func (*Repository) ReplaceCategories(ctx context.Context, q database.Queryable, objectID int64, texts []string) error {
	del := database.SQL.
		Delete(database.CategoryTable).
		Where(sq.Eq{"icalobject_id": objectID})

	if _, err := q.Exec(ctx, del); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	seen := make(map[string]struct{}, len(texts))
	ins := database.SQL.
		Insert(database.CategoryTable).
		Columns("icalobject_id", "text")

	n := 0
	for _, t := range texts {
		if _, ok := seen[t]; ok || t == "" {
			continue
		}
		seen[t] = struct{}{}
		ins = ins.Values(objectID, t)
		n++
	}

	if n == 0 {
		return nil
	}

	if _, err := q.Exec(ctx, ins); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// GetAllCategories returns every distinct category text in alphabetical order.
func (*Repository) GetAllCategories(ctx context.Context, q database.Queryable) ([]string, error) {
	qb := database.SQL.
		Select("text").
		Distinct().
		From(database.CategoryTable).
		OrderBy("text")

	var res []string
	if err := q.Select(ctx, &res, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return res, nil
}
