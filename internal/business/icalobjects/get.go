package icalobjects

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

func (s *Service) Get(ctx context.Context, id int64) (*model.ICalObject, error) {
	return s.get(ctx, s.db, id)
}

func (s *Service) get(ctx context.Context, q database.Queryable, id int64) (*model.ICalObject, error) {
	o, err := s.objects.GetObjectByID(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("objects.GetObjectByID: %w", err)
	}

	cats, err := s.categories.GetCategories(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("categories.GetCategories: %w", err)
	}

	o.Categories = make([]string, len(cats))
	for i, c := range cats {
		o.Categories[i] = c.Text
	}

	return o, nil
}
