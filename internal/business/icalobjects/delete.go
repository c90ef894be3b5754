package icalobjects

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/jtx-board/internal/business/relations"
)

// Delete removes the object together with its subtree and series.
func (s *Service) Delete(ctx context.Context, id int64) (*relations.DeleteResult, error) {
	unlock, err := s.lockSeries(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	res, err := s.relations.DeleteWithDescendants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("relations.DeleteWithDescendants: %w", err)
	}

	return res, nil
}
