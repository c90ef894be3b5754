package icalobjects

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/google/uuid"
)

func (s *Service) Create(ctx context.Context, o *model.ICalObject) (*model.ICalObject, error) {
	var res *model.ICalObject
	err := s.withTx(ctx, func(tx database.Tx) error {
		id, err := s.create(ctx, tx, o)
		if err != nil {
			return err
		}

		res, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("created object", "id", res.ID, "module", res.Module, "recurring", res.IsOrigin())

	return res, nil
}

// AddSubItem creates o and links it as a child of parentID.
func (s *Service) AddSubItem(ctx context.Context, parentID int64, o *model.ICalObject) (*model.ICalObject, error) {
	var res *model.ICalObject
	err := s.withTx(ctx, func(tx database.Tx) error {
		if _, err := s.objects.GetObjectByID(ctx, tx, parentID); err != nil {
			return fmt.Errorf("objects.GetObjectByID: %w", err)
		}

		id, err := s.create(ctx, tx, o)
		if err != nil {
			return err
		}

		if err := s.relations.LinkTx(ctx, tx, parentID, id, model.ReltypeChild); err != nil {
			return fmt.Errorf("relations.LinkTx: %w", err)
		}

		res, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("added sub item", "parent_id", parentID, "id", res.ID, "module", res.Module)

	return res, nil
}

func (s *Service) create(ctx context.Context, q database.Queryable, o *model.ICalObject) (int64, error) {
	if err := s.validate(o); err != nil {
		return 0, err
	}

	if o.CollectionID == 0 {
		o.CollectionID = database.LocalCollectionID
	}
	if err := s.checkCollection(ctx, q, o); err != nil {
		return 0, err
	}

	if o.UID == "" {
		o.UID = uuid.NewString()
	}
	s.touch(o)
	o.Created = o.LastModified
	o.Sequence = 0
	o.Deleted = false
	o.Recurid = nil
	o.RecurOriginalID = nil
	o.IsRecurLinkedInstance = false

	id, err := s.objects.CreateObject(ctx, q, o)
	if err != nil {
		return 0, fmt.Errorf("objects.CreateObject: %w", err)
	}
	o.ID = id

	if err := s.categories.ReplaceCategories(ctx, q, id, o.Categories); err != nil {
		return 0, fmt.Errorf("categories.ReplaceCategories: %w", err)
	}

	if o.IsOrigin() {
		if _, err := s.recurrence.ReconcileTx(ctx, q, id); err != nil {
			return 0, fmt.Errorf("recurrence.ReconcileTx: %w", err)
		}
	}

	return id, nil
}
