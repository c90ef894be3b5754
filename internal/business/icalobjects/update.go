package icalobjects

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/jtx-board/internal/business/recurrence"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

// Update replaces the editable fields of the object. Editing an instance turns
// it into an exception of its series; editing an origin reconciles its
// instances in the same transaction.
func (s *Service) Update(ctx context.Context, id int64, o *model.ICalObject) (*model.ICalObject, error) {
	unlock, err := s.lockSeries(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var res *model.ICalObject
	var reconciled *recurrence.ReconcileResult
	err = s.withTx(ctx, func(tx database.Tx) error {
		existing, err := s.objects.GetObjectByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("objects.GetObjectByID: %w", err)
		}

		if existing.IsInstance() && (o.IsOrigin() || len(o.Rdate) != 0 || len(o.Exdate) != 0) {
			return model.Invalid("rrule", model.ErrInvalidInput, "recurrence instances cannot carry a rule")
		}

		if err := s.validate(o); err != nil {
			return err
		}

		if o.CollectionID == 0 {
			o.CollectionID = existing.CollectionID
		}
		if o.CollectionID != existing.CollectionID {
			if err := s.checkCollection(ctx, tx, o); err != nil {
				return err
			}
		}

		o.ID = id
		o.UID = existing.UID
		o.Created = existing.Created
		o.Deleted = existing.Deleted
		o.Sequence = existing.Sequence + 1
		o.Recurid = existing.Recurid
		o.RecurOriginalID = existing.RecurOriginalID
		o.IsRecurLinkedInstance = false
		s.touch(o)

		if err := s.objects.UpdateObject(ctx, tx, o); err != nil {
			return fmt.Errorf("objects.UpdateObject: %w", err)
		}

		if err := s.categories.ReplaceCategories(ctx, tx, id, o.Categories); err != nil {
			return fmt.Errorf("categories.ReplaceCategories: %w", err)
		}

		if existing.IsOrigin() || o.IsOrigin() {
			r, err := s.recurrence.ReconcileTx(ctx, tx, id)
			if err != nil {
				return fmt.Errorf("recurrence.ReconcileTx: %w", err)
			}
			reconciled = r
		}

		res, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if reconciled != nil {
		s.logger.Infow("updated recurring object",
			"id", id,
			"created", reconciled.Created,
			"updated", reconciled.Updated,
			"deleted", reconciled.Deleted,
		)
	} else {
		s.logger.Infow("updated object", "id", id)
	}

	return res, nil
}
