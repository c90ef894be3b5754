package icalobjects

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

// UpdateProgress sets the percent of a task and derives its status from it.
// Linked instances become exceptions.
func (s *Service) UpdateProgress(ctx context.Context, id int64, percent int) (*model.ICalObject, error) {
	if percent < 0 || percent > 100 {
		return nil, model.Invalid("percent", model.ErrInvalidInput, "must be between 0 and 100")
	}

	unlock, err := s.lockSeries(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var res *model.ICalObject
	err = s.withTx(ctx, func(tx database.Tx) error {
		o, err := s.objects.GetObjectByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("objects.GetObjectByID: %w", err)
		}

		if o.Module != model.ModuleTodo {
			return model.Invalid("module", model.ErrInvalidInput, "only tasks have a progress")
		}

		o.Percent = &percent
		o.Completed = nil
		o.CompletedTimezone = ""
		switch {
		case percent == 100:
			o.Status = model.TodoStatusCompleted
			completed := s.now().UTC()
			o.Completed = &completed
		case percent > 0:
			o.Status = model.TodoStatusInProcess
		default:
			o.Status = model.TodoStatusNeedsAction
		}

		o.Sequence++
		o.IsRecurLinkedInstance = false
		s.touch(o)

		if err := s.objects.UpdateObject(ctx, tx, o); err != nil {
			return fmt.Errorf("objects.UpdateObject: %w", err)
		}

		if o.IsOrigin() {
			if _, err := s.recurrence.ReconcileTx(ctx, tx, id); err != nil {
				return fmt.Errorf("recurrence.ReconcileTx: %w", err)
			}
		}

		res, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("updated progress", "id", id, "percent", percent)

	return res, nil
}
