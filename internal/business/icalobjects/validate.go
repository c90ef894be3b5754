package icalobjects

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/jtx-board/internal/business/recurrence"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

func (s *Service) validate(o *model.ICalObject) error {
	if _, err := model.ParseModule(string(o.Module)); err != nil {
		return err
	}
	o.Component = o.Module.Component()

	if o.Status != nil && o.Status.Component() != o.Component {
		return model.Invalid("status", model.ErrStatusDomain, "%s is not a status of %s", o.Status, o.Component)
	}

	if o.Classification != "" {
		if _, err := model.ParseClassification(string(o.Classification)); err != nil {
			return err
		}
	}

	if o.Percent != nil && (*o.Percent < 0 || *o.Percent > 100) {
		return model.Invalid("percent", model.ErrInvalidInput, "must be between 0 and 100")
	}
	if o.Priority != nil && (*o.Priority < 0 || *o.Priority > 9) {
		return model.Invalid("priority", model.ErrInvalidInput, "must be between 0 and 9")
	}

	if o.Dtstart != nil && o.Due != nil && o.Due.Before(*o.Dtstart) {
		return model.Invalid("due", model.ErrDueBeforeStart, "")
	}

	if !o.IsOrigin() {
		if len(o.Rdate) != 0 || len(o.Exdate) != 0 {
			return model.Invalid("rdate", model.ErrInvalidInput, "recurrence dates need a rule")
		}
		return nil
	}

	if o.Module == model.ModuleNote {
		return model.Invalid("rrule", model.ErrRecurrenceOnNote, "")
	}
	if o.Dtstart == nil {
		return model.Invalid("dtstart", model.ErrInvalidInput, "recurring objects need a start date")
	}

	loc := model.Location(o.DtstartTimezone, s.location)
	if _, err := recurrence.ParseRule(o.Rrule, o.Dtstart.In(loc)); err != nil {
		return err
	}

	return nil
}

func (s *Service) checkCollection(ctx context.Context, q database.Queryable, o *model.ICalObject) error {
	c, err := s.collections.GetCollectionByID(ctx, q, o.CollectionID)
	if errors.Is(err, model.ErrNoRecord) {
		return model.Invalid("collection_id", model.ErrInvalidInput, "collection %d does not exist", o.CollectionID)
	}
	if err != nil {
		return fmt.Errorf("collections.GetCollectionByID: %w", err)
	}

	if c.ReadOnly {
		return model.Invalid("collection_id", model.ErrInvalidInput, "collection %q is read only", c.DisplayName)
	}

	supported := c.SupportsVJournal
	if o.Component == model.ComponentVTodo {
		supported = c.SupportsVTodo
	}
	if !supported {
		return model.Invalid("collection_id", model.ErrInvalidInput, "collection %q does not support %s", c.DisplayName, o.Component)
	}

	return nil
}
