package icalobject

import (
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

type icalObjectDTO struct {
	ID                    int64   `db:"id"`
	Module                string  `db:"module"`
	Component             string  `db:"component"`
	Summary               *string `db:"summary"`
	Description           *string `db:"description"`
	Location              *string `db:"location"`
	URL                   *string `db:"url"`
	Contact               *string `db:"contact"`
	Dtstart               *int64  `db:"dtstart"`
	DtstartTimezone       *string `db:"dtstart_timezone"`
	Due                   *int64  `db:"due"`
	DueTimezone           *string `db:"due_timezone"`
	Completed             *int64  `db:"completed"`
	CompletedTimezone     *string `db:"completed_timezone"`
	Status                *string `db:"status"`
	Classification        *string `db:"classification"`
	Percent               *int    `db:"percent"`
	Priority              *int    `db:"priority"`
	Color                 *int64  `db:"color"`
	CollectionID          int64   `db:"collection_id"`
	UID                   string  `db:"uid"`
	Sequence              int64   `db:"sequence"`
	Dirty                 bool    `db:"dirty"`
	Deleted               bool    `db:"deleted"`
	Created               int64   `db:"created"`
	LastModified          int64   `db:"last_modified"`
	Dtstamp               int64   `db:"dtstamp"`
	Rrule                 *string `db:"rrule"`
	Rdate                 *string `db:"rdate"`
	Exdate                *string `db:"exdate"`
	Recurid               *int64  `db:"recurid"`
	RecurOriginalID       *int64  `db:"recur_original_icalobject_id"`
	IsRecurLinkedInstance bool    `db:"is_recur_linked_instance"`
}

func mapToObject(dto *icalObjectDTO) *model.ICalObject {
	o := &model.ICalObject{
		ID:                    dto.ID,
		Module:                model.Module(dto.Module),
		Component:             model.Component(dto.Component),
		Summary:               database.String(dto.Summary),
		Description:           database.String(dto.Description),
		Location:              database.String(dto.Location),
		URL:                   database.String(dto.URL),
		Contact:               database.String(dto.Contact),
		Dtstart:               database.Time(dto.Dtstart),
		DtstartTimezone:       database.String(dto.DtstartTimezone),
		Due:                   database.Time(dto.Due),
		DueTimezone:           database.String(dto.DueTimezone),
		Completed:             database.Time(dto.Completed),
		CompletedTimezone:     database.String(dto.CompletedTimezone),
		Classification:        model.Classification(database.String(dto.Classification)),
		Percent:               dto.Percent,
		Priority:              dto.Priority,
		Color:                 dto.Color,
		CollectionID:          dto.CollectionID,
		UID:                   dto.UID,
		Sequence:              dto.Sequence,
		Dirty:                 dto.Dirty,
		Deleted:               dto.Deleted,
		Created:               *database.Time(&dto.Created),
		LastModified:          *database.Time(&dto.LastModified),
		Dtstamp:               *database.Time(&dto.Dtstamp),
		Rrule:                 database.String(dto.Rrule),
		Rdate:                 database.SplitMillis(dto.Rdate),
		Exdate:                database.SplitMillis(dto.Exdate),
		Recurid:               database.Time(dto.Recurid),
		RecurOriginalID:       dto.RecurOriginalID,
		IsRecurLinkedInstance: dto.IsRecurLinkedInstance,
	}

	// Rows written by other clients may carry statuses outside the
	// component's domain. They are read as absent.
	if dto.Status != nil {
		if st, err := model.ParseStatus(o.Component, *dto.Status); err == nil {
			o.Status = st
		}
	}

	return o
}

func statusValue(s model.Status) *string {
	if s == nil {
		return nil
	}
	return database.NullString(s.String())
}

// values lists every column but id in the order of columns[1:].
func values(o *model.ICalObject) []interface{} {
	return []interface{}{
		string(o.Module),
		string(o.Component),
		database.NullString(o.Summary),
		database.NullString(o.Description),
		database.NullString(o.Location),
		database.NullString(o.URL),
		database.NullString(o.Contact),
		database.Millis(o.Dtstart),
		database.NullString(o.DtstartTimezone),
		database.Millis(o.Due),
		database.NullString(o.DueTimezone),
		database.Millis(o.Completed),
		database.NullString(o.CompletedTimezone),
		statusValue(o.Status),
		database.NullString(string(o.Classification)),
		o.Percent,
		o.Priority,
		o.Color,
		o.CollectionID,
		o.UID,
		o.Sequence,
		o.Dirty,
		o.Deleted,
		o.Created.UnixMilli(),
		o.LastModified.UnixMilli(),
		o.Dtstamp.UnixMilli(),
		database.NullString(o.Rrule),
		database.JoinMillis(o.Rdate),
		database.JoinMillis(o.Exdate),
		database.Millis(o.Recurid),
		o.RecurOriginalID,
		o.IsRecurLinkedInstance,
	}
}
