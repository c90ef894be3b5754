package ical4list

import (
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

type ical4ListDTO struct {
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
	Created               int64   `db:"created"`
	LastModified          int64   `db:"last_modified"`
	Dtstamp               int64   `db:"dtstamp"`
	Sequence              int64   `db:"sequence"`
	UID                   string  `db:"uid"`
	ColorCollection       *int64  `db:"color_collection"`
	ColorItem             *int64  `db:"color_item"`
	CollectionID          int64   `db:"collection_id"`
	AccountName           *string `db:"account_name"`
	CollectionDisplayName *string `db:"collection_display_name"`
	Deleted               bool    `db:"deleted"`
	UploadPending         bool    `db:"upload_pending"`
	Recurid               *int64  `db:"recurid"`
	RecurOriginalID       *int64  `db:"recur_original_icalobject_id"`
	IsRecurringOriginal   bool    `db:"is_recurring_original"`
	IsRecurringInstance   bool    `db:"is_recurring_instance"`
	IsLinkedRecurInstance bool    `db:"is_recur_linked_instance"`
	IsChildOfJournal      bool    `db:"is_child_of_journal"`
	IsChildOfNote         bool    `db:"is_child_of_note"`
	IsChildOfTodo         bool    `db:"is_child_of_todo"`
	VTodoUIDOfParent      *string `db:"vtodo_uid_of_parent"`
	VJournalUIDOfParent   *string `db:"vjournal_uid_of_parent"`
	Categories            *string `db:"categories"`
	NumSubtasks           int64   `db:"num_subtasks"`
	NumSubnotes           int64   `db:"num_subnotes"`
	NumAttachments        int64   `db:"num_attachments"`
	NumAttendees          int64   `db:"num_attendees"`
	NumComments           int64   `db:"num_comments"`
	NumRelatedTodos       int64   `db:"num_related_todos"`
	NumResources          int64   `db:"num_resources"`
	NumAlarms             int64   `db:"num_alarms"`
	AudioAttachment       *string `db:"audio_attachment"`
	IsReadOnly            bool    `db:"is_read_only"`
}

func mapToRow(d *ical4ListDTO) *model.ICal4List {
	return &model.ICal4List{
		ID:                    d.ID,
		Module:                model.Module(d.Module),
		Component:             model.Component(d.Component),
		Summary:               database.String(d.Summary),
		Description:           database.String(d.Description),
		Location:              database.String(d.Location),
		URL:                   database.String(d.URL),
		Contact:               database.String(d.Contact),
		Dtstart:               database.Time(d.Dtstart),
		DtstartTimezone:       database.String(d.DtstartTimezone),
		Due:                   database.Time(d.Due),
		DueTimezone:           database.String(d.DueTimezone),
		Completed:             database.Time(d.Completed),
		CompletedTimezone:     database.String(d.CompletedTimezone),
		Status:                database.String(d.Status),
		Classification:        database.String(d.Classification),
		Percent:               d.Percent,
		Priority:              d.Priority,
		Created:               *database.Time(&d.Created),
		LastModified:          *database.Time(&d.LastModified),
		Dtstamp:               *database.Time(&d.Dtstamp),
		Sequence:              d.Sequence,
		UID:                   d.UID,
		ColorCollection:       d.ColorCollection,
		ColorItem:             d.ColorItem,
		CollectionID:          d.CollectionID,
		AccountName:           database.String(d.AccountName),
		CollectionDisplayName: database.String(d.CollectionDisplayName),
		Deleted:               d.Deleted,
		UploadPending:         d.UploadPending,
		Recurid:               database.Time(d.Recurid),
		RecurOriginalID:       d.RecurOriginalID,
		IsRecurringOriginal:   d.IsRecurringOriginal,
		IsRecurringInstance:   d.IsRecurringInstance,
		IsLinkedRecurInstance: d.IsLinkedRecurInstance,
		IsChildOfJournal:      d.IsChildOfJournal,
		IsChildOfNote:         d.IsChildOfNote,
		IsChildOfTodo:         d.IsChildOfTodo,
		VTodoUIDOfParent:      database.String(d.VTodoUIDOfParent),
		VJournalUIDOfParent:   database.String(d.VJournalUIDOfParent),
		Categories:            database.String(d.Categories),
		NumSubtasks:           d.NumSubtasks,
		NumSubnotes:           d.NumSubnotes,
		NumAttachments:        d.NumAttachments,
		NumAttendees:          d.NumAttendees,
		NumComments:           d.NumComments,
		NumRelatedTodos:       d.NumRelatedTodos,
		NumResources:          d.NumResources,
		NumAlarms:             d.NumAlarms,
		AudioAttachment:       database.String(d.AudioAttachment),
		IsReadOnly:            d.IsReadOnly,
	}
}
