package api

import (
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/SergeyKozhin/jtx-board/internal/pkg/validator"
)

type objectReq struct {
	Module            string      `json:"module"`
	Summary           string      `json:"summary"`
	Description       string      `json:"description"`
	Location          string      `json:"location"`
	URL               string      `json:"url"`
	Contact           string      `json:"contact"`
	Dtstart           *time.Time  `json:"dtstart"`
	DtstartTimezone   string      `json:"dtstart_timezone"`
	Due               *time.Time  `json:"due"`
	DueTimezone       string      `json:"due_timezone"`
	Completed         *time.Time  `json:"completed"`
	CompletedTimezone string      `json:"completed_timezone"`
	Status            string      `json:"status"`
	Classification    string      `json:"classification"`
	Percent           *int        `json:"percent"`
	Priority          *int        `json:"priority"`
	Color             *int64      `json:"color"`
	ColorHex          string      `json:"color_hex"`
	CollectionID      int64       `json:"collection_id"`
	Rrule             string      `json:"rrule"`
	Rdate             []time.Time `json:"rdate"`
	Exdate            []time.Time `json:"exdate"`
	Categories        []string    `json:"categories"`
}

// toObject checks the enum fields. Everything else is validated by the
// services.
func (req *objectReq) toObject() (*model.ICalObject, map[string]string) {
	v := validator.New()

	module, err := model.ParseModule(req.Module)
	v.Check(err == nil, "module", "must be one of JOURNAL, NOTE, TODO")

	var status model.Status
	if req.Status != "" && err == nil {
		status, err = model.ParseStatus(module.Component(), req.Status)
		v.Check(err == nil, "status", "is not a status of "+string(module.Component()))
	}

	if req.Classification != "" {
		_, err := model.ParseClassification(req.Classification)
		v.Check(err == nil, "classification", "must be one of PUBLIC, PRIVATE, CONFIDENTIAL")
	}

	color := req.Color
	if req.ColorHex != "" {
		v.Check(req.Color == nil, "color_hex", "only one of color and color_hex may be provided")
		v.Check(validator.Matches(req.ColorHex, validator.HexRX), "color_hex", "color_hex must be valid HEX color")
		if v.Valid() {
			argb, err := htmlToColor(req.ColorHex)
			v.Check(err == nil, "color_hex", "color_hex must be valid HEX color")
			color = &argb
		}
	}

	if !v.Valid() {
		return nil, v.Errors
	}

	return &model.ICalObject{
		Module:            module,
		Summary:           req.Summary,
		Description:       req.Description,
		Location:          req.Location,
		URL:               req.URL,
		Contact:           req.Contact,
		Dtstart:           req.Dtstart,
		DtstartTimezone:   req.DtstartTimezone,
		Due:               req.Due,
		DueTimezone:       req.DueTimezone,
		Completed:         req.Completed,
		CompletedTimezone: req.CompletedTimezone,
		Status:            status,
		Classification:    model.Classification(req.Classification),
		Percent:           req.Percent,
		Priority:          req.Priority,
		Color:             color,
		CollectionID:      req.CollectionID,
		Rrule:             req.Rrule,
		Rdate:             req.Rdate,
		Exdate:            req.Exdate,
		Categories:        req.Categories,
	}, nil
}

type objectResp struct {
	ID                    int64       `json:"id"`
	UID                   string      `json:"uid"`
	Module                string      `json:"module"`
	Component             string      `json:"component"`
	Summary               string      `json:"summary,omitempty"`
	Description           string      `json:"description,omitempty"`
	Location              string      `json:"location,omitempty"`
	URL                   string      `json:"url,omitempty"`
	Contact               string      `json:"contact,omitempty"`
	Dtstart               *time.Time  `json:"dtstart,omitempty"`
	DtstartTimezone       string      `json:"dtstart_timezone,omitempty"`
	Due                   *time.Time  `json:"due,omitempty"`
	DueTimezone           string      `json:"due_timezone,omitempty"`
	Completed             *time.Time  `json:"completed,omitempty"`
	CompletedTimezone     string      `json:"completed_timezone,omitempty"`
	Status                string      `json:"status,omitempty"`
	Classification        string      `json:"classification,omitempty"`
	Percent               *int        `json:"percent,omitempty"`
	Priority              *int        `json:"priority,omitempty"`
	Color                 *int64      `json:"color,omitempty"`
	ColorHex              string      `json:"color_hex,omitempty"`
	CollectionID          int64       `json:"collection_id"`
	Sequence              int64       `json:"sequence"`
	Dirty                 bool        `json:"dirty"`
	Created               time.Time   `json:"created"`
	LastModified          time.Time   `json:"last_modified"`
	Rrule                 string      `json:"rrule,omitempty"`
	Rdate                 []time.Time `json:"rdate,omitempty"`
	Exdate                []time.Time `json:"exdate,omitempty"`
	Recurid               *time.Time  `json:"recurid,omitempty"`
	RecurOriginalID       *int64      `json:"recur_original_id,omitempty"`
	IsRecurLinkedInstance bool        `json:"is_recur_linked_instance"`
	Categories            []string    `json:"categories"`
}

func mapToObjectResp(o *model.ICalObject) (*objectResp, error) {
	status := ""
	if o.Status != nil {
		status = o.Status.String()
	}

	categories := o.Categories
	if categories == nil {
		categories = []string{}
	}

	return &objectResp{
		ID:                    o.ID,
		UID:                   o.UID,
		Module:                string(o.Module),
		Component:             string(o.Component),
		Summary:               o.Summary,
		Description:           o.Description,
		Location:              o.Location,
		URL:                   o.URL,
		Contact:               o.Contact,
		Dtstart:               o.Dtstart,
		DtstartTimezone:       o.DtstartTimezone,
		Due:                   o.Due,
		DueTimezone:           o.DueTimezone,
		Completed:             o.Completed,
		CompletedTimezone:     o.CompletedTimezone,
		Status:                status,
		Classification:        string(o.Classification),
		Percent:               o.Percent,
		Priority:              o.Priority,
		Color:                 o.Color,
		ColorHex:              colorToHTML(o.Color),
		CollectionID:          o.CollectionID,
		Sequence:              o.Sequence,
		Dirty:                 o.Dirty,
		Created:               o.Created,
		LastModified:          o.LastModified,
		Rrule:                 o.Rrule,
		Rdate:                 o.Rdate,
		Exdate:                o.Exdate,
		Recurid:               o.Recurid,
		RecurOriginalID:       o.RecurOriginalID,
		IsRecurLinkedInstance: o.IsRecurLinkedInstance,
		Categories:            categories,
	}, nil
}

type rowResp struct {
	ID                    int64      `json:"id"`
	UID                   string     `json:"uid"`
	Module                string     `json:"module"`
	Component             string     `json:"component"`
	Summary               string     `json:"summary,omitempty"`
	Description           string     `json:"description,omitempty"`
	Location              string     `json:"location,omitempty"`
	URL                   string     `json:"url,omitempty"`
	Contact               string     `json:"contact,omitempty"`
	Dtstart               *time.Time `json:"dtstart,omitempty"`
	DtstartTimezone       string     `json:"dtstart_timezone,omitempty"`
	Due                   *time.Time `json:"due,omitempty"`
	DueTimezone           string     `json:"due_timezone,omitempty"`
	Completed             *time.Time `json:"completed,omitempty"`
	CompletedTimezone     string     `json:"completed_timezone,omitempty"`
	Status                string     `json:"status,omitempty"`
	Classification        string     `json:"classification,omitempty"`
	Percent               *int       `json:"percent,omitempty"`
	Priority              *int       `json:"priority,omitempty"`
	Created               time.Time  `json:"created"`
	LastModified          time.Time  `json:"last_modified"`
	Sequence              int64      `json:"sequence"`
	ColorCollection       *int64     `json:"color_collection,omitempty"`
	ColorItem             *int64     `json:"color_item,omitempty"`
	ColorHex              string     `json:"color_hex,omitempty"`
	CollectionID          int64      `json:"collection_id"`
	AccountName           string     `json:"account_name,omitempty"`
	CollectionDisplayName string     `json:"collection_display_name,omitempty"`
	IsReadOnly            bool       `json:"is_read_only"`
	UploadPending         bool       `json:"upload_pending"`
	Recurid               *time.Time `json:"recurid,omitempty"`
	RecurOriginalID       *int64     `json:"recur_original_id,omitempty"`
	IsRecurringOriginal   bool       `json:"is_recurring_original"`
	IsRecurringInstance   bool       `json:"is_recurring_instance"`
	IsLinkedRecurInstance bool       `json:"is_linked_recur_instance"`
	IsChildOfJournal      bool       `json:"is_child_of_journal"`
	IsChildOfNote         bool       `json:"is_child_of_note"`
	IsChildOfTodo         bool       `json:"is_child_of_todo"`
	VTodoUIDOfParent      string     `json:"vtodo_uid_of_parent,omitempty"`
	VJournalUIDOfParent   string     `json:"vjournal_uid_of_parent,omitempty"`
	Categories            string     `json:"categories,omitempty"`
	NumSubtasks           int64      `json:"num_subtasks"`
	NumSubnotes           int64      `json:"num_subnotes"`
	NumAttachments        int64      `json:"num_attachments"`
	NumAttendees          int64      `json:"num_attendees"`
	NumComments           int64      `json:"num_comments"`
	NumRelatedTodos       int64      `json:"num_related_todos"`
	NumResources          int64      `json:"num_resources"`
	NumAlarms             int64      `json:"num_alarms"`
	AudioAttachment       string     `json:"audio_attachment,omitempty"`
}

func mapToRowResp(r *model.ICal4List) (*rowResp, error) {
	return &rowResp{
		ID:                    r.ID,
		UID:                   r.UID,
		Module:                string(r.Module),
		Component:             string(r.Component),
		Summary:               r.Summary,
		Description:           r.Description,
		Location:              r.Location,
		URL:                   r.URL,
		Contact:               r.Contact,
		Dtstart:               r.Dtstart,
		DtstartTimezone:       r.DtstartTimezone,
		Due:                   r.Due,
		DueTimezone:           r.DueTimezone,
		Completed:             r.Completed,
		CompletedTimezone:     r.CompletedTimezone,
		Status:                r.Status,
		Classification:        r.Classification,
		Percent:               r.Percent,
		Priority:              r.Priority,
		Created:               r.Created,
		LastModified:          r.LastModified,
		Sequence:              r.Sequence,
		ColorCollection:       r.ColorCollection,
		ColorItem:             r.ColorItem,
		ColorHex:              colorToHTML(rowColor(r)),
		CollectionID:          r.CollectionID,
		AccountName:           r.AccountName,
		CollectionDisplayName: r.CollectionDisplayName,
		IsReadOnly:            r.IsReadOnly,
		UploadPending:         r.UploadPending,
		Recurid:               r.Recurid,
		RecurOriginalID:       r.RecurOriginalID,
		IsRecurringOriginal:   r.IsRecurringOriginal,
		IsRecurringInstance:   r.IsRecurringInstance,
		IsLinkedRecurInstance: r.IsLinkedRecurInstance,
		IsChildOfJournal:      r.IsChildOfJournal,
		IsChildOfNote:         r.IsChildOfNote,
		IsChildOfTodo:         r.IsChildOfTodo,
		VTodoUIDOfParent:      r.VTodoUIDOfParent,
		VJournalUIDOfParent:   r.VJournalUIDOfParent,
		Categories:            r.Categories,
		NumSubtasks:           r.NumSubtasks,
		NumSubnotes:           r.NumSubnotes,
		NumAttachments:        r.NumAttachments,
		NumAttendees:          r.NumAttendees,
		NumComments:           r.NumComments,
		NumRelatedTodos:       r.NumRelatedTodos,
		NumResources:          r.NumResources,
		NumAlarms:             r.NumAlarms,
		AudioAttachment:       r.AudioAttachment,
	}, nil
}

// rowColor is the color a row is drawn with: its own or its collection's.
func rowColor(r *model.ICal4List) *int64 {
	if r.ColorItem != nil {
		return r.ColorItem
	}
	return r.ColorCollection
}

type collectionResp struct {
	ID               int64  `json:"id"`
	DisplayName      string `json:"display_name"`
	AccountName      string `json:"account_name"`
	AccountType      string `json:"account_type"`
	Color            *int64 `json:"color,omitempty"`
	ColorHex         string `json:"color_hex,omitempty"`
	ReadOnly         bool   `json:"read_only"`
	SupportsVJournal bool   `json:"supports_vjournal"`
	SupportsVTodo    bool   `json:"supports_vtodo"`
}

func mapToCollectionResp(c *model.Collection) (*collectionResp, error) {
	return &collectionResp{
		ID:               c.ID,
		DisplayName:      c.DisplayName,
		AccountName:      c.AccountName,
		AccountType:      c.AccountType,
		Color:            c.Color,
		ColorHex:         colorToHTML(c.Color),
		ReadOnly:         c.ReadOnly,
		SupportsVJournal: c.SupportsVJournal,
		SupportsVTodo:    c.SupportsVTodo,
	}, nil
}
