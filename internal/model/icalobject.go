package model

import (
	"fmt"
	"time"
)

// TZAllDay marks a date as all-day instead of naming a timezone.
const TZAllDay = "ALLDAY"

// ICalObject is a journal, note or task.
// Empty strings stand for absent text values; an empty timezone means floating time.
type ICalObject struct {
	ID          int64
	Module      Module
	Component   Component
	Summary     string
	Description string
	Location    string
	URL         string
	Contact     string

	Dtstart           *time.Time
	DtstartTimezone   string
	Due               *time.Time
	DueTimezone       string
	Completed         *time.Time
	CompletedTimezone string

	Status         Status
	Classification Classification
	Percent        *int
	Priority       *int
	Color          *int64

	CollectionID int64
	UID          string
	Sequence     int64
	Dirty        bool
	Deleted      bool
	Created      time.Time
	LastModified time.Time
	Dtstamp      time.Time

	Rrule                 string
	Rdate                 []time.Time
	Exdate                []time.Time
	Recurid               *time.Time
	RecurOriginalID       *int64
	IsRecurLinkedInstance bool

	// Categories are stored in their own table and loaded by the services.
	Categories []string
}

// IsOrigin reports whether the object carries a recurrence rule.
func (o *ICalObject) IsOrigin() bool {
	return o.Rrule != ""
}

// IsInstance reports whether the object was materialized from an origin.
func (o *ICalObject) IsInstance() bool {
	return o.RecurOriginalID != nil
}

// CheckLinkage verifies that the recurrence linkage markers agree with each other.
func (o *ICalObject) CheckLinkage() error {
	if o.IsRecurLinkedInstance && (o.RecurOriginalID == nil || o.Recurid == nil) {
		return fmt.Errorf("%w: object %d is a linked instance without origin or recurrence id", ErrInvariantViolation, o.ID)
	}
	if o.IsInstance() && o.IsOrigin() && o.IsRecurLinkedInstance {
		return fmt.Errorf("%w: linked instance %d carries its own rule", ErrInvariantViolation, o.ID)
	}
	return nil
}

// Location resolves a stored timezone name. All-day dates are kept in UTC and
// floating dates use def.
func Location(tz string, def *time.Location) *time.Location {
	switch tz {
	case "":
		return def
	case TZAllDay:
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return def
	}
	return loc
}

type Category struct {
	ID           int64
	ICalObjectID int64
	Text         string
}

type Collection struct {
	ID               int64
	DisplayName      string
	AccountName      string
	AccountType      string
	Color            *int64
	ReadOnly         bool
	SupportsVJournal bool
	SupportsVTodo    bool
}

const AccountTypeLocal = "LOCAL"

type Relatedto struct {
	ID                 int64
	ICalObjectID       int64
	LinkedICalObjectID int64
	Text               string
	Reltype            Reltype
}
