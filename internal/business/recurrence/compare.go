package recurrence

import (
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/model"
)

// sameContent compares the fields an instance mirrors from its origin.
func sameContent(a, b *model.ICalObject) bool {
	return a.Module == b.Module &&
		a.Component == b.Component &&
		a.Summary == b.Summary &&
		a.Description == b.Description &&
		a.Location == b.Location &&
		a.URL == b.URL &&
		a.Contact == b.Contact &&
		statusText(a.Status) == statusText(b.Status) &&
		a.Classification == b.Classification &&
		equalInt(a.Percent, b.Percent) &&
		equalInt(a.Priority, b.Priority) &&
		equalInt64(a.Color, b.Color) &&
		a.CollectionID == b.CollectionID &&
		equalTime(a.Dtstart, b.Dtstart) &&
		a.DtstartTimezone == b.DtstartTimezone &&
		equalTime(a.Due, b.Due) &&
		a.DueTimezone == b.DueTimezone &&
		a.Rrule == b.Rrule &&
		len(a.Rdate) == len(b.Rdate) &&
		len(a.Exdate) == len(b.Exdate)
}

func statusText(s model.Status) string {
	if s == nil {
		return ""
	}
	return string(s.Component()) + "/" + s.String()
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UnixMilli() == b.UnixMilli()
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
