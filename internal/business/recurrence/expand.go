package recurrence

import (
	"sort"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/model"
)

// Occurrences returns the instance start times of an origin: rule
// occurrences plus RDATE minus EXDATE, sorted and without the origin's own
// start. def is the location of floating dates. More than max occurrences is
// a validation error.
func Occurrences(origin *model.ICalObject, def *time.Location, max int) ([]time.Time, error) {
	if origin.Dtstart == nil {
		return nil, model.Invalid("dtstart", model.ErrInvalidInput, "recurring objects need a start date")
	}

	loc := model.Location(origin.DtstartTimezone, def)
	dtstart := origin.Dtstart.In(loc)

	rule, err := ParseRule(origin.Rrule, dtstart)
	if err != nil {
		return nil, err
	}

	if n := rule.Count() + len(origin.Rdate); n > max {
		return nil, model.Invalid("rrule", model.ErrUnsupportedRule, "%d occurrences exceed the limit of %d", n, max)
	}

	r, err := rule.RRule(dtstart)
	if err != nil {
		return nil, model.Invalid("rrule", model.ErrUnsupportedRule, "%v", err)
	}

	// rrule works in whole seconds; the sub-second part of dtstart is put back.
	frac := dtstart.Sub(dtstart.Truncate(time.Second))

	excluded := make(map[int64]struct{}, len(origin.Exdate)+1)
	excluded[dtstart.UnixMilli()] = struct{}{}
	for _, ex := range origin.Exdate {
		excluded[ex.UnixMilli()] = struct{}{}
	}

	seen := make(map[int64]struct{})
	var res []time.Time
	add := func(t time.Time) {
		ms := t.UnixMilli()
		if _, ok := excluded[ms]; ok {
			return
		}
		if _, ok := seen[ms]; ok {
			return
		}
		seen[ms] = struct{}{}
		res = append(res, time.UnixMilli(ms).UTC())
	}

	for _, t := range r.All() {
		add(t.Add(frac))
	}
	for _, t := range origin.Rdate {
		add(t)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Before(res[j])
	})

	return res, nil
}
