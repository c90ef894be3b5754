package recurrence

import (
	"strings"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/teambition/rrule-go"
)

// Rule is a validated recurrence rule of the supported shape: a frequency,
// an interval and a count, plus weekdays for WEEKLY and one day of month for
// MONTHLY rules.
type Rule struct {
	option rrule.ROption
}

var supportedParts = map[string]struct{}{
	"FREQ":       {},
	"INTERVAL":   {},
	"COUNT":      {},
	"BYDAY":      {},
	"BYMONTHDAY": {},
}

func unsupported(format string, args ...interface{}) error {
	return model.Invalid("rrule", model.ErrUnsupportedRule, format, args...)
}

// ParseRule validates text against the supported rule shape. dtstart is the
// start of the origin in its own location.
func ParseRule(text string, dtstart time.Time) (*Rule, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "RRULE:")
	if text == "" {
		return nil, unsupported("empty rule")
	}

	parts := make(map[string]string)
	for _, part := range strings.Split(text, ";") {
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[1] == "" {
			return nil, unsupported("malformed part %q", part)
		}
		key := strings.ToUpper(kv[0])
		if _, ok := supportedParts[key]; !ok {
			return nil, unsupported("%s is not supported", key)
		}
		if _, dup := parts[key]; dup {
			return nil, unsupported("%s given twice", key)
		}
		parts[key] = kv[1]
	}

	opt, err := rrule.StrToROption(text)
	if err != nil {
		return nil, unsupported("%v", err)
	}

	if _, ok := parts["FREQ"]; !ok {
		return nil, unsupported("FREQ is required")
	}
	switch opt.Freq {
	case rrule.DAILY, rrule.WEEKLY, rrule.MONTHLY, rrule.YEARLY:
	default:
		return nil, unsupported("frequency %s is not supported", parts["FREQ"])
	}

	if _, ok := parts["INTERVAL"]; ok && opt.Interval < 1 {
		return nil, unsupported("INTERVAL must be at least 1")
	}
	if opt.Interval == 0 {
		opt.Interval = 1
	}

	if _, ok := parts["COUNT"]; !ok || opt.Count < 1 {
		return nil, unsupported("COUNT of at least 1 is required")
	}

	_, hasByDay := parts["BYDAY"]
	_, hasByMonthDay := parts["BYMONTHDAY"]

	switch opt.Freq {
	case rrule.WEEKLY:
		if !hasByDay || len(opt.Byweekday) == 0 {
			return nil, unsupported("WEEKLY rules need BYDAY")
		}
		if err := checkWeekdays(opt.Byweekday, dtstart); err != nil {
			return nil, err
		}
	case rrule.MONTHLY:
		if !hasByMonthDay || len(opt.Bymonthday) != 1 {
			return nil, unsupported("MONTHLY rules need exactly one BYMONTHDAY")
		}
		if d := opt.Bymonthday[0]; d < 1 || d > 31 {
			return nil, unsupported("BYMONTHDAY %d is out of range", d)
		}
	}

	if hasByDay && opt.Freq != rrule.WEEKLY {
		return nil, unsupported("BYDAY is only supported for WEEKLY rules")
	}
	if hasByMonthDay && opt.Freq != rrule.MONTHLY {
		return nil, unsupported("BYMONTHDAY is only supported for MONTHLY rules")
	}

	return &Rule{option: *opt}, nil
}

func checkWeekdays(days []rrule.Weekday, dtstart time.Time) error {
	// rrule counts weekdays from Monday, time from Sunday.
	start := (int(dtstart.Weekday()) + 6) % 7

	found := false
	for _, d := range days {
		if d.N() != 0 {
			return unsupported("ordinal weekdays are not supported")
		}
		if d.Day() == start {
			found = true
		}
	}

	if !found {
		return unsupported("BYDAY must include the start weekday %s", dtstart.Weekday())
	}
	return nil
}

func (r *Rule) Count() int {
	return r.option.Count
}

// RRule binds the rule to dtstart. Occurrences keep the wall clock time of
// dtstart in its location.
func (r *Rule) RRule(dtstart time.Time) (*rrule.RRule, error) {
	opt := r.option
	opt.Dtstart = dtstart
	return rrule.NewRRule(opt)
}
