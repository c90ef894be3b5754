package database

import (
	"strconv"
	"strings"
	"time"
)

// Millis converts an optional instant to epoch milliseconds.
func Millis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// Time converts optional epoch milliseconds back to an UTC instant.
func Time(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

// NullString stores empty text as NULL.
func NullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func String(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// JoinMillis stores a date list as comma separated epoch milliseconds.
func JoinMillis(ts []time.Time) *string {
	if len(ts) == 0 {
		return nil
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = strconv.FormatInt(t.UnixMilli(), 10)
	}
	s := strings.Join(parts, ",")
	return &s
}

// SplitMillis parses JoinMillis output. Malformed entries are skipped.
func SplitMillis(s *string) []time.Time {
	if s == nil || *s == "" {
		return nil
	}
	var res []time.Time
	for _, p := range strings.Split(*s, ",") {
		ms, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		res = append(res, time.UnixMilli(ms).UTC())
	}
	return res
}
