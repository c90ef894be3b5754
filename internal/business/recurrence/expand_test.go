package recurrence

import (
	"testing"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestOccurrencesWeekly(t *testing.T) {
	start := tuesday
	origin := &model.ICalObject{
		Dtstart: &start,
		Rrule:   "FREQ=WEEKLY;COUNT=4;BYDAY=TU",
	}

	got, err := Occurrences(origin, time.UTC, 100)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		utc(2024, 5, 14, 9, 30),
		utc(2024, 5, 21, 9, 30),
		utc(2024, 5, 28, 9, 30),
	}, got)
}

func TestOccurrencesKeepWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Vienna")
	require.NoError(t, err)

	start := time.Date(2024, 3, 30, 10, 0, 0, 0, loc)
	origin := &model.ICalObject{
		Dtstart:         &start,
		DtstartTimezone: "Europe/Vienna",
		Rrule:           "FREQ=DAILY;COUNT=3",
	}

	got, err := Occurrences(origin, time.UTC, 100)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for _, occ := range got {
		assert.Equal(t, 10, occ.In(loc).Hour())
	}
	assert.Equal(t, utc(2024, 3, 31, 8, 0), got[0])
	assert.Equal(t, utc(2024, 4, 1, 8, 0), got[1])
}

func TestOccurrencesFloatingUsesDefaultLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Vienna")
	require.NoError(t, err)

	start := time.Date(2024, 3, 30, 10, 0, 0, 0, loc)
	origin := &model.ICalObject{
		Dtstart: &start,
		Rrule:   "FREQ=DAILY;COUNT=2",
	}

	got, err := Occurrences(origin, loc, 100)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{utc(2024, 3, 31, 8, 0)}, got)
}

func TestOccurrencesMergeRdateAndExdate(t *testing.T) {
	start := utc(2024, 5, 1, 10, 0)
	origin := &model.ICalObject{
		Dtstart: &start,
		Rrule:   "FREQ=DAILY;COUNT=4",
		Rdate:   []time.Time{utc(2024, 5, 10, 12, 0), utc(2024, 5, 2, 10, 0)},
		Exdate:  []time.Time{utc(2024, 5, 3, 10, 0)},
	}

	got, err := Occurrences(origin, time.UTC, 100)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		utc(2024, 5, 2, 10, 0),
		utc(2024, 5, 4, 10, 0),
		utc(2024, 5, 10, 12, 0),
	}, got)
}

func TestOccurrencesKeepMilliseconds(t *testing.T) {
	start := utc(2024, 5, 1, 10, 0).Add(250 * time.Millisecond)
	origin := &model.ICalObject{
		Dtstart: &start,
		Rrule:   "FREQ=DAILY;COUNT=2",
	}

	got, err := Occurrences(origin, time.UTC, 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, start.AddDate(0, 0, 1), got[0])
}

func TestOccurrencesLimits(t *testing.T) {
	start := utc(2024, 5, 1, 10, 0)

	_, err := Occurrences(&model.ICalObject{Dtstart: &start, Rrule: "FREQ=DAILY;COUNT=10"}, time.UTC, 5)
	assert.ErrorIs(t, err, model.ErrUnsupportedRule)

	_, err = Occurrences(&model.ICalObject{Rrule: "FREQ=DAILY;COUNT=2"}, time.UTC, 5)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
