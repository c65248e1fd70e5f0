package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, DateString("2025-02-03"), d)

	_, err = ParseDate("2025-2-3")
	assert.Error(t, err)

	_, err = ParseDate("03/02/2025")
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	tm, err := ParseTime("16:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("16:00"), tm)

	_, err = ParseTime("16h00")
	assert.Error(t, err)
}

func TestDateStringScan(t *testing.T) {
	// The postgres driver hands DATE columns over as time.Time.
	var d DateString
	require.NoError(t, d.Scan(time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DateString("2025-02-03"), d)

	// The time-of-day and location carried by the driver value must not
	// shift the calendar date.
	loc := time.FixedZone("BRT", -3*60*60)
	require.NoError(t, d.Scan(time.Date(2025, time.December, 31, 23, 30, 0, 0, loc)))
	assert.Equal(t, DateString("2025-12-31"), d)

	require.NoError(t, d.Scan("2025-02-10"))
	assert.Equal(t, DateString("2025-02-10"), d)

	require.NoError(t, d.Scan([]byte("2025-02-17")))
	assert.Equal(t, DateString("2025-02-17"), d)

	require.NoError(t, d.Scan(nil))
	assert.Equal(t, DateString(""), d)

	assert.Error(t, d.Scan("03/02/2025"))
	assert.Error(t, d.Scan(42))
}

func TestDateStringValue(t *testing.T) {
	v, err := DateString("2025-02-03").Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-02-03", v)
}

func TestWeekday(t *testing.T) {
	// 2025-02-03 is a Monday.
	assert.Equal(t, time.Monday, DateString("2025-02-03").Weekday())
	assert.Equal(t, time.Sunday, DateString("2025-02-02").Weekday())
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, DateString("2025-03-01"), DateString("2025-02-28").AddDays(1))
	assert.Equal(t, DateString("2024-02-29"), DateString("2024-02-28").AddDays(1))
	assert.Equal(t, DateString("2025-02-02"), DateString("2025-02-03").AddDays(-1))
}

func TestAddMonthsClipped(t *testing.T) {
	tests := []struct {
		name     string
		start    DateString
		months   int
		expected DateString
	}{
		{"plain month add", "2025-01-15", 1, "2025-02-15"},
		{"clip to non-leap february", "2025-01-31", 1, "2025-02-28"},
		{"clip to leap february", "2024-01-31", 1, "2024-02-29"},
		{"clip 31 to 30-day month", "2025-03-31", 1, "2025-04-30"},
		{"year rollover", "2025-12-15", 1, "2026-01-15"},
		{"no clipping needed on short day", "2025-01-28", 1, "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.start.AddMonthsClipped(tt.months))
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
}

func TestSlotKeyOrdering(t *testing.T) {
	a := Slot{Date: "2025-02-03", Time: "09:00"}
	b := Slot{Date: "2025-02-03", Time: "16:00"}
	c := Slot{Date: "2025-02-10", Time: "08:00"}

	assert.True(t, a.Key() < b.Key())
	assert.True(t, b.Key() < c.Key())
}

func TestSortSlots(t *testing.T) {
	slots := []Slot{
		{Date: "2025-03-03", Time: "16:00"},
		{Date: "2025-02-03", Time: "16:00"},
		{Date: "2025-02-03", Time: "09:00"},
	}

	SortSlots(slots)

	assert.Equal(t, Slot{Date: "2025-02-03", Time: "09:00"}, slots[0])
	assert.Equal(t, Slot{Date: "2025-02-03", Time: "16:00"}, slots[1])
	assert.Equal(t, Slot{Date: "2025-03-03", Time: "16:00"}, slots[2])
}

func TestWeeklyPatternEntryValid(t *testing.T) {
	assert.True(t, WeeklyPatternEntry{DayOfWeek: 1, Time: "16:00"}.Valid())
	assert.False(t, WeeklyPatternEntry{DayOfWeek: 7, Time: "16:00"}.Valid())
	assert.False(t, WeeklyPatternEntry{DayOfWeek: -1, Time: "16:00"}.Valid())
	assert.False(t, WeeklyPatternEntry{DayOfWeek: 1, Time: ""}.Valid())
	assert.False(t, WeeklyPatternEntry{DayOfWeek: 1, Time: "25:99"}.Valid())
}
