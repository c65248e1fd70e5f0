// Package calendar provides naive (timezone-less) date and time values for
// the scheduling domain. Appointment slots are local-calendar facts; all
// arithmetic here works on year/month/day triples and hour:minute pairs so
// that timezone conversion can never shift a slot across midnight.
package calendar

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DateString is a zero-padded YYYY-MM-DD calendar date. The zero padding
// makes plain string comparison equivalent to chronological comparison.
type DateString string

// TimeString is a zero-padded HH:MM clock time.
type TimeString string

// ParseDate validates s as a YYYY-MM-DD date.
func ParseDate(s string) (DateString, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateString(t.Format(DateLayout)), nil
}

// ParseTime validates s as an HH:MM clock time.
func ParseTime(s string) (TimeString, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeString(t.Format(TimeLayout)), nil
}

// NewDateString formats the date portion of t, ignoring its location.
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateLayout))
}

// Scan implements sql.Scanner. Postgres DATE columns arrive from the driver
// as time.Time; text-mode drivers hand over string or []byte.
func (d *DateString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = NewDateString(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateString", value)
	}
}

// Value implements driver.Valuer. The plain YYYY-MM-DD string is what a
// DATE column accepts on write.
func (d DateString) Value() (driver.Value, error) {
	return string(d), nil
}

func (d DateString) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

func (t TimeString) Valid() bool {
	_, err := time.Parse(TimeLayout, string(t))
	return err == nil
}

// date parses d. Must only be called on valid values.
func (d DateString) date() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

// Weekday returns the day of week (Sunday = 0).
func (d DateString) Weekday() time.Weekday {
	return d.date().Weekday()
}

// AddDays returns d shifted by n calendar days.
func (d DateString) AddDays(n int) DateString {
	return NewDateString(d.date().AddDate(0, 0, n))
}

// Before reports whether d is chronologically before other.
// Zero-padded ISO dates order correctly under plain string comparison.
func (d DateString) Before(other DateString) bool {
	return d < other
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClipped adds exactly n calendar months to d, clipping the day to
// the destination month's length (Jan 31 + 1 month = Feb 28/29). This is
// deliberately not AddDate, which normalizes overflow into the next month.
func (d DateString) AddMonthsClipped(n int) DateString {
	t := d.date()
	year, month, day := t.Date()

	total := int(month) - 1 + n
	year += total / 12
	month = time.Month(total%12 + 1)
	if total < 0 {
		// Go's % keeps the sign of the dividend.
		year--
		month += 12
	}

	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	return NewDateString(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Slot is a single bookable (date, time) opportunity.
type Slot struct {
	Date DateString `json:"date"`
	Time TimeString `json:"time"`
}

// Key is the dedup/sort key for a slot. Lexicographic order on the key is
// chronological order because both parts are zero-padded.
func (s Slot) Key() string {
	return string(s.Date) + " " + string(s.Time)
}

// SortSlots orders slots ascending by (date, time).
func SortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Key() < slots[j].Key()
	})
}

// WeeklyPatternEntry is one weekly repetition: a day of week (Sunday = 0)
// and a clock time. A cycle is defined by 1..3 such entries.
type WeeklyPatternEntry struct {
	DayOfWeek int        `json:"day_of_week"`
	Time      TimeString `json:"time"`
}

// Valid reports whether the entry can ever produce a slot.
func (e WeeklyPatternEntry) Valid() bool {
	return e.DayOfWeek >= 0 && e.DayOfWeek <= 6 && e.Time.Valid()
}
