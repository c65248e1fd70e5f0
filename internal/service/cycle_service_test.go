package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

func TestDeriveEndDate(t *testing.T) {
	tests := []struct {
		name     string
		start    calendar.DateString
		expected calendar.DateString
	}{
		{"mid month", "2025-02-03", "2025-03-03"},
		{"clip to non-leap february", "2025-01-31", "2025-02-28"},
		{"clip to leap february", "2024-01-31", "2024-02-29"},
		{"clip 31 to 30-day month", "2025-05-31", "2025-06-30"},
		{"december to january", "2025-12-10", "2026-01-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveEndDate(tt.start))
		})
	}
}

func TestGenerateSlots_WeeklyMondaysInclusiveEnd(t *testing.T) {
	// 2025-02-03 is a Monday; window is one derived calendar month.
	start := calendar.DateString("2025-02-03")
	end := DeriveEndDate(start)
	require.Equal(t, calendar.DateString("2025-03-03"), end)

	pattern := []calendar.WeeklyPatternEntry{{DayOfWeek: 1, Time: "16:00"}}

	slots := GenerateSlots(start, end, pattern, true)

	expected := []calendar.Slot{
		{Date: "2025-02-03", Time: "16:00"},
		{Date: "2025-02-10", Time: "16:00"},
		{Date: "2025-02-17", Time: "16:00"},
		{Date: "2025-02-24", Time: "16:00"},
		{Date: "2025-03-03", Time: "16:00"},
	}
	assert.Equal(t, expected, slots)
}

func TestGenerateSlots_ExclusiveEndDropsBoundary(t *testing.T) {
	pattern := []calendar.WeeklyPatternEntry{{DayOfWeek: 1, Time: "16:00"}}

	slots := GenerateSlots("2025-02-03", "2025-03-03", pattern, false)

	require.Len(t, slots, 4)
	assert.Equal(t, calendar.DateString("2025-02-24"), slots[len(slots)-1].Date)
}

func TestGenerateSlots_InvertedWindowIsEmpty(t *testing.T) {
	pattern := []calendar.WeeklyPatternEntry{{DayOfWeek: 1, Time: "16:00"}}

	slots := GenerateSlots("2025-03-03", "2025-02-03", pattern, true)

	assert.Empty(t, slots)
}

func TestGenerateSlots_SingleDayExclusiveIsEmpty(t *testing.T) {
	pattern := []calendar.WeeklyPatternEntry{{DayOfWeek: 1, Time: "16:00"}}

	slots := GenerateSlots("2025-02-03", "2025-02-03", pattern, false)

	assert.Empty(t, slots)
}

func TestGenerateSlots_DuplicateEntriesSuppressed(t *testing.T) {
	// Two entries landing on the same day and time emit one slot.
	pattern := []calendar.WeeklyPatternEntry{
		{DayOfWeek: 1, Time: "16:00"},
		{DayOfWeek: 1, Time: "16:00"},
	}

	slots := GenerateSlots("2025-02-03", "2025-02-09", pattern, true)

	assert.Equal(t, []calendar.Slot{{Date: "2025-02-03", Time: "16:00"}}, slots)
}

func TestGenerateSlots_SortedAcrossEntries(t *testing.T) {
	// Wednesday entry listed before Monday entry; output is still ordered
	// by (date, time).
	pattern := []calendar.WeeklyPatternEntry{
		{DayOfWeek: 3, Time: "09:00"},
		{DayOfWeek: 1, Time: "16:00"},
		{DayOfWeek: 1, Time: "08:00"},
	}

	slots := GenerateSlots("2025-02-03", "2025-02-09", pattern, true)

	require.Len(t, slots, 3)
	assert.Equal(t, calendar.Slot{Date: "2025-02-03", Time: "08:00"}, slots[0])
	assert.Equal(t, calendar.Slot{Date: "2025-02-03", Time: "16:00"}, slots[1])
	assert.Equal(t, calendar.Slot{Date: "2025-02-05", Time: "09:00"}, slots[2])

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Key() < slots[i].Key(), "slots must be strictly ascending")
	}
}

func TestGenerateSlots_LenientSkipsMalformedEntries(t *testing.T) {
	pattern := []calendar.WeeklyPatternEntry{
		{DayOfWeek: 1, Time: "16:00"},
		{DayOfWeek: 9, Time: "16:00"}, // impossible weekday
		{DayOfWeek: 1, Time: ""},      // missing time
	}

	slots := GenerateSlots("2025-02-03", "2025-02-09", pattern, true)

	assert.Equal(t, []calendar.Slot{{Date: "2025-02-03", Time: "16:00"}}, slots)
}

func TestGenerateSlotsStrict_RejectsMalformedEntries(t *testing.T) {
	pattern := []calendar.WeeklyPatternEntry{
		{DayOfWeek: 1, Time: "16:00"},
		{DayOfWeek: 9, Time: "16:00"},
	}

	_, err := GenerateSlotsStrict("2025-02-03", "2025-03-03", pattern, true)
	assert.ErrorIs(t, err, ErrInvalidPatternEntry)

	_, err = GenerateSlotsStrict("2025-02-03", "2025-03-03", nil, true)
	assert.ErrorIs(t, err, ErrEmptyPattern)
}

func TestPlanCycle_SkipsOccupiedSlots(t *testing.T) {
	professionalID := uuid.New()
	otherProfessionalID := uuid.New()

	conflicting := entity.Appointment{
		ID:             uuid.New(),
		ProfessionalID: professionalID,
		Date:           "2025-02-10",
		Time:           "16:00",
		Status:         entity.AppointmentStatusScheduled,
	}
	canceled := entity.Appointment{
		ID:             uuid.New(),
		ProfessionalID: professionalID,
		Date:           "2025-02-17",
		Time:           "16:00",
		Status:         entity.AppointmentStatusCanceled,
	}
	otherProfessional := entity.Appointment{
		ID:             uuid.New(),
		ProfessionalID: otherProfessionalID,
		Date:           "2025-02-24",
		Time:           "16:00",
		Status:         entity.AppointmentStatusScheduled,
	}

	candidates := []calendar.Slot{
		{Date: "2025-02-03", Time: "16:00"},
		{Date: "2025-02-10", Time: "16:00"},
		{Date: "2025-02-17", Time: "16:00"},
		{Date: "2025-02-24", Time: "16:00"},
	}

	plan := PlanCycle(candidates, []entity.Appointment{conflicting, canceled, otherProfessional}, professionalID)

	// Only the exact non-canceled same-professional match is a conflict:
	// the canceled one and the other professional's slot stay bookable.
	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, calendar.Slot{Date: "2025-02-10", Time: "16:00"}, plan.Skipped[0].Slot)
	assert.Equal(t, SkipReasonConflict, plan.Skipped[0].Reason)
	assert.Equal(t, conflicting.ID, plan.Skipped[0].AppointmentID)

	require.Len(t, plan.Accepted, 3)
	assert.Equal(t, calendar.DateString("2025-02-03"), plan.Accepted[0].Date)
	assert.Equal(t, calendar.DateString("2025-02-17"), plan.Accepted[1].Date)
	assert.Equal(t, calendar.DateString("2025-02-24"), plan.Accepted[2].Date)
}
