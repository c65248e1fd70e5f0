package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

var (
	ErrEmptyPattern        = errors.New("cycle pattern must have at least one entry")
	ErrInvalidPatternEntry = errors.New("cycle pattern entry has an invalid day of week or time")
)

// DeriveEndDate returns the cycle window boundary: exactly one calendar month
// after start, with the day clipped to the destination month's last day
// (Jan 31 -> Feb 28/29). This is calendar arithmetic, never "+30 days".
func DeriveEndDate(start calendar.DateString) calendar.DateString {
	return start.AddMonthsClipped(1)
}

// GenerateSlots expands a weekly repetition pattern into the ordered,
// deduplicated slot sequence between start and end. When includeEnd is false
// the boundary date itself is not eligible.
//
// The function is total: an inverted window produces an empty result, and
// entries that can never match (bad day of week, unparseable time) are
// skipped. Callers that want those rejected instead use GenerateSlotsStrict.
func GenerateSlots(start, end calendar.DateString, pattern []calendar.WeeklyPatternEntry, includeEnd bool) []calendar.Slot {
	slots, _ := generate(start, end, pattern, includeEnd, false)
	return slots
}

// GenerateSlotsStrict behaves like GenerateSlots but fails on an empty
// pattern or any malformed entry instead of silently producing fewer slots.
func GenerateSlotsStrict(start, end calendar.DateString, pattern []calendar.WeeklyPatternEntry, includeEnd bool) ([]calendar.Slot, error) {
	return generate(start, end, pattern, includeEnd, true)
}

func generate(start, end calendar.DateString, pattern []calendar.WeeklyPatternEntry, includeEnd, strict bool) ([]calendar.Slot, error) {
	if strict {
		if len(pattern) == 0 {
			return nil, ErrEmptyPattern
		}
		for i, entry := range pattern {
			if !entry.Valid() {
				return nil, fmt.Errorf("%w: entry %d (day_of_week=%d, time=%q)",
					ErrInvalidPatternEntry, i, entry.DayOfWeek, entry.Time)
			}
		}
	}

	slots := make([]calendar.Slot, 0)
	if end.Before(start) {
		return slots, nil
	}

	last := end
	if !includeEnd {
		last = end.AddDays(-1)
		if last.Before(start) {
			return slots, nil
		}
	}

	seen := make(map[string]struct{})
	for day := start; !last.Before(day); day = day.AddDays(1) {
		weekday := int(day.Weekday())
		for _, entry := range pattern {
			if !entry.Valid() || entry.DayOfWeek != weekday {
				continue
			}
			slot := calendar.Slot{Date: day, Time: entry.Time}
			if _, dup := seen[slot.Key()]; dup {
				continue
			}
			seen[slot.Key()] = struct{}{}
			slots = append(slots, slot)
		}
	}

	calendar.SortSlots(slots)
	return slots, nil
}

// SkipReason explains why a candidate slot was not accepted.
type SkipReason string

const (
	SkipReasonConflict SkipReason = "conflict"
)

// SkippedSlot is a candidate slot rejected by the conflict policy, tagged
// with the reason and the appointment that occupies it.
type SkippedSlot struct {
	Slot          calendar.Slot
	Reason        SkipReason
	AppointmentID uuid.UUID
}

// CyclePlan splits generated slots into the ones safe to persist and the
// ones skipped, so callers can report a partial-success summary.
type CyclePlan struct {
	Accepted []calendar.Slot
	Skipped  []SkippedSlot
}

// PlanCycle applies the conflict policy to candidate slots: a slot conflicts
// when a non-canceled appointment for the same professional occupies the
// exact same date and time. Conflicting candidates are skipped, never fail
// the whole batch.
func PlanCycle(candidates []calendar.Slot, existing []entity.Appointment, professionalID uuid.UUID) CyclePlan {
	occupied := make(map[string]uuid.UUID, len(existing))
	for _, appointment := range existing {
		if appointment.IsCanceled() || appointment.ProfessionalID != professionalID {
			continue
		}
		occupied[appointment.Slot().Key()] = appointment.ID
	}

	plan := CyclePlan{
		Accepted: make([]calendar.Slot, 0, len(candidates)),
		Skipped:  make([]SkippedSlot, 0),
	}
	for _, slot := range candidates {
		if appointmentID, taken := occupied[slot.Key()]; taken {
			plan.Skipped = append(plan.Skipped, SkippedSlot{
				Slot:          slot,
				Reason:        SkipReasonConflict,
				AppointmentID: appointmentID,
			})
			continue
		}
		plan.Accepted = append(plan.Accepted, slot)
	}
	return plan
}
