// Package availability computes bookable time slots. It is pure: callers
// fetch busy starts from storage and pass them in, together with the clock.
package availability

import (
	"time"

	"vetclinic/internal/clinic"
)

// Working window for bookings. WorkStart is the first slot of the day,
// LastSlotStart the last one; both are minutes from midnight.
const (
	WorkStartHour       = 9
	WorkStartMinute     = 0
	LastSlotStartHour   = 16
	LastSlotStartMinute = 30

	// BookingHorizonDays is how many days ahead, today included, are
	// offered for booking.
	BookingHorizonDays = 14
)

// DailySlots returns every candidate slot start for the given calendar day:
// WorkStart through LastSlotStart inclusive, stepping by the appointment
// duration, in the day's location. If the step ever stopped dividing the
// window evenly, the sequence still ends at the last value on or before
// LastSlotStart.
func DailySlots(day time.Time) []time.Time {
	start := time.Date(day.Year(), day.Month(), day.Day(), WorkStartHour, WorkStartMinute, 0, 0, day.Location())
	last := time.Date(day.Year(), day.Month(), day.Day(), LastSlotStartHour, LastSlotStartMinute, 0, 0, day.Location())

	var slots []time.Time
	for t := start; !t.After(last); t = t.Add(clinic.AppointmentDuration) {
		slots = append(slots, t)
	}
	return slots
}

// AvailableSlots filters all down to the slots that are still bookable:
// not in busy, and not already past. A slot counts as past only when day is
// the same calendar date as now and the slot is at or before now; slots on
// future days are never dropped by the time check. Order is preserved.
func AvailableSlots(all []time.Time, busy []time.Time, day, now time.Time) []time.Time {
	today := sameDate(day, now)

	var out []time.Time
	for _, s := range all {
		if today && !s.After(now) {
			continue
		}
		if containsTime(busy, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// HorizonDates returns the selectable booking days: now's date plus the
// following days up to the booking horizon.
func HorizonDates(now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dates := make([]time.Time, 0, BookingHorizonDays)
	for i := 0; i < BookingHorizonDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func containsTime(set []time.Time, t time.Time) bool {
	for _, s := range set {
		if s.Equal(t) {
			return true
		}
	}
	return false
}
