package availability

import (
	"testing"
	"time"

	"vetclinic/internal/clinic"
)

func TestDailySlots_FullDay(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	slots := DailySlots(day)
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(9 * time.Hour)) {
		t.Fatalf("expected first slot 09:00, got %s", slots[0].Format(time.RFC3339))
	}
	if !slots[15].Equal(day.Add(16*time.Hour + 30*time.Minute)) {
		t.Fatalf("expected last slot 16:30, got %s", slots[15].Format(time.RFC3339))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Sub(slots[i-1]) != clinic.AppointmentDuration {
			t.Fatalf("slots %d and %d are %s apart", i-1, i, slots[i].Sub(slots[i-1]))
		}
	}
}

func TestDailySlots_KeepsDayAndLocation(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	day := time.Date(2024, 12, 31, 0, 0, 0, 0, loc)

	for _, s := range DailySlots(day) {
		if s.Location() != loc {
			t.Fatalf("slot %s lost its location", s)
		}
		y, m, d := s.Date()
		if y != 2024 || m != time.December || d != 31 {
			t.Fatalf("slot %s escaped the day", s)
		}
	}
}

func TestAvailableSlots_ExcludesBusy(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	all := DailySlots(day)
	busy := []time.Time{
		day.Add(9 * time.Hour),
		day.Add(12*time.Hour + 30*time.Minute),
	}
	// A day earlier, so the time check never fires.
	now := day.AddDate(0, 0, -1)

	got := AvailableSlots(all, busy, day, now)
	if len(got) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(got))
	}
	for _, s := range got {
		if containsTime(busy, s) {
			t.Fatalf("busy slot %s leaked into the result", s.Format(time.RFC3339))
		}
	}
}

func TestAvailableSlots_TodayFiltersPast(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	all := DailySlots(day)
	now := day.Add(15 * time.Hour) // 15:00:00 on the same day

	got := AvailableSlots(all, nil, day, now)
	// 09:00 through 14:30 are past, 15:00 itself is excluded (slot <= now),
	// 15:30, 16:00 and 16:30 remain.
	if len(got) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(got))
	}
	if !got[0].Equal(day.Add(15*time.Hour + 30*time.Minute)) {
		t.Fatalf("expected first remaining slot 15:30, got %s", got[0].Format(time.RFC3339))
	}
	for _, s := range got {
		if !s.After(now) {
			t.Fatalf("slot %s is not after now", s.Format(time.RFC3339))
		}
	}
}

func TestAvailableSlots_FutureDayNotTimeFiltered(t *testing.T) {
	now := time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	got := AvailableSlots(DailySlots(day), nil, day, now)
	if len(got) != 16 {
		t.Fatalf("expected all 16 slots on a future day, got %d", len(got))
	}
}

func TestAvailableSlots_PreservesOrder(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	got := AvailableSlots(DailySlots(day), []time.Time{day.Add(10 * time.Hour)}, day, day)
	for i := 1; i < len(got); i++ {
		if !got[i].After(got[i-1]) {
			t.Fatalf("slots out of order at %d", i)
		}
	}
}

func TestHorizonDates(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 4, 5, 0, time.UTC)

	dates := HorizonDates(now)
	if len(dates) != BookingHorizonDays {
		t.Fatalf("expected %d dates, got %d", BookingHorizonDays, len(dates))
	}
	if !dates[0].Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected first date today at midnight, got %s", dates[0])
	}
	if !dates[13].Equal(time.Date(2024, 6, 23, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected last date 13 days out, got %s", dates[13])
	}
}
