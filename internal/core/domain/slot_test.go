package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseSlot(t *testing.T) {
	tests := []struct {
		in   string
		want Slot
		ok   bool
	}{
		{"9:30hs", "9:30hs", true},
		{"9.30hs", "9:30hs", true},
		{"09:30", "9:30hs", true},
		{"17:30", "17:30hs", true},
		{" 10:00hs ", "10:00hs", true},
		{"15hs", "15:00hs", true},
		{"24:00", "", false},
		{"9:75", "", false},
		{"mañana", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSlot(tt.in)
			if tt.ok != (err == nil) {
				t.Fatalf("ParseSlot(%q) err = %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseSlot(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlot_WireRoundTrip(t *testing.T) {
	for _, s := range DefaultRoster {
		wire := s.Wire()
		if back := SlotFromWire(wire); back != s {
			t.Fatalf("%s -> %s -> %s", s, wire, back)
		}
	}
	if got := Slot("9:30hs").Wire(); got != "9.30hs" {
		t.Fatalf("expected 9.30hs, got %s", got)
	}
}

func TestSlotFromWire_KeepsUnparsable(t *testing.T) {
	if got := SlotFromWire("a convenir"); got != "a convenir" {
		t.Fatalf("expected raw value, got %q", got)
	}
}

func TestSlot_Clock(t *testing.T) {
	if got := Slot("9:30hs").Clock(); got != "09:30" {
		t.Fatalf("expected 09:30, got %s", got)
	}
	if got := Slot("??").Clock(); got != "" {
		t.Fatalf("expected empty clock for bad slot, got %q", got)
	}
}

func TestParseRoster(t *testing.T) {
	roster, err := ParseRoster([]string{"9:30", "", "14.00hs"})
	if err != nil {
		t.Fatalf("ParseRoster: %v", err)
	}
	if len(roster) != 2 || roster[1] != "14:00hs" {
		t.Fatalf("unexpected roster %v", roster)
	}
	if _, err := ParseRoster([]string{"nope"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAvailableSlots(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	now := time.Date(2025, 3, 10, 11, 30, 0, 0, loc)

	t.Run("past date", func(t *testing.T) {
		a, err := AvailableSlots(DefaultRoster, "2025-03-09", now)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if !a.PastDate || len(a.Slots) != 0 {
			t.Fatalf("expected past date with no slots, got %+v", a)
		}
	})

	t.Run("today strictly later", func(t *testing.T) {
		a, _ := AvailableSlots(DefaultRoster, "2025-03-10", now)
		// 11:30 is the current minute and must not be offered.
		if a.Contains("11:30hs") || !a.Contains("12:30hs") || len(a.Slots) != 3 {
			t.Fatalf("unexpected slots %v", a.Slots)
		}
	})

	t.Run("late today", func(t *testing.T) {
		a, _ := AvailableSlots(DefaultRoster, "2025-03-10", now.Add(7*time.Hour))
		if a.PastDate || len(a.Slots) != 0 {
			t.Fatalf("expected no slots but not a past date, got %+v", a)
		}
	})

	t.Run("future", func(t *testing.T) {
		a, _ := AvailableSlots(DefaultRoster, "2025-04-01", now)
		if len(a.Slots) != len(DefaultRoster) {
			t.Fatalf("expected full roster, got %v", a.Slots)
		}
	})

	t.Run("business day follows location", func(t *testing.T) {
		// 01:00 UTC on the 11th is still the 10th in Buenos Aires.
		utcNow := time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC).In(loc)
		a, _ := AvailableSlots(DefaultRoster, "2025-03-10", utcNow)
		if a.PastDate || len(a.Slots) != 0 {
			t.Fatalf("expected today with no remaining slots, got %+v", a)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		if _, err := AvailableSlots(DefaultRoster, "10/03/2025", now); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
