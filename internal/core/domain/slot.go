package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot is a time label from the daily roster in display form, e.g. "9:30hs".
type Slot string

// DefaultRoster is the fixed list of bookable slots offered every day.
var DefaultRoster = []Slot{"9:30hs", "10:00hs", "11:30hs", "12:30hs", "15:00hs", "17:30hs"}

// DateLayout is the calendar date format exchanged with the gateway and the UI.
const DateLayout = "2006-01-02"

var errBadSlot = errors.New("invalid time slot")

// ParseSlot accepts "9:30hs", "9.30hs", "09:30" or "9:30" and returns the
// canonical display label.
func ParseSlot(raw string) (Slot, error) {
	h, m, err := splitClock(raw)
	if err != nil {
		return "", err
	}
	return Slot(fmt.Sprintf("%d:%02dhs", h, m)), nil
}

// SlotFromWire decodes the gateway's "H.MMhs" encoding. Values that cannot be
// parsed are returned unchanged so a list still renders.
func SlotFromWire(raw string) Slot {
	s, err := ParseSlot(raw)
	if err != nil {
		return Slot(raw)
	}
	return s
}

// Wire encodes the slot the way the gateway persists it ("9.30hs").
func (s Slot) Wire() string {
	h, m, err := splitClock(string(s))
	if err != nil {
		return string(s)
	}
	return fmt.Sprintf("%d.%02dhs", h, m)
}

// Minutes returns minutes since midnight.
func (s Slot) Minutes() (int, error) {
	h, m, err := splitClock(string(s))
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// Clock renders the slot as "HH:MM", the value an admin time input edits.
func (s Slot) Clock() string {
	h, m, err := splitClock(string(s))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

func splitClock(raw string) (int, int, error) {
	v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "hs"))
	v = strings.Replace(v, ".", ":", 1)
	hh, mm, found := strings.Cut(v, ":")
	if !found {
		mm = "00"
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("%w: %q", errBadSlot, raw)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%w: %q", errBadSlot, raw)
	}
	return h, m, nil
}

// ParseRoster converts configured labels into slots, skipping blanks.
func ParseRoster(labels []string) ([]Slot, error) {
	out := make([]Slot, 0, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			continue
		}
		s, err := ParseSlot(l)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SlotAvailability is the result of evaluating a date against the roster.
type SlotAvailability struct {
	Slots    []Slot
	PastDate bool
}

// AvailableSlots computes the bookable slots for date as seen at now.
// now's location defines the business day. A past date yields no slots;
// today yields only slots strictly later than the current clock; any future
// date yields the full roster.
func AvailableSlots(roster []Slot, date string, now time.Time) (SlotAvailability, error) {
	day, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return SlotAvailability{}, NewValidationError("select slot", "Fecha inválida")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case day.Before(today):
		return SlotAvailability{PastDate: true}, nil
	case day.Equal(today):
		nowMinutes := now.Hour()*60 + now.Minute()
		slots := make([]Slot, 0, len(roster))
		for _, s := range roster {
			m, err := s.Minutes()
			if err != nil {
				continue
			}
			if m > nowMinutes {
				slots = append(slots, s)
			}
		}
		return SlotAvailability{Slots: slots}, nil
	default:
		slots := make([]Slot, len(roster))
		copy(slots, roster)
		return SlotAvailability{Slots: slots}, nil
	}
}

// Contains reports whether s is one of the available slots.
func (a SlotAvailability) Contains(s Slot) bool {
	for _, v := range a.Slots {
		if v == s {
			return true
		}
	}
	return false
}
