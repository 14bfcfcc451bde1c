// Package availability matches a search request against a catalog snapshot and turns a
// chosen slot into a booking request.
package availability

import (
	"fmt"

	"github.com/example/tablefinder/internal/internaltypes"
)

const (
	slotMinutes = 30
	slotsPerDay = 24 * 60 / slotMinutes
	slotFormat  = "%02d:%02d"
	invalidSlot = "Please select a valid time."
)

// Grid returns the 48 daily slots, "00:00" through "23:30".
func Grid() []string {
	out := make([]string, slotsPerDay)
	for i := range out {
		out[i] = slotAt(i)
	}
	return out
}

// IsSlot reports whether s is a zero padded HH:MM on the half hour grid.
func IsSlot(s string) bool {
	_, ok := slotIndex(s)
	return ok
}

// NearbySlots returns the slot before t, t itself and the slot after it. The grid wraps at
// midnight, so "00:00" yields "23:30", "00:00", "00:30".
func NearbySlots(t string) ([3]string, error) {
	i, ok := slotIndex(t)
	if !ok {
		return [3]string{}, internaltypes.Invalid("time", invalidSlot)
	}
	return [3]string{slotAt(i - 1), slotAt(i), slotAt(i + 1)}, nil
}

func slotIndex(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || (m != 0 && m != slotMinutes) {
		return 0, false
	}
	return (h*60 + m) / slotMinutes, true
}

func slotAt(i int) string {
	i = ((i % slotsPerDay) + slotsPerDay) % slotsPerDay
	mins := i * slotMinutes
	return fmt.Sprintf(slotFormat, mins/60, mins%60)
}
