package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time expressed in minutes past midnight.
// It marshals to and from "HH:MM". Values past 24:00 are allowed so a
// long day can spill over without wrapping.
type TimeOfDay int

// SlotMinutes is the granularity every scheduled start time is rounded up to.
const SlotMinutes = 5

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid hours in %q", s)
	}
	mins, err := strconv.Atoi(mm)
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}

	return TimeOfDay(hours*60 + mins), nil
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// RoundUp rounds to the next slot boundary, leaving exact boundaries alone.
func (t TimeOfDay) RoundUp() TimeOfDay {
	if rem := int(t) % SlotMinutes; rem != 0 {
		return t + TimeOfDay(SlotMinutes-rem)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func MaxTime(a, b TimeOfDay) TimeOfDay {
	if a > b {
		return a
	}
	return b
}
