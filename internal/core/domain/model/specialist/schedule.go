package specialist

import (
	"time"

	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

const minutesPerDay = 24 * 60

// ErrScheduleIsNotConstructed is returned when a Schedule bypassed its constructors.
var ErrScheduleIsNotConstructed = errs.NewValueIsRequiredError(
	"schedule must be created via NewWeeklySchedule or NewUnrestrictedSchedule")

// Schedule is the specialist's weekly working window: a set of weekdays plus
// one half-open local-time window [start, end) in minutes since midnight.
//
// The schedule fails open: an incompletely specified schedule (no days, or
// no window) never restricts the specialist, so missing configuration cannot
// silently exclude anyone. Equal start and end means "always open" on the
// listed days; start after end means the window crosses midnight.
type Schedule struct { //nolint:recvcheck //using for validation
	days        map[time.Weekday]bool
	startMinute int
	endMinute   int
	configured  bool

	guard guard.ConstructorGuard
}

// NewWeeklySchedule creates a schedule restricted to the given weekdays and
// the [startMinute, endMinute) window. Minutes must be within [0..1439].
func NewWeeklySchedule(days []time.Weekday, startMinute, endMinute int) (Schedule, error) {
	if startMinute < 0 || startMinute >= minutesPerDay {
		return Schedule{}, errs.NewValueIsOutOfRangeError("startMinute", startMinute, 0, minutesPerDay-1)
	}
	if endMinute < 0 || endMinute >= minutesPerDay {
		return Schedule{}, errs.NewValueIsOutOfRangeError("endMinute", endMinute, 0, minutesPerDay-1)
	}

	daySet := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		daySet[d] = true
	}

	return Schedule{
		days:        daySet,
		startMinute: startMinute,
		endMinute:   endMinute,
		configured:  len(daySet) > 0,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// NewUnrestrictedSchedule creates a schedule that never restricts.
func NewUnrestrictedSchedule() Schedule {
	return Schedule{guard: guard.NewConstructorGuard()}
}

// Validate ensures the schedule was created through a constructor.
func (s Schedule) Validate() error {
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

// IsConfigured reports whether the schedule actually restricts anything.
func (s Schedule) IsConfigured() bool {
	return s.configured
}

// Days returns the restricted weekdays in ascending order, empty when unrestricted.
func (s Schedule) Days() []time.Weekday {
	days := make([]time.Weekday, 0, len(s.days))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.days[d] {
			days = append(days, d)
		}
	}
	return days
}

// StartMinute returns the window's opening minute since local midnight.
func (s Schedule) StartMinute() int { return s.startMinute }

// EndMinute returns the window's closing minute since local midnight (exclusive).
func (s Schedule) EndMinute() int { return s.endMinute }

// Contains reports whether the local time t falls inside the schedule.
// An unconfigured schedule always contains t (fail open). Equal start and
// end means the whole day is open; start after end means the window wraps
// past midnight.
func (s Schedule) Contains(t time.Time) bool {
	if !s.configured {
		return true
	}
	if !s.days[t.Weekday()] {
		return false
	}

	minute := t.Hour()*60 + t.Minute()
	switch {
	case s.startMinute == s.endMinute:
		return true
	case s.startMinute < s.endMinute:
		return minute >= s.startMinute && minute < s.endMinute
	default: // crosses midnight
		return minute >= s.startMinute || minute < s.endMinute
	}
}
