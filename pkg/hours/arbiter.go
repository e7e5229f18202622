package hours

import (
	"fmt"
	"strings"
	"time"
)

// Reason explains why the arbiter decided the way it did.
type Reason string

const (
	ReasonClosedDay     Reason = "closed_day"
	ReasonBeforeOpening Reason = "before_opening"
	ReasonAfterClosing  Reason = "after_closing"
	ReasonClosingSoon   Reason = "closing_soon"
	ReasonOpen          Reason = "open"
)

const (
	// MinViableVisit is the minimum remaining time (minutes) worth a visit.
	MinViableVisit = 30
	// FullVisitThreshold is the remaining time (minutes) above which an
	// uncapped request gets the full catalog.
	FullVisitThreshold = 240
	// SmallOverage is the largest excess (minutes) that is rounded down
	// silently instead of being called out to the visitor.
	SmallOverage = 15

	safetyFactor = 0.8
	tightFactor  = 0.9
)

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// minutesOfDay converts the clock to minutes since midnight.
func (c Clock) minutesOfDay() int {
	return c.Hour*60 + c.Minute
}

// Window is one day's open/close pair.
type Window struct {
	Open  Clock
	Close Clock
}

// Schedule maps weekdays to opening windows. A missing day is closed.
type Schedule map[time.Weekday]Window

// DefaultSchedule returns the museum's weekly hours: closed Mondays,
// 08:00-17:00 Tuesday through Friday, 10:00-16:00 on weekends.
func DefaultSchedule() Schedule {
	weekday := Window{Open: Clock{8, 0}, Close: Clock{17, 0}}
	weekend := Window{Open: Clock{10, 0}, Close: Clock{16, 0}}
	return Schedule{
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  weekend,
		time.Sunday:    weekend,
	}
}

// WindowFor returns the window for a weekday, false when closed.
func (s Schedule) WindowFor(day time.Weekday) (Window, bool) {
	w, ok := s[day]
	return w, ok
}

// Remaining returns the minutes left before closing, 0 when closed.
func (s Schedule) Remaining(now time.Time) int {
	w, ok := s.WindowFor(now.Weekday())
	if !ok {
		return 0
	}
	current := now.Hour()*60 + now.Minute()
	if current < w.Open.minutesOfDay() || current >= w.Close.minutesOfDay() {
		return 0
	}
	return w.Close.minutesOfDay() - current
}

// nextOpening walks forward from tomorrow to the first open day.
func (s Schedule) nextOpening(now time.Time) (time.Weekday, Window) {
	for offset := 1; offset <= 7; offset++ {
		day := now.AddDate(0, 0, offset).Weekday()
		if w, ok := s.WindowFor(day); ok {
			return day, w
		}
	}
	// Unreachable with any schedule that has at least one open day.
	return now.Weekday(), Window{}
}

// Decision is the arbiter's answer for one request. Duration is nil when the
// visit may use the full remaining window.
type Decision struct {
	CanGenerate    bool
	Duration       *int
	Message        string
	Reason         Reason
	MinutesToClose int
}

// Evaluate reconciles a requested visit duration (nil = "no limit") against
// the schedule at the given instant. It is a pure computation: every branch
// returns a decision and there is no error path.
func (s Schedule) Evaluate(now time.Time, requested *int) Decision {
	window, open := s.WindowFor(now.Weekday())
	current := now.Hour()*60 + now.Minute()

	if !open {
		day, next := s.nextOpening(now)
		return Decision{
			CanGenerate: false,
			Reason:      ReasonClosedDay,
			Message: fmt.Sprintf(
				"The museum is closed on %s. Come back on %s, open %s - %s.\n\n%s",
				now.Weekday(), day, next.Open, next.Close, s.OpeningMessage()),
		}
	}

	if current < window.Open.minutesOfDay() {
		toOpen := window.Open.minutesOfDay() - current
		return Decision{
			CanGenerate: false,
			Reason:      ReasonBeforeOpening,
			Message: fmt.Sprintf(
				"The museum is not open yet. Today we open at %s, in about %d minutes. Today's hours: %s - %s.",
				window.Open, toOpen, window.Open, window.Close),
		}
	}

	if current >= window.Close.minutesOfDay() {
		day, next := s.nextOpening(now)
		return Decision{
			CanGenerate: false,
			Reason:      ReasonAfterClosing,
			Message: fmt.Sprintf(
				"The museum has closed for today. Come back on %s, open %s - %s.",
				day, next.Open, next.Close),
		}
	}

	remaining := window.Close.minutesOfDay() - current

	if remaining < MinViableVisit {
		day, next := s.nextOpening(now)
		return Decision{
			CanGenerate:    false,
			Reason:         ReasonClosingSoon,
			MinutesToClose: remaining,
			Message: fmt.Sprintf(
				"The museum closes in %d minutes; there is not enough time for a meaningful visit. Come back on %s, open %s - %s.",
				remaining, day, next.Open, next.Close),
		}
	}

	if requested == nil {
		if remaining >= FullVisitThreshold {
			return Decision{
				CanGenerate:    true,
				Reason:         ReasonOpen,
				MinutesToClose: remaining,
				Message: fmt.Sprintf(
					"You have %d minutes until closing; the full tour fits comfortably.", remaining),
			}
		}
		adjusted := int(float64(remaining) * safetyFactor)
		return Decision{
			CanGenerate:    true,
			Duration:       &adjusted,
			Reason:         ReasonOpen,
			MinutesToClose: remaining,
			Message: fmt.Sprintf(
				"The museum closes at %s (in %d minutes), so the full tour will not fit. You will get a shorter itinerary of about %d minutes built around your interests.",
				window.Close, remaining, adjusted),
		}
	}

	want := *requested
	if want <= remaining {
		return Decision{
			CanGenerate:    true,
			Duration:       &want,
			Reason:         ReasonOpen,
			MinutesToClose: remaining,
			Message:        fmt.Sprintf("There is enough time for your %d minute visit.", want),
		}
	}

	if want-remaining <= SmallOverage {
		adjusted := int(float64(remaining) * tightFactor)
		return Decision{
			CanGenerate:    true,
			Duration:       &adjusted,
			Reason:         ReasonOpen,
			MinutesToClose: remaining,
			Message: fmt.Sprintf(
				"Itinerary trimmed to %d minutes so you finish before closing.", adjusted),
		}
	}

	adjusted := int(float64(remaining) * safetyFactor)
	return Decision{
		CanGenerate:    true,
		Duration:       &adjusted,
		Reason:         ReasonOpen,
		MinutesToClose: remaining,
		Message: fmt.Sprintf(
			"You asked for %d minutes but the museum closes in %d. You will get a %d minute itinerary covering the most relevant areas.",
			want, remaining, adjusted),
	}
}

// OpeningMessage returns the formatted weekly schedule.
func (s Schedule) OpeningMessage() string {
	var b strings.Builder
	b.WriteString("Museum hours:\n")
	for day := time.Monday; ; day = (day + 1) % 7 {
		if w, ok := s.WindowFor(day); ok {
			fmt.Fprintf(&b, "- %s: %s - %s\n", day, w.Open, w.Close)
		} else {
			fmt.Fprintf(&b, "- %s: closed\n", day)
		}
		if day == time.Sunday {
			break
		}
	}
	return b.String()
}
