package hours

import (
	"strings"
	"testing"
	"time"
)

// 2026-01-26 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, 1, day, hour, minute, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestEvaluateClosedBranches(t *testing.T) {
	s := DefaultSchedule()

	tests := []struct {
		name       string
		now        time.Time
		requested  *int
		wantReason Reason
		wantInMsg  string
	}{
		{
			name:       "monday closed",
			now:        at(26, 14, 0),
			wantReason: ReasonClosedDay,
			wantInMsg:  "Tuesday, open 08:00",
		},
		{
			name:       "before opening",
			now:        at(27, 7, 30),
			wantReason: ReasonBeforeOpening,
			wantInMsg:  "open at 08:00",
		},
		{
			name:       "after closing",
			now:        at(27, 18, 0),
			wantReason: ReasonAfterClosing,
			wantInMsg:  "Wednesday",
		},
		{
			name:       "exactly at closing",
			now:        at(27, 17, 0),
			wantReason: ReasonAfterClosing,
			wantInMsg:  "Wednesday",
		},
		{
			name:       "sunday evening skips monday",
			now:        at(25, 17, 0),
			wantReason: ReasonAfterClosing,
			wantInMsg:  "Tuesday",
		},
		{
			name:       "closing soon",
			now:        at(27, 16, 45),
			requested:  intPtr(60),
			wantReason: ReasonClosingSoon,
			wantInMsg:  "not enough time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.Evaluate(tt.now, tt.requested)
			if d.CanGenerate {
				t.Fatalf("CanGenerate = true, want false")
			}
			if d.Duration != nil {
				t.Errorf("Duration = %d, want nil", *d.Duration)
			}
			if d.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", d.Reason, tt.wantReason)
			}
			if !strings.Contains(d.Message, tt.wantInMsg) {
				t.Errorf("Message %q does not contain %q", d.Message, tt.wantInMsg)
			}
		})
	}
}

func TestEvaluateOpenBranches(t *testing.T) {
	s := DefaultSchedule()

	tests := []struct {
		name         string
		now          time.Time
		requested    *int
		wantDuration *int
	}{
		{
			name: "no limit with full day ahead",
			// Tuesday 09:00, 480 min remain: full tour, nil cap.
			now:          at(27, 9, 0),
			wantDuration: nil,
		},
		{
			name: "no limit near closing gets 80 percent",
			// Tuesday 16:15, 45 min remain -> 36.
			now:          at(27, 16, 15),
			wantDuration: intPtr(36),
		},
		{
			name: "requested fits and is returned unchanged",
			now:  at(27, 9, 0),
			// 480 remain, 120 requested.
			requested:    intPtr(120),
			wantDuration: intPtr(120),
		},
		{
			name: "small overage rounds to 90 percent silently",
			// Tuesday 16:00, 60 remain, 70 requested (overage 10 <= 15) -> 54.
			now:          at(27, 16, 0),
			requested:    intPtr(70),
			wantDuration: intPtr(54),
		},
		{
			name: "large overage caps at 80 percent",
			// Tuesday 09:00, 480 remain, 500 requested -> 384.
			now:          at(27, 9, 0),
			requested:    intPtr(500),
			wantDuration: intPtr(384),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.Evaluate(tt.now, tt.requested)
			if !d.CanGenerate {
				t.Fatalf("CanGenerate = false, message: %s", d.Message)
			}
			if tt.wantDuration == nil {
				if d.Duration != nil {
					t.Errorf("Duration = %d, want nil", *d.Duration)
				}
			} else {
				if d.Duration == nil {
					t.Fatalf("Duration = nil, want %d", *tt.wantDuration)
				}
				if *d.Duration != *tt.wantDuration {
					t.Errorf("Duration = %d, want %d", *d.Duration, *tt.wantDuration)
				}
			}
		})
	}
}

// Within an open window, remaining minutes strictly decrease as the clock
// moves later, and crossing the close flips CanGenerate exactly once.
func TestEvaluateMonotonicity(t *testing.T) {
	s := DefaultSchedule()

	prevRemaining := -1
	flips := 0
	prevCan := false
	for minute := 0; minute < 24*60; minute += 5 {
		now := at(27, 0, 0).Add(time.Duration(minute) * time.Minute)
		d := s.Evaluate(now, nil)
		if d.CanGenerate {
			if prevCan && d.MinutesToClose >= prevRemaining {
				t.Fatalf("remaining did not decrease at %s: %d -> %d",
					now.Format("15:04"), prevRemaining, d.MinutesToClose)
			}
			prevRemaining = d.MinutesToClose
		}
		if d.CanGenerate != prevCan {
			flips++
			prevCan = d.CanGenerate
		}
	}
	// open once in the morning, closed once near/after the end of the window
	if flips != 2 {
		t.Errorf("CanGenerate flipped %d times, want 2", flips)
	}
}

func TestRemaining(t *testing.T) {
	s := DefaultSchedule()
	if got := s.Remaining(at(26, 12, 0)); got != 0 {
		t.Errorf("Remaining on closed day = %d, want 0", got)
	}
	if got := s.Remaining(at(27, 16, 0)); got != 60 {
		t.Errorf("Remaining = %d, want 60", got)
	}
	if got := s.Remaining(at(27, 17, 0)); got != 0 {
		t.Errorf("Remaining at close = %d, want 0", got)
	}
}

func TestOpeningMessageListsEveryDay(t *testing.T) {
	msg := DefaultSchedule().OpeningMessage()
	for day := time.Sunday; day <= time.Saturday; day++ {
		if !strings.Contains(msg, day.String()) {
			t.Errorf("schedule message missing %s", day)
		}
	}
	if !strings.Contains(msg, "Monday: closed") {
		t.Errorf("schedule message should mark Monday closed:\n%s", msg)
	}
}
