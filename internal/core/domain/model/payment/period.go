package payment

import (
	"fmt"
	"time"

	"montarota/internal/pkg/errs"
)

// DateLayout is the calendar date format used for settlement periods.
const DateLayout = "2006-01-02"

var ErrPeriodIsRequired = errs.NewValueIsRequiredError("period")

// Period is an inclusive range of calendar days in UTC.
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod truncates both bounds to UTC midnight and requires start <= end.
func NewPeriod(start, end time.Time) (Period, error) {
	s := truncateDay(start)
	e := truncateDay(end)
	if s.IsZero() || e.IsZero() {
		return Period{}, ErrPeriodIsRequired
	}
	if e.Before(s) {
		return Period{}, errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("end %s is before start %s", e.Format(DateLayout), s.Format(DateLayout)))
	}
	return Period{start: s, end: e}, nil
}

// PreviousWeek returns Monday to Sunday of the week before the one containing now.
func PreviousWeek(now time.Time) Period {
	day := truncateDay(now)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset-7)
	return Period{start: monday, end: monday.AddDate(0, 0, 6)}
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

// Until is the exclusive upper bound: the midnight after End.
func (p Period) Until() time.Time {
	return p.end.AddDate(0, 0, 1)
}

func (p Period) String() string {
	return p.start.Format(DateLayout) + ".." + p.end.Format(DateLayout)
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
