package schedule

import (
	"fmt"
	"time"
)

// MinutesPerDay bounds every Clock value: valid clocks are in [0, MinutesPerDay).
const MinutesPerDay = 24 * 60

// Date is a civil calendar date with no time zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date or ErrInvalidDate when it does not exist in the calendar.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, ErrInvalidDate
	}
	return d, nil
}

// DateOf takes the calendar fields of t as seen in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Valid reports whether d names a real calendar day.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return DateOf(d.Time()) == d
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	return d.Time().Compare(o.Time())
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// DaysUntil counts whole days from d to o; negative when o is earlier.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

// String formats the date as ISO 8601 (yyyy-mm-dd).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Clock is a time of day with minute resolution, counted from 00:00.
type Clock int

// NewClock builds a Clock from hour and minute fields.
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidClock
	}
	return Clock(hour*60 + minute), nil
}

// MustClock is NewClock for constants known to be valid.
func MustClock(hour, minute int) Clock {
	c, err := NewClock(hour, minute)
	if err != nil {
		panic(fmt.Sprintf("schedule: invalid clock %02d:%02d", hour, minute))
	}
	return c
}

func (c Clock) Valid() bool {
	return c >= 0 && c < MinutesPerDay
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Interval is a booked or candidate span [Start, End) of one venue on one date.
// HearingID is empty for a probe that is not persisted yet.
type Interval struct {
	VenueID   string
	Date      Date
	Start     Clock
	End       Clock
	HearingID string
}

// NewInterval validates and returns an Interval. It never clamps out-of-range values.
func NewInterval(venueID string, date Date, start, end Clock, hearingID string) (Interval, error) {
	i := Interval{
		VenueID:   venueID,
		Date:      date,
		Start:     start,
		End:       end,
		HearingID: hearingID,
	}
	if err := i.Validate(); err != nil {
		return Interval{}, err
	}
	return i, nil
}

// Validate checks the calendar date, the clock range and that Start < End.
func (i Interval) Validate() error {
	if !i.Date.Valid() {
		return ErrInvalidDate
	}
	if !i.Start.Valid() || !i.End.Valid() {
		return ErrInvalidClock
	}
	if i.Start >= i.End {
		return ErrInvalidInterval
	}
	return nil
}

// Minutes is the length of the interval.
func (i Interval) Minutes() int {
	return int(i.End - i.Start)
}

// Window is a workable period of a day, [Open, Close).
type Window struct {
	Open  Clock
	Close Clock
}

func (w Window) Validate() error {
	if !w.Open.Valid() || !w.Close.Valid() {
		return ErrInvalidClock
	}
	if w.Open >= w.Close {
		return ErrInvalidWindow
	}
	return nil
}

// String formats the window as HH:MM-HH:MM.
func (w Window) String() string {
	return w.Open.String() + "-" + w.Close.String()
}
