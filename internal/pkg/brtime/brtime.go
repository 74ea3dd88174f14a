// Package brtime converts between the dd/MM/yyyy and HH:mm[:ss] wire formats
// and the schedule package's civil date and clock types.
package brtime

import (
	"strings"
	"time"

	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

const (
	DateLayout = "02/01/2006"
	// dashed dates are accepted on input only
	altDateLayout = "02-01-2006"

	TimeLayout      = "15:04:05"
	shortTimeLayout = "15:04"
)

// ParseDate reads a dd/MM/yyyy date. dd-MM-yyyy is accepted as well.
func ParseDate(s string) (schedule.Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(altDateLayout, s)
	}
	if err != nil {
		return schedule.Date{}, schedule.ErrInvalidDate
	}
	return schedule.DateOf(t), nil
}

// FormatDate writes d as dd/MM/yyyy.
func FormatDate(d schedule.Date) string {
	return d.Time().Format(DateLayout)
}

// ParseTime reads HH:mm or HH:mm:ss. Non-zero seconds are rejected.
func ParseTime(s string) (schedule.Clock, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		t, err = time.Parse(shortTimeLayout, s)
	}
	if err != nil || t.Second() != 0 {
		return 0, schedule.ErrInvalidClock
	}
	return schedule.NewClock(t.Hour(), t.Minute())
}

// FormatTime writes c as HH:mm:ss.
func FormatTime(c schedule.Clock) string {
	return c.String() + ":00"
}

// ParseWindows reads a comma separated list such as "08:00-12:00,13:00-18:00".
func ParseWindows(s string) ([]schedule.Window, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []schedule.Window
	for _, part := range strings.Split(s, ",") {
		open, closeAt, ok := strings.Cut(strings.TrimSpace(part), "-")
		if !ok {
			return nil, schedule.ErrInvalidWindow
		}
		o, err := ParseTime(open)
		if err != nil {
			return nil, err
		}
		c, err := ParseTime(closeAt)
		if err != nil {
			return nil, err
		}
		out = append(out, schedule.Window{Open: o, Close: c})
	}
	return schedule.NormalizeWindows(out)
}

// FormatWindows is the inverse of ParseWindows.
func FormatWindows(windows []schedule.Window) string {
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = w.String()
	}
	return strings.Join(parts, ",")
}

// Janela is the JSON form of a working window.
type Janela struct {
	Inicio string `json:"inicio" binding:"required"`
	Fim    string `json:"fim" binding:"required"`
}

// ParseJanelas converts JSON windows and returns them sorted.
func ParseJanelas(in []Janela) ([]schedule.Window, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]schedule.Window, 0, len(in))
	for _, j := range in {
		o, err := ParseTime(j.Inicio)
		if err != nil {
			return nil, err
		}
		c, err := ParseTime(j.Fim)
		if err != nil {
			return nil, err
		}
		out = append(out, schedule.Window{Open: o, Close: c})
	}
	return schedule.NormalizeWindows(out)
}

func NewJanelas(windows []schedule.Window) []Janela {
	out := make([]Janela, len(windows))
	for i, w := range windows {
		out[i] = Janela{Inicio: FormatTime(w.Open), Fim: FormatTime(w.Close)}
	}
	return out
}

var weekdayNames = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
}

// WeekdayName returns the Portuguese name of the day of week of d.
func WeekdayName(d schedule.Date) string {
	return weekdayNames[d.Weekday()]
}
