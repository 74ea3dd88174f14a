package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/apperror"
)

// FreeSlotQuery asks for openings of DurationMinutes between DateStart and
// DateEnd, both inclusive. An empty VenueID searches every venue independently.
type FreeSlotQuery struct {
	DateStart           Date
	DateEnd             Date
	VenueID             string
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	GridMinutes         int
	MinGapMinutes       int
	// Windows replaces the venue working windows for this query.
	Windows []Window
	// Tile emits back-to-back slots inside each gap instead of only the earliest one.
	Tile bool
}

// Slot is an opening that can take a new hearing.
type Slot struct {
	VenueID   string
	VenueName string
	Date      Date
	Start     Clock
	End       Clock
}

func (s Slot) DurationMinutes() int {
	return int(s.End - s.Start)
}

type venueDay struct {
	venueID string
	date    Date
}

// FindFreeSlots lists the openings for q ordered by date, start time and venue id.
// It either returns the complete list or an error, never a partial result.
func (e *Engine) FindFreeSlots(ctx context.Context, q FreeSlotQuery) ([]Slot, error) {
	windows, err := e.validateFreeSlotQuery(q)
	if err != nil {
		return nil, err
	}
	q.Windows = windows

	var venues []Venue
	if q.VenueID != "" {
		v, err := e.venues.GetVenue(ctx, q.VenueID)
		if err != nil {
			return nil, fmt.Errorf("get venue: %w", err)
		}
		venues = []Venue{v}
	} else {
		venues, err = e.venues.ListVenues(ctx)
		if err != nil {
			return nil, fmt.Errorf("list venues: %w", err)
		}
	}

	slots := make([]Slot, 0)
	if len(venues) == 0 {
		return slots, nil
	}

	ids := make([]string, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
	}

	bookings, err := e.bookings.ListBookings(ctx, ids, q.DateStart, q.DateEnd)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	byDay := make(map[venueDay][]Interval)
	for _, b := range bookings {
		key := venueDay{venueID: b.VenueID, date: b.Date}
		byDay[key] = append(byDay[key], b.Interval)
	}

	for _, v := range venues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for d := q.DateStart; !d.After(q.DateEnd); d = d.AddDays(1) {
			slots = append(slots, daySlots(v, d, e.windowsFor(v, d, q.Windows), byDay[venueDay{v.ID, d}], q)...)
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.VenueID < b.VenueID
	})

	e.logger.Debug("free slots computed",
		zap.String("from", q.DateStart.String()),
		zap.String("to", q.DateEnd.String()),
		zap.Int("venues", len(venues)),
		zap.Int("bookings", len(bookings)),
		zap.Int("slots", len(slots)),
	)

	return slots, nil
}

// validateFreeSlotQuery checks q and returns its override windows sorted by open time.
func (e *Engine) validateFreeSlotQuery(q FreeSlotQuery) ([]Window, error) {
	if !q.DateStart.Valid() || !q.DateEnd.Valid() {
		return nil, ErrInvalidDate
	}
	if q.DateStart.After(q.DateEnd) {
		return nil, ErrInvalidDateRange
	}
	if days := q.DateStart.DaysUntil(q.DateEnd) + 1; days > e.maxRangeDays {
		return nil, apperror.Validation("date range of %d days exceeds the limit of %d days", days, e.maxRangeDays)
	}
	if q.DurationMinutes <= 0 || q.DurationMinutes >= MinutesPerDay {
		return nil, ErrInvalidDuration
	}
	if q.BufferBeforeMinutes < 0 || q.BufferAfterMinutes < 0 || q.GridMinutes < 0 || q.MinGapMinutes < 0 {
		return nil, ErrNegativeSpacing
	}
	if q.GridMinutes >= MinutesPerDay {
		return nil, ErrInvalidGrid
	}
	return NormalizeWindows(q.Windows)
}

// NormalizeWindows validates windows and returns a sorted copy.
// Overlapping windows are rejected.
func NormalizeWindows(windows []Window) ([]Window, error) {
	if len(windows) == 0 {
		return nil, nil
	}
	out := make([]Window, len(windows))
	copy(out, windows)
	sort.Slice(out, func(i, j int) bool { return out[i].Open < out[j].Open })
	for i, w := range out {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if i > 0 && w.Open < out[i-1].Close {
			return nil, apperror.Validation("working windows %s and %s overlap", out[i-1], w)
		}
	}
	return out, nil
}

// windowsFor picks the working windows of venue v on date d.
func (e *Engine) windowsFor(v Venue, d Date, override []Window) []Window {
	if v.SkipWeekends {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return nil
		}
	}
	switch {
	case len(override) > 0:
		return override
	case len(v.Windows) > 0:
		return v.Windows
	default:
		return e.defaultWindows
	}
}

// daySlots walks the bookings of one venue day and yields the openings of
// every working window. windows must be sorted and disjoint.
func daySlots(v Venue, d Date, windows []Window, booked []Interval, q FreeSlotQuery) []Slot {
	if len(windows) == 0 {
		return nil
	}

	sorted := make([]Interval, len(booked))
	copy(sorted, booked)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	g := gapFiller{
		venue:    v,
		date:     d,
		anchor:   int(windows[0].Open),
		duration: q.DurationMinutes,
		grid:     q.GridMinutes,
		minGap:   q.MinGapMinutes,
		tile:     q.Tile,
	}

	for _, w := range windows {
		open, closeAt := int(w.Open), int(w.Close)
		cursor := open
		for _, b := range sorted {
			blockedStart := int(b.Start) - q.BufferBeforeMinutes
			blockedEnd := int(b.End) + q.BufferAfterMinutes
			if blockedEnd <= cursor {
				continue
			}
			if blockedStart >= closeAt {
				break
			}
			g.fill(cursor, min(blockedStart, closeAt))
			cursor = blockedEnd
			if cursor >= closeAt {
				break
			}
		}
		if cursor < closeAt {
			g.fill(cursor, closeAt)
		}
	}

	return g.slots
}

// gapFiller turns candidate spans into slots.
type gapFiller struct {
	venue    Venue
	date     Date
	anchor   int
	duration int
	grid     int
	minGap   int
	tile     bool
	slots    []Slot
}

// fill emits the slots of the free span [from, to).
func (g *gapFiller) fill(from, to int) {
	start := g.snap(from)
	width := to - start
	if width < g.duration || width < g.minGap {
		return
	}
	for start+g.duration <= to {
		g.slots = append(g.slots, Slot{
			VenueID:   g.venue.ID,
			VenueName: g.venue.Name,
			Date:      g.date,
			Start:     Clock(start),
			End:       Clock(start + g.duration),
		})
		if !g.tile {
			return
		}
		start = g.snap(start + g.duration + g.minGap)
	}
}

// snap rounds t up to the next grid boundary counted from the day anchor.
func (g *gapFiller) snap(t int) int {
	if g.grid <= 0 {
		return t
	}
	r := ((t-g.anchor)%g.grid + g.grid) % g.grid
	if r == 0 {
		return t
	}
	return t + g.grid - r
}
