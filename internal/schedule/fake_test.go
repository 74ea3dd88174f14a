package schedule

import (
	"context"
	"time"
)

// memorySource is an in-memory VenueSource and BookingSource.
type memorySource struct {
	venues       []Venue
	bookings     []Booking
	err          error
	bookingCalls int
}

func (m *memorySource) GetVenue(ctx context.Context, id string) (Venue, error) {
	if err := ctx.Err(); err != nil {
		return Venue{}, err
	}
	for _, v := range m.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return Venue{}, ErrVenueNotFound
}

func (m *memorySource) ListVenues(ctx context.Context) ([]Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.venues, nil
}

func (m *memorySource) ListBookings(ctx context.Context, venueIDs []string, from, to Date) ([]Booking, error) {
	m.bookingCalls++
	if m.err != nil {
		return nil, m.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(venueIDs))
	for _, id := range venueIDs {
		wanted[id] = true
	}
	var out []Booking
	for _, b := range m.bookings {
		if wanted[b.VenueID] && !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func newTestEngine(src *memorySource) *Engine {
	return NewEngine(src, src, Options{}, nil)
}

func at(hour, minute int) Clock {
	return MustClock(hour, minute)
}

func day(year int, month time.Month, d int) Date {
	return Date{Year: year, Month: month, Day: d}
}

func booking(id, venueID string, d Date, start, end Clock) Booking {
	return Booking{
		Interval:   Interval{VenueID: venueID, Date: d, Start: start, End: end, HearingID: id},
		CaseNumber: "0000001-00.2024.8.26.0001",
	}
}
