package schedule

import "context"

// Venue is the scheduling view of a judicial venue (vara).
type Venue struct {
	ID   string
	Name string
	// Windows are the workable periods of each day, sorted by Open.
	// Empty means the engine defaults apply.
	Windows      []Window
	SkipWeekends bool
	// MandatoryBufferMinutes is applied on both sides of every booking when
	// validating a proposed hearing.
	MandatoryBufferMinutes int
}

// Booking is a persisted hearing interval plus the details callers report back.
type Booking struct {
	Interval
	VenueName  string
	CaseNumber string
}

// VenueSource resolves venues. GetVenue returns an error matching ErrVenueNotFound
// for unknown ids.
type VenueSource interface {
	GetVenue(ctx context.Context, id string) (Venue, error)
	ListVenues(ctx context.Context) ([]Venue, error)
}

// BookingSource loads the hearings that occupy venue calendars.
// Only hearings that still block their slot are returned.
type BookingSource interface {
	ListBookings(ctx context.Context, venueIDs []string, from, to Date) ([]Booking, error)
}
