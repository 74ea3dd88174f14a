package schedule

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// ConflictQuery describes a proposed booking. ExcludeHearingID skips the
// hearing's own prior booking when it is being edited.
type ConflictQuery struct {
	Candidate        Interval
	ExcludeHearingID string
}

// FindConflicts returns every booking of the candidate's venue and date that
// overlaps the candidate. An empty result means no conflict.
//
// The venue's mandatory buffer, when configured, is applied on both sides of
// each existing booking. Unknown venues fail with ErrVenueNotFound.
func (e *Engine) FindConflicts(ctx context.Context, q ConflictQuery) ([]Booking, error) {
	c := q.Candidate
	if c.VenueID == "" {
		return nil, ErrVenueRequired
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	venue, err := e.venues.GetVenue(ctx, c.VenueID)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}

	existing, err := e.bookings.ListBookings(ctx, []string{venue.ID}, c.Date, c.Date)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	buffer := venue.MandatoryBufferMinutes
	conflicts := make([]Booking, 0)
	for _, b := range existing {
		if q.ExcludeHearingID != "" && b.HearingID == q.ExcludeHearingID {
			continue
		}
		if Overlaps(c, b.Interval, buffer, buffer) {
			conflicts = append(conflicts, b)
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].Start != conflicts[j].Start {
			return conflicts[i].Start < conflicts[j].Start
		}
		return conflicts[i].HearingID < conflicts[j].HearingID
	})

	if len(conflicts) > 0 {
		e.logger.Debug("schedule conflicts found",
			zap.String("venue_id", venue.ID),
			zap.String("date", c.Date.String()),
			zap.String("start", c.Start.String()),
			zap.String("end", c.End.String()),
			zap.Int("count", len(conflicts)),
		)
	}

	return conflicts, nil
}
