package hearing

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/apperror"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

const (
	venueA = "8f14e45f-ceea-4e6b-9e2f-1a3c5b7d9e01"
	venueB = "c9f0f895-fb98-4b91-8f3c-2d4e6a8b0c02"
	caseNo = "0001234-56.2024.8.26.0100"
)

var monday = schedule.Date{Year: 2024, Month: time.March, Day: 4}

type memoryRepo struct {
	hearings map[string]*Hearing
	// createErr simulates a storage rejection on insert.
	createErr error
	// lastFilter is the filter seen by the latest List call.
	lastFilter Filter
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{hearings: make(map[string]*Hearing)}
}

func (m *memoryRepo) Create(ctx context.Context, h *Hearing) error {
	if m.createErr != nil {
		return m.createErr
	}
	h.ID = uuid.NewString()
	cp := *h
	m.hearings[h.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id string) (*Hearing, error) {
	h, ok := m.hearings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *memoryRepo) List(ctx context.Context, filter Filter) ([]*Hearing, int, error) {
	m.lastFilter = filter
	var out []*Hearing
	for _, h := range m.hearings {
		if filter.VenueID != "" && h.VenueID != filter.VenueID {
			continue
		}
		cp := *h
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Update(ctx context.Context, h *Hearing) error {
	if _, ok := m.hearings[h.ID]; !ok {
		return ErrNotFound
	}
	cp := *h
	m.hearings[h.ID] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.hearings[id]; !ok {
		return ErrNotFound
	}
	delete(m.hearings, id)
	return nil
}

func (m *memoryRepo) ListBookings(ctx context.Context, venueIDs []string, from, to schedule.Date) ([]schedule.Booking, error) {
	var out []schedule.Booking
	for _, h := range m.hearings {
		if !h.Status.Blocking() || h.Date.Before(from) || h.Date.After(to) {
			continue
		}
		for _, id := range venueIDs {
			if h.VenueID == id {
				out = append(out, schedule.Booking{Interval: h.Interval(), CaseNumber: h.CaseNumber})
			}
		}
	}
	return out, nil
}

type venueTable map[string]schedule.Venue

func (v venueTable) GetVenue(ctx context.Context, id string) (schedule.Venue, error) {
	venue, ok := v[id]
	if !ok {
		return schedule.Venue{}, schedule.ErrVenueNotFound
	}
	return venue, nil
}

func (v venueTable) ListVenues(ctx context.Context) ([]schedule.Venue, error) {
	out := make([]schedule.Venue, 0, len(v))
	for _, venue := range v {
		out = append(out, venue)
	}
	return out, nil
}

func newTestService() (Service, *memoryRepo) {
	repo := newMemoryRepo()
	venues := venueTable{
		venueA: {ID: venueA, Name: "1ª Vara Criminal"},
		venueB: {ID: venueB, Name: "Vara do Júri", MandatoryBufferMinutes: 15},
	}
	engine := schedule.NewEngine(venues, repo, schedule.Options{}, nil)
	return NewService(repo, engine, nil), repo
}

func createAt(venueID string, h, m, duration int) CreateRequest {
	return CreateRequest{
		VenueID:         venueID,
		CaseNumber:      caseNo,
		Date:            monday,
		Start:           schedule.MustClock(h, m),
		DurationMinutes: duration,
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CreateRequest)
		wantErr error
	}{
		{name: "missing venue", mutate: func(r *CreateRequest) { r.VenueID = "" }, wantErr: schedule.ErrVenueRequired},
		{name: "malformed case number", mutate: func(r *CreateRequest) { r.CaseNumber = "1234/2024" }, wantErr: ErrInvalidCaseNumber},
		{name: "short duration", mutate: func(r *CreateRequest) { r.DurationMinutes = 10 }, wantErr: ErrInvalidDuration},
		{name: "long duration", mutate: func(r *CreateRequest) { r.DurationMinutes = 481 }, wantErr: ErrInvalidDuration},
		{name: "past midnight", mutate: func(r *CreateRequest) { r.Start = schedule.MustClock(23, 30); r.DurationMinutes = 30 }, wantErr: ErrPastMidnight},
		{name: "bad status", mutate: func(r *CreateRequest) { r.Status = "adiada" }, wantErr: ErrInvalidStatus},
		{name: "bad type", mutate: func(r *CreateRequest) { r.Type = "conciliacao" }, wantErr: ErrInvalidType},
		{name: "bad format", mutate: func(r *CreateRequest) { r.Format = "telefone" }, wantErr: ErrInvalidFormat},
		{name: "bad date", mutate: func(r *CreateRequest) { r.Date = schedule.Date{} }, wantErr: schedule.ErrInvalidDate},
		{name: "unknown venue", mutate: func(r *CreateRequest) { r.VenueID = uuid.NewString() }, wantErr: schedule.ErrVenueNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			req := createAt(venueA, 9, 0, 60)
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.hearings)
		})
	}
}

func TestCreateDefaultsAndDerivedEnd(t *testing.T) {
	svc, _ := newTestService()

	h, err := svc.Create(context.Background(), createAt(venueA, 9, 0, 90))
	require.NoError(t, err)
	assert.Equal(t, schedule.MustClock(10, 30), h.End)
	assert.Equal(t, StatusScheduled, h.Status)
	assert.Equal(t, TypeOther, h.Type)
	assert.Equal(t, FormatInPerson, h.Format)
}

func TestCreateRejectsConflicts(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createAt(venueA, 9, 0, 60))
	require.NoError(t, err)

	t.Run("overlapping", func(t *testing.T) {
		_, err := svc.Create(ctx, createAt(venueA, 9, 30, 60))
		require.ErrorIs(t, err, ErrTimeConflict)
		assert.Equal(t, http.StatusConflict, apperror.StatusCode(err))

		var ce *ConflictError
		require.True(t, errors.As(err, &ce))
		require.Len(t, ce.Conflicts, 1)
		assert.Contains(t, err.Error(), caseNo)
		assert.Contains(t, err.Error(), "09:00-10:00")
	})

	t.Run("touching is allowed", func(t *testing.T) {
		_, err := svc.Create(ctx, createAt(venueA, 10, 0, 30))
		require.NoError(t, err)
	})

	t.Run("cancelled never blocks", func(t *testing.T) {
		req := createAt(venueA, 9, 15, 30)
		req.Status = StatusCancelled
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)

		_, err = svc.Create(ctx, createAt(venueA, 11, 0, 30))
		require.NoError(t, err)
	})

	t.Run("mandatory buffer of the venue", func(t *testing.T) {
		_, err := svc.Create(ctx, createAt(venueB, 9, 0, 60))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createAt(venueB, 10, 0, 30))
		assert.ErrorIs(t, err, ErrTimeConflict)

		_, err = svc.Create(ctx, createAt(venueB, 10, 15, 30))
		assert.NoError(t, err)
	})

	assert.Len(t, repo.hearings, 6)
}

func TestCreateStorageConflict(t *testing.T) {
	svc, repo := newTestService()
	repo.createErr = ErrTimeConflict

	_, err := svc.Create(context.Background(), createAt(venueA, 9, 0, 60))
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, createAt(venueA, 9, 0, 60))
	require.NoError(t, err)
	second, err := svc.Create(ctx, createAt(venueA, 10, 0, 60))
	require.NoError(t, err)

	t.Run("own slot is excluded", func(t *testing.T) {
		duration := 45
		h, err := svc.Update(ctx, first.ID, UpdateRequest{DurationMinutes: &duration})
		require.NoError(t, err)
		assert.Equal(t, schedule.MustClock(9, 45), h.End)
	})

	t.Run("moving onto another hearing", func(t *testing.T) {
		start := schedule.MustClock(10, 30)
		_, err := svc.Update(ctx, first.ID, UpdateRequest{Start: &start})
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("reactivating over a taken slot", func(t *testing.T) {
		cancelled := StatusCancelled
		_, err := svc.Update(ctx, second.ID, UpdateRequest{Status: &cancelled})
		require.NoError(t, err)

		start := schedule.MustClock(10, 0)
		_, err = svc.Update(ctx, first.ID, UpdateRequest{Start: &start})
		require.NoError(t, err)

		scheduled := StatusScheduled
		_, err = svc.Update(ctx, second.ID, UpdateRequest{Status: &scheduled})
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("notes only", func(t *testing.T) {
		notes := "réu preso"
		h, err := svc.Update(ctx, first.ID, UpdateRequest{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, notes, h.Notes)
	})

	t.Run("unknown hearing", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.NewString(), UpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListRejectsReversedRange(t *testing.T) {
	svc, _ := newTestService()
	from, to := monday.AddDays(1), monday

	_, _, err := svc.List(context.Background(), Filter{DateFrom: &from, DateTo: &to})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestListClampsPagination(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, _, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, request.DefaultPageSize, repo.lastFilter.PageSize)

	_, _, err = svc.List(ctx, Filter{Page: 3, PageSize: 5000})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.lastFilter.Page)
	assert.Equal(t, request.MaxPageSize, repo.lastFilter.PageSize)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	h, err := svc.Create(ctx, createAt(venueA, 9, 0, 60))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, h.ID))
	assert.ErrorIs(t, svc.Delete(ctx, h.ID), ErrNotFound)
}
