package venue

import (
	"context"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

type memoryRepo struct {
	venues map[string]*Venue
	order  []string
	err    error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{venues: make(map[string]*Venue)}
}

func (m *memoryRepo) Create(ctx context.Context, v *Venue) error {
	if m.err != nil {
		return m.err
	}
	v.ID = uuid.NewString()
	cp := *v
	m.venues[v.ID] = &cp
	m.order = append(m.order, v.ID)
	return nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id string) (*Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memoryRepo) List(ctx context.Context, filter Filter) ([]*Venue, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*Venue
	for _, id := range m.order {
		if v, ok := m.venues[id]; ok {
			cp := *v
			out = append(out, &cp)
		}
	}
	total := len(out)
	if filter.PageSize > 0 {
		from := min((filter.Page-1)*filter.PageSize, total)
		out = out[from:min(from+filter.PageSize, total)]
	}
	return out, total, nil
}

func (m *memoryRepo) Update(ctx context.Context, v *Venue) error {
	if _, ok := m.venues[v.ID]; !ok {
		return ErrNotFound
	}
	cp := *v
	m.venues[v.ID] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.venues[id]; !ok {
		return ErrNotFound
	}
	delete(m.venues, id)
	return nil
}

func TestServiceCreate(t *testing.T) {
	morning := schedule.Window{Open: schedule.MustClock(9, 0), Close: schedule.MustClock(12, 0)}
	afternoon := schedule.Window{Open: schedule.MustClock(13, 0), Close: schedule.MustClock(17, 0)}

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{name: "valid", req: CreateRequest{Name: "1ª Vara Cível", Windows: []schedule.Window{afternoon, morning}}},
		{name: "blank name", req: CreateRequest{Name: "   "}, wantErr: ErrNameRequired},
		{name: "negative buffer", req: CreateRequest{Name: "Vara", MandatoryBufferMinutes: -5}, wantErr: ErrInvalidBuffer},
		{name: "buffer too large", req: CreateRequest{Name: "Vara", MandatoryBufferMinutes: MaxMandatoryBufferMinutes + 1}, wantErr: ErrInvalidBuffer},
		{
			name:    "reversed window",
			req:     CreateRequest{Name: "Vara", Windows: []schedule.Window{{Open: schedule.MustClock(12, 0), Close: schedule.MustClock(9, 0)}}},
			wantErr: schedule.ErrInvalidWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepo()
			svc := NewService(repo, nil)

			v, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.venues)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, v.ID)
			assert.Equal(t, []schedule.Window{morning, afternoon}, v.Windows)
		})
	}
}

func TestServiceUpdate(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	v, err := svc.Create(ctx, CreateRequest{Name: "Vara", SkipWeekends: true})
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		buffer := 15
		updated, err := svc.Update(ctx, v.ID, UpdateRequest{MandatoryBufferMinutes: &buffer})
		require.NoError(t, err)
		assert.Equal(t, "Vara", updated.Name)
		assert.True(t, updated.SkipWeekends)
		assert.Equal(t, 15, updated.MandatoryBufferMinutes)
	})

	t.Run("empty windows clear the list", func(t *testing.T) {
		windows := []schedule.Window{{Open: schedule.MustClock(8, 0), Close: schedule.MustClock(11, 0)}}
		_, err := svc.Update(ctx, v.ID, UpdateRequest{Windows: &windows})
		require.NoError(t, err)

		cleared := []schedule.Window{}
		updated, err := svc.Update(ctx, v.ID, UpdateRequest{Windows: &cleared})
		require.NoError(t, err)
		assert.Empty(t, updated.Windows)
	})

	t.Run("invalid name rejected", func(t *testing.T) {
		blank := ""
		_, err := svc.Update(ctx, v.ID, UpdateRequest{Name: &blank})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("unknown venue", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.NewString(), UpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceVenueSource(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	for i := range 3 {
		_, err := svc.Create(ctx, CreateRequest{Name: "Vara " + strconv.Itoa(i), MandatoryBufferMinutes: i * 5})
		require.NoError(t, err)
	}

	venues, err := svc.ListVenues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 3)
	assert.Equal(t, "Vara 2", venues[2].Name)
	assert.Equal(t, 10, venues[2].MandatoryBufferMinutes)

	got, err := svc.GetVenue(ctx, venues[1].ID)
	require.NoError(t, err)
	assert.Equal(t, venues[1], got)

	_, err = svc.GetVenue(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, schedule.ErrVenueNotFound)

	_, err = svc.GetVenue(ctx, uuid.NewString())
	assert.ErrorIs(t, err, schedule.ErrVenueNotFound)
}

func TestServiceDelete(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	v, err := svc.Create(ctx, CreateRequest{Name: "Vara"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, v.ID))
	assert.ErrorIs(t, svc.Delete(ctx, v.ID), ErrNotFound)
}

func TestServiceListPaginatesButVenueSourceDoesNot(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	for i := range 25 {
		_, err := svc.Create(ctx, CreateRequest{Name: "Vara " + strconv.Itoa(i)})
		require.NoError(t, err)
	}

	page, total, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, page, request.DefaultPageSize)
	assert.Equal(t, 25, total)

	page, total, err = svc.List(ctx, Filter{Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, page, 5)
	assert.Equal(t, 25, total)

	all, err := svc.ListVenues(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 25)
}
