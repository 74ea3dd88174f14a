package venue

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

// CreateRequest carries data to create a venue.
type CreateRequest struct {
	Name                   string
	District               string
	Address                string
	Phone                  string
	Email                  string
	Notes                  string
	Windows                []schedule.Window
	SkipWeekends           bool
	MandatoryBufferMinutes int
}

// UpdateRequest carries data for partial updates. Windows replaces the
// current list when non-nil; an empty slice clears it.
type UpdateRequest struct {
	Name                   *string
	District               *string
	Address                *string
	Phone                  *string
	Email                  *string
	Notes                  *string
	Windows                *[]schedule.Window
	SkipWeekends           *bool
	MandatoryBufferMinutes *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter Filter) ([]*Venue, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Venue, error)
	Delete(ctx context.Context, id string) error

	// schedule.VenueSource
	GetVenue(ctx context.Context, id string) (schedule.Venue, error)
	ListVenues(ctx context.Context) ([]schedule.Venue, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, logger: logger}
}

// validateVenue checks the logical rules for a Venue and normalizes its windows.
func validateVenue(v *Venue) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return ErrNameRequired
	}
	if v.MandatoryBufferMinutes < 0 || v.MandatoryBufferMinutes > MaxMandatoryBufferMinutes {
		return ErrInvalidBuffer
	}
	windows, err := schedule.NormalizeWindows(v.Windows)
	if err != nil {
		return err
	}
	v.Windows = windows
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Venue, error) {
	v := &Venue{
		Name:                   req.Name,
		District:               strings.TrimSpace(req.District),
		Address:                req.Address,
		Phone:                  req.Phone,
		Email:                  req.Email,
		Notes:                  req.Notes,
		Windows:                req.Windows,
		SkipWeekends:           req.SkipWeekends,
		MandatoryBufferMinutes: req.MandatoryBufferMinutes,
	}
	if err := validateVenue(v); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	s.logger.Info("venue created", zap.String("venue_id", v.ID), zap.String("name", v.Name))
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Venue, int, error) {
	filter.Page, filter.PageSize = request.ClampPage(filter.Page, filter.PageSize)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Venue, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply non-nil fields
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.District != nil {
		v.District = strings.TrimSpace(*req.District)
	}
	if req.Address != nil {
		v.Address = *req.Address
	}
	if req.Phone != nil {
		v.Phone = *req.Phone
	}
	if req.Email != nil {
		v.Email = *req.Email
	}
	if req.Notes != nil {
		v.Notes = *req.Notes
	}
	if req.Windows != nil {
		v.Windows = *req.Windows
	}
	if req.SkipWeekends != nil {
		v.SkipWeekends = *req.SkipWeekends
	}
	if req.MandatoryBufferMinutes != nil {
		v.MandatoryBufferMinutes = *req.MandatoryBufferMinutes
	}

	if err := validateVenue(v); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("venue deleted", zap.String("venue_id", id))
	return nil
}

// GetVenue resolves a venue for the scheduling engine. Ids that are not
// UUIDs cannot exist and are reported as not found without a query.
func (s *service) GetVenue(ctx context.Context, id string) (schedule.Venue, error) {
	if _, err := uuid.Parse(id); err != nil {
		return schedule.Venue{}, ErrNotFound
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return schedule.Venue{}, err
	}
	return v.ScheduleVenue(), nil
}

// ListVenues returns every venue; free-slot searches span all of them.
func (s *service) ListVenues(ctx context.Context) ([]schedule.Venue, error) {
	venues, _, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	out := make([]schedule.Venue, len(venues))
	for i, v := range venues {
		out[i] = v.ScheduleVenue()
	}
	return out, nil
}
