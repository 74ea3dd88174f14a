package hearing

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

// caseNumberPattern is the CNJ unified numbering: NNNNNNN-DD.AAAA.J.TR.OOOO.
var caseNumberPattern = regexp.MustCompile(`^\d{7}-\d{2}\.\d{4}\.\d\.\d{2}\.\d{4}$`)

// ConflictFinder reports the bookings a candidate interval would overlap.
type ConflictFinder interface {
	FindConflicts(ctx context.Context, q schedule.ConflictQuery) ([]schedule.Booking, error)
}

type CreateRequest struct {
	VenueID         string
	CaseNumber      string
	Date            schedule.Date
	Start           schedule.Clock
	DurationMinutes int
	Type            Type
	Format          Format
	Status          Status
	Notes           string
}

type UpdateRequest struct {
	VenueID         *string
	CaseNumber      *string
	Date            *schedule.Date
	Start           *schedule.Clock
	DurationMinutes *int
	Type            *Type
	Format          *Format
	Status          *Status
	Notes           *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Hearing, error)
	GetByID(ctx context.Context, id string) (*Hearing, error)
	List(ctx context.Context, filter Filter) ([]*Hearing, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Hearing, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	conflicts ConflictFinder
	logger    *zap.Logger
}

func NewService(repo Repository, conflicts ConflictFinder, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, conflicts: conflicts, logger: logger}
}

// validateHearing checks the logical rules for a Hearing and derives its end time.
func validateHearing(h *Hearing) error {
	if h.VenueID == "" {
		return schedule.ErrVenueRequired
	}
	h.CaseNumber = strings.TrimSpace(h.CaseNumber)
	if !caseNumberPattern.MatchString(h.CaseNumber) {
		return ErrInvalidCaseNumber
	}
	if !h.Date.Valid() {
		return schedule.ErrInvalidDate
	}
	if !h.Start.Valid() {
		return schedule.ErrInvalidClock
	}
	if h.DurationMinutes < MinDurationMinutes || h.DurationMinutes > MaxDurationMinutes {
		return ErrInvalidDuration
	}
	end := h.Start + schedule.Clock(h.DurationMinutes)
	if !end.Valid() {
		return ErrPastMidnight
	}
	h.End = end

	if !h.Type.Valid() {
		return ErrInvalidType
	}
	if !h.Format.Valid() {
		return ErrInvalidFormat
	}
	if !h.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// checkConflicts rejects h when it would overlap another blocking hearing.
func (s *service) checkConflicts(ctx context.Context, h *Hearing) error {
	if !h.Status.Blocking() {
		return nil
	}
	found, err := s.conflicts.FindConflicts(ctx, schedule.ConflictQuery{
		Candidate:        h.Interval(),
		ExcludeHearingID: h.ID,
	})
	if err != nil {
		return err
	}
	if len(found) > 0 {
		return &ConflictError{Conflicts: found}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Hearing, error) {
	h := &Hearing{
		VenueID:         req.VenueID,
		CaseNumber:      req.CaseNumber,
		Date:            req.Date,
		Start:           req.Start,
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		Format:          req.Format,
		Status:          req.Status,
		Notes:           req.Notes,
	}
	if h.Type == "" {
		h.Type = TypeOther
	}
	if h.Format == "" {
		h.Format = FormatInPerson
	}
	if h.Status == "" {
		h.Status = StatusScheduled
	}

	if err := validateHearing(h); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, h); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, h); err != nil {
		if errors.Is(err, ErrTimeConflict) {
			s.logger.Warn("concurrent booking rejected by storage",
				zap.String("venue_id", h.VenueID),
				zap.String("date", h.Date.String()),
				zap.String("start", h.Start.String()),
			)
		}
		return nil, err
	}

	s.logger.Info("hearing scheduled",
		zap.String("hearing_id", h.ID),
		zap.String("venue_id", h.VenueID),
		zap.String("date", h.Date.String()),
		zap.String("start", h.Start.String()),
		zap.String("end", h.End.String()),
	)
	return h, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Hearing, error) {
	return s.repo.GetByID(ctx, id)
}

// List always paginates; see request.ClampPage for the defaults.
func (s *service) List(ctx context.Context, filter Filter) ([]*Hearing, int, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, 0, ErrInvalidDateRange
	}
	filter.Page, filter.PageSize = request.ClampPage(filter.Page, filter.PageSize)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Hearing, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasBlocking := h.Status.Blocking()

	// Apply non-nil fields
	moved := false
	if req.VenueID != nil && *req.VenueID != h.VenueID {
		h.VenueID = *req.VenueID
		moved = true
	}
	if req.Date != nil && *req.Date != h.Date {
		h.Date = *req.Date
		moved = true
	}
	if req.Start != nil && *req.Start != h.Start {
		h.Start = *req.Start
		moved = true
	}
	if req.DurationMinutes != nil && *req.DurationMinutes != h.DurationMinutes {
		h.DurationMinutes = *req.DurationMinutes
		moved = true
	}
	if req.CaseNumber != nil {
		h.CaseNumber = *req.CaseNumber
	}
	if req.Type != nil {
		h.Type = *req.Type
	}
	if req.Format != nil {
		h.Format = *req.Format
	}
	if req.Status != nil {
		h.Status = *req.Status
	}
	if req.Notes != nil {
		h.Notes = *req.Notes
	}

	if err := validateHearing(h); err != nil {
		return nil, err
	}

	// Only a change that claims time on the calendar needs a conflict check.
	if moved || (!wasBlocking && h.Status.Blocking()) {
		if err := s.checkConflicts(ctx, h); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("hearing deleted", zap.String("hearing_id", id))
	return nil
}
