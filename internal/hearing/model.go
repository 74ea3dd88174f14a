package hearing

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/apperror"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "hearing not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time slot conflicts with another hearing")
	ErrInvalidCaseNumber = apperror.New(http.StatusBadRequest, "case number must follow the CNJ format NNNNNNN-DD.AAAA.J.TR.OOOO")
	ErrInvalidDuration   = apperror.New(http.StatusBadRequest, "duration must be between 15 and 480 minutes")
	ErrPastMidnight      = apperror.New(http.StatusBadRequest, "hearing must end before midnight")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid hearing status")
	ErrInvalidType       = apperror.New(http.StatusBadRequest, "invalid hearing type")
	ErrInvalidFormat     = apperror.New(http.StatusBadRequest, "invalid hearing format")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "start date must not be after end date")
)

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
)

type Status string

const (
	StatusScheduled   Status = "designada"
	StatusHeld        Status = "realizada"
	StatusPartlyHeld  Status = "parcialmente_realizada"
	StatusCancelled   Status = "cancelada"
	StatusRescheduled Status = "redesignada"
)

// BlockingStatuses are the statuses whose hearings occupy their slot.
var BlockingStatuses = []Status{StatusScheduled, StatusHeld, StatusPartlyHeld}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusHeld, StatusPartlyHeld, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// Blocking reports whether a hearing in status s occupies its slot.
func (s Status) Blocking() bool {
	return s != StatusCancelled && s != StatusRescheduled
}

type Type string

const (
	TypeInstruction         Type = "instrucao_debates_julgamento"
	TypePresentation        Type = "apresentacao"
	TypeJustification       Type = "justificacao"
	TypeConditionalSuspense Type = "suspensao_condicional_processo"
	TypeNonProsecution      Type = "acordo_nao_persecucao_penal"
	TypeJury                Type = "juri"
	TypeOther               Type = "outros"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInstruction, TypePresentation, TypeJustification, TypeConditionalSuspense,
		TypeNonProsecution, TypeJury, TypeOther:
		return true
	}
	return false
}

type Format string

const (
	FormatVirtual  Format = "virtual"
	FormatInPerson Format = "presencial"
	FormatHybrid   Format = "hibrida"
)

func (f Format) Valid() bool {
	return f == FormatVirtual || f == FormatInPerson || f == FormatHybrid
}

type Hearing struct {
	ID              string
	VenueID         string
	VenueName       string
	CaseNumber      string
	Date            schedule.Date
	Start           schedule.Clock
	DurationMinutes int
	End             schedule.Clock // derived from Start and DurationMinutes
	Type            Type
	Format          Format
	Status          Status
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Interval returns the span the hearing occupies.
func (h *Hearing) Interval() schedule.Interval {
	return schedule.Interval{
		VenueID:   h.VenueID,
		Date:      h.Date,
		Start:     h.Start,
		End:       h.End,
		HearingID: h.ID,
	}
}

// Filter defines parameters for listing hearings.
// PageSize 0 returns every match.
type Filter struct {
	VenueID    string
	CaseNumber string
	Status     Status
	DateFrom   *schedule.Date
	DateTo     *schedule.Date
	Page       int
	PageSize   int
}

// ConflictError is returned when a write would overlap existing hearings.
// It unwraps to a 409 AppError that lists the conflicting hearings.
type ConflictError struct {
	Conflicts []schedule.Booking
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = fmt.Sprintf("%s %s-%s", c.CaseNumber, c.Start, c.End)
	}
	return fmt.Sprintf("time slot conflicts with %d hearing(s): %s", len(e.Conflicts), strings.Join(parts, ", "))
}

func (e *ConflictError) Unwrap() error {
	return apperror.Wrap(ErrTimeConflict, http.StatusConflict, e.Error())
}
