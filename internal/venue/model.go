package venue

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/apperror"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

var (
	// ErrNotFound matches schedule.ErrVenueNotFound so the engine and the
	// handlers report unknown venues the same way.
	ErrNotFound      = schedule.ErrVenueNotFound
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "venue name is required")
	ErrInvalidBuffer = apperror.New(http.StatusBadRequest, "mandatory buffer must be between 0 and 240 minutes")
	ErrInUse         = apperror.New(http.StatusConflict, "venue still has hearings")
	ErrDuplicateName = apperror.New(http.StatusConflict, "a venue with this name already exists in the district")
)

const MaxMandatoryBufferMinutes = 240

// Venue is a judicial venue (vara) and its scheduling settings.
type Venue struct {
	ID       string
	Name     string
	District string // comarca
	Address  string
	Phone    string
	Email    string
	Notes    string

	// Windows are the working periods of a day. Empty means the service default.
	Windows                []schedule.Window
	SkipWeekends           bool
	MandatoryBufferMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleVenue returns the view of v the scheduling engine works with.
func (v *Venue) ScheduleVenue() schedule.Venue {
	return schedule.Venue{
		ID:                     v.ID,
		Name:                   v.Name,
		Windows:                v.Windows,
		SkipWeekends:           v.SkipWeekends,
		MandatoryBufferMinutes: v.MandatoryBufferMinutes,
	}
}

// Filter defines parameters for listing venues.
// PageSize 0 returns every match.
type Filter struct {
	Keyword  string // matches name or district
	District string
	Page     int
	PageSize int
}
