package schedule

import (
	"net/http"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/apperror"
)

var (
	ErrInvalidDate      = apperror.New(http.StatusBadRequest, "invalid calendar date")
	ErrInvalidClock     = apperror.New(http.StatusBadRequest, "time of day must be within 00:00 and 23:59")
	ErrInvalidInterval  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrVenueRequired    = apperror.New(http.StatusBadRequest, "venue is required")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "start date must not be after end date")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "duration must be greater than zero and shorter than a day")
	ErrNegativeSpacing  = apperror.New(http.StatusBadRequest, "buffers, grid and minimum gap cannot be negative")
	ErrInvalidGrid      = apperror.New(http.StatusBadRequest, "grid must be shorter than a day")
	ErrInvalidWindow    = apperror.New(http.StatusBadRequest, "working window must open before it closes")
	ErrVenueNotFound    = apperror.New(http.StatusNotFound, "venue not found")
)
