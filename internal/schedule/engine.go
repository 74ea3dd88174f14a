package schedule

import (
	"go.uber.org/zap"
)

// DefaultMaxRangeDays bounds free-slot searches when Options.MaxRangeDays is unset.
const DefaultMaxRangeDays = 92

// DefaultWindows are the court working hours used when neither the venue
// nor the query provides any.
var DefaultWindows = []Window{
	{Open: MustClock(8, 0), Close: MustClock(12, 0)},
	{Open: MustClock(13, 0), Close: MustClock(18, 0)},
}

type Options struct {
	DefaultWindows []Window
	MaxRangeDays   int
}

// Engine answers conflict and availability queries. It keeps no data between
// calls: every query reads a fresh snapshot from its sources.
type Engine struct {
	venues         VenueSource
	bookings       BookingSource
	defaultWindows []Window
	maxRangeDays   int
	logger         *zap.Logger
}

func NewEngine(venues VenueSource, bookings BookingSource, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	windows := opts.DefaultWindows
	if len(windows) == 0 {
		windows = DefaultWindows
	}
	maxDays := opts.MaxRangeDays
	if maxDays <= 0 {
		maxDays = DefaultMaxRangeDays
	}
	return &Engine{
		venues:         venues,
		bookings:       bookings,
		defaultWindows: windows,
		maxRangeDays:   maxDays,
		logger:         logger,
	}
}

// MaxRangeDays is the longest date range FindFreeSlots accepts.
func (e *Engine) MaxRangeDays() int {
	return e.maxRangeDays
}
