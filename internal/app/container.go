package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hearing-scheduler/internal/api"
	"github.com/nekogravitycat/hearing-scheduler/internal/auth"
	"github.com/nekogravitycat/hearing-scheduler/internal/hearing"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
	"github.com/nekogravitycat/hearing-scheduler/internal/venue"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration

	ScheduleDefaultWindows []schedule.Window
	ScheduleMaxRangeDays   int

	RateLimitPerMinute int
	RateLimitBurst     int
	RequestTimeout     time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Engine     *schedule.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Venue Module
	venueRepo := venue.NewPgxRepository(cfg.DBPool)
	venueService := venue.NewService(venueRepo, logger.Named("venue"))

	// Scheduling engine reads venues through the service and bookings straight from storage
	hearingRepo := hearing.NewPgxRepository(cfg.DBPool)
	engine := schedule.NewEngine(venueService, hearingRepo, schedule.Options{
		DefaultWindows: cfg.ScheduleDefaultWindows,
		MaxRangeDays:   cfg.ScheduleMaxRangeDays,
	}, logger.Named("schedule"))

	// Hearing Module
	hearingService := hearing.NewService(hearingRepo, engine, logger.Named("hearing"))

	// API Router Config
	routerParams := api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Logger:             logger.Named("http"),
		VenueService:       venueService,
		HearingService:     hearingService,
		Scheduler:          engine,
		JWTManager:         jwtManager,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RateLimitBurst:     cfg.RateLimitBurst,
		RequestTimeout:     cfg.RequestTimeout,
	}
	if cfg.DBPool != nil {
		routerParams.DB = cfg.DBPool
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Engine:     engine,
	}
}
