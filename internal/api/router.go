package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hearing-scheduler/internal/auth"
	"github.com/nekogravitycat/hearing-scheduler/internal/hearing"
	hearingHttp "github.com/nekogravitycat/hearing-scheduler/internal/hearing/http"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/response"
	schedHttp "github.com/nekogravitycat/hearing-scheduler/internal/schedule/http"
	"github.com/nekogravitycat/hearing-scheduler/internal/venue"
	venueHttp "github.com/nekogravitycat/hearing-scheduler/internal/venue/http"
)

// Pinger reports whether a backing store is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds the dependencies and settings needed to build the router.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger

	VenueService   venue.Service
	HearingService hearing.Service
	Scheduler      schedHttp.Scheduler
	JWTManager     *auth.JWTManager
	DB             Pinger

	RateLimitPerMinute int
	RateLimitBurst     int
	RequestTimeout     time.Duration
}

func NewRouter(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", healthz(cfg.DB))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	apiGroup := r.Group("/api")
	apiGroup.Use(RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger))
	apiGroup.Use(Timeout(cfg.RequestTimeout))
	{
		venueHttp.RegisterRoutes(apiGroup, venueHttp.NewHandler(cfg.VenueService), authMiddleware)
		hearingHttp.RegisterRoutes(apiGroup, hearingHttp.NewHandler(cfg.HearingService), authMiddleware)
		schedHttp.RegisterRoutes(apiGroup, schedHttp.NewHandler(cfg.Scheduler))
	}

	return r
}

// splitOrigins turns PROD_ORIGINS ("https://a,https://b") into a list.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				zap.L().Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, response.Envelope{Success: false, Message: "database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, response.Envelope{Success: true, Message: "ok"})
	}
}
