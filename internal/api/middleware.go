package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nekogravitycat/hearing-scheduler/internal/auth"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/response"
)

// RequestLogger logs one line per request once the handler chain has finished.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if op := auth.GetOperatorID(c); op != "" {
			fields = append(fields, zap.String("operator_id", op))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// limiterIdleTTL is how long a client may stay silent before its bucket is dropped.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore holds one token bucket per client IP. Buckets idle for longer
// than idle are swept on access, so the map only tracks recent clients.
type limiterStore struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore(every time.Duration, burst int) *limiterStore {
	// A dropped bucket restarts full, so never drop one before it could have refilled.
	idle := max(limiterIdleTTL, every*time.Duration(burst))
	return &limiterStore{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Every(every),
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idle {
		for key, c := range s.clients {
			if now.Sub(c.lastSeen) >= s.idle {
				delete(s.clients, key)
			}
		}
		s.lastSweep = now
	}

	c, ok := s.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// RateLimit allows perMinute requests per client IP with the given burst.
// A non-positive perMinute disables limiting.
func RateLimit(perMinute, burst int, logger *zap.Logger) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}

	store := newLimiterStore(time.Minute/time.Duration(perMinute), burst)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			logger.Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Envelope{
				Success: false,
				Message: "rate limit exceeded, try again later",
			})
			return
		}
		c.Next()
	}
}

// Timeout bounds the request context. Storage calls honour it and surface
// an expired deadline as 504.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
