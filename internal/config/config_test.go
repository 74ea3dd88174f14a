package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/hearings")
	t.Setenv("JWT_SECRET", "secret")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, schedule.DefaultMaxRangeDays, cfg.ScheduleMaxRangeDays)
	assert.Equal(t, schedule.DefaultWindows, cfg.ScheduleDefaultWindows)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 12*time.Hour, cfg.JWTTokenTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("SCHEDULE_MAX_RANGE_DAYS", "31")
	t.Setenv("SCHEDULE_DEFAULT_WINDOWS", "09:00-12:00")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 31, cfg.ScheduleMaxRangeDays)
	assert.Equal(t, []schedule.Window{{Open: schedule.MustClock(9, 0), Close: schedule.MustClock(12, 0)}}, cfg.ScheduleDefaultWindows)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "missing DSN", key: "DB_DSN", val: ""},
		{name: "missing secret", key: "JWT_SECRET", val: ""},
		{name: "non numeric range", key: "SCHEDULE_MAX_RANGE_DAYS", val: "many"},
		{name: "zero range", key: "SCHEDULE_MAX_RANGE_DAYS", val: "0"},
		{name: "bad windows", key: "SCHEDULE_DEFAULT_WINDOWS", val: "18:00-08:00"},
		{name: "bad bool", key: "RUN_MIGRATIONS", val: "maybe"},
		{name: "bad timeout", key: "REQUEST_TIMEOUT", val: "soon"},
		{name: "bad token ttl", key: "JWT_TOKEN_TTL", val: "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			_, err := fromEnv()
			assert.Error(t, err)
		})
	}
}
