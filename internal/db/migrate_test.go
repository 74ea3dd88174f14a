package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(migrations, name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), name)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), name)
	}
}

func TestHearingsTableExcludesOverlaps(t *testing.T) {
	body, err := fs.ReadFile(migrations, "migrations/00002_create_hearings.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "EXCLUDE USING gist")
	assert.Contains(t, string(body), "btree_gist")
}
