package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource_ParsesEmbeddedFiles(t *testing.T) {
	found, err := MigrationSource().FindMigrations()
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "0001_init.sql", found[0].Id)
	assert.Equal(t, "0002_recording_metadata.sql", found[1].Id)

	for _, m := range found {
		assert.NotEmpty(t, m.Up, m.Id)
		assert.NotEmpty(t, m.Down, m.Id)
	}
	assert.True(t, strings.Contains(strings.Join(found[1].Up, "\n"), "idx_recordings_owner_sentence"))
}
