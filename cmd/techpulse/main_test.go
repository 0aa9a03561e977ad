package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"serve", "ingest", "migrate", "seed", "digest"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	assert.NoError(t, migrateCmd.Args(migrateCmd, nil))
	assert.NoError(t, migrateCmd.Args(migrateCmd, []string{"status"}))
	assert.Error(t, migrateCmd.Args(migrateCmd, []string{"drop"}))
	assert.Error(t, migrateCmd.Args(migrateCmd, []string{"up", "down"}))
}
