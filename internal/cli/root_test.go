package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Structure(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "strivetrack", root.Use)

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed", "reset-weekly", "prune-sessions"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("env-file"))
	assert.NotNil(t, serveCmd.Flags().Lookup("skip-migrate"))
	assert.Equal(t, "Insert missing achievement and daily challenge catalog rows", seedCmd.Short)
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, loadEnvFile(""))
	require.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STRIVETRACK_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("STRIVETRACK_TEST_VALUE", "")
	os.Unsetenv("STRIVETRACK_TEST_VALUE")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("STRIVETRACK_TEST_VALUE"))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMaintenanceCommands_SQLite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STRIVETRACK_CONFIG", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "cli.db"))
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "error")

	envFile := filepath.Join(dir, "none.env")

	out, err := runCLI(t, "migrate", "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations applied")

	out, err = runCLI(t, "seed", "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Reference data seeded")

	// A second seed leaves existing rows alone.
	_, err = runCLI(t, "seed", "--env-file", envFile)
	require.NoError(t, err)

	out, err = runCLI(t, "reset-weekly", "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Weekly points reset for 0 users")

	out, err = runCLI(t, "prune-sessions", "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 0 expired sessions")
}

func TestMaintenanceCommands_BadDriver(t *testing.T) {
	t.Setenv("STRIVETRACK_CONFIG", "")
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("LOG_LEVEL", "error")

	_, err := runCLI(t, "migrate", "--env-file", "")
	assert.Error(t, err)
}
