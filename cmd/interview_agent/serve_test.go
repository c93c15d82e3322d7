package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("port", 8080, "")
	cmd.Flags().String("library", "", "")
	cmd.Flags().String("api-key", "", "")
	return cmd
}

func TestMergedConfig_FlagsOverrideFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9000, "api_key": "from-file"}`), 0644))

	cmd := newFlagCommand()
	require.NoError(t, cmd.Flags().Set("port", "8081"))
	require.NoError(t, cmd.Flags().Set("api-key", "from-flag"))

	cfg, err := mergedConfig(cmd, path, cliOverrides{port: 8081, apiKey: "from-flag"})
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "from-flag", cfg.APIKey)
}

func TestMergedConfig_FileValuesSurvive(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9000, "api_key": "from-file"}`), 0644))

	cfg, err := mergedConfig(newFlagCommand(), path, cliOverrides{port: 8080})
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "from-file", cfg.APIKey)
}

func TestMergedConfig_EnvFallbackForAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := mergedConfig(newFlagCommand(), "", cliOverrides{port: 8080})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestMergedConfig_DefaultPortWithoutFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := mergedConfig(newFlagCommand(), "", cliOverrides{port: 8080})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestMergedConfig_InvalidFile(t *testing.T) {
	_, err := mergedConfig(newFlagCommand(), filepath.Join(t.TempDir(), "missing.json"), cliOverrides{})
	require.Error(t, err)
}

func TestMergedConfig_ValidationFailure(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"temperature": 9.0}`), 0644))

	_, err := mergedConfig(newFlagCommand(), path, cliOverrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
}
