package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "crunchsetup", "config.yaml")
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
	return path
}

func TestLoad_Defaults(t *testing.T) {
	useTempConfig(t)
	require.NoError(t, Init())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bash", cfg.Shell)
	assert.Equal(t, "sudo", cfg.Sudo)
	assert.Equal(t, "10.0.0.2", cfg.Network.RobotIP)
	assert.Equal(t, "10.0.0.1", cfg.Network.BaseIP)
	assert.Equal(t, "robot", cfg.Network.RobotHostname)
	assert.Equal(t, "base", cfg.Network.BaseHostname)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, ".bashrc", filepath.Base(cfg.ProfilePath))
}

func TestLoad_FileOverrides(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`
resources_dir: /srv/crunch/resources
network:
  robot_hostname: crunchbot
history:
  enabled: false
`), 0644))

	require.NoError(t, Init())
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/crunch/resources", cfg.ResourcesDir)
	assert.Equal(t, "crunchbot", cfg.Network.RobotHostname)
	assert.Equal(t, "10.0.0.2", cfg.Network.RobotIP)
	assert.False(t, cfg.History.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	useTempConfig(t)
	t.Setenv("CRUNCHSETUP_SHELL", "/bin/bash")
	t.Setenv("CRUNCHSETUP_NETWORK_BASE_IP", "172.16.0.1")

	require.NoError(t, Init())
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/bin/bash", cfg.Shell)
	assert.Equal(t, "172.16.0.1", cfg.Network.BaseIP)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("shell: [unterminated"), 0644))

	assert.Error(t, Init())
}

func TestWriteDefault(t *testing.T) {
	path := useTempConfig(t)
	assert.False(t, Exists())

	written, err := WriteDefault()
	require.NoError(t, err)
	assert.Equal(t, path, written)
	assert.True(t, Exists())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "bash", raw["shell"])
	assert.Contains(t, raw, "network")
}

func TestHistoryPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "crunchsetup", "history.log"), path)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".bashrc"), expandHome("~/.bashrc"))
	assert.Equal(t, "/etc/profile", expandHome("/etc/profile"))
}
