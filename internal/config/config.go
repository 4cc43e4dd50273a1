// Package config loads crunchsetup settings with viper.
//
// Settings come from ~/.config/crunchsetup/config.yaml (or the file given
// with --config), CRUNCHSETUP_* environment variables, and built-in
// defaults, in that order of precedence from last to first.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/asamgx/crunchsetup/internal/profile"
	"github.com/asamgx/crunchsetup/internal/wizard"
)

const (
	appName    = "crunchsetup"
	configName = "config.yaml"
	historyLog = "history.log"
	envPrefix  = "CRUNCHSETUP"
)

// Config holds all crunchsetup settings
type Config struct {
	ResourcesDir string           `yaml:"resources_dir" mapstructure:"resources_dir"`
	Shell        string           `yaml:"shell" mapstructure:"shell"`
	Sudo         string           `yaml:"sudo" mapstructure:"sudo"`
	ProfilePath  string           `yaml:"profile_path" mapstructure:"profile_path"`
	Network      wizard.NetConfig `yaml:"network" mapstructure:"network"`
	History      HistoryConfig    `yaml:"history" mapstructure:"history"`
	Output       OutputConfig     `yaml:"output" mapstructure:"output"`
}

// HistoryConfig controls the operation log
type HistoryConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// OutputConfig controls terminal output
type OutputConfig struct {
	Color    bool `yaml:"color" mapstructure:"color"`
	Progress bool `yaml:"progress" mapstructure:"progress"`
}

var (
	v          *viper.Viper
	configPath string
	cached     *Config
	mu         sync.Mutex
)

// SetConfigPath overrides the config file location
func SetConfigPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	configPath = path
	v = nil
	cached = nil
}

// Dir returns ~/.config/crunchsetup
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	mu.Lock()
	override := configPath
	mu.Unlock()

	if override != "" {
		return override, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName), nil
}

// HistoryPath returns the operation log path
func HistoryPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, historyLog), nil
}

// EnsureDir creates the config directory if needed
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// Exists reports whether the config file is present
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// DefaultResourcesDir returns the resources directory next to the executable
func DefaultResourcesDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "resources"
	}
	return filepath.Join(filepath.Dir(exe), "resources")
}

// Defaults returns the built-in settings
func Defaults() Config {
	profilePath, err := profile.DefaultPath()
	if err != nil {
		profilePath = ".bashrc"
	}
	return Config{
		ResourcesDir: DefaultResourcesDir(),
		Shell:        "bash",
		Sudo:         "sudo",
		ProfilePath:  profilePath,
		Network:      wizard.DefaultNetConfig(),
		History:      HistoryConfig{Enabled: true},
		Output:       OutputConfig{Color: true, Progress: true},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("resources_dir", d.ResourcesDir)
	v.SetDefault("shell", d.Shell)
	v.SetDefault("sudo", d.Sudo)
	v.SetDefault("profile_path", d.ProfilePath)
	v.SetDefault("network.robot_ip", d.Network.RobotIP)
	v.SetDefault("network.base_ip", d.Network.BaseIP)
	v.SetDefault("network.robot_hostname", d.Network.RobotHostname)
	v.SetDefault("network.base_hostname", d.Network.BaseHostname)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("output.progress", d.Output.Progress)
}

// Init sets up viper. A missing config file is not an error.
func Init() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	nv := viper.New()
	setDefaults(nv)
	nv.SetConfigFile(path)
	nv.SetConfigType("yaml")
	nv.SetEnvPrefix(envPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	mu.Lock()
	v = nv
	cached = nil
	mu.Unlock()
	return nil
}

// Load decodes the current settings
func Load() (*Config, error) {
	mu.Lock()
	cur := v
	mu.Unlock()

	if cur == nil {
		if err := Init(); err != nil {
			return nil, err
		}
		mu.Lock()
		cur = v
		mu.Unlock()
	}

	var cfg Config
	if err := cur.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ResourcesDir = expandHome(cfg.ResourcesDir)
	cfg.ProfilePath = expandHome(cfg.ProfilePath)

	mu.Lock()
	cached = &cfg
	mu.Unlock()
	return &cfg, nil
}

// Get returns the loaded settings, loading them on first use
func Get() (*Config, error) {
	mu.Lock()
	cfg := cached
	mu.Unlock()

	if cfg != nil {
		return cfg, nil
	}
	return Load()
}

// WriteDefault writes the built-in settings to the config file
func WriteDefault() (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
