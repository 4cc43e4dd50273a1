package wizard

import "strings"

// Role identifies which station the installer is running on
type Role int

const (
	RoleUnset Role = iota
	RoleRobot
	RoleBase
)

// String returns the role's display name
func (r Role) String() string {
	switch r {
	case RoleRobot:
		return "robot"
	case RoleBase:
		return "base"
	default:
		return "unset"
	}
}

// IsBase reports whether the current machine is the base station
func (r Role) IsBase() bool {
	return r == RoleBase
}

// Flag returns the single-character role flag passed to the scripts
func (r Role) Flag() string {
	if r == RoleBase {
		return "y"
	}
	return "n"
}

// ParseRole converts "robot" or "base" (any case) into a Role
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "robot":
		return RoleRobot, true
	case "base":
		return RoleBase, true
	}
	return RoleUnset, false
}

// NetConfig holds the addresses and hostnames of both stations
type NetConfig struct {
	RobotIP       string `yaml:"robot_ip" mapstructure:"robot_ip"`
	BaseIP        string `yaml:"base_ip" mapstructure:"base_ip"`
	RobotHostname string `yaml:"robot_hostname" mapstructure:"robot_hostname"`
	BaseHostname  string `yaml:"base_hostname" mapstructure:"base_hostname"`
}

// DefaultNetConfig returns the network settings used when the user keeps the defaults
func DefaultNetConfig() NetConfig {
	return NetConfig{
		RobotIP:       "10.0.0.2",
		BaseIP:        "10.0.0.1",
		RobotHostname: "robot",
		BaseHostname:  "base",
	}
}

// Map renders the config with the key names the network script documents
func (n NetConfig) Map() map[string]string {
	return map[string]string{
		"robot_ip":       n.RobotIP,
		"base_ip":        n.BaseIP,
		"robot_hostname": n.RobotHostname,
		"base_hostname":  n.BaseHostname,
	}
}

// Session holds everything the wizard has collected during one run.
// It is a value type: Transition returns an updated copy.
type Session struct {
	Password   string
	InstallDir string
	CatkinDir  string
	Role       Role

	UseDefaultNetConfig bool
	IPConfigs           NetConfig

	RobotUsername string
	RobotPassword string
	RobotHostname string

	// Defaults is what IPConfigs returns to on a reset
	Defaults NetConfig

	pendingBaseIP string
}

// NewSession creates a session with the given network defaults
func NewSession(defaults NetConfig) Session {
	return Session{
		UseDefaultNetConfig: true,
		IPConfigs:           defaults,
		Defaults:            defaults,
	}
}

// Reset discards everything collected so far, keeping only the defaults
func (s Session) Reset() Session {
	return NewSession(s.Defaults)
}

// ReadyForInstall reports whether every field the install action needs is present
func (s Session) ReadyForInstall() error {
	switch {
	case s.Password == "":
		return ErrMissingPassword
	case s.Role == RoleUnset:
		return ErrMissingRole
	case s.CatkinDir == "":
		return ErrMissingCatkinDir
	case s.Role == RoleRobot && s.InstallDir == "":
		return ErrMissingInstallDir
	}
	return nil
}

// ReadyForSSHConfig reports whether the SSH sub-flow has collected its values
func (s Session) ReadyForSSHConfig() error {
	if s.RobotUsername == "" {
		return ErrMissingUsername
	}
	if s.RobotHostname == "" {
		return ErrMissingHostname
	}
	return nil
}
