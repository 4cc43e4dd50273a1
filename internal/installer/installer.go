package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/asamgx/crunchsetup/internal/debug"
	"github.com/asamgx/crunchsetup/internal/exec"
	"github.com/asamgx/crunchsetup/internal/profile"
	"github.com/asamgx/crunchsetup/internal/wizard"
)

// Environment variables exported to the shell profile
const (
	RobotCatkinVar  = "ROBOT_CATKIN_PATH"
	RobotInstallVar = "ROBOT_PROJECT_CRUNCH_PATH"
	BaseCatkinVar   = "BASE_CATKIN_PATH"
)

// ScriptRunner runs a bundled script and waits for it to exit
type ScriptRunner interface {
	RunScript(ctx context.Context, script string, args []string) (exec.Result, error)
	RunScriptWithOutput(ctx context.Context, script string, args []string, onLine func(line string)) (exec.Result, error)
}

// Request is everything the install action needs
type Request struct {
	Password   string
	Role       wizard.Role
	InstallDir string
	CatkinDir  string
	Net        wizard.NetConfig
}

// RequestFromSession builds an install request from a finished wizard session
func RequestFromSession(s wizard.Session) Request {
	return Request{
		Password:   s.Password,
		Role:       s.Role,
		InstallDir: s.InstallDir,
		CatkinDir:  s.CatkinDir,
		Net:        s.IPConfigs,
	}
}

// SSHRequest is everything the SSH key action needs
type SSHRequest struct {
	Username string
	Password string
	Hostname string
}

// SSHRequestFromSession builds an SSH request from a finished wizard session
func SSHRequestFromSession(s wizard.Session) SSHRequest {
	return SSHRequest{
		Username: s.RobotUsername,
		Password: s.RobotPassword,
		Hostname: s.RobotHostname,
	}
}

// Step is one unit of the install action
type Step struct {
	Name string
	Run  func(ctx context.Context, onOutput func(line string)) error
}

// Manager carries out the install and SSH key actions
type Manager struct {
	runner    ScriptRunner
	fs        afero.Fs
	resources Resources
	profile   *profile.Writer
}

// NewManager creates a manager. Profile exports go to profilePath and
// launch files are copied through fs.
func NewManager(runner ScriptRunner, fs afero.Fs, resources Resources, profilePath string) *Manager {
	return &Manager{
		runner:    runner,
		fs:        fs,
		resources: resources,
		profile:   profile.NewWriter(fs, profilePath),
	}
}

// Exports returns the profile lines written for the request's role
func Exports(req Request) []profile.Export {
	if req.Role.IsBase() {
		return []profile.Export{
			{Name: BaseCatkinVar, Value: req.CatkinDir},
		}
	}
	return []profile.Export{
		{Name: RobotCatkinVar, Value: req.CatkinDir},
		{Name: RobotInstallVar, Value: req.InstallDir},
	}
}

// InstallArgs returns the arguments for install.sh
func InstallArgs(req Request, res Resources) []string {
	return []string{
		"-c", req.CatkinDir,
		"-p", req.Password,
		"--is_base", req.Role.Flag(),
		"--openhmdrules", res.Path(OpenHMDRules),
		"--viveconf", res.Path(ViveConf),
	}
}

// NetworkArgs returns the arguments for configure_network.sh
func NetworkArgs(req Request) []string {
	return []string{
		"--is_base", req.Role.Flag(),
		"--robot_ip", req.Net.RobotIP,
		"--base_ip", req.Net.BaseIP,
		"--robot_hostname", req.Net.RobotHostname,
		"--base_hostname", req.Net.BaseHostname,
		"--password", req.Password,
	}
}

// SSHArgs returns the arguments for configure_ssh_keys.sh
func SSHArgs(req SSHRequest) []string {
	return []string{
		"--password", req.Password,
		"--username", req.Username,
		"--hostname", req.Hostname,
	}
}

// Steps returns the install action as an ordered list of steps
func (m *Manager) Steps(req Request) []Step {
	return []Step{
		{
			Name: "Export workspace paths",
			Run: func(ctx context.Context, _ func(string)) error {
				return m.profile.Append(Exports(req)...)
			},
		},
		{
			Name: "Install packages and workspace",
			Run: func(ctx context.Context, onOutput func(string)) error {
				return m.runScript(ctx, InstallScript, InstallArgs(req, m.resources), onOutput)
			},
		},
		{
			Name: "Copy launch files",
			Run: func(ctx context.Context, _ func(string)) error {
				_, err := m.CopyLaunchFiles(req.CatkinDir)
				return err
			},
		},
		{
			Name: "Configure network",
			Run: func(ctx context.Context, onOutput func(string)) error {
				return m.runScript(ctx, NetworkScript, NetworkArgs(req), onOutput)
			},
		},
	}
}

// Install runs every install step in order and stops at the first failure.
// Steps that already completed are not undone.
func (m *Manager) Install(ctx context.Context, req Request, onOutput func(line string)) error {
	if req.Role == wizard.RoleUnset {
		return ErrNoRole
	}
	for _, step := range m.Steps(req) {
		debug.Log("install: %s", step.Name)
		if err := step.Run(ctx, onOutput); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}

// ConfigureSSH runs the SSH key provisioning script
func (m *Manager) ConfigureSSH(ctx context.Context, req SSHRequest, onOutput func(line string)) error {
	return m.runScript(ctx, SSHScript, SSHArgs(req), onOutput)
}

// CopyLaunchFiles copies the bundled launch files into the workspace.
// Files already present at the destination are left untouched.
func (m *Manager) CopyLaunchFiles(catkinDir string) ([]string, error) {
	var copied []string
	for _, l := range LaunchFiles {
		dest := l.Destination(catkinDir)

		exists, err := afero.Exists(m.fs, dest)
		if err != nil {
			return copied, fmt.Errorf("failed to check %s: %w", dest, err)
		}
		if exists {
			debug.Log("install: %s exists, skipping", dest)
			continue
		}

		if err := m.copyFile(m.resources.Path(l.Name), dest); err != nil {
			return copied, err
		}
		copied = append(copied, dest)
	}
	return copied, nil
}

func (m *Manager) copyFile(src, dest string) error {
	data, err := afero.ReadFile(m.fs, src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(src), err)
	}

	// The destination directory is created by install.sh; a missing one is an error.
	f, err := m.fs.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// runScript waits for the script even if ctx is cancelled; a half-run
// install.sh leaves the system in an unknown state.
func (m *Manager) runScript(ctx context.Context, name string, args []string, onOutput func(string)) error {
	ctx = context.WithoutCancel(ctx)
	path := m.resources.Path(name)

	var (
		res exec.Result
		err error
	)
	if onOutput == nil {
		res, err = m.runner.RunScript(ctx, path, args)
	} else {
		res, err = m.runner.RunScriptWithOutput(ctx, path, args, onOutput)
	}
	if err != nil {
		return err
	}
	if !res.Success() {
		return &ScriptError{Script: name, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}
