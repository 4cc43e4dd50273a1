package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/asamgx/crunchsetup/internal/config"
	"github.com/asamgx/crunchsetup/internal/debug"
	"github.com/asamgx/crunchsetup/internal/installer"
	"github.com/asamgx/crunchsetup/internal/prompt"
	"github.com/asamgx/crunchsetup/internal/wizard"
)

// ErrIncorrectPassword is returned when sudo rejects the supplied password
var ErrIncorrectPassword = errors.New("incorrect administrator password")

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install Project Crunch without the wizard",
	Long: `Run the install action directly from flags.

The administrator password is read from the first line of stdin with
--password-stdin, otherwise it is prompted for.

Examples:
  crunchsetup install --role base --workspace ~/catkin_ws
  echo "$PW" | crunchsetup install --role robot --install-dir /opt/crunch \
      --workspace ~/catkin_ws --robot-ip 10.1.0.2 --password-stdin`,
	RunE: runInstall,
}

// installFlags holds the install command's flag values
type installFlags struct {
	role          string
	installDir    string
	workspace     string
	robotIP       string
	baseIP        string
	robotHostname string
	baseHostname  string
	passwordStdin bool
}

var installOpts installFlags

func init() {
	f := installCmd.Flags()
	f.StringVar(&installOpts.role, "role", "", "station role: robot or base")
	f.StringVar(&installOpts.installDir, "install-dir", "", "existing directory the application is copied to (robot only)")
	f.StringVarP(&installOpts.workspace, "workspace", "w", "", "existing directory for the catkin workspace")
	f.StringVar(&installOpts.robotIP, "robot-ip", "", "robot IP address (default from config)")
	f.StringVar(&installOpts.baseIP, "base-ip", "", "base station IP address (default from config)")
	f.StringVar(&installOpts.robotHostname, "robot-hostname", "", "robot hostname (default from config)")
	f.StringVar(&installOpts.baseHostname, "base-hostname", "", "base station hostname (default from config)")
	f.BoolVar(&installOpts.passwordStdin, "password-stdin", false, "read the administrator password from stdin")
	_ = installCmd.MarkFlagRequired("role")
	_ = installCmd.MarkFlagRequired("workspace")

	rootCmd.AddCommand(installCmd)
}

// session converts the flags into a wizard session ready for the install action
func (f installFlags) session(defaults wizard.NetConfig, password string) (wizard.Session, error) {
	role, ok := wizard.ParseRole(f.role)
	if !ok {
		return wizard.Session{}, fmt.Errorf("invalid role %q: must be robot or base", f.role)
	}

	s := wizard.NewSession(defaults)
	s.Password = password
	s.Role = role
	s.CatkinDir = prompt.NormalizeDir(f.workspace)
	if role == wizard.RoleRobot {
		s.InstallDir = prompt.NormalizeDir(f.installDir)
	}

	overrides := wizard.NetConfig{
		RobotIP:       f.robotIP,
		BaseIP:        f.baseIP,
		RobotHostname: f.robotHostname,
		BaseHostname:  f.baseHostname,
	}
	s.UseDefaultNetConfig = overrides == wizard.NetConfig{}
	s.IPConfigs = mergeNetConfig(defaults, overrides)

	for _, dir := range []string{s.CatkinDir, s.InstallDir} {
		if dir == "" {
			continue
		}
		if err := prompt.ValidateDir(dir); err != nil {
			return wizard.Session{}, err
		}
	}

	if err := s.ReadyForInstall(); err != nil {
		return wizard.Session{}, err
	}
	return s, nil
}

// mergeNetConfig applies the non-empty override fields over base
func mergeNetConfig(base, override wizard.NetConfig) wizard.NetConfig {
	if override.RobotIP != "" {
		base.RobotIP = override.RobotIP
	}
	if override.BaseIP != "" {
		base.BaseIP = override.BaseIP
	}
	if override.RobotHostname != "" {
		base.RobotHostname = override.RobotHostname
	}
	if override.BaseHostname != "" {
		base.BaseHostname = override.BaseHostname
	}
	return base
}

func runInstall(cmd *cobra.Command, args []string) error {
	debug.Init()
	defer debug.Close()

	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	password, err := readPassword(os.Stdin, installOpts.passwordStdin, "Administrator password")
	if err != nil {
		return err
	}

	s, err := installOpts.session(cfg.Network, password)
	if err != nil {
		return err
	}

	rt := newRuntime(cfg, os.Stdout)
	if missing := warnMissingResources(rt); len(missing) > 0 && !dryRun {
		return fmt.Errorf("resources directory %s is incomplete", cfg.ResourcesDir)
	}

	if err := checkPassword(cmd.Context(), rt.checker, s.Password); err != nil {
		return err
	}

	printStyled(fmt.Sprintf("Installing Project Crunch on the %s\n", s.Role), styleInfo)
	printVerbose("Catkin workspace: %s", s.CatkinDir)
	printVerbose("Network: %v", s.IPConfigs.Map())

	if err := rt.install(cmd.Context(), installer.RequestFromSession(s)); err != nil {
		return fmt.Errorf("install failed: %w", err)
	}

	printStyled("✓ ", styleSuccess)
	printInfo("Install complete. Restart the computer, then configure SSH keys from the base station.")
	if s.Role == wizard.RoleRobot {
		printInfo("Copy the Project Crunch directory to %s", s.InstallDir)
	}
	return nil
}

// checkPassword verifies the password with sudo once
func checkPassword(ctx context.Context, checker passwordVerifier, password string) error {
	ok, err := checker.Verify(ctx, password)
	if err != nil {
		return fmt.Errorf("password check failed: %w", err)
	}
	if !ok {
		return ErrIncorrectPassword
	}
	return nil
}

// readPassword reads a password from the first line of r, or prompts for it
func readPassword(r io.Reader, fromStdin bool, title string) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return "", errors.New("no password on stdin")
		}
		return line, nil
	}

	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
		),
	).WithAccessible(accessible)
	if err := form.Run(); err != nil {
		return "", err
	}
	return password, nil
}
