package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asamgx/crunchsetup/internal/config"
	"github.com/asamgx/crunchsetup/internal/debug"
	"github.com/asamgx/crunchsetup/internal/installer"
)

var sshKeysCmd = &cobra.Command{
	Use:   "ssh-keys",
	Short: "Configure SSH keys from the base station to the robot",
	Long: `Copy the base station's SSH key to the robot.

Both computers must already be installed and restarted, and connected
with a crossover ethernet cable. Run this from the base station.

Examples:
  crunchsetup ssh-keys --username crunch
  echo "$ROBOT_PW" | crunchsetup ssh-keys --username crunch --hostname robot-2 --password-stdin`,
	RunE: runSSHKeys,
}

var (
	sshUsername      string
	sshHostname      string
	sshPasswordStdin bool
)

func init() {
	sshKeysCmd.Flags().StringVarP(&sshUsername, "username", "u", "", "robot login username")
	sshKeysCmd.Flags().StringVar(&sshHostname, "hostname", "", "robot hostname (default from config)")
	sshKeysCmd.Flags().BoolVar(&sshPasswordStdin, "password-stdin", false, "read the robot password from stdin")
	_ = sshKeysCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(sshKeysCmd)
}

// sshRequest builds the request, falling back to the configured robot hostname
func sshRequest(username, hostname, password string, cfg *config.Config) (installer.SSHRequest, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return installer.SSHRequest{}, errors.New("username is required")
	}
	hostname = strings.TrimSpace(hostname)
	if hostname == "" {
		hostname = cfg.Network.RobotHostname
	}
	return installer.SSHRequest{Username: username, Password: password, Hostname: hostname}, nil
}

func runSSHKeys(cmd *cobra.Command, args []string) error {
	debug.Init()
	defer debug.Close()

	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	password, err := readPassword(os.Stdin, sshPasswordStdin, "Robot password")
	if err != nil {
		return err
	}

	req, err := sshRequest(sshUsername, sshHostname, password, cfg)
	if err != nil {
		return err
	}

	rt := newRuntime(cfg, os.Stdout)
	if err := rt.configureSSH(cmd.Context(), req); err != nil {
		return fmt.Errorf("ssh key configuration failed: %w", err)
	}

	printStyled("✓ ", styleSuccess)
	printInfo("SSH keys configured for %s@%s", req.Username, req.Hostname)
	return nil
}
