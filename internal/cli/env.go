package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/asamgx/crunchsetup/internal/config"
	"github.com/asamgx/crunchsetup/internal/installer"
	"github.com/asamgx/crunchsetup/internal/profile"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the workspace paths exported to the shell profile",
	Long: `Print the values the installer exported to the shell profile.

When a variable was exported more than once (for example after
reinstalling), the last definition is the one the shell uses.`,
	RunE: runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

var envVars = []string{
	installer.RobotCatkinVar,
	installer.RobotInstallVar,
	installer.BaseCatkinVar,
}

func runEnv(cmd *cobra.Command, args []string) error {
	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	values, err := profile.Lookup(afero.NewOsFs(), cfg.ProfilePath, envVars...)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.ProfilePath, err)
	}

	printVerbose("Profile: %s", cfg.ProfilePath)
	for _, name := range envVars {
		value, ok := values[name]
		printStyled(fmt.Sprintf("%-26s", name), styleBold)
		if !ok {
			printStyled("(not set)", styleDim)
			fmt.Println()
			continue
		}
		fmt.Println(value)
	}
	return nil
}
