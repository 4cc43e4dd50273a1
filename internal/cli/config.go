package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/asamgx/crunchsetup/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage crunchsetup configuration.

Subcommands:
  show   Display current configuration
  path   Show config file path
  init   Write a config file with the default settings

Every setting can also be given as an environment variable, for example
CRUNCHSETUP_RESOURCES_DIR or CRUNCHSETUP_NETWORK_ROBOT_IP.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE:  runConfigInit,
}

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Marshal to YAML for display
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if config.Exists() && !configInitForce {
		printWarning("Config file already exists at %s", path)
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Overwrite existing config?").
					Value(&overwrite),
			),
		).WithAccessible(accessible)
		if err := form.Run(); err != nil {
			return err
		}
		if !overwrite {
			printInfo("Init cancelled")
			return nil
		}
	}

	written, err := config.WriteDefault()
	if err != nil {
		return err
	}

	printInfo("Created config file at %s", written)
	printInfo("Edit resources_dir if the bundled scripts are not next to the executable")
	return nil
}
