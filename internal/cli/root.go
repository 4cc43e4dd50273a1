package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/asamgx/crunchsetup/internal/config"
	"github.com/asamgx/crunchsetup/internal/debug"
	"github.com/asamgx/crunchsetup/internal/prompt"
	"github.com/asamgx/crunchsetup/internal/wizard"
	"github.com/asamgx/crunchsetup/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	dryRun     bool
	verbose    bool
	quiet      bool
	noColor    bool
	accessible bool
)

// Catppuccin Mocha color palette
var (
	catMauve    = lipgloss.Color("#cba6f7")
	catRed      = lipgloss.Color("#f38ba8")
	catPeach    = lipgloss.Color("#fab387")
	catGreen    = lipgloss.Color("#a6e3a1")
	catSapphire = lipgloss.Color("#74c7ec")
	catLavender = lipgloss.Color("#b4befe")
	catText     = lipgloss.Color("#cdd6f4")
	catSubtext0 = lipgloss.Color("#a6adc8")
	catOverlay0 = lipgloss.Color("#6c7086")
)

// Lipgloss styles using Catppuccin Mocha palette
var (
	styleSuccess = lipgloss.NewStyle().Foreground(catGreen).Bold(true)    // Green
	styleError   = lipgloss.NewStyle().Foreground(catRed).Bold(true)      // Red
	styleWarning = lipgloss.NewStyle().Foreground(catPeach).Bold(true)    // Peach
	styleBold    = lipgloss.NewStyle().Foreground(catLavender).Bold(true) // Lavender
	styleDim     = lipgloss.NewStyle().Foreground(catOverlay0)            // Overlay 0
	styleInfo    = lipgloss.NewStyle().Foreground(catSapphire)            // Sapphire
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "crunchsetup",
	Short: "Install Project Crunch on a robot or base station",
	Long: `crunchsetup walks you through installing Project Crunch.

Run it without arguments for the interactive wizard. It asks for the
administrator password, whether this computer is the robot or the base
station, where to create the catkin workspace, and the network settings,
then runs the bundled install scripts.

From the base station it can also configure SSH keys so the base can
reach the robot without a password.

For scripted installs use 'crunchsetup install' and 'crunchsetup ssh-keys'.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for version command
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		if cfgFile != "" {
			config.SetConfigPath(cfgFile)
		}

		return config.Init()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard(cmd.Context())
	},
	SilenceUsage: true,
}

// runWizard launches the interactive installer
func runWizard(ctx context.Context) error {
	// Initialize debug logging (only if CRUNCHSETUP_DEBUG=1 or CRUNCHSETUP_DEBUG=true)
	debug.Init()
	defer debug.Close()

	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	debug.Log("runWizard: resources=%s profile=%s dry-run=%v", cfg.ResourcesDir, cfg.ProfilePath, dryRun)

	rt := newRuntime(cfg, os.Stdout)
	warnMissingResources(rt)
	if dryRun {
		printStyled("Dry run: scripts are printed and no files are written\n", styleWarning)
	}

	opts := []prompt.Option{prompt.WithAccessible(accessible)}
	if !colorEnabled(cfg) {
		opts = append(opts, prompt.WithTheme(huh.ThemeBase()))
	}

	ctrl := wizard.NewController(prompt.New(opts...), rt.actions(), cfg.Network)
	if err := ctrl.Run(ctx); err != nil {
		debug.LogError("wizard", err)
		return err
	}

	debug.Log("runWizard: exited at %s", ctrl.Step())
	return nil
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/crunchsetup/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print the scripts that would run without running them or writing files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "detailed output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&accessible, "accessible", false, "use plain line-based prompts")

	rootCmd.SilenceErrors = true
}

// colorEnabled combines the --no-color flag with the output.color setting
func colorEnabled(cfg *config.Config) bool {
	if noColor {
		return false
	}
	return cfg == nil || cfg.Output.Color
}

// printInfo prints an info message (respects quiet flag)
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// printVerbose prints a verbose message (respects verbose flag)
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// printWarning prints a warning message
func printWarning(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
	}
}

// printStyled prints a styled string (respects noColor flag)
func printStyled(text string, style lipgloss.Style) {
	if noColor {
		fmt.Print(text)
	} else {
		fmt.Print(style.Render(text))
	}
}
