package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/asamgx/crunchsetup/internal/config"
	"github.com/asamgx/crunchsetup/internal/exec"
	"github.com/asamgx/crunchsetup/internal/installer"
	"github.com/asamgx/crunchsetup/pkg/version"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate setup and diagnose issues",
	Long: `Check the crunchsetup configuration and environment for potential issues.

Validates:
  - crunchsetup version
  - Config file exists and is valid
  - Bundled scripts and resource files are present
  - Shell profile can be written
  - Required CLI tools are available (bash, sudo, ssh-copy-id) and their versions`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

const (
	categoryConfig    = "Version & Configuration"
	categoryResources = "Resources"
	categoryTools     = "CLI Tools"
)

type checkResult struct {
	category string
	name     string
	ok       bool
	message  string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var results []checkResult

	results = append(results, checkVersion())
	results = append(results, checkConfigFile())

	cfg, err := config.Get()
	if err != nil {
		results = append(results, checkResult{
			category: categoryConfig,
			name:     "Config loading",
			ok:       false,
			message:  fmt.Sprintf("Failed to load config: %v", err),
		})
		printResults(results)
		return nil
	}

	fs := afero.NewOsFs()
	results = append(results, checkResources(fs, installer.Resources{Dir: cfg.ResourcesDir})...)
	results = append(results, checkProfile(fs, cfg.ProfilePath))
	results = append(results, checkCLITools(exec.New(cfg.Shell), cfg)...)

	printResults(results)
	return nil
}

func checkVersion() checkResult {
	return checkResult{
		category: categoryConfig,
		name:     "crunchsetup version",
		ok:       true,
		message:  version.Full(),
	}
}

func checkConfigFile() checkResult {
	path, _ := config.ConfigPath()
	if config.Exists() {
		return checkResult{
			category: categoryConfig,
			name:     "Config file",
			ok:       true,
			message:  fmt.Sprintf("Found at %s", path),
		}
	}
	return checkResult{
		category: categoryConfig,
		name:     "Config file",
		ok:       true, // Defaults apply
		message:  "Not found (optional). Run 'crunchsetup config init' to create one.",
	}
}

func checkResources(fs afero.Fs, res installer.Resources) []checkResult {
	if ok, _ := afero.DirExists(fs, res.Dir); !ok {
		return []checkResult{{
			category: categoryResources,
			name:     "Resources directory",
			ok:       false,
			message:  fmt.Sprintf("Not found at %s. Set resources_dir in the config.", res.Dir),
		}}
	}

	results := []checkResult{{
		category: categoryResources,
		name:     "Resources directory",
		ok:       true,
		message:  res.Dir,
	}}

	missing := res.Missing(fs)
	if len(missing) > 0 {
		results = append(results, checkResult{
			category: categoryResources,
			name:     "Bundled files",
			ok:       false,
			message:  "Missing: " + strings.Join(missing, ", "),
		})
	} else {
		results = append(results, checkResult{
			category: categoryResources,
			name:     "Bundled files",
			ok:       true,
			message:  fmt.Sprintf("All %d present", len(res.All())),
		})
	}
	return results
}

func checkProfile(fs afero.Fs, path string) checkResult {
	if _, err := fs.Stat(path); err == nil {
		return checkResult{
			category: categoryResources,
			name:     "Shell profile",
			ok:       true,
			message:  path,
		}
	} else if !os.IsNotExist(err) {
		return checkResult{
			category: categoryResources,
			name:     "Shell profile",
			ok:       false,
			message:  fmt.Sprintf("Error: %v", err),
		}
	}

	if ok, _ := afero.DirExists(fs, filepath.Dir(path)); !ok {
		return checkResult{
			category: categoryResources,
			name:     "Shell profile",
			ok:       false,
			message:  fmt.Sprintf("Directory for %s does not exist", path),
		}
	}
	return checkResult{
		category: categoryResources,
		name:     "Shell profile",
		ok:       true,
		message:  fmt.Sprintf("%s (will be created)", path),
	}
}

// lineRunner runs a command and returns its stdout lines
type lineRunner interface {
	Exists(name string) bool
	RunLines(name string, args ...string) ([]string, error)
}

type tool struct {
	name        string
	command     string
	versionArgs []string
	required    bool
}

func checkCLITools(r lineRunner, cfg *config.Config) []checkResult {
	var results []checkResult

	tools := []tool{
		{"Shell", cfg.Shell, []string{"--version"}, true},
		{"sudo", cfg.Sudo, []string{"-V"}, true},
		{"ssh-copy-id", "ssh-copy-id", nil, false},
	}

	for _, t := range tools {
		if r.Exists(t.command) {
			results = append(results, checkResult{
				category: categoryTools,
				name:     t.name,
				ok:       true,
				message:  toolVersion(r, t),
			})
			continue
		}

		msg := "Not found"
		if !t.required {
			msg += " (needed for SSH key configuration)"
		}
		results = append(results, checkResult{
			category: categoryTools,
			name:     t.name,
			ok:       !t.required,
			message:  msg,
		})
	}

	return results
}

// toolVersion returns the first line of the tool's version output
func toolVersion(r lineRunner, t tool) string {
	installed := "Installed (" + t.command + ")"
	if len(t.versionArgs) == 0 {
		return installed
	}
	lines, err := r.RunLines(t.command, t.versionArgs...)
	if err != nil || len(lines) == 0 {
		return installed
	}
	return strings.TrimSpace(lines[0])
}

func printResults(results []checkResult) {
	const tableWidth = 80

	// Header box
	headerBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(catOverlay0).
		Padding(0, 2).
		Width(tableWidth).
		Align(lipgloss.Center).
		Foreground(catLavender).
		Bold(true)

	fmt.Println()
	fmt.Println(headerBox.Render("crunchsetup Environment Diagnostics"))
	fmt.Println()

	var allRows []string

	for _, category := range []string{categoryConfig, categoryResources, categoryTools} {
		var rows []string
		for _, r := range results {
			if r.category == category {
				rows = append(rows, renderCheck(r, tableWidth))
			}
		}
		if len(rows) == 0 {
			continue
		}

		categoryHeader := lipgloss.NewStyle().
			Foreground(catMauve).
			Bold(true).
			Padding(0, 1).
			Render("◆ " + category)

		separator := lipgloss.NewStyle().
			Foreground(catOverlay0).
			Render(strings.Repeat("─", tableWidth-4))

		allRows = append(allRows, categoryHeader, separator)
		allRows = append(allRows, rows...)
		allRows = append(allRows, "")
	}

	contentBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(catOverlay0).
		Padding(1, 2).
		Width(tableWidth)

	fmt.Println(contentBox.Render(strings.Join(allRows, "\n")))
	fmt.Println()

	failures := countFailures(results)

	summaryBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Width(tableWidth).
		Align(lipgloss.Center)

	var summaryContent string
	if failures == 0 {
		summaryContent = styleSuccess.Render("✓ All checks passed! Ready to install.")
		summaryBox = summaryBox.BorderForeground(catGreen)
	} else {
		summaryContent = styleError.Render(fmt.Sprintf("✗ Found %d issue(s) that need attention", failures))
		summaryBox = summaryBox.BorderForeground(catRed)
	}

	fmt.Println(summaryBox.Render(summaryContent))
	fmt.Println()
}

func renderCheck(r checkResult, tableWidth int) string {
	statusIcon, statusColor := "✓", catGreen
	if !r.ok {
		statusIcon, statusColor = "✗", catRed
	}

	status := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Width(3).
		Render(statusIcon)

	name := lipgloss.NewStyle().
		Foreground(catText).
		Bold(true).
		Width(28).
		Render(r.name)

	message := lipgloss.NewStyle().
		Foreground(catSubtext0).
		Width(tableWidth - 35).
		Render(r.message)

	return lipgloss.JoinHorizontal(lipgloss.Left, status, " ", name, " ", message)
}

func countFailures(results []checkResult) int {
	var failures int
	for _, r := range results {
		if !r.ok {
			failures++
		}
	}
	return failures
}
