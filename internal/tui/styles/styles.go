package styles

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette
var (
	CatMauve    = lipgloss.Color("#cba6f7")
	CatRed      = lipgloss.Color("#f38ba8")
	CatPeach    = lipgloss.Color("#fab387")
	CatGreen    = lipgloss.Color("#a6e3a1")
	CatSapphire = lipgloss.Color("#74c7ec")
	CatLavender = lipgloss.Color("#b4befe")
	CatText     = lipgloss.Color("#cdd6f4")
	CatSubtext0 = lipgloss.Color("#a6adc8")
	CatOverlay0 = lipgloss.Color("#6c7086")
	CatSurface1 = lipgloss.Color("#45475a")
)

// Colors - mapped to Catppuccin Mocha
var (
	PrimaryColor = CatMauve    // Purple - active step
	SuccessColor = CatGreen    // Green
	WarningColor = CatPeach    // Peach/Orange
	ErrorColor   = CatRed      // Red
	MutedColor   = CatOverlay0 // Gray
	BorderColor  = CatSurface1 // Border color
	TextColor    = CatText     // Main text
)

var (
	// Title style for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	DimmedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ActiveStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Status indicators
	CheckmarkStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			SetString("✓")

	CrossStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			SetString("✗")

	PendingStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			SetString("○")

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Output tail shown under the running step
	OutputStyle = lipgloss.NewStyle().
			Foreground(CatSubtext0).
			PaddingLeft(4)
)
