// Package prompt renders wizard steps as terminal forms using huh.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/asamgx/crunchsetup/internal/wizard"
)

// ErrNotInteractive is returned for steps the prompter cannot render
var ErrNotInteractive = errors.New("step has no prompt")

// choiceCancel is the select option that backs out of a step
const choiceCancel wizard.Choice = "cancel"

// runFunc runs a built form; replaced in tests
type runFunc func(ctx context.Context, form *huh.Form) error

// Prompter asks wizard questions on the terminal
type Prompter struct {
	theme      *huh.Theme
	accessible bool
	run        runFunc
}

// Option configures a Prompter
type Option func(*Prompter)

// WithAccessible switches huh to its line-based accessible mode
func WithAccessible(on bool) Option {
	return func(p *Prompter) { p.accessible = on }
}

// WithTheme overrides the form theme
func WithTheme(theme *huh.Theme) Option {
	return func(p *Prompter) { p.theme = theme }
}

// New creates a prompter
func New(opts ...Option) *Prompter {
	p := &Prompter{
		theme: huh.ThemeCatppuccin(),
		run: func(ctx context.Context, form *huh.Form) error {
			return form.RunWithContext(ctx)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prompt renders the step and converts the answer into wizard input.
// Ctrl+C on any form is reported as a cancel.
func (p *Prompter) Prompt(ctx context.Context, step wizard.Step, s wizard.Session) (wizard.Input, error) {
	q, err := questionFor(step, s)
	if err != nil {
		return wizard.Input{}, err
	}

	var (
		choice wizard.Choice
		text   string
		field  huh.Field
	)

	switch q.kind {
	case kindSelect:
		if len(q.options) > 0 {
			choice = q.options[0].Value
		}
		field = huh.NewSelect[wizard.Choice]().
			Title(q.title).
			Description(q.description).
			Options(q.options...).
			Value(&choice)

	case kindText, kindPassword:
		input := huh.NewInput().
			Title(q.title).
			Description(q.description).
			Placeholder(q.placeholder).
			Value(&text)
		if q.kind == kindPassword {
			input = input.EchoMode(huh.EchoModePassword)
		}
		field = input

	case kindDirectory:
		field = huh.NewInput().
			Title(q.title).
			Description(q.description).
			Placeholder("/home/you/catkin_ws").
			Value(&text).
			Validate(ValidateDir)
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithAccessible(p.accessible)

	return answer(q, choice, text, p.run(ctx, form))
}

// answer maps a finished form to wizard input
func answer(q question, choice wizard.Choice, text string, err error) (wizard.Input, error) {
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return wizard.Cancel(), nil
		}
		return wizard.Input{}, fmt.Errorf("prompt %q failed: %w", q.title, err)
	}

	switch q.kind {
	case kindSelect:
		if choice == choiceCancel {
			return wizard.Cancel(), nil
		}
		return wizard.Select(choice), nil
	case kindDirectory:
		return wizard.Text(NormalizeDir(text)), nil
	case kindPassword:
		return wizard.Text(text), nil
	default:
		return wizard.Text(strings.TrimSpace(text)), nil
	}
}

// ValidateDir accepts an empty answer or an existing directory
func ValidateDir(path string) error {
	path = NormalizeDir(path)
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist", path)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// NormalizeDir expands ~ and makes the path absolute
func NormalizeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}
