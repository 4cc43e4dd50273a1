package wizard

import (
	"context"
	"fmt"

	"github.com/asamgx/crunchsetup/internal/debug"
)

// Prompter renders an interactive step and returns the user's answer.
// A returned error is fatal; a user cancel is reported as Cancel().
type Prompter interface {
	Prompt(ctx context.Context, step Step, s Session) (Input, error)
}

// Actions carries out the automatic steps
type Actions interface {
	// VerifyPassword runs a harmless command through sudo. It returns false for
	// an incorrect password and an error only when sudo cannot run.
	VerifyPassword(ctx context.Context, password string) (bool, error)
	Install(ctx context.Context, s Session) error
	ConfigureSSH(ctx context.Context, s Session) error
}

// Controller drives the step graph until the user exits
type Controller struct {
	prompter Prompter
	actions  Actions
	step     Step
	session  Session
}

// NewController creates a controller positioned at StepEntry
func NewController(prompter Prompter, actions Actions, defaults NetConfig) *Controller {
	return &Controller{
		prompter: prompter,
		actions:  actions,
		step:     StepEntry,
		session:  NewSession(defaults),
	}
}

// Step returns the current step
func (c *Controller) Step() Step {
	return c.step
}

// Session returns a copy of the current session
func (c *Controller) Session() Session {
	return c.session
}

// Run loops until StepExit. Failures of the install or SSH actions abort
// the loop and are returned to the caller.
func (c *Controller) Run(ctx context.Context) error {
	for c.step != StepExit {
		if err := ctx.Err(); err != nil {
			return err
		}

		in, err := c.input(ctx)
		if err != nil {
			return err
		}

		next, session := Transition(c.step, c.session, in)
		debug.Log("wizard: %s -> %s (cancelled=%v)", c.step, next, in.Cancelled)
		c.step, c.session = next, session
	}
	return nil
}

func (c *Controller) input(ctx context.Context) (Input, error) {
	switch c.step {
	case StepVerifyPassword:
		ok, err := c.actions.VerifyPassword(ctx, c.session.Password)
		if err != nil {
			return Input{}, fmt.Errorf("password check failed: %w", err)
		}
		return Outcome(ok), nil

	case StepExecuteInstall:
		if err := c.session.ReadyForInstall(); err != nil {
			return Input{}, err
		}
		if err := c.actions.Install(ctx, c.session); err != nil {
			return Input{}, fmt.Errorf("install failed: %w", err)
		}
		return Outcome(true), nil

	case StepExecuteSSH:
		if err := c.session.ReadyForSSHConfig(); err != nil {
			return Input{}, err
		}
		if err := c.actions.ConfigureSSH(ctx, c.session); err != nil {
			return Input{}, fmt.Errorf("ssh key configuration failed: %w", err)
		}
		return Outcome(true), nil
	}

	return c.prompter.Prompt(ctx, c.step, c.session)
}
