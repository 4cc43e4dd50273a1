package installer

import (
	"context"

	"github.com/asamgx/crunchsetup/internal/exec"
)

// StdinRunner runs a command with text on stdin
type StdinRunner interface {
	RunWithStdin(ctx context.Context, stdin string, name string, args ...string) (exec.Result, error)
}

// PasswordChecker checks an administrator password by running a harmless command through sudo
type PasswordChecker struct {
	runner StdinRunner
	sudo   string
}

// NewPasswordChecker creates a checker that invokes the given sudo binary
func NewPasswordChecker(runner StdinRunner, sudo string) *PasswordChecker {
	if sudo == "" {
		sudo = "sudo"
	}
	return &PasswordChecker{runner: runner, sudo: sudo}
}

// Verify reports whether sudo accepts the password. Any non-zero exit
// means the password is wrong; an error means sudo could not be run.
func (p *PasswordChecker) Verify(ctx context.Context, password string) (bool, error) {
	// -k ignores cached credentials so only the supplied password counts.
	res, err := p.runner.RunWithStdin(context.WithoutCancel(ctx), password+"\n", p.sudo, "-S", "-k", "-p", "", "echo", "testing", "password")
	if err != nil {
		return false, err
	}
	return res.Success(), nil
}
