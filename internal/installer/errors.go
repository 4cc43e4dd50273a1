package installer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRole is returned for an install request without a station role
var ErrNoRole = errors.New("install request has no station role")

// ScriptError reports a bundled script that exited with a non-zero status
type ScriptError struct {
	Script   string
	ExitCode int
	Stderr   string
}

func (e *ScriptError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s exited with status %d", e.Script, e.ExitCode)
	}
	if lines := strings.Split(msg, "\n"); len(lines) > 5 {
		msg = strings.Join(lines[len(lines)-5:], "\n")
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Script, e.ExitCode, msg)
}
