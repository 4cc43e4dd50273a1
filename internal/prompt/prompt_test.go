package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asamgx/crunchsetup/internal/wizard"
)

var interactiveSteps = []wizard.Step{
	wizard.StepEntry,
	wizard.StepPassword,
	wizard.StepPasswordIncorrect,
	wizard.StepRole,
	wizard.StepInstallDir,
	wizard.StepCatkinDir,
	wizard.StepCatkinConfirm,
	wizard.StepNetworkConfig,
	wizard.StepCustomBaseIP,
	wizard.StepCustomRobotIP,
	wizard.StepInstallNotice,
	wizard.StepInstallDone,
	wizard.StepSSHDisclaimer,
	wizard.StepSSHUsername,
	wizard.StepSSHPassword,
	wizard.StepSSHHostname,
	wizard.StepSSHDone,
}

func TestQuestionFor_InteractiveSteps(t *testing.T) {
	s := wizard.NewSession(wizard.DefaultNetConfig())
	for _, step := range interactiveSteps {
		t.Run(step.String(), func(t *testing.T) {
			q, err := questionFor(step, s)
			require.NoError(t, err)
			assert.NotEmpty(t, q.title)
			if q.kind == kindSelect {
				assert.NotEmpty(t, q.options)
			}
		})
	}
}

func TestQuestionFor_AutomaticSteps(t *testing.T) {
	s := wizard.NewSession(wizard.DefaultNetConfig())
	for _, step := range []wizard.Step{
		wizard.StepVerifyPassword,
		wizard.StepExecuteInstall,
		wizard.StepExecuteSSH,
		wizard.StepExit,
	} {
		_, err := questionFor(step, s)
		assert.ErrorIs(t, err, ErrNotInteractive, step.String())
	}
}

func TestQuestionFor_UsesSession(t *testing.T) {
	s := wizard.NewSession(wizard.DefaultNetConfig())
	s.CatkinDir = "/home/u/catkin_ws"
	s.InstallDir = "/opt/crunch"
	s.Role = wizard.RoleRobot

	q, err := questionFor(wizard.StepCatkinConfirm, s)
	require.NoError(t, err)
	assert.Contains(t, q.description, "/home/u/catkin_ws")

	q, err = questionFor(wizard.StepInstallDone, s)
	require.NoError(t, err)
	assert.Contains(t, q.description, "/opt/crunch")

	s.Role = wizard.RoleBase
	q, err = questionFor(wizard.StepInstallDone, s)
	require.NoError(t, err)
	assert.NotContains(t, q.description, "/opt/crunch")

	q, err = questionFor(wizard.StepCustomBaseIP, s)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", q.placeholder)
}

func TestAnswer(t *testing.T) {
	sel := question{kind: kindSelect, title: "t"}

	in, err := answer(sel, wizard.ChoiceRobot, "", nil)
	require.NoError(t, err)
	assert.Equal(t, wizard.Select(wizard.ChoiceRobot), in)

	in, err = answer(sel, choiceCancel, "", nil)
	require.NoError(t, err)
	assert.True(t, in.Cancelled)

	in, err = answer(question{kind: kindText}, "", "  robot-2 ", nil)
	require.NoError(t, err)
	assert.Equal(t, wizard.Text("robot-2"), in)

	in, err = answer(question{kind: kindPassword}, "", " secret ", nil)
	require.NoError(t, err)
	assert.Equal(t, wizard.Text(" secret "), in)

	in, err = answer(question{kind: kindDirectory}, "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, wizard.Text(""), in)
}

func TestAnswer_Errors(t *testing.T) {
	in, err := answer(question{kind: kindText}, "", "x", huh.ErrUserAborted)
	require.NoError(t, err)
	assert.True(t, in.Cancelled)

	boom := errors.New("no tty")
	_, err = answer(question{kind: kindText, title: "Robot IP"}, "", "", boom)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Robot IP")
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.NoError(t, ValidateDir(""))
	assert.NoError(t, ValidateDir(dir))
	assert.ErrorContains(t, ValidateDir(filepath.Join(dir, "missing")), "does not exist")
	assert.ErrorContains(t, ValidateDir(file), "not a directory")
}

func TestNormalizeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", NormalizeDir("   "))
	assert.Equal(t, filepath.Join(home, "catkin_ws"), NormalizeDir("~/catkin_ws"))
	assert.Equal(t, "/tmp/ws", NormalizeDir(" /tmp/ws/ "))
}

func TestPrompter_Prompt(t *testing.T) {
	s := wizard.NewSession(wizard.DefaultNetConfig())

	t.Run("select defaults to first option", func(t *testing.T) {
		p := New()
		p.run = func(context.Context, *huh.Form) error { return nil }

		in, err := p.Prompt(context.Background(), wizard.StepEntry, s)
		require.NoError(t, err)
		assert.Equal(t, wizard.Select(wizard.ChoiceInstall), in)
	})

	t.Run("abort is a cancel", func(t *testing.T) {
		p := New()
		p.run = func(context.Context, *huh.Form) error { return huh.ErrUserAborted }

		in, err := p.Prompt(context.Background(), wizard.StepSSHUsername, s)
		require.NoError(t, err)
		assert.Equal(t, wizard.Cancel(), in)
	})

	t.Run("automatic step", func(t *testing.T) {
		p := New(WithAccessible(true))
		_, err := p.Prompt(context.Background(), wizard.StepExecuteInstall, s)
		assert.ErrorIs(t, err, ErrNotInteractive)
	})
}
