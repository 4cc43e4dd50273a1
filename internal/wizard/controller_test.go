package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers prompts from a fixed list and records the steps it saw
type scriptedPrompter struct {
	answers []Input
	seen    []Step
}

func (p *scriptedPrompter) Prompt(_ context.Context, step Step, _ Session) (Input, error) {
	p.seen = append(p.seen, step)
	if len(p.answers) == 0 {
		return Cancel(), nil
	}
	in := p.answers[0]
	p.answers = p.answers[1:]
	return in, nil
}

type fakeActions struct {
	verifyResults []bool
	verifies      int
	installs      []Session
	sshConfigs    []Session
	installErr    error
	sshErr        error
}

func (a *fakeActions) VerifyPassword(_ context.Context, _ string) (bool, error) {
	ok := true
	if a.verifies < len(a.verifyResults) {
		ok = a.verifyResults[a.verifies]
	}
	a.verifies++
	return ok, nil
}

func (a *fakeActions) Install(_ context.Context, s Session) error {
	a.installs = append(a.installs, s)
	return a.installErr
}

func (a *fakeActions) ConfigureSSH(_ context.Context, s Session) error {
	a.sshConfigs = append(a.sshConfigs, s)
	return a.sshErr
}

func TestController_ExitFromEntry(t *testing.T) {
	p := &scriptedPrompter{answers: []Input{Select(ChoiceExit)}}
	a := &fakeActions{}

	c := NewController(p, a, DefaultNetConfig())
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, StepExit, c.Step())
	assert.Equal(t, []Step{StepEntry}, p.seen)
}

func TestController_CancelNeverRunsScripts(t *testing.T) {
	// Walk into each prompt, cancel, and confirm the next prompt is Entry.
	paths := map[string][]Input{
		"password":     {Select(ChoiceInstall)},
		"role":         {Select(ChoiceInstall), Text("pw")},
		"install dir":  {Select(ChoiceInstall), Text("pw"), Select(ChoiceRobot)},
		"catkin dir":   {Select(ChoiceInstall), Text("pw"), Select(ChoiceBase)},
		"network":      {Select(ChoiceInstall), Text("pw"), Select(ChoiceBase), Text("/ws"), Select(ChoiceContinue)},
		"custom ip":    {Select(ChoiceInstall), Text("pw"), Select(ChoiceBase), Text("/ws"), Select(ChoiceContinue), Select(ChoiceCustom), Text("1.1.1.1")},
		"notice":       {Select(ChoiceInstall), Text("pw"), Select(ChoiceBase), Text("/ws"), Select(ChoiceContinue), Select(ChoiceDefault)},
		"disclaimer":   {Select(ChoiceSSH)},
		"ssh username": {Select(ChoiceSSH), Select(ChoiceOK)},
		"ssh password": {Select(ChoiceSSH), Select(ChoiceOK), Text("crunch")},
		"ssh hostname": {Select(ChoiceSSH), Select(ChoiceOK), Text("crunch"), Text("pw")},
	}

	for name, answers := range paths {
		t.Run(name, func(t *testing.T) {
			answers = append(answers, Cancel(), Select(ChoiceExit))
			p := &scriptedPrompter{answers: answers}
			a := &fakeActions{}

			c := NewController(p, a, DefaultNetConfig())
			require.NoError(t, c.Run(context.Background()))

			require.GreaterOrEqual(t, len(p.seen), 2)
			assert.Equal(t, StepEntry, p.seen[len(p.seen)-1])
			assert.Empty(t, a.installs)
			assert.Empty(t, a.sshConfigs)
		})
	}
}

func TestController_PasswordFailsThreeTimes(t *testing.T) {
	p := &scriptedPrompter{answers: []Input{
		Select(ChoiceInstall),
		Text("a"), Select(ChoiceOK),
		Text("b"), Select(ChoiceOK),
		Text("c"), Select(ChoiceOK),
		Text("d"),
		Cancel(), // at role select
		Select(ChoiceExit),
	}}
	a := &fakeActions{verifyResults: []bool{false, false, false, true}}

	c := NewController(p, a, DefaultNetConfig())
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 4, a.verifies)
	assert.Equal(t, []Step{
		StepEntry,
		StepPassword, StepPasswordIncorrect,
		StepPassword, StepPasswordIncorrect,
		StepPassword, StepPasswordIncorrect,
		StepPassword,
		StepRole,
		StepEntry,
	}, p.seen)
}

func TestController_InstallRuns(t *testing.T) {
	p := &scriptedPrompter{answers: []Input{
		Select(ChoiceInstall), Text("pw"),
		Select(ChoiceRobot), Text("/opt/crunch"), Text("/ws"), Select(ChoiceContinue),
		Select(ChoiceCustom), Text("192.168.1.1"), Text("192.168.1.2"),
		Select(ChoiceOK),
		Select(ChoiceOK), // completion notice
		Select(ChoiceExit),
	}}
	a := &fakeActions{}

	c := NewController(p, a, DefaultNetConfig())
	require.NoError(t, c.Run(context.Background()))

	require.Len(t, a.installs, 1)
	got := a.installs[0]
	assert.Equal(t, "pw", got.Password)
	assert.Equal(t, RoleRobot, got.Role)
	assert.Equal(t, "/opt/crunch", got.InstallDir)
	assert.Equal(t, "/ws", got.CatkinDir)
	assert.Equal(t, "192.168.1.2", got.IPConfigs.RobotIP)
	assert.Equal(t, "192.168.1.1", got.IPConfigs.BaseIP)
	assert.Contains(t, p.seen, StepInstallDone)
}

func TestController_InstallFailureIsFatal(t *testing.T) {
	p := &scriptedPrompter{answers: []Input{
		Select(ChoiceInstall), Text("pw"),
		Select(ChoiceBase), Text("/ws"), Select(ChoiceContinue),
		Select(ChoiceDefault), Select(ChoiceOK),
	}}
	boom := errors.New("exit status 1")
	a := &fakeActions{installErr: boom}

	c := NewController(p, a, DefaultNetConfig())
	err := c.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StepExecuteInstall, c.Step())
}

func TestController_SSHConfig(t *testing.T) {
	p := &scriptedPrompter{answers: []Input{
		Select(ChoiceSSH), Select(ChoiceOK),
		Text("crunch"), Text("robotpw"), Text(""),
		Select(ChoiceOK),
		Select(ChoiceExit),
	}}
	a := &fakeActions{}

	c := NewController(p, a, DefaultNetConfig())
	require.NoError(t, c.Run(context.Background()))

	require.Len(t, a.sshConfigs, 1)
	assert.Equal(t, "crunch", a.sshConfigs[0].RobotUsername)
	assert.Equal(t, "robotpw", a.sshConfigs[0].RobotPassword)
	assert.Equal(t, "robot", a.sshConfigs[0].RobotHostname)
	assert.Zero(t, a.verifies)
}

func TestController_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewController(&scriptedPrompter{}, &fakeActions{}, DefaultNetConfig())
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}
