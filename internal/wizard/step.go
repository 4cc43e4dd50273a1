package wizard

// Step identifies a point in the wizard's step graph
type Step int

const (
	StepEntry Step = iota

	// Install path
	StepPassword
	StepVerifyPassword
	StepPasswordIncorrect
	StepRole
	StepInstallDir
	StepCatkinDir
	StepCatkinConfirm
	StepNetworkConfig
	StepCustomBaseIP
	StepCustomRobotIP
	StepInstallNotice
	StepExecuteInstall
	StepInstallDone

	// SSH key path
	StepSSHDisclaimer
	StepSSHUsername
	StepSSHPassword
	StepSSHHostname
	StepExecuteSSH
	StepSSHDone

	StepExit
)

var stepNames = map[Step]string{
	StepEntry:             "entry",
	StepPassword:          "password",
	StepVerifyPassword:    "verify-password",
	StepPasswordIncorrect: "password-incorrect",
	StepRole:              "role",
	StepInstallDir:        "install-dir",
	StepCatkinDir:         "catkin-dir",
	StepCatkinConfirm:     "catkin-confirm",
	StepNetworkConfig:     "network-config",
	StepCustomBaseIP:      "custom-base-ip",
	StepCustomRobotIP:     "custom-robot-ip",
	StepInstallNotice:     "install-notice",
	StepExecuteInstall:    "execute-install",
	StepInstallDone:       "install-done",
	StepSSHDisclaimer:     "ssh-disclaimer",
	StepSSHUsername:       "ssh-username",
	StepSSHPassword:       "ssh-password",
	StepSSHHostname:       "ssh-hostname",
	StepExecuteSSH:        "execute-ssh",
	StepSSHDone:           "ssh-done",
	StepExit:              "exit",
}

// String returns the step's name as used in debug logs
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Automatic reports whether the step is carried out by the controller
// rather than answered by the user.
func (s Step) Automatic() bool {
	switch s {
	case StepVerifyPassword, StepExecuteInstall, StepExecuteSSH:
		return true
	}
	return false
}

// Choice is a selection made at a step that offers fixed options
type Choice string

const (
	ChoiceInstall  Choice = "install"
	ChoiceSSH      Choice = "ssh"
	ChoiceExit     Choice = "exit"
	ChoiceRobot    Choice = "robot"
	ChoiceBase     Choice = "base"
	ChoiceDefault  Choice = "default"
	ChoiceCustom   Choice = "custom"
	ChoiceContinue Choice = "continue"
	ChoiceReselect Choice = "reselect"
	ChoiceOK       Choice = "ok"
)

// Input is the answer to a step: a choice, free text, or the outcome
// of an automatic step.
type Input struct {
	Cancelled bool
	Choice    Choice
	Text      string
	OK        bool
}

// Cancel is the input produced when the user backs out of a prompt
func Cancel() Input { return Input{Cancelled: true} }

// Select is the input for a fixed-option step
func Select(c Choice) Input { return Input{Choice: c} }

// Text is the input for a free-text or directory step
func Text(s string) Input { return Input{Text: s} }

// Outcome is the input for an automatic step
func Outcome(ok bool) Input { return Input{OK: ok} }
