package wizard

// Transition computes the next step and the updated session for an input.
// It performs no I/O. Cancelling any prompt resets the session and
// returns to StepEntry; cancelling at StepEntry exits.
func Transition(step Step, s Session, in Input) (Step, Session) {
	if in.Cancelled && !step.Automatic() {
		if step == StepEntry || step == StepExit {
			return StepExit, s
		}
		return StepEntry, s.Reset()
	}

	switch step {
	case StepEntry:
		switch in.Choice {
		case ChoiceInstall:
			return StepPassword, s.Reset()
		case ChoiceSSH:
			return StepSSHDisclaimer, s.Reset()
		case ChoiceExit:
			return StepExit, s
		}
		return StepEntry, s

	// Install path

	case StepPassword:
		s.Password = in.Text
		return StepVerifyPassword, s

	case StepVerifyPassword:
		if in.OK {
			return StepRole, s
		}
		s.Password = ""
		return StepPasswordIncorrect, s

	case StepPasswordIncorrect:
		return StepPassword, s

	case StepRole:
		switch in.Choice {
		case ChoiceRobot:
			s.Role = RoleRobot
			return StepInstallDir, s
		case ChoiceBase:
			s.Role = RoleBase
			s.InstallDir = ""
			return StepCatkinDir, s
		}
		return StepRole, s

	case StepInstallDir:
		if in.Text == "" {
			return StepInstallDir, s
		}
		s.InstallDir = in.Text
		return StepCatkinDir, s

	case StepCatkinDir:
		if in.Text == "" {
			return StepCatkinDir, s
		}
		s.CatkinDir = in.Text
		return StepCatkinConfirm, s

	case StepCatkinConfirm:
		if in.Choice == ChoiceReselect {
			return StepCatkinDir, s
		}
		return StepNetworkConfig, s

	case StepNetworkConfig:
		switch in.Choice {
		case ChoiceDefault:
			s.UseDefaultNetConfig = true
			s.IPConfigs = s.Defaults
			return StepInstallNotice, s
		case ChoiceCustom:
			s.UseDefaultNetConfig = false
			return StepCustomBaseIP, s
		}
		return StepNetworkConfig, s

	case StepCustomBaseIP:
		s.pendingBaseIP = in.Text
		return StepCustomRobotIP, s

	case StepCustomRobotIP:
		// Both values are applied together so a cancel above discards them.
		s.IPConfigs = s.Defaults
		if s.pendingBaseIP != "" {
			s.IPConfigs.BaseIP = s.pendingBaseIP
		}
		if in.Text != "" {
			s.IPConfigs.RobotIP = in.Text
		}
		s.pendingBaseIP = ""
		return StepInstallNotice, s

	case StepInstallNotice:
		return StepExecuteInstall, s

	case StepExecuteInstall:
		if in.OK {
			return StepInstallDone, s
		}
		return StepEntry, s.Reset()

	case StepInstallDone:
		return StepEntry, s.Reset()

	// SSH key path

	case StepSSHDisclaimer:
		return StepSSHUsername, s

	case StepSSHUsername:
		if in.Text == "" {
			return StepSSHUsername, s
		}
		s.RobotUsername = in.Text
		return StepSSHPassword, s

	case StepSSHPassword:
		s.RobotPassword = in.Text
		return StepSSHHostname, s

	case StepSSHHostname:
		if in.Text == "" {
			s.RobotHostname = s.IPConfigs.RobotHostname
		} else {
			s.RobotHostname = in.Text
		}
		return StepExecuteSSH, s

	case StepExecuteSSH:
		if in.OK {
			return StepSSHDone, s
		}
		return StepEntry, s.Reset()

	case StepSSHDone:
		return StepEntry, s.Reset()
	}

	return StepExit, s
}
