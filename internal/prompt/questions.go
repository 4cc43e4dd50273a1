package prompt

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/asamgx/crunchsetup/internal/wizard"
)

// kind is how a question is answered
type kind int

const (
	kindSelect kind = iota
	kindText
	kindPassword
	kindDirectory
)

// question describes the prompt shown for one wizard step
type question struct {
	kind        kind
	title       string
	description string
	placeholder string
	options     []huh.Option[wizard.Choice]
}

func okOption() []huh.Option[wizard.Choice] {
	return []huh.Option[wizard.Choice]{huh.NewOption("OK", wizard.ChoiceOK)}
}

// questionFor returns the prompt for an interactive step
func questionFor(step wizard.Step, s wizard.Session) (question, error) {
	switch step {
	case wizard.StepEntry:
		return question{
			kind:  kindSelect,
			title: "Project Crunch Installer",
			options: []huh.Option[wizard.Choice]{
				huh.NewOption("Install Project Crunch", wizard.ChoiceInstall),
				huh.NewOption("Configure SSH Keys", wizard.ChoiceSSH),
				huh.NewOption("Exit", wizard.ChoiceExit),
			},
		}, nil

	case wizard.StepPassword:
		return question{
			kind:        kindPassword,
			title:       "Administrative Privileges Needed!",
			description: "Please enter the password for the admin (root) user.",
		}, nil

	case wizard.StepPasswordIncorrect:
		return question{
			kind:        kindSelect,
			title:       "Incorrect Password",
			description: "The password entered was incorrect.\nPlease try again.",
			options:     okOption(),
		}, nil

	case wizard.StepRole:
		return question{
			kind:        kindSelect,
			title:       "Select Computer: Robot or Base",
			description: "Which computer are you installing from?",
			options: []huh.Option[wizard.Choice]{
				huh.NewOption("Robot", wizard.ChoiceRobot),
				huh.NewOption("Base", wizard.ChoiceBase),
			},
		}, nil

	case wizard.StepInstallDir:
		return question{
			kind:        kindDirectory,
			title:       "Install Directory",
			description: "Please choose the existing directory where you wish to install Project Crunch.\nYou will copy the application there once the install finishes.",
		}, nil

	case wizard.StepCatkinDir:
		return question{
			kind:        kindDirectory,
			title:       "Catkin Workspace",
			description: "Please choose the existing directory where you wish to create your catkin workspace.",
		}, nil

	case wizard.StepCatkinConfirm:
		return question{
			kind:        kindSelect,
			title:       "Chosen Catkin Directory",
			description: fmt.Sprintf("The catkin directory you chose is:\n%s", s.CatkinDir),
			options: []huh.Option[wizard.Choice]{
				huh.NewOption("Continue", wizard.ChoiceContinue),
				huh.NewOption("Choose a different directory", wizard.ChoiceReselect),
			},
		}, nil

	case wizard.StepNetworkConfig:
		return question{
			kind:        kindSelect,
			title:       "Configuring IPs",
			description: "Do you have custom IP configurations you would like to enter?",
			options: []huh.Option[wizard.Choice]{
				huh.NewOption("No", wizard.ChoiceDefault),
				huh.NewOption("Yes", wizard.ChoiceCustom),
			},
		}, nil

	case wizard.StepCustomBaseIP:
		return question{
			kind:        kindText,
			title:       "Base Station IP",
			description: "Enter the desired IP for the base station.\nLeave this field blank to use the default.",
			placeholder: s.Defaults.BaseIP,
		}, nil

	case wizard.StepCustomRobotIP:
		return question{
			kind:        kindText,
			title:       "Robot IP",
			description: "Enter the desired IP for the robot.\nLeave this field blank to use the default.",
			placeholder: s.Defaults.RobotIP,
		}, nil

	case wizard.StepInstallNotice:
		return question{
			kind:  kindSelect,
			title: "Installing",
			description: "This process can take up to 20 minutes and cannot be interrupted once it starts.\n" +
				"Select OK to begin.",
			options: okOption(),
		}, nil

	case wizard.StepInstallDone:
		desc := "You have completed the install process!\n\n" +
			"You must restart your computer and configure SSH keys before the application is fully functional."
		if s.Role == wizard.RoleRobot {
			desc = fmt.Sprintf("You have completed the install process! Copy the Project Crunch directory to:\n%s\n\n"+
				"You must restart your computer and configure SSH keys before the application is fully functional.", s.InstallDir)
		}
		return question{
			kind:        kindSelect,
			title:       "Install Complete!",
			description: desc,
			options:     okOption(),
		}, nil

	case wizard.StepSSHDisclaimer:
		return question{
			kind:  kindSelect,
			title: "SSH key configuration",
			description: "The installation must have already been run on both the robot and the base station.\n\n" +
				"Both computers should have been restarted.\n\n" +
				"The two computers must be connected with a crossover ethernet cable, and you will need the " +
				"username and password for the robot, as well as any custom hostname it may have been assigned. " +
				"This must be run from the base station.",
			options: []huh.Option[wizard.Choice]{
				huh.NewOption("OK", wizard.ChoiceOK),
				huh.NewOption("Cancel", choiceCancel),
			},
		}, nil

	case wizard.StepSSHUsername:
		return question{
			kind:        kindText,
			title:       "SSH Key Configuration",
			description: "Please enter the username for the robot. This is the same username that you log into Ubuntu with.",
		}, nil

	case wizard.StepSSHPassword:
		return question{
			kind:        kindPassword,
			title:       "SSH Key Configuration",
			description: "Please enter the password for the robot.",
		}, nil

	case wizard.StepSSHHostname:
		return question{
			kind:        kindText,
			title:       "SSH Key Configuration",
			description: "If you installed with a custom robot hostname, enter it now. Otherwise leave this entry blank.",
			placeholder: s.IPConfigs.RobotHostname,
		}, nil

	case wizard.StepSSHDone:
		return question{
			kind:        kindSelect,
			title:       "SSH Keys Configured",
			description: "The base station can now reach the robot over SSH.",
			options:     okOption(),
		}, nil
	}

	return question{}, fmt.Errorf("%w: %s", ErrNotInteractive, step)
}
