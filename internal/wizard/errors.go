package wizard

import "errors"

// Errors returned when an action is reached with an incomplete session.
var (
	ErrMissingPassword   = errors.New("administrator password has not been verified")
	ErrMissingRole       = errors.New("station role has not been selected")
	ErrMissingCatkinDir  = errors.New("catkin workspace directory is required")
	ErrMissingInstallDir = errors.New("install directory is required on the robot")
	ErrMissingUsername   = errors.New("robot username is required")
	ErrMissingHostname   = errors.New("robot hostname is required")
)
