package installer

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// Bundled resource file names
const (
	InstallScript = "install.sh"
	NetworkScript = "configure_network.sh"
	SSHScript     = "configure_ssh_keys.sh"

	OpenHMDRules = "50-openhmd.rules"
	ViveConf     = "50-Vive.conf"

	SingleCamLaunch = "single-cam.launch"
	DualCamLaunch   = "dual-cam.launch"
	ViveLaunch      = "vive.launch"
)

// LaunchFile is a launch configuration copied into a catkin package
type LaunchFile struct {
	Name    string
	Package string
}

// LaunchFiles lists the launch configurations and the catkin packages that receive them
var LaunchFiles = []LaunchFile{
	{Name: SingleCamLaunch, Package: "video_stream_opencv"},
	{Name: DualCamLaunch, Package: "video_stream_opencv"},
	{Name: ViveLaunch, Package: "rviz_textured_sphere"},
}

// Destination returns where the launch file goes inside a catkin workspace
func (l LaunchFile) Destination(catkinDir string) string {
	return filepath.Join(catkinDir, "src", l.Package, "launch", l.Name)
}

// Resources locates the bundled scripts and data files
type Resources struct {
	Dir string
}

// Path returns the full path of a bundled resource
func (r Resources) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// All returns every resource the installer needs
func (r Resources) All() []string {
	names := []string{InstallScript, NetworkScript, SSHScript, OpenHMDRules, ViveConf}
	for _, l := range LaunchFiles {
		names = append(names, l.Name)
	}
	return names
}

// Missing returns the resources that are not present in Dir
func (r Resources) Missing(fs afero.Fs) []string {
	var missing []string
	for _, name := range r.All() {
		if ok, _ := afero.Exists(fs, r.Path(name)); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
