package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/asamgx/crunchsetup/internal/config"
	"github.com/asamgx/crunchsetup/internal/debug"
	"github.com/asamgx/crunchsetup/internal/exec"
	"github.com/asamgx/crunchsetup/internal/history"
	"github.com/asamgx/crunchsetup/internal/installer"
	"github.com/asamgx/crunchsetup/internal/tui/progress"
	"github.com/asamgx/crunchsetup/internal/wizard"
)

// passwordVerifier checks the administrator password
type passwordVerifier interface {
	Verify(ctx context.Context, password string) (bool, error)
}

// taskRunner executes install steps while showing progress
type taskRunner func(ctx context.Context, title string, tasks []progress.Task) error

// runtime wires config into the installer for one invocation
type runtime struct {
	cfg       *config.Config
	fs        afero.Fs
	resources installer.Resources
	manager   *installer.Manager
	checker   passwordVerifier
	run       taskRunner
	record    func(history.Entry)
	runID     string
	dryRun    bool
}

// newRuntime builds the runner, filesystem and installer from cfg.
// In dry-run mode scripts are printed and file writes stay in memory.
func newRuntime(cfg *config.Config, out io.Writer) *runtime {
	runner := exec.New(cfg.Shell)
	runner.Out = out

	var fs afero.Fs = afero.NewOsFs()
	if dryRun {
		runner.DryRun = true
		fs = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(fs), afero.NewMemMapFs())
	}

	res := installer.Resources{Dir: cfg.ResourcesDir}
	rt := &runtime{
		cfg:       cfg,
		fs:        fs,
		resources: res,
		manager:   installer.NewManager(runner, fs, res, cfg.ProfilePath),
		checker:   installer.NewPasswordChecker(runner, cfg.Sudo),
		run:       progressRunner(cfg, out),
		runID:     uuid.NewString(),
		dryRun:    dryRun,
	}
	rt.record = rt.logHistory
	return rt
}

// progressRunner picks the bubbletea view on a terminal and plain lines otherwise
func progressRunner(cfg *config.Config, out io.Writer) taskRunner {
	f, ok := out.(*os.File)
	tty := ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	if tty && cfg.Output.Progress && !quiet && !dryRun {
		return progress.Run
	}
	return func(ctx context.Context, title string, tasks []progress.Task) error {
		if !quiet {
			fmt.Fprintln(out, title)
		}
		return progress.RunPlain(ctx, out, tasks)
	}
}

func (rt *runtime) logHistory(e history.Entry) {
	if !rt.cfg.History.Enabled || rt.dryRun {
		return
	}
	if err := history.Log(e); err != nil {
		debug.LogError("history", err)
		printWarning("failed to write history: %v", err)
	}
}

// actions adapts the runtime to the wizard controller
func (rt *runtime) actions() wizard.Actions {
	return &wizardActions{rt: rt}
}

// install runs the install steps for req and records the outcome
func (rt *runtime) install(ctx context.Context, req installer.Request) error {
	if req.Role == wizard.RoleUnset {
		return installer.ErrNoRole
	}
	if rt.dryRun {
		rt.stageLaunchDirs(req.CatkinDir)
	}

	var tasks []progress.Task
	for _, step := range rt.manager.Steps(req) {
		tasks = append(tasks, progress.Task{
			Name: step.Name,
			Run: func(ctx context.Context, onOutput func(string)) error {
				if err := step.Run(ctx, onOutput); err != nil {
					return fmt.Errorf("%s: %w", step.Name, err)
				}
				return nil
			},
		})
	}

	err := rt.run(ctx, "Installing Project Crunch ("+req.Role.String()+")", tasks)
	rt.record(history.InstallEntry(rt.runID, req.Role.String(), req.CatkinDir, err))
	return err
}

// configureSSH runs the SSH key script and records the outcome
func (rt *runtime) configureSSH(ctx context.Context, req installer.SSHRequest) error {
	tasks := []progress.Task{{
		Name: "Configure SSH keys for " + req.Username + "@" + req.Hostname,
		Run: func(ctx context.Context, onOutput func(string)) error {
			return rt.manager.ConfigureSSH(ctx, req, onOutput)
		},
	}}

	err := rt.run(ctx, "Configuring SSH keys", tasks)
	rt.record(history.SSHKeysEntry(rt.runID, req.Username, req.Hostname, err))
	return err
}

// stageLaunchDirs creates, in the in-memory layer, the package directories
// install.sh would have created so the launch-file copy can be previewed.
func (rt *runtime) stageLaunchDirs(catkinDir string) {
	for _, l := range installer.LaunchFiles {
		dir := filepath.Dir(l.Destination(catkinDir))
		if err := rt.fs.MkdirAll(dir, 0755); err != nil {
			debug.LogError("dry-run mkdir "+dir, err)
		}
	}
}

// wizardActions implements wizard.Actions
type wizardActions struct {
	rt *runtime
}

func (a *wizardActions) VerifyPassword(ctx context.Context, password string) (bool, error) {
	return a.rt.checker.Verify(ctx, password)
}

func (a *wizardActions) Install(ctx context.Context, s wizard.Session) error {
	return a.rt.install(ctx, installer.RequestFromSession(s))
}

func (a *wizardActions) ConfigureSSH(ctx context.Context, s wizard.Session) error {
	return a.rt.configureSSH(ctx, installer.SSHRequestFromSession(s))
}

// warnMissingResources reports bundled files that cannot be found
func warnMissingResources(rt *runtime) []string {
	missing := rt.resources.Missing(rt.fs)
	if len(missing) > 0 {
		printWarning("missing resources in %s: %v", rt.resources.Dir, missing)
	}
	return missing
}
