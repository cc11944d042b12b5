package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/agentx-labs/plugx/internal/logging"
	"github.com/sirupsen/logrus"
)

// Installer installs the dependency specifiers declared by one extension.
type Installer interface {
	Install(ctx context.Context, deps []string) error
}

// New returns a Command for the given shell-style command lines, or Noop
// when installCmd is empty.
func New(installCmd, listCmd string, log logrus.FieldLogger) Installer {
	install := strings.Fields(installCmd)
	if len(install) == 0 {
		return Noop{}
	}
	return &Command{
		InstallArgs: install,
		ListArgs:    strings.Fields(listCmd),
		Log:         log,
	}
}

// Noop accepts every request without doing anything.
type Noop struct{}

func (Noop) Install(context.Context, []string) error { return nil }

// Command runs an external package manager.
type Command struct {
	// InstallArgs is the install command; the planned specifiers are
	// appended as arguments.
	InstallArgs []string

	// ListArgs prints the installed packages. Empty means no inventory is
	// taken and every requirement is passed to the install command.
	ListArgs []string

	// Dir is the working directory for both commands.
	Dir string

	// Stdout and Stderr receive the install command's output; they default
	// to os.Stderr so command output never mixes with CLI output.
	Stdout io.Writer
	Stderr io.Writer

	Log logrus.FieldLogger
}

// Install parses deps, plans the batch against the inventory and runs the
// install command once. Unparseable specifiers are reported in the returned
// error but do not stop the valid ones from being installed.
func (c *Command) Install(ctx context.Context, deps []string) error {
	log := logging.OrDiscard(c.Log)

	var errs []error
	reqs := make([]Requirement, 0, len(deps))
	for _, d := range deps {
		r, err := ParseRequirement(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reqs = append(reqs, r)
	}
	if len(reqs) == 0 {
		return errors.Join(errs...)
	}

	installed := map[string]string{}
	if len(c.ListArgs) > 0 {
		out, err := c.output(ctx, c.ListArgs)
		if err != nil {
			log.WithError(err).Warn("listing installed packages failed, installing every requirement")
		} else {
			installed = ParseInventory(out)
		}
	}

	batch := Plan(reqs, installed)
	if len(batch) == 0 {
		log.WithField("requirements", len(reqs)).Debug("all requirements satisfied")
		return errors.Join(errs...)
	}

	args := append([]string(nil), c.InstallArgs...)
	for _, r := range batch {
		args = append(args, r.Raw)
	}
	log.WithField("packages", names(batch)).Info("installing requirements")
	if err := c.run(ctx, args); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Command) output(ctx context.Context, argv []string) (string, error) {
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return "", fmt.Errorf("list command %q: %w", argv[0], err)
	}
	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %w: %s", strings.Join(argv, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func (c *Command) run(ctx context.Context, argv []string) error {
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("install command %q: %w", argv[0], err)
	}
	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Dir = c.Dir

	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stderr
	}
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("install command exited with code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("running install command: %w", err)
	}
	return nil
}
