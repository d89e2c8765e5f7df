// Package privilege decides whether the process may mutate system state.
//
// The check is a heuristic, not a security boundary: a container marker file
// or a sandbox environment variable exempts the process, otherwise the
// effective user must be root.
package privilege

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/executor"
	"github.com/arthur-debert/provisio/pkg/filesystem"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/arthur-debert/provisio/pkg/types"
)

// DefaultMarkers are files whose presence means we run inside a container
var DefaultMarkers = []string{"/.dockerenv", "/run/.containerenv"}

// DefaultEnvMarkers are environment variables that, when non-empty, mean we
// run inside an isolated environment. systemd-nspawn, podman and lxc set
// "container".
var DefaultEnvMarkers = []string{"container", "PROVISIO_SANDBOX"}

// Reason explains a privilege decision
type Reason string

const (
	ReasonContainer Reason = "container-marker"
	ReasonSandbox   Reason = "sandbox-environment"
	ReasonRoot      Reason = "effective-uid-root"
	ReasonNotRoot   Reason = "effective-uid-not-root"
)

// Decision is the outcome of a privilege check
type Decision struct {
	Privileged bool
	Reason     Reason
	// Evidence names the marker or uid that decided the outcome
	Evidence string
}

// Options configures a Checker. Zero values fall back to the real system.
type Options struct {
	FS         types.FS
	Runner     executor.Runner
	Markers    []string
	EnvMarkers []string
	Getenv     func(string) string
	// Geteuid returns -1 when the platform has no such primitive
	Geteuid func() int
}

// Checker performs the privilege check. It never mutates state.
type Checker struct {
	fs         types.FS
	runner     executor.Runner
	markers    []string
	envMarkers []string
	getenv     func(string) string
	geteuid    func() int
}

// New creates a Checker
func New(opts Options) *Checker {
	c := &Checker{
		fs:         opts.FS,
		runner:     opts.Runner,
		markers:    opts.Markers,
		envMarkers: opts.EnvMarkers,
		getenv:     opts.Getenv,
		geteuid:    opts.Geteuid,
	}
	if c.fs == nil {
		c.fs = filesystem.NewOS()
	}
	if c.runner == nil {
		c.runner = executor.New(executor.Options{})
	}
	if c.markers == nil {
		c.markers = DefaultMarkers
	}
	if c.envMarkers == nil {
		c.envMarkers = DefaultEnvMarkers
	}
	if c.getenv == nil {
		c.getenv = os.Getenv
	}
	if c.geteuid == nil {
		c.geteuid = geteuid
	}
	return c
}

// HasRequiredPrivilege reports whether the process may provision the system.
// Not being privileged is a normal false result; only a broken environment
// (for example a missing id command on the fallback path) is an error.
func (c *Checker) HasRequiredPrivilege() (bool, error) {
	d, err := c.Check()
	if err != nil {
		return false, err
	}
	return d.Privileged, nil
}

// Check runs the exemption and identity checks in order
func (c *Checker) Check() (Decision, error) {
	logger := logging.GetLogger("privilege")

	for _, marker := range c.markers {
		if _, err := c.fs.Stat(marker); err == nil {
			logger.Debug().Str("marker", marker).Msg("Container marker present, privilege check exempt")
			return Decision{Privileged: true, Reason: ReasonContainer, Evidence: marker}, nil
		}
	}

	for _, name := range c.envMarkers {
		if value := c.getenv(name); value != "" {
			logger.Debug().Str("env", name).Str("value", value).Msg("Sandbox environment detected, privilege check exempt")
			return Decision{Privileged: true, Reason: ReasonSandbox, Evidence: name + "=" + value}, nil
		}
	}

	uid := c.geteuid()
	if uid < 0 {
		logger.Debug().Msg("No effective uid primitive, asking id -u")
		var err error
		uid, err = c.queryUID()
		if err != nil {
			return Decision{}, err
		}
	}

	d := Decision{Privileged: uid == 0, Reason: ReasonNotRoot, Evidence: fmt.Sprintf("uid=%d", uid)}
	if d.Privileged {
		d.Reason = ReasonRoot
	}
	logger.Debug().Int("uid", uid).Bool("privileged", d.Privileged).Msg("Effective uid checked")
	return d, nil
}

func (c *Checker) queryUID() (int, error) {
	spec := types.Query("id", "-u")
	result, err := c.runner.Execute(spec)
	if err != nil {
		return -1, errors.Wrap(err, errors.ErrPermission, "cannot determine effective user")
	}
	if !result.Succeeded() {
		return -1, errors.Newf(errors.ErrPermission, "id -u exited with status %d", result.ExitStatus).
			WithDetail(errors.DetailStderr, result.Stderr)
	}

	uid, err := strconv.Atoi(strings.TrimSpace(result.Stdout))
	if err != nil {
		return -1, errors.Wrapf(err, errors.ErrPermission, "unexpected id -u output %q", strings.TrimSpace(result.Stdout))
	}
	return uid, nil
}
