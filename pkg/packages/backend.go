package packages

import (
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/registry"
	"github.com/arthur-debert/provisio/pkg/types"
)

// Backend builds commands for one package manager and interprets the
// results of its read-only queries.
type Backend interface {
	// Name is the identifier used in configuration
	Name() string

	// UpdateCommand refreshes the package index
	UpdateCommand() types.CommandSpec

	// InstallCommand installs all names in a single invocation
	InstallCommand(names []types.PackageName, mustSucceed bool) types.CommandSpec

	// AuditCommand queries the package index for one name
	AuditCommand(name types.PackageName) types.CommandSpec

	// ClassifyAudit turns an index query result into a verdict.
	// It never returns AuditFailed; that verdict is reserved for queries
	// that could not run at all.
	ClassifyAudit(result *types.CommandResult) types.AuditVerdict

	// StatusCommand queries the package database for one name
	StatusCommand(name types.PackageName) types.CommandSpec

	// ClassifyStatus turns a database query result into a verdict.
	// It never returns VerificationFailed.
	ClassifyStatus(result *types.CommandResult) types.InstalledVerdict
}

var backends = registry.New[Backend]()

func init() {
	registry.MustRegister[Backend](backends, "apt", Apt{})
	registry.MustRegister[Backend](backends, "pacman", Pacman{})
}

// Lookup returns the backend registered under name
func Lookup(name string) (Backend, error) {
	b, err := backends.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrUnknownBackend,
			"unknown package backend %q (known: %v)", name, backends.List())
	}
	return b, nil
}

// Names lists the registered backends
func Names() []string {
	return backends.List()
}
