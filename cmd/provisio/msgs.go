package provisio

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Provision a host: audit, install, verify and configure packages"
	MsgRunShort        = "Run the full provisioning pipeline"
	MsgAuditShort      = "Check that packages are available in the package index"
	MsgVerifyShort     = "Check that packages are installed"
	MsgConfigureShort  = "Apply configuration actions"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	// Status messages
	MsgDryRunNotice    = "\nDRY RUN MODE - No changes were made"
	MsgDryRunPrivilege = "Not privileged, continuing because of --dry-run"
	MsgVersionFormat   = "provisio version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrBadFormat    = "invalid --format: %w"
	MsgErrNoPackages   = "no packages given: pass names, set packages.install or use --manifest"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Run read-only queries only; skip installs and file writes"
	MsgFlagConfig   = "Configuration file layered over the system and user files"
	MsgFlagFormat   = "Output format: auto, term, text, json or markdown"
	MsgFlagManifest = "YAML or TOML manifest with baseline, packages and actions"
	MsgFlagReport   = "Write a JUnit XML report of the run to this file"
	MsgFlagBackend  = "Package backend, apt or pacman (overrides packages.backend)"
	MsgFlagRoot     = "Prefix for configuration targets (overrides configure.root)"
	MsgFlagActions  = "Configuration actions to apply (overrides configure.actions)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimSpace(msgRunExampleRaw)

	//go:embed msgs/audit-long.txt
	msgAuditLongRaw string
	MsgAuditLong    = strings.TrimSpace(msgAuditLongRaw)

	//go:embed msgs/verify-long.txt
	msgVerifyLongRaw string
	MsgVerifyLong    = strings.TrimSpace(msgVerifyLongRaw)

	//go:embed msgs/configure-long.txt
	msgConfigureLongRaw string
	MsgConfigureLong    = strings.TrimSpace(msgConfigureLongRaw)
)
