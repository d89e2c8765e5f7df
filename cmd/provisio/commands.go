package provisio

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/provisio/cmd/provisio/commands/genconfig"
	"github.com/arthur-debert/provisio/pkg/audit"
	"github.com/arthur-debert/provisio/pkg/cobrax/topics"
	"github.com/arthur-debert/provisio/pkg/config"
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/arthur-debert/provisio/pkg/report"
	"github.com/arthur-debert/provisio/pkg/ui"
	"github.com/arthur-debert/provisio/pkg/verify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "provisio",
		Short: MsgRootShort,
		Long:  MsgRootLong,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.DisableAutoGenTag = true

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVarP(&flags.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&flags.format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVarP(&flags.manifest, "manifest", "m", "", MsgFlagManifest)
	rootCmd.PersistentFlags().StringVarP(&flags.backend, "backend", "b", "", MsgFlagBackend)

	rootCmd.AddGroup(
		&cobra.Group{ID: "provision", Title: "Provisioning:"},
		&cobra.Group{ID: "config", Title: "Configuration:"},
		&cobra.Group{ID: "misc", Title: "Misc:"},
	)

	rootCmd.AddCommand(newRunCmd(flags))
	rootCmd.AddCommand(newAuditCmd(flags))
	rootCmd.AddCommand(newVerifyCmd(flags))
	rootCmd.AddCommand(newConfigureCmd(flags))
	rootCmd.AddCommand(genconfig.NewCommand(func(cmd *cobra.Command) (*config.Config, error) {
		return loadConfig(flags)
	}))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	if err := topics.InitializeWithOptions(rootCmd, TopicsFS, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Debug().Err(err).Msg("Help topics not available")
	}

	return rootCmd
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:     "run [package...]",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "provision",
		RunE: renderingErrors(flags, func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			actions, err := s.actions(nil)
			if err != nil {
				return err
			}

			result := s.controller("").Run(pipelineRequest(s, args, actions))

			if reportPath != "" {
				if err := report.WriteFile(reportPath, result, time.Now()); err != nil {
					log.Error().Err(err).Str("path", reportPath).Msg("Report not written")
				}
			}
			return s.render(ui.FromResult(result))
		}),
	}

	cmd.Flags().StringVarP(&reportPath, "report", "r", "", MsgFlagReport)
	return cmd
}

func newAuditCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "audit [package...]",
		Short:   MsgAuditShort,
		Long:    MsgAuditLong,
		GroupID: "provision",
		RunE: renderingErrors(flags, func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			names := s.packageNames(args)
			if len(names) == 0 {
				return errNoPackages()
			}
			rep, err := audit.New(s.runner, s.backend).Audit(names)
			return s.render(ui.FromAudit(rep, err))
		}),
	}
}

func newVerifyCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "verify [package...]",
		Short:   MsgVerifyShort,
		Long:    MsgVerifyLong,
		GroupID: "provision",
		RunE: renderingErrors(flags, func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			names := s.packageNames(args)
			if len(names) == 0 {
				return errNoPackages()
			}
			rep, err := verify.New(s.runner, s.backend).Verify(names)
			return s.render(ui.FromVerify(rep, err))
		}),
	}
}

func newConfigureCmd(flags *globalFlags) *cobra.Command {
	var (
		root    string
		actions []string
	)

	cmd := &cobra.Command{
		Use:     "configure",
		Short:   MsgConfigureShort,
		Long:    MsgConfigureLong,
		GroupID: "provision",
		Args:    cobra.NoArgs,
		RunE: renderingErrors(flags, func(cmd *cobra.Command, args []string) error {
			if root != "" && !filepath.IsAbs(root) {
				return errors.Newf(errors.ErrInvalidInput, "--root must be absolute, got %q", root).
					WithDetail(errors.DetailPath, root)
			}
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			resolved, err := s.actions(actions)
			if err != nil {
				return err
			}
			applied, err := s.writer(root).ApplyAll(resolved)
			return s.render(ui.FromConfigure(applied, err))
		}),
	}

	cmd.Flags().StringVar(&root, "root", "", MsgFlagRoot)
	cmd.Flags().StringSliceVar(&actions, "action", nil, MsgFlagActions)
	return cmd
}
