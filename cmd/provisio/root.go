package provisio

import (
	"errors"
	"fmt"
	"os"

	"github.com/arthur-debert/provisio/internal/version"
	"github.com/arthur-debert/provisio/pkg/pipeline"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func pipelineRequest(s *session, args []string, actions []types.ConfigAction) pipeline.Request {
	return pipeline.Request{
		Baseline: s.baseline(),
		Packages: s.packageNames(args),
		Actions:  actions,
	}
}

func errNoPackages() error {
	return errors.New(MsgErrNoPackages)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(provisio completion bash)

Zsh:
  $ provisio completion zsh > "${fpath[1]}/_provisio"

Fish:
  $ provisio completion fish | source

PowerShell:
  PS> provisio completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:     "man [dir]",
		Short:   MsgManShort,
		Hidden:  true,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "PROVISIO",
				Section: "1",
				Source:  "provisio " + version.Version,
			}
			if len(args) == 0 {
				return doc.GenMan(rootCmd, header, cmd.OutOrStdout())
			}
			if err := os.MkdirAll(args[0], 0755); err != nil {
				return err
			}
			return doc.GenManTree(rootCmd, header, args[0])
		},
	}
}
