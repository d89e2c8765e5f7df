package genconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/provisio/pkg/config"
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/spf13/cobra"
)

// Loader returns the effective configuration for cmd
type Loader func(cmd *cobra.Command) (*config.Config, error)

// NewCommand creates the genconfig command. The loader is supplied by the
// root command, which owns the --config flag.
func NewCommand(load Loader) *cobra.Command {
	var (
		write    bool
		template bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !template {
				cfg, err := load(cmd)
				if err != nil {
					return err
				}
				if content, err = config.ToTOML(cfg); err != nil {
					return err
				}
			}

			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			path := config.UserConfigPath()
			if err := writeConfig(path, content, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}

func writeConfig(path, content string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Newf(errors.ErrAlreadyExists, "%s already exists, use --force to overwrite", path).
			WithDetail(errors.DetailPath, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
			WithDetail(errors.DetailPath, dir)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return nil
}
