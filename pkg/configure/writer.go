package configure

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/filesystem"
	"github.com/arthur-debert/provisio/pkg/internal/hashutil"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

const dirMode = 0755

// Options configures a Writer
type Options struct {
	// FS receives the writes. When nil it is the host filesystem, rooted
	// at Root.
	FS types.FS
	// Root prefixes every target path; "" and "/" mean the real root
	Root string
	// DryRun logs each action without touching the filesystem
	DryRun bool
}

// Writer applies configuration actions
type Writer struct {
	fs     types.FS
	dryRun bool
	logger zerolog.Logger
}

// NewWriter creates a Writer
func NewWriter(opts Options) *Writer {
	fsys := opts.FS
	if fsys == nil {
		if opts.Root == "" || opts.Root == "/" {
			fsys = filesystem.NewOS()
		} else {
			fsys = filesystem.NewBasePath(opts.Root)
		}
	}

	return &Writer{
		fs:     fsys,
		dryRun: opts.DryRun,
		logger: logging.GetLogger("configure"),
	}
}

// Apply writes one action. The target directory is created first; a
// failure there is reported as ErrDirCreate, a failure writing or
// setting the mode as ErrFileWrite. Re-applying an action rewrites the
// file with identical content.
func (w *Writer) Apply(action types.ConfigAction) error {
	if action.Path == "" || !filepath.IsAbs(action.Path) {
		return errors.Newf(errors.ErrInvalidInput,
			"configuration action %q needs an absolute path, got %q", action.Name, action.Path)
	}

	logger := w.logger.With().
		Str("action", action.Name).
		Str("path", action.Path).
		Logger()

	if w.dryRun {
		logger.Info().Msg("Dry run, skipping configuration write")
		return nil
	}

	dir := filepath.Dir(action.Path)
	if err := w.fs.MkdirAll(dir, dirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create directory for %s", action.Name).
			WithDetail(errors.DetailPath, dir)
	}

	content := action.Render()
	previous := hashutil.FileChecksum(w.fs, action.Path)

	// A read-only mode from an earlier apply would make the rewrite fail
	if info, err := w.fs.Stat(action.Path); err == nil && info.Mode().Perm()&0200 == 0 {
		if err := w.fs.Chmod(action.Path, info.Mode().Perm()|0200); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite,
				"failed to make %s writable", action.Name).
				WithDetail(errors.DetailPath, action.Path)
		}
	}

	if err := w.fs.WriteFile(action.Path, content, action.Mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"failed to write %s", action.Name).
			WithDetail(errors.DetailPath, action.Path)
	}

	// WriteFile keeps the mode of an existing file
	if err := w.fs.Chmod(action.Path, action.Mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"failed to set mode on %s", action.Name).
			WithDetail(errors.DetailPath, action.Path)
	}

	checksum := hashutil.Checksum(content)
	logger.Info().
		Int("bytes", len(content)).
		Str("checksum", checksum).
		Bool("changed", previous != checksum).
		Msg("Configuration written")
	return nil
}

// ApplyAll applies actions in order and returns the names of those that
// were applied. Each action is one operation of a synthfs pipeline; the
// run stops at the first error and earlier writes are kept.
func (w *Writer) ApplyAll(actions []types.ConfigAction) ([]string, error) {
	applied := make([]string, 0, len(actions))
	if len(actions) == 0 {
		return applied, nil
	}

	if w.dryRun {
		for _, action := range actions {
			if err := w.Apply(action); err != nil {
				return applied, err
			}
			applied = append(applied, action.Name)
		}
		return applied, nil
	}

	var firstErr error
	sfs := synthfs.New()
	ops := make([]synthfs.Operation, 0, len(actions))
	for i, action := range actions {
		action := action
		id := fmt.Sprintf("configure_%d_%s", i, action.Name)
		ops = append(ops, sfs.CustomOperationWithID(id, func(ctx context.Context, _ synthfilesystem.FileSystem) error {
			if firstErr != nil {
				return nil
			}
			if err := w.Apply(action); err != nil {
				firstErr = err
				return err
			}
			applied = append(applied, action.Name)
			return nil
		}))
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	w.logger.Debug().Int("operationCount", len(ops)).Msg("Executing configuration operations")
	_, err := synthfs.RunWithOptions(context.Background(), w.pipelineFS(), options, ops...)
	if firstErr != nil {
		return applied, firstErr
	}
	if err != nil {
		return applied, errors.Wrap(err, errors.ErrFileWrite, "configuration pipeline failed")
	}
	return applied, nil
}

// pipelineFS is the filesystem handed to synthfs. Operations write
// through w.fs, which already carries the root prefix.
func (w *Writer) pipelineFS() synthfilesystem.FullFileSystem {
	osfs := synthfilesystem.NewOSFileSystem("/")
	return synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()
}
