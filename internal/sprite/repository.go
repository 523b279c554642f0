package sprite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/JonMunkholm/pokedex-ingest/internal/logging"
)

// ErrNoSprites is returned when the sprite directory is missing or empty.
var ErrNoSprites = errors.New("sprite directory missing or empty")

// Repository makes the sprite tree available on disk.
type Repository interface {
	Ensure(ctx context.Context) error
}

// LocalRepository is a sprite tree that is already in place.
type LocalRepository struct {
	Dir string
}

func (r LocalRepository) Ensure(context.Context) error {
	ok, err := hasEntries(r.Dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSprites, r.Dir)
	}
	return nil
}

// Runner runs an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs commands with os/exec. The combined output is included
// in the error of a failed command.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(out.String()))
	}
	return nil
}

// GitRepository fetches the sprite tree with a shallow sparse clone when
// Dir is missing or empty. The clone is made in WorkDir, which must not
// overlap Dir. Its sprites/ subtree is staged next to Dir and renamed into
// place in one step, so Dir is either absent, empty or complete.
type GitRepository struct {
	Dir     string
	URL     string
	WorkDir string
	Run     Runner // nil uses ExecRunner

	rename func(oldpath, newpath string) error // nil uses os.Rename
}

// SparsePath is the repository subtree holding the sprite tree.
const SparsePath = "sprites"

// ErrOverlappingDirs is returned when the clone directory and the sprite
// directory contain one another.
var ErrOverlappingDirs = errors.New("sprite directory and clone directory overlap")

func (r GitRepository) Ensure(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	if Overlaps(r.Dir, r.WorkDir) {
		return fmt.Errorf("%w: %s and %s", ErrOverlappingDirs, r.Dir, r.WorkDir)
	}

	ok, err := hasEntries(r.Dir)
	if err != nil {
		return err
	}
	if ok {
		logger.Info("sprite directory already present, skipping clone", "dir", r.Dir)
		return nil
	}

	run := r.Run
	if run == nil {
		run = ExecRunner
	}

	logger.Info("cloning sprite repository", "url", r.URL, "work_dir", r.WorkDir)

	if err := os.RemoveAll(r.WorkDir); err != nil {
		return fmt.Errorf("clear clone directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.WorkDir), 0o755); err != nil {
		return fmt.Errorf("create clone parent: %w", err)
	}

	steps := [][]string{
		{"clone", "--depth", "1", "--filter=blob:none", "--sparse", r.URL, r.WorkDir},
		{"-C", r.WorkDir, "sparse-checkout", "init", "--cone"},
		{"-C", r.WorkDir, "sparse-checkout", "set", SparsePath},
	}
	for _, args := range steps {
		if err := run(ctx, "git", args...); err != nil {
			return fmt.Errorf("clone sprite repository: %w", err)
		}
	}

	if err := r.install(filepath.Join(r.WorkDir, SparsePath)); err != nil {
		return fmt.Errorf("install sprites: %w", err)
	}
	if err := os.RemoveAll(r.WorkDir); err != nil {
		logger.Warn("could not remove clone directory", "dir", r.WorkDir, "error", err)
	}

	logger.Info("sprite repository cloned", "dir", r.Dir)
	return nil
}

// install moves the tree at src into Dir. The tree is first moved into a
// staging directory beside Dir, copying when src is on another device, and
// the staging directory is then renamed onto Dir. A failure leaves Dir as
// it was.
func (r GitRepository) install(src string) error {
	rename := r.rename
	if rename == nil {
		rename = os.Rename
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSprites, src)
	}

	parent := filepath.Dir(filepath.Clean(r.Dir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(r.Dir)+"-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	tree := filepath.Join(staging, "tree")
	if err := rename(src, tree); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return err
		}
		if err := copyTree(src, tree); err != nil {
			return fmt.Errorf("copy across devices: %w", err)
		}
	}

	// Dir is missing or empty here; an empty directory would block the rename.
	if err := os.Remove(r.Dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return rename(tree, r.Dir)
}

// copyTree copies the directory tree at src to dst, which must not exist.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.Mkdir(target, info.Mode().Perm()|0o700)
		case info.Mode().IsRegular():
			return copyFile(p, target, info.Mode().Perm())
		default:
			// Symlinks and special files are not part of the sprite tree.
			return nil
		}
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Overlaps reports whether a and b are the same directory or one contains
// the other. Relative paths are resolved against the working directory.
func Overlaps(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return within(absA, absB) || within(absB, absA)
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func hasEntries(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read sprite directory: %w", err)
	}
	return len(entries) > 0, nil
}
