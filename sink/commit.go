package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Unit pairs a staged tree with its destination below the commit root.
// Dest "" promotes the tree's files directly at the root (used for
// root-level descriptors like the orchestration file); any other Dest is
// a directory that is replaced wholesale on promotion.
type Unit struct {
	Dest string
	Tree *Tree
}

// CommitError reports a failed promotion for one unit. Other units are
// unaffected: previously promoted output stays on disk untouched.
type CommitError struct {
	Unit string
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s: %v", e.Unit, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// Committer promotes staged units into a destination root.
type Committer struct {
	// Root is the destination directory. Created if absent.
	Root string

	// Mode is the file permission mode for promoted files (default 0644).
	Mode os.FileMode
}

// Commit promotes every unit and returns all failures, one per failed
// unit. Promotion is per-unit atomic: a unit's files are first written
// under a scratch directory inside Root (same filesystem, so the final
// rename cannot fail with EXDEV), then moved into place in one step for
// directory units, or file-by-file via rename for root units.
//
// Re-running Commit with identical trees yields byte-identical output.
func (c *Committer) Commit(ctx context.Context, units []Unit) []*CommitError {
	var failures []*CommitError

	if err := os.MkdirAll(c.Root, 0o755); err != nil {
		failures = append(failures, &CommitError{Unit: "destination", Err: err})
		return failures
	}

	scratch, err := os.MkdirTemp(c.Root, ".stackforge-stage-*")
	if err != nil {
		failures = append(failures, &CommitError{Unit: "destination", Err: err})
		return failures
	}
	defer os.RemoveAll(scratch)

	for i, u := range units {
		if err := ctx.Err(); err != nil {
			failures = append(failures, &CommitError{Unit: u.Tree.Name(), Err: err})
			continue
		}
		if err := c.promote(u, filepath.Join(scratch, fmt.Sprintf("u%d", i))); err != nil {
			failures = append(failures, &CommitError{Unit: u.Tree.Name(), Err: err})
		}
	}
	return failures
}

func (c *Committer) promote(u Unit, stageDir string) error {
	if err := c.stage(u.Tree, stageDir); err != nil {
		return err
	}

	if u.Dest == "" {
		// Root unit: promote each staged file with an atomic rename.
		for _, p := range u.Tree.Paths() {
			final := filepath.Join(c.Root, filepath.FromSlash(p))
			if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
				return err
			}
			if err := os.Rename(filepath.Join(stageDir, filepath.FromSlash(p)), final); err != nil {
				return err
			}
		}
		return nil
	}

	final := filepath.Join(c.Root, filepath.FromSlash(u.Dest))
	if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return err
	}

	// Replace any previous run's output for this unit, then move the
	// fully staged directory into place.
	old := stageDir + ".old"
	replaced := false
	if _, err := os.Stat(final); err == nil {
		if err := os.Rename(final, old); err != nil {
			return err
		}
		replaced = true
	}
	if err := os.Rename(stageDir, final); err != nil {
		if replaced {
			_ = os.Rename(old, final) // best-effort restore
		}
		return err
	}
	if replaced {
		_ = os.RemoveAll(old)
	}
	return nil
}

func (c *Committer) stage(t *Tree, dir string) error {
	mode := c.Mode
	if mode == 0 {
		mode = 0o644
	}
	for _, p := range t.Paths() {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, t.Get(p), mode); err != nil {
			return err
		}
	}
	return nil
}
