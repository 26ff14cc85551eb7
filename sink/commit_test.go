package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func stagedTree(t *testing.T, name string, files map[string]string) *Tree {
	t.Helper()
	tree := NewTree(name)
	for p, content := range files {
		if err := tree.WriteString(p, content); err != nil {
			t.Fatal(err)
		}
	}
	return tree
}

func TestCommitPromotesUnits(t *testing.T) {
	root := t.TempDir()
	c := &Committer{Root: root}

	units := []Unit{
		{Dest: "services/user", Tree: stagedTree(t, "services/user", map[string]string{
			"Program.cs":     "class Program {}",
			"Models/User.cs": "class User {}",
		})},
		{Dest: "", Tree: stagedTree(t, "orchestration", map[string]string{
			"docker-compose.yml": "services: {}\n",
		})},
	}

	if errs := c.Commit(context.Background(), units); len(errs) != 0 {
		t.Fatalf("Commit() errors = %v", errs)
	}

	for _, want := range []string{
		"services/user/Program.cs",
		"services/user/Models/User.cs",
		"docker-compose.yml",
	} {
		if _, err := os.Stat(filepath.Join(root, want)); err != nil {
			t.Errorf("missing promoted file %s: %v", want, err)
		}
	}

	// No scratch leftovers.
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "services" && e.Name() != "docker-compose.yml" {
			t.Errorf("unexpected leftover %q in destination", e.Name())
		}
	}
}

func TestCommitReplacesPreviousRun(t *testing.T) {
	root := t.TempDir()
	c := &Committer{Root: root}
	ctx := context.Background()

	first := []Unit{{Dest: "services/user", Tree: stagedTree(t, "services/user", map[string]string{
		"a.txt": "one",
		"stale.txt": "will vanish",
	})}}
	if errs := c.Commit(ctx, first); len(errs) != 0 {
		t.Fatalf("first Commit() errors = %v", errs)
	}

	second := []Unit{{Dest: "services/user", Tree: stagedTree(t, "services/user", map[string]string{
		"a.txt": "two",
	})}}
	if errs := c.Commit(ctx, second); len(errs) != 0 {
		t.Fatalf("second Commit() errors = %v", errs)
	}

	data, err := os.ReadFile(filepath.Join(root, "services/user/a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Errorf("a.txt = %q, want two", data)
	}

	// A unit is replaced wholesale: files from the previous run are gone.
	if _, err := os.Stat(filepath.Join(root, "services/user/stale.txt")); !os.IsNotExist(err) {
		t.Errorf("stale.txt still present after re-run (err=%v)", err)
	}
}

func TestCommitCancelledContext(t *testing.T) {
	root := t.TempDir()
	c := &Committer{Root: root}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units := []Unit{{Dest: "services/user", Tree: stagedTree(t, "services/user", map[string]string{"a": "x"})}}
	errs := c.Commit(ctx, units)
	if len(errs) != 1 {
		t.Fatalf("Commit() errors = %v, want one per unit", errs)
	}
	if _, err := os.Stat(filepath.Join(root, "services/user")); !os.IsNotExist(err) {
		t.Error("unit promoted despite cancelled context")
	}
}

func TestCommitIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	c := &Committer{Root: root}

	// Second unit collides with a file where its directory should go,
	// which makes its promotion fail; the first unit must stay intact.
	if err := os.WriteFile(filepath.Join(root, "blocked"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	units := []Unit{
		{Dest: "services/ok", Tree: stagedTree(t, "services/ok", map[string]string{"a.txt": "fine"})},
		{Dest: "blocked/unit", Tree: stagedTree(t, "blocked/unit", map[string]string{"b.txt": "nope"})},
	}

	errs := c.Commit(context.Background(), units)
	if len(errs) != 1 {
		t.Fatalf("Commit() errors = %v, want exactly one", errs)
	}
	if errs[0].Unit != "blocked/unit" {
		t.Errorf("failed unit = %q, want blocked/unit", errs[0].Unit)
	}
	if _, err := os.Stat(filepath.Join(root, "services/ok/a.txt")); err != nil {
		t.Errorf("healthy unit not promoted: %v", err)
	}
}
