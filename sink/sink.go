// Package sink provides staging and promotion for generated output.
// Each pipeline unit (a service scaffold, the gateway, a root-level
// descriptor) stages its files into a private Tree; the Committer then
// promotes each fully staged unit into the destination, so a failing
// unit never leaves a half-written directory behind.
package sink

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Tree is an in-memory staged file tree for one unit.
// All operations are safe for concurrent use.
type Tree struct {
	name string

	mu    sync.RWMutex
	files map[string][]byte
}

// NewTree creates an empty staged tree. name identifies the unit in
// error reports (e.g. "services/order").
func NewTree(name string) *Tree {
	return &Tree{name: name, files: make(map[string][]byte)}
}

// Name returns the unit name the tree was created with.
func (t *Tree) Name() string { return t.name }

// WriteFile stages content at the given unit-relative path.
func (t *Tree) WriteFile(path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	cp := make([]byte, len(content))
	copy(cp, content)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.files[path] = cp
	return nil
}

// WriteString stages a string at the given unit-relative path.
func (t *Tree) WriteString(path, content string) error {
	return t.WriteFile(path, []byte(content))
}

// Get returns the staged content for path, or nil if absent.
func (t *Tree) Get(path string) []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	content, ok := t.files[path]
	if !ok {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}

// Paths returns all staged paths in sorted order.
func (t *Tree) Paths() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.files))
	for p := range t.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of staged files.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.files)
}

// ValidatePath checks that a staged path is relative, clean, slash
// separated and free of traversal. Borrowing the destination's namespace
// (absolute paths, "..") is never allowed.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) {
		return errors.New("absolute paths not allowed")
	}
	// Windows drive letters count as absolute even on Unix.
	if len(path) >= 2 && path[1] == ':' &&
		((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}
	if cleaned := filepath.ToSlash(filepath.Clean(path)); cleaned != path {
		return fmt.Errorf("path is not clean (expected %q)", cleaned)
	}
	return nil
}
