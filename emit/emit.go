// Package emit defines the contract every target-runtime adapter
// implements. Adapters are pure with respect to program state: they read
// one service's IR plus the shared project IR and stage files into a
// private tree; they never read another service's output, which is what
// allows all emitters to run concurrently.
//
// The template text each adapter renders is deliberately isolated inside
// the adapter package; nothing outside depends on a specific templating
// mechanism.
package emit

import (
	"fmt"

	"github.com/broady/stackforge/ir"
	"github.com/broady/stackforge/sink"
)

// Emitter produces a staged file tree for exactly one service.
type Emitter interface {
	Emit(svc ir.Service, project *ir.Project) (*sink.Tree, error)
}

// RenderError reports that a service could not be rendered for its
// runtime, e.g. a field type with no emission rule. It aborts staging
// for that service only; other units are unaffected.
type RenderError struct {
	Service string
	Runtime string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s (%s): %v", e.Service, e.Runtime, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
