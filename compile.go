// Package stackforge compiles a declarative description of a
// multi-service backend into per-service source scaffolds, a JWT-secured
// API gateway, an orchestration descriptor and topology documentation.
//
// The pipeline stages are load, validate, build IR, fan out (one emitter
// task per service, plus the gateway, orchestration and docs
// synthesizers), commit. The IR is fully constructed before any fan-out
// task starts and is immutable from then on, so the tasks share no
// mutable state and run concurrently; each stages into a private tree
// and the committer promotes every fully staged unit atomically.
package stackforge

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/broady/stackforge/docsgen"
	"github.com/broady/stackforge/emit"
	"github.com/broady/stackforge/gateway"
	"github.com/broady/stackforge/ir"
	"github.com/broady/stackforge/orchestrate"
	"github.com/broady/stackforge/sink"
	"github.com/broady/stackforge/spec"
)

// ManifestFilename is the single timestamped file in the output tree.
// Everything else round-trips byte-identically across runs.
const ManifestFilename = "generation.json"

// Manifest records run metadata at the destination root.
type Manifest struct {
	Run         string `json:"run"`
	GeneratedAt string `json:"generatedAt"`
	Version     string `json:"version,omitempty"`
	Project     string `json:"project"`
	Services    int    `json:"services"`
}

// ValidationFailure aggregates every validation violation of a run.
// It blocks IR construction: no downstream task starts.
type ValidationFailure struct {
	Errors []*spec.Error
}

func (e *ValidationFailure) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("spec has %d validation error(s):\n  %s",
		len(e.Errors), strings.Join(msgs, "\n  "))
}

// UnitError is a per-unit failure: a service that could not be rendered
// or a unit that could not be promoted. Other units are unaffected.
type UnitError struct {
	Unit string
	Err  error
}

func (e *UnitError) Error() string { return e.Unit + ": " + e.Err.Error() }

func (e *UnitError) Unwrap() error { return e.Err }

// Result reports a compile run. Failures holds every per-unit error;
// a run succeeded only if Failures is empty.
type Result struct {
	Project  *ir.Project
	Promoted []string
	Failures []*UnitError
}

// Ok reports whether every unit rendered and committed.
func (r *Result) Ok() bool { return len(r.Failures) == 0 }

// Compile runs the full pipeline for a loaded project.
//
// A spec with validation errors returns (*ValidationFailure, nil Result):
// validation is a hard gate, not a best-effort partial run. Per-unit
// render and commit failures do not abort the run; they are aggregated
// in Result.Failures while every other unit is promoted normally.
func Compile(ctx context.Context, project *spec.Project, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = &Config{OutDir: "."}
	}
	if errs := spec.Validate(project); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}

	irp := ir.Build(project)
	emitters := cfg.emitters()

	// Fan out. Each task writes only its own slot; the IR is read-only.
	type staged struct {
		dest string
		tree *sink.Tree
		err  error
		name string
	}
	tasks := make([]staged, len(irp.Services)+3)

	var wg sync.WaitGroup
	for i := range irp.Services {
		svc := irp.Services[i]
		slot := &tasks[i]
		slot.name = "services/" + svc.Name
		slot.dest = "services/" + svc.Name
		wg.Add(1)
		go func() {
			defer wg.Done()
			em, ok := emitters[svc.Runtime]
			if !ok {
				slot.err = &emit.RenderError{
					Service: svc.Name,
					Runtime: string(svc.Runtime),
					Err:     fmt.Errorf("no emitter registered"),
				}
				return
			}
			slot.tree, slot.err = em.Emit(svc, irp)
		}()
	}

	synths := []struct {
		idx  int
		name string
		dest string
		run  func(*ir.Project) (*sink.Tree, error)
	}{
		{len(irp.Services), gateway.UnitName, gateway.UnitName, gateway.Synthesize},
		{len(irp.Services) + 1, "orchestration", "", orchestrate.Synthesize},
		{len(irp.Services) + 2, "docs", "", docsgen.Synthesize},
	}
	for _, s := range synths {
		slot := &tasks[s.idx]
		slot.name, slot.dest = s.name, s.dest
		run := s.run
		wg.Add(1)
		go func() {
			defer wg.Done()
			slot.tree, slot.err = run(irp)
		}()
	}
	wg.Wait()

	result := &Result{Project: irp}

	units := make([]sink.Unit, 0, len(tasks)+1)
	for i := range tasks {
		if tasks[i].err != nil {
			result.Failures = append(result.Failures, &UnitError{Unit: tasks[i].name, Err: tasks[i].err})
			continue
		}
		units = append(units, sink.Unit{Dest: tasks[i].dest, Tree: tasks[i].tree})
	}

	manifest, err := manifestTree(irp, cfg.now())
	if err != nil {
		result.Failures = append(result.Failures, &UnitError{Unit: "manifest", Err: err})
	} else {
		units = append(units, sink.Unit{Dest: "", Tree: manifest})
	}

	committer := &sink.Committer{Root: cfg.OutDir}
	failed := make(map[string]bool)
	for _, cerr := range committer.Commit(ctx, units) {
		failed[cerr.Unit] = true
		result.Failures = append(result.Failures, &UnitError{Unit: cerr.Unit, Err: cerr.Err})
	}
	for _, u := range units {
		if !failed[u.Tree.Name()] {
			result.Promoted = append(result.Promoted, u.Tree.Name())
		}
	}
	return result, nil
}

// manifestTree stages generation.json, the one deliberately timestamped
// location in the output.
func manifestTree(irp *ir.Project, now time.Time) (*sink.Tree, error) {
	m := Manifest{
		Run:         ulid.Make().String(),
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Version:     toolVersion(),
		Project:     irp.Name,
		Services:    len(irp.Services),
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	tree := sink.NewTree("manifest")
	if err := tree.WriteFile(ManifestFilename, append(data, '\n')); err != nil {
		return nil, err
	}
	return tree, nil
}

// toolVersion reports the installed module version, empty for dev builds.
func toolVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return ""
	}
	return info.Main.Version
}
