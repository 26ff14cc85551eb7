// Package dotnet emits an ASP.NET Core scaffold for one service.
package dotnet

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/broady/stackforge/emit"
	"github.com/broady/stackforge/ir"
	"github.com/broady/stackforge/sink"
	"github.com/broady/stackforge/spec"
)

// typeMap maps spec field types to C# types. A field type missing here
// has no emission rule for this runtime and fails the service's unit.
var typeMap = map[spec.FieldType]string{
	spec.FieldString:   "string",
	spec.FieldInt:      "int",
	spec.FieldFloat:    "double",
	spec.FieldBool:     "bool",
	spec.FieldDatetime: "DateTime",
	spec.FieldHashed:   "string",
}

// Emitter renders the dotnet scaffold.
type Emitter struct{}

// New returns the dotnet emitter.
func New() *Emitter { return &Emitter{} }

// Emit stages the full scaffold for svc.
func (e *Emitter) Emit(svc ir.Service, project *ir.Project) (*sink.Tree, error) {
	tree := sink.NewTree("services/" + svc.Name)
	v, err := newView(svc, project)
	if err != nil {
		return nil, &emit.RenderError{Service: svc.Name, Runtime: string(spec.RuntimeDotnet), Err: err}
	}

	files := map[string]string{
		v.Pascal + ".csproj": "csproj",
		"Program.cs":         "program",
		"appsettings.json":   "appsettings",
		"Dockerfile":         "dockerfile",
	}
	for _, ent := range v.Entities {
		files["Models/"+ent.Name+".cs"] = "model:" + ent.Name
		switch {
		case svc.CQRS:
			files["Commands/Create"+ent.Name+"Command.cs"] = "command:" + ent.Name
			files["Queries/Get"+ent.Name+"Query.cs"] = "query:" + ent.Name
		case svc.PublishesEvents:
			// publisher is shared, emitted once below
		default:
			files["Services/"+ent.Name+"Service.cs"] = "service:" + ent.Name
			files["Repositories/"+ent.Name+"Repository.cs"] = "repository:" + ent.Name
		}
	}
	if svc.PublishesEvents {
		files["Events/EventPublisher.cs"] = "publisher"
	}

	for path, kind := range files {
		name, ent, _ := strings.Cut(kind, ":")
		body, err := render(name, v.forEntity(ent))
		if err != nil {
			return nil, &emit.RenderError{Service: svc.Name, Runtime: string(spec.RuntimeDotnet), Err: err}
		}
		if err := tree.WriteString(path, body); err != nil {
			return nil, &emit.RenderError{Service: svc.Name, Runtime: string(spec.RuntimeDotnet), Err: err}
		}
	}
	return tree, nil
}

type view struct {
	ir.Service
	Pascal   string
	Project  string
	Entities []entityView

	// Entity is set when rendering a per-entity file.
	Entity *entityView
}

type entityView struct {
	Name   string
	Fields []fieldView
	Hashed []fieldView
}

type fieldView struct {
	Pascal string
	Camel  string
	CSType string
	Hashed bool
}

func newView(svc ir.Service, project *ir.Project) (*view, error) {
	v := &view{
		Service: svc,
		Pascal:  spec.Pascal(svc.Name),
		Project: project.Name,
	}
	for _, ent := range svc.Entities {
		ev := entityView{Name: spec.Pascal(ent.Name)}
		for _, f := range ent.Fields {
			cs, ok := typeMap[f.Type]
			if !ok {
				return nil, fmt.Errorf("no C# mapping for field type %q (field %s.%s)", f.Type, ent.Name, f.Name)
			}
			fv := fieldView{Pascal: spec.Pascal(f.Name), Camel: spec.Camel(f.Name), CSType: cs, Hashed: f.Hashed}
			ev.Fields = append(ev.Fields, fv)
			if f.Hashed {
				ev.Hashed = append(ev.Hashed, fv)
			}
		}
		v.Entities = append(v.Entities, ev)
	}
	return v, nil
}

// forEntity returns a copy of the view focused on one entity (by Pascal
// name), or the view itself for service-level files.
func (v *view) forEntity(name string) *view {
	if name == "" {
		return v
	}
	for i := range v.Entities {
		if v.Entities[i].Name == name {
			cp := *v
			cp.Entity = &v.Entities[i]
			return &cp
		}
	}
	return v
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

var tmpl = template.Must(template.New("dotnet").Parse(templates))
