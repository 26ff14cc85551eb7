// Package nodejs emits a Node/Express scaffold for one service.
package nodejs

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/broady/stackforge/emit"
	"github.com/broady/stackforge/ir"
	"github.com/broady/stackforge/sink"
	"github.com/broady/stackforge/spec"
)

// typeMap maps spec field types to the constructors used in model
// definitions (mongoose-style for mongodb, plain column types otherwise).
var typeMap = map[spec.FieldType]string{
	spec.FieldString:   "String",
	spec.FieldInt:      "Number",
	spec.FieldFloat:    "Number",
	spec.FieldBool:     "Boolean",
	spec.FieldDatetime: "Date",
	spec.FieldHashed:   "String",
}

// Emitter renders the nodejs scaffold.
type Emitter struct{}

// New returns the nodejs emitter.
func New() *Emitter { return &Emitter{} }

// Emit stages the full scaffold for svc.
func (e *Emitter) Emit(svc ir.Service, project *ir.Project) (*sink.Tree, error) {
	tree := sink.NewTree("services/" + svc.Name)
	v, err := newView(svc, project)
	if err != nil {
		return nil, fail(svc, err)
	}

	files := map[string]string{
		"package.json": "package",
		"src/index.js": "index",
		".env.example": "env",
		"Dockerfile":   "dockerfile",
	}
	for _, ent := range v.Entities {
		files["src/models/"+ent.File+".js"] = "model:" + ent.Name
		switch {
		case svc.CQRS:
			files["src/commands/create-"+ent.File+".js"] = "command:" + ent.Name
			files["src/queries/get-"+ent.File+".js"] = "query:" + ent.Name
		case svc.PublishesEvents:
			// shared publisher below
		default:
			files["src/services/"+ent.File+"-service.js"] = "service:" + ent.Name
			files["src/repositories/"+ent.File+"-repository.js"] = "repository:" + ent.Name
		}
	}
	if svc.PublishesEvents {
		files["src/events/publisher.js"] = "publisher"
	}

	for path, kind := range files {
		name, ent, _ := strings.Cut(kind, ":")
		body, err := render(name, v.forEntity(ent))
		if err != nil {
			return nil, fail(svc, err)
		}
		if err := tree.WriteString(path, body); err != nil {
			return nil, fail(svc, err)
		}
	}
	return tree, nil
}

func fail(svc ir.Service, err error) error {
	return &emit.RenderError{Service: svc.Name, Runtime: string(spec.RuntimeNode), Err: err}
}

type view struct {
	ir.Service
	Project  string
	Entities []entityView
	Entity   *entityView
}

type entityView struct {
	Name   string // PascalCase
	File   string // kebab-case file stem
	Fields []fieldView
}

type fieldView struct {
	Camel  string
	Pascal string
	JSType string
	Hashed bool
}

func newView(svc ir.Service, project *ir.Project) (*view, error) {
	v := &view{Service: svc, Project: project.Name}
	for _, ent := range svc.Entities {
		ev := entityView{Name: spec.Pascal(ent.Name), File: spec.Kebab(ent.Name)}
		for _, f := range ent.Fields {
			js, ok := typeMap[f.Type]
			if !ok {
				return nil, fmt.Errorf("no JS mapping for field type %q (field %s.%s)", f.Type, ent.Name, f.Name)
			}
			ev.Fields = append(ev.Fields, fieldView{
				Camel:  spec.Camel(f.Name),
				Pascal: spec.Pascal(f.Name),
				JSType: js,
				Hashed: f.Hashed,
			})
		}
		v.Entities = append(v.Entities, ev)
	}
	return v, nil
}

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

var tmpl = template.Must(template.New("nodejs").Parse(templates))
