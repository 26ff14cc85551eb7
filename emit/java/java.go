// Package java emits a Spring Boot scaffold for one service.
package java

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/broady/stackforge/emit"
	"github.com/broady/stackforge/ir"
	"github.com/broady/stackforge/sink"
	"github.com/broady/stackforge/spec"
)

// typeMap maps spec field types to Java types.
var typeMap = map[spec.FieldType]string{
	spec.FieldString:   "String",
	spec.FieldInt:      "Integer",
	spec.FieldFloat:    "Double",
	spec.FieldBool:     "Boolean",
	spec.FieldDatetime: "Instant",
	spec.FieldHashed:   "String",
}

// Emitter renders the java scaffold.
type Emitter struct{}

// New returns the java emitter.
func New() *Emitter { return &Emitter{} }

// Emit stages the full scaffold for svc.
func (e *Emitter) Emit(svc ir.Service, project *ir.Project) (*sink.Tree, error) {
	tree := sink.NewTree("services/" + svc.Name)
	v, err := newView(svc, project)
	if err != nil {
		return nil, fail(svc, err)
	}

	srcRoot := "src/main/java/" + strings.ReplaceAll(v.Package, ".", "/")

	files := map[string]string{
		"pom.xml":                            "pom",
		"Dockerfile":                         "dockerfile",
		"src/main/resources/application.yml": "appyml",
		srcRoot + "/Application.java":        "application",
	}
	for _, ent := range v.Entities {
		files[srcRoot+"/model/"+ent.Name+".java"] = "model:" + ent.Name
		switch {
		case svc.CQRS:
			files[srcRoot+"/command/Create"+ent.Name+"Command.java"] = "command:" + ent.Name
			files[srcRoot+"/query/Get"+ent.Name+"Query.java"] = "query:" + ent.Name
		case svc.PublishesEvents:
			// shared publisher below
		default:
			files[srcRoot+"/service/"+ent.Name+"Service.java"] = "service:" + ent.Name
			files[srcRoot+"/repository/"+ent.Name+"Repository.java"] = "repository:" + ent.Name
		}
	}
	if svc.PublishesEvents {
		files[srcRoot+"/event/EventPublisher.java"] = "publisher"
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
	return &emit.RenderError{Service: svc.Name, Runtime: string(spec.RuntimeJava), Err: err}
}

type view struct {
	ir.Service
	Pascal  string
	Project string

	// Package is the Java package: "com.<project>.<service>", hyphens
	// stripped since they are illegal in package segments.
	Package string

	Entities []entityView
	Entity   *entityView
}

type entityView struct {
	Name   string
	Fields []fieldView
}

type fieldView struct {
	Pascal   string
	Camel    string
	JavaType string
	Hashed   bool
}

func newView(svc ir.Service, project *ir.Project) (*view, error) {
	v := &view{
		Service: svc,
		Pascal:  spec.Pascal(svc.Name),
		Project: project.Name,
		Package: "com." + pkgSegment(project.Name) + "." + pkgSegment(svc.Name),
	}
	for _, ent := range svc.Entities {
		ev := entityView{Name: spec.Pascal(ent.Name)}
		for _, f := range ent.Fields {
			jt, ok := typeMap[f.Type]
			if !ok {
				return nil, fmt.Errorf("no Java mapping for field type %q (field %s.%s)", f.Type, ent.Name, f.Name)
			}
			ev.Fields = append(ev.Fields, fieldView{
				Pascal:   spec.Pascal(f.Name),
				Camel:    spec.Camel(f.Name),
				JavaType: jt,
				Hashed:   f.Hashed,
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

func pkgSegment(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

var tmpl = template.Must(template.New("java").Parse(templates))
