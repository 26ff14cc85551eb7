package spec

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is the spec document the CLI reads from the invocation
// directory when no explicit path is given.
const DefaultFilename = "stackforge.yaml"

// LoadFile reads and parses the spec document at path.
func LoadFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spec: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a spec document into a Project. Mapping order is preserved
// for services, entities and fields because it is decoded from the YAML
// node tree directly (a plain map decode would lose it).
//
// Load only enforces document shape; enum membership, identifier safety
// and uniqueness are left to Validate so that every violation can be
// reported in one pass. A structurally malformed document yields a single
// *MalformedError.
func Load(r io.Reader) (*Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedError{Where: "document", Message: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &MalformedError{Where: "document", Message: "empty document"}
	}

	root, err := mapping(doc.Content[0], "document")
	if err != nil {
		return nil, err
	}

	p := &Project{}
	for _, kv := range pairs(root) {
		switch kv.key {
		case "projectName":
			p.Name = kv.val.Value
		case "services":
			svcs, err := mapping(kv.val, "services")
			if err != nil {
				return nil, err
			}
			for _, svc := range pairs(svcs) {
				s, err := loadService(svc.key, svc.val)
				if err != nil {
					return nil, err
				}
				p.Services = append(p.Services, *s)
			}
		}
	}
	return p, nil
}

func loadService(name string, n *yaml.Node) (*Service, error) {
	where := "services." + name
	m, err := mapping(n, where)
	if err != nil {
		return nil, err
	}

	s := &Service{Name: name}
	for _, kv := range pairs(m) {
		switch kv.key {
		case "runtime":
			s.Runtime = Runtime(kv.val.Value)
		case "database":
			s.Database = Database(kv.val.Value)
		case "pattern":
			s.Pattern = Pattern(kv.val.Value)
		case "entities":
			ents, err := mapping(kv.val, where+".entities")
			if err != nil {
				return nil, err
			}
			for _, ent := range pairs(ents) {
				e, err := loadEntity(where, ent.key, ent.val)
				if err != nil {
					return nil, err
				}
				s.Entities = append(s.Entities, *e)
			}
		case "events":
			if kv.val.Kind != yaml.SequenceNode {
				return nil, &MalformedError{
					Where:   where + ".events",
					Line:    kv.val.Line,
					Message: "expected a sequence of event names",
				}
			}
			for _, ev := range kv.val.Content {
				s.Events = append(s.Events, resolve(ev).Value)
			}
		}
	}
	return s, nil
}

func loadEntity(svcWhere, name string, n *yaml.Node) (*Entity, error) {
	where := svcWhere + ".entities." + name
	m, err := mapping(n, where)
	if err != nil {
		return nil, err
	}

	e := &Entity{Name: name}
	for _, kv := range pairs(m) {
		if kv.val.Kind != yaml.ScalarNode {
			return nil, &MalformedError{
				Where:   where + "." + kv.key,
				Line:    kv.val.Line,
				Message: "expected a scalar field type",
			}
		}
		e.Fields = append(e.Fields, Field{Name: kv.key, Type: FieldType(kv.val.Value)})
	}
	return e, nil
}

// resolve follows alias nodes to their anchor.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func mapping(n *yaml.Node, where string) (*yaml.Node, error) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		line := 0
		if n != nil {
			line = n.Line
		}
		return nil, &MalformedError{Where: where, Line: line, Message: "expected a mapping"}
	}
	return n, nil
}

type pair struct {
	key string
	val *yaml.Node
}

// pairs flattens a mapping node into ordered key/value pairs.
// Duplicate keys are kept; validation reports them later.
func pairs(m *yaml.Node) []pair {
	out := make([]pair, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		out = append(out, pair{key: m.Content[i].Value, val: resolve(m.Content[i+1])})
	}
	return out
}
