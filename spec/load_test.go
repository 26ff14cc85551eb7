package spec

import (
	"errors"
	"strings"
	"testing"
)

const sampleDoc = `
projectName: shop
services:
  user:
    runtime: dotnet
    database: postgresql
    pattern: cqrs
    entities:
      User:
        email: string
        password: hashed-string
        createdAt: datetime
  order:
    runtime: nodejs
    database: mongodb
    pattern: event-driven
    entities:
      Order:
        total: float
        paid: bool
        quantity: int
    events:
      - OrderCreated
      - OrderShipped
`

func TestLoad(t *testing.T) {
	p, err := Load(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if p.Name != "shop" {
		t.Errorf("Name = %q, want shop", p.Name)
	}
	if len(p.Services) != 2 {
		t.Fatalf("len(Services) = %d, want 2", len(p.Services))
	}

	// Insertion order must survive: it drives port allocation.
	if p.Services[0].Name != "user" || p.Services[1].Name != "order" {
		t.Errorf("service order = [%s %s], want [user order]", p.Services[0].Name, p.Services[1].Name)
	}

	user := p.Services[0]
	if user.Runtime != RuntimeDotnet || user.Database != DatabasePostgres || user.Pattern != PatternCQRS {
		t.Errorf("user = %s/%s/%s, want dotnet/postgresql/cqrs", user.Runtime, user.Database, user.Pattern)
	}
	if len(user.Entities) != 1 {
		t.Fatalf("len(user.Entities) = %d, want 1", len(user.Entities))
	}
	fields := user.Entities[0].Fields
	if len(fields) != 3 {
		t.Fatalf("len(fields) = %d, want 3", len(fields))
	}
	want := []Field{
		{Name: "email", Type: FieldString},
		{Name: "password", Type: FieldHashed},
		{Name: "createdAt", Type: FieldDatetime},
	}
	for i, f := range fields {
		if f != want[i] {
			t.Errorf("field[%d] = %+v, want %+v", i, f, want[i])
		}
	}

	order := p.Services[1]
	if len(order.Events) != 2 || order.Events[0] != "OrderCreated" || order.Events[1] != "OrderShipped" {
		t.Errorf("order.Events = %v, want [OrderCreated OrderShipped]", order.Events)
	}
}

func TestLoadKeepsUnknownValuesForValidation(t *testing.T) {
	doc := `
projectName: shop
services:
  user:
    runtime: cobol
    database: postgresql
    pattern: cqrs
`
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load() error = %v, unknown enum values are a validation concern", err)
	}
	if p.Services[0].Runtime != "cobol" {
		t.Errorf("Runtime = %q, want raw value preserved", p.Services[0].Runtime)
	}
}

func TestLoadKeepsDuplicateServices(t *testing.T) {
	doc := `
projectName: shop
services:
  user:
    runtime: dotnet
    database: postgresql
    pattern: n-tier
  user:
    runtime: java
    database: postgresql
    pattern: n-tier
`
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load() error = %v, duplicates are a validation concern", err)
	}
	if len(p.Services) != 2 {
		t.Errorf("len(Services) = %d, want 2 (duplicates kept for validation)", len(p.Services))
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "scalar document", doc: "just a string"},
		{name: "sequence document", doc: "- a\n- b"},
		{name: "services is a scalar", doc: "projectName: x\nservices: nope"},
		{name: "service is a sequence", doc: "projectName: x\nservices:\n  user:\n    - a"},
		{name: "entities is a scalar", doc: "projectName: x\nservices:\n  user:\n    entities: nope"},
		{name: "entity is a scalar", doc: "projectName: x\nservices:\n  user:\n    entities:\n      User: nope"},
		{name: "field type is a mapping", doc: "projectName: x\nservices:\n  user:\n    entities:\n      User:\n        email: {a: b}"},
		{name: "events is a mapping", doc: "projectName: x\nservices:\n  user:\n    events: {a: b}"},
		{name: "invalid yaml", doc: "a: [unclosed"},
		{name: "empty document", doc: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Load() error = nil, want *MalformedError")
			}
			var me *MalformedError
			if !errors.As(err, &me) {
				t.Errorf("Load() error = %v (%T), want *MalformedError", err, err)
			}
		})
	}
}
