package ir

import (
	"testing"

	"github.com/broady/stackforge/spec"
)

func sampleSpec() *spec.Project {
	return &spec.Project{
		Name: "shop",
		Services: []spec.Service{
			{
				Name:     "user",
				Runtime:  spec.RuntimeDotnet,
				Database: spec.DatabasePostgres,
				Pattern:  spec.PatternCQRS,
				Entities: []spec.Entity{{
					Name: "User",
					Fields: []spec.Field{
						{Name: "email", Type: spec.FieldString},
						{Name: "password", Type: spec.FieldHashed},
					},
				}},
			},
			{
				Name:     "order",
				Runtime:  spec.RuntimeNode,
				Database: spec.DatabaseMongo,
				Pattern:  spec.PatternEventDriven,
				Events:   []string{"OrderCreated", "OrderShipped"},
			},
			{
				Name:     "billing",
				Runtime:  spec.RuntimeJava,
				Database: spec.DatabasePostgres,
				Pattern:  spec.PatternNTier,
				Events:   []string{"OrderCreated", "InvoiceIssued"},
			},
		},
	}
}

func TestBuildPorts(t *testing.T) {
	p := Build(sampleSpec())

	wantPorts := []int{5001, 5002, 5003}
	for i, svc := range p.Services {
		if svc.Port != wantPorts[i] {
			t.Errorf("Services[%d].Port = %d, want %d", i, svc.Port, wantPorts[i])
		}
	}

	// Ports are pairwise distinct and never the gateway's.
	seen := make(map[int]bool)
	for _, svc := range p.Services {
		if svc.Port == p.GatewayPort {
			t.Errorf("service %s allocated the gateway port %d", svc.Name, p.GatewayPort)
		}
		if seen[svc.Port] {
			t.Errorf("port %d allocated twice", svc.Port)
		}
		seen[svc.Port] = true
	}
}

func TestBuildRoutePrefixes(t *testing.T) {
	p := Build(sampleSpec())
	want := []string{"/api/user", "/api/order", "/api/billing"}
	for i, svc := range p.Services {
		if svc.RoutePrefix != want[i] {
			t.Errorf("Services[%d].RoutePrefix = %q, want %q", i, svc.RoutePrefix, want[i])
		}
	}
}

func TestBuildTopics(t *testing.T) {
	p := Build(sampleSpec())

	// Union of all events in first-declared order; the literal name
	// shared by order and billing appears once.
	want := []string{"OrderCreated", "OrderShipped", "InvoiceIssued"}
	if len(p.Topics) != len(want) {
		t.Fatalf("Topics = %v, want %v", p.Topics, want)
	}
	for i, topic := range p.Topics {
		if topic != want[i] {
			t.Errorf("Topics[%d] = %q, want %q", i, topic, want[i])
		}
	}
	if !p.UsesBroker {
		t.Error("UsesBroker = false, want true")
	}
}

func TestBuildDatabaseFlags(t *testing.T) {
	p := Build(sampleSpec())
	if !p.UsesPostgres || !p.UsesMongo {
		t.Errorf("UsesPostgres/UsesMongo = %v/%v, want true/true", p.UsesPostgres, p.UsesMongo)
	}

	noEvents := &spec.Project{Name: "solo", Services: []spec.Service{{
		Name: "api", Runtime: spec.RuntimeJava, Database: spec.DatabasePostgres, Pattern: spec.PatternNTier,
	}}}
	q := Build(noEvents)
	if q.UsesBroker {
		t.Error("UsesBroker = true for a spec with no events")
	}
	if q.UsesMongo {
		t.Error("UsesMongo = true for a postgres-only spec")
	}
}

func TestBuildPatternHints(t *testing.T) {
	p := Build(sampleSpec())
	if !p.Services[0].CQRS || p.Services[0].PublishesEvents {
		t.Errorf("user hints = CQRS:%v Publishes:%v, want true/false", p.Services[0].CQRS, p.Services[0].PublishesEvents)
	}
	if p.Services[1].CQRS || !p.Services[1].PublishesEvents {
		t.Errorf("order hints = CQRS:%v Publishes:%v, want false/true", p.Services[1].CQRS, p.Services[1].PublishesEvents)
	}
	if p.Services[2].CQRS || p.Services[2].PublishesEvents {
		t.Errorf("billing hints = CQRS:%v Publishes:%v, want false/false", p.Services[2].CQRS, p.Services[2].PublishesEvents)
	}
}

func TestBuildHashedFields(t *testing.T) {
	p := Build(sampleSpec())
	fields := p.Services[0].Entities[0].Fields

	if fields[0].Hashed || fields[0].HashStrategy != "" {
		t.Errorf("email = %+v, want no hashing hint", fields[0])
	}
	if !fields[1].Hashed || fields[1].HashStrategy != HashBcrypt {
		t.Errorf("password = %+v, want Hashed with strategy %q", fields[1], HashBcrypt)
	}
}

// Build is a pure function of the ordered spec: two runs agree exactly.
func TestBuildDeterministic(t *testing.T) {
	a, b := Build(sampleSpec()), Build(sampleSpec())
	if len(a.Services) != len(b.Services) {
		t.Fatal("service counts differ")
	}
	for i := range a.Services {
		if a.Services[i].Port != b.Services[i].Port || a.Services[i].RoutePrefix != b.Services[i].RoutePrefix {
			t.Errorf("Services[%d] differs between runs", i)
		}
	}
}
