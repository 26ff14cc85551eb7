package spec

import "testing"

func validProject() *Project {
	return &Project{
		Name: "shop",
		Services: []Service{
			{
				Name:     "user",
				Runtime:  RuntimeDotnet,
				Database: DatabasePostgres,
				Pattern:  PatternCQRS,
				Entities: []Entity{{
					Name: "User",
					Fields: []Field{
						{Name: "email", Type: FieldString},
						{Name: "password", Type: FieldHashed},
					},
				}},
			},
			{
				Name:     "order",
				Runtime:  RuntimeNode,
				Database: DatabaseMongo,
				Pattern:  PatternEventDriven,
				Events:   []string{"OrderCreated"},
			},
		},
	}
}

func TestValidateOK(t *testing.T) {
	if errs := Validate(validProject()); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}
}

func TestValidateSingleViolations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Project)
		wantCode string
	}{
		{
			name:     "missing project name",
			mutate:   func(p *Project) { p.Name = "" },
			wantCode: "missing_project_name",
		},
		{
			name:     "project name with slash",
			mutate:   func(p *Project) { p.Name = "a/b" },
			wantCode: "invalid_project_name",
		},
		{
			name:     "no services",
			mutate:   func(p *Project) { p.Services = nil },
			wantCode: "no_services",
		},
		{
			name:     "empty service name",
			mutate:   func(p *Project) { p.Services[0].Name = "" },
			wantCode: "empty_service_name",
		},
		{
			name:     "unsafe service name",
			mutate:   func(p *Project) { p.Services[0].Name = "user service" },
			wantCode: "invalid_service_name",
		},
		{
			name:     "duplicate service",
			mutate:   func(p *Project) { p.Services[1].Name = "user" },
			wantCode: "duplicate_service",
		},
		{
			name:     "reserved service name",
			mutate:   func(p *Project) { p.Services[0].Name = "postgres" },
			wantCode: "reserved_service_name",
		},
		{
			name: "colliding route prefixes",
			mutate: func(p *Project) {
				p.Services[0].Name = "userProfile"
				p.Services[1].Name = "user-profile"
			},
			wantCode: "duplicate_route_prefix",
		},
		{
			name:     "unknown runtime",
			mutate:   func(p *Project) { p.Services[0].Runtime = "cobol" },
			wantCode: "unknown_runtime",
		},
		{
			name:     "unknown database",
			mutate:   func(p *Project) { p.Services[0].Database = "dbase" },
			wantCode: "unknown_database",
		},
		{
			name:     "unknown pattern",
			mutate:   func(p *Project) { p.Services[0].Pattern = "microkernel" },
			wantCode: "unknown_pattern",
		},
		{
			name:     "duplicate entity",
			mutate:   func(p *Project) { p.Services[0].Entities = append(p.Services[0].Entities, Entity{Name: "User"}) },
			wantCode: "duplicate_entity",
		},
		{
			name: "duplicate field",
			mutate: func(p *Project) {
				e := &p.Services[0].Entities[0]
				e.Fields = append(e.Fields, Field{Name: "email", Type: FieldString})
			},
			wantCode: "duplicate_field",
		},
		{
			name: "unknown field type",
			mutate: func(p *Project) {
				e := &p.Services[0].Entities[0]
				e.Fields = append(e.Fields, Field{Name: "age", Type: "uuid"})
			},
			wantCode: "unknown_field_type",
		},
		{
			name:     "empty event name",
			mutate:   func(p *Project) { p.Services[1].Events = append(p.Services[1].Events, "") },
			wantCode: "empty_event_name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			tt.mutate(p)
			errs := Validate(p)
			if len(errs) == 0 {
				t.Fatal("Validate() = no errors, want at least one")
			}
			found := false
			for _, e := range errs {
				if e.Code == tt.wantCode {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want an error with code %q", errs, tt.wantCode)
			}
		})
	}
}

// Validation must not fail fast: independent violations are all reported
// from one run.
func TestValidateCollectsAllViolations(t *testing.T) {
	p := validProject()
	p.Services[0].Runtime = "cobol"       // unknown_runtime
	p.Services[1].Name = "user"           // duplicate_service
	p.Services[1].Database = "dbase"      // unknown_database
	p.Services[0].Entities[0].Fields = append(p.Services[0].Entities[0].Fields,
		Field{Name: "x", Type: "uuid"}) // unknown_field_type

	errs := Validate(p)
	if len(errs) < 4 {
		t.Fatalf("Validate() reported %d error(s), want at least 4: %v", len(errs), errs)
	}

	codes := make(map[string]bool)
	for _, e := range errs {
		codes[e.Code] = true
	}
	for _, want := range []string{"unknown_runtime", "duplicate_service", "unknown_database", "unknown_field_type"} {
		if !codes[want] {
			t.Errorf("missing code %q in %v", want, errs)
		}
	}
}

// Distinct names that kebab-case to the same route prefix segment would
// give the gateway two proxies on one path, with the second silently
// shadowed. Mixed-case names themselves stay legal.
func TestValidateRoutePrefixCollision(t *testing.T) {
	p := validProject()
	p.Services[0].Name = "userProfile"
	if errs := Validate(p); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors for a lone mixed-case name", errs)
	}

	p.Services[1].Name = "user-profile"
	errs := Validate(p)
	if len(errs) != 1 {
		t.Fatalf("Validate() = %v, want exactly one error", errs)
	}
	if errs[0].Code != "duplicate_route_prefix" {
		t.Errorf("code = %q, want duplicate_route_prefix", errs[0].Code)
	}
}

// Names of containers the compiler synthesizes itself cannot be claimed
// by a service: the orchestration descriptor would end up with two
// entries under one key.
func TestValidateReservedNames(t *testing.T) {
	for _, name := range []string{"postgres", "mongodb", "zookeeper", "kafka", "api-gateway"} {
		p := validProject()
		p.Services[0].Name = name
		errs := Validate(p)
		if len(errs) != 1 || errs[0].Code != "reserved_service_name" {
			t.Errorf("Validate() with service %q = %v, want one reserved_service_name error", name, errs)
		}
	}
}

// Events are declarative: an event nobody consumes is valid.
func TestValidateDeclarativeEvents(t *testing.T) {
	p := validProject()
	p.Services[1].Events = []string{"OrderCreated", "NeverConsumed"}
	if errs := Validate(p); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"user", true},
		{"user-service", true},
		{"svc2", true},
		{"", false},
		{"user service", false},
		{"user/service", false},
		{"user_service", false},
		{"-user", false},
	}
	for _, tt := range tests {
		if got := safeName(tt.name); got != tt.ok {
			t.Errorf("safeName(%q) = %v, want %v", tt.name, got, tt.ok)
		}
	}
}
