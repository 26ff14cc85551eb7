package spec

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// safeName reports whether s can be used as a directory name, a route
// prefix segment and a container hostname. RFC 1123 hostname labels cover
// all three: letters, digits and interior hyphens only.
func safeName(s string) bool {
	return validate.Var(s, "required,max=63,hostname_rfc1123") == nil
}

// reservedNames are container names the compiler synthesizes itself:
// infrastructure entries in the orchestration descriptor and the gateway
// unit. A service with one of these names would collide with them.
var reservedNames = map[string]bool{
	"postgres":    true,
	"mongodb":     true,
	"zookeeper":   true,
	"kafka":       true,
	"api-gateway": true,
}

// Validate checks a loaded project and returns every violation found.
// It never fails fast: all services, entities and fields are checked so a
// user can fix every issue from one run. A nil or empty result means the
// project is valid and ready for IR construction.
func Validate(p *Project) []*Error {
	var errs []*Error
	add := func(code, where, format string, args ...any) {
		errs = append(errs, &Error{Code: code, Where: where, Message: fmt.Sprintf(format, args...)})
	}

	if p.Name == "" {
		add("missing_project_name", "project", "projectName is required")
	} else if !safeName(p.Name) {
		add("invalid_project_name", "project", "projectName %q is not a safe identifier", p.Name)
	}

	if len(p.Services) == 0 {
		add("no_services", "project", "at least one service is required")
	}

	seen := make(map[string]bool, len(p.Services))
	prefixOwner := make(map[string]string, len(p.Services))
	for _, s := range p.Services {
		where := "service " + s.Name

		switch {
		case s.Name == "":
			add("empty_service_name", "service", "service name must not be empty")
		case !safeName(s.Name):
			add("invalid_service_name", where, "name %q is not filesystem- and URL-safe", s.Name)
		case reservedNames[s.Name]:
			add("reserved_service_name", where, "name %q is reserved for a synthesized container", s.Name)
		case seen[s.Name]:
			add("duplicate_service", where, "duplicate service name %q", s.Name)
		default:
			// Distinct names can still collide once kebab-cased for the
			// route prefix ("userProfile" vs "user-profile"): the gateway
			// would mount two proxies on the same path.
			seg := Kebab(s.Name)
			if owner, taken := prefixOwner[seg]; taken {
				add("duplicate_route_prefix", where,
					"names %q and %q map to the same route prefix segment %q", owner, s.Name, seg)
			} else {
				prefixOwner[seg] = s.Name
			}
		}
		seen[s.Name] = true

		if !KnownRuntime(s.Runtime) {
			add("unknown_runtime", where, "unknown runtime %q (supported: dotnet, java, nodejs)", s.Runtime)
		}
		if !KnownDatabase(s.Database) {
			add("unknown_database", where, "unknown database %q (supported: postgresql, mongodb)", s.Database)
		}
		if !KnownPattern(s.Pattern) {
			add("unknown_pattern", where, "unknown pattern %q (supported: cqrs, event-driven, n-tier)", s.Pattern)
		}

		validateEntities(s, add)

		for _, ev := range s.Events {
			if ev == "" {
				add("empty_event_name", where, "event name must not be empty")
			}
		}
	}
	return errs
}

func validateEntities(s Service, add func(code, where, format string, args ...any)) {
	seenEnt := make(map[string]bool, len(s.Entities))
	for _, e := range s.Entities {
		where := fmt.Sprintf("service %s entity %s", s.Name, e.Name)

		switch {
		case e.Name == "":
			add("empty_entity_name", "service "+s.Name, "entity name must not be empty")
		case seenEnt[e.Name]:
			add("duplicate_entity", where, "duplicate entity name %q", e.Name)
		}
		seenEnt[e.Name] = true

		seenField := make(map[string]bool, len(e.Fields))
		for _, f := range e.Fields {
			fwhere := where + " field " + f.Name
			switch {
			case f.Name == "":
				add("empty_field_name", where, "field name must not be empty")
			case seenField[f.Name]:
				add("duplicate_field", fwhere, "duplicate field name %q", f.Name)
			}
			seenField[f.Name] = true

			if !KnownFieldType(f.Type) {
				add("unknown_field_type", fwhere,
					"unknown field type %q (supported: string, int, float, bool, datetime, hashed-string)", f.Type)
			}
		}
	}
}
