package ir

import "github.com/broady/stackforge/spec"

// Build derives the IR from a validated spec. It is total: validity was
// established upstream, so Build cannot fail. All derived facts (ports,
// route prefixes, topics, codegen hints) are pure functions of the spec's
// ordered content, so re-running is deterministic.
func Build(p *spec.Project) *Project {
	out := &Project{
		Name:        p.Name,
		GatewayPort: GatewayPort,
		Services:    make([]Service, 0, len(p.Services)),
	}

	seenTopic := make(map[string]bool)
	for i, s := range p.Services {
		svc := Service{
			Name:            s.Name,
			Runtime:         s.Runtime,
			Database:        s.Database,
			Pattern:         s.Pattern,
			Port:            BasePort + i,
			RoutePrefix:     "/api/" + spec.Kebab(s.Name),
			Events:          append([]string(nil), s.Events...),
			CQRS:            s.Pattern == spec.PatternCQRS,
			PublishesEvents: s.Pattern == spec.PatternEventDriven,
		}

		for _, e := range s.Entities {
			ent := Entity{Name: e.Name, Fields: make([]Field, 0, len(e.Fields))}
			for _, f := range e.Fields {
				fld := Field{Name: f.Name, Type: f.Type}
				if f.Type == spec.FieldHashed {
					fld.Hashed = true
					fld.HashStrategy = HashBcrypt
				}
				ent.Fields = append(ent.Fields, fld)
			}
			svc.Entities = append(svc.Entities, ent)
		}

		switch s.Database {
		case spec.DatabasePostgres:
			out.UsesPostgres = true
		case spec.DatabaseMongo:
			out.UsesMongo = true
		}

		for _, ev := range s.Events {
			if !seenTopic[ev] {
				seenTopic[ev] = true
				out.Topics = append(out.Topics, ev)
			}
		}

		out.Services = append(out.Services, svc)
	}

	out.UsesBroker = len(out.Topics) > 0
	return out
}
