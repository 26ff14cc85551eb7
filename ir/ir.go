// Package ir defines the intermediate representation the compiler derives
// from a validated spec. The IR is built once, then treated as immutable,
// shared, read-only state: emitters and synthesizers only ever read it,
// which is what lets them run concurrently without coordination.
package ir

import "github.com/broady/stackforge/spec"

const (
	// GatewayPort is reserved for the API gateway and never allocated
	// to a service.
	GatewayPort = 8080

	// BasePort is the first service port. Service N (in spec insertion
	// order) listens on BasePort+N.
	BasePort = 5001

	// HashBcrypt is the canonical strategy id attached to hashed-string
	// fields. Fixing it here, rather than per emitter, is what keeps
	// hashing behavior consistent across the three runtimes.
	HashBcrypt = "bcrypt"
)

// Project is the fully resolved model shared by all emission and
// synthesis steps. Read-only after Build.
type Project struct {
	Name     string    `json:"project"`
	Services []Service `json:"services"`

	GatewayPort int `json:"gatewayPort"`

	// Topics is the union of all services' events, in first-declared
	// order. Services sharing a literal event name share a topic.
	Topics []string `json:"topics,omitempty"`

	UsesBroker   bool `json:"usesBroker"`
	UsesPostgres bool `json:"usesPostgres"`
	UsesMongo    bool `json:"usesMongo"`
}

// Service is the per-service slice of the IR.
type Service struct {
	Name     string        `json:"name"`
	Runtime  spec.Runtime  `json:"runtime"`
	Database spec.Database `json:"database"`
	Pattern  spec.Pattern  `json:"pattern"`

	// Port is BasePort + the service's position in the spec document.
	Port int `json:"port"`

	// RoutePrefix is the gateway path prefix: "/api/" + kebab(name).
	RoutePrefix string `json:"routePrefix"`

	Entities []Entity `json:"entities,omitempty"`
	Events   []string `json:"events,omitempty"`

	// CQRS marks each entity as needing separate command/query code paths.
	CQRS bool `json:"-"`

	// PublishesEvents marks entities as needing an outbound publish call
	// wired to every event listed for the service.
	PublishesEvents bool `json:"-"`
}

// Entity is a normalized entity ready for emission.
type Entity struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Field carries per-field codegen hints.
type Field struct {
	Name string         `json:"name"`
	Type spec.FieldType `json:"type"`

	// Hashed is set for hashed-string fields; HashStrategy names the
	// canonical one-way transform their accessors must route through.
	Hashed       bool   `json:"hashed,omitempty"`
	HashStrategy string `json:"hashStrategy,omitempty"`
}

// FindService looks up a service by name. Returns nil if not found.
func (p *Project) FindService(name string) *Service {
	for i := range p.Services {
		if p.Services[i].Name == name {
			return &p.Services[i]
		}
	}
	return nil
}
