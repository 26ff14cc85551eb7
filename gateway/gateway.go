// Package gateway synthesizes the standalone API gateway scaffold from
// the project IR. It depends only on IR facts (names, ports, prefixes),
// never on any service's emitted code.
package gateway

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/broady/stackforge/ir"
	"github.com/broady/stackforge/sink"
)

// Rate limit policy applied globally, keyed by client IP.
const (
	RateWindowMinutes = 15
	RateMaxRequests   = 100
)

// UnitName is the destination directory of the gateway scaffold.
const UnitName = "api-gateway"

// Route is one proxy entry: requests under Prefix forward to Upstream.
type Route struct {
	Prefix   string
	Upstream string
	Service  string
}

// Routes derives the gateway route table: exactly one entry per service,
// in IR order, with pairwise distinct prefixes.
func Routes(project *ir.Project) []Route {
	routes := make([]Route, 0, len(project.Services))
	for _, svc := range project.Services {
		routes = append(routes, Route{
			Prefix:   svc.RoutePrefix,
			Upstream: "http://" + svc.Name + ":" + strconv.Itoa(svc.Port),
			Service:  svc.Name,
		})
	}
	return routes
}

// Synthesize stages the gateway scaffold: JWT validation ahead of all
// proxied routes, a fixed /auth/login endpoint, and the global rate
// limit policy.
func Synthesize(project *ir.Project) (*sink.Tree, error) {
	tree := sink.NewTree(UnitName)
	data := struct {
		Project string
		Port    int
		Routes  []Route
		Window  int
		Max     int
	}{
		Project: project.Name,
		Port:    project.GatewayPort,
		Routes:  Routes(project),
		Window:  RateWindowMinutes,
		Max:     RateMaxRequests,
	}

	for path, name := range map[string]string{
		"package.json": "package",
		"src/index.js": "index",
		".env.example": "env",
		"Dockerfile":   "dockerfile",
	} {
		var b strings.Builder
		if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
			return nil, err
		}
		if err := tree.WriteString(path, b.String()); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

var tmpl = template.Must(template.New("gateway").Parse(templates))
