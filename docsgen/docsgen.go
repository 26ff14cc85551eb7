// Package docsgen generates the topology documentation file from the
// finished project IR. It is a collaborator of the compiler core: it
// consumes the IR like any synthesizer and has no say in it.
package docsgen

import (
	"fmt"
	"strings"

	"github.com/broady/stackforge/gateway"
	"github.com/broady/stackforge/ir"
	"github.com/broady/stackforge/sink"
)

// Filename is the documentation file emitted at the project root.
const Filename = "TOPOLOGY.md"

// Synthesize stages TOPOLOGY.md: the resolved ports, routes, topics and
// dependencies of the compiled project. The file carries no timestamps,
// so repeated runs round-trip byte-identically.
func Synthesize(project *ir.Project) (*sink.Tree, error) {
	tree := sink.NewTree("docs")

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: resolved topology\n\n", project.Name)

	b.WriteString("## Services\n\n")
	b.WriteString("| Service | Runtime | Database | Pattern | Port | Route prefix |\n")
	b.WriteString("|---------|---------|----------|---------|------|--------------|\n")
	for _, svc := range project.Services {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | `%s` |\n",
			svc.Name, svc.Runtime, svc.Database, svc.Pattern, svc.Port, svc.RoutePrefix)
	}

	b.WriteString("\n## Gateway\n\n")
	fmt.Fprintf(&b, "Listens on port %d. JWT-protected routes:\n\n", project.GatewayPort)
	for _, r := range gateway.Routes(project) {
		fmt.Fprintf(&b, "- `%s` → `%s`\n", r.Prefix, r.Upstream)
	}
	fmt.Fprintf(&b, "\nRate limit: %d requests per %d minutes, keyed by client IP.\n",
		gateway.RateMaxRequests, gateway.RateWindowMinutes)

	if project.UsesBroker {
		b.WriteString("\n## Event topics\n\n")
		for _, t := range project.Topics {
			producers := producersOf(project, t)
			fmt.Fprintf(&b, "- `%s` (declared by %s)\n", t, strings.Join(producers, ", "))
		}
	}

	b.WriteString("\n## Infrastructure\n\n")
	if project.UsesPostgres {
		b.WriteString("- postgresql\n")
	}
	if project.UsesMongo {
		b.WriteString("- mongodb\n")
	}
	if project.UsesBroker {
		b.WriteString("- kafka (with zookeeper)\n")
	}

	if err := tree.WriteString(Filename, b.String()); err != nil {
		return nil, err
	}
	return tree, nil
}

func producersOf(project *ir.Project, topic string) []string {
	var out []string
	for _, svc := range project.Services {
		for _, ev := range svc.Events {
			if ev == topic {
				out = append(out, svc.Name)
				break
			}
		}
	}
	return out
}
