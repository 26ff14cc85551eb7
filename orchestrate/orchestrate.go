// Package orchestrate synthesizes the multi-container topology
// descriptor (docker-compose.yml) from the project IR. The document is
// built as an ordered YAML node tree so repeated runs emit byte-identical
// output regardless of map iteration order.
package orchestrate

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/broady/stackforge/gateway"
	"github.com/broady/stackforge/ir"
	"github.com/broady/stackforge/sink"
)

// Filename is the descriptor's name at the project root.
const Filename = "docker-compose.yml"

// Infrastructure image pins. One entry per technology actually used.
const (
	imagePostgres  = "postgres:16-alpine"
	imageMongo     = "mongo:7"
	imageZookeeper = "confluentinc/cp-zookeeper:7.6.0"
	imageKafka     = "confluentinc/cp-kafka:7.6.0"

	network = "backend"
)

// Synthesize stages the orchestration descriptor: one infrastructure
// entry per distinct database technology in use, a broker+coordinator
// pair only if any service declares events, one entry per service (start
// after its database and, with events, the broker), and the gateway
// (start after every service).
func Synthesize(project *ir.Project) (*sink.Tree, error) {
	tree := sink.NewTree("orchestration")

	var services []*yaml.Node
	addService := func(name string, body *yaml.Node) {
		services = append(services, str(name), body)
	}

	if project.UsesPostgres {
		addService("postgres", mapping(
			"image", str(imagePostgres),
			"environment", seq(
				str("POSTGRES_USER=${POSTGRES_USER:-app}"),
				str("POSTGRES_PASSWORD=${POSTGRES_PASSWORD:-app}"),
			),
			"volumes", seq(str("postgres-data:/var/lib/postgresql/data")),
			"networks", seq(str(network)),
		))
	}
	if project.UsesMongo {
		addService("mongodb", mapping(
			"image", str(imageMongo),
			"volumes", seq(str("mongo-data:/data/db")),
			"networks", seq(str(network)),
		))
	}
	if project.UsesBroker {
		addService("zookeeper", mapping(
			"image", str(imageZookeeper),
			"environment", seq(
				str("ZOOKEEPER_CLIENT_PORT=2181"),
				str("ZOOKEEPER_TICK_TIME=2000"),
			),
			"networks", seq(str(network)),
		))
		addService("kafka", mapping(
			"image", str(imageKafka),
			"depends_on", seq(str("zookeeper")),
			"environment", seq(
				str("KAFKA_BROKER_ID=1"),
				str("KAFKA_ZOOKEEPER_CONNECT=zookeeper:2181"),
				str("KAFKA_ADVERTISED_LISTENERS=PLAINTEXT://kafka:9092"),
				str("KAFKA_OFFSETS_TOPIC_REPLICATION_FACTOR=1"),
			),
			"networks", seq(str(network)),
		))
	}

	var serviceNames []*yaml.Node
	for _, svc := range project.Services {
		serviceNames = append(serviceNames, str(svc.Name))
		addService(svc.Name, serviceEntry(svc))
	}

	addService(gateway.UnitName, mapping(
		"build", str("./"+gateway.UnitName),
		"ports", seq(str(fmt.Sprintf("%d:%d", project.GatewayPort, project.GatewayPort))),
		"environment", seq(
			str("PORT="+strconv.Itoa(project.GatewayPort)),
			str("JWT_SECRET=${JWT_SECRET:-change-me}"),
		),
		"depends_on", &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: serviceNames},
		"networks", seq(str(network)),
	))

	root := mapping(
		"name", str(project.Name),
		"services", &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: services},
		"networks", mapping(network, mapping("driver", str("bridge"))),
	)

	if project.UsesPostgres || project.UsesMongo {
		var vols []*yaml.Node
		if project.UsesPostgres {
			vols = append(vols, str("postgres-data"), emptyMap())
		}
		if project.UsesMongo {
			vols = append(vols, str("mongo-data"), emptyMap())
		}
		root.Content = append(root.Content, str("volumes"),
			&yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: vols})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("marshal orchestration descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal orchestration descriptor: %w", err)
	}
	if err := tree.WriteFile(Filename, buf.Bytes()); err != nil {
		return nil, err
	}
	return tree, nil
}

func serviceEntry(svc ir.Service) *yaml.Node {
	env := []*yaml.Node{
		str("PORT=" + strconv.Itoa(svc.Port)),
		str("DATABASE_URL=" + databaseURL(svc)),
	}
	deps := []*yaml.Node{str(databaseName(svc))}
	if len(svc.Events) > 0 {
		env = append(env, str("KAFKA_BROKERS=kafka:9092"))
		deps = append(deps, str("kafka"))
	}

	return mapping(
		"build", str("./services/"+svc.Name),
		"ports", seq(str(fmt.Sprintf("%d:%d", svc.Port, svc.Port))),
		"environment", &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: env},
		"depends_on", &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: deps},
		"networks", seq(str(network)),
	)
}

func databaseName(svc ir.Service) string {
	if svc.Database == "mongodb" {
		return "mongodb"
	}
	return "postgres"
}

func databaseURL(svc ir.Service) string {
	if svc.Database == "mongodb" {
		return "mongodb://mongodb:27017/" + svc.Name
	}
	return "postgres://${POSTGRES_USER:-app}:${POSTGRES_PASSWORD:-app}@postgres:5432/" + svc.Name
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func seq(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

func emptyMap() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// mapping builds a mapping node from alternating key/value arguments.
// Keys given as strings are wrapped; *yaml.Node values pass through.
func mapping(kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, item := range kv {
		switch v := item.(type) {
		case string:
			n.Content = append(n.Content, str(v))
		case *yaml.Node:
			n.Content = append(n.Content, v)
		}
	}
	return n
}
