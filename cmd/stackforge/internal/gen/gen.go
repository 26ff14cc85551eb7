// Package gen implements the default command: run the full pipeline.
package gen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/broady/stackforge"
	"github.com/broady/stackforge/spec"
)

type Cmd struct {
	File    string `help:"Spec file to compile." short:"f" default:"stackforge.yaml"`
	Out     string `help:"Destination directory for generated artifacts." short:"o" default:"."`
	Verbose bool   `help:"Log pipeline progress." short:"v"`
}

func (c *Cmd) Run() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level(c.Verbose),
	}))

	project, err := spec.LoadFile(c.File)
	if err != nil {
		return err
	}
	logger.Debug("spec loaded", slog.String("file", c.File), slog.Int("services", len(project.Services)))

	result, err := stackforge.Compile(context.Background(), project, &stackforge.Config{OutDir: c.Out})
	if err != nil {
		var vf *stackforge.ValidationFailure
		if errors.As(err, &vf) {
			for _, verr := range vf.Errors {
				fmt.Fprintf(os.Stderr, "error[%s]: %s\n", verr.Code, verr.Error())
			}
			return fmt.Errorf("%d validation error(s), nothing generated", len(vf.Errors))
		}
		return err
	}

	for _, unit := range result.Promoted {
		logger.Debug("unit promoted", slog.String("unit", unit))
	}

	printTopology(result)

	if !result.Ok() {
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "error: %s\n", f.Error())
		}
		return fmt.Errorf("%d unit(s) failed", len(result.Failures))
	}
	return nil
}

// printTopology confirms the resolved topology after a run: ports,
// routes and topics, one line each.
func printTopology(result *stackforge.Result) {
	p := result.Project
	fmt.Printf("project %s: %d service(s), gateway on :%d\n", p.Name, len(p.Services), p.GatewayPort)
	for _, svc := range p.Services {
		fmt.Printf("  %-20s %s/%s/%s  :%d  %s\n",
			svc.Name, svc.Runtime, svc.Database, svc.Pattern, svc.Port, svc.RoutePrefix)
	}
	if len(p.Topics) > 0 {
		fmt.Printf("  topics: %v\n", p.Topics)
	}
}

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
