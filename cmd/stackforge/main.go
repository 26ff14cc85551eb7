package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/stackforge/cmd/stackforge/internal/check"
	"github.com/broady/stackforge/cmd/stackforge/internal/gen"
	"github.com/broady/stackforge/cmd/stackforge/internal/inspect"
)

type CLI struct {
	Gen     gen.Cmd     `cmd:"" default:"withargs" help:"Compile stackforge.yaml into generated artifacts."`
	Check   check.Cmd   `cmd:"" help:"Validate the spec without generating files."`
	Inspect inspect.Cmd `cmd:"" help:"Serve the resolved topology over HTTP."`
	Version VersionCmd  `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("stackforge"),
		kong.Description("Compile a declarative backend spec into service scaffolds, an API gateway and an orchestration descriptor."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
