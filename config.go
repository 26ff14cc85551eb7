package stackforge

import (
	"time"

	"github.com/broady/stackforge/emit"
	"github.com/broady/stackforge/emit/dotnet"
	"github.com/broady/stackforge/emit/java"
	"github.com/broady/stackforge/emit/nodejs"
	"github.com/broady/stackforge/spec"
)

// Config holds the configuration for a compile run.
type Config struct {
	// OutDir is the destination root for generated artifacts.
	// e.g. "." to generate into the invocation directory.
	OutDir string

	// Emitters maps each runtime to its adapter. Leave nil for the
	// built-in set; tests substitute adapters here.
	Emitters map[spec.Runtime]emit.Emitter

	// Now supplies the generation timestamp recorded in the manifest.
	// Leave nil for time.Now. Everything outside the manifest is a pure
	// function of the spec, so this is the only clock in the pipeline.
	Now func() time.Time
}

// DefaultEmitters returns the built-in emitter set, one adapter per
// supported runtime.
func DefaultEmitters() map[spec.Runtime]emit.Emitter {
	return map[spec.Runtime]emit.Emitter{
		spec.RuntimeDotnet: dotnet.New(),
		spec.RuntimeJava:   java.New(),
		spec.RuntimeNode:   nodejs.New(),
	}
}

func (c *Config) emitters() map[spec.Runtime]emit.Emitter {
	if c.Emitters != nil {
		return c.Emitters
	}
	return DefaultEmitters()
}

func (c *Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
