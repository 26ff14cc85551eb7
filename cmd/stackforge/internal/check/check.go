// Package check implements spec validation without generation.
package check

import (
	"fmt"
	"os"

	"github.com/broady/stackforge/spec"
)

type Cmd struct {
	File string `help:"Spec file to validate." short:"f" default:"stackforge.yaml"`
}

func (c *Cmd) Run() error {
	project, err := spec.LoadFile(c.File)
	if err != nil {
		return err
	}

	errs := spec.Validate(project)
	if len(errs) > 0 {
		for _, verr := range errs {
			fmt.Fprintf(os.Stderr, "error[%s]: %s\n", verr.Code, verr.Error())
		}
		return fmt.Errorf("%d validation error(s)", len(errs))
	}

	fmt.Printf("%s: ok (%d service(s))\n", c.File, len(project.Services))
	return nil
}
