package main

import (
	"fmt"

	"github.com/fwojciec/ministry"
	"github.com/fwojciec/ministry/content"
)

// Run executes the copy command.
func (c *CopyCmd) Run(deps *Dependencies) error {
	if c.From == c.To {
		return ministry.Errorf(ministry.EINVALID, "--from and --to must differ")
	}

	src, err := deps.OpenStore(c.From)
	if err != nil {
		return err
	}
	dst, err := deps.OpenStore(c.To)
	if err != nil {
		return err
	}

	copied, err := content.Copy(deps.Ctx, dst, src)
	for _, name := range copied {
		fmt.Fprintf(deps.Stdout, "copied %s\n", name)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	if len(copied) == 0 {
		fmt.Fprintf(deps.Stdout, "Nothing to copy from %s.\n", c.From)
	}
	return nil
}
