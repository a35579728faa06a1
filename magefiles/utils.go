//go:build mage

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// goTool invokes the go command mage was started with. Extra environment
// is layered over the current process environment.
type goTool struct {
	env map[string]string
}

var hostGo = goTool{}

var wasmGo = goTool{env: map[string]string{"GOOS": "js", "GOARCH": "wasm"}}

// run streams the command output to the console.
func (g goTool) run(args ...string) error {
	fmt.Printf("> go %s\n", strings.Join(args, " "))
	ran, err := sh.Exec(g.env, os.Stdout, os.Stderr, mg.GoCmd(), args...)
	if !ran {
		return fmt.Errorf("cannot start go: %w", err)
	}
	return err
}

// output returns the trimmed standard output of the command.
func (g goTool) output(args ...string) (string, error) {
	if mg.Verbose() {
		fmt.Printf("> go %s\n", strings.Join(args, " "))
	}
	return sh.OutputWith(g.env, mg.GoCmd(), args...)
}
