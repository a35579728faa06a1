//go:build !(js && wasm)

/*
This is the native entry point: it runs the testbed game on the
headless host.
*/
package main

import (
	"os"

	"github.com/spaghettifunk/walkthedog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
