//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const staticDir = "static"

type Build mg.Namespace

// Wasm compiles the browser build into static/main.wasm and copies the Go
// wasm support script next to it.
func (Build) Wasm() error {
	if err := wasmGo.run("build", "-o", filepath.Join(staticDir, "main.wasm"), "."); err != nil {
		return err
	}
	return copyWasmExec()
}

// Native builds the headless command line binary.
func (Build) Native() error {
	return hostGo.run("build", "-o", "bin/walkthedog", ".")
}

func copyWasmExec() error {
	goroot, err := hostGo.output("env", "GOROOT")
	if err != nil {
		return err
	}
	// The script moved from misc/wasm to lib/wasm in Go 1.24.
	for _, dir := range []string{"lib", "misc"} {
		src := filepath.Join(goroot, dir, "wasm", "wasm_exec.js")
		b, err := os.ReadFile(src)
		if err != nil {
			continue
		}
		fmt.Printf("Copying %s\n", src)
		return os.WriteFile(filepath.Join(staticDir, "wasm_exec.js"), b, 0o644)
	}
	return fmt.Errorf("wasm_exec.js not found under %s", goroot)
}
