//go:build mage

package main

import (
	"fmt"
	"net/http"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Headless runs a few seconds of the game on the in-memory canvas and
// writes the last frame to canvas.png.
func (Run) Headless() error {
	fmt.Println("Run engine...")
	return hostGo.run("run", ".", "run", "--assets", staticDir, "--frames", "240", "--out", "canvas.png")
}

// Serve builds the wasm target and serves the static directory on :8080.
func (Run) Serve() error {
	mg.Deps(Build.Wasm)
	fmt.Println("Serving http://localhost:8080")
	return http.ListenAndServe(":8080", http.FileServer(http.Dir(staticDir)))
}
