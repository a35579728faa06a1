//go:build js && wasm

package web

import (
	"strings"
	"syscall/js"
)

// Console writes log lines to the browser console.
type Console struct {
	// Method is the console method used, "log" when empty.
	Method string
}

func (c Console) Write(p []byte) (int, error) {
	m := c.Method
	if m == "" {
		m = "log"
	}
	js.Global().Get("console").Call(m, strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
