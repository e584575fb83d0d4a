// Command assertgrant runs the JWT bearer assertion grant server and
// manages its client and owner registries.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
