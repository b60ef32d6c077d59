package main

import (
	"os"

	"github.com/LoopTracer/looptracer-landing/cmd/landing/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
