package main

import (
	"os"

	"github.com/dotlink/dotlink/pkg/output"
)

func main() {
	if err := Execute(); err != nil {
		output.RenderError(os.Stderr, err)
		os.Exit(1)
	}
}
