package main

import (
	"os"

	"github.com/benchkit/benchkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
