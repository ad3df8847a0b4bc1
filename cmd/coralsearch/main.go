package main

import (
	"os"

	"github.com/coral-tools/coralsearch/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
