package main

import (
	"os"

	"github.com/jimaku-dev/jimaku/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
