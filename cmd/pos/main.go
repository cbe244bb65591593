package main

import (
	"os"

	"github.com/lumistudio/pos/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
