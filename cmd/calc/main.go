package main

import (
	"os"

	"github.com/zephyrtronium/calc/cmd/calc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
