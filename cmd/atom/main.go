package main

import (
	"os"

	"github.com/atomlabs/atom/cmd/atom/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
