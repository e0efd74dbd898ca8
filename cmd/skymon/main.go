package main

import (
	"os"

	"github.com/thacher/skymon/cmd/skymon/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
