package main

import (
	"os"

	"github.com/brewkeeper/brewkeeper/cmd/brewkeeper/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
