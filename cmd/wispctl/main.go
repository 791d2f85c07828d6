package main

import (
	"os"

	"github.com/mmynk/wispgen/cmd/wispctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
