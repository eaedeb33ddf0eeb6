package main

import (
	"os"

	"kanban-cli/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cli.Execute(cmd); err != nil {
		os.Exit(1)
	}
}
