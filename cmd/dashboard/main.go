package main

import (
	"os"

	"github.com/yukikurage/followup-tasks/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
