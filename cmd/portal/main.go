package main

import (
	"os"

	"github.com/nyumbanet/portal-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
