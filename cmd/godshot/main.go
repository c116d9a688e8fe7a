package main

import (
	"os"

	"github.com/godshot/godshot/cmd/godshot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
