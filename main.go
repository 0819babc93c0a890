package main

import (
	"os"

	"github.com/abhisek/cfdroid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
