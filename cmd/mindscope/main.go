package main

import (
	"os"

	"github.com/abhisek/mindscope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
