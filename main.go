package main

import (
	"os"

	"github.com/abhisek/waddle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
