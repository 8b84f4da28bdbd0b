package main

import (
	"os"

	"github.com/milden6/dafsa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
