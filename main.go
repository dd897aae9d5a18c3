package main

import (
	"os"

	"github.com/bvggrabber/bvg-cli/cmd"

	_ "time/tzdata"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
