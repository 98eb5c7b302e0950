package main

import (
	"os"

	"github.com/replusdev/replus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
