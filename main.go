package main

import (
	"os"

	"github.com/bgdnvk/pcmkctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
