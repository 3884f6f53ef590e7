package main

import (
	"os"

	"github.com/naukri-ai/talent-ranker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
