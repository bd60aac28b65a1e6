package main

import (
	"os"

	"github.com/insightdelivered/statement-scraper/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
