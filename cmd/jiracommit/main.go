package main

import (
	"os"

	"github.com/nemwiz/jiracommit/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
