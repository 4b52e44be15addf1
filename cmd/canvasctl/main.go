package main

import (
	"os"

	"github.com/aiscreen-io/canvasctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
