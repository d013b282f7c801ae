package main

import (
	"os"

	"github.com/dshills/gitbp/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
