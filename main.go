package main

import (
	"os"

	"github.com/pordosol/pordosol-ls/internal/cli"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	os.Exit(cli.Execute())
}
