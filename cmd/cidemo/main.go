// Command cidemo runs the calculator and text utilities from the command line.
package main

import (
	"os"

	"github.com/roach88/cidemo/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
