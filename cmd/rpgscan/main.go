// Command rpgscan reports every use of an RPG Maker variable or switch.
package main

import (
	"os"

	"github.com/roach88/rpgscan/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
