// periodo - command-line client for the periodization data service.
package main

import (
	"os"

	"github.com/periodo/periodo-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
