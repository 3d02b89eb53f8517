// Command examcorpus extracts exam questions and searches them by meaning.
package main

import (
	"os"

	"github.com/adripedrejon/examcorpus/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
