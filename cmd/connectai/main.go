// Package main is the entry point for the connectai CLI binary.
package main

import (
	"os"

	cli "github.com/jerodj-cdata/connectai-go/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
