// Command formtree builds forms from YAML or JSON definitions and OpenAPI
// documents: it renders them, validates submissions against them, and fills
// them interactively.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
