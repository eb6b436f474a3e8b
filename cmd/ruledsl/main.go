// Command ruledsl is the CLI front end for the rules DSL engine: lex,
// parse, validate, evaluate, and format rule sources.
package main

import (
	"fmt"
	"os"

	"github.com/fireflyframework/rule-engine-go/cmd/ruledsl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
