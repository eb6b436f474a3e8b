package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fireflyframework/rule-engine-go/internal/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a DSL expression/condition/action fragment",
	Long: `Tokenize a single expression, condition, or action fragment (not a
full YAML rule document — use 'ruledsl parse' for that) and print its
token stream.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	l := lexer.New(string(content))
	tokens := l.Tokenize()

	for _, t := range tokens {
		fmt.Printf("%-20s %-12q line=%d col=%d\n", t.Type, t.Lexeme, t.Location.Line, t.Location.Column)
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Diagnostic().Format(string(content), false))
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}
