package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/parser"
	"github.com/fireflyframework/rule-engine-go/internal/semantic"
)

var validateKnownFuncs []string

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse and semantically validate a rule document",
	Long: `Parse a rule document and run the semantic validator (spec §4.3),
reporting every VAL_* diagnostic found. Exits non-zero if any Error-
severity diagnostic is present.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringSliceVar(&validateKnownFuncs, "known-func", nil, "restrict function-reference checks to these registered names (repeatable)")
}

func runValidate(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	doc, perrs := parser.ParseDocument(string(content))
	if diag.List(perrs).HasErrors() {
		for _, d := range diag.List(perrs).Errors() {
			fmt.Fprintln(os.Stderr, d.Format(string(content), false))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(diag.List(perrs).Errors()))
	}

	var opts []semantic.Option
	if len(validateKnownFuncs) > 0 {
		opts = append(opts, semantic.WithKnownFunctions(validateKnownFuncs))
	}
	diags := semantic.Validate(doc, opts...)

	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Format(string(content), false))
	}

	if diag.List(diags).HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", len(diag.List(diags).Errors()))
	}
	fmt.Printf("document %q is valid\n", doc.Name)
	return nil
}
