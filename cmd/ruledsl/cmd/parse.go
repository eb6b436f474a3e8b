package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/parser"
)

var dumpASTFlag bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a YAML rule document and report diagnostics",
	Long: `Parse a full YAML rule document (spec §3.4, §4.1-§4.2) and report any
PARSE_*/LEX_* diagnostics. With --dump-ast, also prints the parsed AST.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&dumpASTFlag, "dump-ast", false, "dump the parsed AST (for debugging)")
}

func runParse(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	doc, errs := parser.ParseDocument(string(content))
	if diag.List(errs).HasErrors() {
		for _, d := range diag.List(errs).Errors() {
			fmt.Fprintln(os.Stderr, d.Format(string(content), false))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(diag.List(errs).Errors()))
	}

	for _, d := range diag.List(errs).Warnings() {
		fmt.Fprintln(os.Stderr, d.Format(string(content), false))
	}

	if dumpASTFlag {
		fmt.Print(ast.Dump(doc))
	} else {
		fmt.Printf("parsed document %q OK\n", doc.Name)
	}
	return nil
}
