package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/evaluator"
	"github.com/fireflyframework/rule-engine-go/internal/parser"
	"github.com/fireflyframework/rule-engine-go/internal/semantic"
)

var (
	evalInputsPath string
	evalScale      int32
	evalSkipVal    bool
)

var evalCmd = &cobra.Command{
	Use:   "eval <file>",
	Short: "Parse, validate, and evaluate a rule document against inputs",
	Long: `Evaluate a rule document (spec §4.4) against a JSON object of input
values and print the Result as JSON.

Examples:
  ruledsl eval loan.yaml --inputs inputs.json
  echo '{"creditScore": 700}' | ruledsl eval loan.yaml --inputs -`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalInputsPath, "inputs", "", "path to a JSON object of input values ('-' for stdin)")
	evalCmd.Flags().Int32Var(&evalScale, "scale", 20, "decimal rounding scale (minimum 2)")
	evalCmd.Flags().BoolVar(&evalSkipVal, "skip-validate", false, "skip semantic validation before evaluating")
}

func runEval(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	inputs := map[string]any{}
	if evalInputsPath != "" {
		var raw []byte
		if evalInputsPath == "-" {
			raw, err = os.ReadFile("/dev/stdin")
		} else {
			raw, err = os.ReadFile(evalInputsPath)
		}
		if err != nil {
			return fmt.Errorf("failed to read inputs: %w", err)
		}
		if err := json.Unmarshal(raw, &inputs); err != nil {
			return fmt.Errorf("failed to parse inputs JSON: %w", err)
		}
	}

	doc, perrs := parser.ParseDocument(string(content))
	if diag.List(perrs).HasErrors() {
		for _, d := range diag.List(perrs).Errors() {
			fmt.Fprintln(os.Stderr, d.Format(string(content), false))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(diag.List(perrs).Errors()))
	}

	if !evalSkipVal {
		diags := semantic.Validate(doc)
		if diag.List(diags).HasErrors() {
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, d.Format(string(content), false))
			}
			return fmt.Errorf("validation failed with %d error(s)", len(diag.List(diags).Errors()))
		}
	}

	result := evaluator.Evaluate(context.Background(), doc, inputs, evaluator.WithScale(evalScale))

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
