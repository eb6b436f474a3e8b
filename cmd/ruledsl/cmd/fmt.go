package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/format"
	"github.com/fireflyframework/rule-engine-go/internal/parser"
)

var (
	fmtWrite  bool
	fmtList   bool
	fmtDiff   bool
	fmtIndent int
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>...",
	Short: "Format rule documents to canonical DSL source",
	Long: `Parse one or more rule documents and re-print them in canonical
form (normalized indentation, spacing, and operator spellings).

Examples:
  ruledsl fmt loan.yaml              # print formatted source to stdout
  ruledsl fmt -w loan.yaml           # rewrite the file in place
  ruledsl fmt -l *.yaml              # list files that are not formatted
  ruledsl fmt -d loan.yaml           # show a diff against the current file`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the formatted source back to the file")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "show a diff instead of the full output")
	fmtCmd.Flags().IntVar(&fmtIndent, "indent", 2, "indent width in spaces")
}

func runFmt(_ *cobra.Command, args []string) error {
	hadDiff := false
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}

		doc, errs := parser.ParseDocument(string(content))
		if diag.List(errs).HasErrors() {
			for _, d := range diag.List(errs).Errors() {
				fmt.Fprintln(os.Stderr, d.Format(string(content), false))
			}
			return fmt.Errorf("parsing failed for %s", path)
		}

		formatted := format.Format(doc, format.Options{Style: format.StyleDetailed, IndentWidth: fmtIndent})
		changed := formatted != string(content)

		switch {
		case fmtList:
			if changed {
				fmt.Println(path)
				hadDiff = true
			}
		case fmtWrite:
			if changed {
				if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
			}
		case fmtDiff:
			if changed {
				showDiff(path, string(content), formatted)
				hadDiff = true
			}
		default:
			fmt.Print(formatted)
		}
	}
	if (fmtList || fmtDiff) && hadDiff {
		return fmt.Errorf("one or more files are not formatted")
	}
	return nil
}

// showDiff shells out to the system diff tool and prints a header line
// followed by whatever diff wrote (nothing if diff is unavailable);
// mirrors the teacher's fmt.go behavior of never failing the command
// just because diff is unavailable.
func showDiff(path, before, after string) {
	beforeFile, err := os.CreateTemp("", "ruledsl-fmt-before-*")
	if err != nil {
		fmt.Printf("--- %s (original, unavailable for diff)\n", path)
		return
	}
	defer os.Remove(beforeFile.Name())
	afterFile, err := os.CreateTemp("", "ruledsl-fmt-after-*")
	if err != nil {
		return
	}
	defer os.Remove(afterFile.Name())

	_, _ = beforeFile.WriteString(before)
	_, _ = afterFile.WriteString(after)
	beforeFile.Close()
	afterFile.Close()

	var out bytes.Buffer
	c := exec.Command("diff", "-u", beforeFile.Name(), afterFile.Name())
	c.Stdout = &out
	_ = c.Run()
	fmt.Printf("diff %s\n%s\n", path, out.String())
}
