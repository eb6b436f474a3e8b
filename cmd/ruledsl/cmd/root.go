package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ruledsl",
	Short: "Rules DSL engine CLI",
	Long: `ruledsl is a Go implementation of the embeddable rules DSL:
a YAML-based business-rules language with a lexer/parser/validator/
evaluator pipeline, naming discipline (camelCase inputs, snake_case
computed values, UPPER_CASE constants), and thin external adapters for
constants, functions, caching, and audit logging.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
