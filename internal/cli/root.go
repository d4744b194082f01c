package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lexigest",
	Short: "Lexigest - contract review for Indian SMEs",
	Long: `Lexigest analyzes business contracts the way an experienced reviewer
reads them: clause by clause, flagging one-sided terms, lock-ins,
indemnity exposure and missing protections.

It produces a ten-section structured report with a composite risk
score, renegotiation suggestions and an executive summary. The
analysis is heuristic and advisory; it is not legal advice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lexigest v0.2.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
