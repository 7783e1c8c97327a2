package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
	"github.com/jayjaychukwu/reconcilation/pkg/report"
)

var runOutput string

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run <source.csv> <target.csv>",
	Short: "Reconcile two CSV files and print the result",
	Long: `Run reconciles a source CSV file against a target CSV file and writes
the reconciliation report to standard output.

Both files must contain id, name, date and amount columns. Text values are
compared case insensitively with surrounding whitespace ignored.`,
	Example: `  reconcile run source.csv target.csv
  reconcile run source.csv target.csv --output csv > report.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runOutput, "output", "o", "json", "output format: json, csv, html, yaml")
}

func runReconcile(_ *cobra.Command, args []string) error {
	format, err := report.ParseFormat(runOutput)
	if err != nil {
		return err
	}

	sourceData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading source file: %w", err)
	}
	targetData, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading target file: %w", err)
	}

	result, err := reconcile.Reconcile(sourceData, targetData)
	if err != nil {
		return err
	}

	return report.Render(os.Stdout, result, format)
}
