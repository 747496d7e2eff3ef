package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-sections/internal/observability"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an exported document",
	Long:  "Checks a document JSON file against the document schema and the canonical section layout.",
	RunE:  runValidate,
}

var (
	validateDoc     string
	validateVerbose bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateDoc, "doc", "d", "", "Path to document JSON file (required)")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print a section overview")

	if err := validateCmd.MarkFlagRequired("doc"); err != nil {
		panic(fmt.Sprintf("failed to mark doc flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	doc, err := readDocument(validateDoc)
	if err != nil {
		return err
	}
	if validateVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintDocument(doc)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", validateDoc)
	return nil
}
