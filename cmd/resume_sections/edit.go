package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-sections/internal/codec"
	"github.com/jonathan/resume-sections/internal/observability"
	"github.com/jonathan/resume-sections/internal/sections"
	"github.com/jonathan/resume-sections/internal/validation"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Commit a structured record into a document section",
	Long:  "Validates a record JSON file and writes it into a structured section of an exported document, appending (create) or replacing (edit).",
	RunE:  runEdit,
}

var (
	editDoc     string
	editSection string
	editMode    string
	editRecord  string
	editLocale  string
	editOut     string
	editShow    bool
)

func init() {
	editCmd.Flags().StringVarP(&editDoc, "doc", "d", "", "Path to document JSON file (required)")
	editCmd.Flags().StringVarP(&editSection, "section", "s", "", "Section key, e.g. experience (required)")
	editCmd.Flags().StringVarP(&editMode, "mode", "m", string(codec.ModeCreate), "create appends an entry, edit replaces the section")
	editCmd.Flags().StringVarP(&editRecord, "record", "r", "", "Path to record JSON file (required unless --show)")
	editCmd.Flags().StringVar(&editLocale, "locale", "", "Locale for validation messages (defaults to the document language)")
	editCmd.Flags().StringVarP(&editOut, "out", "o", "", "Output path (defaults to overwriting --doc)")
	editCmd.Flags().BoolVar(&editShow, "show", false, "Print the section parsed as a record and exit")

	if err := editCmd.MarkFlagRequired("doc"); err != nil {
		panic(fmt.Sprintf("failed to mark doc flag as required: %v", err))
	}
	if err := editCmd.MarkFlagRequired("section"); err != nil {
		panic(fmt.Sprintf("failed to mark section flag as required: %v", err))
	}

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, _ []string) error {
	if _, _, err := loadSettings(); err != nil {
		return err
	}

	key, err := sections.ParseKey(editSection)
	if err != nil {
		return err
	}
	doc, err := readDocument(editDoc)
	if err != nil {
		return err
	}

	if editShow {
		rec, err := doc.OpenForEdit(key)
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintRecord(key, rec)
		return nil
	}

	if editRecord == "" {
		return fmt.Errorf("--record is required unless --show is set")
	}
	mode, err := codec.ParseMode(editMode)
	if err != nil {
		return err
	}
	rec, err := readRecord(editRecord)
	if err != nil {
		return err
	}

	locale := editLocale
	if locale == "" {
		locale = doc.Language
	}
	value, err := doc.CommitEdit(key, rec, mode, locale)
	if err != nil {
		var dateErr *validation.DateError
		if errors.As(err, &dateErr) {
			return fmt.Errorf("record rejected: %s", dateErr.Message)
		}
		return err
	}

	out := editOut
	if out == "" {
		out = editDoc
	}
	if err := writeDocument(out, doc); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
