package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-sections/internal/config"
	"github.com/jonathan/resume-sections/internal/enhance"
	"github.com/jonathan/resume-sections/internal/llm"
	"github.com/jonathan/resume-sections/internal/observability"
	"github.com/jonathan/resume-sections/internal/sections"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Rewrite a section with the enhancement model",
	Long:  "Sends one AI-eligible section of a document to Gemini and stores the rewritten text. For structured sections, --record selects the entry whose details are rewritten; the enhanced record is printed instead.",
	RunE:  runEnhance,
}

var (
	enhanceDoc     string
	enhanceSection string
	enhanceRecord  string
	enhanceOut     string
)

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceDoc, "doc", "d", "", "Path to document JSON file (required)")
	enhanceCmd.Flags().StringVarP(&enhanceSection, "section", "s", "", "Section key, e.g. aboutMe (required)")
	enhanceCmd.Flags().StringVarP(&enhanceRecord, "record", "r", "", "Record JSON file whose details are enhanced (structured sections)")
	enhanceCmd.Flags().StringVarP(&enhanceOut, "out", "o", "", "Output path (defaults to overwriting --doc)")

	if err := enhanceCmd.MarkFlagRequired("doc"); err != nil {
		panic(fmt.Sprintf("failed to mark doc flag as required: %v", err))
	}
	if err := enhanceCmd.MarkFlagRequired("section"); err != nil {
		panic(fmt.Sprintf("failed to mark section flag as required: %v", err))
	}

	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := contextOf(cmd)
	svc, closeFn, err := newEnhanceService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	key, err := sections.ParseKey(enhanceSection)
	if err != nil {
		return err
	}
	doc, err := readDocument(enhanceDoc)
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if enhanceRecord != "" {
		rec, err := readRecord(enhanceRecord)
		if err != nil {
			return err
		}
		out, err := svc.EnhanceDetails(ctx, doc, key, rec)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	before := doc.Value(key)
	after, err := svc.EnhanceSection(ctx, doc, key)
	if err != nil {
		return err
	}

	out := enhanceOut
	if out == "" {
		out = enhanceDoc
	}
	if err := writeDocument(out, doc); err != nil {
		return err
	}
	printer.PrintEnhancement(key, before, after)
	return nil
}

// newEnhanceService connects to Gemini; the returned func closes the client
func newEnhanceService(ctx context.Context, cfg config.Config, log *zap.Logger) (*enhance.Service, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig().WithModel(cfg.Model), cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}
	enhancer := enhance.NewGeminiEnhancer(client, cfg.MaxInputRunes, log)
	return enhance.NewService(enhancer, cfg.MaxInputRunes, log), func() { _ = client.Close() }, nil
}
