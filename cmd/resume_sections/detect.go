package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-sections/internal/document"
	"github.com/jonathan/resume-sections/internal/ingestion"
	"github.com/jonathan/resume-sections/internal/observability"
	"github.com/jonathan/resume-sections/internal/sections"
)

// maxParallelFiles bounds concurrent file detection
const maxParallelFiles = 4

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the sections of plain-text résumés",
	Long:  "Normalizes each input file, slices it into canonical sections and prints the {key, label, value} triples, or writes one document JSON per input to --out.",
	RunE:  runDetect,
}

var (
	detectInputs  []string
	detectOutDir  string
	detectVerbose bool
)

func init() {
	detectCmd.Flags().StringSliceVarP(&detectInputs, "in", "i", nil, "Path(s) to plain-text résumé files (required)")
	detectCmd.Flags().StringVarP(&detectOutDir, "out", "o", "", "Directory to write document JSON files to")
	detectCmd.Flags().BoolVarP(&detectVerbose, "verbose", "v", false, "Print a detection summary per file")

	if err := detectCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(detectCmd)
}

// detected is the outcome for one input file
type detected struct {
	Source    string               `json:"source"`
	Metadata  *ingestion.Metadata  `json:"metadata"`
	Triples   []document.Triple    `json:"sections"`
	detection *sections.Detection
	doc       *document.Document
}

func runDetect(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	results, err := detectFiles(contextOf(cmd), sections.NewDetector(log), detectInputs, cfg.Language)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if detectVerbose {
		printer := observability.NewPrinter(out)
		for _, r := range results {
			printer.PrintDetection(filepath.Base(r.Source), r.detection)
		}
	}

	if detectOutDir != "" {
		paths, err := writeDetected(detectOutDir, results)
		if err != nil {
			return err
		}
		for _, p := range paths {
			log.Info("document written", zap.String("path", p))
		}
		return nil
	}
	return printTriples(out, results)
}

// detectFiles ingests and detects every path concurrently. Results keep input order.
func detectFiles(ctx context.Context, detector *sections.Detector, paths []string, language string) ([]detected, error) {
	results := make([]detected, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFiles)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, meta, err := ingestion.IngestFromFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			det := detector.Detect(text)
			doc := document.FromDetection(det, language)
			results[i] = detected{
				Source:    path,
				Metadata:  meta,
				Triples:   doc.Triples(),
				detection: det,
				doc:       doc,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeDetected writes <name>.json per result into dir. Inputs sharing a base name
// get numbered names in input order, so no output overwrites another.
func writeDetected(dir string, results []detected) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	sources := make([]string, len(results))
	for i, r := range results {
		sources[i] = r.Source
	}
	paths := make([]string, 0, len(results))
	for i, name := range outputNames(sources) {
		path := filepath.Join(dir, name)
		if err := writeDocument(path, results[i].doc); err != nil {
			return nil, fmt.Errorf("%s: %w", results[i].Source, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputNames maps each source to a distinct "<base>.json", suffixing repeats with -2, -3...
func outputNames(sources []string) []string {
	names := make([]string, len(sources))
	taken := make(map[string]bool, len(sources))
	for i, src := range sources {
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		name := base + ".json"
		for n := 2; taken[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s-%d.json", base, n)
		}
		taken[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func printTriples(w io.Writer, results []detected) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if len(results) == 1 {
		return enc.Encode(results[0].Triples)
	}
	return enc.Encode(results)
}
