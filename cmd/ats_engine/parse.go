package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/fetch"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/parsing"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume into a structured candidate profile",
	Long:  "Parse a resume (.txt, .html, .pdf or .docx) from a file or URL into candidate profile JSON. With --oracle the configured LLM is tried first and the rule-based parser is the fallback.",
	RunE:  runParse,
}

var (
	parseInputFile  string
	parseURL        string
	parseOutputFile string
	parseUseOracle  bool
	parsePretty     bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to resume file")
	parseCmd.Flags().StringVar(&parseURL, "url", "", "URL of a resume document")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output profile JSON (default stdout)")
	parseCmd.Flags().BoolVar(&parseUseOracle, "oracle", false, "Try the LLM oracle before the rule-based parser")
	parseCmd.Flags().BoolVar(&parsePretty, "print", false, "Print a human-readable summary instead of JSON")

	parseCmd.MarkFlagsOneRequired("in", "url")
	parseCmd.MarkFlagsMutuallyExclusive("in", "url")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	name, data, err := readResume(ctx, parseInputFile, parseURL)
	if err != nil {
		return err
	}

	parser, closeParser, err := newParser(ctx, appCfg, log, parseUseOracle)
	if err != nil {
		return err
	}
	defer closeParser()

	profile := parser.ParseDocument(ctx, name, data, parsing.ParseOptions{UseOracle: parseUseOracle || appCfg.Oracle.Enabled})
	if profile.HasError() {
		log.Warn("resume could not be parsed", zap.String("document", name), zap.String("error", profile.Error))
	}

	if parsePretty {
		observability.NewPrinter(os.Stdout).PrintProfile(profile)
		return nil
	}
	return writeJSON(parseOutputFile, profile)
}

// readResume loads the resume from disk or downloads it.
func readResume(ctx context.Context, path, rawURL string) (string, []byte, error) {
	if rawURL == "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return path, data, nil
	}

	result, err := fetch.URL(ctx, rawURL, nil)
	if err != nil {
		return "", nil, err
	}
	log.Debug("downloaded resume",
		zap.String("url", rawURL),
		zap.String("name", result.Name),
		zap.Int("bytes", len(result.Data)))
	return result.Name, result.Data, nil
}
