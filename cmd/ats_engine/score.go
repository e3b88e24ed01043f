package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/parsing"
	"github.com/jonathan/resume-ats/internal/ranking"
	"github.com/jonathan/resume-ats/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a candidate against a job requirement",
	Long:  "Score a parsed profile (--profile) or a resume file (--resume) against a job requirement file (--job) or a stored job (--job-id).",
	RunE:  runScore,
}

var (
	scoreProfileFile string
	scoreResumeFile  string
	scoreJobFile     string
	scoreJobID       string
	scoreOutputFile  string
	scoreUseOracle   bool
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreProfileFile, "profile", "", "Path to candidate profile JSON written by parse")
	scoreCmd.Flags().StringVar(&scoreResumeFile, "resume", "", "Path to a resume file to parse and score")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to job requirement JSON")
	scoreCmd.Flags().StringVar(&scoreJobID, "job-id", "", "ID of a stored job requirement (requires database.url)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output score JSON (default stdout)")
	scoreCmd.Flags().BoolVar(&scoreUseOracle, "oracle", false, "Use the LLM oracle when parsing --resume")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print the score breakdown instead of JSON")

	scoreCmd.MarkFlagsOneRequired("profile", "resume")
	scoreCmd.MarkFlagsMutuallyExclusive("profile", "resume")
	scoreCmd.MarkFlagsOneRequired("job", "job-id")
	scoreCmd.MarkFlagsMutuallyExclusive("job", "job-id")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	job, err := resolveJob(ctx, scoreJobFile, scoreJobID)
	if err != nil {
		return err
	}

	var profile *types.CandidateProfile
	if scoreProfileFile != "" {
		profile, err = loadProfileFile(scoreProfileFile)
		if err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(scoreResumeFile)
		if err != nil {
			return fmt.Errorf("failed to read resume file: %w", err)
		}
		parser, closeParser, err := newParser(ctx, appCfg, log, scoreUseOracle)
		if err != nil {
			return err
		}
		defer closeParser()
		profile = parser.ParseDocument(ctx, scoreResumeFile, data, parsing.ParseOptions{UseOracle: scoreUseOracle || appCfg.Oracle.Enabled})
	}

	result := ranking.Score(profile, job)
	log.Info("scored candidate",
		zap.Float64("total_score", result.TotalScore),
		zap.Bool("sufficient_data", result.SufficientData))

	if scoreVerbose {
		observability.NewPrinter(os.Stdout).PrintScore(result)
		return nil
	}
	return writeJSON(scoreOutputFile, result)
}

func resolveJob(ctx context.Context, path, id string) (*types.JobRequirement, error) {
	if id != "" {
		return loadJobByID(ctx, appCfg.Database.URL, id)
	}
	return loadJobFile(path)
}
