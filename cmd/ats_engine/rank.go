package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a directory of resumes against a job requirement",
	Long:  "Parse and score every resume in --dir against the job, then print them highest score first.",
	RunE:  runRank,
}

var (
	rankJobFile    string
	rankJobID      string
	rankDir        string
	rankOutputFile string
	rankUseOracle  bool
)

func init() {
	rankCmd.Flags().StringVar(&rankJobFile, "job", "", "Path to job requirement JSON")
	rankCmd.Flags().StringVar(&rankJobID, "job-id", "", "ID of a stored job requirement (requires database.url)")
	rankCmd.Flags().StringVar(&rankDir, "dir", "", "Directory of resume files (required)")
	rankCmd.Flags().StringVarP(&rankOutputFile, "out", "o", "", "Also write the full ranking as JSON to this path")
	rankCmd.Flags().BoolVar(&rankUseOracle, "oracle", false, "Use the LLM oracle when parsing")
	rankCmd.Flags().Int("workers", 4, "Number of resumes parsed concurrently")

	mustBind("rank.workers", rankCmd.Flags().Lookup("workers"))

	if err := rankCmd.MarkFlagRequired("dir"); err != nil {
		panic(fmt.Sprintf("failed to mark dir flag as required: %v", err))
	}
	rankCmd.MarkFlagsOneRequired("job", "job-id")
	rankCmd.MarkFlagsMutuallyExclusive("job", "job-id")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	job, err := resolveJob(ctx, rankJobFile, rankJobID)
	if err != nil {
		return err
	}

	docs, err := collectDocuments(rankDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no resume files found in %s", rankDir)
	}

	parser, closeParser, err := newParser(ctx, appCfg, log, rankUseOracle)
	if err != nil {
		return err
	}
	defer closeParser()

	ranked, err := ranking.RankCandidates(ctx, parser, job, docs, ranking.RankOptions{
		Workers:   appCfg.Rank.Workers,
		UseOracle: rankUseOracle || appCfg.Oracle.Enabled,
	})
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}
	log.Info("ranked resumes", zap.Int("count", len(ranked)), zap.Int("workers", appCfg.Rank.Workers))

	rows := make([]observability.RankRow, 0, len(ranked))
	for _, rc := range ranked {
		rows = append(rows, observability.RankRow{Name: rc.Name, Score: rc.Score})
	}
	observability.NewPrinter(os.Stdout).PrintRanking(rows)

	if rankOutputFile != "" {
		return writeJSON(rankOutputFile, ranked)
	}
	return nil
}
