package ranking

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ats/internal/parsing"
	"github.com/jonathan/resume-ats/internal/types"
)

// DefaultWorkers is the batch concurrency used when RankOptions.Workers is not positive.
const DefaultWorkers = 4

// Document is a resume awaiting parsing. ID is generated when empty.
type Document struct {
	ID   string
	Name string
	Data []byte
}

// RankOptions control a batch ranking.
type RankOptions struct {
	Workers   int
	UseOracle bool
}

// RankedCandidate is one scored resume in a ranking.
type RankedCandidate struct {
	ID      string                  `json:"id"`
	Name    string                  `json:"name"`
	Profile *types.CandidateProfile `json:"profile"`
	Score   *types.ScoreBreakdown   `json:"ats_result"`
}

// RankCandidates parses and scores docs with the default scorer.
func RankCandidates(ctx context.Context, parser *parsing.Parser, job *types.JobRequirement, docs []Document, opts RankOptions) ([]RankedCandidate, error) {
	return defaultScorer.Rank(ctx, parser, job, docs, opts)
}

// Rank parses and scores docs concurrently and returns them ordered by total
// score, highest first. Ties keep input order. Only context cancellation
// aborts the batch; unreadable documents rank with a zero score.
func (s *Scorer) Rank(ctx context.Context, parser *parsing.Parser, job *types.JobRequirement, docs []Document, opts RankOptions) ([]RankedCandidate, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]RankedCandidate, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			id := doc.ID
			if id == "" {
				id = uuid.NewString()
			}
			profile := parser.ParseDocument(gctx, doc.Name, doc.Data, parsing.ParseOptions{UseOracle: opts.UseOracle})
			results[i] = RankedCandidate{
				ID:      id,
				Name:    doc.Name,
				Profile: profile,
				Score:   s.Score(profile, job),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.TotalScore > results[j].Score.TotalScore
	})
	return results, nil
}
