package ranking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/internal/parsing"
)

const strongResume = `John Smith
john.smith@example.com

Experience
Backend Engineer 2018 - 2024
Built Node.js and SQL services for a payments company.

Education
B.S. Computer Science
`

const weakResume = `Alex Roe
alex.roe@example.com

Pastry chef with a love of sourdough baking.
`

func rankDocs() []Document {
	return []Document{
		{ID: "weak", Name: "weak.txt", Data: []byte(weakResume)},
		{Name: "broken.rtf", Data: []byte("{\\rtf1 not supported}")},
		{ID: "strong", Name: "strong.txt", Data: []byte(strongResume)},
	}
}

func TestRankCandidates_OrdersByScore(t *testing.T) {
	ranked, err := RankCandidates(context.Background(), parsing.NewParser(), backendJob(), rankDocs(), RankOptions{})
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "strong", ranked[0].ID)
	assert.Equal(t, "weak", ranked[1].ID)
	assert.Equal(t, "broken.rtf", ranked[2].Name)

	assert.True(t, ranked[0].Score.SufficientData)
	assert.Greater(t, ranked[0].Score.TotalScore, ranked[1].Score.TotalScore)
	assert.False(t, ranked[2].Score.SufficientData)
	assert.Equal(t, 0.0, ranked[2].Score.TotalScore)
	assert.NotEmpty(t, ranked[2].Profile.Error)
}

func TestRankCandidates_GeneratesMissingIDs(t *testing.T) {
	docs := []Document{
		{Name: "a.txt", Data: []byte(weakResume)},
		{Name: "b.txt", Data: []byte(weakResume)},
	}

	ranked, err := RankCandidates(context.Background(), parsing.NewParser(), backendJob(), docs, RankOptions{Workers: 2})
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.NotEmpty(t, ranked[0].ID)
	assert.NotEmpty(t, ranked[1].ID)
	assert.NotEqual(t, ranked[0].ID, ranked[1].ID)
}

func TestRankCandidates_TiesKeepInputOrder(t *testing.T) {
	docs := []Document{
		{ID: "first", Name: "first.txt", Data: []byte(weakResume)},
		{ID: "second", Name: "second.txt", Data: []byte(weakResume)},
		{ID: "third", Name: "third.txt", Data: []byte(weakResume)},
	}

	ranked, err := RankCandidates(context.Background(), parsing.NewParser(), backendJob(), docs, RankOptions{Workers: 3})
	require.NoError(t, err)

	ids := []string{ranked[0].ID, ranked[1].ID, ranked[2].ID}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestRankCandidates_WorkerCountDoesNotChangeResult(t *testing.T) {
	parser := parsing.NewParser()

	serial, err := RankCandidates(context.Background(), parser, backendJob(), rankDocs(), RankOptions{Workers: 1})
	require.NoError(t, err)
	parallel, err := RankCandidates(context.Background(), parser, backendJob(), rankDocs(), RankOptions{Workers: 8})
	require.NoError(t, err)

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Name, parallel[i].Name)
		assert.Equal(t, serial[i].Score.TotalScore, parallel[i].Score.TotalScore)
	}
}

func TestRankCandidates_Empty(t *testing.T) {
	ranked, err := RankCandidates(context.Background(), parsing.NewParser(), backendJob(), nil, RankOptions{})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankCandidates_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ranked, err := RankCandidates(ctx, parsing.NewParser(), backendJob(), rankDocs(), RankOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, ranked)
}
