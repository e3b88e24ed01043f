//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := Connect(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

func insertJob(t *testing.T, db *DB, title, status string, skills []string, education *string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.pool.QueryRow(context.Background(),
		`INSERT INTO jobs (title, description, required_skills, min_experience, education_level, status)
		 VALUES ($1, NULL, $2, 2, $3, $4) RETURNING id`,
		title, skills, education, status,
	).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, id)
	})
	return id
}

func TestIntegration_GetJobRequirement(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	education := "masters"
	id := insertJob(t, db, "Data Engineer", StatusOpen, []string{"python", "sql"}, &education)

	rec, err := db.GetJobRequirement(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", rec.Title)
	assert.Equal(t, []string{"python", "sql"}, rec.RequiredSkills)
	assert.Equal(t, 2, rec.MinExperience)
	assert.Equal(t, "masters", rec.EducationLevel)
	assert.Equal(t, "", rec.Description)

	_, err = db.GetJobRequirement(ctx, uuid.New())
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestIntegration_ListOpenJobs(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	open := insertJob(t, db, "Open Role", StatusOpen, []string{}, nil)
	closed := insertJob(t, db, "Closed Role", "closed", []string{}, nil)

	jobs, err := db.ListOpenJobs(context.Background())
	require.NoError(t, err)

	ids := make(map[uuid.UUID]bool)
	for _, j := range jobs {
		ids[j.ID] = true
		assert.Equal(t, StatusOpen, j.Status)
	}
	assert.True(t, ids[open])
	assert.False(t, ids[closed])
}
