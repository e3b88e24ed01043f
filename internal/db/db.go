// Package db provides read access to job requirements stored in PostgreSQL.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-ats/internal/types"
)

// StatusOpen marks a job that is accepting applications.
const StatusOpen = "open"

// Schema creates the jobs table when it is missing.
const Schema = `CREATE TABLE IF NOT EXISTS jobs (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title           TEXT NOT NULL DEFAULT '',
	description     TEXT,
	required_skills TEXT[] NOT NULL DEFAULT '{}',
	min_experience  INTEGER NOT NULL DEFAULT 0 CHECK (min_experience >= 0),
	education_level TEXT,
	status          TEXT NOT NULL DEFAULT 'open',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const jobColumns = `id, title, description, required_skills, min_experience, education_level, status`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the jobs table if needed.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create jobs table: %w", err)
	}
	return nil
}

// GetJobRequirement loads one job by ID. A missing row yields *NotFoundError.
func (db *DB) GetJobRequirement(ctx context.Context, id uuid.UUID) (*JobRecord, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return job, nil
}

// ListOpenJobs returns every open job, newest first.
func (db *DB) ListOpenJobs(ctx context.Context) ([]JobRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at DESC, id`,
		StatusOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list open jobs: %w", err)
	}
	defer rows.Close()

	jobs := []JobRecord{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*JobRecord, error) {
	var (
		rec         JobRecord
		description *string
		education   *string
		skills      []string
	)
	if err := row.Scan(&rec.ID, &rec.Title, &description, &skills, &rec.MinExperience, &education, &rec.Status); err != nil {
		return nil, err
	}

	rec.Description = types.StringValue(description)
	rec.EducationLevel = types.StringValue(education)
	rec.RequiredSkills = skills
	if rec.RequiredSkills == nil {
		rec.RequiredSkills = []string{}
	}
	return &rec, nil
}
