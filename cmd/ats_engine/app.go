package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/db"
	"github.com/jonathan/resume-ats/internal/llm"
	"github.com/jonathan/resume-ats/internal/oracle"
	"github.com/jonathan/resume-ats/internal/parsing"
	"github.com/jonathan/resume-ats/internal/ranking"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
)

// errOracleNotConfigured is returned when --oracle is used without an API key.
var errOracleNotConfigured = errors.New("oracle requested but oracle.api_key is not set (use ATS_ORACLE_API_KEY or GEMINI_API_KEY)")

func mustBind(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag.Name, err))
	}
}

// newParser builds the resume parser. The oracle is attached when it is enabled
// in config or forced by the caller; the returned close func releases the LLM client.
func newParser(ctx context.Context, cfg *config.Config, logger *zap.Logger, forceOracle bool) (*parsing.Parser, func(), error) {
	opts := []parsing.Option{parsing.WithLogger(logger)}
	closeFn := func() {}

	if cfg.Oracle.Enabled || forceOracle {
		if cfg.Oracle.APIKey == "" {
			return nil, nil, errOracleNotConfigured
		}
		tier, err := cfg.Oracle.Tier()
		if err != nil {
			return nil, nil, err
		}
		client, err := llm.NewClient(ctx, cfg.Oracle.LLMConfig(), cfg.Oracle.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create oracle client: %w", err)
		}
		closeFn = func() {
			if err := client.Close(); err != nil {
				logger.Warn("closing oracle client", zap.Error(err))
			}
		}
		o := oracle.New(client, oracle.WithTier(tier), oracle.WithLogger(logger))
		opts = append(opts, parsing.WithOracle(o), parsing.WithOracleTimeout(cfg.Oracle.Timeout))
	}

	return parsing.NewParser(opts...), closeFn, nil
}

// loadJobFile reads a job requirement JSON file after checking it against the
// job requirement schema.
func loadJobFile(path string) (*types.JobRequirement, error) {
	if err := schemas.ValidateFile(schemas.JobRequirement, path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	var job types.JobRequirement
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job file: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job requirement: %w", err)
	}
	return &job, nil
}

// loadJobByID fetches a stored job requirement from the database.
func loadJobByID(ctx context.Context, databaseURL, rawID string) (*types.JobRequirement, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid job id %q: %w", rawID, err)
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("database.url is required with --job-id (use ATS_DATABASE_URL or DATABASE_URL)")
	}

	store, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rec, err := store.GetJobRequirement(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.Requirement(), nil
}

// loadProfileFile reads a candidate profile previously written by "parse".
func loadProfileFile(path string) (*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile file: %w", err)
	}
	return &profile, nil
}

// collectDocuments reads every regular, non-hidden file directly under dir,
// in name order.
func collectDocuments(dir string) ([]ranking.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []ranking.Document
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		docs = append(docs, ranking.Document{Name: entry.Name(), Data: data})
	}
	return docs, nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(path string, value any) error {
	jsonBytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if path == "" {
		_, err := os.Stdout.Write(jsonBytes)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
