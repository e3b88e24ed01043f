package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/db"
	"github.com/jonathan/resume-ats/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes /parse, /score and /evaluate. Stored jobs are available to /evaluate when database.url is set.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	mustBind("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	parser, closeParser, err := newParser(ctx, appCfg, log, false)
	if err != nil {
		return err
	}
	defer closeParser()

	var jobs server.JobStore
	if appCfg.Database.URL != "" {
		store, err := db.Connect(ctx, appCfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect job store: %w", err)
		}
		defer store.Close()
		jobs = store
	} else {
		log.Info("no database configured, job_id lookups are disabled")
	}

	srv := server.New(server.Config{
		Port:      appCfg.Server.Port,
		RateLimit: appCfg.Server.RateLimit,
		Burst:     appCfg.Server.Burst,
	}, parser, jobs, log)

	log.Info("starting ats-engine", zap.String("version", version), zap.Bool("oracle", appCfg.Oracle.Enabled))
	return srv.Start(ctx)
}
