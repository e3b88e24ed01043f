// Package main provides the ats-engine command line: resume parsing, ATS
// scoring, batch ranking and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile string

	v      = viper.New()
	appCfg *config.Config
	log    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "ats-engine",
	Short:         "Resume parser and ATS scorer",
	Long:          "ats-engine parses resumes into structured candidate profiles and scores them against job requirements with an explainable 0-100 ATS score.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return initApp()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ats-engine.yaml in the current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	mustBind("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	mustBind("log.json", rootCmd.PersistentFlags().Lookup("json"))
}

// initApp loads .env and configuration, then builds the logger.
func initApp() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	appCfg = cfg

	l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	log = l
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
