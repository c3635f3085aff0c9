// Package main provides the codewatch CLI: it ingests an agent process's
// event stream into a conversation model and manages the runtime
// configuration the process consumes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/codewatch/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "codewatch",
	Short: "Turn an agent's event stream into a conversation model",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath,
		"config", filepath.Join(os.Getenv("HOME"), ".codewatch", "config.json"),
		"config file path")
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "codewatch: %v\n", err)
		os.Exit(1)
	}
}
