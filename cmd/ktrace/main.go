package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	clientcmd "github.com/chenxiaowo/ktrace/internal/cmd/client"
	serverrun "github.com/chenxiaowo/ktrace/internal/cmd/server"
	cfgpkg "github.com/chenxiaowo/ktrace/internal/config"
	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

func main() {
	// initialize logger for CLI
	// Respect KTRACE_LOG_LEVEL for both CLI and server start output
	level := os.Getenv("KTRACE_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "ktrace",
		Short: "ktrace runtime CLI",
		Long:  "ktrace is a single-binary event tracer. This CLI manages the server and trace sessions.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the ktrace server (HTTP API)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			httpAddr, _ := cmd.Flags().GetString("http")
			bufsizeMB, _ := cmd.Flags().GetInt("bufsize-mb")
			grpmask, _ := cmd.Flags().GetString("grpmask")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg := cfgpkg.Default()
			if cfgPath != "" {
				loaded, err := cfgpkg.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			cfgpkg.FromEnv(&cfg)
			if bufsizeMB >= 0 {
				cfg.BufferSizeMB = bufsizeMB
			}
			if grpmask != "" {
				v, err := strconv.ParseUint(grpmask, 0, 32)
				if err != nil {
					return fmt.Errorf("invalid --grpmask: %w", err)
				}
				cfg.GroupMask = uint32(v)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				HTTPAddr: httpAddr,
				Config:   cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	serverStartCmd.Flags().String("config", "", "Path to JSON config file")
	serverStartCmd.Flags().String("http", "", "HTTP listen address (default :8080)")
	serverStartCmd.Flags().Int("bufsize-mb", -1, "Trace buffer size in MB (0 disables tracing)")
	serverStartCmd.Flags().String("grpmask", "", "Initial group mask, hex or decimal (default all)")
	serverStartCmd.Flags().String("log-level", os.Getenv("KTRACE_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("KTRACE_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// trace session commands
	rootCmd.AddCommand(clientcmd.NewTraceCommand(apiURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("KTRACE_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
