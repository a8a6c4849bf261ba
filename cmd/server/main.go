package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ganot/signin-mcp/internal/config"
	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/attendance"
	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/domain/signin"
	"github.com/ganot/signin-mcp/internal/mcp"
	"github.com/ganot/signin-mcp/internal/sqlite"
	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries JSON-RPC, so logs go to stderr or a file.
	logWriter := io.Writer(os.Stderr)
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	policy, err := attendance.ParsePolicy(cfg.Policy.OfficeDays)
	if err != nil {
		return fmt.Errorf("office days: %w", err)
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	employeeRepo := sqlite.NewEmployeeRepository(db)
	leaveRepo := sqlite.NewLeaveRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	var fetcher pto.Fetcher
	if cfg.PTO.URL != "" {
		fetcher = pto.NewClient(pto.ClientConfig{
			URL:       cfg.PTO.URL,
			Username:  cfg.PTO.Username,
			Password:  cfg.PTO.Password,
			UserAgent: cfg.PTO.UserAgent,
			Timeout:   cfg.PTO.Timeout,
		}, &http.Client{Timeout: cfg.PTO.Timeout})
	} else {
		logger.Info("pto calendar not configured; sync_pto disabled")
	}

	activitySvc := activity.NewService(activityRepo, logger)
	signinSvc := signin.NewService(cfg.SigninMapping(), activityRepo, logger)
	rosterSvc := roster.NewService(employeeRepo, activityRepo, logger)
	ptoSvc := pto.NewService(leaveRepo, fetcher, activityRepo, cfg.PTO.CacheTTL, logger)
	complianceSvc := attendance.NewService(signinSvc, employeeRepo, leaveRepo, activityRepo, policy, logger)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Signins:    signinSvc,
			Compliance: complianceSvc,
			Roster:     rosterSvc,
			PTO:        ptoSvc,
			Activity:   activitySvc,
		},
		Tenant: cfg.Tenant,
		Logger: logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting stdio transport",
		"tenant", cfg.Tenant,
		"db", cfg.DB.Path,
		"office_days", policy.Names(),
		"week_scheme", cfg.SigninMapping().WeekScheme,
	)
	// Run blocks until stdin closes or the context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
