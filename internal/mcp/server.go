package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to clients during initialization.
const Version = "0.1.0"

// Services contains all domain services needed by MCP.
type Services struct {
	Signins    SigninService
	Compliance ComplianceService
	Roster     RosterService
	PTO        PTOService
	Activity   ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Tenant   string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tenant := cfg.Tenant
	if tenant == "" {
		tenant = "default"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "signin-mcp",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	// Single local operator: every request runs as the configured tenant.
	server.AddReceivingMiddleware(noAuthMiddleware(tenant))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, NewHandler(cfg.Services, logger))

	return server
}
