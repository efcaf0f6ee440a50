// Package mcp exposes the planner to MCP clients over stdio: plan generation
// and retrieval as tools, the current plan as a resource.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/planfit/internal/planner"
)

// New creates an MCP server with all tools and resources registered.
func New(svc *planner.Service, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("PlanFit", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("PlanFit workout planning server. Generate structured workout plans, browse plan history, export plans as HTML, and list motivational audio clips."),
	)

	h := &handlers{svc: svc, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGeneratePlan, Handler: h.generatePlan},
		server.ServerTool{Tool: toolGetLatestPlan, Handler: h.getLatestPlan},
		server.ServerTool{Tool: toolListPlans, Handler: h.listPlans},
		server.ServerTool{Tool: toolExportPlanHTML, Handler: h.exportPlanHTML},
		server.ServerTool{Tool: toolListRecentAudio, Handler: h.listRecentAudio},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resLatestPlan, Handler: h.latestPlan},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	svc *planner.Service
	log *slog.Logger
}

// --- Resource definitions ---

var resLatestPlan = mcp.NewResource(
	"planfit://latest_plan",
	"Latest Plan",
	mcp.WithResourceDescription("The most recently generated workout plan with its blocks and exercises"),
	mcp.WithMIMEType("application/json"),
)
