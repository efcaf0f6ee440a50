package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/planfit/internal/models"
)

// splitList turns a comma-separated argument into trimmed entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// --- Tool definitions ---

var toolGeneratePlan = mcp.NewTool("generate_plan",
	mcp.WithDescription("Generate a structured workout plan (warm-up, main block, cool-down) for the given goal, environment, and constraints."),
	mcp.WithString("goal", mcp.Required(), mcp.Description("Training goal (e.g. 'Build strength', 'Lose weight', 'Improve endurance')")),
	mcp.WithString("environment", mcp.Required(), mcp.Description("Where the workout happens"), mcp.Enum("Gym", "Home")),
	mcp.WithString("level", mcp.Required(), mcp.Description("Experience level"), mcp.Enum("Beginner", "Intermediate", "Advanced")),
	mcp.WithNumber("duration_min", mcp.Required(), mcp.Description("Session length in minutes (10-180)")),
	mcp.WithNumber("calorie_target", mcp.Description("Optional calorie burn target for the session")),
	mcp.WithString("equipment", mcp.Description("Comma-separated available equipment (e.g. 'Dumbbells, Pull-up bar')")),
	mcp.WithString("constraints", mcp.Description("Comma-separated physical constraints (e.g. 'Knee pain, Lower back pain')")),
	mcp.WithString("name", mcp.Description("Name to address the athlete by")),
)

var toolGetLatestPlan = mcp.NewTool("get_latest_plan",
	mcp.WithDescription("Return the most recently generated workout plan, including all blocks and exercises."),
)

var toolListPlans = mcp.NewTool("list_plans",
	mcp.WithDescription("List stored workout plans, newest first. Returns id, title, goal, level, and duration per plan."),
	mcp.WithNumber("limit", mcp.Description("Maximum rows to return. Defaults to 20.")),
)

var toolExportPlanHTML = mcp.NewTool("export_plan_html",
	mcp.WithDescription("Render a plan as a self-contained HTML document with any cached exercise images inlined. Uses the latest plan unless an id is given."),
	mcp.WithString("plan_id", mcp.Description("Plan id to export. Defaults to the latest plan.")),
)

var toolListRecentAudio = mcp.NewTool("list_recent_audio",
	mcp.WithDescription("List recently generated motivational audio clips, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum clips to return. Defaults to 10.")),
)

// --- Tool handlers ---

func (h *handlers) generatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goal, err := req.RequireString("goal")
	if err != nil {
		return mcp.NewToolResultError("goal parameter is required"), nil
	}
	environment, err := req.RequireString("environment")
	if err != nil {
		return mcp.NewToolResultError("environment parameter is required"), nil
	}
	level, err := req.RequireString("level")
	if err != nil {
		return mcp.NewToolResultError("level parameter is required"), nil
	}
	duration := req.GetInt("duration_min", 0)
	if duration == 0 {
		return mcp.NewToolResultError("duration_min parameter is required"), nil
	}

	planReq := models.PlanRequest{
		Name:        req.GetString("name", ""),
		Goal:        goal,
		Environment: environment,
		Level:       level,
		DurationMin: duration,
		Equipment:   splitList(req.GetString("equipment", "")),
		Constraints: splitList(req.GetString("constraints", "")),
	}
	if kcal := req.GetInt("calorie_target", 0); kcal > 0 {
		planReq.CalorieTarget = &kcal
	}
	if err := planReq.Validate(); err != nil {
		return mcp.NewToolResultError("invalid request: " + err.Error()), nil
	}

	plan, err := h.svc.GeneratePlan(ctx, planReq)
	if err != nil {
		h.log.Error("mcp generate_plan", "error", err)
		return mcp.NewToolResultError("plan generation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLatestPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plan, err := h.svc.CurrentPlan()
	if err != nil {
		h.log.Error("mcp get_latest_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if plan == nil {
		return mcp.NewToolResultError("no plan generated yet"), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)

	metas, err := h.svc.History(limit)
	if err != nil {
		h.log.Error("mcp list_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(metas)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) exportPlanHTML(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var plan *models.WorkoutPlan
	var err error
	if id := req.GetString("plan_id", ""); id != "" {
		plan, err = h.svc.Plan(id)
	} else {
		plan, err = h.svc.CurrentPlan()
	}
	if err != nil {
		h.log.Error("mcp export_plan_html", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if plan == nil {
		return mcp.NewToolResultError("no plan to export"), nil
	}

	doc, err := h.svc.ExportHTML(plan)
	if err != nil {
		h.log.Error("mcp export_plan_html", "error", err)
		return mcp.NewToolResultError("export failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(doc)), nil
}

func (h *handlers) listRecentAudio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)

	clips, err := h.svc.RecentAudio(limit)
	if err != nil {
		h.log.Error("mcp list_recent_audio", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(clips)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
