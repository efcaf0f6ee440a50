package ai

import (
	"fmt"
	"strings"

	"github.com/claude/planfit/internal/models"
)

const planSystemPrompt = "You are a certified strength & conditioning coach. " +
	"Return data that strictly matches the provided JSON Schema."

const motivationSystemPrompt = "You are a professional fitness writer. " +
	"Write plain text only: no markdown, no lists, no medical claims."

func requestInputs(req models.PlanRequest) string {
	cal := "none"
	if req.CalorieTarget != nil {
		cal = fmt.Sprintf("%d kcal", *req.CalorieTarget)
	}
	return fmt.Sprintf(
		"name=%s; goal=%s; env=%s; level=%s; duration_min=%d; calorie_target=%s; equipment=%s; constraints=%s",
		req.Name, req.Goal, req.Environment, req.Level, req.DurationMin, cal,
		joinOr(req.Equipment, "any"), joinOr(req.Constraints, "none"),
	)
}

func planUserPrompt(req models.PlanRequest, compact bool) string {
	if compact {
		return "Inputs: " + requestInputs(req) + "\n\n" +
			"Return ONLY JSON per the schema: summary plus 3 blocks (warmup/main/cooldown). " +
			"Warmup and cooldown 2 exercises or fewer, main 3 or fewer. Notes 8 words or fewer."
	}
	return "Inputs: " + requestInputs(req) + "\n\n" +
		"Design a SINGLE-DAY workout that fits within duration_min.\n" +
		"Blocks: exactly 3, in order: warmup, main, cooldown.\n" +
		"Exercise counts: warmup at most 2; main at most 3; cooldown at most 2.\n" +
		"Keep notes to 10 words or fewer; numbers realistic.\n" +
		"Return ONLY valid JSON per the schema; keep values compact."
}

func motivationUserPrompt(req models.PlanRequest, summary models.PlanSummary) string {
	name := req.Name
	if name == "" {
		name = "athlete"
	}
	return fmt.Sprintf(
		"Write a 90-110 word motivational talk for %s before today's session %q "+
			"(goal: %s, level: %s, %d minutes). Address them by name, keep it warm, "+
			"concrete and safe. Plain text only.",
		name, summary.Title, req.Goal, req.Level, req.DurationMin,
	)
}

// imagePrompt builds a concise, policy-safe instruction for a single
// exercise illustration. Object-centric, no depicted persons with faces.
func imagePrompt(exercise string, req models.PlanRequest) string {
	return fmt.Sprintf(
		"High-quality instructional image for a single fitness exercise.\n"+
			"Exercise: %q\n"+
			"Context: %s program, %s setting, level: %s.\n"+
			"Composition rules:\n"+
			"- Single subject (no face), neutral/white background.\n"+
			"- Clear view of body position and main implement (if any).\n"+
			"- Clean lines, no text, no logos, no watermarks.\n"+
			"- Style: crisp studio illustration, photoreal-inspired, minimal shadows.\n"+
			"Output: one centered shot that clearly demonstrates the exercise setup or peak position.",
		exercise, req.Goal, req.Environment, req.Level,
	)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
