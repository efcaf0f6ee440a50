package render

import (
	"strings"
	"testing"

	"github.com/claude/planfit/internal/models"
)

func scenarioPlan() *models.WorkoutPlan {
	return &models.WorkoutPlan{
		Request: models.PlanRequest{
			Goal: "strength", Environment: "gym", Level: "beginner", DurationMin: 30,
		},
		Summary: models.PlanSummary{Title: "Beginner Strength Day"},
		Blocks: []models.Block{
			{Kind: models.BlockWarmup, EstMinutes: 5, Exercises: []models.Exercise{
				{Name: "Arm Circles", Sets: 1, Reps: "10 each way", Rest: "none", Intensity: "easy"},
			}},
			{Kind: models.BlockMain, EstMinutes: 20, Exercises: []models.Exercise{
				{Name: "Squat", Sets: 3, Reps: "8", Rest: "90s", Intensity: "RPE 7"},
			}},
		},
	}
}

// TestFragmentScenario feeds the canonical stub plan (one warm-up exercise,
// one main exercise) and checks both block sections appear in order, each
// listing its exercise by name.
func TestFragmentScenario(t *testing.T) {
	frag, err := Fragment(scenarioPlan())
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}

	warm := strings.Index(frag, "Warm-up")
	main := strings.Index(frag, "Main")
	if warm < 0 || main < 0 {
		t.Fatalf("missing block headings in fragment:\n%s", frag)
	}
	if warm > main {
		t.Errorf("warm-up section at %d appears after main at %d", warm, main)
	}

	arm := strings.Index(frag, "Arm Circles")
	squat := strings.Index(frag, "Squat")
	if arm < 0 || squat < 0 {
		t.Fatal("exercise names missing from fragment")
	}
	if !(warm < arm && arm < main && main < squat) {
		t.Errorf("exercises not listed under their blocks: warm=%d arm=%d main=%d squat=%d", warm, arm, main, squat)
	}
}

// TestFragmentEscapesFreeText verifies model/user-supplied text cannot inject
// markup: notes and names with tag delimiters come out escaped.
func TestFragmentEscapesFreeText(t *testing.T) {
	plan := scenarioPlan()
	plan.Blocks[1].Exercises[0].Notes = `<script>alert("x")</script>`
	plan.Blocks[1].Exercises[0].Name = `Squat <b>heavy</b>`
	plan.Summary.Title = `Day "One" & <Done>`

	frag, err := Fragment(plan)
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if strings.Contains(frag, "<script>") || strings.Contains(frag, "<b>heavy</b>") {
		t.Errorf("raw tags leaked into fragment:\n%s", frag)
	}
	if !strings.Contains(frag, "&lt;script&gt;") {
		t.Errorf("notes not escaped:\n%s", frag)
	}
	if !strings.Contains(frag, "&lt;Done&gt;") {
		t.Errorf("title not escaped:\n%s", frag)
	}
}

// TestFragmentOmitsEmptyBlock verifies a block with zero exercises produces
// no section at all.
func TestFragmentOmitsEmptyBlock(t *testing.T) {
	plan := scenarioPlan()
	plan.Blocks = append(plan.Blocks, models.Block{Kind: models.BlockCooldown})

	frag, err := Fragment(plan)
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if strings.Contains(frag, "Cool-down") {
		t.Errorf("empty cooldown block rendered:\n%s", frag)
	}
	if n := strings.Count(frag, `<div class="wp-card">`); n != 2 {
		t.Errorf("fragment has %d block cards, want 2", n)
	}
}

// TestFragmentDeterministic verifies rendering is a pure function of the
// plan.
func TestFragmentDeterministic(t *testing.T) {
	a, err := Fragment(scenarioPlan())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Fragment(scenarioPlan())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Fragment output differs across identical inputs")
	}
}
