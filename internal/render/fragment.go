// Package render turns a workout plan into a styled HTML fragment for
// on-screen display and export embedding. Rendering is pure: no I/O, and all
// free text (names, notes) passes through html/template escaping.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/claude/planfit/internal/models"
)

const fragmentTmpl = `<section id="workout-plan" class="wp-wrap">
<style>
  .wp-wrap{font-family:system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,Cantarell,Arial,sans-serif;line-height:1.55}
  .wp-title{font-size:1.6rem;font-weight:700;margin:0 0 .5rem 0}
  .wp-meta{color:#666;font-size:.95rem;margin:.25rem 0 1rem 0}
  .wp-card{border:1px solid #eee;border-radius:14px;padding:16px;margin:12px 0;box-shadow:0 1px 8px rgba(0,0,0,.05);background:#fafafa}
  .wp-card h3{margin:0 0 .5rem 0;font-size:1.1rem}
  .wp-ex{margin:.35rem 0;padding-left:1rem}
  .wp-ex li{margin:.25rem 0}
</style>
<h2 class="wp-title">{{.Title}}</h2>
{{- if .Meta}}
<div class="wp-meta">{{.Meta}}</div>
{{- end}}
{{- range .Blocks}}
<div class="wp-card">
<h3>{{.Heading}}</h3>
<ul class="wp-ex">
{{- range .Exercises}}
<li><b>{{.Name}}</b>{{if .Details}} &mdash; {{.Details}}{{end}}</li>
{{- end}}
</ul>
</div>
{{- end}}
</section>
`

var tmpl = template.Must(template.New("fragment").Parse(fragmentTmpl))

type exerciseView struct {
	Name    string
	Details string
}

type blockView struct {
	Heading   string
	Exercises []exerciseView
}

type fragmentData struct {
	Title  string
	Meta   string
	Blocks []blockView
}

// Fragment renders the plan as an embeddable HTML fragment. Blocks with zero
// exercises are omitted entirely rather than rendered as empty containers.
func Fragment(plan *models.WorkoutPlan) (string, error) {
	data := fragmentData{
		Title: plan.Summary.Title,
		Meta:  metaLine(plan.Request),
	}
	if data.Title == "" {
		data.Title = "Your Workout Plan"
	}

	for _, b := range plan.Blocks {
		if len(b.Exercises) == 0 {
			continue
		}
		bv := blockView{Heading: blockHeading(b)}
		for _, ex := range b.Exercises {
			bv.Exercises = append(bv.Exercises, exerciseView{
				Name:    ex.Name,
				Details: exerciseDetails(ex),
			})
		}
		data.Blocks = append(data.Blocks, bv)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering fragment: %w", err)
	}
	return buf.String(), nil
}

func metaLine(req models.PlanRequest) string {
	var parts []string
	if req.Goal != "" {
		parts = append(parts, "Goal: "+req.Goal)
	}
	if req.Environment != "" {
		parts = append(parts, "Env: "+req.Environment)
	}
	if req.Level != "" {
		parts = append(parts, "Level: "+req.Level)
	}
	if req.DurationMin > 0 {
		parts = append(parts, fmt.Sprintf("Duration: %d min", req.DurationMin))
	}
	if req.CalorieTarget != nil {
		parts = append(parts, fmt.Sprintf("Target: %d kcal", *req.CalorieTarget))
	}
	return strings.Join(parts, " • ")
}

func blockHeading(b models.Block) string {
	head := b.Kind.Label()
	var bits []string
	if b.EstMinutes > 0 {
		bits = append(bits, fmt.Sprintf("%d min", b.EstMinutes))
	}
	if b.EstKcal > 0 {
		bits = append(bits, fmt.Sprintf("~%d kcal", b.EstKcal))
	}
	if len(bits) > 0 {
		head += " (" + strings.Join(bits, ", ") + ")"
	}
	return head
}

func exerciseDetails(ex models.Exercise) string {
	var parts []string
	if ex.Sets > 0 && ex.Reps != "" {
		parts = append(parts, fmt.Sprintf("%d x %s", ex.Sets, ex.Reps))
	} else if ex.Reps != "" {
		parts = append(parts, ex.Reps)
	}
	if ex.Rest != "" {
		parts = append(parts, "Rest: "+ex.Rest)
	}
	if ex.Intensity != "" {
		parts = append(parts, "Intensity: "+ex.Intensity)
	}
	if ex.Notes != "" {
		parts = append(parts, "Notes: "+ex.Notes)
	}
	return strings.Join(parts, "; ")
}
