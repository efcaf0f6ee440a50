package models

import (
	"fmt"
	"time"
)

// BlockKind identifies the position of a block within a session.
type BlockKind string

const (
	BlockWarmup   BlockKind = "warmup"
	BlockMain     BlockKind = "main"
	BlockCooldown BlockKind = "cooldown"
)

// Valid reports whether the kind is one of the three session blocks.
func (k BlockKind) Valid() bool {
	switch k {
	case BlockWarmup, BlockMain, BlockCooldown:
		return true
	}
	return false
}

// Label returns the display heading for the block kind.
func (k BlockKind) Label() string {
	switch k {
	case BlockWarmup:
		return "Warm-up"
	case BlockMain:
		return "Main"
	case BlockCooldown:
		return "Cool-down"
	}
	return string(k)
}

// PlanRequest is the plan context: the user-chosen parameters that define one
// generation request. A new request regenerates the plan wholesale.
type PlanRequest struct {
	Name          string   `json:"name"`
	Goal          string   `json:"goal"`
	Environment   string   `json:"environment"`
	Level         string   `json:"level"`
	DurationMin   int      `json:"duration_min"`
	CalorieTarget *int     `json:"calorie_target,omitempty"`
	Equipment     []string `json:"equipment,omitempty"`
	Constraints   []string `json:"constraints,omitempty"`
	Voice         string   `json:"voice,omitempty"`
}

// Validate checks the fields a generation request cannot do without.
func (r *PlanRequest) Validate() error {
	if r.Goal == "" {
		return fmt.Errorf("goal is required")
	}
	if r.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if r.Level == "" {
		return fmt.Errorf("level is required")
	}
	if r.DurationMin < 10 || r.DurationMin > 180 {
		return fmt.Errorf("duration_min must be between 10 and 180, got %d", r.DurationMin)
	}
	if r.CalorieTarget != nil && *r.CalorieTarget <= 0 {
		return fmt.Errorf("calorie_target must be positive, got %d", *r.CalorieTarget)
	}
	return nil
}

// PlanSummary carries the generated headline figures for a plan.
type PlanSummary struct {
	Title           string `json:"title"`
	EstTotalMinutes int    `json:"est_total_minutes"`
	EstTotalKcal    int    `json:"est_total_kcal"`
}

// Exercise is a single prescribed movement. Name doubles as the image cache
// key after sanitization.
type Exercise struct {
	Name      string `json:"name"`
	Sets      int    `json:"sets"`
	Reps      string `json:"reps"`
	Rest      string `json:"rest"`
	Intensity string `json:"intensity"`
	Notes     string `json:"notes,omitempty"`
}

// Block is an ordered group of exercises within a session.
type Block struct {
	Kind       BlockKind  `json:"kind"`
	EstMinutes int        `json:"est_minutes"`
	EstKcal    int        `json:"est_kcal"`
	Exercises  []Exercise `json:"exercises"`
}

// WorkoutPlan is a single-day session. Immutable once generated; a new
// request replaces it entirely.
type WorkoutPlan struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Request   PlanRequest `json:"request"`
	Summary   PlanSummary `json:"summary"`
	Blocks    []Block     `json:"blocks"`
}

// Validate checks structural invariants of a generated plan.
func (p *WorkoutPlan) Validate() error {
	if len(p.Blocks) == 0 {
		return fmt.Errorf("plan has no blocks")
	}
	total := 0
	for i, b := range p.Blocks {
		if !b.Kind.Valid() {
			return fmt.Errorf("block %d has unknown kind %q", i, b.Kind)
		}
		for j, ex := range b.Exercises {
			if ex.Name == "" {
				return fmt.Errorf("block %d exercise %d has no name", i, j)
			}
		}
		total += len(b.Exercises)
	}
	if total == 0 {
		return fmt.Errorf("plan has no exercises")
	}
	return nil
}

// ExerciseNames returns every exercise name in block order, de-duplicated.
func (p *WorkoutPlan) ExerciseNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range p.Blocks {
		for _, ex := range b.Exercises {
			if ex.Name == "" || seen[ex.Name] {
				continue
			}
			seen[ex.Name] = true
			names = append(names, ex.Name)
		}
	}
	return names
}
