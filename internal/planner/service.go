// Package planner orchestrates the workout pipeline: plan generation through
// the AI gateway, the on-disk image cache, motivational audio with its text
// log, and plan persistence.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claude/planfit/internal/assets"
	"github.com/claude/planfit/internal/export"
	"github.com/claude/planfit/internal/models"
	"github.com/claude/planfit/internal/store"
)

// Gateway is the AI vendor surface the service depends on.
type Gateway interface {
	GeneratePlan(ctx context.Context, req models.PlanRequest) (*models.WorkoutPlan, error)
	GenerateImage(ctx context.Context, exercise string, req models.PlanRequest) ([]byte, error)
	MotivationText(ctx context.Context, req models.PlanRequest, summary models.PlanSummary) (string, error)
	Speech(ctx context.Context, text, voice string) ([]byte, error)
}

// PlanStore is the persistence surface the service depends on.
type PlanStore interface {
	SavePlan(plan *models.WorkoutPlan) error
	LatestPlan() (*models.WorkoutPlan, error)
	GetPlan(id string) (*models.WorkoutPlan, error)
	ListPlans(limit int) ([]store.PlanMeta, error)
}

// MotivationResult carries the outcome of a motivation request. Text is
// always set on success; AudioPath is empty and AudioErr non-nil when speech
// synthesis failed but the text still came through.
type MotivationResult struct {
	Text      string `json:"text"`
	AudioPath string `json:"audio_path,omitempty"`
	AudioErr  string `json:"audio_error,omitempty"`
}

// Service ties the gateway, caches and store together behind the operations
// the HTTP and MCP surfaces expose.
type Service struct {
	gw     Gateway
	images *assets.ImageCache
	audio  *assets.AudioLog
	store  PlanStore
	pdf    *export.PDFRenderer
	log    *slog.Logger

	mu     sync.RWMutex
	latest *models.WorkoutPlan
}

// New creates a Service. store may be nil when persistence is disabled.
func New(gw Gateway, images *assets.ImageCache, audio *assets.AudioLog, st PlanStore, pdf *export.PDFRenderer, log *slog.Logger) *Service {
	return &Service{
		gw:     gw,
		images: images,
		audio:  audio,
		store:  st,
		pdf:    pdf,
		log:    log,
	}
}

// GeneratePlan validates the request, asks the gateway for a plan, stamps it
// with an id and timestamp, and records it as the current plan. Persistence
// failures are logged but do not fail the request.
func (s *Service) GeneratePlan(ctx context.Context, req models.PlanRequest) (*models.WorkoutPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	plan, err := s.gw.GeneratePlan(ctx, req)
	if err != nil {
		return nil, err
	}
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UTC()
	plan.Request = req

	if s.store != nil {
		if err := s.store.SavePlan(plan); err != nil {
			s.log.Warn("failed to persist plan", "id", plan.ID, "error", err)
		}
	}

	s.mu.Lock()
	s.latest = plan
	s.mu.Unlock()

	s.log.Info("generated plan", "id", plan.ID, "title", plan.Summary.Title,
		"goal", req.Goal, "duration_min", req.DurationMin)
	return plan, nil
}

// CurrentPlan returns the active plan: the one generated this session, or the
// newest persisted one. Returns (nil, nil) when neither exists.
func (s *Service) CurrentPlan() (*models.WorkoutPlan, error) {
	s.mu.RLock()
	plan := s.latest
	s.mu.RUnlock()
	if plan != nil {
		return plan, nil
	}
	if s.store == nil {
		return nil, nil
	}
	return s.store.LatestPlan()
}

// Plan returns a stored plan by id, or (nil, nil) when unknown.
func (s *Service) Plan(id string) (*models.WorkoutPlan, error) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()
	if latest != nil && latest.ID == id {
		return latest, nil
	}
	if s.store == nil {
		return nil, nil
	}
	return s.store.GetPlan(id)
}

// History lists up to limit stored plans, newest first.
func (s *Service) History(limit int) ([]store.PlanMeta, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListPlans(limit)
}

// ExerciseImage returns the illustration for an exercise, generating and
// caching it on first request. A cache hit never touches the gateway.
func (s *Service) ExerciseImage(ctx context.Context, exercise string, req models.PlanRequest) ([]byte, error) {
	if s.images.Exists(exercise) {
		return s.images.Read(exercise)
	}

	data, err := s.gw.GenerateImage(ctx, exercise, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.images.Store(exercise, data); err != nil {
		return nil, err
	}
	s.log.Info("cached exercise image", "exercise", assets.SafeName(exercise), "bytes", len(data))
	return data, nil
}

// Images generates (or reuses) the illustration for every exercise in the
// plan and returns sanitized name to path, skipping exercises whose
// generation failed. The first error is reported alongside the successes.
func (s *Service) Images(ctx context.Context, plan *models.WorkoutPlan) (map[string]string, error) {
	paths := make(map[string]string)
	var firstErr error
	for _, name := range plan.ExerciseNames() {
		if _, err := s.ExerciseImage(ctx, name, plan.Request); err != nil {
			s.log.Warn("image generation failed", "exercise", name, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("generating image for %q: %w", name, err)
			}
			continue
		}
		paths[assets.SafeName(name)] = s.images.PathFor(name)
	}
	return paths, firstErr
}

// Motivation produces a short pep talk for the plan, logs the text, and
// synthesizes it to a saved MP3 clip. Speech failure is a partial success:
// the text and log entry survive, AudioErr carries the reason.
func (s *Service) Motivation(ctx context.Context, plan *models.WorkoutPlan, voice string) (*MotivationResult, error) {
	if voice == "" {
		voice = plan.Request.Voice
	}

	text, err := s.gw.MotivationText(ctx, plan.Request, plan.Summary)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.audio.Append(now, text); err != nil {
		s.log.Warn("failed to append motivation log", "error", err)
	}

	res := &MotivationResult{Text: text}
	clip, err := s.gw.Speech(ctx, text, voice)
	if err != nil {
		s.log.Warn("speech synthesis failed", "error", err)
		res.AudioErr = err.Error()
		return res, nil
	}

	path, err := s.audio.SaveClip(now, clip)
	if err != nil {
		s.log.Warn("failed to save audio clip", "error", err)
		res.AudioErr = err.Error()
		return res, nil
	}
	res.AudioPath = path
	return res, nil
}

// ExportHTML renders the current or given plan as a self-contained document.
func (s *Service) ExportHTML(plan *models.WorkoutPlan) ([]byte, error) {
	return export.HTML(plan, s.images)
}

// ExportPDF renders the plan to PDF through the headless browser.
func (s *Service) ExportPDF(ctx context.Context, plan *models.WorkoutPlan) ([]byte, error) {
	return s.pdf.PDF(ctx, plan, s.images)
}

// RecentAudio lists up to n saved clips, newest first.
func (s *Service) RecentAudio(n int) ([]assets.Clip, error) {
	return s.audio.ListRecent(n)
}

// LatestAudio returns the newest clip, or (nil, nil) when none exist.
func (s *Service) LatestAudio() (*assets.Clip, error) {
	return s.audio.Latest()
}

// ImageCache exposes the cache for handlers that stream files directly.
func (s *Service) ImageCache() *assets.ImageCache {
	return s.images
}
