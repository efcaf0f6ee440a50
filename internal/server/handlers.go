package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/planfit/internal/ai"
	"github.com/claude/planfit/internal/assets"
	"github.com/claude/planfit/internal/export"
	"github.com/claude/planfit/internal/models"
	"github.com/claude/planfit/internal/render"
)

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"goals":        models.Goals,
		"environments": models.Environments,
		"levels":       models.Levels,
		"equipment":    models.EquipmentPool,
		"constraints":  models.ConstraintPool,
		"voices":       models.Voices,
	})
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req models.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	plan, err := s.svc.GeneratePlan(r.Context(), req)
	if err != nil {
		s.log.Error("plan generation error", "error", err)
		writeJSON(w, vendorStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleLatestPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.svc.CurrentPlan()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if plan == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no plan generated yet"})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handlePlanFragment(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.requirePlan(w, r)
	if !ok {
		return
	}

	frag, err := render.Fragment(plan)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(frag))
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	metas, err := s.svc.History(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": metas})
}

func (s *Server) handleGenerateImages(w http.ResponseWriter, r *http.Request) {
	// Body is optional; no exercise means the whole plan.
	var body struct {
		Exercise string `json:"exercise"`
	}
	if !decodeOptionalJSON(w, r, &body) {
		return
	}

	plan, ok := s.requirePlan(w, r)
	if !ok {
		return
	}

	if body.Exercise != "" {
		if _, err := s.svc.ExerciseImage(r.Context(), body.Exercise, plan.Request); err != nil {
			s.log.Error("image generation error", "exercise", body.Exercise, "error", err)
			writeJSON(w, vendorStatus(err), map[string]string{"error": err.Error()})
			return
		}
		key := assets.SafeName(body.Exercise)
		writeJSON(w, http.StatusOK, map[string]any{
			"images": map[string]string{key: s.svc.ImageCache().PathFor(body.Exercise)},
		})
		return
	}

	paths, err := s.svc.Images(r.Context(), plan)
	if err != nil && len(paths) == 0 {
		s.log.Error("image generation error", "error", err)
		writeJSON(w, vendorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	resp := map[string]any{"images": paths}
	if err != nil {
		// Some images came through; report the failures without failing.
		resp["partial_error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cache := s.svc.ImageCache()
	if !cache.Exists(name) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no cached image for " + name})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, cache.PathFor(name))
}

func (s *Server) handleMotivation(w http.ResponseWriter, r *http.Request) {
	// Body is optional; the configured voice is the default.
	var body struct {
		Voice string `json:"voice"`
	}
	if !decodeOptionalJSON(w, r, &body) {
		return
	}

	plan, ok := s.requirePlan(w, r)
	if !ok {
		return
	}

	res, err := s.svc.Motivation(r.Context(), plan, body.Voice)
	if err != nil {
		s.log.Error("motivation error", "error", err)
		writeJSON(w, vendorStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.requirePlan(w, r)
	if !ok {
		return
	}

	doc, err := s.svc.ExportHTML(plan)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="workout-plan.html"`)
	w.Write(doc)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.requirePlan(w, r)
	if !ok {
		return
	}

	pdf, err := s.svc.ExportPDF(r.Context(), plan)
	if err != nil {
		if errors.Is(err, export.ErrRenderEngineUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "PDF rendering needs a Chrome or Chromium binary; install one or set export.chrome_path",
			})
			return
		}
		s.log.Error("pdf export error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="workout-plan.pdf"`)
	w.Write(pdf)
}

func (s *Server) handleListAudio(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	clips, err := s.svc.RecentAudio(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clips": clips})
}

func (s *Server) handleLatestAudio(w http.ResponseWriter, r *http.Request) {
	clip, err := s.svc.LatestAudio()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if clip == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no audio generated yet"})
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, clip.Path)
}

// requirePlan resolves the plan a request operates on: ?plan= selects a
// stored one, otherwise the current plan. Writes the error response itself.
func (s *Server) requirePlan(w http.ResponseWriter, r *http.Request) (*models.WorkoutPlan, bool) {
	if id := r.URL.Query().Get("plan"); id != "" {
		plan, err := s.svc.Plan(id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return nil, false
		}
		if plan == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown plan " + id})
			return nil, false
		}
		return plan, true
	}

	plan, err := s.svc.CurrentPlan()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if plan == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "generate a plan first"})
		return nil, false
	}
	return plan, true
}

// vendorStatus maps AI gateway failures to 502 and everything else to 500.
func vendorStatus(err error) int {
	switch {
	case errors.Is(err, ai.ErrSchemaViolation),
		errors.Is(err, ai.ErrImageGeneration),
		errors.Is(err, ai.ErrSpeechGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeOptionalJSON decodes a request body that may be absent. An empty body
// leaves v untouched; a present body must be valid JSON or the request is
// rejected with 400 (the response is written here).
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
