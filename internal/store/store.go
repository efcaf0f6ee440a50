// Package store persists generated workout plans in a local SQLite database
// so the latest plan and a browsable history survive restarts.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/claude/planfit/internal/models"
)

// Store wraps the SQLite handle and provides repository methods.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dbPath, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// PlanMeta is the listing row for a stored plan.
type PlanMeta struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Goal        string    `json:"goal"`
	Level       string    `json:"level"`
	DurationMin int       `json:"duration_min"`
}

// SavePlan inserts a generated plan. Request and plan bodies are stored as
// JSON documents alongside the columns used for listing.
func (s *Store) SavePlan(plan *models.WorkoutPlan) error {
	reqJSON, err := json.Marshal(plan.Request)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO plans (id, created_at, title, goal, level, duration_min, request, plan)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.CreatedAt.UTC(), plan.Summary.Title,
		plan.Request.Goal, plan.Request.Level, plan.Request.DurationMin,
		string(reqJSON), string(planJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

// LatestPlan returns the most recently created plan, or (nil, nil) when the
// database holds none.
func (s *Store) LatestPlan() (*models.WorkoutPlan, error) {
	var doc string
	err := s.db.QueryRow(
		`SELECT plan FROM plans ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest plan: %w", err)
	}

	var plan models.WorkoutPlan
	if err := json.Unmarshal([]byte(doc), &plan); err != nil {
		return nil, fmt.Errorf("decoding stored plan: %w", err)
	}
	return &plan, nil
}

// GetPlan returns a stored plan by id, or (nil, nil) when not found.
func (s *Store) GetPlan(id string) (*models.WorkoutPlan, error) {
	var doc string
	err := s.db.QueryRow(`SELECT plan FROM plans WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan %s: %w", id, err)
	}

	var plan models.WorkoutPlan
	if err := json.Unmarshal([]byte(doc), &plan); err != nil {
		return nil, fmt.Errorf("decoding stored plan: %w", err)
	}
	return &plan, nil
}

// ListPlans returns up to limit plan rows, newest first.
func (s *Store) ListPlans(limit int) ([]PlanMeta, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, title, goal, level, duration_min
		 FROM plans ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []PlanMeta
	for rows.Next() {
		var m PlanMeta
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.Title, &m.Goal, &m.Level, &m.DurationMin); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
