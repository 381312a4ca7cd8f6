package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/a-bouts/power-server/power"
)

var ErrNotFound = errors.New("run not found")

// Point is one stored hour of a run
type Point struct {
	Hour           int     `json:"hour"`
	NetUsage       float64 `json:"netUsage"`
	SolarGenerated float64 `json:"solarGenerated"`
}

// Run is a saved power balance. BatteryLife is nil when unbounded.
type Run struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	CreatedAt   time.Time `json:"createdAt"`
	NetEnergy   float64   `json:"netEnergy"`
	TotalCost   float64   `json:"totalCost"`
	BatteryLife *float64  `json:"batteryLife"`
	Points      []Point   `json:"points,omitempty"`
}

// Store keeps the computed runs in a SQLite database
type Store struct {
	db *sql.DB
}

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		net_energy REAL NOT NULL,
		total_cost REAL NOT NULL,
		battery_life REAL
	);
	CREATE TABLE IF NOT EXISTS run_points (
		run_id TEXT NOT NULL,
		hour INTEGER NOT NULL,
		net_usage REAL NOT NULL,
		solar_generated REAL NOT NULL,
		PRIMARY KEY (run_id, hour)
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open opens or creates the database at path. ":memory:" gives a private in-memory store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs tables: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the summary and the full precision series of a result.
func (s *Store) Save(ctx context.Context, label string, r power.Result) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Label:     label,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		NetEnergy: r.NetEnergy,
		TotalCost: r.TotalCost,
	}
	if !math.IsInf(r.BatteryLife, 1) {
		life := r.BatteryLife
		run.BatteryLife = &life
	}
	for _, p := range r.Series {
		run.Points = append(run.Points, Point(p))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, label, created_at, net_energy, total_cost, battery_life) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Label, run.CreatedAt.UnixMilli(), run.NetEnergy, run.TotalCost, run.BatteryLife)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_points (run_id, hour, net_usage, solar_generated) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing points insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range run.Points {
		if _, err := stmt.ExecContext(ctx, run.ID, p.Hour, p.NetUsage, p.SolarGenerated); err != nil {
			return nil, fmt.Errorf("inserting point %d: %w", p.Hour, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var run Run
	var createdAt int64
	var life sql.NullFloat64
	if err := row.Scan(&run.ID, &run.Label, &createdAt, &run.NetEnergy, &run.TotalCost, &life); err != nil {
		return nil, err
	}
	run.CreatedAt = time.UnixMilli(createdAt).UTC()
	if life.Valid {
		run.BatteryLife = &life.Float64
	}
	return &run, nil
}

// Get returns a run with its points
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx,
		`SELECT id, label, created_at, net_energy, total_cost, battery_life FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT hour, net_usage, solar_generated FROM run_points WHERE run_id = ? ORDER BY hour`, id)
	if err != nil {
		return nil, fmt.Errorf("querying points of run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Hour, &p.NetUsage, &p.SolarGenerated); err != nil {
			return nil, fmt.Errorf("scanning point: %w", err)
		}
		run.Points = append(run.Points, p)
	}
	return run, rows.Err()
}

// List returns the runs without their points, most recent first
func (s *Store) List(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, created_at, net_energy, total_cost, battery_life FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_points WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("deleting points of run %s: %w", id, err)
	}
	return tx.Commit()
}

// Prune deletes the runs created before t and returns how many were removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	ms := before.UnixMilli()
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM run_points WHERE run_id IN (SELECT id FROM runs WHERE created_at < ?)`, ms); err != nil {
		return 0, fmt.Errorf("pruning points: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, ms)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, tx.Commit()
}
