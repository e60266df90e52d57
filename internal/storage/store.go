// Package storage keeps a catalog of envelope runs in a local SQLite
// database: one row per run plus its full trajectory.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/san-kum/beamenv/internal/beam"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id             TEXT PRIMARY KEY,
    created_at     TEXT NOT NULL,
    stepper        TEXT NOT NULL,
    current        REAL NOT NULL,
    beta           REAL NOT NULL,
    gamma          REAL NOT NULL,
    r0             REAL NOT NULL,
    rp0            REAL NOT NULL,
    emittance      REAL NOT NULL,
    steps          INTEGER NOT NULL,
    final_z        REAL NOT NULL,
    neutralization REAL NOT NULL DEFAULT 0,
    metrics        TEXT
);

CREATE TABLE IF NOT EXISTS samples (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    idx    INTEGER NOT NULL,
    z      REAL NOT NULL,
    r      REAL NOT NULL,
    PRIMARY KEY (run_id, idx)
);
`

// RunMeta describes one stored run.
type RunMeta struct {
	ID        string
	CreatedAt time.Time
	Stepper   string
	Params    beam.Params
	Metrics   map[string]float64
}

type Store struct {
	db *sql.DB
}

// Open creates the data directory if needed and opens the run catalog
// inside it.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("storage: creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("storage: opening database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the parameters, metrics and trajectory of one run and
// returns the generated run id.
func (s *Store) SaveRun(ctx context.Context, stepper string, p beam.Params, metrics map[string]float64, traj *beam.Trajectory) (string, error) {
	id := fmt.Sprintf("env_%d", time.Now().UnixNano())
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return "", fmt.Errorf("storage: encoding metrics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("storage: starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, stepper, current, beta, gamma, r0, rp0, emittance, steps, final_z, neutralization, metrics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt, stepper,
		p.Current, p.Beta, p.Gamma, p.R0, p.RP0, p.Emittance,
		p.Steps, p.FinalZ, p.Neutralization, string(metricsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("storage: inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO samples (run_id, idx, z, r) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("storage: preparing sample insert: %w", err)
	}
	defer stmt.Close()

	for i := range traj.Z {
		if _, err := stmt.ExecContext(ctx, id, i, traj.Z[i], traj.R[i]); err != nil {
			return "", fmt.Errorf("storage: inserting sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: committing run: %w", err)
	}

	return id, nil
}

// ListRuns returns metadata for all stored runs, oldest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, stepper, current, beta, gamma, r0, rp0, emittance, steps, final_z, neutralization, metrics
		FROM runs ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("storage: listing runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMeta, 0)
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

// LoadRun returns the metadata of one run.
func (s *Store) LoadRun(ctx context.Context, id string) (*RunMeta, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, stepper, current, beta, gamma, r0, rp0, emittance, steps, final_z, neutralization, metrics
		FROM runs WHERE id = ?`, id)

	meta, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("storage: run %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory returns the stored (z, r) samples of one run.
func (s *Store) LoadTrajectory(ctx context.Context, id string) (*beam.Trajectory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT z, r FROM samples WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: loading trajectory: %w", err)
	}
	defer rows.Close()

	traj := &beam.Trajectory{}
	for rows.Next() {
		var z, r float64
		if err := rows.Scan(&z, &r); err != nil {
			return nil, fmt.Errorf("storage: scanning sample: %w", err)
		}
		traj.Z = append(traj.Z, z)
		traj.R = append(traj.R, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if traj.Len() == 0 {
		return nil, fmt.Errorf("storage: run %s has no samples", id)
	}
	return traj, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunMeta, error) {
	var meta RunMeta
	var createdAt, metricsJSON string

	err := row.Scan(&meta.ID, &createdAt, &meta.Stepper,
		&meta.Params.Current, &meta.Params.Beta, &meta.Params.Gamma,
		&meta.Params.R0, &meta.Params.RP0, &meta.Params.Emittance,
		&meta.Params.Steps, &meta.Params.FinalZ, &meta.Params.Neutralization,
		&metricsJSON)
	if err != nil {
		return RunMeta{}, err
	}

	meta.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return RunMeta{}, fmt.Errorf("storage: parsing created_at: %w", err)
	}
	if metricsJSON != "" {
		if err := json.Unmarshal([]byte(metricsJSON), &meta.Metrics); err != nil {
			return RunMeta{}, fmt.Errorf("storage: decoding metrics: %w", err)
		}
	}
	return meta, nil
}
