// Package history stores optimizer runs in a SQLite database so earlier
// plans can be listed and reopened.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/piwi3910/RodCut/internal/model"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL,
	blade_thickness  REAL NOT NULL,
	rods_used        INTEGER NOT NULL,
	pieces_cut       INTEGER NOT NULL,
	unfulfilled      INTEGER NOT NULL,
	waste_percentage REAL NOT NULL,
	request          TEXT NOT NULL,
	plan             TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_created_at ON runs (created_at);
`

// timeLayout sorts lexically in time order for UTC times.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Run is one stored optimizer call.
type Run struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	CreatedAt       time.Time         `json:"createdAt"`
	RodsUsed        int               `json:"rodsUsed"`
	PiecesCut       int               `json:"piecesCut"`
	Unfulfilled     int               `json:"unfulfilled"`
	WastePercentage float64           `json:"wastePercentage"`
	Request         model.PlanRequest `json:"request"`
	Plan            model.CuttingPlan `json:"plan"`
}

// runRow is the database shape of a Run.
type runRow struct {
	ID              string  `db:"id"`
	Name            string  `db:"name"`
	CreatedAt       string  `db:"created_at"`
	BladeThickness  float64 `db:"blade_thickness"`
	RodsUsed        int     `db:"rods_used"`
	PiecesCut       int     `db:"pieces_cut"`
	Unfulfilled     int     `db:"unfulfilled"`
	WastePercentage float64 `db:"waste_percentage"`
	Request         string  `db:"request"`
	Plan            string  `db:"plan"`
}

// Store is a SQLite-backed run history.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens or creates the history database at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a run and returns it with its new ID.
func (s *Store) Save(ctx context.Context, name string, req model.PlanRequest, plan model.CuttingPlan) (Run, error) {
	run := Run{
		ID:              uuid.New().String(),
		Name:            name,
		CreatedAt:       s.now().UTC().Truncate(time.Millisecond),
		RodsUsed:        plan.RodsUsed(),
		PiecesCut:       plan.PiecesCut(),
		Unfulfilled:     plan.Summary.UnfulfilledQuantity(),
		WastePercentage: plan.Summary.WastePercentage,
		Request:         req,
		Plan:            plan,
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return Run{}, fmt.Errorf("marshal request: %w", err)
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return Run{}, fmt.Errorf("marshal plan: %w", err)
	}

	row := runRow{
		ID:              run.ID,
		Name:            run.Name,
		CreatedAt:       run.CreatedAt.Format(timeLayout),
		BladeThickness:  req.BladeThickness,
		RodsUsed:        run.RodsUsed,
		PiecesCut:       run.PiecesCut,
		Unfulfilled:     run.Unfulfilled,
		WastePercentage: run.WastePercentage,
		Request:         string(reqJSON),
		Plan:            string(planJSON),
	}
	_, err = s.db.NamedExecContext(ctx, `INSERT INTO runs
		(id, name, created_at, blade_thickness, rods_used, pieces_cut, unfulfilled, waste_percentage, request, plan)
		VALUES (:id, :name, :created_at, :blade_thickness, :rods_used, :pieces_cut, :unfulfilled, :waste_percentage, :request, :plan)`, row)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs first, without their request and plan
// bodies. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	var rows []runRow
	err := s.db.SelectContext(ctx, &rows, `SELECT id, name, created_at, blade_thickness, rods_used, pieces_cut,
		unfulfilled, waste_percentage, '' AS request, '' AS plan
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		run, err := r.toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Get returns one run with its request and plan.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	var row runRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return row.toRun()
}

// Delete removes a run. Deleting an unknown ID returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r runRow) toRun() (Run, error) {
	created, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: bad created_at: %w", r.ID, err)
	}
	run := Run{
		ID:              r.ID,
		Name:            r.Name,
		CreatedAt:       created,
		RodsUsed:        r.RodsUsed,
		PiecesCut:       r.PiecesCut,
		Unfulfilled:     r.Unfulfilled,
		WastePercentage: r.WastePercentage,
		Request:         model.PlanRequest{BladeThickness: r.BladeThickness},
	}
	if r.Request != "" {
		if err := json.Unmarshal([]byte(r.Request), &run.Request); err != nil {
			return Run{}, fmt.Errorf("run %s: decode request: %w", r.ID, err)
		}
	}
	if r.Plan != "" {
		if err := json.Unmarshal([]byte(r.Plan), &run.Plan); err != nil {
			return Run{}, fmt.Errorf("run %s: decode plan: %w", r.ID, err)
		}
	}
	return run, nil
}
