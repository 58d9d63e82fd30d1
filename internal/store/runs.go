package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned by GetRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one ledger row.
type Run struct {
	Seq           int64   `json:"seq"`
	ID            string  `json:"id"`
	Process       string  `json:"process"`
	ECM           float64 `json:"ecm"`
	PDF           string  `json:"pdf,omitempty"`
	Seed          uint64  `json:"seed"`
	Window        float64 `json:"window"`
	Samples       int64   `json:"samples"`
	Events        int64   `json:"events"`
	Trials        int64   `json:"trials"`
	SigmaPb       float64 `json:"sigma_pb"`
	ErrorPb       float64 `json:"error_pb"`
	MaxWeight     float64 `json:"max_weight"`
	CosThetaAtMax float64 `json:"costh_at_max"`
	Efficiency    float64 `json:"efficiency"`
}

const runColumns = `seq, id, process, ecm, pdf, seed, cos_window, samples, events,
	trials, sigma_pb, error_pb, max_weight, costh_at_max, efficiency`

// WriteRun inserts r and returns its assigned seq. r.Seq is ignored.
// r.ID must be a UUID.
func (s *Store) WriteRun(ctx context.Context, r Run) (int64, error) {
	if err := uuid.Validate(r.ID); err != nil {
		return 0, fmt.Errorf("invalid run id %q: %w", r.ID, err)
	}

	// go-sqlite3 rejects uint64 values with the high bit set; store the
	// seed's bit pattern as int64.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, process, ecm, pdf, seed, cos_window, samples, events,
			trials, sigma_pb, error_pb, max_weight, costh_at_max, efficiency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Process, r.ECM, r.PDF, int64(r.Seed), r.Window, r.Samples, r.Events,
		r.Trials, r.SigmaPb, r.ErrorPb, r.MaxWeight, r.CosThetaAtMax, r.Efficiency,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	return seq, nil
}

// GetRun returns the run with the given ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// ListRuns returns runs in insertion order. An empty process matches every
// process; limit <= 0 means no limit, otherwise the most recent limit runs
// are returned, still oldest first.
func (s *Store) ListRuns(ctx context.Context, process string, limit int) ([]Run, error) {
	var (
		where []string
		args  []any
	)
	if process != "" {
		where = append(where, "process = ?")
		args = append(args, process)
	}
	if limit > 0 {
		where = append(where, "seq > COALESCE((SELECT seq FROM runs"+filter(process)+
			" ORDER BY seq DESC LIMIT 1 OFFSET ?), 0)")
		if process != "" {
			args = append(args, process)
		}
		args = append(args, limit)
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq ASC, id ASC COLLATE BINARY"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func filter(process string) string {
	if process == "" {
		return ""
	}
	return " WHERE process = ?"
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r    Run
		seed int64
	)
	err := sc.Scan(&r.Seq, &r.ID, &r.Process, &r.ECM, &r.PDF, &seed, &r.Window,
		&r.Samples, &r.Events, &r.Trials, &r.SigmaPb, &r.ErrorPb, &r.MaxWeight,
		&r.CosThetaAtMax, &r.Efficiency)
	if err != nil {
		return Run{}, err
	}
	r.Seed = uint64(seed)
	return r, nil
}
