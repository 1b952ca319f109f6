// Package runstore archives config-driven runs into an embedded SQLite
// database so past results can be listed and re-exported later.
package runstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"progmap/lib/catalog"

	_ "embed"

	"github.com/mazen160/go-random"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var ErrRunNotFound = fmt.Errorf("run not found")

type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the archive database at path and
// applies the schema. ":memory:" is accepted for tests.
func Open(path string) (Store, error) {
	if path == "" {
		return Store{}, fmt.Errorf("an archive path was not specified")
	}

	if path != ":memory:" {
		_, statErr := os.Stat(path)
		if os.IsNotExist(statErr) {
			f, err := os.Create(path)
			if err != nil {
				return Store{}, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return Store{}, err
	}

	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return Store{}, fmt.Errorf("apply archive schema: %w", err)
	}

	return Store{db: db}, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

// Run is one archived scraping run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Mock       bool
	Results    []catalog.Result
}

// RunSummary is the listing row for one archived run.
type RunSummary struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	Mock         bool
	Universities int
	Successes    int
	Programmes   int
}

// SaveRun archives a finished run in a single transaction and returns
// its id, generating an 8-char random one when the caller left it empty.
func (s Store) SaveRun(ctx context.Context, run Run) (string, error) {
	id := run.ID
	if id == "" {
		var err error
		id, err = random.String(8)
		if err != nil {
			return "", fmt.Errorf("generate run id: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, finished_at, mock) VALUES (?, ?, ?, ?)`,
		id, run.StartedAt.Unix(), run.FinishedAt.Unix(), run.Mock,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, result := range run.Results {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO results (run_id, university, success, error, scraped_at)
			 VALUES (?, ?, ?, ?, ?)`,
			id, result.University, result.Success, result.Error, result.ScrapedAt.Unix(),
		)
		if err != nil {
			return "", fmt.Errorf("insert result for %q: %w", result.University, err)
		}

		for idx, p := range result.Programmes {
			_, err = tx.ExecContext(
				ctx,
				`INSERT INTO programmes (
					run_id, university, idx,
					abbr, label, faculty, title, mode, link,
					duration, fees, start, deadline, description
				 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, result.University, idx,
				p.Abbr, p.University, p.Faculty, p.Title, p.Mode, p.Link,
				p.Duration, p.Fees, p.Start, p.Deadline, p.Description,
			)
			if err != nil {
				return "", fmt.Errorf("insert programme %d for %q: %w", idx, result.University, err)
			}
		}
	}

	return id, tx.Commit()
}

// ListRuns returns newest-first run summaries. limit <= 0 lists
// everything.
func (s Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT
			r.id, r.started_at, r.finished_at, r.mock,
			(SELECT COUNT(*) FROM results WHERE run_id = r.id),
			(SELECT COUNT(*) FROM results WHERE run_id = r.id AND success = 1),
			(SELECT COUNT(*) FROM programmes WHERE run_id = r.id)
		 FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var summary RunSummary
		var startedAt, finishedAt int64
		err = rows.Scan(
			&summary.ID, &startedAt, &finishedAt, &summary.Mock,
			&summary.Universities, &summary.Successes, &summary.Programmes,
		)
		if err != nil {
			return nil, err
		}
		summary.StartedAt = time.Unix(startedAt, 0)
		summary.FinishedAt = time.Unix(finishedAt, 0)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// GetRun loads one archived run with its results and programmes in the
// order they were saved.
func (s Store) GetRun(ctx context.Context, id string) (Run, error) {
	run := Run{ID: id}

	var startedAt, finishedAt int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT started_at, finished_at, mock FROM runs WHERE id = ?`,
		id,
	).Scan(&startedAt, &finishedAt, &run.Mock)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, err
	}
	run.StartedAt = time.Unix(startedAt, 0)
	run.FinishedAt = time.Unix(finishedAt, 0)

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT university, success, error, scraped_at FROM results
		 WHERE run_id = ? ORDER BY rowid`,
		id,
	)
	if err != nil {
		return Run{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var result catalog.Result
		var scrapedAt int64
		err = rows.Scan(&result.University, &result.Success, &result.Error, &scrapedAt)
		if err != nil {
			return Run{}, err
		}
		result.ScrapedAt = time.Unix(scrapedAt, 0)
		result.Programmes = []catalog.Programme{}
		run.Results = append(run.Results, result)
	}
	err = rows.Err()
	if err != nil {
		return Run{}, err
	}

	for i := range run.Results {
		programmes, err := s.runProgrammes(ctx, id, run.Results[i].University)
		if err != nil {
			return Run{}, err
		}
		run.Results[i].Programmes = programmes
	}
	return run, nil
}

func (s Store) runProgrammes(ctx context.Context, id, university string) ([]catalog.Programme, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT abbr, label, faculty, title, mode, link,
			duration, fees, start, deadline, description
		 FROM programmes
		 WHERE run_id = ? AND university = ?
		 ORDER BY idx`,
		id, university,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programmes := []catalog.Programme{}
	for rows.Next() {
		var p catalog.Programme
		err = rows.Scan(
			&p.Abbr, &p.University, &p.Faculty, &p.Title, &p.Mode, &p.Link,
			&p.Duration, &p.Fees, &p.Start, &p.Deadline, &p.Description,
		)
		if err != nil {
			return nil, err
		}
		programmes = append(programmes, p)
	}
	return programmes, rows.Err()
}
