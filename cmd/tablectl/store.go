package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nrfta/datatable-go"
	"github.com/nrfta/datatable-go/sqlboiler"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS submissions (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	score      INTEGER NOT NULL,
	status     TEXT NOT NULL,
	notes      TEXT,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_score ON submissions(score, id);
`

var statuses = []string{"open", "review", "closed"}

// Submission is one row of the submissions table.
type Submission struct {
	ID        string      `boil:"id"`
	Title     string      `boil:"title"`
	Score     int         `boil:"score"`
	Status    string      `boil:"status"`
	Notes     null.String `boil:"notes"`
	CreatedAt time.Time   `boil:"created_at"`
}

func submissionColumns() []datatable.Column[Submission] {
	return []datatable.Column[Submission]{
		{Label: "Title", Field: "title", Render: func(s Submission) string { return s.Title }},
		{Label: "Score", Field: "score", Default: true, SortDirection: datatable.Desc, Render: func(s Submission) string { return strconv.Itoa(s.Score) }},
		{Label: "Status", Field: "status", Render: func(s Submission) string { return s.Status }},
		{Label: "Created", Field: "createdAt", Render: func(s Submission) string { return s.CreatedAt.Format("2006-01-02 15:04") }},
		{Label: "Notes", Key: "notes", SortDisabled: true, Render: func(s Submission) string { return s.Notes.String }},
	}
}

type store struct {
	db          *sql.DB
	submissions *sqlboiler.Table[Submission]
}

func openStore(ctx context.Context, path string) (*store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	return &store{
		db:          db,
		submissions: sqlboiler.NewTable[Submission]("submissions", sqlboiler.SQLiteDialect, db),
	}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

// source returns a datatable source over the submissions, filtered by status when
// one is given.
func (s *store) source(status string) *sqlboiler.Source[Submission] {
	return s.submissions.Source(
		sqlboiler.WithTieBreaker("id"),
		sqlboiler.WithFilters(statusFilter(status)...),
	)
}

func statusFilter(status string) []qm.QueryMod {
	if status == "" {
		return nil
	}
	return []qm.QueryMod{qm.Where("status = ?", status)}
}

// seed inserts n generated submissions in one transaction, dropping existing rows
// first when reset is set.
func (s *store) seed(ctx context.Context, n int, reset bool, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin seed")
	}
	defer tx.Rollback()

	if reset {
		if _, err := tx.ExecContext(ctx, "DELETE FROM submissions"); err != nil {
			return errors.Wrap(err, "reset submissions")
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO submissions (id, title, score, status, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		notes := null.String{}
		if i%4 == 0 {
			notes = null.StringFrom(fmt.Sprintf("follow up #%d", i/4+1))
		}
		_, err := stmt.ExecContext(ctx,
			uuid.New().String(),
			fmt.Sprintf("Submission %03d", i+1),
			(i*37)%100+1,
			statuses[i%len(statuses)],
			notes,
			now.Add(-time.Duration(i)*time.Hour).UTC(),
		)
		if err != nil {
			return errors.Wrapf(err, "insert submission %d", i+1)
		}
	}
	return errors.Wrap(tx.Commit(), "commit seed")
}
