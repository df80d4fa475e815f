package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salesflow/crm/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// withTransaction runs fn in a transaction that is rolled back unless fn succeeds.
func withTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// keysetPage adds the created_at/id keyset condition of a cursor and the LIMIT limit+1 probe.
func keysetPage(q sq.SelectBuilder, table string, page domain.Page) (sq.SelectBuilder, error) {
	page.Normalize()
	createdAt, id := table+".created_at", table+".id"
	if page.Cursor != "" {
		ts, cursorID, err := domain.DecodeCursor(page.Cursor)
		if err != nil {
			return q, err
		}
		q = q.Where(sq.Or{
			sq.Lt{createdAt: ts},
			sq.And{sq.Eq{createdAt: ts}, sq.Lt{id: cursorID}},
		})
	}
	return q.OrderBy(createdAt+" DESC", id+" DESC").Limit(uint64(page.Limit + 1)), nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func rowsAffectedOrNotFound(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return domain.NewNotFound(entity, id)
	}
	return nil
}

// joinColumns renders qualified columns for a RETURNING clause, dropping the table prefix.
func joinColumns(cols []string, prefix string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = strings.TrimPrefix(c, prefix)
	}
	return strings.Join(out, ", ")
}
