// Package journal records storage activity in Postgres.
//
// The journal is optional. A nil *Journal (or one without a database)
// turns every method into a no-op, so the bot runs unchanged without a
// configured database.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/dricdias/telegram-bot/core/logger"
)

const writeTimeout = 3 * time.Second

// Journal persists upload events and answers growth queries.
type Journal struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Journal {
	if db == nil {
		return nil
	}
	return &Journal{db: db}
}

// Enabled reports whether events are actually persisted.
func (j *Journal) Enabled() bool {
	return j != nil && j.db != nil
}

// RecordSave stores a save event. Failures are logged, never returned;
// journaling must not break a save that already succeeded.
func (j *Journal) RecordSave(ctx context.Context, category, name string, size int64, kind string) {
	j.record(ctx, "save", category, name, size, kind)
}

// RecordDelete stores a delete event.
func (j *Journal) RecordDelete(ctx context.Context, category, name string) {
	j.record(ctx, "delete", category, name, 0, "")
}

func (j *Journal) record(ctx context.Context, event, category, name string, size int64, kind string) {
	if !j.Enabled() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	const query = `
		INSERT INTO upload_events (category, file_name, event, kind, size_bytes)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := j.db.ExecContext(writeCtx, query, category, name, event, kind, size); err != nil {
		logger.Warn(ctx, "journal", "event insert failed",
			slog.String("journal_event", event),
			slog.String("category", category),
			slog.String("file", name),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Debug(ctx, "journal", "event recorded",
		slog.String("journal_event", event),
		slog.String("category", category),
		slog.String("file", name),
	)
}

// GrowthPoint is the number of saves for a category on one day.
type GrowthPoint struct {
	Day   time.Time `db:"day"`
	Count int       `db:"count"`
}

// GrowthByDay returns save counts per day for a category, oldest day
// first. Without a database it returns nil so callers fall back to
// filesystem timestamps.
func (j *Journal) GrowthByDay(ctx context.Context, category string) ([]GrowthPoint, error) {
	if !j.Enabled() {
		return nil, nil
	}
	const query = `
		SELECT date_trunc('day', created_at) AS day, count(*) AS count
		FROM upload_events
		WHERE event = 'save' AND category = $1
		GROUP BY day
		ORDER BY day`
	var points []GrowthPoint
	if err := j.db.SelectContext(ctx, &points, query, category); err != nil {
		return nil, err
	}
	return points, nil
}

// NewestCategory returns the category with the most recent save event
// and when it happened. Returns ok=false without data or database.
func (j *Journal) NewestCategory(ctx context.Context) (name string, at time.Time, ok bool) {
	if !j.Enabled() {
		return "", time.Time{}, false
	}
	const query = `
		SELECT category, max(created_at) AS at
		FROM upload_events
		WHERE event = 'save'
		GROUP BY category
		ORDER BY at DESC
		LIMIT 1`
	var row struct {
		Category string    `db:"category"`
		At       time.Time `db:"at"`
	}
	if err := j.db.GetContext(ctx, &row, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, false
		}
		logger.Warn(ctx, "journal", "newest category query failed",
			slog.String("err", err.Error()),
		)
		return "", time.Time{}, false
	}
	return row.Category, row.At, true
}
