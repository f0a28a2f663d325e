// Package store persists audit and classification records to SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	// SQLite driver (required for database/sql registration).
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	apperrors "github.com/inboxpilot-ai/inboxpilot/internal/errors"
	"github.com/inboxpilot-ai/inboxpilot/internal/logger"
	"github.com/inboxpilot-ai/inboxpilot/internal/triage"
)

// Classification rows stay queryable for one year.
const classificationTTLSeconds = 365 * 24 * 60 * 60

// Store writes processing records. It satisfies triage.Recorder.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at the given path, creating tables when
// they don't exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStoreWriteFailed, "failed to open audit database", apperrors.CategoryPermanent)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, apperrors.Wrap(err, apperrors.CodeStoreWriteFailed, "failed to configure audit database", apperrors.CategoryPermanent)
		}
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	// Expired rows are swept on open; a failed sweep is not fatal.
	if n, err := s.Prune(context.Background()); err != nil {
		logger.Logger.Warn("failed to prune expired classifications", zap.Error(err))
	} else if n > 0 {
		logger.Logger.Info("pruned expired classifications", zap.Int64("rows", n))
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_log (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id  TEXT NOT NULL,
		status      TEXT NOT NULL,
		subject     TEXT,
		sender      TEXT,
		user_id     TEXT NOT NULL DEFAULT 'anonymous',
		detail      TEXT,
		created_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_audit_request ON audit_log(request_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_audit_user ON audit_log(user_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS classifications (
		request_id  TEXT PRIMARY KEY,
		subject     TEXT,
		sender      TEXT,
		user_id     TEXT NOT NULL DEFAULT 'anonymous',
		tool_name   TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		expires_at  INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_class_user ON classifications(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_class_tool ON classifications(tool_name);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return apperrors.Wrap(err, apperrors.CodeStoreWriteFailed, "failed to initialize audit schema", apperrors.CategoryPermanent)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// RecordAudit appends one audit row.
func (s *Store) RecordAudit(ctx context.Context, entry triage.AuditEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (request_id, status, subject, sender, user_id, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RequestID, entry.Status, entry.Subject, entry.Sender, entry.UserID, entry.Detail,
		entry.Timestamp.Unix(),
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStoreWriteFailed, "failed to save audit record", apperrors.CategoryTemporary)
	}
	return nil
}

// RecordClassification upserts the classification result for a request.
func (s *Store) RecordClassification(ctx context.Context, rec triage.ClassificationRecord) error {
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStoreWriteFailed, "failed to encode classification result", apperrors.CategoryPermanent)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO classifications (request_id, subject, sender, user_id, tool_name, result_json, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(request_id) DO UPDATE SET
			tool_name = excluded.tool_name,
			result_json = excluded.result_json`,
		rec.RequestID, rec.Subject, rec.Sender, rec.UserID, rec.ToolName, string(resultJSON),
		rec.Timestamp.Unix(), rec.Timestamp.Unix()+classificationTTLSeconds,
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStoreWriteFailed, "failed to save classification record", apperrors.CategoryTemporary)
	}
	return nil
}

// Prune deletes classification rows past their expiry and reports how
// many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM classifications WHERE expires_at < strftime('%s', 'now')`)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeStoreWriteFailed, "failed to prune classifications", apperrors.CategoryTemporary)
	}
	return res.RowsAffected()
}

// AuditTrail returns the audit rows for one request in insertion order.
func (s *Store) AuditTrail(ctx context.Context, requestID string) ([]triage.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT request_id, status, subject, sender, user_id, detail
		 FROM audit_log WHERE request_id = ? ORDER BY id`,
		requestID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStoreWriteFailed, "failed to query audit trail", apperrors.CategoryTemporary)
	}
	defer rows.Close()

	var entries []triage.AuditEntry
	for rows.Next() {
		var e triage.AuditEntry
		if err := rows.Scan(&e.RequestID, &e.Status, &e.Subject, &e.Sender, &e.UserID, &e.Detail); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStoreWriteFailed, "failed to scan audit row", apperrors.CategoryPermanent)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
