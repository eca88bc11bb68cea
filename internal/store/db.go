package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-import-pipeline/internal/model"
)

// DB is the SQLite-backed storage engine rows are committed to.
type DB struct {
	db *sql.DB
}

// InitDB opens (or creates) the database and its tables.
func InitDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	batchTable := `
	CREATE TABLE IF NOT EXISTS import_batches (
		id TEXT PRIMARY KEY,
		entity TEXT,
		mode TEXT,
		row_count INTEGER,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	rowTable := `
	CREATE TABLE IF NOT EXISTS entity_rows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity TEXT,
		doc TEXT,
		created_at DATETIME
	);
	`
	rowIndex := `CREATE INDEX IF NOT EXISTS idx_entity_rows_entity ON entity_rows(entity);`

	for _, ddl := range []string{batchTable, rowTable, rowIndex} {
		if _, err := conn.Exec(ddl); err != nil {
			return nil, err
		}
	}
	return &DB{db: conn}, nil
}

// Close releases the underlying connection.
func (s *DB) Close() error {
	return s.db.Close()
}

// BulkInsert writes all rows of one batch in a single transaction; either
// every row lands or none does.
func (s *DB) BulkInsert(ctx context.Context, entityKey string, rows []model.TargetRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entity_rows (entity, doc, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, row := range rows {
		doc, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, entityKey, string(doc), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Clear removes every stored row of an entity. Invoked only in overwrite
// mode, before the insert.
func (s *DB) Clear(ctx context.Context, entityKey string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entity_rows WHERE entity = ?`, entityKey)
	return err
}

// CountRows returns the number of stored rows for an entity.
func (s *DB) CountRows(ctx context.Context, entityKey string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entity_rows WHERE entity = ?`, entityKey).Scan(&n)
	return n, err
}

// ListRows returns stored rows for an entity in insertion order.
func (s *DB) ListRows(ctx context.Context, entityKey string, limit int) ([]model.TargetRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM entity_rows WHERE entity = ? ORDER BY id LIMIT ?`, entityKey, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TargetRow
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var row model.TargetRow
		if err := json.Unmarshal([]byte(doc), &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SaveBatch records an import batch.
func (s *DB) SaveBatch(batch *model.ImportBatch, status string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO import_batches (id, entity, mode, row_count, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		batch.ID, batch.EntityKey, string(batch.Mode), len(batch.Rows), status, now, now)
	return err
}

// UpdateBatchStatus updates a batch's status and row count.
func (s *DB) UpdateBatchStatus(batchID, status string, rowCount int) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE import_batches SET status = ?, row_count = ?, updated_at = ? WHERE id = ?`,
		status, rowCount, now, batchID)
	return err
}

// ListBatches returns recorded batches, newest first.
func (s *DB) ListBatches() ([]map[string]interface{}, error) {
	rows, err := s.db.Query(
		`SELECT id, entity, mode, row_count, status, created_at, updated_at
		 FROM import_batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []map[string]interface{}
	for rows.Next() {
		var id, entity, mode, status string
		var rowCount int
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &entity, &mode, &rowCount, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, map[string]interface{}{
			"id":        id,
			"entity":    entity,
			"mode":      mode,
			"rowCount":  rowCount,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return batches, rows.Err()
}
