package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nissyi-gh/daytrack/internal/model"
	_ "modernc.org/sqlite"
)

// SQLite keeps the collection in an embedded database. Rows are keyed by
// their position, and Save replaces all of them in one transaction.
type SQLite struct {
	db *sql.DB
}

// optionalColumns were added after the first schema and are back-filled on open.
var optionalColumns = []struct {
	name string
	ddl  string
}{
	{"scheduled_start", "ALTER TABLE tasks ADD COLUMN scheduled_start TEXT"},
	{"started_at", "ALTER TABLE tasks ADD COLUMN started_at TEXT"},
	{"completed_at", "ALTER TABLE tasks ADD COLUMN completed_at TEXT"},
	{"time_spent", "ALTER TABLE tasks ADD COLUMN time_spent REAL NOT NULL DEFAULT 0"},
}

// NewSQLite opens (or creates) the database at path and ensures the schema exists.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS tasks (
		position    INTEGER PRIMARY KEY,
		name        TEXT    NOT NULL,
		category    TEXT    NOT NULL,
		priority    TEXT    NOT NULL,
		due_date    TEXT    NOT NULL,
		description TEXT    NOT NULL DEFAULT '',
		status      TEXT    NOT NULL DEFAULT 'Pending',
		created_at  TEXT    NOT NULL DEFAULT (datetime('now', 'localtime'))
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	for _, col := range optionalColumns {
		if err := migrateColumn(db, col.name, col.ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate %s: %w", col.name, err)
		}
	}

	return &SQLite{db: db}, nil
}

func migrateColumn(db *sql.DB, column, ddl string) error {
	rows, err := db.Query("PRAGMA table_info(tasks)")
	if err != nil {
		return err
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return err
		}
		if name == column {
			found = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	if !found {
		_, err := db.Exec(ddl)
		return err
	}
	return nil
}

func scanRecord(scanner interface{ Scan(...any) error }) (record, error) {
	var position int
	var name, category, priority, dueDate, description, status, createdAt string
	var scheduledStart, startedAt, completedAt sql.NullString
	var timeSpent sql.NullFloat64
	err := scanner.Scan(&position, &name, &category, &priority, &dueDate, &scheduledStart,
		&description, &status, &createdAt, &startedAt, &completedAt, &timeSpent)
	if err != nil {
		return nil, err
	}
	rec := record{
		"name":            name,
		"category":        category,
		"priority":        priority,
		"due_date":        dueDate,
		"scheduled_start": scheduledStart.String,
		"description":     description,
		"status":          status,
		"created_at":      createdAt,
		"started_at":      startedAt.String,
		"completed_at":    completedAt.String,
	}
	if timeSpent.Valid {
		rec["time_spent"] = strconv.FormatFloat(timeSpent.Float64, 'f', -1, 64)
	}
	return rec, nil
}

// Load returns all tasks ordered by position.
func (s *SQLite) Load() (model.Collection, error) {
	rows, err := s.db.Query(`SELECT position, name, category, priority, due_date, scheduled_start,
		description, status, created_at, started_at, completed_at, time_spent
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := model.Collection{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t, err := decodeTask(rec)
		if err != nil {
			return nil, fmt.Errorf("decode task %d: %w", len(tasks), err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Save replaces every row with c inside a single transaction.
func (s *SQLite) Save(c model.Collection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (position, name, category, priority, due_date,
		scheduled_start, description, status, created_at, started_at, completed_at, time_spent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range c {
		rec := encodeTask(t)
		_, err := stmt.Exec(i, rec["name"], rec["category"], rec["priority"], rec["due_date"],
			nullable(rec["scheduled_start"]), rec["description"], rec["status"], rec["created_at"],
			nullable(rec["started_at"]), nullable(rec["completed_at"]), t.TimeSpent)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
