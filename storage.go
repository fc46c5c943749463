package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

const timeLayout = "2006-01-02 15:04:05"

type Storage struct {
	db *sql.DB
}

type RunRecord struct {
	Started    time.Time
	Database   string
	Output     string
	Schema     string
	Executable string
	Attempt    int
	ExitCode   int
	Elapsed    float64
	Error      string
}

// StorageDriver picks the database/sql driver for a results database location.
func StorageDriver(url string) string {
	for _, prefix := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(url, prefix) {
			return "libsql"
		}
	}
	return "sqlite3"
}

func OpenStorage(url string) (*Storage, error) {
	driver := StorageDriver(url)
	dsn := url
	if driver == "sqlite3" {
		dsn = strings.TrimPrefix(url, "sqlite://")
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open results db %v: %w", url, err)
	}
	Logger.Debugf("opened results db %v with driver %v", url, driver)
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Init(meta map[string]any) error {
	_, err := s.db.Exec("CREATE TABLE IF NOT EXISTS parameters (name TEXT PRIMARY KEY, value)")
	if err != nil {
		return err
	}
	parameters := make([]any, 0)
	parameters = append(parameters, "time", time.Now().Format(timeLayout))
	for key, value := range meta {
		parameters = append(parameters, key, fmt.Sprintf("%v", value))
	}
	placeholders := strings.Join(slices.Repeat([]string{"(?, ?)"}, len(parameters)/2), ", ")
	_, err = s.db.Exec(
		fmt.Sprintf("INSERT INTO parameters VALUES %v ON CONFLICT (name) DO UPDATE SET value = excluded.value", placeholders),
		parameters...,
	)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		started TEXT,
		db_path TEXT,
		out_path TEXT,
		schema_filter TEXT,
		executable TEXT,
		attempt INTEGER,
		exit_code INTEGER,
		elapsed REAL,
		error TEXT
	)`)
	if err != nil {
		return err
	}
	Logger.Infof("initialized results database with meta %v", meta)
	return nil
}

func (s *Storage) Parameters() (map[string]string, error) {
	rows, err := s.db.Query("SELECT name, value FROM parameters")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results := make(map[string]string, 0)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		results[name] = value
	}
	return results, rows.Err()
}

func (s *Storage) RecordRuns(records []RunRecord) error {
	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, record := range records {
		_, err = tx.Exec(
			"INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			record.Started.Format(timeLayout),
			record.Database,
			record.Output,
			record.Schema,
			record.Executable,
			record.Attempt,
			record.ExitCode,
			record.Elapsed,
			record.Error,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// History returns the latest runs, newest first.
func (s *Storage) History(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT started, db_path, out_path, schema_filter, executable, attempt, exit_code, elapsed, error
		FROM runs ORDER BY started DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := make([]RunRecord, 0)
	for rows.Next() {
		var record RunRecord
		var started string
		err = rows.Scan(
			&started,
			&record.Database,
			&record.Output,
			&record.Schema,
			&record.Executable,
			&record.Attempt,
			&record.ExitCode,
			&record.Elapsed,
			&record.Error,
		)
		if err != nil {
			return nil, err
		}
		record.Started, err = time.ParseInLocation(timeLayout, started, time.Local)
		if err != nil {
			return nil, fmt.Errorf("bad run timestamp %q: %w", started, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// RunRecords converts session attempts into storable records.
func RunRecords(started time.Time, request InvocationRequest, attempts []AttemptResult) []RunRecord {
	schema, _ := request.Schema()
	records := make([]RunRecord, 0, len(attempts))
	for _, attempt := range attempts {
		record := RunRecord{
			Started:    started,
			Database:   request.DatabasePath,
			Output:     request.OutputPath,
			Schema:     schema,
			Executable: attempt.Executable,
			Attempt:    attempt.Attempt,
			ExitCode:   attempt.ExitCode,
			Elapsed:    attempt.Elapsed.Seconds(),
		}
		if attempt.Err != nil {
			record.Error = attempt.Err.Error()
		}
		records = append(records, record)
	}
	return records
}
