// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db provides the database interface for benchmark
// measurement stores.
//
// A store holds two kinds of records: runs, one per execution of a
// benchmarked pipeline, and measurements, one per recorded metric
// instance belonging to a run. The visualization tool only reads;
// the writing side is used by the recording harness and by tests.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// DB is a high-level interface to a measurement store. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	selectIndex       *sql.Stmt
	selectRuns        *sql.Stmt
	insertRun         *sql.Stmt
	insertMeasurement *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only sqlite3 is
// explicitly supported; other database engines will receive generic
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. This is used by the sqlite3 package to
// limit the connection count and enable foreign keys. It must be
// called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID VARCHAR(255) PRIMARY KEY,
	Description VARCHAR(8192),
	StartTime TIMESTAMP
);
CREATE TABLE IF NOT EXISTS Measurements (
	MeasurementID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	RunID VARCHAR(255),
	MeasurementType VARCHAR(255),
	Description VARCHAR(8192),
	Datetime TIMESTAMP,
	Value BLOB,
	Unit VARCHAR(255),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS MeasurementsRunType ON Measurements(RunID, MeasurementType);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.selectIndex, err = db.sql.Prepare(
		"SELECT MeasurementID, RunID, MeasurementType, Description FROM Measurements ORDER BY MeasurementID")
	if err != nil {
		return err
	}
	db.selectRuns, err = db.sql.Prepare(
		"SELECT RunID, Description, StartTime FROM Runs ORDER BY StartTime, RunID")
	if err != nil {
		return err
	}
	db.insertRun, err = db.sql.Prepare(
		"INSERT INTO Runs(RunID, Description, StartTime) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertMeasurement, err = db.sql.Prepare(
		"INSERT INTO Measurements(RunID, MeasurementType, Description, Datetime, Value, Unit) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// An IndexRow summarizes one measurement: everything needed for
// filtering and selection, without the value payload.
type IndexRow struct {
	ID          int64
	RunID       string
	Type        string
	Description string
}

// A RunRow describes one benchmark run.
type RunRow struct {
	RunID       string
	Description string
	Start       time.Time
}

// A PayloadRow carries the deferred columns of one measurement: its
// timestamp, serialized value and unit.
type PayloadRow struct {
	ID    int64
	Time  time.Time
	Value []byte
	Unit  string
}

// MeasurementIndex returns the summary columns of every measurement
// in the store, in insertion order.
func (db *DB) MeasurementIndex(ctx context.Context) ([]IndexRow, error) {
	rows, err := db.selectIndex.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []IndexRow
	for rows.Next() {
		var r IndexRow
		var desc sql.NullString
		if err := rows.Scan(&r.ID, &r.RunID, &r.Type, &desc); err != nil {
			return nil, err
		}
		r.Description = desc.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Runs returns every run in the store, ordered by start time.
func (db *DB) Runs(ctx context.Context) ([]RunRow, error) {
	rows, err := db.selectRuns.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RunRow
	for rows.Next() {
		var r RunRow
		var desc sql.NullString
		if err := rows.Scan(&r.RunID, &desc, &r.Start); err != nil {
			return nil, err
		}
		r.Description = desc.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Payloads returns the deferred columns for exactly the given
// measurement IDs. The result is ordered by ID; IDs not present in
// the store are absent from the result.
func (db *DB) Payloads(ctx context.Context, ids []int64) ([]PayloadRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT MeasurementID, Datetime, Value, Unit FROM Measurements WHERE MeasurementID IN (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + ") ORDER BY MeasurementID"
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PayloadRow
	for rows.Next() {
		var p PayloadRow
		var unit sql.NullString
		if err := rows.Scan(&p.ID, &p.Time, &p.Value, &unit); err != nil {
			return nil, err
		}
		p.Unit = unit.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateRun records a new run. The run ID must be unique.
func (db *DB) CreateRun(ctx context.Context, r RunRow) error {
	_, err := db.insertRun.ExecContext(ctx, r.RunID, r.Description, r.Start)
	return err
}

// InsertMeasurement records one measurement belonging to an existing
// run and returns its assigned ID.
func (db *DB) InsertMeasurement(ctx context.Context, runID, typ, description string, tm time.Time, value []byte, unit string) (int64, error) {
	res, err := db.insertMeasurement.ExecContext(ctx, runID, typ, description, tm, value, unit)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.selectIndex, db.selectRuns, db.insertRun, db.insertMeasurement} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
