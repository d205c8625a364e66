// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for
// storage/db. It must be imported instead of go-sqlite3 to ensure
// proper configuration of the database.
package sqlite3

import (
	"database/sql"

	"github.com/jostmorgenstern/End-to-end-ML-System-Benchmark/storage/db"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// An in-memory database exists separately for each
		// connection, so the pool must be limited to one.
		db.SetMaxOpenConns(1)
		_, err := db.Exec("PRAGMA foreign_keys = ON")
		return err
	})
}
