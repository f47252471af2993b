// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"database/sql"

	"github.com/cpmech/gosl/chk"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/StanfordCBCL/svZeroDPlus/sim"
)

// WriteDB archives the results into an SQLite database: one row per run
// in "runs" and one row per (variable, time) in "results". Each call
// appends a new run tagged with a fresh uuid, so repeated simulations on
// the same file accumulate.
func WriteDB(path string, res *sim.Results) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return chk.Err("cannot open results database %q:\n%v", path, err)
	}
	defer db.Close()

	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id),
			name   TEXT NOT NULL,
			time   REAL NOT NULL,
			y      REAL NOT NULL,
			ydot   REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS results_run_name ON results(run_id, name)`,
	} {
		if _, err = db.Exec(ddl); err != nil {
			return chk.Err("cannot create results schema:\n%v", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return chk.Err("cannot begin transaction:\n%v", err)
	}
	defer tx.Rollback()

	runID := uuid.New().String()
	if _, err = tx.Exec(`INSERT INTO runs (id) VALUES (?)`, runID); err != nil {
		return chk.Err("cannot insert run:\n%v", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO results (run_id, name, time, y, ydot) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return chk.Err("cannot prepare insert:\n%v", err)
	}
	defer stmt.Close()

	for id, name := range res.Model.Dof.Variables {
		for k, t := range res.Times {
			if _, err = stmt.Exec(runID, name, t, res.States[k].Y[id], res.States[k].Ydot[id]); err != nil {
				return chk.Err("cannot insert result row:\n%v", err)
			}
		}
	}
	return tx.Commit()
}
