// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	_ "modernc.org/sqlite"
)

const dbSchema = `
CREATE TABLE IF NOT EXISTS frames (
  id        INTEGER PRIMARY KEY AUTOINCREMENT,
  step      TEXT    NOT NULL,
  stepnum   INTEGER NOT NULL,
  frame     INTEGER NOT NULL,
  start     REAL    NOT NULL,
  increment REAL    NOT NULL,
  time      REAL    NOT NULL
);
CREATE TABLE IF NOT EXISTS fields (
  frame_id INTEGER NOT NULL REFERENCES frames(id),
  block    TEXT    NOT NULL,
  name     TEXT    NOT NULL,
  kind     INTEGER NOT NULL,
  position INTEGER NOT NULL,
  ngauss   INTEGER NOT NULL,
  comps    TEXT    NOT NULL,
  PRIMARY KEY (frame_id, block, name)
);
CREATE TABLE IF NOT EXISTS field_values (
  frame_id INTEGER NOT NULL REFERENCES frames(id),
  block    TEXT    NOT NULL,
  name     TEXT    NOT NULL,
  label    INTEGER NOT NULL,
  ip       INTEGER NOT NULL,
  comp     TEXT    NOT NULL,
  value    REAL    NOT NULL
);
CREATE INDEX IF NOT EXISTS field_values_lookup ON field_values (block, name, label, ip, comp);
`

// DB stores frame records in a SQLite database
type DB struct {
	sqlDB *sql.DB
}

// OpenDB opens (or creates) a results database
func OpenDB(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, chk.Err("results database path is required")
	}
	dsn := filepath.Clean(path) + "?_foreign_keys=ON&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, chk.Err("cannot open results database %q:\n%v", path, err)
	}
	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, chk.Err("cannot ping results database %q:\n%v", path, err)
	}
	if _, err = sqlDB.Exec(dbSchema); err != nil {
		_ = sqlDB.Close()
		return nil, chk.Err("cannot create tables in results database %q:\n%v", path, err)
	}
	return &DB{sqlDB: sqlDB}, nil
}

// Close closes the database handle
func (o *DB) Close() error {
	if o == nil || o.sqlDB == nil {
		return nil
	}
	return o.sqlDB.Close()
}

// SaveFrames inserts all records within one transaction
func (o *DB) SaveFrames(ctx context.Context, recs []*FrameRecord) (err error) {
	tx, err := o.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return chk.Err("cannot begin transaction:\n%v", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, rec := range recs {
		if err = insertFrame(ctx, tx, rec); err != nil {
			return
		}
	}
	if err = tx.Commit(); err != nil {
		return chk.Err("cannot commit frames:\n%v", err)
	}
	return nil
}

func insertFrame(ctx context.Context, tx *sql.Tx, rec *FrameRecord) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO frames (step, stepnum, frame, start, increment, time) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Step, rec.StepNum, rec.Frame, rec.Start, rec.Increment, rec.Time)
	if err != nil {
		return chk.Err("cannot insert frame %d of step %q:\n%v", rec.Frame, rec.Step, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return chk.Err("cannot get id of frame %d of step %q:\n%v", rec.Frame, rec.Step, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO field_values (frame_id, block, name, label, ip, comp, value) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return chk.Err("cannot prepare statement:\n%v", err)
	}
	defer stmt.Close()
	for _, f := range rec.Fields {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO fields (frame_id, block, name, kind, position, ngauss, comps) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, f.Block, f.Name, int(f.Kind), int(f.Position), f.Ngauss, strings.Join(f.Comps, ","))
		if err != nil {
			return chk.Err("cannot insert field output %q:\n%v", f.Key(), err)
		}
		for i, label := range f.Labels {
			for ip := 0; ip < f.Ngauss; ip++ {
				for c, comp := range f.Comps {
					if _, err = stmt.ExecContext(ctx, id, f.Block, f.Name, label, ip, comp, f.At(i, ip, c)); err != nil {
						return chk.Err("cannot insert value of %q at label %d:\n%v", f.Key(), label, err)
					}
				}
			}
		}
	}
	return nil
}

// NumFrames returns the number of stored frames
func (o *DB) NumFrames(ctx context.Context) (n int, err error) {
	err = o.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM frames`).Scan(&n)
	if err != nil {
		err = chk.Err("cannot count frames:\n%v", err)
	}
	return
}

// History returns the times and values of one component of a field output at a label over all
// stored frames, in insertion order. An empty comp selects the first component
func (o *DB) History(ctx context.Context, key Key, label, ip int, comp string) (t, v []float64, err error) {
	if comp == "" {
		var comps string
		err = o.sqlDB.QueryRowContext(ctx, `SELECT comps FROM fields WHERE block = ? AND name = ? LIMIT 1`,
			key.Block, key.Name).Scan(&comps)
		if err != nil {
			return nil, nil, chk.Err("field output %q is not available:\n%v", key, err)
		}
		comp = strings.Split(comps, ",")[0]
	}
	rows, err := o.sqlDB.QueryContext(ctx,
		`SELECT f.time, v.value FROM field_values v JOIN frames f ON f.id = v.frame_id
		 WHERE v.block = ? AND v.name = ? AND v.label = ? AND v.ip = ? AND v.comp = ?
		 ORDER BY f.id`, key.Block, key.Name, label, ip, comp)
	if err != nil {
		return nil, nil, chk.Err("cannot query history of %q:\n%v", key, err)
	}
	defer rows.Close()
	for rows.Next() {
		var time, value float64
		if err = rows.Scan(&time, &value); err != nil {
			return nil, nil, chk.Err("cannot scan history of %q:\n%v", key, err)
		}
		t = append(t, time)
		v = append(v, value)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, chk.Err("cannot read history of %q:\n%v", key, err)
	}
	if len(t) == 0 {
		return nil, nil, chk.Err("history of %q at label %d, ip %d, component %q is not available", key, label, ip, comp)
	}
	return
}
