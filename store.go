// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.24
//

// SQLite persistence of simulation trajectories. The caller must import a
// database/sql driver registered under the name "sqlite"
// (e.g. modernc.org/sqlite).

package goxnav

import (
	"database/sql"
	"fmt"
)

// TrajectoryStore records step results into a SQLite database.
type TrajectoryStore struct {
	db *sql.DB
}

// OpenTrajectoryStore opens (creating if needed) the trajectory database
// at the given path and ensures the schema exists.
func OpenTrajectoryStore(path string) (*TrajectoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS steps (
			step INTEGER PRIMARY KEY,
			true_x DOUBLE, true_y DOUBLE, true_z DOUBLE,
			est_x DOUBLE, est_y DOUBLE, est_z DOUBLE,
			error_pos DOUBLE,
			uncertainty DOUBLE,
			event TEXT,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &TrajectoryStore{db: db}, nil
}

// RecordStep inserts one step record.
func (s *TrajectoryStore) RecordStep(r StepRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO steps (step, true_x, true_y, true_z, est_x, est_y, est_z, error_pos, uncertainty, event)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Step,
		r.TruePos.X, r.TruePos.Y, r.TruePos.Z,
		r.EstPos.X, r.EstPos.Y, r.EstPos.Z,
		r.Err, r.Sigma, r.Event,
	)
	return err
}

// RecordRun inserts all records of a run.
func (s *TrajectoryStore) RecordRun(recs []StepRecord) error {
	for _, r := range recs {
		if err := s.RecordStep(r); err != nil {
			return fmt.Errorf("failed to record step %d: %w", r.Step, err)
		}
	}
	return nil
}

// Steps reads back all recorded steps in step order.
func (s *TrajectoryStore) Steps() ([]StepRecord, error) {
	rows, err := s.db.Query(`
		SELECT step, true_x, true_y, true_z, est_x, est_y, est_z, error_pos, uncertainty, event
		FROM steps ORDER BY step`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []StepRecord{}
	for rows.Next() {
		var r StepRecord
		err = rows.Scan(&r.Step,
			&r.TruePos.X, &r.TruePos.Y, &r.TruePos.Z,
			&r.EstPos.X, &r.EstPos.Y, &r.EstPos.Z,
			&r.Err, &r.Sigma, &r.Event)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Close closes the underlying database.
func (s *TrajectoryStore) Close() error {
	return s.db.Close()
}
