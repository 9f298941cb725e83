// Copyright 2024 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package report

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"
)

// Printer emits a summary to one destination.
type Printer interface {
	Print() error
	Close()
}

// Printers fans a summary out to several destinations.
type Printers struct {
	printers []Printer
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// Print runs all printers; a failing printer does not stop the others.
func (ps *Printers) Print() error {
	var errs []error
	for _, p := range ps.printers {
		errs = append(errs, p.Print())
	}
	return errors.Join(errs...)
}

func (ps *Printers) Close() {
	for _, p := range ps.printers {
		p.Close()
	}
}

type PrintToWriter struct {
	w io.Writer
	f func(io.Writer)
}

func (p *PrintToWriter) Print() error {
	p.f(p.w)
	return nil
}

func (p *PrintToWriter) Close() {}

func NewPrintToWriter(w io.Writer, f func(io.Writer)) *PrintToWriter {
	return &PrintToWriter{w, f}
}

// AddPrintToWriter adds the console table of the summary unless disabled.
func (ps *Printers) AddPrintToWriter(isDisabled bool, w io.Writer, s *Summary) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrinter(NewPrintToWriter(w, func(w io.Writer) { PrintSummary(w, s) }))
}

type PrintToFile struct {
	filepath string
	s        *Summary
}

func (p *PrintToFile) Print() error {
	return WriteSummary(p.filepath, p.s)
}

func (p *PrintToFile) Close() {}

func NewPrintToFile(filepath string, s *Summary) *PrintToFile {
	return &PrintToFile{filepath, s}
}

// AddPrintToFile adds the YAML summary file if a path is given.
func (ps *Printers) AddPrintToFile(filepath string, s *Summary) *Printers {
	if filepath != "" {
		ps.AddPrinter(NewPrintToFile(filepath, s))
	}
	return ps
}

// PrintToDb inserts rows produced by f in a single transaction.
type PrintToDb struct {
	db     *sql.DB
	insert string
	f      func() [][]any
}

func (p *PrintToDb) Print() error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("unable to begin tx; %w", err)
	}

	stmt, err := tx.Prepare(p.insert)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("unable to prepare statement %s; %w", p.insert, err)
	}
	defer stmt.Close()

	for _, value := range p.f() {
		if _, err = stmt.Exec(value...); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (p *PrintToDb) Close() {
	p.db.Close()
}

func NewPrintToSqlite3(conn string, create string, insert string, f func() [][]any) (*PrintToDb, error) {
	db, err := sql.Open("sqlite3", conn)
	if err != nil {
		return nil, fmt.Errorf("unable to open connection to sqlite3 %s; %w", conn, err)
	}
	if _, err = db.Exec(create); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create table in %s; %w", conn, err)
	}
	return &PrintToDb{db, insert, f}, nil
}

const (
	createCheckpoints = `CREATE TABLE IF NOT EXISTS checkpoints (
		run_id TEXT NOT NULL,
		created TEXT NOT NULL,
		distribution TEXT NOT NULL,
		paths INTEGER NOT NULL,
		samples INTEGER NOT NULL,
		epsilon REAL NOT NULL,
		seed TEXT NOT NULL,
		n INTEGER NOT NULL,
		mean REAL NOT NULL,
		empirical_variance REAL NOT NULL,
		theoretical_variance REAL NOT NULL,
		deviation_probability REAL NOT NULL,
		chebyshev_bound REAL NOT NULL,
		PRIMARY KEY (run_id, n)
	)`
	insertCheckpoint = `INSERT INTO checkpoints VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// CheckpointRows returns one database row per checkpoint of the summary.
func CheckpointRows(s *Summary) [][]any {
	rows := make([][]any, 0, len(s.Checkpoints))
	for _, c := range s.Checkpoints {
		rows = append(rows, []any{
			s.RunID, s.Created.Format("2006-01-02T15:04:05.000Z07:00"), s.Distribution,
			s.Paths, s.Samples, s.Epsilon, fmt.Sprint(s.Seed),
			c.N, c.Mean, c.EmpiricalVariance, c.TheoreticalVariance, c.DeviationProbability, c.ChebyshevBound,
		})
	}
	return rows
}

// AddPrintToSqlite3 appends the checkpoints of the summary to the run database if a path is given.
func (ps *Printers) AddPrintToSqlite3(conn string, s *Summary) (*Printers, error) {
	if conn == "" {
		return ps, nil
	}
	p, err := NewPrintToSqlite3(conn, createCheckpoints, insertCheckpoint, func() [][]any { return CheckpointRows(s) })
	if err != nil {
		return ps, err
	}
	return ps.AddPrinter(p), nil
}
