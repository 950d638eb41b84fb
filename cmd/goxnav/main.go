// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.24
//

package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	m "github.com/mkhts/goxnav"
	_ "modernc.org/sqlite"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		flag.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	// Load the pulsar catalog
	pulsars := m.LoadCatalog(args.parFns, args.exPsrs)
	if len(pulsars) == 0 {
		return fmt.Errorf("all pulsars excluded, nothing to observe")
	}
	m.PrintA("--- XNAV: pulsar navigation filter (%d pulsars) ---\n", len(pulsars))
	for _, p := range pulsars {
		m.PrintD(1, "\t%-16s period=%.5fs flux=%.0f/s dir=(%.4f %.4f %.4f)\n",
			p.Id, p.Period, p.Flux, p.Dir.X, p.Dir.Y, p.Dir.Z)
	}

	// Run the simulation
	recs, err := m.RunSim(pulsars, args.simOpt)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	// Console summary table
	printTable(recs)

	// Trajectory CSV
	out, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	defer closeOutput(out)
	if err := writeCsv(out, recs, args.noCsvHeader); err != nil {
		return fmt.Errorf("failed to write trajectory: %w", err)
	}

	// Optional SQLite export
	if args.dbFn != "" {
		if err := storeRun(args.dbFn, recs); err != nil {
			return fmt.Errorf("failed to store trajectory: %w", err)
		}
		m.PrintA("trajectory stored in %s\n", args.dbFn)
	}

	// Optional chart export
	if args.chartFn != "" {
		if err := writeChart(args.chartFn, recs); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		m.PrintA("chart written to %s\n", args.chartFn)
	}

	return nil
}

// Print the per-step summary table to stderr (every 5 steps plus events)
func printTable(recs []m.StepRecord) {
	m.PrintA("%-5s | %-15s | %-15s | %s\n", "Step", "Error (km)", "Sigma (km)", "Event")
	m.PrintA("%s\n", strings.Repeat("-", 65))
	for _, r := range recs {
		if r.Step%5 == 0 || r.Event != "" {
			m.PrintA("%-5d | %-15.4f | %-15.4f | %s\n", r.Step, r.Err, r.Sigma, r.Event)
		}
	}
}

// Prepare trajectory output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.csvFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	f, err := os.Create(args.csvFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// Close output file
func closeOutput(out io.WriteCloser) {
	if out != nil {
		out.Close()
	}
}

// Write the trajectory as CSV
func writeCsv(w io.Writer, recs []m.StepRecord, noHeader bool) error {
	cw := csv.NewWriter(w)
	if !noHeader {
		header := []string{"t", "true_x", "true_y", "true_z", "est_x", "est_y", "est_z", "error_pos", "uncertainty"}
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, r := range recs {
		row := []string{
			strconv.Itoa(r.Step),
			fmtF(r.TruePos.X), fmtF(r.TruePos.Y), fmtF(r.TruePos.Z),
			fmtF(r.EstPos.X), fmtF(r.EstPos.Y), fmtF(r.EstPos.Z),
			fmtF(r.Err), fmtF(r.Sigma),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Store the trajectory in a SQLite database
func storeRun(fn string, recs []m.StepRecord) error {
	store, err := m.OpenTrajectoryStore(fn)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(recs)
}

// Render the error chart as HTML
func writeChart(fn string, recs []m.StepRecord) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.WriteChart(f, recs)
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Structure to hold command line argument information
type cmdOpt struct {
	parFns      []string
	exPsrs      m.PsrVar
	csvFn       string
	noCsvHeader bool
	dbFn        string
	chartFn     string
	simOpt      *m.SimOpt
}

// Parse command line arguments
func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] [pulsar1.par pulsar2.par ...]

Runs the pulsar navigation simulation. Positional arguments are pulsar
parameter (.par) files; without any, the built-in 4-pulsar catalog is used.

[Options]
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}

	opt := m.NewSimOpt()
	flag.Var(&a.exPsrs, "ex", "List of pulsars to exclude. Comma-separated names without spaces like \"PSR B1937+21\".")
	flag.IntVar(&opt.Steps, "n", opt.Steps, "Number of simulation steps.")
	flag.Float64Var(&opt.Dt, "dt", opt.Dt, "Step duration [s].")
	var seed uint64
	flag.Uint64Var(&seed, "seed", 0, "RNG seed. 0 derives a seed from the current time (non-reproducible).")
	flag.StringVar(&a.csvFn, "o", "", "Output trajectory CSV file path. If not specified, output to stdout.")
	flag.BoolVar(&a.noCsvHeader, "nh", false, "Do not output the CSV header line.")
	flag.StringVar(&a.dbFn, "db", "", "SQLite database path to store the trajectory. Omit to skip.")
	flag.StringVar(&a.chartFn, "chart", "", "HTML chart output path. Omit to skip.")
	flag.Var(&opt.TruePos0, "pos0", "Initial true position [km]. Enclose in quotes like -pos0 \"149600000 0 0\"")
	flag.Var(&opt.TrueVel0, "vel0", "Initial true velocity [km/s]. Enclose in quotes like -vel0 \"0 30 0\"")
	flag.Var(&opt.EstErr0, "e0", "Initial estimate offset from the true position [km].")
	flag.IntVar(&opt.BurnStep, "bs", opt.BurnStep, "Step index of the velocity perturbation. Set to -1 for none.")
	flag.Var(&opt.BurnDv, "bv", "Velocity perturbation [km/s]. Enclose in quotes like -bv \"0 2 0\"")
	var dbg int
	flag.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display), 3(more detailed)")
	flag.Parse()

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	opt.Seed = seed

	if opt.Steps <= 0 || opt.Dt <= 0 {
		return a, fmt.Errorf("steps and dt must be positive")
	}

	a.parFns = flag.Args()
	a.simOpt = opt
	m.DBG_ = dbg
	return
}
