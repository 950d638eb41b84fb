// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.24
//

// Simulation driver: advances the true spacecraft kinematics, generates
// pulsar delay measurements, and runs the filter recursion per step.

package goxnav

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// SimOpt contains options and parameters for a simulation run.
type SimOpt struct {
	Steps    int     // Number of timesteps
	Dt       float64 // Step duration [s]
	TruePos0 PosXYZ  // Initial true position [km]
	TrueVel0 PosXYZ  // Initial true velocity [km/s]
	EstErr0  PosXYZ  // Initial estimate offset from the true position [km]
	BurnStep int     // Step at which the velocity perturbation is applied (-1 for none)
	BurnDv   PosXYZ  // Velocity perturbation [km/s]
	Seed     uint64  // RNG seed. Fixed seeds give reproducible runs.
}

// NewSimOpt creates a SimOpt with the reference scenario defaults:
// one Earth-orbit-radius spacecraft on a 100 s constant-velocity arc with
// a small maneuver at step 40.
func NewSimOpt() *SimOpt {
	return &SimOpt{
		Steps:    100,
		Dt:       1.0,
		TruePos0: PosXYZ{X: 149_600_000, Y: 0, Z: 0},
		TrueVel0: PosXYZ{X: 0, Y: 30, Z: 0},
		EstErr0:  PosXYZ{X: 100, Y: -50, Z: 50},
		BurnStep: 40,
		BurnDv:   PosXYZ{X: 0, Y: 2, Z: 0},
		Seed:     1,
	}
}

// StepRecord is the per-step result handed to reporting and export.
type StepRecord struct {
	Step    int     // Step index
	TruePos PosXYZ  // True position [km]
	EstPos  PosXYZ  // Estimated position [km]
	Err     float64 // Position error norm [km]
	Sigma   float64 // Uncertainty, sqrt of the covariance trace
	Event   string  // Event label ("BURN" on the maneuver step, else empty)
}

// RunSim executes the full simulation and returns one record per step.
//
// Truth state is integrated with constant-velocity kinematics plus the
// scripted burn; the filter only ever sees the truth through the simulated
// delay measurements. A singular filter update aborts the run.
func RunSim(pulsars []Pulsar, opt *SimOpt) ([]StepRecord, error) {
	rng := rand.New(rand.NewSource(opt.Seed))

	truePos := opt.TruePos0
	trueVel := opt.TrueVel0

	kf := NewKalmanFilter(opt.TruePos0.Add(opt.EstErr0))

	recs := make([]StepRecord, 0, opt.Steps)
	for t := 0; t < opt.Steps; t++ {

		event := ""
		if t == opt.BurnStep {
			trueVel = trueVel.Add(opt.BurnDv)
			event = "BURN"
		}

		truePos = truePos.Add(trueVel.Scale(opt.Dt))

		delays, variances := MeasureDelays(pulsars, truePos, opt.Dt, rng)

		kf.Predict(opt.Dt)
		if err := kf.Update(pulsars, delays, variances); err != nil {
			return recs, fmt.Errorf("update failed at step %d: %w", t, err)
		}

		estPos := kf.Position()
		rec := StepRecord{
			Step:    t,
			TruePos: truePos,
			EstPos:  estPos,
			Err:     estPos.Sub(truePos).Norm(),
			Sigma:   kf.Uncertainty(),
			Event:   event,
		}
		recs = append(recs, rec)

		PrintD(2, "step %3d: err=%.4f sigma=%.4f\n", t, rec.Err, rec.Sigma)
	}

	return recs, nil
}
