// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.16
//

// Pulsar timing model: source geometry and relativistic delay.

package goxnav

import (
	"math"
)

// Default pulse width as a fraction of the rotation period (FWHM equivalent)
const DEFAULT_WIDTH = 0.05

// Pulsar holds the timing parameters of a single X-ray pulsar.
// Immutable after construction.
type Pulsar struct {
	Id     string  // Pulsar name (e.g. "PSR B1937+21")
	Dir    PosXYZ  // Unit direction vector in the inertial frame
	Flux   float64 // Detected photon flux [photons/s]
	Width  float64 // Pulse width as fraction of period
	Period float64 // Rotation period [s]
}

// NewPulsar builds a pulsar descriptor from catalog parameters.
// Right ascension and declination are in degrees.
func NewPulsar(id string, raDeg, decDeg, period, flux float64) *Pulsar {
	return &Pulsar{
		Id:     id,
		Dir:    RaDecToUnit(raDeg, decDeg),
		Flux:   flux,
		Width:  DEFAULT_WIDTH,
		Period: period,
	}
}

// ShapiroDelay computes the relativistic light-bending delay [s] for a
// signal from this pulsar observed at the given spacecraft position [km].
// Positions closer than MIN_SHAP_R to the origin have no defined direction
// and yield zero delay. The logarithm diverges as the line of sight
// approaches the pulsar direction; that is the physical singularity and it
// is not clamped here.
func (p *Pulsar) ShapiroDelay(pos PosXYZ) float64 {
	r := pos.Norm()
	if r < MIN_SHAP_R {
		return 0
	}

	cosTheta := pos.Normalize().Dot(p.Dir)
	factor := 2 * GMS / (C * C * C)
	return -factor * math.Log(1-cosTheta)
}
