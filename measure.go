// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.22
//

// Pulse arrival delay measurement model: geometric (Roemer) delay plus
// relativistic (Shapiro) delay plus photon-statistics noise.

package goxnav

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RoemerDelay returns the light-travel-time delay [s] of the pulse front at
// the given position [km] relative to the coordinate origin. Positive delay
// means the signal arrives later than at the origin.
func RoemerDelay(pos PosXYZ, dir PosXYZ) float64 {
	return -pos.Dot(dir) / C
}

// MeasureDelays simulates one batch of delay observations for all pulsars
// at the true spacecraft position [km], integrating photons over dt [s].
//
// Returns:
//   - delays: per-pulsar measured delay [s] (perfect delay plus noise draw)
//   - variances: per-pulsar measurement variance in the distance domain
//     [km^2], i.e. (sigma_time * C)^2, matching the filter state units
func MeasureDelays(pulsars []Pulsar, truePos PosXYZ, dt float64, rng *rand.Rand) (delays, variances []float64) {
	delays = make([]float64, 0, len(pulsars))
	variances = make([]float64, 0, len(pulsars))

	for i := range pulsars {
		p := &pulsars[i]

		perfect := RoemerDelay(truePos, p.Dir) + p.ShapiroDelay(truePos)

		photons := p.SimulatePhotons(dt, rng)
		sigma := p.ToaSigma(len(photons))

		// Zero photons carry no timing information: no perturbation is
		// applied, the sentinel sigma makes the variance effectively infinite.
		noise := 0.0
		if len(photons) > 0 {
			noise = distuv.Normal{Mu: 0, Sigma: sigma, Src: rng}.Rand()
		}

		delays = append(delays, perfect+noise)
		variances = append(variances, SQ(sigma*C))
	}
	return delays, variances
}
