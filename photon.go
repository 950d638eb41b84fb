// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.22
//

// Stochastic photon detection model: Poisson counting of a pulsed signal
// over a uniform background.

package goxnav

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimulatePhotons draws one realization of the photon arrival times [s]
// detected from this pulsar over the given exposure duration [s].
//
// The total count is Poisson with mean flux*duration. Each photon is either
// a signal photon (probability SIG_FRAC) with pulse phase drawn from a
// Normal(0.5, width/2.355) wrapped into [0,1), or a background photon with
// uniform phase. The phase is anchored to a random pulse cycle within the
// exposure; photons falling past the exposure end are discarded.
//
// Returns the surviving timestamps sorted ascending. The result is a fresh
// draw on every call.
func (p *Pulsar) SimulatePhotons(duration float64, rng *rand.Rand) []float64 {
	expected := p.Flux * duration
	if expected <= 0 {
		return nil
	}

	poisson := distuv.Poisson{Lambda: expected, Src: rng}
	nPhotons := int(poisson.Rand())

	pulsePhase := distuv.Normal{Mu: 0.5, Sigma: p.Width / FWHM_TO_SD, Src: rng}

	timestamps := make([]float64, 0, nPhotons)
	for i := 0; i < nPhotons; i++ {
		var phase float64
		if rng.Float64() < SIG_FRAC {
			phase = pulsePhase.Rand()
			phase = phase - math.Floor(phase)
		} else {
			phase = rng.Float64()
		}

		// Anchor the phase to the pulse cycle containing a random point of the exposure
		tWindow := rng.Float64() * duration
		cycles := math.Floor(tWindow / p.Period)
		finalTime := (cycles + phase) * p.Period

		if finalTime < duration {
			timestamps = append(timestamps, finalTime)
		}
	}

	sort.Float64s(timestamps)
	return timestamps
}

// ToaSigma returns the standard error [s] of the mean pulse arrival time
// derived from n accepted photons. With no photons the timing carries no
// information and the NO_PHOTON_SD sentinel is returned.
func (p *Pulsar) ToaSigma(n int) float64 {
	if n <= 0 {
		return NO_PHOTON_SD
	}
	return p.Width * p.Period / math.Sqrt(float64(n))
}
