// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.24
//

package goxnav

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRoemerDelay(t *testing.T) {
	dir := RaDecToUnit(0, 0) // +X

	t.Run("sign convention", func(t *testing.T) {
		// Positive projection onto the direction means the pulse front
		// passes the spacecraft before the origin: negative delay.
		d := RoemerDelay(PosXYZ{X: C}, dir)
		assert.InDelta(t, -1.0, d, 1e-12)

		d = RoemerDelay(PosXYZ{X: -C}, dir)
		assert.InDelta(t, 1.0, d, 1e-12)
	})

	t.Run("orthogonal position has no delay", func(t *testing.T) {
		assert.InDelta(t, 0.0, RoemerDelay(PosXYZ{Y: 12345}, dir), 1e-12)
	})
}

func TestMeasureDelays(t *testing.T) {
	truePos := PosXYZ{X: 149_600_000}

	t.Run("one measurement per pulsar", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		pulsars := DefaultCatalog()
		delays, variances := MeasureDelays(pulsars, truePos, 1.0, rng)
		require.Len(t, delays, len(pulsars))
		require.Len(t, variances, len(pulsars))

		for i := range pulsars {
			p := &pulsars[i]
			perfect := RoemerDelay(truePos, p.Dir) + p.ShapiroDelay(truePos)
			// Expected photon counts are in the hundreds, so the noise is
			// a few standard errors of ~width*period/sqrt(flux) at most.
			bound := 10 * p.Width * p.Period / math.Sqrt(p.Flux*0.3)
			assert.InDelta(t, perfect, delays[i], bound, "pulsar %s", p.Id)
			assert.Positive(t, variances[i])
		}
	})

	t.Run("dark pulsar yields the sentinel variance", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		dark := *NewPulsar("DARK", 10, 10, 0.002, 0)
		delays, variances := MeasureDelays([]Pulsar{dark}, truePos, 1.0, rng)

		perfect := RoemerDelay(truePos, dark.Dir) + dark.ShapiroDelay(truePos)
		assert.Equal(t, perfect, delays[0], "no perturbation without photons")
		assert.Equal(t, SQ(NO_PHOTON_SD*C), variances[0])
	})

	t.Run("variance is in the distance domain", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		p := *NewPulsar("PSR B1937+21", 20.0, 30.0, 0.00155, 500.0)
		_, variances := MeasureDelays([]Pulsar{p}, truePos, 1.0, rng)

		// sigma_dist = width*period/sqrt(n)*C with n within the Poisson band
		lo := SQ(p.Width * p.Period / math.Sqrt(1.5*p.Flux) * C)
		hi := SQ(p.Width * p.Period / math.Sqrt(0.5*p.Flux) * C)
		assert.Greater(t, variances[0], lo)
		assert.Less(t, variances[0], hi)
	})
}
