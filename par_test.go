// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.24
//

package goxnav

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHMS(t *testing.T) {
	t.Run("hours minutes seconds to degrees", func(t *testing.T) {
		deg, err := ParseHMS("04:37:15.8961737")
		require.NoError(t, err)
		assert.InDelta(t, (4+37.0/60+15.8961737/3600)*15, deg, 1e-9)
	})

	t.Run("short strings yield zero", func(t *testing.T) {
		deg, err := ParseHMS("04:37")
		require.NoError(t, err)
		assert.Zero(t, deg)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := ParseHMS("aa:bb:cc")
		assert.Error(t, err)
	})
}

func TestParseDMS(t *testing.T) {
	t.Run("negative declination", func(t *testing.T) {
		deg, err := ParseDMS("-47:15:09.11071")
		require.NoError(t, err)
		assert.InDelta(t, -(47 + 15.0/60 + 9.11071/3600), deg, 1e-9)
	})

	t.Run("negative zero degrees keeps the sign", func(t *testing.T) {
		deg, err := ParseDMS("-00:30:00")
		require.NoError(t, err)
		assert.InDelta(t, -0.5, deg, 1e-12)
	})

	t.Run("positive declination", func(t *testing.T) {
		deg, err := ParseDMS("21:34:42")
		require.NoError(t, err)
		assert.InDelta(t, 21+34.0/60+42.0/3600, deg, 1e-9)
	})
}

const parJ0437 = `# PSR J0437-4715 timing parameters
PSRJ           J0437-4715
RAJ            04:37:15.8961737
DECJ           -47:15:09.11071
F0             173.6879458121843

POSEPOCH       51194.0
`

func TestReadPar(t *testing.T) {
	t.Run("known source", func(t *testing.T) {
		p, err := ReadPar(strings.NewReader(parJ0437))
		require.NoError(t, err)
		assert.Equal(t, "J0437-4715", p.Id)
		assert.InDelta(t, 1/173.6879458121843, p.Period, 1e-12)
		assert.Equal(t, 8.0, p.Flux, "flux assigned from the source table")
		assert.InDelta(t, 1.0, p.Dir.Norm(), 1e-9)
	})

	t.Run("P0 takes the period directly", func(t *testing.T) {
		p, err := ReadPar(strings.NewReader("PSR B1937+21\nP0 0.00155\n"))
		require.NoError(t, err)
		assert.Equal(t, 0.00155, p.Period)
		assert.Equal(t, 5.0, p.Flux)
	})

	t.Run("unparsable F0 falls back to a 1 s period", func(t *testing.T) {
		p, err := ReadPar(strings.NewReader("PSRJ J9999+99\nF0 not-a-number\n"))
		require.NoError(t, err)
		assert.Equal(t, 1.0, p.Period)
	})

	t.Run("defaults for a bare file", func(t *testing.T) {
		p, err := ReadPar(strings.NewReader("PSRJ J9999+99\n"))
		require.NoError(t, err)
		assert.Equal(t, 0.010, p.Period)
		assert.Equal(t, 1.0, p.Flux)
	})

	t.Run("malformed coordinate fails", func(t *testing.T) {
		_, err := ReadPar(strings.NewReader("RAJ xx:yy:zz\n"))
		assert.Error(t, err)
	})
}

func TestReadParFile(t *testing.T) {
	t.Run("round trip through disk", func(t *testing.T) {
		fn := filepath.Join(t.TempDir(), "J0437-4715.par")
		require.NoError(t, os.WriteFile(fn, []byte(parJ0437), 0o644))

		p, err := ReadParFile(fn)
		require.NoError(t, err)
		assert.Equal(t, "J0437-4715", p.Id)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := ReadParFile(filepath.Join(t.TempDir(), "nope.par"))
		assert.Error(t, err)
	})
}

func TestLoadCatalog(t *testing.T) {
	t.Run("falls back to the built-in catalog", func(t *testing.T) {
		pulsars := LoadCatalog(nil, nil)
		require.Len(t, pulsars, 4)
		for _, p := range pulsars {
			assert.InDelta(t, 1.0, p.Dir.Norm(), 1e-9)
			assert.Positive(t, p.Flux)
			assert.Positive(t, p.Period)
		}
	})

	t.Run("unreadable files are skipped", func(t *testing.T) {
		pulsars := LoadCatalog([]string{filepath.Join(t.TempDir(), "nope.par")}, nil)
		assert.Len(t, pulsars, 4, "fallback after skipping")
	})

	t.Run("exclusion by id", func(t *testing.T) {
		pulsars := LoadCatalog(nil, []string{"PSR B1937+21", "PSR J2124-3358"})
		require.Len(t, pulsars, 2)
		assert.Equal(t, "PSR J0437-4715", pulsars[0].Id)
		assert.Equal(t, "PSR J1824-2452", pulsars[1].Id)
	})
}
