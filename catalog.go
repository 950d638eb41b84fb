// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.18
//

package goxnav

import (
	"golang.org/x/exp/slices"
)

// DefaultCatalog returns the built-in millisecond pulsar catalog used when
// no .par files are available.
func DefaultCatalog() []Pulsar {
	return []Pulsar{
		*NewPulsar("PSR B1937+21", 20.0, 30.0, 0.00155, 500.0),
		*NewPulsar("PSR J0437-4715", 70.0, -47.0, 0.00575, 800.0),
		*NewPulsar("PSR J1824-2452", 276.0, -24.0, 0.00305, 300.0),
		*NewPulsar("PSR J2124-3358", 321.0, -33.0, 0.00493, 250.0),
	}
}

// LoadCatalog builds the pulsar list for a simulation run.
//
// Each path is parsed as a .par file; files that fail to open or parse are
// reported and skipped. If no pulsar could be loaded the built-in catalog
// is used instead. Pulsars whose id appears in the exclusion list are
// removed afterwards.
func LoadCatalog(parFns []string, exclude []string) []Pulsar {
	pulsars := []Pulsar{}
	for _, fn := range parFns {
		p, err := ReadParFile(fn)
		if err != nil {
			PrintE(err)
			continue
		}
		PrintD(1, "loaded %s from %s\n", p.Id, fn)
		pulsars = append(pulsars, *p)
	}

	if len(pulsars) == 0 {
		if len(parFns) > 0 {
			PrintA("no .par files loaded, using the built-in catalog\n")
		}
		pulsars = DefaultCatalog()
	}

	if len(exclude) > 0 {
		kept := []Pulsar{}
		for _, p := range pulsars {
			if slices.Contains(exclude, p.Id) {
				PrintD(1, "\t%s: excluded\n", p.Id)
				continue
			}
			kept = append(kept, p)
		}
		pulsars = kept
	}

	return pulsars
}
