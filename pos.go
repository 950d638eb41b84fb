// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.16
//

package goxnav

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

//-------------------------------------------------------------------
// PosXYZ
//-------------------------------------------------------------------

// Cartesian vector in the inertial frame [km] (also used for velocities [km/s])
type PosXYZ struct {
	X float64
	Y float64
	Z float64
}

func NewPosXYZ(x, y, z float64) *PosXYZ {
	return &PosXYZ{
		X: x,
		Y: y,
		Z: z,
	}
}

func (pos PosXYZ) Add(b PosXYZ) PosXYZ {
	return PosXYZ{X: pos.X + b.X, Y: pos.Y + b.Y, Z: pos.Z + b.Z}
}

func (pos PosXYZ) Sub(b PosXYZ) PosXYZ {
	return PosXYZ{X: pos.X - b.X, Y: pos.Y - b.Y, Z: pos.Z - b.Z}
}

func (pos PosXYZ) Scale(s float64) PosXYZ {
	return PosXYZ{X: pos.X * s, Y: pos.Y * s, Z: pos.Z * s}
}

func (pos PosXYZ) Dot(b PosXYZ) float64 {
	return pos.X*b.X + pos.Y*b.Y + pos.Z*b.Z
}

func (pos PosXYZ) Norm() float64 {
	return math.Sqrt(pos.Dot(pos))
}

// Return the unit vector in the direction of pos. The zero vector is returned unchanged.
func (pos PosXYZ) Normalize() PosXYZ {
	n := pos.Norm()
	if n == 0 {
		return pos
	}
	return pos.Scale(1 / n)
}

// Read from string like "149600000 0 0"
func (pos *PosXYZ) Set(s string) error {
	f := strings.Fields(s)
	if len(f) < 3 {
		return fmt.Errorf("need 3 components, got %d", len(f))
	}
	var err error
	pos.X, err = strconv.ParseFloat(f[0], 64)
	if err != nil {
		return err
	}
	pos.Y, err = strconv.ParseFloat(f[1], 64)
	if err != nil {
		return err
	}
	pos.Z, err = strconv.ParseFloat(f[2], 64)
	if err != nil {
		return err
	}
	return nil
}

// Convert to string
func (pos *PosXYZ) String() string {
	return fmt.Sprintf("%.4f %.4f %.4f", pos.X, pos.Y, pos.Z)
}

//-------------------------------------------------------------------
// Celestial directions
//-------------------------------------------------------------------

// Convert right ascension and declination [deg] to a unit direction vector
// in the inertial frame. The result is renormalized to guard against
// floating-point drift.
func RaDecToUnit(raDeg, decDeg float64) PosXYZ {
	ra := ToRad(raDeg)
	dec := ToRad(decDeg)
	v := PosXYZ{
		X: math.Cos(dec) * math.Cos(ra),
		Y: math.Cos(dec) * math.Sin(ra),
		Z: math.Sin(dec),
	}
	return v.Normalize()
}
