// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.22
//

// Implements the navigation Kalman filter: a 6-state (position, velocity)
// constant-velocity filter updated with pulsar delay pseudo-ranges.

package goxnav

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// State vector dimension (position and velocity, 3 axes each)
const NX = 6

var (
	// ErrDimensions reports mismatched lengths between the pulsar list and
	// the measurement arrays. This is a caller programming error.
	ErrDimensions = errors.New("pulsars, delays, and variances must have equal lengths")

	// ErrSingular reports a non-invertible innovation covariance. The filter
	// state is left untouched when this is returned.
	ErrSingular = errors.New("innovation covariance is singular")
)

// KalmanFilter holds the navigation state estimate and its covariance.
// The state is [x, y, z, vx, vy, vz] in [km] and [km/s]. Both fields are
// owned by the filter and mutated only through Predict and Update.
type KalmanFilter struct {
	State *mat.VecDense // Estimated state (NX x 1)
	Cov   *mat.Dense    // Estimation error covariance (NX x NX)
}

// NewKalmanFilter creates a filter with the given initial position guess,
// zero initial velocity, and a large diagonal covariance.
func NewKalmanFilter(initialPos PosXYZ) *KalmanFilter {
	state := mat.NewVecDense(NX, nil)
	state.SetVec(0, initialPos.X)
	state.SetVec(1, initialPos.Y)
	state.SetVec(2, initialPos.Z)

	cov := mat.NewDense(NX, NX, nil)
	for i := 0; i < NX; i++ {
		cov.Set(i, i, INIT_COV)
	}

	return &KalmanFilter{State: state, Cov: cov}
}

// Predict propagates the state and covariance through dt [s] of
// constant-velocity motion.
// - state <- F*state
// - cov <- F*cov*F^t + Q
// The process noise Q is a fixed diagonal, independent of dt.
func (kf *KalmanFilter) Predict(dt float64) {
	f := eye(NX)
	f.Set(0, 3, dt)
	f.Set(1, 4, dt)
	f.Set(2, 5, dt)

	var state mat.VecDense
	state.MulVec(f, kf.State)
	kf.State.CopyVec(&state)

	var fp, fpft mat.Dense
	fp.Mul(f, kf.Cov)
	fpft.Mul(&fp, f.T())
	for i := 0; i < NX; i++ {
		fpft.Set(i, i, fpft.At(i, i)+PROC_NOISE)
	}
	kf.Cov.Copy(&fpft)
}

// Update fuses one batch of per-pulsar delay measurements [s] with the
// predicted state. Each delay is converted to a distance-domain
// pseudo-range z = -delay*C so that the observation is a linear function
// of position with row [dirx, diry, dirz, 0, 0, 0].
//
// An empty batch is a no-op. Mismatched array lengths return
// ErrDimensions. A singular innovation covariance returns ErrSingular and
// leaves state and covariance unchanged.
func (kf *KalmanFilter) Update(pulsars []Pulsar, delays, variances []float64) error {
	n := len(pulsars)
	if len(delays) != n || len(variances) != n {
		return fmt.Errorf("%w: pulsars=%d, delays=%d, variances=%d",
			ErrDimensions, n, len(delays), len(variances))
	}
	if n == 0 {
		return nil
	}

	// Observation matrix H (n x NX) and measurement vector z (n x 1)
	h := mat.NewDense(n, NX, nil)
	z := mat.NewVecDense(n, nil)
	for i := range pulsars {
		h.Set(i, 0, pulsars[i].Dir.X)
		h.Set(i, 1, pulsars[i].Dir.Y)
		h.Set(i, 2, pulsars[i].Dir.Z)
		z.SetVec(i, -delays[i]*C)
	}

	// Innovation y = z - H*state
	var y mat.VecDense
	y.MulVec(h, kf.State)
	y.SubVec(z, &y)

	// Innovation covariance S = H*P*H^t + R
	r := mat.NewDiagDense(n, variances)
	var hp, s mat.Dense
	hp.Mul(h, kf.Cov)
	s.Mul(&hp, h.T())
	s.Add(&s, r)

	// Sentinel variances from zero-photon pulsars make S ill-conditioned
	// by many orders of magnitude while still invertible. gonum reports a
	// finite mat.Condition error in that case but the computed inverse is
	// valid; only an infinite condition number means S is truly singular.
	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return fmt.Errorf("%w: %v", ErrSingular, err)
		}
	}

	// Kalman gain K = P*H^t*S^-1
	var pht, k mat.Dense
	pht.Mul(kf.Cov, h.T())
	k.Mul(&pht, &sInv)

	// state <- state + K*y
	var ky, state mat.VecDense
	ky.MulVec(&k, &y)
	state.AddVec(kf.State, &ky)

	// cov <- (I - K*H)*P
	var kh, imkh, cov mat.Dense
	kh.Mul(&k, h)
	imkh.Sub(eye(NX), &kh)
	cov.Mul(&imkh, kf.Cov)

	kf.State.CopyVec(&state)
	kf.Cov.Copy(&cov)
	return nil
}

// Position returns the position part of the state estimate [km].
func (kf *KalmanFilter) Position() PosXYZ {
	return PosXYZ{X: kf.State.AtVec(0), Y: kf.State.AtVec(1), Z: kf.State.AtVec(2)}
}

// Velocity returns the velocity part of the state estimate [km/s].
func (kf *KalmanFilter) Velocity() PosXYZ {
	return PosXYZ{X: kf.State.AtVec(3), Y: kf.State.AtVec(4), Z: kf.State.AtVec(5)}
}

// Uncertainty returns the square root of the covariance trace, a scalar
// summary of the estimation uncertainty.
func (kf *KalmanFilter) Uncertainty() float64 {
	return math.Sqrt(mat.Trace(kf.Cov))
}

func eye(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}
