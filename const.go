// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.16
//

package goxnav

const (
	PI  = 3.1415926535897932 // Pi
	C   = 299792.458         // Speed of light [km/s]
	GMS = 1.32712440018e11   // Solar gravitational parameter [km^3/s^2]
)

// Photon counting statistics
const (
	SIG_FRAC     = 0.3   // Fraction of detected photons that follow the pulse profile
	FWHM_TO_SD   = 2.355 // Conversion from FWHM to standard deviation
	NO_PHOTON_SD = 1.0e9 // Timing sigma when no photons were detected [s]
	MIN_SHAP_R   = 1.0   // Minimum radius for Shapiro delay evaluation [km]
)

// Kalman filter tuning
const (
	INIT_COV   = 1000.0 // Initial state covariance (diagonal)
	PROC_NOISE = 0.1    // Process noise (diagonal, not scaled by dt)
)
