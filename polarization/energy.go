package polarization

import (
	"log"
	"math"

	"github.com/goferro/goferro/spline"
)

// EnergyTrend assesses the trend in total energy across the nonpolar to
// polar distortion path. The energy sequence is ordered like the
// Polarization sequences (nonpolar first) and immutable after
// construction.
type EnergyTrend struct {
	energies []float64
}

// NewEnergyTrend returns an EnergyTrend over a copy of the given energies.
func NewEnergyTrend(energies []float64) *EnergyTrend {
	e := make([]float64, len(energies))
	copy(e, energies)
	return &EnergyTrend{energies: e}
}

// Len returns the number of steps in the trend.
func (E *EnergyTrend) Len() int {
	return len(E.energies)
}

// Energies returns a copy of the energy sequence.
func (E *EnergyTrend) Energies() []float64 {
	e := make([]float64, len(E.energies))
	copy(e, E.energies)
	return e
}

// Spline fits a quartic smoothing spline to the energies against the step
// index. A quartic basis resolves the curvature near a minimum better than
// a plain cubic. It returns an error if fitting is infeasible (degenerate
// or too-short input).
func (E *EnergyTrend) Spline() (*spline.Spline, error) {
	x := make([]float64, len(E.energies))
	for i := range x {
		x[i] = float64(i)
	}
	sp, err := spline.Fit(x, E.energies, 4)
	if err != nil {
		return nil, errDecorate(err, "Spline")
	}
	return sp, nil
}

// Smoothness returns the RMS deviation between the energies and their
// spline fit. If the spline itself cannot be built, the failure is logged
// and reported as an error rather than a hard failure, alongside a zero
// result.
func (E *EnergyTrend) Smoothness() (float64, error) {
	sp, err := E.Spline()
	if err != nil {
		log.Printf("goFerro/polarization: energy spline failed: %v", err)
		return 0, errDecorate(err, "Smoothness")
	}
	sum := 0.0
	for i, v := range E.energies {
		diff := sp.Eval(float64(i)) - v
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(E.energies))), nil
}

// MaxSplineJump returns the maximum difference between the energies and
// their spline fit over all steps.
func (E *EnergyTrend) MaxSplineJump() (float64, error) {
	sp, err := E.Spline()
	if err != nil {
		return 0, errDecorate(err, "MaxSplineJump")
	}
	max := math.Inf(-1)
	for i, v := range E.energies {
		if j := v - sp.Eval(float64(i)); j > max {
			max = j
		}
	}
	return max, nil
}

// EndpointsMinima reports whether the polar (last) and nonpolar (first)
// endpoints of the path sit at stationary points of the fitted energy
// curve: true when the absolute value of the spline's first derivative at
// the corresponding step index is at most slopeCutoff (5e-3 if not given).
// This is a necessary, not sufficient, condition for the endpoints to be
// true minima. Like Smoothness, a failed spline fit is logged and
// reported softly.
func (E *EnergyTrend) EndpointsMinima(slopeCutoff ...float64) (polar, nonpolar bool, err error) {
	cutoff := 5e-3
	if len(slopeCutoff) > 0 {
		cutoff = slopeCutoff[0]
	}
	sp, err := E.Spline()
	if err != nil {
		log.Printf("goFerro/polarization: energy spline failed: %v", err)
		return false, false, errDecorate(err, "EndpointsMinima")
	}
	last := float64(len(E.energies) - 1)
	return math.Abs(sp.Deriv(last)) <= cutoff, math.Abs(sp.Deriv(0)) <= cutoff, nil
}

//errDecorate wraps a plain error in this package's Error, or decorates it
//in place if it already is a ferro.Error-style error.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(interface{ Decorate(string) []string }); ok {
		err2.Decorate(caller)
		return err
	}
	return &Error{message: err.Error(), deco: []string{caller}}
}
