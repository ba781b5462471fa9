package spline

import (
	"fmt"
	"math"
	"testing"
)

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

//With a zero smoothing target and as many coefficients as points the fit
//interpolates, so a cubic through 4 points must reproduce x^3 exactly.
func TestCubicInterpolation(Te *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 8, 27}
	sp, err := Fit(x, y, 3, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if sp.Degree() != 3 {
		Te.Errorf("degree: got %d, want 3", sp.Degree())
	}
	for i, v := range x {
		if !closeTo(sp.Eval(v), y[i], 1e-8) {
			Te.Errorf("interpolation at x=%f: got %f, want %f", v, sp.Eval(v), y[i])
		}
	}
	if !closeTo(sp.Eval(1.5), 3.375, 1e-8) {
		Te.Errorf("x^3 at 1.5: got %f, want 3.375", sp.Eval(1.5))
	}
	if !closeTo(sp.Eval(2.5), 15.625, 1e-8) {
		Te.Errorf("x^3 at 2.5: got %f, want 15.625", sp.Eval(2.5))
	}
	if !closeTo(sp.Deriv(2), 12, 1e-7) {
		Te.Errorf("derivative of x^3 at 2: got %f, want 12", sp.Deriv(2))
	}
	if !closeTo(sp.Deriv(0), 0, 1e-7) {
		Te.Errorf("derivative of x^3 at 0: got %f, want 0", sp.Deriv(0))
	}
}

func TestLinearReproduction(Te *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2*v + 1
	}
	//the default smoothing target must still reproduce a noiseless line
	sp, err := Fit(x, y, 1)
	if err != nil {
		Te.Fatal(err)
	}
	for _, v := range []float64{0, 0.5, 2.2, 3.7, 4} {
		if !closeTo(sp.Eval(v), 2*v+1, 1e-6) {
			Te.Errorf("line at %f: got %f, want %f", v, sp.Eval(v), 2*v+1)
		}
		if !closeTo(sp.Deriv(v), 2, 1e-6) {
			Te.Errorf("line slope at %f: got %f, want 2", v, sp.Deriv(v))
		}
	}
}

//The residual of a smoothing fit never exceeds the target, and a noisy
//signal is actually smoothed rather than interpolated.
func TestSmoothingTarget(Te *testing.T) {
	n := 9
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) + 0.5*float64(1-2*(i%2)) //line plus alternating noise
	}
	sp, err := Fit(x, y, 3)
	if err != nil {
		Te.Fatal(err)
	}
	rss := 0.0
	for i := range x {
		d := sp.Eval(x[i]) - y[i]
		rss += d * d
	}
	s := float64(n) - math.Sqrt(2*float64(n))
	fmt.Printf("smoothing fit: rss %f, target %f\n", rss, s)
	if rss > s+1e-6 {
		Te.Errorf("residual %f exceeds the smoothing target %f", rss, s)
	}
	if rss < 0.5 {
		Te.Errorf("residual %f too small: the noise was interpolated, not smoothed", rss)
	}
}

func TestEvalAll(Te *testing.T) {
	x := []float64{0, 1, 2, 3}
	sp, err := Fit(x, []float64{1, 2, 3, 4}, 1, 0)
	if err != nil {
		Te.Fatal(err)
	}
	dst := make([]float64, 4)
	r := sp.EvalAll(x, dst)
	for i, v := range x {
		if !closeTo(r[i], v+1, 1e-8) {
			Te.Errorf("EvalAll at %f: got %f, want %f", v, r[i], v+1)
		}
	}
	if &r[0] != &dst[0] {
		Te.Error("EvalAll did not reuse the given destination slice")
	}
}

func TestFitErrors(Te *testing.T) {
	if _, err := Fit([]float64{0, 1, 2}, []float64{0, 1, 2}, 3); err == nil {
		Te.Error("expected an error for fewer points than degree+1")
	}
	if _, err := Fit([]float64{0, 1}, []float64{0, 1, 2}, 1); err == nil {
		Te.Error("expected an error for mismatched lengths")
	}
	if _, err := Fit([]float64{0, 2, 1, 3}, []float64{0, 1, 2, 3}, 1); err == nil {
		Te.Error("expected an error for non-increasing x")
	}
	if _, err := Fit([]float64{0, 1, 2}, []float64{0, 1, 2}, 0); err == nil {
		Te.Error("expected an error for degree zero")
	}
}
