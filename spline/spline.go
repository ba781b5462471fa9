//Package spline provides 1-D smoothing-spline fits: a penalized
//least-squares B-spline of arbitrary degree, with the amount of smoothing
//chosen so that the residual sum of squares matches a target, in the manner
//of FITPACK-style smoothing splines. It is the numeric primitive behind the
//smoothness diagnostics in the polarization package.
package spline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Spline is a fitted B-spline curve. It is immutable after fitting.
type Spline struct {
	k     int       //degree
	knots []float64 //clamped knot vector, len(coef)+k+1 entries
	coef  []float64
}

// Fit fits a smoothing spline of the given degree to the (x, y) data. The
// x values must be strictly increasing, and there must be more points than
// the degree. The optional smooth argument is the target residual sum of
// squares; if not given, n-sqrt(2n) is used. A target of zero gives an
// interpolating spline.
func Fit(x, y []float64, degree int, smooth ...float64) (*Spline, error) {
	n := len(x)
	if n != len(y) {
		return nil, fmt.Errorf("goFerro/spline: x and y must have the same length (%d, %d)", n, len(y))
	}
	if degree < 1 {
		return nil, fmt.Errorf("goFerro/spline: degree must be at least 1, got %d", degree)
	}
	if n <= degree {
		return nil, fmt.Errorf("goFerro/spline: need more than %d points for a degree-%d fit, got %d", degree, degree, n)
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("goFerro/spline: x values must be strictly increasing")
		}
	}
	s := float64(n) - math.Sqrt(2*float64(n))
	if len(smooth) > 0 {
		s = smooth[0]
	}
	if s < 0 {
		s = 0
	}
	S := &Spline{k: degree, knots: clampedKnots(x, degree, n)}
	B := S.design(x)
	P := secondDiff(n)
	//The residual is nondecreasing in the penalty weight, so pick the
	//largest weight whose residual still does not exceed the target.
	coef, rss := solvePenalized(B, P, y, 0)
	if rss >= s {
		S.coef = coef
		return S, nil
	}
	const lambdaMax = 1e8
	coef, rss = solvePenalized(B, P, y, lambdaMax)
	if rss <= s {
		S.coef = coef
		return S, nil
	}
	lo, hi := -10.0, math.Log10(lambdaMax)
	for i := 0; i < 80; i++ {
		mid := (lo + hi) / 2
		coef, rss = solvePenalized(B, P, y, math.Pow(10, mid))
		if rss <= s {
			lo = mid
		} else {
			hi = mid
		}
	}
	S.coef, _ = solvePenalized(B, P, y, math.Pow(10, lo))
	return S, nil
}

// Degree returns the polynomial degree of the spline.
func (S *Spline) Degree() int {
	return S.k
}

// Eval evaluates the spline at x. Outside the fitted range the curve of
// the closest boundary segment is extended.
func (S *Spline) Eval(x float64) float64 {
	first, b := basisAt(S.knots, S.k, len(S.coef), x)
	r := 0.0
	for i, v := range b {
		r += S.coef[first+i] * v
	}
	return r
}

// EvalAll evaluates the spline at every x, reusing dst if one of adequate
// length is given.
func (S *Spline) EvalAll(x []float64, dst ...[]float64) []float64 {
	var d []float64
	if len(dst) > 0 && len(dst[0]) >= len(x) {
		d = dst[0][:len(x)]
	} else {
		d = make([]float64, len(x))
	}
	for i, v := range x {
		d[i] = S.Eval(v)
	}
	return d
}

// Deriv evaluates the first derivative of the spline at x.
func (S *Spline) Deriv(x float64) float64 {
	//the derivative of a degree-k B-spline is a degree k-1 B-spline over
	//the knot vector with the first and last knots dropped
	k := S.k
	nc := len(S.coef)
	dknots := S.knots[1 : len(S.knots)-1]
	dcoef := make([]float64, nc-1)
	for i := 0; i < nc-1; i++ {
		den := S.knots[i+k+1] - S.knots[i+1]
		if den == 0 {
			continue
		}
		dcoef[i] = float64(k) * (S.coef[i+1] - S.coef[i]) / den
	}
	first, b := basisAt(dknots, k-1, nc-1, x)
	r := 0.0
	for i, v := range b {
		r += dcoef[first+i] * v
	}
	return r
}

//clampedKnots builds a clamped knot vector with n coefficients: degree+1
//copies of each endpoint and uniformly spaced interior knots.
func clampedKnots(x []float64, k, n int) []float64 {
	knots := make([]float64, n+k+1)
	x0, xn := x[0], x[len(x)-1]
	for i := 0; i <= k; i++ {
		knots[i] = x0
		knots[n+i] = xn
	}
	ninter := n - k - 1
	for i := 1; i <= ninter; i++ {
		knots[k+i] = x0 + (xn-x0)*float64(i)/float64(ninter+1)
	}
	return knots
}

//design builds the n x n B-spline design matrix at the data sites.
func (S *Spline) design(x []float64) *mat.Dense {
	n := len(x)
	B := mat.NewDense(n, n, nil)
	for r, v := range x {
		first, b := basisAt(S.knots, S.k, n, v)
		for i, w := range b {
			B.Set(r, first+i, w)
		}
	}
	return B
}

//secondDiff builds the (n-2) x n second-order difference matrix used as
//the roughness penalty on the coefficients.
func secondDiff(n int) *mat.Dense {
	if n < 3 {
		return mat.NewDense(1, n, nil) //zero penalty, nothing to smooth
	}
	D := mat.NewDense(n-2, n, nil)
	for i := 0; i < n-2; i++ {
		D.Set(i, i, 1)
		D.Set(i, i+1, -2)
		D.Set(i, i+2, 1)
	}
	return D
}

//solvePenalized solves (B'B + lambda D'D) c = B'y and returns the
//coefficients and the residual sum of squares.
func solvePenalized(B, D *mat.Dense, y []float64, lambda float64) ([]float64, float64) {
	n, nc := B.Dims()
	var A, DtD mat.Dense
	A.Mul(B.T(), B)
	DtD.Mul(D.T(), D)
	var pen mat.Dense
	pen.Scale(lambda, &DtD)
	A.Add(&A, &pen)
	yv := mat.NewVecDense(n, y)
	var rhs mat.VecDense
	rhs.MulVec(B.T(), yv)
	var c mat.VecDense
	if err := c.SolveVec(&A, &rhs); err != nil {
		//the clamped basis keeps the system nonsingular for distinct x;
		//a failure here means the caller fed degenerate data
		panic(fmt.Sprintf("goFerro/spline: singular fitting system: %v", err))
	}
	var fit mat.VecDense
	fit.MulVec(B, &c)
	rss := 0.0
	for i := 0; i < n; i++ {
		d := y[i] - fit.AtVec(i)
		rss += d * d
	}
	coef := make([]float64, nc)
	copy(coef, c.RawVector().Data)
	return coef, rss
}

//basisAt returns the index of the first nonzero basis function at x and
//the k+1 nonzero basis values, using the de Boor triangle.
func basisAt(knots []float64, k, ncoef int, x float64) (int, []float64) {
	//locate the span, clamping to the valid range so evaluation at (or
	//beyond) the endpoints extends the boundary segments
	span := ncoef - 1
	for j := k; j < ncoef; j++ {
		if x < knots[j+1] {
			span = j
			break
		}
	}
	b := make([]float64, k+1)
	left := make([]float64, k+1)
	right := make([]float64, k+1)
	b[0] = 1
	for j := 1; j <= k; j++ {
		left[j] = x - knots[span+1-j]
		right[j] = knots[span+j] - x
		saved := 0.0
		for r := 0; r < j; r++ {
			den := right[r+1] + left[j-r]
			tmp := b[r] / den
			b[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		b[j] = saved
	}
	return span - k, b
}
