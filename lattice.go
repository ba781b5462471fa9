/*
 * lattice.go, part of goFerro.
 *
 * Copyright 2024 The goFerro developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package ferro

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

/**Note: Several functions here panic instead of returning errors, following
 * the same criterion as the rest of the library: they are "fundamental"
 * functions, and calling them with, say, a slice of the wrong length means
 * the program is way-most-likely wrong and should crash.**/

// Lattice holds the three basis vectors of a periodic cell, as the rows of
// a 3x3 matrix. A Lattice is an immutable snapshot: no method modifies the
// receiver, and the matrix handed to the constructor is copied.
type Lattice struct {
	m   *mat.Dense //rows are the a, b and c vectors
	inv *mat.Dense //cached inverse, for Cartesian to fractional
}

// NewLattice builds a Lattice from the 9 components of the basis vectors,
// given row-major (ax, ay, az, bx, ...). It returns an error if the vectors
// do not span a cell (singular matrix).
func NewLattice(vectors []float64) (*Lattice, error) {
	if len(vectors) != 9 {
		panic("Lattice: 9 components needed to build a lattice")
	}
	v := make([]float64, 9)
	copy(v, vectors)
	L := &Lattice{m: mat.NewDense(3, 3, v), inv: mat.NewDense(3, 3, nil)}
	if err := L.inv.Inverse(L.m); err != nil {
		return nil, NewCError(fmt.Sprintf("goFerro: degenerate lattice vectors: %v", err), "NewLattice")
	}
	return L, nil
}

// LatticeFromLengthsAndAngles builds a Lattice from the three vector
// lengths and the three angles (alpha, beta, gamma, in degrees), using the
// usual crystallographic orientation (c along z). Negative lengths are
// allowed and simply mirror the corresponding vector; this is relied upon
// when a lattice is rescaled by a negative unit-conversion factor.
func LatticeFromLengthsAndAngles(lengths, angles [3]float64) (*Lattice, error) {
	alpha := angles[0] * Deg2Rad
	beta := angles[1] * Deg2Rad
	gamma := angles[2] * Deg2Rad
	a, b, c := lengths[0], lengths[1], lengths[2]
	//cosine of the reciprocal gamma angle
	cosgs := (math.Cos(alpha)*math.Cos(beta) - math.Cos(gamma)) /
		(math.Sin(alpha) * math.Sin(beta))
	//floating point errors can push the value just outside [-1,1]
	cosgs = math.Max(-1, math.Min(1, cosgs))
	singso := math.Sqrt(1 - cosgs*cosgs)
	return NewLattice([]float64{
		a * math.Sin(beta), 0, a * math.Cos(beta),
		-b * math.Sin(alpha) * cosgs, b * math.Sin(alpha) * singso, b * math.Cos(alpha),
		0, 0, c,
	})
}

// CubicLattice returns a cubic lattice with edge a.
func CubicLattice(a float64) *Lattice {
	L, err := NewLattice([]float64{a, 0, 0, 0, a, 0, 0, 0, a})
	if err != nil {
		panic("cant happen") //a cube with a!=0 is never singular, a==0 is a caller bug
	}
	return L
}

// Matrix returns a copy of the 3x3 basis-vector matrix.
func (L *Lattice) Matrix() *mat.Dense {
	r := mat.NewDense(3, 3, nil)
	r.Copy(L.m)
	return r
}

// Vector returns a copy of the i-th basis vector (0 for a, 1 for b, 2 for c).
func (L *Lattice) Vector(i int) []float64 {
	if i < 0 || i > 2 {
		panic("Lattice: requested vector out of bounds")
	}
	return mat.Row(nil, i, L.m)
}

// Lengths returns the norms of the a, b and c vectors. Norms are
// non-negative even for a mirrored (negative-scaled) lattice.
func (L *Lattice) Lengths() [3]float64 {
	var r [3]float64
	for i := 0; i < 3; i++ {
		r[i] = mat.Norm(L.m.RowView(i), 2)
	}
	return r
}

// Angles returns the alpha, beta and gamma cell angles, in degrees
// (alpha between b and c, beta between a and c, gamma between a and b).
func (L *Lattice) Angles() [3]float64 {
	l := L.Lengths()
	var r [3]float64
	pairs := [3][2]int{{1, 2}, {0, 2}, {0, 1}}
	for i, p := range pairs {
		d := mat.Dot(L.m.RowView(p[0]), L.m.RowView(p[1]))
		cos := d / (l[p[0]] * l[p[1]])
		cos = math.Max(-1, math.Min(1, cos))
		r[i] = math.Acos(cos) * Rad2Deg
	}
	return r
}

// Volume returns the cell volume, always positive.
func (L *Lattice) Volume() float64 {
	return math.Abs(mat.Det(L.m))
}

// Cart converts fractional coordinates to Cartesian.
func (L *Lattice) Cart(frac []float64) []float64 {
	if len(frac) != 3 {
		panic("Lattice: fractional coordinates must have 3 components")
	}
	r := make([]float64, 3)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			r[j] += frac[i] * L.m.At(i, j)
		}
	}
	return r
}

// Frac converts Cartesian coordinates to fractional.
func (L *Lattice) Frac(cart []float64) []float64 {
	if len(cart) != 3 {
		panic("Lattice: Cartesian coordinates must have 3 components")
	}
	r := make([]float64, 3)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			r[j] += cart[i] * L.inv.At(i, j)
		}
	}
	return r
}

// Rescale returns a new lattice with all three lengths multiplied by
// scale and the angles preserved. Scale may be negative.
func (L *Lattice) Rescale(scale float64) (*Lattice, error) {
	l := L.Lengths()
	for i := range l {
		l[i] *= scale
	}
	return LatticeFromLengthsAndAngles(l, L.Angles())
}

// NearestImage searches the periodic images of the point with fractional
// coordinates frac in the lattice L, and returns the fractional and
// Cartesian coordinates of the image closest (Euclidean distance in real
// space) to the Cartesian reference point ref. The search starts from the
// image given by round-half-to-even of the fractional offset to the
// reference and only strictly closer images replace it, so an exact tie
// (e.g. a point half a lattice vector away from the reference) resolves
// to the central, positive-offset image.
func NearestImage(L *Lattice, ref, frac []float64) (fracImg, cartImg []float64) {
	if len(ref) != 3 || len(frac) != 3 {
		panic("NearestImage: coordinates must have 3 components")
	}
	fref := L.Frac(ref)
	base := make([]float64, 3)
	for i := 0; i < 3; i++ {
		base[i] = frac[i] - math.RoundToEven(frac[i]-fref[i])
	}
	offsets := [3]float64{0, -1, 1} //central image first, see the tie-break note above
	best := math.Inf(1)
	cand := make([]float64, 3)
	fracImg = make([]float64, 3)
	for _, da := range offsets {
		for _, db := range offsets {
			for _, dc := range offsets {
				cand[0] = base[0] + da
				cand[1] = base[1] + db
				cand[2] = base[2] + dc
				cart := L.Cart(cand)
				d2 := 0.0
				for i := 0; i < 3; i++ {
					diff := cart[i] - ref[i]
					d2 += diff * diff
				}
				if d2 < best {
					best = d2
					copy(fracImg, cand)
					cartImg = cart
				}
			}
		}
	}
	return fracImg, cartImg
}
