/*Package polarization recovers the spontaneous polarization of a
ferroelectric from a series of Berry-phase calculations along a nonpolar to
polar distortion path, and assesses the smoothness of the recovered branch
and of the energy profile across the distortion.

The Berry-phase electronic dipole moment of a periodic crystal, and the
ionic dipole moment that goes with it, are only defined modulo one lattice
vector per direction (the polarization quantum). The Polarization type picks,
for every step of the path, the periodic image closest in real space to the
image chosen for the previous step, starting from the image closest to zero
for the nonpolar endpoint, so that the resulting sequence lies on a single,
continuous branch.

Dipole moments are handled in electron*Angstrom along the three lattice
directions, as reported by the electronic-structure code; methods that take
a convert flag can report microCoulomb/cm^2 instead.*/
package polarization

import (
	"fmt"
	"math"

	ferro "github.com/goferro/goferro"
	"github.com/goferro/goferro/spline"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CalcIonic calculates the contribution of one site to the ionic dipole
// moment of its host structure, in electron*Angstrom along the three
// lattice directions, treating the ion as a point charge zval (the ZVAL of
// the pseudopotential used for the species). The sign is negative so that
// the ionic contribution opposes the electron-dipole sign convention of the
// Berry-phase output.
//
// Note that this is the lattice length times the fractional coordinate
// along each direction separately, not the dot product with the full
// lattice vectors. This deliberately differs from the internal point-charge
// dipole of the electronic-structure code: the per-direction form recovers
// a smooth same-branch polarization more reliably.
func CalcIonic(site *ferro.Site, structure *ferro.Structure, zval float64) []float64 {
	l := structure.Lattice().Lengths()
	r := make([]float64, 3)
	for d := 0; d < 3; d++ {
		r[d] = -l[d] * site.FracCoords[d] * zval
	}
	return r
}

// TotalIonicDipole sums CalcIonic over every site of the structure, looking
// up each species in zvals. It fails if any species present in the
// structure is missing from the table; no default charge is ever assumed.
func TotalIonicDipole(structure *ferro.Structure, zvals map[string]float64) ([]float64, error) {
	tot := make([]float64, 3)
	for i := 0; i < structure.Len(); i++ {
		site := structure.Site(i)
		z, ok := zvals[site.Species]
		if !ok {
			return nil, &Error{message: fmt.Sprintf("no ZVAL charge given for species %s (site %d)", site.Species, i), deco: []string{"TotalIonicDipole"}}
		}
		floats.Add(tot, CalcIonic(site, structure, z))
	}
	return tot, nil
}

// Polarization holds the ordered (electronic dipole, ionic dipole,
// structure) triples of a distortion path, nonpolar first and polar last.
// The sequences are immutable after construction; analyses that need
// different units recompute instead of mutating, so concurrent read-only
// use from several goroutines is safe.
type Polarization struct {
	pElecs     *mat.Dense //Lx3, electron*Angstrom
	pIons      *mat.Dense //Lx3, electron*Angstrom
	structures []*ferro.Structure
}

// New builds a Polarization from the electronic dipoles, ionic dipoles and
// structures of the path, in order of nonpolar to polar. The three
// sequences must have the same length, at least 1, and every dipole must
// have 3 components.
func New(pElecs, pIons [][]float64, structures []*ferro.Structure) (*Polarization, error) {
	L := len(pElecs)
	if L != len(pIons) || L != len(structures) {
		return nil, &Error{message: fmt.Sprintf("the number of electronic dipoles, ionic dipoles and structures must be equal (%d, %d, %d)", L, len(pIons), len(structures)), deco: []string{"New"}}
	}
	if L == 0 {
		return nil, &Error{message: "at least one step of the distortion path is needed", deco: []string{"New"}}
	}
	pe := mat.NewDense(L, 3, nil)
	pi := mat.NewDense(L, 3, nil)
	for i := 0; i < L; i++ {
		if len(pElecs[i]) != 3 || len(pIons[i]) != 3 {
			return nil, &Error{message: fmt.Sprintf("dipole moments must have 3 components (step %d)", i), deco: []string{"New"}}
		}
		pe.SetRow(i, pElecs[i])
		pi.SetRow(i, pIons[i])
	}
	s := make([]*ferro.Structure, L)
	copy(s, structures)
	return &Polarization{pElecs: pe, pIons: pi, structures: s}, nil
}

// Len returns the number of steps in the path.
func (P *Polarization) Len() int {
	r, _ := P.pElecs.Dims()
	return r
}

//unitScale returns the electron*Angstrom to microCoulomb/cm^2 factor for
//the i-th structure. Each step uses its own cell volume; the factor is
//negative.
func (P *Polarization) unitScale(i int) float64 {
	return ferro.EA2MuCCm2(P.structures[i].Lattice().Volume())
}

// Dipoles returns copies of the electronic and ionic dipole matrices, one
// Lx3 matrix each. If convert is true, every row is scaled from
// electron*Angstrom to microCoulomb/cm^2 using that structure's cell
// volume.
func (P *Polarization) Dipoles(convert bool) (pElecs, pIons *mat.Dense) {
	L := P.Len()
	pe := mat.NewDense(L, 3, nil)
	pi := mat.NewDense(L, 3, nil)
	pe.Copy(P.pElecs)
	pi.Copy(P.pIons)
	if !convert {
		return pe, pi
	}
	for i := 0; i < L; i++ {
		u := P.unitScale(i)
		for d := 0; d < 3; d++ {
			pe.Set(i, d, pe.At(i, d)*u)
			pi.Set(i, d, pi.At(i, d)*u)
		}
	}
	return pe, pi
}

//adjustedLattices returns the per-step lattices, rescaled by each step's
//own unit factor when converting. The scale must be per step, never a
//track-wide constant: the cell volume changes along the path.
func (P *Polarization) adjustedLattices(convert bool) []*ferro.Lattice {
	lats := make([]*ferro.Lattice, P.Len())
	for i := range lats {
		lats[i] = P.structures[i].Lattice()
		if convert {
			var err error
			lats[i], err = lats[i].Rescale(P.unitScale(i))
			if err != nil {
				panic("cant happen") //a nonzero rescale of a valid lattice is never singular
			}
		}
	}
	return lats
}

// SameBranch returns the Lx3 same-branch polarization: for each step, the
// periodic image of the total (electronic plus ionic) dipole moment that
// lies closest in real space to the image chosen for the previous step.
// The nonpolar endpoint is matched against the origin instead, which folds
// it toward zero and also handles a true half-quantum polarization. If
// convert is true the result is in microCoulomb/cm^2, with the lattice
// quanta rescaled consistently.
func (P *Polarization) SameBranch(convert bool) *mat.Dense {
	L := P.Len()
	ptot := mat.NewDense(L, 3, nil)
	ptot.Add(P.pElecs, P.pIons)
	if convert {
		for i := 0; i < L; i++ {
			u := P.unitScale(i)
			for d := 0; d < 3; d++ {
				ptot.Set(i, d, ptot.At(i, d)*u)
			}
		}
	}
	lats := P.adjustedLattices(convert)
	out := mat.NewDense(L, 3, nil)
	prev := []float64{0, 0, 0} //the nonpolar step folds toward zero
	frac := make([]float64, 3)
	for i := 0; i < L; i++ {
		lens := lats[i].Lengths()
		for d := 0; d < 3; d++ {
			frac[d] = ptot.At(i, d) / lens[d]
		}
		fImg, cImg := ferro.NearestImage(lats[i], prev, frac)
		for d := 0; d < 3; d++ {
			out.Set(i, d, fImg[d]*lens[d])
		}
		prev = cImg
	}
	return out
}

// LatticeQuanta returns an Lx3 matrix with the magnitude of one
// polarization quantum (one full lattice vector) per structure and lattice
// direction, in the same optional units as SameBranch.
func (P *Polarization) LatticeQuanta(convert bool) *mat.Dense {
	L := P.Len()
	lats := P.adjustedLattices(convert)
	out := mat.NewDense(L, 3, nil)
	for i := 0; i < L; i++ {
		lens := lats[i].Lengths()
		out.SetRow(i, lens[:])
	}
	return out
}

// Change returns the difference between the polar and nonpolar same-branch
// polarization, in microCoulomb/cm^2.
func (P *Polarization) Change() []float64 {
	tot := P.SameBranch(true)
	L := P.Len()
	r := make([]float64, 3)
	for d := 0; d < 3; d++ {
		r[d] = tot.At(L-1, d) - tot.At(0, d)
	}
	return r
}

// ChangeNorm returns the magnitude of the polarization change: the change
// along each lattice direction is projected onto the polar structure's
// normalized basis vectors and the Euclidean norm of the resulting
// Cartesian vector is returned, so oblique cells do not distort the
// magnitude.
func (P *Polarization) ChangeNorm() float64 {
	polar := P.structures[P.Len()-1].Lattice()
	ch := P.Change()
	cart := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v := polar.Vector(i)
		n := floats.Norm(v, 2)
		floats.AddScaled(cart, ch[i]/n, v)
	}
	return floats.Norm(cart, 2)
}

// Splines fits one cubic smoothing spline per lattice direction to the
// converted same-branch polarization against the step index. A direction
// whose fit is infeasible (e.g. too few steps) gets a nil entry; one bad
// direction does not block the others.
func (P *Polarization) Splines() [3]*spline.Spline {
	tot := P.SameBranch(true)
	L := P.Len()
	x := make([]float64, L)
	for i := range x {
		x[i] = float64(i)
	}
	var sps [3]*spline.Spline
	for d := 0; d < 3; d++ {
		sp, err := spline.Fit(x, mat.Col(nil, d, tot), 3)
		if err != nil {
			continue //reported as nil for this direction only
		}
		sps[d] = sp
	}
	return sps
}

// MaxSplineJumps returns, per lattice direction, the maximum difference
// between the same-branch polarization and its spline fit over all steps.
// Directions without a valid spline are reported as NaN.
func (P *Polarization) MaxSplineJumps() []float64 {
	tot := P.SameBranch(true)
	sps := P.Splines()
	L := P.Len()
	r := []float64{math.NaN(), math.NaN(), math.NaN()}
	for d, sp := range sps {
		if sp == nil {
			continue
		}
		max := math.Inf(-1)
		for i := 0; i < L; i++ {
			if j := tot.At(i, d) - sp.Eval(float64(i)); j > max {
				max = j
			}
		}
		r[d] = max
	}
	return r
}

// Smoothness returns the per-direction RMS deviation between the converted
// same-branch polarization and its spline fit. Unlike MaxSplineJumps, a
// single direction without a valid spline fails the whole call; this
// all-or-nothing policy is kept for compatibility with the reference
// behavior.
func (P *Polarization) Smoothness() ([]float64, error) {
	tot := P.SameBranch(true)
	sps := P.Splines()
	L := P.Len()
	r := make([]float64, 3)
	for d, sp := range sps {
		if sp == nil {
			return nil, &Error{message: fmt.Sprintf("spline fit unavailable for lattice direction %d", d), deco: []string{"Smoothness"}}
		}
		sum := 0.0
		for i := 0; i < L; i++ {
			diff := sp.Eval(float64(i)) - tot.At(i, d)
			sum += diff * diff
		}
		r[d] = math.Sqrt(sum / float64(L))
	}
	return r, nil
}

//Errors

// Error is the general error type of the polarization package. It
// fulfills ferro.Error.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string {
	return fmt.Sprintf("goFerro/polarization: %s", err.message)
}

func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
