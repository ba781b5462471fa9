package polarization

import (
	"fmt"

	ferro "github.com/goferro/goferro"
	"github.com/goferro/goferro/vasp"
)

// FromOutcars builds a Polarization from the dipole moments reported in a
// list of OUTCAR files and the matching structures, both in order of
// nonpolar to polar. Every Outcar must carry both dipole moments.
//
// The ionic dipole moment printed by the electronic-structure code is
// often less well behaved than the point-charge sum of TotalIonicDipole;
// FromOutcarsCalcIonic uses the latter instead.
func FromOutcars(outcars []*vasp.Outcar, structures []*ferro.Structure) (*Polarization, error) {
	pElecs := make([][]float64, len(outcars))
	pIons := make([][]float64, len(outcars))
	for i, o := range outcars {
		if o.PElec == nil || o.PIon == nil {
			return nil, &Error{message: fmt.Sprintf("OUTCAR %d carries no dipole moments (not a Berry-phase calculation?)", i), deco: []string{"FromOutcars"}}
		}
		pElecs[i] = o.PElec
		pIons[i] = o.PIon
	}
	p, err := New(pElecs, pIons, structures)
	if err != nil {
		return nil, errDecorate(err, "FromOutcars")
	}
	return p, nil
}

// FromOutcarsCalcIonic is FromOutcars with the ionic dipole moments
// replaced by the point-charge sums computed from the structures and the
// given species->ZVAL table.
func FromOutcarsCalcIonic(outcars []*vasp.Outcar, structures []*ferro.Structure, zvals map[string]float64) (*Polarization, error) {
	if len(outcars) != len(structures) {
		return nil, &Error{message: fmt.Sprintf("the number of OUTCARs and structures must be equal (%d, %d)", len(outcars), len(structures)), deco: []string{"FromOutcarsCalcIonic"}}
	}
	pElecs := make([][]float64, len(outcars))
	pIons := make([][]float64, len(outcars))
	for i, o := range outcars {
		if o.PElec == nil {
			return nil, &Error{message: fmt.Sprintf("OUTCAR %d carries no electronic dipole moment", i), deco: []string{"FromOutcarsCalcIonic"}}
		}
		pElecs[i] = o.PElec
		var err error
		if pIons[i], err = TotalIonicDipole(structures[i], zvals); err != nil {
			return nil, errDecorate(err, "FromOutcarsCalcIonic")
		}
	}
	p, err := New(pElecs, pIons, structures)
	if err != nil {
		return nil, errDecorate(err, "FromOutcarsCalcIonic")
	}
	return p, nil
}
