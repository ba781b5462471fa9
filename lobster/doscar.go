package lobster

import (
	"fmt"
	"strconv"
	"strings"
)

// Doscar holds the contents of a DOSCAR.lobster file: the energy grid,
// the total density of states per spin channel, and the projected DOS per
// atom and orbital. Spin polarization is inferred from the column count of
// the total-DOS block (3 columns without, 5 with), so no second
// calculation output is needed.
type Doscar struct {
	NAtoms          int
	EFermi          float64
	IsSpinPolarized bool
	Energies        []float64
	TDensities      map[Spin][]float64
	//PDOS[atom][orbital][spin] is the projected density at each energy;
	//orbital strings are LOBSTER's ("s", "p_y", "2p_x", ...)
	PDOS []map[string]map[Spin][]float64
}

// ReadDoscar reads a DOSCAR.lobster (or .gz) file.
func ReadDoscar(filename string) (*Doscar, error) {
	lines, err := readLines(filename)
	if err != nil {
		return nil, &Error{message: UnableToOpen + ": " + err.Error(), filename: filename, deco: []string{"ReadDoscar"}}
	}
	fail := func(msg string) (*Doscar, error) {
		return nil, &Error{message: msg, filename: filename, deco: []string{"ReadDoscar"}}
	}
	if len(lines) < 7 {
		return fail(NoData)
	}
	natoms, err := strconv.Atoi(strings.Fields(lines[0])[0])
	if err != nil {
		return fail("unreadable atom count: " + err.Error())
	}
	D := &Doscar{NAtoms: natoms, TDensities: make(map[Spin][]float64)}
	//blocks start at line 5: one header line plus ndos rows each, first
	//the total DOS and then one block per atom
	pos := 5
	var blocks [][][]float64 //per block, per row
	var orbitals [][]string
	for b := 0; b < natoms+1; b++ {
		if pos >= len(lines) {
			return fail(fmt.Sprintf("expected %d DOS blocks, file ends after %d", natoms+1, b))
		}
		header := lines[pos]
		hfields := strings.Fields(header)
		if len(hfields) < 4 {
			return fail(WrongFormat)
		}
		ndos, err := strconv.Atoi(hfields[2])
		if err != nil {
			return fail("unreadable grid size: " + err.Error())
		}
		if b == 0 {
			if D.EFermi, err = strconv.ParseFloat(hfields[3], 64); err != nil {
				return fail("unreadable Fermi energy: " + err.Error())
			}
		}
		//the orbital names of an atom block come after a semicolon
		if k := strings.LastIndex(header, ";"); k >= 0 {
			orbitals = append(orbitals, strings.Fields(header[k+1:]))
		} else {
			orbitals = append(orbitals, nil)
		}
		if pos+ndos >= len(lines) {
			return fail(fmt.Sprintf("truncated DOS block %d", b))
		}
		block := make([][]float64, ndos)
		for i := 0; i < ndos; i++ {
			if block[i], err = floatFields(lines[pos+1+i]); err != nil {
				return fail(err.Error())
			}
			if len(block[i]) != len(block[0]) {
				return fail(WrongFormat)
			}
		}
		blocks = append(blocks, block)
		pos += 1 + ndos
	}
	total := blocks[0]
	if len(total) == 0 || len(total[0]) < 3 {
		return fail(WrongFormat)
	}
	D.IsSpinPolarized = len(total[0]) >= 5
	D.Energies = column(total, 0)
	D.TDensities[SpinUp] = column(total, 1)
	if D.IsSpinPolarized {
		D.TDensities[SpinDown] = column(total, 2)
	}
	for atom := 0; atom < natoms; atom++ {
		data := blocks[atom+1]
		orbs := orbitals[atom+1]
		pdos := make(map[string]map[Spin][]float64)
		ncol := len(data[0])
		orbnumber := 0
		for j := 1; j < ncol; j++ {
			spin := SpinUp
			if D.IsSpinPolarized && j%2 == 0 {
				spin = SpinDown
			}
			if orbnumber >= len(orbs) {
				return fail(fmt.Sprintf("atom %d: %d data columns for %d orbitals", atom, ncol-1, len(orbs)))
			}
			orb := orbs[orbnumber]
			if pdos[orb] == nil {
				pdos[orb] = make(map[Spin][]float64)
			}
			pdos[orb][spin] = column(data, j)
			if !D.IsSpinPolarized || j%2 == 0 {
				orbnumber++
			}
		}
		D.PDOS = append(D.PDOS, pdos)
	}
	return D, nil
}

func column(rows [][]float64, j int) []float64 {
	r := make([]float64, len(rows))
	for i, row := range rows {
		r[i] = row[j]
	}
	return r
}
