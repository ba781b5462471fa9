package lobster

import (
	"fmt"
	"strconv"
	"strings"
)

// BondCurve holds the population curves of one bond (or of one
// orbital-resolved contribution to a bond): the COHP/COOP at every energy
// of the grid and its integral up to each energy, per spin channel.
type BondCurve struct {
	Length   float64
	Sites    [2]int   //zero-based site indices
	Orbitals []string //nil unless orbital-resolved, e.g. ["3p_x", "3d_xy"]
	COHP     map[Spin][]float64
	ICOHP    map[Spin][]float64
}

// Cohpcar holds the contents of a COHPCAR/COOPCAR file: the energy grid
// (shifted by LOBSTER so the Fermi level is at zero), the average curve,
// and one BondCurve per bond, keyed by the bond label used in the matching
// ICOHPLIST file ("1", "2", ...). Orbital-resolved contributions, when
// present, are stored separately under their bond label and an orbital
// label like "3p_x-3d_xy".
type Cohpcar struct {
	AreCoops        bool
	IsSpinPolarized bool
	EFermi          float64
	Energies        []float64
	AverageCOHP     map[Spin][]float64
	AverageICOHP    map[Spin][]float64
	Bonds           map[string]*BondCurve
	OrbRes          map[string]map[string]*BondCurve
}

// ReadCohpcar reads a COHPCAR (areCoops false) or COOPCAR (areCoops true)
// file.
func ReadCohpcar(filename string, areCoops bool) (*Cohpcar, error) {
	lines, err := readLines(filename)
	if err != nil {
		return nil, &Error{message: UnableToOpen + ": " + err.Error(), filename: filename, deco: []string{"ReadCohpcar"}}
	}
	fail := func(msg string) (*Cohpcar, error) {
		return nil, &Error{message: msg, filename: filename, deco: []string{"ReadCohpcar"}}
	}
	if len(lines) < 4 {
		return fail(NoData)
	}
	//the second line carries all parameters needed to map the file
	params := strings.Fields(lines[1])
	if len(params) < 2 {
		return fail(WrongFormat)
	}
	ninter, err := strconv.Atoi(params[0])
	if err != nil {
		return fail("unreadable interaction count: " + err.Error())
	}
	numBonds := ninter - 1 //the first interaction is the average
	efermi, err := strconv.ParseFloat(params[len(params)-1], 64)
	if err != nil {
		return fail("unreadable Fermi energy: " + err.Error())
	}
	C := &Cohpcar{
		AreCoops:     areCoops,
		EFermi:       efermi,
		AverageCOHP:  make(map[Spin][]float64),
		AverageICOHP: make(map[Spin][]float64),
		Bonds:        make(map[string]*BondCurve),
	}
	spins := []Spin{SpinUp}
	if params[1] == "2" {
		C.IsSpinPolarized = true
		spins = []Spin{SpinUp, SpinDown}
	}
	if len(lines) < numBonds+4 {
		return fail(NoData)
	}
	//transpose the data block, which starts right after the bond headers
	var cols [][]float64
	for _, line := range lines[numBonds+3:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := floatFields(line)
		if err != nil {
			return fail(err.Error())
		}
		if cols == nil {
			cols = make([][]float64, len(row))
		}
		if len(row) != len(cols) {
			return fail(WrongFormat)
		}
		for i, v := range row {
			cols[i] = append(cols[i], v)
		}
	}
	want := 1 + 2*(numBonds+1)*len(spins)
	if len(cols) != want {
		return fail(fmt.Sprintf("expected %d data columns, got %d", want, len(cols)))
	}
	C.Energies = cols[0]
	for s, spin := range spins {
		C.AverageCOHP[spin] = cols[1+2*s*(numBonds+1)]
		C.AverageICOHP[spin] = cols[2+2*s*(numBonds+1)]
	}
	//Bond labels restart from 1 for every non-orbital entry so that they
	//match ICOHPLIST labels; orbital-resolved entries attach to the label
	//of the bond they belong to.
	bondnumber := 0
	for b := 0; b < numBonds; b++ {
		length, sites, orbs, err := parseBondHeader(lines[3+b])
		if err != nil {
			return fail(err.Error())
		}
		curve := &BondCurve{
			Length:   length,
			Sites:    sites,
			Orbitals: orbs,
			COHP:     make(map[Spin][]float64),
			ICOHP:    make(map[Spin][]float64),
		}
		for s, spin := range spins {
			curve.COHP[spin] = cols[2*(b+s*(numBonds+1))+3]
			curve.ICOHP[spin] = cols[2*(b+s*(numBonds+1))+4]
		}
		if orbs == nil {
			bondnumber++
			C.Bonds[strconv.Itoa(bondnumber)] = curve
			continue
		}
		label := strconv.Itoa(bondnumber)
		if _, ok := C.Bonds[label]; !ok {
			//older LOBSTER versions list orbital entries without a
			//preceding total for the bond
			bondnumber++
			label = strconv.Itoa(bondnumber)
			C.Bonds[label] = &BondCurve{Length: length, Sites: sites}
		}
		if C.OrbRes == nil {
			C.OrbRes = make(map[string]map[string]*BondCurve)
		}
		if C.OrbRes[label] == nil {
			C.OrbRes[label] = make(map[string]*BondCurve)
		}
		C.OrbRes[label][strings.Join(orbs, "-")] = curve
	}
	return C, nil
}

//parseBondHeader extracts length, zero-based site indices and (optional)
//orbital labels from a COHPCAR bond header like
//"No.4:Fe1->Fe9(2.45248)" or "No.1:Fe1[3p_x]->Fe2[3d_xy](2.45618)".
func parseBondHeader(line string) (float64, [2]int, []string, error) {
	var sites [2]int
	open := strings.LastIndex(line, "(")
	if open < 0 || !strings.HasSuffix(strings.TrimSpace(line), ")") {
		return 0, sites, nil, fmt.Errorf("malformed bond header: %q", line)
	}
	lstr := strings.TrimSpace(line)
	length, err := strconv.ParseFloat(lstr[strings.LastIndex(lstr, "(")+1:len(lstr)-1], 64)
	if err != nil {
		return 0, sites, nil, fmt.Errorf("unreadable bond length in %q: %v", line, err)
	}
	head := strings.Replace(line[:open], "->", ":", 1)
	parts := strings.Split(head, ":")
	if len(parts) < 3 {
		return 0, sites, nil, fmt.Errorf("malformed bond header: %q", line)
	}
	var orbs []string
	for i, p := range parts[1:3] {
		if k := strings.Index(p, "["); k >= 0 {
			if j := strings.Index(p, "]"); j > k {
				orbs = append(orbs, p[k+1:j])
			}
			p = p[:k]
		}
		idx, err := trailingIndex(p)
		if err != nil {
			return 0, sites, nil, fmt.Errorf("malformed site %q in %q", p, line)
		}
		sites[i] = idx - 1 //the file is one-based
	}
	if len(orbs) != 0 && len(orbs) != 2 {
		return 0, sites, nil, fmt.Errorf("malformed orbital labels in %q", line)
	}
	return length, sites, orbs, nil
}

//trailingIndex returns the integer at the end of a site string like "Fe9".
func trailingIndex(s string) (int, error) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return 0, fmt.Errorf("no site index in %q", s)
	}
	return strconv.Atoi(s[i:])
}
