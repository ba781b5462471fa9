package lobster

import (
	"fmt"
	"strconv"
	"strings"

	ferro "github.com/goferro/goferro"
)

// Charge holds the contents of a CHARGE.lobster file: the Mulliken and
// Loewdin charge of every atom, in file order.
type Charge struct {
	NumAtoms int
	AtomList []string //e.g. "Ti1"
	Types    []string //e.g. "Ti"
	Mulliken []float64
	Loewdin  []float64
}

// ReadCharge reads a CHARGE.lobster (or .gz) file.
func ReadCharge(filename string) (*Charge, error) {
	lines, err := readLines(filename)
	if err != nil {
		return nil, &Error{message: UnableToOpen + ": " + err.Error(), filename: filename, deco: []string{"ReadCharge"}}
	}
	fail := func(msg string) (*Charge, error) {
		return nil, &Error{message: msg, filename: filename, deco: []string{"ReadCharge"}}
	}
	//three header lines on top, a separator and the total charge at the
	//bottom
	if len(lines) <= 5 {
		return fail(NoData)
	}
	data := lines[3 : len(lines)-2]
	for len(data) > 0 && strings.TrimSpace(data[len(data)-1]) == "" {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		return fail(NoData)
	}
	C := &Charge{NumAtoms: len(data)}
	for i, line := range data {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return fail(fmt.Sprintf("malformed charge line %d: %q", i, line))
		}
		C.AtomList = append(C.AtomList, fields[1]+fields[0])
		C.Types = append(C.Types, fields[1])
		m, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fail("unreadable Mulliken charge: " + err.Error())
		}
		l, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return fail("unreadable Loewdin charge: " + err.Error())
		}
		C.Mulliken = append(C.Mulliken, m)
		C.Loewdin = append(C.Loewdin, l)
	}
	return C, nil
}

// StructureWithCharges returns a copy of the structure with the Mulliken
// and Loewdin charges attached as the site properties "mulliken" and
// "loewdin". The structure must have as many sites as the file has atoms,
// in the same order.
func (C *Charge) StructureWithCharges(s *ferro.Structure) (*ferro.Structure, error) {
	if s.Len() != C.NumAtoms {
		return nil, &Error{message: fmt.Sprintf("structure has %d sites but the file has %d atoms", s.Len(), C.NumAtoms), deco: []string{"StructureWithCharges"}}
	}
	n := s.Copy()
	for i := 0; i < n.Len(); i++ {
		site := n.Site(i)
		if site.Properties == nil {
			site.Properties = make(map[string]float64, 2)
		}
		site.Properties["mulliken"] = C.Mulliken[i]
		site.Properties["loewdin"] = C.Loewdin[i]
	}
	return n, nil
}
