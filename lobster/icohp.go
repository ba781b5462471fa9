package lobster

import (
	"fmt"
	"strconv"
	"strings"
)

// Icohp is one entry of an ICOHPLIST/ICOOPLIST file: the integrated
// population of one bond at the Fermi level, per spin channel.
type Icohp struct {
	Label       string
	Atom1       string //e.g. "Fe1"
	Atom2       string
	Length      float64
	Translation [3]int //cell translation of the second atom (zero for 2.2.x files)
	Num         int    //number of equivalent bonds grouped in the entry (1 for 3.x files)
	Values      map[Spin]float64
}

// Icohplist holds the contents of an ICOHPLIST (areCoops false) or
// ICOOPLIST (areCoops true) file. Both the 6-column layout of LOBSTER
// 2.2.x and the 8-column layout of 3.x are understood; spin-polarized
// files carry a second block, read into the SpinDown values.
type Icohplist struct {
	AreCoops        bool
	IsSpinPolarized bool
	Version         string
	Entries         map[string]*Icohp
}

// ReadIcohplist reads an ICOHPLIST/ICOOPLIST file.
func ReadIcohplist(filename string, areCoops bool) (*Icohplist, error) {
	lines, err := readLines(filename)
	if err != nil {
		return nil, &Error{message: UnableToOpen + ": " + err.Error(), filename: filename, deco: []string{"ReadIcohplist"}}
	}
	fail := func(msg string) (*Icohplist, error) {
		return nil, &Error{message: msg, filename: filename, deco: []string{"ReadIcohplist"}}
	}
	//drop the header line and any trailing blank lines
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return fail(NoData)
	}
	var version string
	switch len(strings.Fields(lines[0])) {
	case 8:
		version = "3.1.1"
	case 6:
		version = "2.2.1"
	default:
		return fail(WrongFormat)
	}
	I := &Icohplist{AreCoops: areCoops, Version: version, Entries: make(map[string]*Icohp)}
	numBonds := len(lines)
	//a spin-polarized list repeats the header in the middle of the file
	if strings.Contains(lines[len(lines)/2], "distance") {
		I.IsSpinPolarized = true
		numBonds = len(lines) / 2
		if numBonds == 0 {
			return fail(NoData)
		}
	}
	for b := 0; b < numBonds; b++ {
		fields := strings.Fields(lines[b])
		e := &Icohp{Values: make(map[Spin]float64)}
		var err error
		var down string
		switch version {
		case "2.2.1":
			if len(fields) != 6 {
				return fail(WrongFormat)
			}
			e.Label, e.Atom1, e.Atom2 = fields[0], fields[1], fields[2]
			if e.Length, err = strconv.ParseFloat(fields[3], 64); err != nil {
				return fail("unreadable bond length: " + err.Error())
			}
			if e.Values[SpinUp], err = strconv.ParseFloat(fields[4], 64); err != nil {
				return fail("unreadable population: " + err.Error())
			}
			if e.Num, err = strconv.Atoi(fields[5]); err != nil {
				return fail("unreadable bond count: " + err.Error())
			}
			if I.IsSpinPolarized {
				dfields := strings.Fields(lines[b+numBonds+1])
				if len(dfields) != 6 {
					return fail(WrongFormat)
				}
				down = dfields[4]
			}
		case "3.1.1":
			if len(fields) != 8 {
				return fail(WrongFormat)
			}
			e.Label, e.Atom1, e.Atom2 = fields[0], fields[1], fields[2]
			if e.Length, err = strconv.ParseFloat(fields[3], 64); err != nil {
				return fail("unreadable bond length: " + err.Error())
			}
			for i := 0; i < 3; i++ {
				if e.Translation[i], err = strconv.Atoi(fields[4+i]); err != nil {
					return fail("unreadable translation: " + err.Error())
				}
			}
			if e.Values[SpinUp], err = strconv.ParseFloat(fields[7], 64); err != nil {
				return fail("unreadable population: " + err.Error())
			}
			e.Num = 1
			if I.IsSpinPolarized {
				dfields := strings.Fields(lines[b+numBonds+1])
				if len(dfields) != 8 {
					return fail(WrongFormat)
				}
				down = dfields[7]
			}
		}
		if I.IsSpinPolarized {
			if e.Values[SpinDown], err = strconv.ParseFloat(down, 64); err != nil {
				return fail("unreadable spin-down population: " + err.Error())
			}
		}
		I.Entries[e.Label] = e
	}
	if len(I.Entries) != numBonds {
		return fail(fmt.Sprintf("duplicate bond labels: %d entries for %d bonds", len(I.Entries), numBonds))
	}
	return I, nil
}
