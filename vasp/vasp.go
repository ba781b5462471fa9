//Package vasp reads the VASP output files that the polarization analysis
//consumes: the electronic and ionic dipole moments printed to OUTCAR by a
//Berry-phase (LCALCPOL) calculation, the final total energy, and structures
//from POSCAR/CONTCAR files. Files ending in .gz are decompressed
//transparently.
package vasp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	ferro "github.com/goferro/goferro"
)

// Outcar holds the quantities read from an OUTCAR file: the last reported
// electronic and ionic dipole moments (electron*Angstrom along the lattice
// directions) and the last free energy (TOTEN, eV). Dipole slices are nil
// if the calculation did not print them (not a Berry-phase run).
type Outcar struct {
	PElec  []float64
	PIon   []float64
	Energy float64
}

// ReadOutcar reads an OUTCAR (or OUTCAR.gz) file.
func ReadOutcar(filename string) (*Outcar, error) {
	f, err := openMaybeCompressed(filename)
	if err != nil {
		return nil, &Error{message: UnableToOpen, filename: filename, deco: []string{"ReadOutcar"}}
	}
	defer f.Close()
	o := new(Outcar)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	hasEnergy := false
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "p[elc]=("):
			v, err := dipoleVector(line)
			if err != nil {
				return nil, &Error{message: err.Error(), filename: filename, deco: []string{"ReadOutcar"}}
			}
			o.PElec = v
		case strings.Contains(line, "p[ion]=("):
			v, err := dipoleVector(line)
			if err != nil {
				return nil, &Error{message: err.Error(), filename: filename, deco: []string{"ReadOutcar"}}
			}
			o.PIon = v
		case strings.Contains(line, "free  energy   TOTEN"):
			fields := strings.Fields(line)
			//... TOTEN  =      -104.42773 eV
			if len(fields) < 5 {
				return nil, &Error{message: WrongFormat, filename: filename, deco: []string{"ReadOutcar"}}
			}
			e, err := strconv.ParseFloat(fields[len(fields)-2], 64)
			if err != nil {
				return nil, &Error{message: WrongFormat, filename: filename, deco: []string{"ReadOutcar"}}
			}
			o.Energy = e
			hasEnergy = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{message: ReadError + ": " + err.Error(), filename: filename, deco: []string{"ReadOutcar"}}
	}
	if o.PElec == nil && o.PIon == nil && !hasEnergy {
		return nil, &Error{message: WrongFormat, filename: filename, deco: []string{"ReadOutcar"}}
	}
	return o, nil
}

//dipoleVector extracts the 3 components between the parentheses of a
//p[elc]=( x y z ) or p[ion]=( x y z ) line.
func dipoleVector(line string) ([]float64, error) {
	open := strings.Index(line, "(")
	cl := strings.LastIndex(line, ")")
	if open < 0 || cl < open {
		return nil, fmt.Errorf("malformed dipole line: %q", line)
	}
	fields := strings.Fields(line[open+1 : cl])
	if len(fields) != 3 {
		return nil, fmt.Errorf("expected 3 dipole components, got %d in %q", len(fields), line)
	}
	v := make([]float64, 3)
	for i, s := range fields {
		var err error
		if v[i], err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("unreadable dipole component %q: %v", s, err)
		}
	}
	return v, nil
}

// ReadPoscar reads a POSCAR/CONTCAR (or .gz) file with VASP 5 species
// labels and returns the structure. Both Direct and Cartesian coordinates
// are handled, as are selective-dynamics files (the flags are ignored) and
// a negative scale factor (interpreted as the target cell volume).
func ReadPoscar(filename string) (*ferro.Structure, error) {
	f, err := openMaybeCompressed(filename)
	if err != nil {
		return nil, &Error{message: UnableToOpen, filename: filename, deco: []string{"ReadPoscar"}}
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	fail := func(msg string) (*ferro.Structure, error) {
		return nil, &Error{message: msg, filename: filename, deco: []string{"ReadPoscar"}}
	}
	next := func() (string, bool) {
		for scanner.Scan() {
			if t := strings.TrimSpace(scanner.Text()); t != "" {
				return t, true
			}
		}
		return "", false
	}
	if _, ok := next(); !ok { //comment line
		return fail(WrongFormat)
	}
	sline, ok := next()
	if !ok {
		return fail(WrongFormat)
	}
	scale, err := strconv.ParseFloat(strings.Fields(sline)[0], 64)
	if err != nil {
		return fail("unreadable scale factor: " + err.Error())
	}
	vectors := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		vline, ok := next()
		if !ok {
			return fail(WrongFormat)
		}
		fields := strings.Fields(vline)
		if len(fields) < 3 {
			return fail("malformed lattice vector: " + vline)
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return fail("unreadable lattice vector component: " + err.Error())
			}
			vectors = append(vectors, v)
		}
	}
	if scale < 0 {
		//negative scale is the desired cell volume
		lat, err := ferro.NewLattice(vectors)
		if err != nil {
			return fail(err.Error())
		}
		scale = math.Cbrt(-scale / lat.Volume())
	}
	for i := range vectors {
		vectors[i] *= scale
	}
	lattice, err := ferro.NewLattice(vectors)
	if err != nil {
		return fail(err.Error())
	}
	symline, ok := next()
	if !ok {
		return fail(WrongFormat)
	}
	symbols := strings.Fields(symline)
	if _, err := strconv.Atoi(symbols[0]); err == nil {
		return fail("POSCAR without species labels (VASP 4 format) not supported")
	}
	cntline, ok := next()
	if !ok {
		return fail(WrongFormat)
	}
	cfields := strings.Fields(cntline)
	if len(cfields) != len(symbols) {
		return fail(fmt.Sprintf("%d species labels but %d counts", len(symbols), len(cfields)))
	}
	counts := make([]int, len(cfields))
	natoms := 0
	for i, s := range cfields {
		if counts[i], err = strconv.Atoi(s); err != nil {
			return fail("unreadable species count: " + err.Error())
		}
		natoms += counts[i]
	}
	mode, ok := next()
	if !ok {
		return fail(WrongFormat)
	}
	if strings.HasPrefix(strings.ToLower(mode), "s") { //selective dynamics
		if mode, ok = next(); !ok {
			return fail(WrongFormat)
		}
	}
	cartesian := strings.HasPrefix(strings.ToLower(mode), "c") || strings.HasPrefix(strings.ToLower(mode), "k")
	sites := make([]*ferro.Site, 0, natoms)
	for i, sym := range symbols {
		for j := 0; j < counts[i]; j++ {
			cline, ok := next()
			if !ok {
				return fail(fmt.Sprintf("expected %d coordinate lines", natoms))
			}
			fields := strings.Fields(cline)
			if len(fields) < 3 {
				return fail("malformed coordinate line: " + cline)
			}
			coords := make([]float64, 3)
			for d := 0; d < 3; d++ {
				if coords[d], err = strconv.ParseFloat(fields[d], 64); err != nil {
					return fail("unreadable coordinate: " + err.Error())
				}
			}
			if cartesian {
				for d := range coords {
					coords[d] *= scale
				}
				coords = lattice.Frac(coords)
			}
			sites = append(sites, ferro.NewSite(sym, coords))
		}
	}
	st, err := ferro.NewStructure(lattice, sites)
	if err != nil {
		return fail(err.Error())
	}
	return st, nil
}

//openMaybeCompressed opens the file, stacking a gzip reader on top if the
//name ends in .gz.
func openMaybeCompressed(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(filename, ".gz") {
		return f, nil
	}
	g, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzFile{g: g, f: f}, nil
}

type gzFile struct {
	g *gzip.Reader
	f *os.File
}

func (z *gzFile) Read(p []byte) (int, error) { return z.g.Read(p) }

func (z *gzFile) Close() error {
	err := z.g.Close()
	if err2 := z.f.Close(); err == nil {
		err = err2
	}
	return err
}

//Errors

// Error is the general error type for VASP file reading. It fulfills
// ferro.Error.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err *Error) Error() string {
	return fmt.Sprintf("VASP file %s error: %s", err.filename, err.message)
}

func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the name of the offending file.
func (err *Error) FileName() string { return err.filename }

const (
	UnableToOpen = "Unable to open file"
	ReadError    = "Error reading file"
	WrongFormat  = "Wrong format in file"
)
