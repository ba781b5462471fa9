//Package lobster reads the output files of the LOBSTER bonding-analysis
//code (www.cohp.de): COHPCAR/COOPCAR bond-resolved population curves,
//ICOHPLIST/ICOOPLIST integrated populations, DOSCAR projected densities of
//states and CHARGE atomic charges. Parsing is decode-and-store: the files
//are turned into plain in-memory values, nothing is analyzed here. Files
//ending in .gz are decompressed transparently.
package lobster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Spin labels a spin channel of a spin-polarized calculation.
type Spin int

const (
	SpinUp   Spin = 1
	SpinDown Spin = -1
)

func (s Spin) String() string {
	if s == SpinDown {
		return "down"
	}
	return "up"
}

//readLines slurps the whole file, decompressing if needed, and returns
//its lines. LOBSTER files are small enough that this is fine.
func readLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(filename, ".gz") {
		g, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer g.Close()
		r = g
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

//floatFields parses every whitespace-separated field of the line as a
//float64.
func floatFields(line string) ([]float64, error) {
	fields := strings.Fields(line)
	r := make([]float64, len(fields))
	for i, s := range fields {
		var err error
		if r[i], err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("unreadable number %q: %v", s, err)
		}
	}
	return r, nil
}

//Errors

// Error is the general error type for LOBSTER file reading. It fulfills
// ferro.Error.
type Error struct {
	message  string
	filename string
	deco     []string
}

func (err *Error) Error() string {
	return fmt.Sprintf("LOBSTER file %s error: %s", err.filename, err.message)
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
	NoData       = "File contains no data"
	WrongFormat  = "Wrong format in file"
)
