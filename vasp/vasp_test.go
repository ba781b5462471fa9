package vasp

import (
	"fmt"
	"math"
	"testing"
)

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestReadOutcar(Te *testing.T) {
	o, err := ReadOutcar("test/OUTCAR")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Printf("OUTCAR: p[elc] %v, p[ion] %v, TOTEN %f\n", o.PElec, o.PIon, o.Energy)
	//the file reports the dipole and the energy twice; the last one wins
	if !closeTo(o.Energy, -105.12303, 1e-8) {
		Te.Errorf("energy: got %f, want -105.12303", o.Energy)
	}
	if o.PElec == nil || !closeTo(o.PElec[2], -5.85301, 1e-8) {
		Te.Errorf("electronic dipole: got %v", o.PElec)
	}
	if o.PIon == nil || !closeTo(o.PIon[2], 40.60632, 1e-8) {
		Te.Errorf("ionic dipole: got %v", o.PIon)
	}
}

func TestReadOutcarGz(Te *testing.T) {
	o, err := ReadOutcar("test/OUTCAR.gz")
	if err != nil {
		Te.Fatal(err)
	}
	if o.PIon == nil || !closeTo(o.PIon[2], 40.60632, 1e-8) {
		Te.Errorf("ionic dipole from gzipped OUTCAR: got %v", o.PIon)
	}
}

func TestReadOutcarErrors(Te *testing.T) {
	if _, err := ReadOutcar("test/does_not_exist"); err == nil {
		Te.Error("expected an error for a missing file")
	}
	//a POSCAR has neither dipoles nor a TOTEN line
	if _, err := ReadOutcar("test/POSCAR"); err == nil {
		Te.Error("expected an error for a file without any of the wanted quantities")
	}
}

func TestReadPoscar(Te *testing.T) {
	s, err := ReadPoscar("test/POSCAR")
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 5 {
		Te.Fatalf("sites: got %d, want 5", s.Len())
	}
	if s.Site(0).Species != "Ba" || s.Site(1).Species != "Ti" || s.Site(4).Species != "O" {
		Te.Errorf("species order wrong: %s %s %s", s.Site(0).Species, s.Site(1).Species, s.Site(4).Species)
	}
	lens := s.Lattice().Lengths()
	if !closeTo(lens[0], 4, 1e-9) || !closeTo(lens[2], 4.2, 1e-9) {
		Te.Errorf("lattice lengths: got %v", lens)
	}
	cart := s.CartCoords(1)
	if !closeTo(cart[0], 2, 1e-9) || !closeTo(cart[2], 0.52*4.2, 1e-9) {
		Te.Errorf("cartesian coordinates of Ti: got %v", cart)
	}
}

func TestReadPoscarCartesian(Te *testing.T) {
	s, err := ReadPoscar("test/POSCAR_cart")
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 2 {
		Te.Fatalf("sites: got %d, want 2", s.Len())
	}
	//scale 2 applies to both the cell and the cartesian coordinates
	if !closeTo(s.Lattice().Lengths()[0], 4, 1e-9) {
		Te.Errorf("scaled lattice length: got %f, want 4", s.Lattice().Lengths()[0])
	}
	frac := s.Site(1).FracCoords
	for d := 0; d < 3; d++ {
		if !closeTo(frac[d], 0.5, 1e-9) {
			Te.Errorf("fractional coordinate %d: got %f, want 0.5", d, frac[d])
		}
	}
}
