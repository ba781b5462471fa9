package lobster

import (
	"fmt"
	"math"
	"testing"

	ferro "github.com/goferro/goferro"
)

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestReadCohpcar(Te *testing.T) {
	c, err := ReadCohpcar("test/COHPCAR.lobster", false)
	if err != nil {
		Te.Fatal(err)
	}
	if c.IsSpinPolarized {
		Te.Error("the test file is not spin polarized")
	}
	if !closeTo(c.EFermi, 0.5, 1e-9) {
		Te.Errorf("Fermi energy: got %f, want 0.5", c.EFermi)
	}
	if len(c.Energies) != 5 || !closeTo(c.Energies[0], -2, 1e-9) {
		Te.Fatalf("energy grid: got %v", c.Energies)
	}
	if !closeTo(c.AverageCOHP[SpinUp][4], 0.2, 1e-9) {
		Te.Errorf("average COHP: got %f, want 0.2", c.AverageCOHP[SpinUp][4])
	}
	if !closeTo(c.AverageICOHP[SpinUp][2], -0.6, 1e-9) {
		Te.Errorf("average ICOHP: got %f, want -0.6", c.AverageICOHP[SpinUp][2])
	}
	b1, ok := c.Bonds["1"]
	if !ok {
		Te.Fatalf("bond 1 missing, labels: %v", len(c.Bonds))
	}
	if !closeTo(b1.Length, 2.83, 1e-9) || b1.Sites != [2]int{0, 1} {
		Te.Errorf("bond 1: length %f sites %v", b1.Length, b1.Sites)
	}
	if !closeTo(b1.ICOHP[SpinUp][0], -0.15, 1e-9) {
		Te.Errorf("bond 1 ICOHP: got %f, want -0.15", b1.ICOHP[SpinUp][0])
	}
	b2 := c.Bonds["2"]
	if b2 == nil || b2.Sites != [2]int{0, 2} {
		Te.Fatalf("bond 2 (Fe1->O3) wrong: %+v", b2)
	}
	if !closeTo(b2.COHP[SpinUp][4], 0.1, 1e-9) {
		Te.Errorf("bond 2 COHP: got %f, want 0.1", b2.COHP[SpinUp][4])
	}
	//the orbital-resolved entry attaches to the bond it belongs to
	orb := c.OrbRes["1"]["3d_xy-3d_xy"]
	if orb == nil {
		Te.Fatal("orbital-resolved entry for bond 1 missing")
	}
	if !closeTo(orb.COHP[SpinUp][1], -0.04, 1e-9) {
		Te.Errorf("orbital-resolved COHP: got %f, want -0.04", orb.COHP[SpinUp][1])
	}
	fmt.Printf("COHPCAR: %d bonds, efermi %f\n", len(c.Bonds), c.EFermi)
}

func TestReadIcohplist(Te *testing.T) {
	ic, err := ReadIcohplist("test/ICOHPLIST.lobster", false)
	if err != nil {
		Te.Fatal(err)
	}
	if ic.Version != "3.1.1" || ic.IsSpinPolarized || ic.AreCoops {
		Te.Errorf("header detection: version %s spin %v coops %v", ic.Version, ic.IsSpinPolarized, ic.AreCoops)
	}
	e := ic.Entries["2"]
	if e == nil {
		Te.Fatal("entry 2 missing")
	}
	if e.Atom1 != "Fe1" || e.Atom2 != "O3" {
		Te.Errorf("entry 2 atoms: %s %s", e.Atom1, e.Atom2)
	}
	if e.Translation != [3]int{0, 0, 1} {
		Te.Errorf("entry 2 translation: %v", e.Translation)
	}
	if !closeTo(e.Values[SpinUp], -4.25, 1e-9) || !closeTo(e.Length, 2.45, 1e-9) {
		Te.Errorf("entry 2 values: %v length %f", e.Values, e.Length)
	}
}

func TestReadIcohplistSpin(Te *testing.T) {
	ic, err := ReadIcohplist("test/ICOHPLIST.spin.lobster", false)
	if err != nil {
		Te.Fatal(err)
	}
	if ic.Version != "2.2.1" || !ic.IsSpinPolarized {
		Te.Errorf("header detection: version %s spin %v", ic.Version, ic.IsSpinPolarized)
	}
	if len(ic.Entries) != 2 {
		Te.Fatalf("entries: got %d, want 2", len(ic.Entries))
	}
	e := ic.Entries["1"]
	if !closeTo(e.Values[SpinUp], -1.33, 1e-9) || !closeTo(e.Values[SpinDown], -1.13, 1e-9) {
		Te.Errorf("spin channels of entry 1: %v", e.Values)
	}
	if e.Num != 1 {
		Te.Errorf("bond count of entry 1: got %d, want 1", e.Num)
	}
}

func TestReadDoscar(Te *testing.T) {
	d, err := ReadDoscar("test/DOSCAR.lobster")
	if err != nil {
		Te.Fatal(err)
	}
	if d.NAtoms != 2 || d.IsSpinPolarized {
		Te.Errorf("header: natoms %d spin %v", d.NAtoms, d.IsSpinPolarized)
	}
	if !closeTo(d.EFermi, 0.5, 1e-9) {
		Te.Errorf("Fermi energy: got %f, want 0.5", d.EFermi)
	}
	if len(d.Energies) != 3 || !closeTo(d.Energies[2], 5, 1e-9) {
		Te.Fatalf("energy grid: %v", d.Energies)
	}
	if !closeTo(d.TDensities[SpinUp][1], 0.5, 1e-9) {
		Te.Errorf("total DOS: got %f, want 0.5", d.TDensities[SpinUp][1])
	}
	if len(d.PDOS) != 2 {
		Te.Fatalf("projected DOS for %d atoms, want 2", len(d.PDOS))
	}
	if !closeTo(d.PDOS[0]["2p_z"][SpinUp][1], 0.07, 1e-9) {
		Te.Errorf("atom 0 2p_z: got %f, want 0.07", d.PDOS[0]["2p_z"][SpinUp][1])
	}
	if !closeTo(d.PDOS[1]["2s"][SpinUp][2], 0.4, 1e-9) {
		Te.Errorf("atom 1 2s: got %f, want 0.4", d.PDOS[1]["2s"][SpinUp][2])
	}
}

func TestReadDoscarSpin(Te *testing.T) {
	d, err := ReadDoscar("test/DOSCAR.spin.lobster")
	if err != nil {
		Te.Fatal(err)
	}
	if !d.IsSpinPolarized {
		Te.Fatal("spin polarization not detected from the column count")
	}
	if !closeTo(d.EFermi, 0.3, 1e-9) {
		Te.Errorf("Fermi energy: got %f, want 0.3", d.EFermi)
	}
	if !closeTo(d.TDensities[SpinDown][1], 0.22, 1e-9) {
		Te.Errorf("spin-down total DOS: got %f, want 0.22", d.TDensities[SpinDown][1])
	}
	if !closeTo(d.PDOS[0]["2s"][SpinDown][0], 0.02, 1e-9) {
		Te.Errorf("spin-down 2s: got %f, want 0.02", d.PDOS[0]["2s"][SpinDown][0])
	}
	if !closeTo(d.PDOS[0]["2s"][SpinUp][1], 0.03, 1e-9) {
		Te.Errorf("spin-up 2s: got %f, want 0.03", d.PDOS[0]["2s"][SpinUp][1])
	}
}

func TestReadCharge(Te *testing.T) {
	c, err := ReadCharge("test/CHARGE.lobster")
	if err != nil {
		Te.Fatal(err)
	}
	if c.NumAtoms != 2 {
		Te.Fatalf("atoms: got %d, want 2", c.NumAtoms)
	}
	if c.AtomList[0] != "Fe1" || c.Types[1] != "O" {
		Te.Errorf("atom labels: %v %v", c.AtomList, c.Types)
	}
	if !closeTo(c.Mulliken[1], -0.42, 1e-9) || !closeTo(c.Loewdin[0], 0.15, 1e-9) {
		Te.Errorf("charges: Mulliken %v Loewdin %v", c.Mulliken, c.Loewdin)
	}
}

func TestReadChargeGz(Te *testing.T) {
	c, err := ReadCharge("test/CHARGE.lobster.gz")
	if err != nil {
		Te.Fatal(err)
	}
	if !closeTo(c.Mulliken[0], 0.21, 1e-9) {
		Te.Errorf("gzipped charges: got %f, want 0.21", c.Mulliken[0])
	}
}

func TestStructureWithCharges(Te *testing.T) {
	c, err := ReadCharge("test/CHARGE.lobster")
	if err != nil {
		Te.Fatal(err)
	}
	sites := []*ferro.Site{
		ferro.NewSite("Fe", []float64{0, 0, 0}),
		ferro.NewSite("O", []float64{0.5, 0.5, 0.5}),
	}
	s, err := ferro.NewStructure(ferro.CubicLattice(4), sites)
	if err != nil {
		Te.Fatal(err)
	}
	dec, err := c.StructureWithCharges(s)
	if err != nil {
		Te.Fatal(err)
	}
	if !closeTo(dec.Site(1).Properties["loewdin"], -0.31, 1e-9) {
		Te.Errorf("attached charge: got %f, want -0.31", dec.Site(1).Properties["loewdin"])
	}
	//the original structure is untouched
	if s.Site(1).Properties != nil {
		Te.Error("decorating made a copy, the original must not carry charges")
	}
	one, _ := ferro.NewStructure(ferro.CubicLattice(4), sites[:1])
	if _, err := c.StructureWithCharges(one); err == nil {
		Te.Error("expected an error for a structure with the wrong atom count")
	}
}

func TestMissingFiles(Te *testing.T) {
	if _, err := ReadCohpcar("test/nope", false); err == nil {
		Te.Error("expected an error for a missing COHPCAR")
	}
	if _, err := ReadIcohplist("test/nope", false); err == nil {
		Te.Error("expected an error for a missing ICOHPLIST")
	}
	if _, err := ReadDoscar("test/nope"); err == nil {
		Te.Error("expected an error for a missing DOSCAR")
	}
	if _, err := ReadCharge("test/nope"); err == nil {
		Te.Error("expected an error for a missing CHARGE file")
	}
}
