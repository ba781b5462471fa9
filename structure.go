/*
 * structure.go, part of goFerro.
 *
 * Copyright 2024 The goFerro developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package ferro

import "fmt"

// Site is a point in a periodic crystal: fractional coordinates in the
// host lattice plus an elemental species symbol. Extra per-site data read
// from external codes (Mulliken/Loewdin charges, for now) goes in
// Properties, which may be nil.
type Site struct {
	Species    string
	FracCoords []float64
	Properties map[string]float64
}

// NewSite returns a Site with the given species symbol and fractional
// coordinates. The coordinate slice is copied.
func NewSite(species string, frac []float64) *Site {
	if len(frac) != 3 {
		panic("Site: fractional coordinates must have 3 components")
	}
	f := make([]float64, 3)
	copy(f, frac)
	return &Site{Species: species, FracCoords: f}
}

// Copy returns a copy of the Site.
func (S *Site) Copy() *Site {
	n := NewSite(S.Species, S.FracCoords)
	if S.Properties != nil {
		n.Properties = make(map[string]float64, len(S.Properties))
		for k, v := range S.Properties {
			n.Properties[k] = v
		}
	}
	return n
}

// Structure is an ordered set of Sites plus one Lattice, one snapshot per
// step of a distortion path. Structures are immutable after construction:
// to change the sites or the cell, build a new one.
type Structure struct {
	lattice *Lattice
	sites   []*Site
}

// NewStructure makes a Structure from a lattice and a site list. It
// returns an error if either is nil or the site list is empty. It does not
// copy the sites.
func NewStructure(lattice *Lattice, sites []*Site) (*Structure, error) {
	if lattice == nil {
		return nil, NewCError("goFerro: supplied a nil Lattice", "NewStructure")
	}
	if len(sites) == 0 {
		return nil, NewCError("goFerro: supplied an empty site list", "NewStructure")
	}
	return &Structure{lattice: lattice, sites: sites}, nil
}

// Lattice returns the lattice of the structure.
func (S *Structure) Lattice() *Lattice {
	return S.lattice
}

// Len returns the number of sites in the structure.
func (S *Structure) Len() int {
	return len(S.sites)
}

// Site returns the site corresponding to the index i. Panics if out of
// range.
func (S *Structure) Site(i int) *Site {
	if i < 0 || i >= S.Len() {
		panic(fmt.Sprintf("Structure: requested site (%d) out of bounds (%d)", i, S.Len()))
	}
	return S.sites[i]
}

// CartCoords returns the Cartesian coordinates of the i-th site.
func (S *Structure) CartCoords(i int) []float64 {
	return S.lattice.Cart(S.Site(i).FracCoords)
}

// Copy returns a copy of the structure. The lattice is shared (it is
// immutable), the sites are copied.
func (S *Structure) Copy() *Structure {
	sites := make([]*Site, S.Len())
	for i, v := range S.sites {
		sites[i] = v.Copy()
	}
	return &Structure{lattice: S.lattice, sites: sites}
}
