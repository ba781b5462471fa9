/*
 * zval.go, part of goFerro.
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

//A map for assigning the effective ionic charge (ZVAL, the number of
//valence electrons treated explicitly by the pseudopotential) to VASP PBE
//pseudopotential names. Note that just the elements common in
//ferroelectric and perovskite work are present; for anything else, pass
//your own table to ZvalDict.
var vaspPBEZval = map[string]float64{
	"H":     1.0,
	"Li":    1.0,
	"Li_sv": 3.0,
	"Be":    2.0,
	"Be_sv": 4.0,
	"B":     3.0,
	"C":     4.0,
	"N":     5.0,
	"O":     6.0,
	"F":     7.0,
	"Na":    1.0,
	"Na_pv": 7.0,
	"Mg":    2.0,
	"Mg_pv": 8.0,
	"Al":    3.0,
	"Si":    4.0,
	"P":     5.0,
	"S":     6.0,
	"Cl":    7.0,
	"K_pv":  7.0,
	"K_sv":  9.0,
	"Ca_pv": 8.0,
	"Ca_sv": 10.0,
	"Sc_sv": 11.0,
	"Ti":    4.0,
	"Ti_pv": 10.0,
	"Ti_sv": 12.0,
	"V":     5.0,
	"V_pv":  11.0,
	"V_sv":  13.0,
	"Cr":    6.0,
	"Cr_pv": 12.0,
	"Mn":    7.0,
	"Mn_pv": 13.0,
	"Fe":    8.0,
	"Fe_pv": 14.0,
	"Co":    9.0,
	"Ni":    10.0,
	"Ni_pv": 16.0,
	"Cu":    11.0,
	"Zn":    12.0,
	"Ga":    3.0,
	"Ga_d":  13.0,
	"Ge":    4.0,
	"Ge_d":  14.0,
	"As":    5.0,
	"Se":    6.0,
	"Br":    7.0,
	"Rb_pv": 7.0,
	"Rb_sv": 9.0,
	"Sr_sv": 10.0,
	"Y_sv":  11.0,
	"Zr_sv": 12.0,
	"Nb_pv": 11.0,
	"Nb_sv": 13.0,
	"Mo":    6.0,
	"Mo_pv": 12.0,
	"Ru":    8.0,
	"Ru_pv": 14.0,
	"Rh":    9.0,
	"Pd":    10.0,
	"Ag":    11.0,
	"Cd":    12.0,
	"In":    3.0,
	"In_d":  13.0,
	"Sn":    4.0,
	"Sn_d":  14.0,
	"Sb":    5.0,
	"Te":    6.0,
	"I":     7.0,
	"Cs_sv": 9.0,
	"Ba_sv": 10.0,
	"La":    11.0,
	"Hf":    4.0,
	"Hf_pv": 10.0,
	"Ta":    5.0,
	"Ta_pv": 11.0,
	"W":     6.0,
	"Re":    7.0,
	"Os":    8.0,
	"Ir":    9.0,
	"Pt":    10.0,
	"Au":    11.0,
	"Hg":    12.0,
	"Tl":    3.0,
	"Tl_d":  13.0,
	"Pb":    4.0,
	"Pb_d":  14.0,
	"Bi":    5.0,
	"Bi_d":  15.0,
}

// VASPPBEZval returns a copy of the default ZVAL table for VASP PBE
// pseudopotentials, keyed by pseudopotential name. The internal table is
// never handed out directly, so callers cannot mutate it.
func VASPPBEZval() map[string]float64 {
	r := make(map[string]float64, len(vaspPBEZval))
	for k, v := range vaspPBEZval {
		r[k] = v
	}
	return r
}

// ZvalDict builds a species->ZVAL map from a species->pseudopotential-name
// map (e.g. {"Li": "Li_sv", "Nb": "Nb_pv", "O": "O"}). The charges are
// looked up in pseudo if given, otherwise in the default VASP PBE table.
// It returns an error if any pseudopotential name is absent from the table
// in use.
func ZvalDict(speciesPotcar map[string]string, pseudo ...map[string]float64) (map[string]float64, error) {
	table := vaspPBEZval
	if len(pseudo) > 0 && pseudo[0] != nil {
		table = pseudo[0]
	}
	r := make(map[string]float64, len(speciesPotcar))
	for sp, pot := range speciesPotcar {
		z, ok := table[pot]
		if !ok {
			return nil, NewCError(fmt.Sprintf("goFerro: no ZVAL for pseudopotential %s (species %s)", pot, sp), "ZvalDict")
		}
		r[sp] = z
	}
	return r, nil
}
