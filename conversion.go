/*
 * conversion.go, part of goFerro.
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

//This provides useful conversion factors and other constants

//Conversions
const (
	Deg2Rad = 0.0174533
	Rad2Deg = 1 / 0.0174533
	//Electron charge in microcoulomb. The sign follows the electron-dipole
	//convention used in Berry-phase polarization output.
	E2MuC = -1.6021766e-13
	//Square centimeter to square Angstrom
	Cm22A2 = 1e16
)

// EA2MuCCm2 returns the factor that converts a dipole moment in
// electron*Angstrom into a polarization in microCoulomb/cm^2, for a cell
// of the given volume in cubic Angstrom. Note that the factor is negative.
func EA2MuCCm2(volume float64) float64 {
	return E2MuC * Cm22A2 / volume
}
