/*
 * doc.go, part of goFerro.
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

/*Package ferro is the main package of the goFerro library. It provides
lattice, site and structure types for periodic crystals, together with the
lookup tables and unit constants used by the analysis subpackages.



	**goFerro capabilities**


    Recovers the same-branch spontaneous polarization of a ferroelectric
	from a series of Berry-phase calculations along a nonpolar to polar
	distortion path (package polarization).

    Computes ionic dipole moments from pseudopotential ZVAL charges.

    Assesses the smoothness of the recovered polarization branch and of
	the energy profile across the distortion with smoothing splines
	(packages polarization and spline).

    Reads electronic and ionic dipole moments and total energies from
	VASP OUTCAR files, and structures from POSCAR files (package vasp).

    Reads LOBSTER output files: COHPCAR/COOPCAR, ICOHPLIST/ICOOPLIST,
	DOSCAR and CHARGE, gzipped or plain (package lobster).

    Plots the recovered polarization branch and the energy profile
	(package ferroplot, uses the gonum/plot library).
*/
package ferro
