/*
 * ferroplot.go, part of goFerro.
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

//Package ferroplot draws the plots commonly wanted when recovering a
//polarization: the same-branch polarization components and the energy
//profile across the distortion path. It uses the gonum/plot library.
package ferroplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/goferro/goferro/polarization"
)

var directionColors = []color.RGBA{
	{R: 255, A: 255},
	{G: 170, A: 255},
	{B: 255, A: 255},
}

var directionLabels = []string{"a", "b", "c"}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// SameBranch plots the three components of the recovered same-branch
// polarization (microCoulomb/cm^2) against the distortion step, and saves
// the plot as a PNG file under plotname.
func SameBranch(P *polarization.Polarization, title, plotname string) error {
	if P == nil {
		return fmt.Errorf("goFerro/ferroplot: given a nil Polarization")
	}
	tot := P.SameBranch(true)
	L := P.Len()
	p := basicPlot(title, "Distortion step", "Polarization (muC/cm^2)")
	for d := 0; d < 3; d++ {
		pts := make(plotter.XYs, L)
		for i := 0; i < L; i++ {
			pts[i].X = float64(i)
			pts[i].Y = tot.At(i, d)
		}
		l, s, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		l.Color = directionColors[d]
		s.GlyphStyle.Color = directionColors[d]
		p.Add(l, s)
		p.Legend.Add(directionLabels[d], l, s)
	}
	return p.Save(4*vg.Inch, 4*vg.Inch, plotname)
}

// EnergyProfile plots the energies of the distortion path against the
// step index, with the fitted smoothing spline overlaid when the fit is
// feasible, and saves the plot as a PNG file under plotname.
func EnergyProfile(E *polarization.EnergyTrend, title, plotname string) error {
	if E == nil {
		return fmt.Errorf("goFerro/ferroplot: given a nil EnergyTrend")
	}
	energies := E.Energies()
	p := basicPlot(title, "Distortion step", "Energy (eV)")
	pts := make(plotter.XYs, len(energies))
	for i, v := range energies {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(s)
	p.Legend.Add("energy", s)
	if sp, err := E.Spline(); err == nil {
		f := plotter.NewFunction(func(x float64) float64 { return sp.Eval(x) })
		f.Color = color.RGBA{B: 255, A: 255}
		p.Add(f)
		p.Legend.Add("spline", f)
		p.X.Min = 0
		p.X.Max = float64(len(energies) - 1)
	}
	return p.Save(4*vg.Inch, 4*vg.Inch, plotname)
}
