/*
 * plot.go, part of atomstruct.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// Package chemplot draws per-residue properties of a structure (B-factors,
// occupancies) as line plots.
package chemplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/rmera/atomstruct"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Property is an atomic property that can be averaged per residue.
type Property int

const (
	BFactor Property = iota
	Occupancy
)

func (p Property) String() string {
	switch p {
	case BFactor:
		return "B-factor"
	case Occupancy:
		return "Occupancy"
	default:
		return fmt.Sprintf("Property(%d)", int(p))
	}
}

func (p Property) of(a *atomstruct.Atom) float64 {
	if p == Occupancy {
		return a.Occupancy()
	}
	return a.Bfactor()
}

// Series holds the per-residue mean of a property along one chain, with
// residue numbers as X.
type Series struct {
	ChainID  string
	Property Property
	XYs      plotter.XYs
	Mean     float64
	StdDev   float64
}

// ResidueProperty averages prop over the atoms of each residue of chain
// chainID in S. Residues named in skip (e.g. "HOH") are left out.
func ResidueProperty(S *atomstruct.Structure, chainID string, prop Property, skip ...string) (Series, error) {
	ret := Series{ChainID: chainID, Property: prop}
	var ys []float64
	for _, r := range S.Residues() {
		if r.ChainID() != chainID || isInString(skip, r.Name()) || len(r.Atoms()) == 0 {
			continue
		}
		vals := make([]float64, 0, len(r.Atoms()))
		for _, a := range r.Atoms() {
			vals = append(vals, prop.of(a))
		}
		y := stat.Mean(vals, nil)
		ret.XYs = append(ret.XYs, plotter.XY{X: float64(r.Number()), Y: y})
		ys = append(ys, y)
	}
	if len(ys) == 0 {
		return ret, fmt.Errorf("chemplot: no residues in chain %q", chainID)
	}
	sort.SliceStable(ret.XYs, func(i, j int) bool { return ret.XYs[i].X < ret.XYs[j].X })
	ret.Mean, ret.StdDev = stat.MeanStdDev(ys, nil)
	if math.IsNaN(ret.StdDev) {
		ret.StdDev = 0 //a single residue
	}
	return ret, nil
}

// Plot draws each series as a line with points, one color per series.
// All series should hold the same property.
func Plot(title string, series ...Series) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("chemplot: nothing to plot")
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = series[0].Property.String()
	p.Add(plotter.NewGrid())
	for i, s := range series {
		if s.Property != series[0].Property {
			return nil, fmt.Errorf("chemplot: can't mix %s and %s in one plot", series[0].Property, s.Property)
		}
		l, pts, err := plotter.NewLinePoints(s.XYs)
		if err != nil {
			return nil, err
		}
		r, g, b := colors(i, len(series))
		c := color.RGBA{R: r, G: g, B: b, A: 255}
		l.Color = c
		pts.Color = c
		pts.Shape = shape(i)
		p.Add(l, pts)
		p.Legend.Add("chain "+s.ChainID, l, pts)
	}
	return p, nil
}

// Save writes p to filename. The format is taken from the extension.
func Save(p *plot.Plot, filename string) error {
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

func shape(i int) draw.GlyphDrawer {
	switch i % 5 {
	case 0:
		return draw.CircleGlyph{}
	case 1:
		return draw.SquareGlyph{}
	case 2:
		return draw.PyramidGlyph{}
	case 3:
		return draw.CrossGlyph{}
	default:
		return draw.RingGlyph{}
	}
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors spreads steps hues from red to violet, skipping the yellows that
// are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}

func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
