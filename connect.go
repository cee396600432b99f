/*
 * connect.go, part of atomstruct.
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

package atomstruct

import (
	"sort"
)

const (
	tooClose = 0.63 //closer atoms are considered overlapping, not bonded
	bondTol  = 0.45 //added to the sum of covalent radii
)

// ConnectByDistance bonds every pair of atoms closer than the sum of their
// covalent radii plus a tolerance, for structures read from formats without
// explicit connectivity. Atoms that end up with more bonds than their element
// allows lose the longest of the new ones. Existing bonds are kept. It returns
// the number of bonds added. The search is quadratic in the number of atoms.
func (S *Structure) ConnectByDistance() (int, error) {
	var atoms []*Atom
	for _, a := range S.atoms {
		if !a.HasCoord() {
			continue
		}
		if a.element.CovalentRadius() == 0 {
			return 0, newError(KindInvalidArgument, "Structure.ConnectByDistance", "couldn't find the covalent radius for %s", a)
		}
		atoms = append(atoms, a)
	}
	type candidate struct {
		b *Bond
		d float64
	}
	added := make(map[*Atom][]candidate)
	var nb int
	for i, a1 := range atoms {
		c1 := a1.Coord()
		cov1 := a1.element.CovalentRadius()
		for _, a2 := range atoms[i+1:] {
			d := c1.Distance(a2.Coord())
			if d >= cov1+a2.element.CovalentRadius()+bondTol || d <= tooClose {
				continue
			}
			if a1.ConnectsTo(a2) {
				continue
			}
			b, err := S.NewBond(a1, a2)
			if err != nil {
				return nb, errDecorate(err, "Structure.ConnectByDistance")
			}
			nb++
			added[a1] = append(added[a1], candidate{b, d})
			added[a2] = append(added[a2], candidate{b, d})
		}
	}
	//Now we check that no atom has too many bonds.
	batch := S.coord.Begin()
	defer batch.End()
	removed := make(map[*Bond]bool)
	for _, a := range atoms {
		max := a.element.MaxBonds()
		if max == 0 {
			continue
		}
		cands := added[a]
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].d > cands[j].d })
		for _, c := range cands {
			if len(a.bonds) <= max {
				break
			}
			if removed[c.b] {
				continue
			}
			removed[c.b] = true
			S.deleteBond(c.b)
			nb--
		}
	}
	S.logger.Debug("bonds assigned by distance", "structure", S.name, "bonds", nb)
	return nb, nil
}
