/*
 * coordset.go, part of atomstruct.
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
	v3 "github.com/rmera/atomstruct/v3"
)

// CoordSet is one full set of coordinates for the atoms of a structure, such
// as a trajectory frame or an NMR model. Row i of the set holds the atom with
// CoordIndex i.
type CoordSet struct {
	s           *Structure
	id          int
	coords      *v3.Buffer
	bfactors    map[*Atom]float64
	occupancies map[*Atom]float64
}

func newCoordSet(s *Structure, id, size int) *CoordSet {
	return &CoordSet{
		s:           s,
		id:          id,
		coords:      v3.NewBuffer(size),
		bfactors:    make(map[*Atom]float64),
		occupancies: make(map[*Atom]float64),
	}
}

func (C *CoordSet) ID() int { return C.id }

func (C *CoordSet) Structure() *Structure { return C.s }

// Len returns the number of coordinates stored.
func (C *CoordSet) Len() int { return C.coords.Len() }

// Coords returns the coordinates as an N×3 matrix sharing the set's memory,
// or nil if the set is empty.
func (C *CoordSet) Coords() *v3.Matrix { return C.coords.Matrix() }

// Fill copies every coordinate of src into C.
func (C *CoordSet) Fill(src *CoordSet) {
	C.coords = src.coords.Copy()
}

// Bfactor returns the B-factor stored for a, 0 if none.
func (C *CoordSet) Bfactor(a *Atom) float64 {
	return C.bfactors[a]
}

func (C *CoordSet) SetBfactor(a *Atom, b float64) {
	C.bfactors[a] = b
}

// Occupancy returns the occupancy stored for a, 1 if none.
func (C *CoordSet) Occupancy(a *Atom) float64 {
	if o, ok := C.occupancies[a]; ok {
		return o
	}
	return 1
}

func (C *CoordSet) SetOccupancy(a *Atom, o float64) {
	C.occupancies[a] = o
}

func (C *CoordSet) forget(a *Atom) {
	delete(C.bfactors, a)
	delete(C.occupancies, a)
}
