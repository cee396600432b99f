/*
 * bond.go, part of atomstruct.
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
	"fmt"

	"github.com/rmera/atomstruct/changes"
)

const defaultBondRadius = 0.2

// Bond joins two atoms of the same structure. It is kept in the bond and
// neighbor lists of both atoms.
type Bond struct {
	s        *Structure
	atoms    [2]*Atom
	radius   float64
	color    Rgba
	halfbond bool
	display  bool
	hide     int
	rings    []*Ring
}

func (B *Bond) track(reasons ...string) {
	B.s.tracker.AddModified(changes.Bond, B, reasons...)
}

func (B *Bond) Structure() *Structure { return B.s }

// Atoms returns the two bonded atoms, in the order they were given.
func (B *Bond) Atoms() [2]*Atom { return B.atoms }

// Cross returns the atom at the other end of the bond from origin.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin == B.atoms[0] {
		return B.atoms[1]
	}
	if origin == B.atoms[1] {
		return B.atoms[0]
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //a programming error, so a panic is warranted.
}

// Contains reports whether a is one of the bonded atoms.
func (B *Bond) Contains(a *Atom) bool {
	return a == B.atoms[0] || a == B.atoms[1]
}

// Length returns the distance between the bonded atoms in the active coordinate set.
func (B *Bond) Length() float64 {
	return B.atoms[0].Coord().Distance(B.atoms[1].Coord())
}

// PolymericStartAtom returns the upstream atom of a bond that links two
// residues of a polymer (e.g. the C of a peptide C-N bond), or nil if the
// bond is not a polymeric link.
func (B *Bond) PolymericStartAtom() *Atom {
	a, _ := B.polymericLink()
	return a
}

func (B *Bond) polymericLink() (*Atom, PolymerType) {
	a1, a2 := B.atoms[0], B.atoms[1]
	r1, r2 := a1.residue, a2.residue
	if r1 == nil || r2 == nil || r1 == r2 {
		return nil, PTNone
	}
	if pt, ok := B.s.templates.link(r1.name, a1.name, r2.name, a2.name); ok {
		return a1, pt
	}
	if pt, ok := B.s.templates.link(r2.name, a2.name, r1.name, a1.name); ok {
		return a2, pt
	}
	return nil, PTNone
}

func (B *Bond) Radius() float64 { return B.radius }

func (B *Bond) SetRadius(r float64) {
	B.radius = r
	B.track(changes.ReasonRadius)
}

func (B *Bond) Color() Rgba { return B.color }

func (B *Bond) SetColor(c Rgba) {
	B.color = c
	B.track(changes.ReasonColor)
}

// Halfbond reports whether each half of the bond takes its atom's color.
func (B *Bond) Halfbond() bool { return B.halfbond }

func (B *Bond) SetHalfbond(h bool) {
	B.halfbond = h
	B.track(changes.ReasonHalfbond)
}

func (B *Bond) Display() bool { return B.display }

func (B *Bond) SetDisplay(d bool) {
	B.display = d
	B.track(changes.ReasonDisplay)
}

func (B *Bond) Hide() int { return B.hide }

func (B *Bond) SetHide(h int) {
	B.hide = h
	B.track(changes.ReasonHide)
}

// Shown reports whether the bond is drawn: it must be displayed, not hidden,
// and both atoms must be visible.
func (B *Bond) Shown() bool {
	return B.display && B.hide == 0 && B.atoms[0].Visible() && B.atoms[1].Visible()
}

// Rings returns the rings containing the bond, as found by the last call to
// Structure.Rings.
func (B *Bond) Rings() []*Ring { return B.rings }

func (B *Bond) String() string {
	return fmt.Sprintf("%s <-> %s", B.atoms[0], B.atoms[1])
}
