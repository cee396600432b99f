/*
 * atom.go, part of atomstruct.
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
	"sort"

	"github.com/rmera/atomstruct/changes"
	"github.com/rmera/atomstruct/element"
	v3 "github.com/rmera/atomstruct/v3"
)

// Rgba is a color with 8-bit channels.
type Rgba [4]uint8

// DrawMode is the way an atom is depicted.
type DrawMode int

const (
	DrawSphere DrawMode = iota
	DrawEndCap
	DrawBallStick
)

// Hide bits. An entity is shown when it is displayed and has no hide bits set.
const (
	HideRibbon = 1 << iota
	HideUser
)

const noCoord = -1

// altLocInfo keeps the data of one alternate location.
type altLocInfo struct {
	coord     v3.Point
	bfactor   float64
	occupancy float64
	serial    int
}

// Atom is a node of the structure graph. Atoms are created only through
// Structure.NewAtom, and belong to one Residue once added to it.
type Atom struct {
	s          *Structure
	residue    *Residue
	id         int64 //creation order, unique in the structure
	name       string
	element    element.Element
	coordIndex int
	altLocs    map[byte]*altLocInfo
	altLoc     byte
	serial     int
	display    bool
	hide       int
	drawMode   DrawMode
	color      Rgba
	radius     float64 //0 means the element default
	idatmType  string
	category   StructCat
	bonds      []*Bond
	neighbors  []*Atom
	rings      []*Ring
}

func (A *Atom) track(reasons ...string) {
	A.s.tracker.AddModified(changes.Atom, A, reasons...)
}

// Structure returns the structure owning the atom.
func (A *Atom) Structure() *Structure { return A.s }

// Residue returns the residue containing the atom, or nil if the atom hasn't
// been added to one yet.
func (A *Atom) Residue() *Residue { return A.residue }

func (A *Atom) Name() string { return A.name }

func (A *Atom) SetName(name string) {
	if name == A.name {
		return
	}
	A.name = name
	A.s.invalidateTemplateDerived()
	A.track(changes.ReasonName)
}

func (A *Atom) Element() element.Element { return A.element }

// Bonds returns the atom's bonds, in creation order. The slice must not be modified.
func (A *Atom) Bonds() []*Bond { return A.bonds }

// Neighbors returns the bonded atoms, in the same order as Bonds.
func (A *Atom) Neighbors() []*Atom { return A.neighbors }

// ConnectsTo reports whether a bond between A and other exists.
func (A *Atom) ConnectsTo(other *Atom) bool {
	return A.BondTo(other) != nil
}

// BondTo returns the bond between A and other, or nil.
func (A *Atom) BondTo(other *Atom) *Bond {
	for i, n := range A.neighbors {
		if n == other {
			return A.bonds[i]
		}
	}
	return nil
}

func (A *Atom) removeBond(b *Bond) {
	for i, v := range A.bonds {
		if v == b {
			A.bonds = append(A.bonds[:i], A.bonds[i+1:]...)
			A.neighbors = append(A.neighbors[:i], A.neighbors[i+1:]...)
			return
		}
	}
}

// HasCoord reports whether a coordinate has been assigned to the atom.
func (A *Atom) HasCoord() bool { return A.coordIndex != noCoord }

// CoordIndex returns the row of the atom in every CoordSet matrix, or -1.
func (A *Atom) CoordIndex() int { return A.coordIndex }

// Coord returns the atom's coordinates in the active coordinate set. Atoms
// without coordinates are at the origin.
func (A *Atom) Coord() v3.Point {
	cs := A.s.activeCS
	if cs == nil || A.coordIndex == noCoord || A.coordIndex >= cs.coords.Len() {
		return v3.Point{}
	}
	return cs.coords.At(A.coordIndex)
}

// CoordIn returns the atom's coordinates in cs.
func (A *Atom) CoordIn(cs *CoordSet) (v3.Point, error) {
	if cs == nil || cs.s != A.s {
		return v3.Point{}, newError(KindForeignEntity, "Atom.CoordIn", "coordinate set doesn't belong to the atom's structure")
	}
	if A.coordIndex == noCoord || A.coordIndex >= cs.coords.Len() {
		return v3.Point{}, newError(KindOutOfRange, "Atom.CoordIn", "atom %s has no coordinates in set %d", A, cs.id)
	}
	return cs.coords.At(A.coordIndex), nil
}

// SetCoord sets the atom's coordinates in the active coordinate set, creating
// the set if the structure has none.
func (A *Atom) SetCoord(p v3.Point) {
	cs := A.s.activeCS
	if cs == nil {
		cs = A.s.NewCoordSet()
		A.s.activeCS = cs
	}
	A.SetCoordIn(p, cs)
}

// SetCoordIn sets the atom's coordinates in cs.
func (A *Atom) SetCoordIn(p v3.Point, cs *CoordSet) {
	if cs == nil || cs.s != A.s {
		A.s.logger.Error("setting a coordinate in a foreign coordinate set", "atom", A.String())
		return
	}
	if A.coordIndex == noCoord {
		A.coordIndex = A.s.numCoords
		A.s.numCoords++
	}
	cs.coords.Grow(A.coordIndex + 1)
	cs.coords.Set(A.coordIndex, p)
	if A.altLoc != 0 && cs == A.s.activeCS {
		A.altLocs[A.altLoc].coord = p
	}
	A.track(changes.ReasonCoord)
}

// Bfactor returns the B-factor of the current alternate location or, without
// alternate locations, the one stored in the active coordinate set.
func (A *Atom) Bfactor() float64 {
	if A.altLoc != 0 {
		return A.altLocs[A.altLoc].bfactor
	}
	if cs := A.s.activeCS; cs != nil {
		return cs.Bfactor(A)
	}
	return 0
}

func (A *Atom) SetBfactor(b float64) {
	if A.altLoc != 0 {
		A.altLocs[A.altLoc].bfactor = b
		A.s.altLocsDirty = true
	} else {
		cs := A.s.activeCS
		if cs == nil {
			cs = A.s.NewCoordSet()
			A.s.activeCS = cs
		}
		cs.SetBfactor(A, b)
	}
	A.track(changes.ReasonBfactor)
}

// Occupancy works like Bfactor. The default occupancy is 1.
func (A *Atom) Occupancy() float64 {
	if A.altLoc != 0 {
		return A.altLocs[A.altLoc].occupancy
	}
	if cs := A.s.activeCS; cs != nil {
		return cs.Occupancy(A)
	}
	return 1
}

func (A *Atom) SetOccupancy(o float64) {
	if A.altLoc != 0 {
		A.altLocs[A.altLoc].occupancy = o
		A.s.altLocsDirty = true
	} else {
		cs := A.s.activeCS
		if cs == nil {
			cs = A.s.NewCoordSet()
			A.s.activeCS = cs
		}
		cs.SetOccupancy(A, o)
	}
	A.track(changes.ReasonOccupancy)
}

func (A *Atom) SerialNumber() int { return A.serial }

func (A *Atom) SetSerialNumber(n int) {
	A.serial = n
	if A.altLoc != 0 {
		A.altLocs[A.altLoc].serial = n
	}
	A.track(changes.ReasonSerialNumber)
}

// AltLoc returns the current alternate location code, 0 if there is none.
func (A *Atom) AltLoc() byte { return A.altLoc }

// AltLocs returns the atom's alternate location codes, sorted.
func (A *Atom) AltLocs() []byte {
	ret := make([]byte, 0, len(A.altLocs))
	for k := range A.altLocs {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

func (A *Atom) HasAltLoc(code byte) bool {
	_, ok := A.altLocs[code]
	return ok
}

// SetAltLoc makes code the current alternate location. With create, a new
// location is added (starting from the current values) and made current, so
// readers can fill it with SetCoord, SetBfactor and SetOccupancy. Without
// create, the switch is done for the whole residue and the residues bonded to
// it through atoms with the same location.
func (A *Atom) SetAltLoc(code byte, create bool) error {
	if code == 0 || code == ' ' {
		return newError(KindInvalidArgument, "Atom.SetAltLoc", "blank alternate location code")
	}
	if create {
		if A.HasAltLoc(code) {
			return A.switchAltLoc(code)
		}
		if A.altLocs == nil {
			A.altLocs = make(map[byte]*altLocInfo)
		}
		A.altLocs[code] = &altLocInfo{coord: A.Coord(), bfactor: A.Bfactor(), occupancy: A.Occupancy(), serial: A.serial}
		A.altLoc = code
		A.s.altLocsDirty = true
		A.track(changes.ReasonAltLoc)
		return nil
	}
	if !A.HasAltLoc(code) {
		return newError(KindInvalidArgument, "Atom.SetAltLoc", "atom %s has no alternate location '%c'", A, code)
	}
	if A.residue != nil {
		A.residue.SetAltLoc(code)
		return nil
	}
	return A.switchAltLoc(code)
}

// switchAltLoc presents the data of an existing alternate location.
func (A *Atom) switchAltLoc(code byte) error {
	info, ok := A.altLocs[code]
	if !ok {
		return newError(KindInvalidArgument, "Atom.switchAltLoc", "atom %s has no alternate location '%c'", A, code)
	}
	A.altLoc = code
	A.serial = info.serial
	if cs := A.s.activeCS; cs != nil && A.coordIndex != noCoord {
		cs.coords.Grow(A.coordIndex + 1)
		cs.coords.Set(A.coordIndex, info.coord)
	}
	A.track(changes.ReasonAltLoc, changes.ReasonCoord)
	return nil
}

// ClearAltLocs drops every alternate location, keeping the current values.
func (A *Atom) ClearAltLocs() {
	if len(A.altLocs) == 0 {
		return
	}
	b, o := A.Bfactor(), A.Occupancy()
	A.altLocs = nil
	A.altLoc = 0
	if cs := A.s.activeCS; cs != nil {
		cs.SetBfactor(A, b)
		cs.SetOccupancy(A, o)
	}
	A.s.altLocsDirty = true
	A.track(changes.ReasonAltLoc)
}

func (A *Atom) Display() bool { return A.display }

func (A *Atom) SetDisplay(d bool) {
	if d == A.display {
		return
	}
	A.display = d
	A.track(changes.ReasonDisplay)
}

func (A *Atom) Hide() int { return A.hide }

func (A *Atom) SetHide(h int) {
	if h == A.hide {
		return
	}
	A.hide = h
	A.track(changes.ReasonHide)
}

// Visible reports whether the atom is displayed and not hidden.
func (A *Atom) Visible() bool { return A.display && A.hide == 0 }

func (A *Atom) DrawMode() DrawMode { return A.drawMode }

func (A *Atom) SetDrawMode(d DrawMode) {
	if d == A.drawMode {
		return
	}
	A.drawMode = d
	A.track(changes.ReasonDrawMode)
}

func (A *Atom) Color() Rgba { return A.color }

func (A *Atom) SetColor(c Rgba) {
	if c == A.color {
		return
	}
	A.color = c
	A.track(changes.ReasonColor)
}

// Radius returns the explicit radius, or the element's van der Waals radius.
func (A *Atom) Radius() float64 {
	if A.radius > 0 {
		return A.radius
	}
	return A.element.VdwRadius()
}

// SetRadius sets an explicit radius. A non-positive value restores the default.
func (A *Atom) SetRadius(r float64) {
	if r < 0 {
		r = 0
	}
	A.radius = r
	A.track(changes.ReasonRadius)
}

// IdatmType returns the explicit atom type if one was set, otherwise the
// element symbol.
func (A *Atom) IdatmType() string {
	if A.idatmType != "" {
		return A.idatmType
	}
	return A.element.Symbol()
}

func (A *Atom) IdatmIsExplicit() bool { return A.idatmType != "" }

func (A *Atom) SetIdatmType(t string) {
	if t == A.idatmType {
		return
	}
	A.idatmType = t
	A.track(changes.ReasonIdatmType)
}

// StructureCategory returns the atom's Main/Ligand/Ions/Solvent category,
// computing the partition for the whole structure if needed.
func (A *Atom) StructureCategory() StructCat {
	A.s.computeCategories()
	return A.category
}

// Rings returns the rings the atom belongs to, as found by the last call to
// Structure.Rings.
func (A *Atom) Rings() []*Ring { return A.rings }

func (A *Atom) String() string {
	if A.residue == nil {
		return A.name
	}
	return fmt.Sprintf("%s %s", A.residue, A.name)
}
