/*
 * residue.go, part of atomstruct.
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
)

// PolymerType is the kind of polymer a residue belongs to.
type PolymerType int

const (
	PTNone PolymerType = iota
	PTAmino
	PTNucleic
)

func (P PolymerType) String() string {
	switch P {
	case PTAmino:
		return "amino"
	case PTNucleic:
		return "nucleic"
	}
	return "none"
}

// Residue is an ordered group of atoms with a name and a position in a chain.
type Residue struct {
	s             *Structure
	name          string
	chainID       string
	number        int
	insert        byte
	atoms         []*Atom
	chain         *Chain
	isHelix       bool
	isStrand      bool
	isHet         bool
	ssID          int
	ribbonDisplay bool
	ribbonHide    int
	ribbonColor   Rgba
	polymerType   PolymerType
}

func (R *Residue) track(reasons ...string) {
	R.s.tracker.AddModified(changes.Residue, R, reasons...)
}

func (R *Residue) Structure() *Structure { return R.s }

func (R *Residue) Name() string { return R.name }

func (R *Residue) SetName(name string) {
	if name == R.name {
		return
	}
	R.name = name
	R.s.invalidateTemplateDerived()
	R.track(changes.ReasonName)
}

func (R *Residue) ChainID() string { return R.chainID }

// Number returns the residue's position (sequence number).
func (R *Residue) Number() int { return R.number }

// Insert returns the insertion code, 0 if there is none.
func (R *Residue) Insert() byte { return R.insert }

// Atoms returns the residue's atoms in the order they were added.
func (R *Residue) Atoms() []*Atom { return R.atoms }

// Chain returns the chain the residue is part of, or nil.
func (R *Residue) Chain() *Chain { return R.chain }

// AddAtom adds a to the residue. a must belong to the same structure and
// can't be in another residue.
func (R *Residue) AddAtom(a *Atom) error {
	if a == nil || a.s != R.s {
		R.s.logger.Error("adding a foreign atom to a residue", "residue", R.String())
		return newError(KindForeignEntity, "Residue.AddAtom", "atom doesn't belong to the structure of %s", R)
	}
	if a.residue != nil {
		return newError(KindInvalidArgument, "Residue.AddAtom", "atom %s is already in a residue", a)
	}
	a.residue = R
	R.atoms = append(R.atoms, a)
	R.s.idatmValid = false
	R.s.invalidateTopology()
	R.track(changes.ReasonResidues)
	return nil
}

func (R *Residue) removeAtom(a *Atom) {
	for i, v := range R.atoms {
		if v == a {
			R.atoms = append(R.atoms[:i], R.atoms[i+1:]...)
			break
		}
	}
	a.residue = nil
}

// FindAtom returns the first atom with the given name, or nil.
func (R *Residue) FindAtom(name string) *Atom {
	for _, a := range R.atoms {
		if a.name == name {
			return a
		}
	}
	return nil
}

// ConnectsTo reports whether any bond joins R and other.
func (R *Residue) ConnectsTo(other *Residue) bool {
	for _, a := range R.atoms {
		for _, n := range a.neighbors {
			if n.residue == other {
				return true
			}
		}
	}
	return false
}

// BondsBetween returns the bonds joining R and other.
func (R *Residue) BondsBetween(other *Residue) []*Bond {
	var ret []*Bond
	for _, a := range R.atoms {
		for i, n := range a.neighbors {
			if n.residue == other {
				ret = append(ret, a.bonds[i])
			}
		}
	}
	return ret
}

// AltLocs returns the alternate location codes found among the residue's atoms.
func (R *Residue) AltLocs() []byte {
	set := make(map[byte]bool)
	for _, a := range R.atoms {
		for k := range a.altLocs {
			set[k] = true
		}
	}
	ret := make([]byte, 0, len(set))
	for k := range set {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// SetAltLoc switches every atom of the residue that has the code to it, and
// does the same on residues bonded to it through atoms having the code.
func (R *Residue) SetAltLoc(code byte) {
	todo := []*Residue{R}
	seen := map[*Residue]bool{R: true}
	for len(todo) > 0 {
		r := todo[0]
		todo = todo[1:]
		for _, a := range r.atoms {
			if !a.HasAltLoc(code) {
				continue
			}
			a.switchAltLoc(code)
			for _, n := range a.neighbors {
				if n.residue != nil && !seen[n.residue] && n.HasAltLoc(code) {
					seen[n.residue] = true
					todo = append(todo, n.residue)
				}
			}
		}
	}
}

func (R *Residue) IsHelix() bool { return R.isHelix }

func (R *Residue) SetIsHelix(h bool) {
	R.isHelix = h
	R.track(changes.ReasonSSType)
}

func (R *Residue) IsStrand() bool { return R.isStrand }

func (R *Residue) SetIsStrand(s bool) {
	R.isStrand = s
	R.track(changes.ReasonSSType)
}

func (R *Residue) IsHet() bool { return R.isHet }

func (R *Residue) SetIsHet(h bool) {
	R.isHet = h
	R.track(changes.ReasonIsHet)
}

// SSID identifies the secondary structure element the residue is part of.
func (R *Residue) SSID() int { return R.ssID }

func (R *Residue) SetSSID(id int) {
	R.ssID = id
	R.track(changes.ReasonSSID)
}

func (R *Residue) RibbonDisplay() bool { return R.ribbonDisplay }

func (R *Residue) SetRibbonDisplay(d bool) {
	R.ribbonDisplay = d
	R.track(changes.ReasonRibbonDisplay)
}

func (R *Residue) RibbonHide() int { return R.ribbonHide }

func (R *Residue) SetRibbonHide(h int) {
	R.ribbonHide = h
	R.track(changes.ReasonHide)
}

func (R *Residue) RibbonColor() Rgba { return R.ribbonColor }

func (R *Residue) SetRibbonColor(c Rgba) {
	R.ribbonColor = c
	R.track(changes.ReasonRibbonColor)
}

// PolymerType is set by Structure.Polymers.
func (R *Residue) PolymerType() PolymerType { return R.polymerType }

func (R *Residue) String() string {
	ins := ""
	if R.insert != 0 && R.insert != ' ' {
		ins = string(R.insert)
	}
	return fmt.Sprintf("/%s %s %d%s", R.chainID, R.name, R.number, ins)
}
