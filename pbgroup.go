/*
 * pbgroup.go, part of atomstruct.
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

// Well-known pseudobond group names.
const (
	PBGMissingStructure     = "missing structure"
	PBGMetalCoordination    = "metal coordination bonds"
	PBGHydrogenBonds        = "hydrogen bonds"
	defaultPseudobondRadius = 0.075
)

// GroupKind is the storage strategy of a pseudobond group, fixed at creation.
type GroupKind int

const (
	PerStructure GroupKind = iota //one set of pseudobonds
	PerCoordSet                   //one set per coordinate set
)

func (K GroupKind) String() string {
	switch K {
	case PerStructure:
		return "per-structure"
	case PerCoordSet:
		return "per-coordset"
	}
	return fmt.Sprintf("GroupKind(%d)", int(K))
}

// Pseudobond is a depicted, non-covalent connection between two atoms.
type Pseudobond struct {
	group    *PBGroup
	atoms    [2]*Atom
	cs       *CoordSet //nil in per-structure groups
	color    Rgba
	halfbond bool
	radius   float64
	display  bool
	hide     int
}

func (P *Pseudobond) track(reasons ...string) {
	P.group.tracker().AddModified(changes.Pseudobond, P, reasons...)
}

func (P *Pseudobond) Atoms() [2]*Atom { return P.atoms }

func (P *Pseudobond) Group() *PBGroup { return P.group }

// CoordSet returns the coordinate set the pseudobond lives in, nil for
// per-structure groups.
func (P *Pseudobond) CoordSet() *CoordSet { return P.cs }

// Cross returns the atom at the other end from origin, or nil if origin is
// not an end of the pseudobond.
func (P *Pseudobond) Cross(origin *Atom) *Atom {
	switch origin {
	case P.atoms[0]:
		return P.atoms[1]
	case P.atoms[1]:
		return P.atoms[0]
	}
	return nil
}

func (P *Pseudobond) Length() float64 {
	return P.atoms[0].Coord().Distance(P.atoms[1].Coord())
}

func (P *Pseudobond) Color() Rgba { return P.color }

func (P *Pseudobond) SetColor(c Rgba) {
	P.color = c
	P.track(changes.ReasonColor)
}

func (P *Pseudobond) Halfbond() bool { return P.halfbond }

func (P *Pseudobond) SetHalfbond(h bool) {
	P.halfbond = h
	P.track(changes.ReasonHalfbond)
}

func (P *Pseudobond) Radius() float64 { return P.radius }

func (P *Pseudobond) SetRadius(r float64) {
	P.radius = r
	P.track(changes.ReasonRadius)
}

func (P *Pseudobond) Display() bool { return P.display }

func (P *Pseudobond) SetDisplay(d bool) {
	P.display = d
	P.track(changes.ReasonDisplay)
}

func (P *Pseudobond) Hide() int { return P.hide }

func (P *Pseudobond) SetHide(h int) {
	P.hide = h
	P.track(changes.ReasonHide)
}

func (P *Pseudobond) String() string {
	return fmt.Sprintf("%s <-> %s", P.atoms[0], P.atoms[1])
}

// structurePBs holds the pseudobonds of a per-structure group.
type structurePBs struct {
	pbs []*Pseudobond
}

// coordSetPBs holds the pseudobonds of a per-coordset group.
type coordSetPBs struct {
	sets map[*CoordSet][]*Pseudobond
}

func removePB(list []*Pseudobond, pb *Pseudobond) ([]*Pseudobond, bool) {
	for i, v := range list {
		if v == pb {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

// filterPBs removes the pseudobonds with a destroyed atom and returns them.
func filterPBs(list []*Pseudobond, destroyed map[any]struct{}) ([]*Pseudobond, []*Pseudobond) {
	var gone []*Pseudobond
	kept := list[:0]
	for _, pb := range list {
		_, d1 := destroyed[pb.atoms[0]]
		_, d2 := destroyed[pb.atoms[1]]
		if d1 || d2 {
			gone = append(gone, pb)
			continue
		}
		kept = append(kept, pb)
	}
	return kept, gone
}

// PBGroup is a named group of pseudobonds. It is the only handle to a group
// whatever its storage kind; every operation dispatches on the kind.
type PBGroup struct {
	mgr          *PBManager
	name         string
	kind         GroupKind
	perStructure *structurePBs
	perCoordSet  *coordSetPBs
	color        Rgba
	halfbond     bool
	radius       float64
	display      bool
}

func newPBGroup(mgr *PBManager, name string, kind GroupKind) *PBGroup {
	g := &PBGroup{mgr: mgr, name: name, kind: kind, radius: defaultPseudobondRadius, display: true}
	switch kind {
	case PerStructure:
		g.perStructure = &structurePBs{}
	case PerCoordSet:
		g.perCoordSet = &coordSetPBs{sets: make(map[*CoordSet][]*Pseudobond)}
	}
	switch name {
	case PBGMetalCoordination:
		g.color = Rgba{147, 112, 219, 255}
	case PBGHydrogenBonds:
		g.color = Rgba{0, 204, 230, 255}
	case PBGMissingStructure:
		g.color = Rgba{255, 255, 0, 255}
		g.halfbond = true
	default:
		g.color = Rgba{255, 255, 0, 255}
	}
	return g
}

func (G *PBGroup) tracker() *changes.Tracker { return G.mgr.tracker }

func (G *PBGroup) track(reasons ...string) {
	G.tracker().AddModified(changes.PseudobondGroup, G, reasons...)
}

func (G *PBGroup) Name() string { return G.name }

func (G *PBGroup) Kind() GroupKind { return G.kind }

func (G *PBGroup) Manager() *PBManager { return G.mgr }

// Structure returns the owning structure, nil for groups of the global manager.
func (G *PBGroup) Structure() *Structure { return G.mgr.s }

func (G *PBGroup) changed() {
	if G.name == PBGMissingStructure && G.mgr.s != nil {
		G.mgr.s.invalidateMissingStructure()
	}
}

func (G *PBGroup) newPB(a1, a2 *Atom, cs *CoordSet, caller string) (*Pseudobond, error) {
	if a1 == nil || a2 == nil {
		return nil, newError(KindInvalidArgument, caller, "nil atom")
	}
	if a1 == a2 {
		return nil, newError(KindInvalidArgument, caller, "pseudobond from atom %s to itself", a1)
	}
	if s := G.mgr.s; s != nil && (a1.s != s || a2.s != s) {
		s.logger.Error("pseudobond between atoms not in the structure", "group", G.name)
		return nil, newError(KindForeignEntity, caller, "atoms don't belong to structure %s", s.name)
	}
	return &Pseudobond{group: G, atoms: [2]*Atom{a1, a2}, cs: cs, color: G.color, halfbond: G.halfbond, radius: G.radius, display: true}, nil
}

// NewPseudobond adds a pseudobond between a1 and a2. In per-coordset groups
// it goes to the active coordinate set.
func (G *PBGroup) NewPseudobond(a1, a2 *Atom) (*Pseudobond, error) {
	switch G.kind {
	case PerStructure:
		pb, err := G.newPB(a1, a2, nil, "PBGroup.NewPseudobond")
		if err != nil {
			return nil, err
		}
		G.perStructure.pbs = append(G.perStructure.pbs, pb)
		G.tracker().AddCreated(changes.Pseudobond, pb)
		G.changed()
		return pb, nil
	case PerCoordSet:
		if a1 == nil || a1.s.activeCS == nil {
			return nil, newError(KindInvalidArgument, "PBGroup.NewPseudobond", "no active coordinate set for per-coordset group %s", G.name)
		}
		pb, err := G.NewPseudobondIn(a1, a2, a1.s.activeCS)
		return pb, errDecorate(err, "PBGroup.NewPseudobond")
	}
	panic("unknown pseudobond group kind")
}

// NewPseudobondIn adds a pseudobond to the set of cs. Only per-coordset
// groups accept it.
func (G *PBGroup) NewPseudobondIn(a1, a2 *Atom, cs *CoordSet) (*Pseudobond, error) {
	switch G.kind {
	case PerStructure:
		return nil, newError(KindTypeMismatch, "PBGroup.NewPseudobondIn", "group %s is not per-coordset", G.name)
	case PerCoordSet:
		if cs == nil || (G.mgr.s != nil && cs.s != G.mgr.s) {
			return nil, newError(KindForeignEntity, "PBGroup.NewPseudobondIn", "coordinate set doesn't belong to the group's structure")
		}
		pb, err := G.newPB(a1, a2, cs, "PBGroup.NewPseudobondIn")
		if err != nil {
			return nil, err
		}
		G.perCoordSet.sets[cs] = append(G.perCoordSet.sets[cs], pb)
		G.tracker().AddCreated(changes.Pseudobond, pb)
		G.changed()
		return pb, nil
	}
	panic("unknown pseudobond group kind")
}

// Pseudobonds returns the group's pseudobonds; for per-coordset groups, only
// those of the active coordinate set.
func (G *PBGroup) Pseudobonds() []*Pseudobond {
	switch G.kind {
	case PerStructure:
		return G.perStructure.pbs
	case PerCoordSet:
		if G.mgr.s == nil || G.mgr.s.activeCS == nil {
			return nil
		}
		return G.perCoordSet.sets[G.mgr.s.activeCS]
	}
	panic("unknown pseudobond group kind")
}

// PseudobondsIn returns the pseudobonds of cs. Per-structure groups have
// the same pseudobonds in every set.
func (G *PBGroup) PseudobondsIn(cs *CoordSet) []*Pseudobond {
	switch G.kind {
	case PerStructure:
		return G.perStructure.pbs
	case PerCoordSet:
		return G.perCoordSet.sets[cs]
	}
	panic("unknown pseudobond group kind")
}

// allPseudobonds returns every pseudobond, per-coordset ones ordered by
// coordinate set id.
func (G *PBGroup) allPseudobonds() []*Pseudobond {
	switch G.kind {
	case PerStructure:
		return G.perStructure.pbs
	case PerCoordSet:
		var ret []*Pseudobond
		for _, cs := range G.coordSets() {
			ret = append(ret, G.perCoordSet.sets[cs]...)
		}
		return ret
	}
	panic("unknown pseudobond group kind")
}

// coordSets returns the sets holding pseudobonds, in structure order.
func (G *PBGroup) coordSets() []*CoordSet {
	if G.mgr.s == nil {
		return nil
	}
	var ret []*CoordSet
	for _, cs := range G.mgr.s.coordSets {
		if len(G.perCoordSet.sets[cs]) > 0 {
			ret = append(ret, cs)
		}
	}
	return ret
}

// NumPseudobonds counts the pseudobonds in every set.
func (G *PBGroup) NumPseudobonds() int {
	switch G.kind {
	case PerStructure:
		return len(G.perStructure.pbs)
	case PerCoordSet:
		n := 0
		for _, v := range G.perCoordSet.sets {
			n += len(v)
		}
		return n
	}
	panic("unknown pseudobond group kind")
}

// DeletePseudobond removes pb from the group.
func (G *PBGroup) DeletePseudobond(pb *Pseudobond) error {
	if pb == nil || pb.group != G {
		return newError(KindForeignEntity, "PBGroup.DeletePseudobond", "pseudobond not in group %s", G.name)
	}
	var ok bool
	switch G.kind {
	case PerStructure:
		G.perStructure.pbs, ok = removePB(G.perStructure.pbs, pb)
	case PerCoordSet:
		G.perCoordSet.sets[pb.cs], ok = removePB(G.perCoordSet.sets[pb.cs], pb)
	}
	if !ok {
		return newError(KindForeignEntity, "PBGroup.DeletePseudobond", "pseudobond not in group %s", G.name)
	}
	G.tracker().AddDeleted(changes.Pseudobond, pb)
	G.changed()
	return nil
}

// Clear removes every pseudobond of the group.
func (G *PBGroup) Clear() {
	for _, pb := range G.allPseudobonds() {
		G.tracker().AddDeleted(changes.Pseudobond, pb)
	}
	switch G.kind {
	case PerStructure:
		G.perStructure.pbs = nil
	case PerCoordSet:
		G.perCoordSet.sets = make(map[*CoordSet][]*Pseudobond)
	}
	G.changed()
}

// checkDestroyedAtoms drops the pseudobonds that lost an atom.
func (G *PBGroup) checkDestroyedAtoms(destroyed map[any]struct{}) {
	var gone []*Pseudobond
	switch G.kind {
	case PerStructure:
		G.perStructure.pbs, gone = filterPBs(G.perStructure.pbs, destroyed)
	case PerCoordSet:
		for cs, list := range G.perCoordSet.sets {
			var g []*Pseudobond
			G.perCoordSet.sets[cs], g = filterPBs(list, destroyed)
			gone = append(gone, g...)
		}
	}
	for _, pb := range gone {
		G.tracker().AddDeleted(changes.Pseudobond, pb)
	}
	if len(gone) > 0 {
		G.changed()
	}
}

// removeCoordSet drops the pseudobonds of cs.
func (G *PBGroup) removeCoordSet(cs *CoordSet) {
	switch G.kind {
	case PerStructure:
		return
	case PerCoordSet:
		for _, pb := range G.perCoordSet.sets[cs] {
			G.tracker().AddDeleted(changes.Pseudobond, pb)
		}
		delete(G.perCoordSet.sets, cs)
	}
}

func (G *PBGroup) Color() Rgba { return G.color }

// SetColor sets the group color and the color of all its pseudobonds.
func (G *PBGroup) SetColor(c Rgba) {
	G.color = c
	for _, pb := range G.allPseudobonds() {
		pb.SetColor(c)
	}
	G.track(changes.ReasonColor)
}

func (G *PBGroup) Halfbond() bool { return G.halfbond }

// SetHalfbond works like SetColor.
func (G *PBGroup) SetHalfbond(h bool) {
	G.halfbond = h
	for _, pb := range G.allPseudobonds() {
		pb.SetHalfbond(h)
	}
	G.track(changes.ReasonHalfbond)
}

func (G *PBGroup) Radius() float64 { return G.radius }

func (G *PBGroup) SetRadius(r float64) {
	G.radius = r
	for _, pb := range G.allPseudobonds() {
		pb.SetRadius(r)
	}
	G.track(changes.ReasonRadius)
}

func (G *PBGroup) Display() bool { return G.display }

func (G *PBGroup) SetDisplay(d bool) {
	G.display = d
	G.track(changes.ReasonDisplay)
}
