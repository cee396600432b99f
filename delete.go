/*
 * delete.go, part of atomstruct.
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
	"github.com/rmera/atomstruct/changes"
)

// All deletions run inside a destruction batch, so observers of the
// coordinator hear about each call once, with everything it destroyed.

// DeleteAtom deletes a and its bonds. Deleting the only atom of a residue
// deletes the residue, and deleting the last atom or the last residue of the
// structure destroys the structure. Atoms of other structures are logged and
// ignored.
func (S *Structure) DeleteAtom(a *Atom) {
	if !S.ownsAtom(a) {
		S.logger.Error("atom does not belong to the structure that it's being deleted from", "atom", atomLabel(a), "structure", S.name)
		return
	}
	if len(S.atoms) == 1 {
		S.Destroy()
		return
	}
	b := S.coord.Begin()
	defer b.End()
	if r := a.residue; r != nil && len(r.atoms) == 1 {
		S.deleteResidue(r)
		if len(S.residues) == 0 {
			S.Destroy()
		}
		return
	}
	S.deleteAtom(a)
}

// DeleteAtoms deletes a set of atoms at once. Residues that lose all their
// atoms are deleted, and deleting every atom or every residue destroys the
// structure.
func (S *Structure) DeleteAtoms(atoms []*Atom) {
	set := make(map[*Atom]bool, len(atoms))
	for _, a := range atoms {
		if !S.ownsAtom(a) {
			S.logger.Error("atom does not belong to the structure that it's being deleted from", "atom", atomLabel(a), "structure", S.name)
			return
		}
		set[a] = true
	}
	if len(set) == 0 {
		return
	}
	if len(set) == len(S.atoms) {
		S.Destroy()
		return
	}
	b := S.coord.Begin()
	defer b.End()
	perRes := make(map[*Residue]int)
	var loose []*Atom //atoms without a residue
	for _, a := range S.atoms {
		if !set[a] {
			continue
		}
		if a.residue == nil {
			loose = append(loose, a)
			continue
		}
		perRes[a.residue]++
	}
	//residue order keeps the deletions deterministic
	var res []*Residue
	for _, r := range S.residues {
		if perRes[r] > 0 {
			res = append(res, r)
		}
	}
	emptied := false
	for _, r := range res {
		if perRes[r] == len(r.atoms) {
			S.deleteResidue(r)
			emptied = len(S.residues) == 0
			continue
		}
		for _, a := range append([]*Atom(nil), r.atoms...) {
			if set[a] {
				S.deleteAtom(a)
			}
		}
	}
	for _, a := range loose {
		S.deleteAtom(a)
	}
	if emptied {
		S.Destroy()
	}
}

// DeleteResidue deletes r and its atoms. Deleting the last residue destroys
// the structure.
func (S *Structure) DeleteResidue(r *Residue) {
	if r == nil || r.s != S || S.destroyed {
		S.logger.Error("residue does not belong to the structure that it's being deleted from", "structure", S.name)
		return
	}
	if len(S.residues) == 1 {
		S.Destroy()
		return
	}
	b := S.coord.Begin()
	defer b.End()
	S.deleteResidue(r)
}

// DeleteBond removes b from the structure.
func (S *Structure) DeleteBond(b *Bond) {
	if b == nil || b.s != S || S.destroyed {
		S.logger.Error("bond does not belong to the structure that it's being deleted from", "structure", S.name)
		return
	}
	batch := S.coord.Begin()
	defer batch.End()
	S.deleteBond(b)
}

func (S *Structure) deleteBond(b *Bond) {
	b.atoms[0].removeBond(b)
	b.atoms[1].removeBond(b)
	for i, v := range S.bonds {
		if v == b {
			S.bonds = append(S.bonds[:i], S.bonds[i+1:]...)
			break
		}
	}
	S.coord.Destroying(b)
	S.tracker.AddDeleted(changes.Bond, b)
	S.idatmValid = false
	S.invalidateTopology()
}

func (S *Structure) deleteAtom(a *Atom) {
	for len(a.bonds) > 0 {
		S.deleteBond(a.bonds[len(a.bonds)-1])
	}
	if a.residue != nil {
		a.residue.removeAtom(a)
	}
	for i, v := range S.atoms {
		if v == a {
			S.atoms = append(S.atoms[:i], S.atoms[i+1:]...)
			break
		}
	}
	for _, cs := range S.coordSets {
		cs.forget(a)
	}
	S.coord.Destroying(a)
	S.tracker.AddDeleted(changes.Atom, a)
	S.invalidateTopology()
}

func (S *Structure) deleteResidue(r *Residue) {
	if r.chain != nil {
		r.chain.RemoveResidue(r)
	}
	for i, v := range S.residues {
		if v == r {
			S.residues = append(S.residues[:i], S.residues[i+1:]...)
			break
		}
	}
	for len(r.atoms) > 0 {
		S.deleteAtom(r.atoms[len(r.atoms)-1])
	}
	S.coord.Destroying(r)
	S.tracker.AddDeleted(changes.Residue, r)
	S.invalidateTopology()
}

// DeleteCoordSet removes cs and the pseudobonds living in it. If cs was the
// active set, the first remaining one becomes active.
func (S *Structure) DeleteCoordSet(cs *CoordSet) error {
	if cs == nil || cs.s != S || S.FindCoordSet(cs.id) != cs {
		return newError(KindForeignEntity, "Structure.DeleteCoordSet", "coordinate set not in structure %s", S.name)
	}
	b := S.coord.Begin()
	defer b.End()
	for i, v := range S.coordSets {
		if v == cs {
			S.coordSets = append(S.coordSets[:i], S.coordSets[i+1:]...)
			break
		}
	}
	S.pbMgr.removeCoordSet(cs)
	S.coord.Destroying(cs)
	S.tracker.AddDeleted(changes.CoordSet, cs)
	if S.activeCS == cs {
		S.activeCS = nil
		if len(S.coordSets) > 0 {
			S.activeCS = S.coordSets[0]
		}
		S.invalidateMissingStructure()
		S.track(changes.ReasonActiveCoordSet)
	}
	return nil
}

// Destroy destroys the structure with everything it owns. A destroyed
// structure is empty and refuses further deletions.
func (S *Structure) Destroy() {
	if S.destroyed {
		return
	}
	b := S.coord.Begin()
	for _, c := range S.chains {
		S.tracker.AddDeleted(changes.Chain, c)
		c.s = nil
	}
	S.chains = nil
	for _, bd := range S.bonds {
		S.coord.Destroying(bd)
		S.tracker.AddDeleted(changes.Bond, bd)
	}
	for _, a := range S.atoms {
		S.coord.Destroying(a)
		S.tracker.AddDeleted(changes.Atom, a)
	}
	for _, r := range S.residues {
		S.coord.Destroying(r)
		S.tracker.AddDeleted(changes.Residue, r)
	}
	for _, cs := range S.coordSets {
		S.coord.Destroying(cs)
		S.tracker.AddDeleted(changes.CoordSet, cs)
	}
	for _, g := range S.pbMgr.Groups() {
		S.pbMgr.DeleteGroup(g)
	}
	S.coord.Destroying(S)
	S.tracker.AddDeleted(changes.Structure, S)
	S.atoms, S.bonds, S.residues, S.coordSets = nil, nil, nil, nil
	S.activeCS = nil
	S.destroyed = true
	S.invalidateTopology()
	b.End()
	S.coord.RemoveObserver(S.pbMgr)
	S.metrics.detach(S.coord)
	S.logger.Debug("structure destroyed", "structure", S.name)
}

func atomLabel(a *Atom) string {
	if a == nil {
		return "<nil>"
	}
	return a.String()
}
