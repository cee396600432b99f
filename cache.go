/*
 * cache.go, part of atomstruct.
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

// Every derived quantity of a Structure is memoized. Mutations that could
// change one of them call the matching invalidation below.

// invalidateTopology drops everything that depends on atoms, bonds and
// residues.
func (S *Structure) invalidateTopology() {
	S.bondedGroups = nil
	S.polymers = nil
	S.categoriesOK = false
	S.ringsOK = false
	S.altLocsDirty = true
}

// invalidateTemplateDerived drops what depends on atom and residue names.
func (S *Structure) invalidateTemplateDerived() {
	S.polymers = nil
	S.categoriesOK = false
}

// invalidateMissingStructure drops what depends on missing-structure
// pseudobonds.
func (S *Structure) invalidateMissingStructure() {
	delete(S.bondedGroups, true)
	S.polymers = nil
	S.categoriesOK = false
}

// InvalidateCaches forces every derived quantity to be recomputed on next use.
func (S *Structure) InvalidateCaches() {
	S.invalidateTopology()
	S.bestAltLocs = nil
}

// BondedGroups returns the connected components of the bond graph. With
// considerMissingStructure, missing-structure pseudobonds also join atoms.
// Components are found starting from atoms in creation order, and each one
// lists its atoms in breadth-first order.
func (S *Structure) BondedGroups(considerMissingStructure bool) [][]*Atom {
	if g, ok := S.bondedGroups[considerMissingStructure]; ok {
		return g
	}
	S.metrics.recompute("bonded_groups")
	var extra map[*Atom][]*Atom
	if considerMissingStructure {
		extra = S.missingStructurePartners()
	}
	seen := make(map[*Atom]bool, len(S.atoms))
	var groups [][]*Atom
	for _, start := range S.atoms {
		if seen[start] {
			continue
		}
		seen[start] = true
		group := []*Atom{start}
		for i := 0; i < len(group); i++ {
			a := group[i]
			for _, n := range a.neighbors {
				if !seen[n] {
					seen[n] = true
					group = append(group, n)
				}
			}
			for _, n := range extra[a] {
				if !seen[n] {
					seen[n] = true
					group = append(group, n)
				}
			}
		}
		groups = append(groups, group)
	}
	if S.bondedGroups == nil {
		S.bondedGroups = make(map[bool][][]*Atom)
	}
	S.bondedGroups[considerMissingStructure] = groups
	return groups
}

// missingStructurePartners maps each atom to the atoms it is joined to by
// missing-structure pseudobonds of the active coordinate set.
func (S *Structure) missingStructurePartners() map[*Atom][]*Atom {
	g, _ := S.pbMgr.Group(PBGMissingStructure, GroupNone)
	if g == nil {
		return nil
	}
	ret := make(map[*Atom][]*Atom)
	for _, pb := range g.Pseudobonds() {
		a1, a2 := pb.atoms[0], pb.atoms[1]
		ret[a1] = append(ret[a1], a2)
		ret[a2] = append(ret[a2], a1)
	}
	return ret
}
