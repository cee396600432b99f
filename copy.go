/*
 * copy.go, part of atomstruct.
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
	"maps"
)

// Copy returns a deep copy of the structure, with a new identity. The copy
// shares the logger, tracker, coordinator, templates, heuristics and metrics of
// S. Chains are rebuilt on demand from the copied residues.
func (S *Structure) Copy() *Structure {
	c := NewStructure(WithLogger(S.logger), WithChangeTracker(S.tracker), WithCoordinator(S.coord),
		WithTemplates(S.templates), WithHeuristics(S.heur), WithMetrics(S.metrics), WithName(S.name))
	c.pdbVersion = S.pdbVersion
	c.display = S.display
	c.ballScale = S.ballScale
	c.isTraj = S.isTraj
	c.lowerCaseChains = S.lowerCaseChains
	c.asterisksTranslated = S.asterisksTranslated
	c.inputSeqSource = S.inputSeqSource
	c.metadata = cloneStringsMap(S.metadata)
	c.inputSeqInfo = cloneStringsMap(S.inputSeqInfo)
	resMap := make(map[*Residue]*Residue, len(S.residues))
	for _, r := range S.residues {
		cr, _ := c.NewResidue(r.name, r.chainID, r.number, r.insert, nil, false)
		cr.isHelix, cr.isStrand, cr.isHet, cr.ssID = r.isHelix, r.isStrand, r.isHet, r.ssID
		cr.ribbonDisplay, cr.ribbonHide, cr.ribbonColor = r.ribbonDisplay, r.ribbonHide, r.ribbonColor
		cr.polymerType = r.polymerType
		resMap[r] = cr
	}
	atomMap := make(map[*Atom]*Atom, len(S.atoms))
	for _, a := range S.atoms {
		ca := c.NewAtom(a.name, a.element)
		ca.coordIndex = a.coordIndex
		ca.altLoc = a.altLoc
		ca.serial = a.serial
		ca.display, ca.hide, ca.drawMode = a.display, a.hide, a.drawMode
		ca.color, ca.radius, ca.idatmType = a.color, a.radius, a.idatmType
		if a.altLocs != nil {
			ca.altLocs = make(map[byte]*altLocInfo, len(a.altLocs))
			for k, v := range a.altLocs {
				info := *v
				ca.altLocs[k] = &info
			}
		}
		if a.residue != nil {
			resMap[a.residue].AddAtom(ca)
		}
		atomMap[a] = ca
	}
	c.numCoords = S.numCoords
	c.nextAtom = S.nextAtom
	for _, b := range S.bonds {
		cb, err := c.NewBond(atomMap[b.atoms[0]], atomMap[b.atoms[1]])
		if err != nil {
			S.logger.Error("copying bond", "bond", b.String(), "err", err)
			continue
		}
		cb.radius, cb.color, cb.halfbond = b.radius, b.color, b.halfbond
		cb.display, cb.hide = b.display, b.hide
	}
	csMap := make(map[*CoordSet]*CoordSet, len(S.coordSets))
	for _, cs := range S.coordSets {
		ccs := c.NewCoordSetSized(cs.id, 0)
		ccs.Fill(cs)
		for a, v := range cs.bfactors {
			ccs.bfactors[atomMap[a]] = v
		}
		for a, v := range cs.occupancies {
			ccs.occupancies[atomMap[a]] = v
		}
		csMap[cs] = ccs
	}
	if S.activeCS != nil {
		c.activeCS = csMap[S.activeCS]
	}
	c.isTraj = S.isTraj
	copyPBGroups(S.pbMgr, c.pbMgr, atomMap, csMap)
	c.idatmValid = S.idatmValid
	c.invalidateTopology()
	S.logger.Debug("structure copied", "structure", S.name, "atoms", len(S.atoms))
	return c
}

func copyPBGroups(src, dst *PBManager, atomMap map[*Atom]*Atom, csMap map[*CoordSet]*CoordSet) {
	for _, g := range src.Groups() {
		policy := GroupNormal
		if g.kind == PerCoordSet {
			policy = GroupPerCoordSet
		}
		cg, err := dst.Group(g.name, policy)
		if err != nil {
			dst.logger.Error("copying pseudobond group", "group", g.name, "err", err)
			continue
		}
		cg.color, cg.halfbond, cg.radius, cg.display = g.color, g.halfbond, g.radius, g.display
		for _, pb := range g.allPseudobonds() {
			a1, a2 := atomMap[pb.atoms[0]], atomMap[pb.atoms[1]]
			var cpb *Pseudobond
			switch g.kind {
			case PerStructure:
				cpb, err = cg.NewPseudobond(a1, a2)
			case PerCoordSet:
				cpb, err = cg.NewPseudobondIn(a1, a2, csMap[pb.cs])
			}
			if err != nil {
				dst.logger.Error("copying pseudobond", "group", g.name, "err", err)
				continue
			}
			cpb.color, cpb.halfbond, cpb.radius = pb.color, pb.halfbond, pb.radius
			cpb.display, cpb.hide = pb.display, pb.hide
		}
	}
}

// cloneStringsMap copies a map of string slices.
func cloneStringsMap(m map[string][]string) map[string][]string {
	ret := maps.Clone(m)
	for k, v := range ret {
		ret[k] = append([]string(nil), v...)
	}
	if ret == nil {
		ret = make(map[string][]string)
	}
	return ret
}
