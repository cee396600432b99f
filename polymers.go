/*
 * polymers.go, part of atomstruct.
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

// Polymer is a maximal run of residues, adjacent in the structure's residue
// list, joined by polymeric linkages.
type Polymer struct {
	Residues []*Residue
	Type     PolymerType
}

type polymerKey struct {
	missingStructure bool
	chainIDs         bool
}

// Polymers returns the polymer spans of the structure and sets the polymer
// type of their residues (residues outside any polymer get PTNone). With
// considerMissingStructure, missing-structure pseudobonds between adjacent
// residues with the same chain ID also count as links. With considerChainIDs,
// a span never crosses a change of chain ID.
func (S *Structure) Polymers(considerMissingStructure, considerChainIDs bool) []Polymer {
	key := polymerKey{considerMissingStructure, considerChainIDs}
	if p, ok := S.polymers[key]; ok {
		S.setPolymerTypes(p)
		return p
	}
	S.metrics.recompute("polymers")
	//linked residues have to be adjacent in the residue list.
	index := make(map[*Residue]int, len(S.residues))
	for i, r := range S.residues {
		index[r] = i
	}
	connected := make(map[*Residue]bool)
	linkType := make(map[*Residue]PolymerType)
	for _, b := range S.bonds {
		start, pt := b.polymericLink()
		if start == nil {
			continue
		}
		sr := start.residue
		nr := b.Cross(start).residue
		if index[sr]+1 == index[nr] && (!considerChainIDs || sr.chainID == nr.chainID) {
			connected[sr] = true
			linkType[sr] = pt
			linkType[nr] = pt
		}
	}
	if considerMissingStructure {
		if g, _ := S.pbMgr.Group(PBGMissingStructure, GroupNone); g != nil {
			for _, pb := range g.Pseudobonds() {
				r1, r2 := pb.atoms[0].residue, pb.atoms[1].residue
				if r1 == nil || r2 == nil || r1.chainID != r2.chainID {
					continue
				}
				i1, i2 := index[r1], index[r2]
				switch i1 - i2 {
				case -1:
					connected[r1] = true
				case 1:
					connected[r2] = true
				}
			}
		}
	}
	var ret []Polymer
	var cur []*Residue
	for _, r := range S.residues {
		if connected[r] {
			cur = append(cur, r)
			continue
		}
		if cur != nil {
			ret = append(ret, Polymer{Residues: append(cur, r)})
			cur = nil
		}
	}
	if cur != nil {
		ret = append(ret, Polymer{Residues: cur})
	}
	for i := range ret {
		ret[i].Type = polymerTypeOf(ret[i].Residues, linkType, S.templates)
	}
	if S.polymers == nil {
		S.polymers = make(map[polymerKey][]Polymer)
	}
	S.polymers[key] = ret
	S.setPolymerTypes(ret)
	return ret
}

// polymerTypeOf returns the type of the first real linkage in the span, or
// the template type of its first known residue when the span is only joined
// by missing structure.
func polymerTypeOf(res []*Residue, linkType map[*Residue]PolymerType, T *TemplateRegistry) PolymerType {
	for _, r := range res {
		if pt := linkType[r]; pt != PTNone {
			return pt
		}
	}
	for _, r := range res {
		if pt, ok := T.ResidueType(r.name); ok {
			return pt
		}
	}
	return PTNone
}

func (S *Structure) setPolymerTypes(p []Polymer) {
	for _, r := range S.residues {
		r.polymerType = PTNone
	}
	for _, poly := range p {
		for _, r := range poly.Residues {
			r.polymerType = poly.Type
		}
	}
}
