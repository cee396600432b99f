/*
 * categories.go, part of atomstruct.
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

	"github.com/rmera/atomstruct/changes"
)

// StructCat is the role of an atom in the structure as a whole.
type StructCat int

const (
	CatUnassigned StructCat = iota
	CatMain
	CatLigand
	CatIons
	CatSolvent
)

func (C StructCat) String() string {
	switch C {
	case CatMain:
		return "main"
	case CatLigand:
		return "ligand"
	case CatIons:
		return "ions"
	case CatSolvent:
		return "solvent"
	}
	return "unassigned"
}

const smallSolventsKey = "small solvents"

func (A *Atom) setCategory(c StructCat) {
	if A.category == c {
		return
	}
	A.category = c
	A.track(changes.ReasonStructureCategory)
}

func resName(a *Atom) string {
	if a.residue == nil {
		return ""
	}
	return a.residue.name
}

func resSize(a *Atom) int {
	if a.residue == nil {
		return 1
	}
	return len(a.residue.atoms)
}

// computeCategories partitions the atoms into Main, Ligand, Ions and Solvent
// using the bonded groups (missing structure included). Groups are processed
// in bonded-group order, so the result is deterministic.
func (S *Structure) computeCategories() {
	if S.categoriesOK {
		return
	}
	S.metrics.recompute("categories")
	h := S.heur
	S.Chains() //the bound ligand pass needs the chains
	groups := S.BondedGroups(true)
	root := make(map[*Atom]int, len(S.atoms)) //atom -> group index
	for i, g := range groups {
		for _, a := range g {
			root[a] = i
		}
	}
	remaining := make(map[int]bool, len(groups))
	var smallSolvents []int
	for i, g := range groups {
		r := g[0]
		switch {
		case len(g) < h.SmallSolventMaxAtoms && S.templates.IsSolvent(resName(r)):
			smallSolvents = append(smallSolvents, i)
		case len(g) == 1 && resSize(r) == 1 && r.element.Number() > 4 && r.element.Number() < 9:
			smallSolvents = append(smallSolvents, i)
		default:
			remaining[i] = true
		}
	}
	setGroup := func(i int, c StructCat) {
		for _, a := range groups[i] {
			a.setCategory(c)
		}
	}
	ordered := func(set map[int]bool) []int {
		ret := make([]int, 0, len(set))
		for k := range set {
			ret = append(ret, k)
		}
		sort.Ints(ret)
		return ret
	}

	//solvent
	solvents := map[string][]int{smallSolventsKey: smallSolvents}
	for _, i := range ordered(remaining) {
		g := groups[i]
		if len(g) > h.SolventMaxGroupAtoms || len(g) != resSize(g[0]) {
			continue
		}
		name := resName(g[0])
		solvents[name] = append(solvents[name], i)
	}
	names := make([]string, 0, len(solvents))
	for k := range solvents {
		names = append(names, k)
	}
	sort.Strings(names)
	best, bestSize := "", h.BestSolventMinCount
	for _, n := range names {
		if len(solvents[n]) < bestSize {
			continue
		}
		best, bestSize = n, len(solvents[n])
	}
	for _, i := range smallSolvents {
		setGroup(i, CatSolvent)
	}
	if best != "" && best != smallSolventsKey {
		for _, i := range solvents[best] {
			delete(remaining, i)
			setGroup(i, CatSolvent)
		}
	}

	//ions, possibly expanded to the rest of their residue (coordination complexes)
	ions := make(map[int]bool)
	for _, i := range ordered(remaining) {
		if a := groups[i][0]; len(groups[i]) == 1 && a.element.Number() > 1 && !a.element.IsNobleGas() {
			ions[i] = true
		}
	}
	checked := make(map[*Residue]bool)
	for _, i := range ordered(ions) {
		a := groups[i][0]
		if a.residue == nil || len(groups[i]) == len(a.residue.atoms) || checked[a.residue] {
			continue
		}
		checked[a.residue] = true
		seen := map[int]bool{i: true}
		for _, ra := range a.residue.atoms {
			seen[root[ra]] = true
		}
		for _, rt := range ordered(seen) {
			if ions[rt] {
				continue
			}
			heavy := 0
			for _, ga := range groups[rt] {
				if ga.element.Number() > 1 {
					heavy++
					if heavy >= h.IonFragmentMaxHeavy {
						break
					}
				}
			}
			if heavy < h.IonFragmentMaxHeavy {
				ions[rt] = true
			}
		}
	}
	for _, i := range ordered(ions) {
		delete(remaining, i)
		setGroup(i, CatIons)
	}
	if len(remaining) == 0 {
		S.categoriesOK = true
		return
	}

	//ligands
	longest := 0
	for i := range remaining {
		if len(groups[i]) > longest {
			longest = len(groups[i])
		}
	}
	cutoff := longest / h.LigandSizeRatio
	if cutoff > h.LigandMaxAtoms {
		cutoff = h.LigandMaxAtoms
	}
	for _, i := range ordered(remaining) {
		g := groups[i]
		if len(g) >= cutoff {
			continue
		}
		res := make(map[*Residue]bool)
		for _, a := range g {
			res[a.residue] = true
		}
		if len(res) >= h.LigandMaxResidues {
			continue
		}
		//it could be part of a longer chain, some of which is missing.
		if r := g[0].residue; r != nil && r.chain != nil && len(r.chain.residues) >= h.LongChainMinResidues {
			continue
		}
		delete(remaining, i)
		setGroup(i, CatLigand)
	}

	//main, except residues attached to a chain but not part of it
	for _, i := range ordered(remaining) {
		g := groups[i]
		resOrder := make([]*Residue, 0)
		inGroup := make(map[*Residue]bool)
		chains := make(map[*Chain]bool)
		for _, a := range g {
			a.setCategory(CatMain)
			if r := a.residue; r != nil && !inGroup[r] {
				inGroup[r] = true
				resOrder = append(resOrder, r)
				if r.chain != nil {
					chains[r.chain] = true
				}
			}
		}
		inSeq := make(map[*Residue]bool)
		for c := range chains {
			for _, r := range c.residues {
				if r != nil {
					inSeq[r] = true
				}
			}
		}
		if len(inSeq) == 0 {
			continue
		}
		for _, r := range resOrder {
			if inSeq[r] {
				continue
			}
			for _, a := range r.atoms {
				a.setCategory(CatLigand)
			}
		}
	}
	S.categoriesOK = true
}
