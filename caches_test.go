/*
 * caches_test.go, part of atomstruct.
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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rmera/atomstruct/config"
	v3 "github.com/rmera/atomstruct/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addBenzene builds a benzene ring (no hydrogens) with a methyl carbon in
// one residue, and returns the ring atoms.
func addBenzene(S *Structure, chainID string, number int) (*Residue, []*Atom) {
	r, _ := S.NewResidue("TOL", chainID, number, ' ', nil, false)
	ring := make([]*Atom, 6)
	for i := range ring {
		ring[i] = addAtom(S, r, fmt.Sprintf("C%d", i+1), "C", v3.Point{float64(i), 0, 0})
	}
	for i := range ring {
		mustBond(S, ring[i], ring[(i+1)%6])
	}
	me := addAtom(S, r, "C7", "C", v3.Point{7, 0, 0})
	mustBond(S, ring[0], me)
	return r, ring
}

func TestBondedGroupsTwoFragments(Te *testing.T) {
	S := newTestStructure()
	w1 := addWater(S, "W", 1, v3.Point{0, 0, 0})
	w2 := addWater(S, "W", 2, v3.Point{10, 0, 0})
	groups := S.BondedGroups(false)
	require.Len(Te, groups, 2)
	seen := make(map[*Atom]int)
	for _, g := range groups {
		assert.Len(Te, g, 3)
		for _, a := range g {
			seen[a]++
		}
	}
	assert.Len(Te, seen, 6)
	for _, v := range seen {
		assert.Equal(Te, 1, v)
	}
	assert.Same(Te, w1.Atoms()[0], groups[0][0], "groups start from atoms in creation order")
	//a missing-structure pseudobond joins them only when asked to
	g, err := S.PBManager().Group(PBGMissingStructure, GroupNormal)
	require.NoError(Te, err)
	_, err = g.NewPseudobond(w1.Atoms()[0], w2.Atoms()[0])
	require.NoError(Te, err)
	assert.Len(Te, S.BondedGroups(false), 2)
	assert.Len(Te, S.BondedGroups(true), 1)
}

func TestRingCache(Te *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	S := newTestStructure(WithMetrics(m))
	_, ring := addBenzene(S, "L", 1)
	rings := S.Rings(false, 0, nil)
	require.Len(Te, rings, 1)
	assert.Equal(Te, 6, rings[0].Size())
	again := S.Rings(false, 0, nil)
	require.Len(Te, again, 1)
	assert.Same(Te, rings[0], again[0], "same parameters, same cached result")
	assert.Equal(Te, 1.0, testutil.ToFloat64(m.Recomputes.WithLabelValues("rings")))
	assert.Len(Te, ring[0].Rings(), 1)
	assert.Empty(Te, S.Atoms()[6].Rings(), "the methyl is not in the ring")

	//a bridge makes a second, smaller ring
	mustBond(S, ring[0], ring[3])
	after := S.Rings(false, 0, nil)
	assert.NotSame(Te, rings[0], after[0])
	assert.Len(Te, after, 2)
	assert.Equal(Te, 2.0, testutil.ToFloat64(m.Recomputes.WithLabelValues("rings")))

	//ignore maps are compared by identity
	ignore := map[*Residue]bool{}
	r1 := S.Rings(false, 0, ignore)
	r2 := S.Rings(false, 0, ignore)
	assert.Same(Te, r1[0], r2[0])
	r3 := S.Rings(false, 0, map[*Residue]bool{})
	assert.NotSame(Te, r1[0], r3[0])
	ignored := S.Rings(false, 0, map[*Residue]bool{S.Residues()[0]: true})
	assert.Empty(Te, ignored)
}

func TestRingsAcrossResidues(Te *testing.T) {
	S := newTestStructure()
	r1, _ := S.NewResidue("AAA", "A", 1, ' ', nil, false)
	r2, _ := S.NewResidue("BBB", "A", 2, ' ', nil, false)
	var atoms []*Atom
	for i := 0; i < 5; i++ {
		r := r1
		if i > 2 {
			r = r2
		}
		atoms = append(atoms, addAtom(S, r, fmt.Sprintf("C%d", i), "C", v3.Point{float64(i), 0, 0}))
	}
	for i := range atoms {
		mustBond(S, atoms[i], atoms[(i+1)%5])
	}
	assert.Empty(Te, S.Rings(false, 0, nil))
	assert.Len(Te, S.Rings(true, 0, nil), 1)
}

func TestPolymers(Te *testing.T) {
	S := newTestStructure()
	addPeptide(S, "A", []string{"ALA", "GLY", "SER"}, []int{1, 2, 3})
	addPeptide(S, "B", []string{"LYS", "LYS"}, []int{1, 2})
	tail := addPeptide(S, "B", []string{"ASP", "GLU"}, []int{6, 7})
	addWater(S, "W", 1, v3.Point{50, 0, 0})
	polys := S.Polymers(false, true)
	require.Len(Te, polys, 3)
	assert.Len(Te, polys[0].Residues, 3)
	assert.Equal(Te, PTAmino, polys[0].Type)
	assert.Equal(Te, PTAmino, S.Residues()[0].PolymerType())
	assert.Equal(Te, PTNone, S.Residues()[len(S.Residues())-1].PolymerType())
	//join the B chain pieces through missing structure
	g, _ := S.PBManager().Group(PBGMissingStructure, GroupNormal)
	lys := S.FindResidue("B", 2, ' ')
	_, err := g.NewPseudobond(lys.FindAtom("C"), tail[0].FindAtom("N"))
	require.NoError(Te, err)
	assert.Len(Te, S.Polymers(false, true), 3)
	withMissing := S.Polymers(true, true)
	require.Len(Te, withMissing, 2)
	assert.Len(Te, withMissing[1].Residues, 4)
	//peptide bonds across chain IDs count only when chain IDs are ignored
	cB := S.FindResidue("B", 1, ' ')
	cA := S.FindResidue("A", 3, ' ')
	mustBond(S, cA.FindAtom("C"), cB.FindAtom("N"))
	assert.Len(Te, S.Polymers(false, true), 3)
	assert.Len(Te, S.Polymers(false, false), 2)
}

func TestStructureCategories(Te *testing.T) {
	S := newTestStructure()
	names := make([]string, 200)
	numbers := make([]int, 200)
	for i := range names {
		names[i] = []string{"ALA", "GLY", "SER", "LYS"}[i%4]
		numbers[i] = i + 1
	}
	chain := addPeptide(S, "A", names, numbers)
	water := addWater(S, "A", 301, v3.Point{0, 40, 0})
	cl := addIon(S, "CL", "Cl", "A", 302, v3.Point{0, -40, 0})
	assert.Equal(Te, CatIons, cl.StructureCategory())
	for _, a := range water.Atoms() {
		assert.Equal(Te, CatSolvent, a.StructureCategory(), a.String())
	}
	for _, r := range chain {
		for _, a := range r.Atoms() {
			assert.Equal(Te, CatMain, a.StructureCategory())
		}
	}
	chains := S.Chains()
	require.Len(Te, chains, 1)
	assert.Len(Te, chains[0].Residues(), 200)
}

func TestLigandCategory(Te *testing.T) {
	S := newTestStructure()
	names := make([]string, 40)
	numbers := make([]int, 40)
	for i := range names {
		names[i] = "ALA"
		numbers[i] = i + 1
	}
	addPeptide(S, "A", names, numbers)
	lig, _ := addBenzene(S, "A", 500)
	for i := 0; i < 12; i++ {
		addWater(S, "W", i+1, v3.Point{float64(3 * i), 30, 0})
	}
	for _, a := range lig.Atoms() {
		assert.Equal(Te, CatLigand, a.StructureCategory())
	}
	assert.Equal(Te, CatSolvent, S.FindResidue("W", 5, ' ').Atoms()[0].StructureCategory())
	//deleting the ligand and asking again recomputes
	S.DeleteResidue(lig)
	assert.Equal(Te, CatMain, S.Atoms()[0].StructureCategory())
}

func TestPartialHeuristics(Te *testing.T) {
	S := newTestStructure(WithHeuristics(config.Categories{LigandMaxAtoms: 300}))
	names := make([]string, 40)
	numbers := make([]int, 40)
	for i := range names {
		names[i] = "ALA"
		numbers[i] = i + 1
	}
	addPeptide(S, "A", names, numbers)
	lig, _ := addBenzene(S, "A", 500)
	assert.Equal(Te, CatMain, S.Atoms()[0].StructureCategory())
	assert.Equal(Te, CatLigand, lig.Atoms()[0].StructureCategory())
	assert.Equal(Te, 300, S.heur.LigandMaxAtoms)
	assert.Equal(Te, config.DefaultCategories().LigandSizeRatio, S.heur.LigandSizeRatio)
}

func TestBestAltLocs(Te *testing.T) {
	S := newTestStructure()
	r, _ := S.NewResidue("SER", "A", 1, ' ', nil, false)
	og := addAtom(S, r, "OG", "O", v3.Point{0, 0, 0})
	require.NoError(Te, og.SetAltLoc('A', true))
	og.SetOccupancy(0.6)
	og.SetBfactor(20)
	require.NoError(Te, og.SetAltLoc('B', true))
	og.SetCoord(v3.Point{1, 0, 0})
	og.SetOccupancy(0.4)
	og.SetBfactor(10)
	best := S.BestAltLocs()
	assert.Equal(Te, byte('A'), best[r])
	assert.Equal(Te, byte('B'), og.AltLoc())
	S.UseBestAltLocs()
	assert.Equal(Te, byte('A'), og.AltLoc())
	assert.Equal(Te, v3.Point{0, 0, 0}, og.Coord())
	assert.InDelta(Te, 20, og.Bfactor(), 1e-9)

	//equal occupancies: lower B-factor wins
	require.NoError(Te, og.SetAltLoc('B', false))
	og.SetOccupancy(0.6)
	assert.Equal(Te, byte('B'), S.BestAltLocs()[r])
	//full tie: first code
	og.SetBfactor(20)
	assert.Equal(Te, byte('A'), S.BestAltLocs()[r])
}

func TestRankAltLocs(Te *testing.T) {
	codes := []byte{'A', 'B', 'C'}
	occ := map[byte][]float64{'A': {0.3, 0.3}, 'B': {0.4, 0.4}, 'C': {0.3, 0.3}}
	bf := map[byte][]float64{'A': {10, 10}, 'B': {50, 50}, 'C': {5, 5}}
	assert.Equal(Te, byte('B'), rankAltLocs(codes, occ, bf))
	occ['B'] = []float64{0.3, 0.3}
	assert.Equal(Te, byte('C'), rankAltLocs(codes, occ, bf))
}
