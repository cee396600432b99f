/*
 * structure_test.go, part of atomstruct.
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

	"github.com/rmera/atomstruct/changes"
	"github.com/rmera/atomstruct/destruct"
	"github.com/rmera/atomstruct/element"
	v3 "github.com/rmera/atomstruct/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBondErrors(Te *testing.T) {
	S := newTestStructure()
	other := newTestStructure()
	a1 := S.NewAtom("C1", element.FromSymbol("C"))
	a2 := S.NewAtom("C2", element.FromSymbol("C"))
	foreign := other.NewAtom("C1", element.FromSymbol("C"))
	_, err := S.NewBond(a1, a2)
	require.NoError(Te, err)
	_, err = S.NewBond(a2, a1)
	assert.True(Te, IsKind(err, KindAlreadyConnected), "got %v", err)
	_, err = S.NewBond(a1, a1)
	assert.True(Te, IsKind(err, KindInvalidArgument), "got %v", err)
	_, err = S.NewBond(a1, foreign)
	assert.True(Te, IsKind(err, KindForeignEntity), "got %v", err)
	assert.Equal(Te, 1, S.NumBonds())
	assert.Equal(Te, []*Atom{a2}, a1.Neighbors())
	assert.Equal(Te, a1, a1.Bonds()[0].Cross(a2))
}

func TestNewResidueOrder(Te *testing.T) {
	S := newTestStructure()
	r1, _ := S.NewResidue("ALA", "A", 1, ' ', nil, false)
	r3, _ := S.NewResidue("GLY", "A", 3, ' ', nil, false)
	r2, err := S.NewResidue("SER", "A", 2, ' ', r3, false)
	require.NoError(Te, err)
	r4, err := S.NewResidue("LYS", "A", 4, ' ', r3, true)
	require.NoError(Te, err)
	assert.Equal(Te, []*Residue{r1, r2, r3, r4}, S.Residues())
	other := newTestStructure()
	stranger, _ := other.NewResidue("ALA", "B", 1, ' ', nil, false)
	_, err = S.NewResidue("TRP", "A", 5, ' ', stranger, true)
	assert.True(Te, IsKind(err, KindOutOfRange), "got %v", err)
	assert.Equal(Te, r2, S.FindResidue("A", 2, ' '))
	assert.Nil(Te, S.FindResidueNamed("A", 2, ' ', "ALA"))
}

func TestCoordSetOrderAndReplacement(Te *testing.T) {
	tr := changes.New()
	S := newTestStructure(WithChangeTracker(tr))
	cs2 := S.NewCoordSetSized(2, 1)
	cs0 := S.NewCoordSetSized(0, 1)
	cs1 := S.NewCoordSet()
	assert.Equal(Te, 3, cs1.ID(), "no-arg coordsets go after the last one")
	cs1 = S.NewCoordSetIndex(1)
	ids := []int{}
	for _, cs := range S.CoordSets() {
		ids = append(ids, cs.ID())
	}
	assert.Equal(Te, []int{0, 1, 2, 3}, ids)
	assert.True(Te, S.IsTraj())
	require.NoError(Te, S.SetActiveCoordSet(cs2))
	g, err := S.PBManager().Group(PBGMissingStructure, GroupPerCoordSet)
	require.NoError(Te, err)
	r, _ := S.NewResidue("ALA", "A", 1, ' ', nil, false)
	a1 := addAtom(S, r, "N", "N", v3.Point{0, 0, 0})
	a2 := addAtom(S, r, "CA", "C", v3.Point{1.5, 0, 0})
	_, err = g.NewPseudobond(a1, a2)
	require.NoError(Te, err)
	require.Len(Te, g.PseudobondsIn(cs2), 1)
	replacement := S.NewCoordSetSized(2, 4)
	assert.NotSame(Te, cs2, replacement)
	assert.Same(Te, replacement, S.FindCoordSet(2))
	assert.Same(Te, replacement, S.ActiveCoordSet(), "the active set is transferred to the replacement")
	assert.Empty(Te, g.PseudobondsIn(cs2))
	assert.Equal(Te, 4, len(S.CoordSets()))
	assert.Equal(Te, 1, tr.Changes()[changes.CoordSet].NumDeleted)
	assert.Same(Te, cs0, S.CoordSets()[0])
	assert.Same(Te, cs1, S.CoordSets()[1])
	fmt.Println("coordsets:", ids)
}

func TestSetActiveCoordSet(Te *testing.T) {
	tr := changes.New()
	S := newTestStructure(WithChangeTracker(tr))
	tr.Clear()
	require.NoError(Te, S.SetActiveCoordSet(nil), "no sets is not an error")
	cs0 := S.NewCoordSetSized(0, 0)
	cs1 := S.NewCoordSetSized(1, 0)
	require.NoError(Te, S.SetActiveCoordSet(cs1))
	assert.Same(Te, cs1, S.ActiveCoordSet())
	require.NoError(Te, S.SetActiveCoordSet(nil))
	assert.Same(Te, cs0, S.ActiveCoordSet())
	other := newTestStructure()
	err := S.SetActiveCoordSet(other.NewCoordSet())
	assert.True(Te, IsKind(err, KindOutOfRange), "got %v", err)
	ch := tr.Changes()[changes.Structure]
	assert.Contains(Te, ch.ReasonList(), changes.ReasonActiveCoordSet)
}

func TestCoordsPerSet(Te *testing.T) {
	S := newTestStructure()
	a := S.NewAtom("O", element.FromSymbol("O"))
	a.SetCoord(v3.Point{1, 2, 3})
	cs0 := S.ActiveCoordSet()
	require.NotNil(Te, cs0)
	cs1 := S.NewCoordSet()
	a.SetCoordIn(v3.Point{4, 5, 6}, cs1)
	assert.Equal(Te, v3.Point{1, 2, 3}, a.Coord())
	require.NoError(Te, S.SetActiveCoordSet(cs1))
	assert.Equal(Te, v3.Point{4, 5, 6}, a.Coord())
	p, err := a.CoordIn(cs0)
	require.NoError(Te, err)
	assert.Equal(Te, v3.Point{1, 2, 3}, p)
	assert.Equal(Te, 1, cs1.Coords().NVecs())
}

func TestDeleteEveryAtomDestroys(Te *testing.T) {
	S := newTestStructure()
	res := addPeptide(S, "A", []string{"ALA", "GLY"}, []int{1, 2})
	rec := &recorder{}
	S.Coordinator().AddObserver(rec)
	S.DeleteAtoms(S.Atoms())
	assert.True(Te, S.Destroyed())
	assert.Zero(Te, S.NumAtoms())
	assert.Zero(Te, S.NumResidues())
	require.Len(Te, rec.batches, 1, "one deletion, one batch")
	_, ok := rec.batches[0][res[0]]
	assert.True(Te, ok)
	_, ok = rec.batches[0][S]
	assert.True(Te, ok)
}

func TestDeleteEveryResidueDestroys(Te *testing.T) {
	S := newTestStructure()
	res := addPeptide(S, "A", []string{"ALA", "GLY", "SER"}, []int{1, 2, 3})
	for _, r := range res {
		S.DeleteResidue(r)
	}
	assert.True(Te, S.Destroyed())
	assert.Zero(Te, S.NumAtoms())
	assert.Zero(Te, S.NumBonds())
}

func TestDeleteLastResidueDestroys(Te *testing.T) {
	S := newTestStructure()
	res := addPeptide(S, "A", []string{"ALA", "GLY"}, []int{1, 2})
	addAtom(S, nil, "X", "C", v3.Point{30, 0, 0})
	rec := &recorder{}
	S.Coordinator().AddObserver(rec)
	var atoms []*Atom
	for _, r := range res {
		atoms = append(atoms, r.Atoms()...)
	}
	S.DeleteAtoms(atoms)
	assert.True(Te, S.Destroyed())
	assert.Zero(Te, S.NumAtoms())
	require.Len(Te, rec.batches, 1)
	_, ok := rec.batches[0][S]
	assert.True(Te, ok)

	S = newTestStructure()
	ion := addIon(S, "NA", "Na", "A", 1, v3.Point{0, 0, 0})
	addAtom(S, nil, "X", "C", v3.Point{30, 0, 0})
	S.DeleteAtom(ion)
	assert.True(Te, S.Destroyed())

	//never had residues
	S = newTestStructure()
	x := addAtom(S, nil, "X", "C", v3.Point{0, 0, 0})
	addAtom(S, nil, "Y", "C", v3.Point{5, 0, 0})
	S.DeleteAtom(x)
	assert.False(Te, S.Destroyed())
	assert.Equal(Te, 1, S.NumAtoms())
}

func TestDeleteAtomCascades(Te *testing.T) {
	tr := changes.New()
	S := newTestStructure(WithChangeTracker(tr))
	res := addPeptide(S, "A", []string{"ALA", "GLY"}, []int{1, 2})
	ion := addIon(S, "NA", "Na", "A", 3, v3.Point{20, 0, 0})
	nbonds := S.NumBonds()
	ca := res[0].FindAtom("CA")
	S.DeleteAtom(ca)
	assert.False(Te, S.Destroyed())
	assert.Equal(Te, nbonds-2, S.NumBonds())
	assert.Nil(Te, res[0].FindAtom("CA"))
	assert.Len(Te, res[0].FindAtom("N").Bonds(), 0)
	S.DeleteAtom(ion)
	assert.Equal(Te, 2, S.NumResidues(), "the ion residue goes with its only atom")
	other := newTestStructure()
	stranger := other.NewAtom("C", element.FromSymbol("C"))
	n := S.NumAtoms()
	S.DeleteAtom(stranger)
	assert.Equal(Te, n, S.NumAtoms())
	assert.Equal(Te, 1, other.NumAtoms())
	assert.Equal(Te, 1, tr.Changes()[changes.Residue].NumDeleted)
}

func TestDeleteBatchesNest(Te *testing.T) {
	coord := destruct.New(destruct.WithLogger(quietLogger()))
	rec := &recorder{}
	coord.AddObserver(rec)
	S := newTestStructure(WithCoordinator(coord))
	res := addPeptide(S, "A", []string{"ALA", "GLY", "SER"}, []int{1, 2, 3})
	b := coord.Begin()
	S.DeleteResidue(res[0])
	S.DeleteAtom(res[1].FindAtom("O"))
	assert.Empty(Te, rec.batches)
	b.End()
	require.Len(Te, rec.batches, 1)
	_, ok := rec.batches[0][res[0]]
	assert.True(Te, ok)
	assert.Equal(Te, 0, coord.Depth())
}

func TestTrackerClear(Te *testing.T) {
	tr := changes.New()
	S := newTestStructure(WithChangeTracker(tr))
	a := S.NewAtom("CA", element.FromSymbol("C"))
	tr.Clear()
	a.SetName("CB")
	require.True(Te, tr.Changed())
	assert.Contains(Te, tr.Changes()[changes.Atom].Modified, any(a))
	tr.Clear()
	assert.False(Te, tr.Changed())
	ch := tr.Changes()[changes.Atom]
	assert.Empty(Te, ch.Created)
	assert.Empty(Te, ch.Modified)
}

func TestCopy(Te *testing.T) {
	S := newTestStructure()
	res := addPeptide(S, "A", []string{"ALA", "GLY"}, []int{1, 2})
	res[0].SetIsHelix(true)
	S.SetMetadata(map[string][]string{"HEADER": {"test"}})
	ca := res[0].FindAtom("CA")
	ca.SetBfactor(12)
	require.NoError(Te, ca.SetAltLoc('A', true))
	ca.SetOccupancy(0.7)
	require.NoError(Te, ca.SetAltLoc('B', true))
	ca.SetCoord(v3.Point{9, 9, 9})
	ca.SetOccupancy(0.3)
	g, _ := S.PBManager().Group(PBGHydrogenBonds, GroupNormal)
	_, err := g.NewPseudobond(res[0].FindAtom("O"), res[1].FindAtom("N"))
	require.NoError(Te, err)
	C := S.Copy()
	assert.NotEqual(Te, S.ID(), C.ID())
	assert.Equal(Te, S.NumAtoms(), C.NumAtoms())
	assert.Equal(Te, S.NumBonds(), C.NumBonds())
	assert.Equal(Te, S.Metadata(), C.Metadata())
	cres := C.Residues()
	assert.True(Te, cres[0].IsHelix())
	cca := cres[0].FindAtom("CA")
	assert.Equal(Te, []byte{'A', 'B'}, cca.AltLocs())
	assert.Equal(Te, byte('B'), cca.AltLoc())
	assert.Equal(Te, v3.Point{9, 9, 9}, cca.Coord())
	assert.InDelta(Te, 0.3, cca.Occupancy(), 1e-9)
	cg, _ := C.PBManager().Group(PBGHydrogenBonds, GroupNone)
	require.NotNil(Te, cg)
	require.Len(Te, cg.Pseudobonds(), 1)
	assert.Same(Te, cres[0].FindAtom("O"), cg.Pseudobonds()[0].Atoms()[0])
	//the copy is independent
	C.DeleteResidue(cres[1])
	assert.Equal(Te, 2, S.NumResidues())
}

func TestConnectByDistance(Te *testing.T) {
	S := newTestStructure()
	r, _ := S.NewResidue("HOH", "W", 1, ' ', nil, false)
	o := addAtom(S, r, "O", "O", v3.Point{0, 0, 0})
	h1 := addAtom(S, r, "H1", "H", v3.Point{0.96, 0, 0})
	h2 := addAtom(S, r, "H2", "H", v3.Point{-0.24, 0.93, 0})
	far := addIon(S, "NA", "Na", "W", 2, v3.Point{10, 0, 0})
	n, err := S.ConnectByDistance()
	require.NoError(Te, err)
	assert.Equal(Te, 2, n)
	assert.True(Te, o.ConnectsTo(h1))
	assert.True(Te, o.ConnectsTo(h2))
	assert.False(Te, h1.ConnectsTo(h2))
	assert.Empty(Te, far.Bonds())
	n, err = S.ConnectByDistance()
	require.NoError(Te, err)
	assert.Zero(Te, n, "existing bonds are kept, not duplicated")
}
