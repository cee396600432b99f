/*
 * chain_test.go, part of atomstruct.
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seqresA = []string{"MET", "LYS", "THR", "ALA", "TYR", "ILE", "ALA", "LYS", "GLN", "ARG"}

// gappedChain builds chain A with residues 1-4 and 7-10 of seqresA, joined by
// a missing-structure pseudobond.
func gappedChain(Te *testing.T, opts ...Option) *Structure {
	S := newTestStructure(opts...)
	head := addPeptide(S, "A", seqresA[:4], []int{1, 2, 3, 4})
	tail := addPeptide(S, "A", seqresA[6:], []int{7, 8, 9, 10})
	g, err := S.PBManager().Group(PBGMissingStructure, GroupNormal)
	require.NoError(Te, err)
	_, err = g.NewPseudobond(head[3].FindAtom("C"), tail[0].FindAtom("N"))
	require.NoError(Te, err)
	return S
}

func TestSeqresGap(Te *testing.T) {
	S := gappedChain(Te)
	S.SetInputSeqInfo("A", seqresA)
	chains := S.Chains()
	require.Len(Te, chains, 1)
	c := chains[0]
	fmt.Println(c.Characters())
	assert.True(Te, c.FromSeqres())
	assert.Equal(Te, "MKTAYIAKQR", c.Characters())
	require.Len(Te, c.Residues(), 10)
	assert.Nil(Te, c.Residues()[4])
	assert.Nil(Te, c.Residues()[5])
	assert.Equal(Te, 7, c.Residues()[6].Number())
	assert.Len(Te, c.ExistingResidues(), 8)
	i, ok := c.ResidueIndex(S.FindResidue("A", 8, ' '))
	assert.True(Te, ok)
	assert.Equal(Te, 7, i)
	assert.Same(Te, c, S.Residues()[0].Chain())
	assert.Equal(Te, PTAmino, c.PolymerType())

	//dropping the seqres basis strips the unresolved positions
	c.SetFromSeqres(false)
	assert.Equal(Te, "MKTAAKQR", c.Characters())
	assert.Len(Te, c.Residues(), 8)
	i, _ = c.ResidueIndex(S.FindResidue("A", 8, ' '))
	assert.Equal(Te, 5, i)
}

func TestSeqresMismatchFallsBack(Te *testing.T) {
	S := gappedChain(Te)
	trp := make([]string, 10)
	for i := range trp {
		trp[i] = "TRP"
	}
	S.SetInputSeqInfo("A", trp)
	c := S.Chains()[0]
	assert.False(Te, c.FromSeqres())
	assert.Equal(Te, "MKTAAKQR", c.Characters())
	assert.Len(Te, c.Residues(), 8)
}

func TestSeqresSameLength(Te *testing.T) {
	S := newTestStructure()
	addPeptide(S, "A", []string{"GLY", "ALA", "SER"}, []int{1, 2, 3})
	S.SetInputSeqInfo("A", []string{"GLY", "ALA", "SER"})
	c := S.Chains()[0]
	assert.True(Te, c.FromSeqres())
	assert.Equal(Te, "GAS", c.Characters())
}

func TestChainWithoutSeqres(Te *testing.T) {
	S := newTestStructure()
	addPeptide(S, "A", []string{"GLY", "ALA"}, []int{1, 2})
	addPeptide(S, "B", []string{"TRP", "PHE"}, []int{1, 2})
	chains := S.Chains()
	require.Len(Te, chains, 2)
	assert.Equal(Te, "GA", chains[0].Characters())
	assert.Equal(Te, "WF", chains[1].Characters())
	assert.Equal(Te, "B", chains[1].ChainID())
	assert.False(Te, chains[1].FromSeqres())
}

func TestRemoveResidueDetachesEmptyChain(Te *testing.T) {
	S := newTestStructure()
	res := addPeptide(S, "A", []string{"GLY", "ALA"}, []int{1, 2})
	c := S.Chains()[0]
	S.ChangeTracker().Clear()
	c.RemoveResidue(res[0])
	assert.Nil(Te, res[0].Chain())
	assert.Len(Te, c.Residues(), 2, "the position stays, unresolved")
	assert.Same(Te, S, c.Structure())
	c.RemoveResidue(res[1])
	assert.Nil(Te, c.Structure())
	assert.Empty(Te, S.Chains())
	assert.Equal(Te, 1, S.ChangeTracker().Changes()[changes.Chain].NumDeleted)
}

func TestDeletedResidueLeavesChain(Te *testing.T) {
	S := newTestStructure()
	res := addPeptide(S, "A", []string{"GLY", "ALA", "SER"}, []int{1, 2, 3})
	c := S.Chains()[0]
	S.DeleteResidue(res[1])
	assert.Len(Te, c.ExistingResidues(), 2)
	assert.Nil(Te, c.Residues()[1])
	assert.Same(Te, c, res[2].Chain())
}

func TestChainPushPop(Te *testing.T) {
	S := newTestStructure()
	res := addPeptide(S, "A", []string{"GLY", "ALA", "SER"}, []int{1, 2, 3})
	c := S.Chains()[0]
	r, err := c.PopBack()
	require.NoError(Te, err)
	assert.Same(Te, res[2], r)
	assert.Nil(Te, r.Chain())
	assert.Equal(Te, "GA", c.Characters())
	c.PushFront(r)
	assert.Equal(Te, "SGA", c.Characters())
	i, _ := c.ResidueIndex(res[1])
	assert.Equal(Te, 2, i)
	r, err = c.PopFront()
	require.NoError(Te, err)
	assert.Same(Te, res[2], r)
	c.PushBack(r)
	assert.Equal(Te, "GAS", c.Characters())
	for _i := 0; _i < 3; _i++ {
		_, err = c.PopBack()
		require.NoError(Te, err)
	}
	assert.Nil(Te, c.Structure())
	_, err = c.PopBack()
	assert.True(Te, IsKind(err, KindOutOfRange), "got %v", err)
}

func TestChainSetResidue(Te *testing.T) {
	S := newTestStructure()
	res := addPeptide(S, "A", []string{"GLY", "ALA"}, []int{1, 2})
	c := S.Chains()[0]
	require.NoError(Te, c.SetResidue(2, nil, 'W'))
	assert.Equal(Te, "GAW", c.Characters())
	require.NoError(Te, c.SetResidue(0, nil, 'G'))
	assert.Nil(Te, res[0].Chain())
	assert.True(Te, IsKind(c.SetResidue(7, nil, 'A'), KindOutOfRange))
	assert.True(Te, IsKind(c.BulkSet(res, "G"), KindInvalidArgument))
}
