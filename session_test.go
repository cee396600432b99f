/*
 * session_test.go, part of atomstruct.
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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	v3 "github.com/rmera/atomstruct/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionFixture is a structure touching every session section: a chain with
// unresolved positions, alternate locations, two coordinate sets and both
// kinds of pseudobond groups.
func sessionFixture(Te *testing.T, opts ...Option) *Structure {
	S := gappedChain(Te, opts...)
	S.SetInputSeqInfo("A", seqresA)
	S.SetInputSeqSource("SEQRES")
	S.SetMetadata(map[string][]string{"HEADER": {"TEST PROTEIN"}, "TITLE": {"A", "B"}})
	S.SetPDBVersion(3)
	require.Len(Te, S.Chains(), 1)
	w, err := S.NewResidue("HOH", "W", 5, 'A', nil, false)
	require.NoError(Te, err)
	o := addAtom(S, w, "O", "O", v3.Point{20, 20, 20})
	ca := S.FindResidue("A", 2, ' ').FindAtom("CA")
	require.NoError(Te, ca.SetAltLoc('A', true))
	ca.SetOccupancy(0.7)
	require.NoError(Te, ca.SetAltLoc('B', true))
	ca.SetCoord(v3.Point{1, 2, 3})
	ca.SetOccupancy(0.3)
	cs := S.NewCoordSetIndex(5)
	o.SetCoordIn(v3.Point{-1, -2, -3}, cs)
	cs.SetBfactor(o, 42)
	hb, err := S.PBManager().Group(PBGHydrogenBonds, GroupPerCoordSet)
	require.NoError(Te, err)
	_, err = hb.NewPseudobondIn(o, ca, cs)
	require.NoError(Te, err)
	require.NoError(Te, S.SetActiveCoordSet(cs))
	return S
}

func TestSessionRoundTrip(Te *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	S := sessionFixture(Te, WithMetrics(m))
	var data SessionData
	version, err := S.SessionInfo(&data)
	require.NoError(Te, err)
	assert.Equal(Te, CurrentSessionVersion, version)
	assert.Equal(Te, 1.0, testutil.ToFloat64(m.SessionSaves))
	ints := 0
	for _, a := range S.Atoms() {
		ints += a.SessionNumInts(version)
	}
	assert.Equal(Te, ints, len(data.Ints[secAtoms]))

	R, err := RestoreSession(version, &data, WithLogger(quietLogger()), WithMetrics(m))
	require.NoError(Te, err)
	assert.Equal(Te, 1.0, testutil.ToFloat64(m.SessionRestores))

	//before any change, the restored structure saves to the same data
	var again SessionData
	_, err = R.SessionInfo(&again)
	require.NoError(Te, err)
	assert.Equal(Te, data.Ints, again.Ints)
	assert.Equal(Te, data.Floats, again.Floats)
	assert.Equal(Te, data.Misc, again.Misc)
	assert.Equal(Te, S.Name(), R.Name())
	assert.Equal(Te, 3, R.PDBVersion())
	assert.Equal(Te, S.Metadata(), R.Metadata())
	assert.Equal(Te, S.InputSeqInfo(), R.InputSeqInfo())
	assert.Equal(Te, "SEQRES", R.InputSeqSource())
	assert.True(Te, R.IsTraj())

	require.Equal(Te, S.NumAtoms(), R.NumAtoms())
	for i, a := range S.Atoms() {
		b := R.Atoms()[i]
		assert.Equal(Te, a.Name(), b.Name())
		assert.Equal(Te, a.Element(), b.Element())
		assert.Equal(Te, a.Residue().Number(), b.Residue().Number())
		assert.Equal(Te, a.Coord(), b.Coord())
	}
	require.Equal(Te, S.NumBonds(), R.NumBonds())
	for i, b := range S.Bonds() {
		rb := R.Bonds()[i]
		for j := 0; j < 2; j++ {
			assert.Equal(Te, b.Atoms()[j].Name(), rb.Atoms()[j].Name())
			assert.Equal(Te, b.Atoms()[j].Residue().String(), rb.Atoms()[j].Residue().String())
		}
	}
	require.Equal(Te, S.NumResidues(), R.NumResidues())
	for i, r := range S.Residues() {
		rr := R.Residues()[i]
		assert.Equal(Te, r.Name(), rr.Name())
		assert.Equal(Te, r.ChainID(), rr.ChainID())
		assert.Equal(Te, r.Number(), rr.Number())
		assert.Equal(Te, r.Insert(), rr.Insert())
		assert.Equal(Te, r.PolymerType(), rr.PolymerType())
	}
	assert.NotNil(Te, R.FindResidue("W", 5, 'A'))

	require.Len(Te, R.CoordSets(), 2)
	assert.Equal(Te, 5, R.ActiveCoordSet().ID())
	ro := R.FindResidue("W", 5, 'A').FindAtom("O")
	assert.Equal(Te, v3.Point{-1, -2, -3}, ro.Coord())
	assert.InDelta(Te, 42, ro.Bfactor(), 1e-9)

	rca := R.FindResidue("A", 2, ' ').FindAtom("CA")
	assert.Equal(Te, []byte{'A', 'B'}, rca.AltLocs())
	assert.Equal(Te, byte('B'), rca.AltLoc())
	require.NoError(Te, rca.SetAltLoc('A', false))
	assert.InDelta(Te, 0.7, rca.Occupancy(), 1e-9)

	assert.Equal(Te, S.PBManager().GroupNames(), R.PBManager().GroupNames())
	ms, _ := R.PBManager().Group(PBGMissingStructure, GroupNone)
	require.NotNil(Te, ms)
	assert.Equal(Te, PerStructure, ms.Kind())
	require.Len(Te, ms.Pseudobonds(), 1)
	assert.Equal(Te, 4, ms.Pseudobonds()[0].Atoms()[0].Residue().Number())
	hb, _ := R.PBManager().Group(PBGHydrogenBonds, GroupNone)
	require.NotNil(Te, hb)
	assert.Equal(Te, PerCoordSet, hb.Kind())
	assert.Len(Te, hb.PseudobondsIn(R.FindCoordSet(5)), 1)
	assert.Empty(Te, hb.PseudobondsIn(R.FindCoordSet(0)))

	chains := R.Chains()
	require.Len(Te, chains, 1)
	c := chains[0]
	assert.True(Te, c.FromSeqres())
	assert.Equal(Te, "MKTAYIAKQR", c.Characters())
	require.Len(Te, c.Residues(), 10)
	assert.Nil(Te, c.Residues()[4])
	assert.Same(Te, R.FindResidue("A", 7, ' '), c.Residues()[6])
	assert.Same(Te, c, R.FindResidue("A", 7, ' ').Chain())
}

func TestSessionInfoNeedsEmptyDestination(Te *testing.T) {
	S := sessionFixture(Te)
	var data SessionData
	_, err := S.SessionInfo(&data)
	require.NoError(Te, err)
	_, err = S.SessionInfo(&data)
	assert.True(Te, IsKind(err, KindInvalidArgument), "got %v", err)
	_, err = S.SessionInfo(nil)
	assert.True(Te, IsKind(err, KindInvalidArgument), "got %v", err)
}

func cloneSession(d *SessionData) *SessionData {
	ret := &SessionData{Misc: append([]Misc(nil), d.Misc...)}
	for _, v := range d.Ints {
		ret.Ints = append(ret.Ints, append([]int(nil), v...))
	}
	for _, v := range d.Floats {
		ret.Floats = append(ret.Floats, append([]float64(nil), v...))
	}
	return ret
}

func TestSessionRestoreRejects(Te *testing.T) {
	S := sessionFixture(Te)
	var data SessionData
	version, err := S.SessionInfo(&data)
	require.NoError(Te, err)

	_, err = RestoreSession(CurrentSessionVersion+1, &data, WithLogger(quietLogger()))
	assert.True(Te, IsKind(err, KindVersionTooNew), "got %v", err)
	_, err = RestoreSession(0, &data, WithLogger(quietLogger()))
	assert.True(Te, IsKind(err, KindSerialization), "got %v", err)

	err = S.SessionRestore(version, &data)
	assert.True(Te, IsKind(err, KindInvalidArgument), "restoring into a populated structure: %v", err)

	short := cloneSession(&data)
	short.Ints = short.Ints[:numSections-1]
	_, err = RestoreSession(version, short, WithLogger(quietLogger()))
	assert.True(Te, IsKind(err, KindSerialization), "got %v", err)

	for sec := 0; sec < numSections; sec++ {
		if len(data.Ints[sec]) == 0 {
			continue
		}
		trunc := cloneSession(&data)
		trunc.Ints[sec] = trunc.Ints[sec][:len(trunc.Ints[sec])-1]
		_, err = RestoreSession(version, trunc, WithLogger(quietLogger()))
		assert.True(Te, IsKind(err, KindSerialization), "truncated %s section: %v", sectionNames[sec], err)
	}
	long := cloneSession(&data)
	long.Floats[secBonds] = append(long.Floats[secBonds], 1)
	_, err = RestoreSession(version, long, WithLogger(quietLogger()))
	assert.True(Te, IsKind(err, KindSerialization), "got %v", err)

	bad := cloneSession(&data)
	bad.Ints[secBonds][0] = S.NumAtoms() + 10
	_, err = RestoreSession(version, bad, WithLogger(quietLogger()))
	assert.True(Te, IsKind(err, KindSerialization), "got %v", err)
}
