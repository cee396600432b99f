/*
 * pbgroup_test.go, part of atomstruct.
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

	"github.com/rmera/atomstruct/changes"
	"github.com/rmera/atomstruct/destruct"
	v3 "github.com/rmera/atomstruct/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerCoordSetIsolation(Te *testing.T) {
	S := newTestStructure()
	w := addWater(S, "W", 1, v3.Point{0, 0, 0})
	cs0 := S.ActiveCoordSet()
	cs1 := S.NewCoordSet()
	g, err := S.PBManager().Group(PBGHydrogenBonds, GroupPerCoordSet)
	require.NoError(Te, err)
	assert.Equal(Te, PerCoordSet, g.Kind())
	o, h := w.Atoms()[0], w.Atoms()[1]
	pb, err := g.NewPseudobond(o, h)
	require.NoError(Te, err)
	assert.Same(Te, cs0, pb.CoordSet())
	assert.Len(Te, g.Pseudobonds(), 1)
	require.NoError(Te, S.SetActiveCoordSet(cs1))
	assert.Empty(Te, g.Pseudobonds(), "pseudobonds of set 0 don't show under set 1")
	assert.Len(Te, g.PseudobondsIn(cs0), 1)
	_, err = g.NewPseudobondIn(o, w.Atoms()[2], cs1)
	require.NoError(Te, err)
	assert.Len(Te, g.Pseudobonds(), 1)
	assert.Equal(Te, 2, g.NumPseudobonds())
	require.NoError(Te, S.DeleteCoordSet(cs0))
	assert.Equal(Te, 1, g.NumPseudobonds(), "deleting a set drops its pseudobonds")
}

func TestGroupKinds(Te *testing.T) {
	S := newTestStructure()
	m := S.PBManager()
	g, err := m.Group(PBGMetalCoordination, GroupNormal)
	require.NoError(Te, err)
	assert.Equal(Te, Rgba{147, 112, 219, 255}, g.Color())
	same, err := m.Group(PBGMetalCoordination, GroupNone)
	require.NoError(Te, err)
	assert.Same(Te, g, same)
	_, err = m.Group(PBGMetalCoordination, GroupPerCoordSet)
	assert.True(Te, IsKind(err, KindTypeMismatch), "got %v", err)
	none, err := m.Group("nothing", GroupNone)
	assert.NoError(Te, err)
	assert.Nil(Te, none)
	ms, _ := m.Group(PBGMissingStructure, GroupNormal)
	assert.True(Te, ms.Halfbond())
	hb, _ := m.Group(PBGHydrogenBonds, GroupNormal)
	assert.Equal(Te, Rgba{0, 204, 230, 255}, hb.Color())
	assert.Equal(Te, []string{PBGHydrogenBonds, PBGMetalCoordination, PBGMissingStructure}, m.GroupNames())
	w := addWater(S, "W", 1, v3.Point{0, 0, 0})
	cs := S.ActiveCoordSet()
	_, err = g.NewPseudobondIn(w.Atoms()[0], w.Atoms()[1], cs)
	assert.True(Te, IsKind(err, KindTypeMismatch), "got %v", err)
}

func TestGlobalManager(Te *testing.T) {
	coord := destruct.New(destruct.WithLogger(quietLogger()))
	tr := changes.New()
	gm := NewGlobalPBManager(tr, coord, quietLogger())
	_, err := gm.Group("contacts", GroupPerCoordSet)
	assert.True(Te, IsKind(err, KindInvalidArgument), "got %v", err)
	g, err := gm.Group("contacts", GroupNormal)
	require.NoError(Te, err)
	S1 := newTestStructure(WithCoordinator(coord))
	S2 := newTestStructure(WithCoordinator(coord))
	w1 := addWater(S1, "W", 1, v3.Point{0, 0, 0})
	w2 := addWater(S2, "W", 1, v3.Point{3, 0, 0})
	_, err = g.NewPseudobond(w1.Atoms()[0], w2.Atoms()[0])
	require.NoError(Te, err)
	assert.Nil(Te, g.Structure())
	S2.Destroy()
	assert.Empty(Te, g.Pseudobonds(), "pseudobonds to destroyed atoms are dropped")
	require.NoError(Te, gm.DeleteGroup(g))
	assert.Equal(Te, 1, tr.Changes()[changes.PseudobondGroup].NumDeleted)
	err = gm.DeleteGroup(g)
	assert.True(Te, IsKind(err, KindInvalidArgument), "got %v", err)
}

func TestDestroyedAtomsPurgePseudobonds(Te *testing.T) {
	S := newTestStructure()
	w1 := addWater(S, "W", 1, v3.Point{0, 0, 0})
	w2 := addWater(S, "W", 2, v3.Point{3, 0, 0})
	ps, _ := S.PBManager().Group("contacts", GroupNormal)
	pc, _ := S.PBManager().Group("per set contacts", GroupPerCoordSet)
	_, err := ps.NewPseudobond(w1.Atoms()[1], w2.Atoms()[0])
	require.NoError(Te, err)
	_, err = pc.NewPseudobond(w1.Atoms()[1], w2.Atoms()[0])
	require.NoError(Te, err)
	_, err = pc.NewPseudobond(w1.Atoms()[0], w2.Atoms()[0])
	require.NoError(Te, err)
	S.DeleteAtom(w1.Atoms()[1])
	assert.Zero(Te, ps.NumPseudobonds())
	assert.Equal(Te, 1, pc.NumPseudobonds())
}

func TestGroupAttributesPropagate(Te *testing.T) {
	S := newTestStructure()
	w := addWater(S, "W", 1, v3.Point{0, 0, 0})
	g, _ := S.PBManager().Group("contacts", GroupNormal)
	pb, err := g.NewPseudobond(w.Atoms()[1], w.Atoms()[2])
	require.NoError(Te, err)
	assert.InDelta(Te, defaultPseudobondRadius, pb.Radius(), 1e-9)
	g.SetColor(Rgba{1, 2, 3, 255})
	g.SetRadius(0.2)
	assert.Equal(Te, Rgba{1, 2, 3, 255}, pb.Color())
	assert.InDelta(Te, 0.2, pb.Radius(), 1e-9)
	assert.Same(Te, w.Atoms()[2], pb.Cross(w.Atoms()[1]))
	require.NoError(Te, g.DeletePseudobond(pb))
	assert.True(Te, IsKind(g.DeletePseudobond(pb), KindForeignEntity))
}
