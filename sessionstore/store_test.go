/*
 * store_test.go, part of atomstruct.
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

package sessionstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rmera/atomstruct"
	"github.com/rmera/atomstruct/config"
	"github.com/rmera/atomstruct/element"
	v3 "github.com/rmera/atomstruct/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func memStore(Te *testing.T) *Store {
	s, err := Open(config.Store{InMemory: true, CompressionLevel: 3}, quiet())
	require.NoError(Te, err)
	Te.Cleanup(func() { s.Close() })
	return s
}

// dipeptide builds GLY-ALA backbone atoms with a peptide bond.
func dipeptide(Te *testing.T, name string) *atomstruct.Structure {
	S := atomstruct.NewStructure(atomstruct.WithLogger(quiet()), atomstruct.WithName(name))
	var prevC *atomstruct.Atom
	for i, rn := range []string{"GLY", "ALA"} {
		r, err := S.NewResidue(rn, "A", i+1, ' ', nil, false)
		require.NoError(Te, err)
		var atoms []*atomstruct.Atom
		for j, an := range []string{"N", "CA", "C", "O"} {
			a := S.NewAtom(an, element.FromSymbol(an[:1]))
			a.SetCoord(v3.Point{3.8*float64(i) + float64(j), 0, 0})
			require.NoError(Te, r.AddAtom(a))
			atoms = append(atoms, a)
		}
		for j := 1; j < len(atoms); j++ {
			_, err := S.NewBond(atoms[j-1], atoms[j])
			require.NoError(Te, err)
		}
		if prevC != nil {
			_, err := S.NewBond(prevC, atoms[0])
			require.NoError(Te, err)
		}
		prevC = atoms[2]
	}
	S.SetMetadata(map[string][]string{"HEADER": {"DIPEPTIDE"}})
	return S
}

func TestStoreRoundTrip(Te *testing.T) {
	s := memStore(Te)
	ctx := context.Background()
	S := dipeptide(Te, "gly-ala")
	id, err := s.Save(ctx, S)
	require.NoError(Te, err)
	fmt.Println("saved", id)

	R, err := s.Load(ctx, id, atomstruct.WithLogger(quiet()))
	require.NoError(Te, err)
	assert.Equal(Te, "gly-ala", R.Name())
	assert.Equal(Te, S.NumAtoms(), R.NumAtoms())
	assert.Equal(Te, S.NumBonds(), R.NumBonds())
	assert.Equal(Te, []string{"DIPEPTIDE"}, R.Metadata()["HEADER"])
	for i, a := range S.Atoms() {
		assert.Equal(Te, a.Coord(), R.Atoms()[i].Coord())
	}
	assert.Len(Te, R.Polymers(false, true), 1)

	m, err := s.Meta(ctx, id)
	require.NoError(Te, err)
	assert.Equal(Te, id, m.ID)
	assert.Equal(Te, 8, m.Atoms)
	assert.Equal(Te, 2, m.Residues)
	assert.Equal(Te, atomstruct.CurrentSessionVersion, m.Version)
	assert.Positive(Te, m.Bytes)
}

func TestStoreListDelete(Te *testing.T) {
	s := memStore(Te)
	ctx := context.Background()
	var ids []uuid.UUID
	for _, name := range []string{"one", "two", "three"} {
		id, err := s.Save(ctx, dipeptide(Te, name))
		require.NoError(Te, err)
		ids = append(ids, id)
	}
	list, err := s.List(ctx)
	require.NoError(Te, err)
	require.Len(Te, list, 3)
	names := map[string]bool{}
	for _, m := range list {
		names[m.Name] = true
	}
	assert.Equal(Te, map[string]bool{"one": true, "two": true, "three": true}, names)

	require.NoError(Te, s.Delete(ctx, ids[1]))
	list, err = s.List(ctx)
	require.NoError(Te, err)
	assert.Len(Te, list, 2)
	_, err = s.Load(ctx, ids[1])
	assert.True(Te, errors.Is(err, ErrNotFound), "got %v", err)
	err = s.Delete(ctx, ids[1])
	assert.True(Te, errors.Is(err, ErrNotFound), "got %v", err)
	_, err = s.Meta(ctx, uuid.New())
	assert.True(Te, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestStoreCancelled(Te *testing.T) {
	s := memStore(Te)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Save(ctx, dipeptide(Te, "x"))
	assert.ErrorIs(Te, err, context.Canceled)
	_, err = s.List(ctx)
	assert.ErrorIs(Te, err, context.Canceled)
}

func TestOpenNeedsPath(Te *testing.T) {
	_, err := Open(config.Store{CompressionLevel: 3}, nil)
	assert.Error(Te, err)
}

func TestStorePersists(Te *testing.T) {
	dir := Te.TempDir()
	cfg := config.Store{Path: dir, SyncWrites: true, CompressionLevel: 4}
	s, err := Open(cfg, quiet())
	require.NoError(Te, err)
	id, err := s.Save(context.Background(), dipeptide(Te, "kept"))
	require.NoError(Te, err)
	require.NoError(Te, s.Close())

	s, err = Open(cfg, quiet())
	require.NoError(Te, err)
	defer s.Close()
	R, err := s.Load(context.Background(), id, atomstruct.WithLogger(quiet()))
	require.NoError(Te, err)
	assert.Equal(Te, "kept", R.Name())
}
