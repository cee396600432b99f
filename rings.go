/*
 * rings.go, part of atomstruct.
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
	"reflect"

	"github.com/rmera/atomstruct/chemgraph"
)

// Ring is a cycle of bonded atoms.
type Ring struct {
	atoms []*Atom //in walk order
	bonds []*Bond
}

// Atoms returns the ring atoms in the order they are found walking the ring.
func (R *Ring) Atoms() []*Atom { return R.atoms }

// Bonds returns the ring bonds; bond i joins atom i and atom i+1.
func (R *Ring) Bonds() []*Bond { return R.bonds }

func (R *Ring) Size() int { return len(R.atoms) }

// Contains reports whether a is in the ring.
func (R *Ring) Contains(a *Atom) bool {
	for _, v := range R.atoms {
		if v == a {
			return true
		}
	}
	return false
}

type ringKey struct {
	crossResidues    bool
	allSizeThreshold int
	ignore           uintptr //identity of the ignore map, 0 for nil
}

func mapIdentity(m map[*Residue]bool) uintptr {
	if m == nil {
		return 0
	}
	return reflect.ValueOf(m).Pointer()
}

// Rings returns the rings of the structure: for every bond in a cycle, the
// smallest rings containing it and, if allSizeThreshold is positive, every
// ring up to that size. Unless crossResidues is set, only bonds within a
// residue are considered. Atoms of residues in ignore are left out.
// The result is cached until the bond topology changes or the arguments
// differ; ignore is compared by identity. Atom.Rings and Bond.Rings are
// filled as a side effect.
func (S *Structure) Rings(crossResidues bool, allSizeThreshold int, ignore map[*Residue]bool) []*Ring {
	key := ringKey{crossResidues, allSizeThreshold, mapIdentity(ignore)}
	if S.ringsOK && S.ringsKey == key {
		return S.rings
	}
	S.metrics.recompute("rings")
	G := chemgraph.New()
	byID := make(map[int64]*Atom)
	for _, b := range S.bonds {
		a1, a2 := b.atoms[0], b.atoms[1]
		if !crossResidues && a1.residue != a2.residue {
			continue
		}
		if ignore != nil && (ignore[a1.residue] || ignore[a2.residue]) {
			continue
		}
		byID[a1.id] = a1
		byID[a2.id] = a2
		G.AddEdge(a1.id, a2.id)
	}
	for _, a := range S.atoms {
		a.rings = nil
	}
	for _, b := range S.bonds {
		b.rings = nil
	}
	found := G.Rings(allSizeThreshold)
	rings := make([]*Ring, 0, len(found))
	for _, cyc := range found {
		r := &Ring{atoms: make([]*Atom, len(cyc)), bonds: make([]*Bond, len(cyc))}
		for i, id := range cyc {
			r.atoms[i] = byID[id]
		}
		for i, a := range r.atoms {
			b := a.BondTo(r.atoms[(i+1)%len(r.atoms)])
			r.bonds[i] = b
			b.rings = append(b.rings, r)
			a.rings = append(a.rings, r)
		}
		rings = append(rings, r)
	}
	S.rings = rings
	S.ringsKey = key
	S.ringsIgnore = ignore //keeps the map, and so its identity, alive
	S.ringsOK = true
	return rings
}
