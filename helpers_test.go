/*
 * helpers_test.go, part of atomstruct.
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
	"io"
	"log/slog"

	"github.com/rmera/atomstruct/element"
	v3 "github.com/rmera/atomstruct/v3"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStructure(opts ...Option) *Structure {
	return NewStructure(append([]Option{WithLogger(quietLogger()), WithName("test")}, opts...)...)
}

// addAtom creates an atom at p and puts it in r.
func addAtom(S *Structure, r *Residue, name, sym string, p v3.Point) *Atom {
	a := S.NewAtom(name, element.FromSymbol(sym))
	a.SetCoord(p)
	if r != nil {
		if err := r.AddAtom(a); err != nil {
			panic(err)
		}
	}
	return a
}

func mustBond(S *Structure, a1, a2 *Atom) *Bond {
	b, err := S.NewBond(a1, a2)
	if err != nil {
		panic(err)
	}
	return b
}

// addPeptide appends a backbone-only peptide (N, CA, C, O per residue) with
// the given residue names and numbers. Consecutive residues are joined by a
// peptide bond only when their numbers are consecutive.
func addPeptide(S *Structure, chainID string, names []string, numbers []int) []*Residue {
	res := make([]*Residue, len(names))
	var prevC *Atom
	for i, name := range names {
		r, err := S.NewResidue(name, chainID, numbers[i], ' ', nil, false)
		if err != nil {
			panic(err)
		}
		x := 3.8 * float64(numbers[i])
		n := addAtom(S, r, "N", "N", v3.Point{x, 0, 0})
		ca := addAtom(S, r, "CA", "C", v3.Point{x + 1.46, 0, 0})
		c := addAtom(S, r, "C", "C", v3.Point{x + 2.0, 1.4, 0})
		o := addAtom(S, r, "O", "O", v3.Point{x + 2.0, 2.6, 0})
		mustBond(S, n, ca)
		mustBond(S, ca, c)
		mustBond(S, c, o)
		if prevC != nil && numbers[i] == numbers[i-1]+1 {
			mustBond(S, prevC, n)
		}
		prevC = c
		res[i] = r
	}
	return res
}

func addWater(S *Structure, chainID string, number int, at v3.Point) *Residue {
	r, err := S.NewResidue("HOH", chainID, number, ' ', nil, false)
	if err != nil {
		panic(err)
	}
	o := addAtom(S, r, "O", "O", at)
	h1 := addAtom(S, r, "H1", "H", at.Add(v3.Point{0.96, 0, 0}))
	h2 := addAtom(S, r, "H2", "H", at.Add(v3.Point{-0.24, 0.93, 0}))
	mustBond(S, o, h1)
	mustBond(S, o, h2)
	return r
}

func addIon(S *Structure, name, sym, chainID string, number int, at v3.Point) *Atom {
	r, err := S.NewResidue(name, chainID, number, ' ', nil, false)
	if err != nil {
		panic(err)
	}
	return addAtom(S, r, name, sym, at)
}

// recorder is a destruction observer that keeps every batch.
type recorder struct {
	batches []map[any]struct{}
}

func (R *recorder) DestructorsDone(destroyed map[any]struct{}) {
	R.batches = append(R.batches, destroyed)
}
