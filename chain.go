/*
 * chain.go, part of atomstruct.
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
	"github.com/rmera/atomstruct/changes"
	"github.com/rmera/atomstruct/seq"
)

// Chain is a sequence whose positions are paired with residues of a
// structure. A nil residue marks a position known only from the input
// sequence records (unresolved in the structure).
type Chain struct {
	*seq.Sequence
	s           *Structure
	chainID     string
	residues    []*Residue
	resMap      map[*Residue]int
	fromSeqres  bool
	polymerType PolymerType
}

func newChain(s *Structure, chainID string) *Chain {
	return &Chain{Sequence: seq.New(chainID, ""), s: s, chainID: chainID, resMap: make(map[*Residue]int)}
}

func (C *Chain) track() {
	if C.s != nil {
		C.s.tracker.AddModified(changes.Chain, C, changes.ReasonSequence, changes.ReasonResidues)
	}
}

func (C *Chain) ChainID() string { return C.chainID }

// Structure returns the structure the chain belongs to, nil once the chain
// has lost all its residues.
func (C *Chain) Structure() *Structure { return C.s }

// Residues returns the residue of each position, nil for unresolved ones.
func (C *Chain) Residues() []*Residue { return C.residues }

// ExistingResidues returns the resolved residues in order.
func (C *Chain) ExistingResidues() []*Residue {
	ret := make([]*Residue, 0, len(C.resMap))
	for _, r := range C.residues {
		if r != nil {
			ret = append(ret, r)
		}
	}
	return ret
}

// ResidueIndex returns the position of r in the chain.
func (C *Chain) ResidueIndex(r *Residue) (int, bool) {
	i, ok := C.resMap[r]
	return i, ok
}

// FromSeqres reports whether the characters come from the input sequence
// records rather than from the structure alone.
func (C *Chain) FromSeqres() bool { return C.fromSeqres }

func (C *Chain) PolymerType() PolymerType { return C.polymerType }

func (C *Chain) rebuildMap() {
	C.resMap = make(map[*Residue]int, len(C.residues))
	for i, r := range C.residues {
		if r != nil {
			C.resMap[r] = i
		}
	}
}

func residueLetters(residues []*Residue) string {
	b := make([]byte, len(residues))
	for i, r := range residues {
		b[i] = 'X'
		if r != nil {
			b[i], _ = seq.Letter(r.name)
		}
	}
	return string(b)
}

// BulkSet replaces the chain's contents. With empty chars, the characters are
// derived from the residue names. Otherwise chars must be as long as residues.
func (C *Chain) BulkSet(residues []*Residue, chars string) error {
	if chars == "" {
		chars = residueLetters(residues)
	}
	if len(chars) != len(residues) {
		return newError(KindInvalidArgument, "Chain.BulkSet", "%d characters for %d residues", len(chars), len(residues))
	}
	for _, r := range C.residues {
		if r != nil && r.chain == C {
			r.chain = nil
		}
	}
	C.residues = append([]*Residue(nil), residues...)
	C.Swap(chars)
	C.rebuildMap()
	for _, r := range C.residues {
		if r != nil {
			r.chain = C
		}
	}
	C.track()
	return nil
}

// PushBack appends r, taking it away from any other chain.
func (C *Chain) PushBack(r *Residue) {
	if r.chain != nil {
		r.chain.RemoveResidue(r)
	}
	c, _ := seq.Letter(r.name)
	C.Append(string(c))
	C.resMap[r] = len(C.residues)
	C.residues = append(C.residues, r)
	r.chain = C
	C.track()
}

// PushFront prepends r, taking it away from any other chain.
func (C *Chain) PushFront(r *Residue) {
	if r.chain != nil {
		r.chain.RemoveResidue(r)
	}
	c, _ := seq.Letter(r.name)
	C.Prepend(string(c))
	C.residues = append([]*Residue{r}, C.residues...)
	C.rebuildMap()
	r.chain = C
	C.track()
}

// PopBack removes the last position and returns its residue (maybe nil).
func (C *Chain) PopBack() (*Residue, error) {
	if _, err := C.Sequence.PopBack(); err != nil {
		return nil, wrapError(KindOutOfRange, "Chain.PopBack", err, "chain %s", C.chainID)
	}
	r := C.residues[len(C.residues)-1]
	C.residues = C.residues[:len(C.residues)-1]
	C.afterRemoval(r)
	return r, nil
}

// PopFront removes the first position and returns its residue (maybe nil).
func (C *Chain) PopFront() (*Residue, error) {
	if _, err := C.Sequence.PopFront(); err != nil {
		return nil, wrapError(KindOutOfRange, "Chain.PopFront", err, "chain %s", C.chainID)
	}
	r := C.residues[0]
	C.residues = C.residues[1:]
	C.rebuildMap()
	C.afterRemoval(r)
	return r, nil
}

func (C *Chain) afterRemoval(r *Residue) {
	if r != nil {
		delete(C.resMap, r)
		if r.chain == C {
			r.chain = nil
		}
	}
	C.track()
	C.detachIfEmpty()
}

// RemoveResidue turns the position of r into an unresolved one. A chain left
// without resolved residues is removed from its structure.
func (C *Chain) RemoveResidue(r *Residue) {
	i, ok := C.resMap[r]
	if !ok {
		return
	}
	C.residues[i] = nil
	delete(C.resMap, r)
	if r.chain == C {
		r.chain = nil
	}
	C.track()
	C.detachIfEmpty()
}

// SetResidue puts r (maybe nil) at position i with character c. A position
// equal to the chain length appends.
func (C *Chain) SetResidue(i int, r *Residue, c byte) error {
	if i < 0 || i > len(C.residues) {
		return newError(KindOutOfRange, "Chain.SetResidue", "position %d in a chain of %d", i, len(C.residues))
	}
	if i == len(C.residues) {
		C.residues = append(C.residues, r)
		C.Append(string(c))
	} else {
		if old := C.residues[i]; old != nil {
			delete(C.resMap, old)
			if old.chain == C {
				old.chain = nil
			}
		}
		C.residues[i] = r
		if err := C.Set(i, c); err != nil {
			return wrapError(KindOutOfRange, "Chain.SetResidue", err, "chain %s", C.chainID)
		}
	}
	if r != nil {
		C.resMap[r] = i
		r.chain = C
	}
	C.track()
	if r == nil {
		C.detachIfEmpty()
	}
	return nil
}

// SetFromSeqres sets whether the contents come from the input sequence. Going
// from true to false drops the unresolved positions.
func (C *Chain) SetFromSeqres(fs bool) {
	if fs == C.fromSeqres {
		return
	}
	if C.fromSeqres && len(C.resMap) != len(C.residues) {
		var res []*Residue
		var chars []byte
		for i, r := range C.residues {
			if r == nil {
				continue
			}
			res = append(res, r)
			chars = append(chars, C.At(i))
		}
		C.residues = res
		C.Swap(string(chars))
		C.rebuildMap()
	}
	C.fromSeqres = fs
	C.track()
}

func (C *Chain) detachIfEmpty() {
	if len(C.resMap) > 0 || C.s == nil {
		return
	}
	C.s.removeChain(C)
	C.s = nil
}
