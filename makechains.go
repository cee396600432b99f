/*
 * makechains.go, part of atomstruct.
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
	"bytes"
	"errors"

	"github.com/rmera/atomstruct/changes"
	"github.com/rmera/atomstruct/seq"
)

// Chains returns the structure's chains, making them if needed.
func (S *Structure) Chains() []*Chain {
	if !S.chainsMade {
		S.MakeChains()
	}
	return S.chains
}

func (S *Structure) removeChain(c *Chain) {
	for i, v := range S.chains {
		if v == c {
			S.chains = append(S.chains[:i], S.chains[i+1:]...)
			S.tracker.AddDeleted(changes.Chain, c)
			return
		}
	}
}

// MakeChains (re)builds the chains from the polymers. A chain ID used by a
// single polymer is matched against the input sequence records for that ID,
// if any; when the match fails the chain keeps the structure-only sequence.
func (S *Structure) MakeChains() {
	S.metrics.recompute("chains")
	for _, c := range S.chains {
		for _, r := range c.residues {
			if r != nil && r.chain == c {
				r.chain = nil
			}
		}
		S.tracker.AddDeleted(changes.Chain, c)
	}
	S.chains = nil
	S.chainsMade = true
	polys := S.Polymers(true, true)
	unique := make(map[string]bool)
	if len(S.inputSeqInfo) > 0 {
		count := make(map[string]int)
		for _, p := range polys {
			count[p.Residues[0].chainID]++
		}
		for k, v := range count {
			unique[k] = v == 1
		}
	}
	for _, p := range polys {
		chainID := p.Residues[0].chainID
		c := newChain(S, chainID)
		c.polymerType = p.Type
		S.chains = append(S.chains, c)
		S.tracker.AddCreated(changes.Chain, c)
		c.BulkSet(p.Residues, "")
		names, ok := S.inputSeqInfo[chainID]
		if !ok || !unique[chainID] {
			continue
		}
		if err := S.assocSeqres(c, names); err != nil {
			S.logger.Warn("falling back to structure sequence", "chain", chainID, "structure", S.name, "err", err)
		}
	}
}

// assocSeqres tries to lay the chain over the canonical sequence given by the
// residue names. On success the chain gets the canonical characters with nil
// slots for unresolved residues.
func (S *Structure) assocSeqres(c *Chain, names []string) error {
	src := S.inputSeqSource
	if src == "" {
		src = "input sequence"
	}
	ref := []byte(seq.FromResidueNames(names))
	chars := c.Contents()
	n := len(chars)
	if len(ref) == n {
		c.SetFromSeqres(true)
		return nil
	}
	if len(ref) < n {
		S.logger.Warn(src+" is incomplete, ignoring it as basis for sequence", "chain", c.chainID, "structure", S.name)
		return nil
	}
	//standard residues may have been removed without updating the records
	if bytes.Count(chars, []byte{'X'}) == n && !bytes.Contains(ref, chars) {
		S.logger.Warn("residues corresponding to "+src+" are missing, ignoring it as basis for sequence", "chain", c.chainID, "structure", S.name)
		return nil
	}
	numbers := make([]int, n)
	connected := make([]bool, n)
	for i, r := range c.residues {
		numbers[i] = r.number
		if i+1 < n {
			connected[i] = r.ConnectsTo(c.residues[i+1])
		}
	}
	ap := seq.EstimateAssocParams(chars, numbers, connected[:max(n-1, 0)])
	ref = compensateXs(ref, ap)
	if ap.EstLen < len(ref) {
		ap.EstLen = len(ref)
	}
	gapSum := 0
	for _, g := range ap.Gaps {
		gapSum += g
	}
	assoc, err := seq.TryAssoc(ref, ap, seq.MaxErrors(n, gapSum))
	if err != nil {
		c.SetFromSeqres(false)
		if errors.Is(err, seq.ErrAssocFailure) {
			return wrapError(KindAssocFailure, "Structure.assocSeqres", err, "chain %s", c.chainID)
		}
		return errDecorate(err, "Structure.assocSeqres")
	}
	slots := make([]*Residue, len(ref))
	for i, pos := range assoc.Match {
		slots[pos] = c.residues[i]
	}
	c.fromSeqres = true
	return c.BulkSet(slots, string(ref))
}

// compensateXs pads the canonical sequence with 'X' when the structure starts
// or ends with all-X segments that SEQRES has squeezed against the real
// sequence despite the residues missing in between.
func compensateXs(ref []byte, ap seq.AssocParams) []byte {
	allX := func(s []byte) bool {
		for _, c := range s {
			if c != 'X' {
				return false
			}
		}
		return true
	}
	segs := ap.Segments
	existing, additional := 0, 0
	for i := 0; i+1 < len(segs); i++ {
		if !allX(segs[i]) {
			break
		}
		existing += len(segs[i])
		additional += ap.Gaps[i]
	}
	if existing > 0 && len(ref) >= existing && allX(ref[:existing]) {
		ref = append(bytes.Repeat([]byte{'X'}, additional), ref...)
	}
	existing, additional = 0, 0
	for i := len(segs) - 1; i > 0; i-- {
		if !allX(segs[i]) {
			break
		}
		existing += len(segs[i])
		additional += ap.Gaps[i-1]
	}
	if existing > 0 && len(ref) >= existing && allX(ref[len(ref)-existing:]) {
		ref = append(ref, bytes.Repeat([]byte{'X'}, additional)...)
	}
	return ref
}
