/*
 * altlocs.go, part of atomstruct.
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
	"gonum.org/v1/gonum/stat"
)

// BestAltLocs returns, for every residue with alternate locations, the code
// that should be shown. Residues linked through bonded atoms with the same
// set of codes are ranked together: highest mean occupancy wins, then lowest
// mean B-factor, then the alphabetically first code.
func (S *Structure) BestAltLocs() map[*Residue]byte {
	if S.bestAltLocs != nil && !S.altLocsDirty {
		return S.bestAltLocs
	}
	S.metrics.recompute("alt_locs")
	best := make(map[*Residue]byte)
	seen := make(map[*Residue]bool)
	for _, r := range S.residues {
		if seen[r] {
			continue
		}
		seen[r] = true
		var codes []byte
		for _, a := range r.atoms {
			if codes = a.AltLocs(); len(codes) > 0 {
				break
			}
		}
		if len(codes) == 0 {
			continue
		}
		group := []*Residue{r}
		occ := make(map[byte][]float64)
		bf := make(map[byte][]float64)
		for todo := []*Residue{r}; len(todo) > 0; {
			cr := todo[len(todo)-1]
			todo = todo[:len(todo)-1]
			for _, a := range cr.atoms {
				hasAll := true
				for _, c := range codes {
					info, ok := a.altLocs[c]
					if !ok {
						hasAll = false
						break
					}
					occ[c] = append(occ[c], info.occupancy)
					bf[c] = append(bf[c], info.bfactor)
				}
				if !hasAll {
					continue
				}
				for _, n := range a.neighbors {
					nr := n.residue
					if nr == nil || nr == cr || seen[nr] || !sameCodes(n.AltLocs(), codes) {
						continue
					}
					seen[nr] = true
					todo = append(todo, nr)
					group = append(group, nr)
				}
			}
		}
		code := rankAltLocs(codes, occ, bf)
		for _, gr := range group {
			best[gr] = code
		}
	}
	S.bestAltLocs = best
	S.altLocsDirty = false
	return best
}

// rankAltLocs picks the best code. codes must be sorted.
func rankAltLocs(codes []byte, occ, bf map[byte][]float64) byte {
	var best byte
	var bestOcc, bestBf float64
	for _, c := range codes {
		if len(occ[c]) == 0 {
			continue
		}
		o := stat.Mean(occ[c], nil)
		b := stat.Mean(bf[c], nil)
		if best != 0 {
			if o < bestOcc || (o == bestOcc && b >= bestBf) {
				continue
			}
		}
		best, bestOcc, bestBf = c, o, b
	}
	return best
}

func sameCodes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// UseBestAltLocs switches every residue with alternate locations to its best code.
func (S *Structure) UseBestAltLocs() {
	best := S.BestAltLocs()
	for _, r := range S.residues {
		if c, ok := best[r]; ok {
			r.SetAltLoc(c)
		}
	}
}
