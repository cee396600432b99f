/*
 * assoc.go, part of atomstruct.
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

package seq

import (
	"errors"
	"fmt"
	"math"
)

// ErrAssocFailure is returned when a structure sequence can't be placed on a
// reference sequence within the allowed number of errors.
var ErrAssocFailure = errors.New("seq: association failure")

// AssocParams describes how a structure-derived sequence is broken up.
// Segments are runs of residues believed to be contiguous; Gaps[i] is the
// estimated number of missing residues between Segments[i] and Segments[i+1].
type AssocParams struct {
	EstLen   int
	Segments [][]byte
	Gaps     []int
}

// EstimateAssocParams splits chars into segments wherever the residue numbering
// jumps by more than one, or where connected (if not nil) says residue i is not
// linked to residue i+1. numbers must be as long as chars.
func EstimateAssocParams(chars []byte, numbers []int, connected []bool) AssocParams {
	var ap AssocParams
	if len(chars) == 0 {
		return ap
	}
	start := 0
	for i := 0; i < len(chars)-1; i++ {
		jump := numbers[i+1] - numbers[i]
		linked := connected == nil || connected[i]
		if jump <= 1 && linked {
			continue
		}
		gap := jump - 1
		if gap < 0 {
			gap = 0
		}
		ap.Segments = append(ap.Segments, chars[start:i+1])
		ap.Gaps = append(ap.Gaps, gap)
		start = i + 1
	}
	ap.Segments = append(ap.Segments, chars[start:])
	ap.EstLen = len(chars)
	for _, g := range ap.Gaps {
		ap.EstLen += g
	}
	return ap
}

// Assoc is the result of a successful association: Match[i] is the reference
// position of the ith structure character.
type Assoc struct {
	Match     []int
	NumErrors int
}

func mismatch(a, b byte) int {
	if a == b || a == 'X' || b == 'X' {
		return 0
	}
	return 1
}

// TryAssoc places every character of the segments, in order, on ref.
// A mismatch costs one error unless either character is 'X'. Skipping
// reference positions inside a segment costs one error per position;
// skipping them between segments, before the first or after the last, is free.
// If no placement has at most maxErrs errors, ErrAssocFailure is returned.
// The work is O(len(structure)*len(ref)) and stops early once every partial
// placement exceeds maxErrs.
func TryAssoc(ref []byte, ap AssocParams, maxErrs int) (Assoc, error) {
	var chars []byte
	var segStart []bool
	for _, s := range ap.Segments {
		for j, c := range s {
			chars = append(chars, c)
			segStart = append(segStart, j == 0)
		}
	}
	n, m := len(chars), len(ref)
	if n == 0 {
		return Assoc{}, nil
	}
	if n > m {
		return Assoc{}, fmt.Errorf("structure sequence longer than reference (%d > %d): %w", n, m, ErrAssocFailure)
	}
	const inf = math.MaxInt32
	dp := make([][]int32, n)
	for k := range dp {
		dp[k] = make([]int32, m)
	}
	for q := 0; q < m; q++ {
		dp[0][q] = int32(mismatch(chars[0], ref[q]))
	}
	for k := 1; k < n; k++ {
		prev, cur := dp[k-1], dp[k]
		best := int32(inf)
		rowMin := int32(inf)
		for q := 0; q < m; q++ {
			cur[q] = inf
			if q > 0 {
				// running minimum over p < q
				var cand int32
				if segStart[k] {
					cand = prev[q-1]
				} else {
					cand = prev[q-1] - int32(q-1)
				}
				if prev[q-1] < inf && cand < best {
					best = cand
				}
			}
			if best == inf {
				continue
			}
			v := best
			if !segStart[k] {
				v += int32(q - 1)
			}
			cur[q] = v + int32(mismatch(chars[k], ref[q]))
			if cur[q] < rowMin {
				rowMin = cur[q]
			}
		}
		if rowMin > int32(maxErrs) {
			return Assoc{}, fmt.Errorf("more than %d errors after %d residues: %w", maxErrs, k+1, ErrAssocFailure)
		}
	}
	last := dp[n-1]
	end, cost := -1, int32(inf)
	for q := 0; q < m; q++ {
		if last[q] < cost {
			end, cost = q, last[q]
		}
	}
	if end < 0 || cost > int32(maxErrs) {
		return Assoc{}, fmt.Errorf("best association has %d errors, %d allowed: %w", cost, maxErrs, ErrAssocFailure)
	}
	match := make([]int, n)
	match[n-1] = end
	for k := n - 1; k > 0; k-- {
		q := match[k]
		target := dp[k][q] - int32(mismatch(chars[k], ref[q]))
		found := -1
		//prefer the closest predecessor
		for p := q - 1; p >= 0; p-- {
			if dp[k-1][p] == inf {
				continue
			}
			v := dp[k-1][p]
			if !segStart[k] {
				v += int32(q - p - 1)
			}
			if v == target {
				found = p
				break
			}
		}
		if found < 0 {
			panic("seq: association traceback failed") //the forward pass guarantees a predecessor
		}
		match[k-1] = found
	}
	return Assoc{Match: match, NumErrors: int(cost)}, nil
}

// MaxErrors returns the error budget used to associate a structure sequence of
// length seqLen that has a total of gapSum estimated missing residues.
func MaxErrors(seqLen, gapSum int) int {
	e := seqLen / 10
	if gapSum > e {
		e = gapSum
	}
	if seqLen/2 < e {
		e = seqLen / 2
	}
	return e
}
