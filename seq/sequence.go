/*
 * sequence.go, part of atomstruct.
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

//Package seq implements one-letter-code sequences with gapped/ungapped index
//translation, residue name to letter mapping, and the association of a
//structure-derived sequence with a reference (SEQRES-like) sequence.
package seq

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultGapChars are the characters treated as gaps by new sequences.
const DefaultGapChars = ".-~"

var (
	// ErrOutOfRange is returned for indexes outside the sequence.
	ErrOutOfRange = errors.New("seq: index out of range")
	// ErrEmpty is returned when popping from an empty sequence.
	ErrEmpty = errors.New("seq: empty sequence")
)

// Sequence is a mutable buffer of one-letter codes. The ungapped view and the
// gapped/ungapped index maps are cached and invalidated by every mutation.
type Sequence struct {
	name     string
	contents []byte
	gapChars string

	ungapped []byte
	g2u      map[int]int
	u2g      []int
	cached   bool
}

// New returns a sequence with the given name and characters.
func New(name, chars string) *Sequence {
	return &Sequence{name: name, contents: []byte(chars), gapChars: DefaultGapChars}
}

func (S *Sequence) Name() string        { return S.name }
func (S *Sequence) SetName(name string) { S.name = name }

// Len returns the gapped length.
func (S *Sequence) Len() int { return len(S.contents) }

// At returns the ith (gapped) character.
func (S *Sequence) At(i int) byte { return S.contents[i] }

// Characters returns the gapped contents as a string.
func (S *Sequence) Characters() string { return string(S.contents) }

// Contents returns a copy of the gapped contents.
func (S *Sequence) Contents() []byte {
	ret := make([]byte, len(S.contents))
	copy(ret, S.contents)
	return ret
}

// GapChars returns the characters considered gaps.
func (S *Sequence) GapChars() string { return S.gapChars }

// SetGapChars changes the gap characters.
func (S *Sequence) SetGapChars(g string) {
	S.gapChars = g
	S.invalidate()
}

// IsGap reports whether c is a gap character for S.
func (S *Sequence) IsGap(c byte) bool {
	return strings.IndexByte(S.gapChars, c) >= 0
}

func (S *Sequence) invalidate() {
	S.cached = false
	S.ungapped = nil
	S.g2u = nil
	S.u2g = nil
}

//compute fills the three caches in one pass.
func (S *Sequence) compute() {
	if S.cached {
		return
	}
	S.ungapped = make([]byte, 0, len(S.contents))
	S.g2u = make(map[int]int, len(S.contents))
	S.u2g = make([]int, 0, len(S.contents))
	for i, c := range S.contents {
		if S.IsGap(c) {
			continue
		}
		S.g2u[i] = len(S.ungapped)
		S.u2g = append(S.u2g, i)
		S.ungapped = append(S.ungapped, c)
	}
	S.cached = true
}

// Ungapped returns the contents without gap characters.
func (S *Sequence) Ungapped() string {
	S.compute()
	return string(S.ungapped)
}

// GappedToUngapped translates a gapped index to the ungapped one. The second
// value is false for gap positions and out of range indexes.
func (S *Sequence) GappedToUngapped(i int) (int, bool) {
	S.compute()
	u, ok := S.g2u[i]
	return u, ok
}

// UngappedToGapped translates an ungapped index to the gapped one.
func (S *Sequence) UngappedToGapped(i int) (int, error) {
	S.compute()
	if i < 0 || i >= len(S.u2g) {
		return 0, fmt.Errorf("ungapped index %d (length %d): %w", i, len(S.u2g), ErrOutOfRange)
	}
	return S.u2g[i], nil
}

// Append adds chars at the end.
func (S *Sequence) Append(chars string) {
	S.contents = append(S.contents, chars...)
	S.invalidate()
}

// Prepend adds chars at the beginning.
func (S *Sequence) Prepend(chars string) {
	n := make([]byte, 0, len(chars)+len(S.contents))
	n = append(n, chars...)
	S.contents = append(n, S.contents...)
	S.invalidate()
}

// Insert puts chars before position i. i may equal Len().
func (S *Sequence) Insert(i int, chars string) error {
	if i < 0 || i > len(S.contents) {
		return fmt.Errorf("insert at %d (length %d): %w", i, len(S.contents), ErrOutOfRange)
	}
	n := make([]byte, 0, len(chars)+len(S.contents))
	n = append(n, S.contents[:i]...)
	n = append(n, chars...)
	S.contents = append(n, S.contents[i:]...)
	S.invalidate()
	return nil
}

// Set replaces the character at position i.
func (S *Sequence) Set(i int, c byte) error {
	if i < 0 || i >= len(S.contents) {
		return fmt.Errorf("set at %d (length %d): %w", i, len(S.contents), ErrOutOfRange)
	}
	S.contents[i] = c
	S.invalidate()
	return nil
}

// PopBack removes and returns the last character.
func (S *Sequence) PopBack() (byte, error) {
	if len(S.contents) == 0 {
		return 0, ErrEmpty
	}
	c := S.contents[len(S.contents)-1]
	S.contents = S.contents[:len(S.contents)-1]
	S.invalidate()
	return c, nil
}

// PopFront removes and returns the first character.
func (S *Sequence) PopFront() (byte, error) {
	if len(S.contents) == 0 {
		return 0, ErrEmpty
	}
	c := S.contents[0]
	S.contents = S.contents[1:]
	S.invalidate()
	return c, nil
}

// Clear empties the sequence.
func (S *Sequence) Clear() {
	S.contents = S.contents[:0]
	S.invalidate()
}

// Swap replaces the whole contents.
func (S *Sequence) Swap(chars string) {
	S.contents = []byte(chars)
	S.invalidate()
}

// Count returns the number of occurrences of c.
func (S *Sequence) Count(c byte) int {
	n := 0
	for _, v := range S.contents {
		if v == c {
			n++
		}
	}
	return n
}
