/*
 * seq_test.go, part of atomstruct.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGappedUngapped(Te *testing.T) {
	s := New("test", "AC-DE..F")
	assert.Equal(Te, "ACDEF", s.Ungapped())
	for g := 0; g < s.Len(); g++ {
		u, ok := s.GappedToUngapped(g)
		if s.IsGap(s.At(g)) {
			assert.False(Te, ok, "gap position %d", g)
			continue
		}
		require.True(Te, ok)
		back, err := s.UngappedToGapped(u)
		require.NoError(Te, err)
		assert.Equal(Te, g, back)
	}
	_, err := s.UngappedToGapped(5)
	assert.True(Te, errors.Is(err, ErrOutOfRange))

	//inserting must invalidate both maps
	require.NoError(Te, s.Insert(0, "-G"))
	assert.Equal(Te, "GACDEF", s.Ungapped())
	g, err := s.UngappedToGapped(0)
	require.NoError(Te, err)
	assert.Equal(Te, 1, g)
	u, ok := s.GappedToUngapped(9)
	require.True(Te, ok)
	assert.Equal(Te, 5, u)
	fmt.Println("after insert", s.Characters())
}

func TestMutationsInvalidate(Te *testing.T) {
	s := New("m", "AB")
	assert.Equal(Te, "AB", s.Ungapped())
	s.Append("-C")
	assert.Equal(Te, "ABC", s.Ungapped())
	s.Prepend("Z")
	assert.Equal(Te, "ZABC", s.Ungapped())
	c, err := s.PopBack()
	require.NoError(Te, err)
	assert.Equal(Te, byte('C'), c)
	assert.Equal(Te, "ZAB", s.Ungapped())
	c, err = s.PopFront()
	require.NoError(Te, err)
	assert.Equal(Te, byte('Z'), c)
	assert.Equal(Te, "AB", s.Ungapped())
	require.NoError(Te, s.Set(0, '.'))
	assert.Equal(Te, "B", s.Ungapped())
	s.Swap("QQ")
	assert.Equal(Te, "QQ", s.Ungapped())
	s.Clear()
	assert.Equal(Te, "", s.Ungapped())
	_, err = s.PopBack()
	assert.ErrorIs(Te, err, ErrEmpty)
	assert.ErrorIs(Te, s.Insert(3, "A"), ErrOutOfRange)
}

func TestLetters(Te *testing.T) {
	c, k := Letter("ala")
	assert.Equal(Te, byte('A'), c)
	assert.Equal(Te, KindProtein, k)
	c, k = Letter("DG")
	assert.Equal(Te, byte('G'), c)
	assert.Equal(Te, KindDeoxy, k)
	_, k = Letter("U")
	assert.Equal(Te, KindRibo, k)
	c, k = Letter("HOH")
	assert.Equal(Te, byte('X'), c)
	assert.Equal(Te, KindUnknown, k)
	assert.Equal(Te, "MKXG", FromResidueNames([]string{"MET", "LYS", "UNK", "GLY"}))
}

func TestEstimateAssocParams(Te *testing.T) {
	ap := EstimateAssocParams([]byte("MKTKQR"), []int{1, 2, 3, 8, 9, 10}, nil)
	require.Len(Te, ap.Segments, 2)
	assert.Equal(Te, "MKT", string(ap.Segments[0]))
	assert.Equal(Te, "KQR", string(ap.Segments[1]))
	assert.Equal(Te, []int{4}, ap.Gaps)
	assert.Equal(Te, 10, ap.EstLen)
	//a chain break without a numbering jump
	ap = EstimateAssocParams([]byte("ABC"), []int{1, 2, 3}, []bool{true, false})
	require.Len(Te, ap.Segments, 2)
	assert.Equal(Te, []int{0}, ap.Gaps)
}

func TestTryAssoc(Te *testing.T) {
	ref := []byte("MKTAYIAKQR")
	ap := EstimateAssocParams([]byte("MKTKQR"), []int{1, 2, 3, 8, 9, 10}, nil)
	a, err := TryAssoc(ref, ap, MaxErrors(6, 4))
	require.NoError(Te, err)
	assert.Equal(Te, []int{0, 1, 2, 7, 8, 9}, a.Match)
	assert.Equal(Te, 0, a.NumErrors)

	//'X' matches anything
	ap = EstimateAssocParams([]byte("MXT"), []int{1, 2, 3}, nil)
	a, err = TryAssoc(ref, ap, 0)
	require.NoError(Te, err)
	assert.Equal(Te, []int{0, 1, 2}, a.Match)

	//a gap inside a segment is an error
	ap = EstimateAssocParams([]byte("MKAY"), []int{1, 2, 3, 4}, nil)
	_, err = TryAssoc(ref, ap, 0)
	assert.ErrorIs(Te, err, ErrAssocFailure)
	a, err = TryAssoc(ref, ap, 1)
	require.NoError(Te, err)
	assert.Equal(Te, []int{0, 1, 3, 4}, a.Match)
	assert.Equal(Te, 1, a.NumErrors)

	_, err = TryAssoc([]byte("AB"), ap, 10)
	assert.ErrorIs(Te, err, ErrAssocFailure)
}

func TestMaxErrors(Te *testing.T) {
	assert.Equal(Te, 10, MaxErrors(100, 3))
	assert.Equal(Te, 25, MaxErrors(100, 25))
	assert.Equal(Te, 50, MaxErrors(100, 80))
}

// view reads every cached quantity of S.
func view(S *Sequence) (string, []int, []int) {
	var g2u, u2g []int
	for i := 0; i < S.Len(); i++ {
		u, ok := S.GappedToUngapped(i)
		if !ok {
			u = -1
		}
		g2u = append(g2u, u)
	}
	for i := 0; ; i++ {
		g, err := S.UngappedToGapped(i)
		if err != nil {
			break
		}
		u2g = append(u2g, g)
	}
	return S.Ungapped(), g2u, u2g
}

func TestCachesMatchFreshSequence(Te *testing.T) {
	cases := map[string]func(S *Sequence){
		"Append":      func(S *Sequence) { S.Append("-W") },
		"Prepend":     func(S *Sequence) { S.Prepend("M.") },
		"Insert":      func(S *Sequence) { require.NoError(Te, S.Insert(2, "--")) },
		"Set":         func(S *Sequence) { require.NoError(Te, S.Set(1, 'K')) },
		"SetGap":      func(S *Sequence) { require.NoError(Te, S.Set(0, '.')) },
		"PopBack":     func(S *Sequence) { S.PopBack() },
		"PopFront":    func(S *Sequence) { S.PopFront() },
		"Swap":        func(S *Sequence) { S.Swap("A-C") },
		"Clear":       func(S *Sequence) { S.Clear() },
		"SetGapChars": func(S *Sequence) { S.SetGapChars("-") },
	}
	for name, mutate := range cases {
		S := New("s", "G-AS.T")
		view(S)
		mutate(S)
		fresh := New("s", S.Characters())
		fresh.SetGapChars(S.GapChars())
		u1, g2u1, u2g1 := view(S)
		u2, g2u2, u2g2 := view(fresh)
		assert.Equal(Te, u2, u1, name)
		assert.Equal(Te, g2u2, g2u1, name)
		assert.Equal(Te, u2g2, u2g1, name)
	}
}
