/*
 * gocoords.go, part of atomstruct.
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

package v3

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const appzero float64 = 0.000000000001 //Everything equal or less than this is considered zero.

// Point is a single position in 3D space.
type Point [3]float64

func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

func (p Point) Add(q Point) Point {
	return Point{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

func (p Point) Scale(f float64) Point {
	return Point{p[0] * f, p[1] * f, p[2] * f}
}

func (p Point) Dot(q Point) float64 {
	return floats.Dot(p[:], q[:])
}

func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Norm()
}

// SqDistance returns the squared distance between p and q.
func (p Point) SqDistance(q Point) float64 {
	d := p.Sub(q)
	return d.Dot(d)
}

// Unit returns p normalized. A zero vector is returned unchanged.
func (p Point) Unit() Point {
	n := p.Norm()
	if n <= appzero {
		return p
	}
	return p.Scale(1 / n)
}

// Buffer is growable coordinate storage, one vector per index.
// Matrix views share the Buffer's memory until the next Grow.
type Buffer struct {
	data []float64
}

// NewBuffer returns a zero-filled Buffer holding n vectors.
func NewBuffer(n int) *Buffer {
	return &Buffer{data: make([]float64, 3*n)}
}

// Len returns the number of vectors in the buffer.
func (B *Buffer) Len() int {
	return len(B.data) / 3
}

// Grow makes room for at least n vectors. New vectors are zero.
func (B *Buffer) Grow(n int) {
	if n <= B.Len() {
		return
	}
	if cap(B.data) >= 3*n {
		old := len(B.data)
		B.data = B.data[:3*n]
		for i := old; i < len(B.data); i++ {
			B.data[i] = 0
		}
		return
	}
	nd := make([]float64, 3*n, 6*n)
	copy(nd, B.data)
	B.data = nd
}

func (B *Buffer) At(i int) Point {
	if i < 0 || i >= B.Len() {
		panic(ErrIndexOutOfRange)
	}
	return Point{B.data[3*i], B.data[3*i+1], B.data[3*i+2]}
}

func (B *Buffer) Set(i int, p Point) {
	if i < 0 || i >= B.Len() {
		panic(ErrIndexOutOfRange)
	}
	copy(B.data[3*i:3*i+3], p[:])
}

// Raw returns the flat underlying slice.
func (B *Buffer) Raw() []float64 {
	return B.data
}

// Matrix returns a Matrix view of the buffer, or nil if it is empty.
func (B *Buffer) Matrix() *Matrix {
	if len(B.data) == 0 {
		return nil
	}
	m, err := NewMatrix(B.data)
	if err != nil {
		panic(err) //len(data) is always a multiple of 3
	}
	return m
}

// Copy returns a deep copy of B.
func (B *Buffer) Copy() *Buffer {
	nd := make([]float64, len(B.data))
	copy(nd, B.data)
	return &Buffer{data: nd}
}

//Errors

// Error is the error type for the v3 package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return err.message
}

// Decorate adds dec to the decoration slice and returns it. An empty dec
// only returns the current decoration.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("atomstruct/v3: A Matrix should have 3 columns")
	ErrShape           = PanicMsg("atomstruct/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("atomstruct/v3: index out of range")
)
