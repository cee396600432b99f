/*
 * gonum.go, part of atomstruct.
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

//gonum.go contains the Matrix type and the functions that deal with the underlying
//gonum mat.Dense directly.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space. Within the package, a "vector" is a row,
// i.e. the cartesian coordinates of a point.
type Matrix struct {
	*mat.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// The matrix shares data's memory.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return nil, Error{"Can't create an empty Matrix", []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// VecView returns a view of the ith vector of F.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// View returns a view of the r vectors starting at i.
func (F *Matrix) View(i, r int) *Matrix {
	v := F.Dense.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{v}
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Vec returns the ith vector of F as a Point.
func (F *Matrix) Vec(i int) Point {
	return Point{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetVec sets the ith vector of F to p.
func (F *Matrix) SetVec(i int, p Point) {
	F.Set(i, 0, p[0])
	F.Set(i, 1, p[1])
	F.Set(i, 2, p[2])
}

// SomeVecs puts in the receiver the rows of A whose indexes are in clist,
// in the same order as clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val >= ar {
			panic(ErrIndexOutOfRange)
		}
		F.SetRow(key, A.RawRowView(val))
	}
}

// SomeVecsSafe is SomeVecs returning an error instead of panicking.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case PanicMsg:
				err = Error{string(e), []string{"SomeVecsSafe"}, true}
			case mat.Error:
				err = Error{fmt.Sprintf("goChem/v3: Error in a gonum function: %s", e), []string{"SomeVecsSafe"}, true}
			default:
				panic(r)
			}
		}
	}()
	F.SomeVecs(A, clist)
	return err
}

// SetVecs sets the vectors of the receiver with indexes in clist to the
// corresponding vectors of A.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	_, fc := F.Dims()
	if ac != fc || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		F.SetRow(val, A.RawRowView(key))
	}
}

// Centroid returns the geometric center of the vectors in F.
func (F *Matrix) Centroid() Point {
	var p Point
	n := F.NVecs()
	if n == 0 {
		return p
	}
	for i := 0; i < 3; i++ {
		col := mat.Col(nil, i, F.Dense)
		p[i] = floats.Sum(col) / float64(n)
	}
	return p
}

// Distance returns the euclidean distance between vectors i and j of F.
func (F *Matrix) Distance(i, j int) float64 {
	return floats.Distance(F.RawRowView(i), F.RawRowView(j), 2)
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(F.Dense, mat.Squeeze()))
}
