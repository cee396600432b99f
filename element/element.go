/*
 * element.go, part of atomstruct.
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

//Package element holds per-element data (symbols, masses, radii, bonding limits)
//used across atomstruct. Elements are identified by their atomic number.
package element

import "strings"

// Element is an atomic number. The zero value is the "lone pair" pseudo-element,
// which is also what unknown symbols map to.
type Element int

const (
	LonePair Element = 0
	H        Element = 1
	He       Element = 2
	C        Element = 6
	N        Element = 7
	O        Element = 8
	F        Element = 9
	Na       Element = 11
	Mg       Element = 12
	P        Element = 15
	S        Element = 16
	Cl       Element = 17
	K        Element = 19
	Ca       Element = 20
	Fe       Element = 26
	Zn       Element = 30
	Br       Element = 35
	I        Element = 53
)

var symbols = [...]string{
	"LP", "H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var bySymbol = func() map[string]Element {
	m := make(map[string]Element, len(symbols))
	for i, s := range symbols {
		m[strings.ToUpper(s)] = Element(i)
	}
	return m
}()

// FromSymbol returns the element with the given symbol, ignoring case.
// Deuterium and tritium are mapped to hydrogen. Unknown symbols give LonePair.
func FromSymbol(sym string) Element {
	sym = strings.ToUpper(strings.TrimSpace(sym))
	switch sym {
	case "D", "T":
		return H
	}
	return bySymbol[sym]
}

// FromNumber returns the element with atomic number n, or LonePair if
// n is out of range.
func FromNumber(n int) Element {
	if n < 0 || n >= len(symbols) {
		return LonePair
	}
	return Element(n)
}

func (e Element) Number() int { return int(e) }

func (e Element) Symbol() string {
	if e < 0 || int(e) >= len(symbols) {
		return symbols[0]
	}
	return symbols[e]
}

func (e Element) String() string { return e.Symbol() }

// Mass in atomic mass units. Elements without tabulated data return 0.
func (e Element) Mass() float64 {
	return mass[e.Symbol()]
}

// CovalentRadius returns the covalent radius in A, 0 if not tabulated.
func (e Element) CovalentRadius() float64 {
	return covrad[e.Symbol()]
}

// VdwRadius returns the van der Waals radius in A. Elements without
// tabulated data get 1.8.
func (e Element) VdwRadius() float64 {
	if r, ok := vdwrad[e.Symbol()]; ok {
		return r
	}
	return 1.8
}

// MaxBonds is the maximum number of covalent bonds the element is allowed
// when bonds are assigned from distances. 0 means unchecked.
func (e Element) MaxBonds() int {
	return maxBonds[e.Symbol()]
}

func (e Element) IsNobleGas() bool {
	switch e {
	case 2, 10, 18, 36, 54, 86, 118:
		return true
	}
	return false
}

func (e Element) IsHalogen() bool {
	switch e {
	case 9, 17, 35, 53, 85, 117:
		return true
	}
	return false
}

func (e Element) IsMetal() bool {
	n := int(e)
	switch {
	case n == 3 || n == 4 || n == 11 || n == 12 || n == 13:
		return true
	case n >= 19 && n <= 31:
		return true
	case n >= 37 && n <= 50:
		return true
	case n >= 55 && n <= 84:
		return true
	case n >= 87 && n <= 103:
		return true
	}
	return false
}

//Masses for the commonly found elements.
var mass = map[string]float64{
	"H":  1.008,
	"He": 4.003,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Ne": 20.18,
	"Na": 22.99,
	"Mg": 24.30,
	"Al": 26.98,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"Ar": 39.95,
	"K":  39.1,
	"Ca": 40.08,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Se": 78.96,
	"Br": 79.904,
	"Kr": 83.80,
	"Mo": 95.95,
	"Cd": 112.41,
	"I":  126.90,
	"Xe": 131.29,
	"Pt": 195.08,
	"Au": 196.97,
	"Hg": 200.59,
}

//Covalent radii from Cordero et al., 2008 (DOI:10.1039/B801115J)
var covrad = map[string]float64{
	"H":  0.4, // 0.31, enlarged. H only takes one bond so extra ones get pruned.
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //sp3
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"K":  2.03,
	"Ca": 1.76,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.5,  //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Se": 1.2,
	"Br": 1.2,
	"Mo": 1.54,
	"Cd": 1.44,
	"I":  1.39,
	"Pt": 1.36,
	"Au": 1.36,
	"Hg": 1.32,
}

//van der Waals radii from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
var vdwrad = map[string]float64{
	"H":  1.10,
	"He": 1.40,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"Ne": 1.54,
	"Na": 2.27,
	"Mg": 1.73,
	"Si": 2.10,
	"P":  1.80,
	"S":  1.80,
	"Cl": 1.75,
	"Ar": 1.88,
	"K":  2.75,
	"Ca": 2.31,
	"Cr": 1.97,
	"Mn": 1.96,
	"Fe": 1.96,
	"Co": 1.95,
	"Cu": 2.00,
	"Zn": 2.02,
	"Se": 1.90,
	"Br": 1.83,
	"Kr": 2.02,
	"Be": 1.53,
	"I":  1.98,
	"Xe": 2.16,
}

//A value of 0 (or absence) means the element is not checked.
var maxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}
