/*
 * letters.go, part of atomstruct.
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
	"sort"
	"strings"
)

// Kind is the polymer family a residue name belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindProtein
	KindDeoxy
	KindRibo
)

func (k Kind) String() string {
	switch k {
	case KindProtein:
		return "Protein"
	case KindDeoxy:
		return "Deoxy"
	case KindRibo:
		return "Ribo"
	}
	return "Unknown"
}

var aminoMap = map[string]byte{
	"UNK": 'X',
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',

	// common modified or protonation-state names
	"MSE": 'M', "HID": 'H', "HIE": 'H', "HIP": 'H', "HSD": 'H', "HSE": 'H',
	"CYX": 'C', "ASH": 'D', "GLH": 'E', "LYN": 'K',

	"ASX": 'B', "GLX": 'Z',
}

var deoxyMap = map[string]byte{
	"DA": 'A', "DC": 'C', "DG": 'G', "DT": 'T', "DI": 'I', "DU": 'U', "DN": 'X',
}

var riboMap = map[string]byte{
	"A": 'A', "C": 'C', "G": 'G', "U": 'U', "I": 'I', "T": 'T',
	"N": 'X',
}

// Letter returns the one-letter code for a residue name and the family it
// belongs to. Unknown names give 'X' and KindUnknown.
func Letter(resName string) (byte, Kind) {
	name := strings.ToUpper(strings.TrimSpace(resName))
	if c, ok := aminoMap[name]; ok {
		return c, KindProtein
	}
	if c, ok := deoxyMap[name]; ok {
		return c, KindDeoxy
	}
	if c, ok := riboMap[name]; ok {
		return c, KindRibo
	}
	return 'X', KindUnknown
}

// FromResidueNames builds the one-letter string for a list of residue names.
func FromResidueNames(names []string) string {
	b := make([]byte, len(names))
	for i, n := range names {
		b[i], _ = Letter(n)
	}
	return string(b)
}

// KnownResidueNames returns every residue name Letter knows, sorted.
func KnownResidueNames() []string {
	ret := make([]string, 0, len(aminoMap)+len(deoxyMap)+len(riboMap))
	for _, m := range []map[string]byte{aminoMap, deoxyMap, riboMap} {
		for k := range m {
			ret = append(ret, k)
		}
	}
	sort.Strings(ret)
	return ret
}
