/*
 * templates.go, part of atomstruct.
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
	"strings"

	"github.com/rmera/atomstruct/seq"
)

// Linkage describes a polymeric bond: atom From of the upstream residue
// bonded to atom To of the downstream one.
type Linkage struct {
	From string
	To   string
	Type PolymerType
}

// TemplateRegistry holds the residue knowledge the structure needs: polymer
// linkages, residue polymer types and solvent names. A registry is owned by
// whoever creates it and passed to structures with WithTemplates.
type TemplateRegistry struct {
	linkages []Linkage
	resTypes map[string]PolymerType
	solvent  map[string]bool
}

// NewTemplateRegistry returns an empty registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{resTypes: make(map[string]PolymerType), solvent: make(map[string]bool)}
}

// DefaultTemplates returns a registry with the peptide and nucleotide
// linkages, the standard residues and the usual solvent names.
func DefaultTemplates() *TemplateRegistry {
	T := NewTemplateRegistry()
	T.AddLinkage(Linkage{From: "C", To: "N", Type: PTAmino})
	T.AddLinkage(Linkage{From: "O3'", To: "P", Type: PTNucleic})
	T.AddLinkage(Linkage{From: "O3*", To: "P", Type: PTNucleic})
	for _, name := range seq.KnownResidueNames() {
		_, k := seq.Letter(name)
		switch k {
		case seq.KindProtein:
			T.SetResidueType(name, PTAmino)
		case seq.KindDeoxy, seq.KindRibo:
			T.SetResidueType(name, PTNucleic)
		}
	}
	for _, name := range []string{"HOH", "WAT", "H2O", "D2O", "DOD", "TIP3", "TIP", "TIP4", "SPC", "DIS", "MTO", "SOL", "T3P", "T4P", "T5P"} {
		T.AddSolvent(name)
	}
	return T
}

func (T *TemplateRegistry) AddLinkage(l Linkage) {
	T.linkages = append(T.linkages, l)
}

// SetResidueType registers resName as a residue of polymers of type pt.
func (T *TemplateRegistry) SetResidueType(resName string, pt PolymerType) {
	T.resTypes[strings.ToUpper(resName)] = pt
}

// ResidueType returns the polymer type registered for resName.
func (T *TemplateRegistry) ResidueType(resName string) (PolymerType, bool) {
	pt, ok := T.resTypes[strings.ToUpper(resName)]
	return pt, ok
}

func (T *TemplateRegistry) AddSolvent(resName string) {
	T.solvent[strings.ToUpper(resName)] = true
}

// IsSolvent reports whether resName is a known small solvent.
func (T *TemplateRegistry) IsSolvent(resName string) bool {
	return T.solvent[strings.ToUpper(resName)]
}

// link reports whether atom name1 of residue res1 bonded to atom name2 of
// res2 is a polymeric linkage going from res1 to res2. Residues of a known
// type only accept linkages of that type; unknown residues fall back to the
// atom names.
func (T *TemplateRegistry) link(res1, name1, res2, name2 string) (PolymerType, bool) {
	if T == nil {
		return PTNone, false
	}
	pt1, ok1 := T.ResidueType(res1)
	pt2, ok2 := T.ResidueType(res2)
	for _, l := range T.linkages {
		if l.From != name1 || l.To != name2 {
			continue
		}
		if (ok1 && pt1 != l.Type) || (ok2 && pt2 != l.Type) {
			continue
		}
		return l.Type, true
	}
	return PTNone, false
}
