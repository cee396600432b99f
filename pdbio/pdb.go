/*
 * pdb.go, part of atomstruct.
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

// Package pdbio reads PDB files into atomstruct structures.
package pdbio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rmera/atomstruct"
	"github.com/rmera/atomstruct/element"
	"github.com/rmera/atomstruct/seq"
	v3 "github.com/rmera/atomstruct/v3"
)

// metadataRecords are copied verbatim, one string per line, into the
// structure metadata.
var metadataRecords = map[string]bool{
	"HEADER": true, "TITLE": true, "COMPND": true, "SOURCE": true,
	"KEYWDS": true, "EXPDTA": true, "AUTHOR": true,
}

// This tries to guess a chemical element symbol from a PDB atom name. Mostly
// based on AMBER names. It only deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	symbol := ""
	switch {
	case name == "":
	case len(name) == 4 || name[0] == 'H': //I thiiink only Hs can have 4-char names in amber.
		symbol = "H"
	case name[0] == 'C': //Ca is not considered here
		switch name {
		case "CU":
			symbol = "Cu"
		case "CO":
			symbol = "Co"
		case "CL":
			symbol = "Cl"
		default:
			symbol = "C"
		}
	case name[0] == 'N':
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	case name[0] == 'O':
		symbol = "O"
	case name[0] == 'P':
		symbol = "P"
	case name[0] == 'S':
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	case strings.HasPrefix(name, "ZN"):
		symbol = "Zn"
	case strings.HasPrefix(name, "MG"):
		symbol = "Mg"
	}
	if symbol == "" {
		return symbol, errors.Errorf("couldn't guess symbol from PDB name %q", name)
	}
	return symbol, nil
}

// atomLine holds the fields of an ATOM or HETATM record.
type atomLine struct {
	het       bool
	serial    int
	name      string
	altLoc    byte
	resName   string
	chainID   string
	resNumber int
	insert    byte
	coord     v3.Point
	occupancy float64
	bfactor   float64
	symbol    string
}

// Parses an ATOM or HETATM line. Occupancy and B-factor are optional and
// default to 1 and 0.
func readAtomLine(line string) (atomLine, error) {
	var at atomLine
	if len(line) < 54 {
		return at, errors.Errorf("ATOM/HETATM record too short (%d characters)", len(line))
	}
	err := make([]error, 5) //accumulate errors to check at the end of the line.
	at.het = strings.HasPrefix(line, "HETATM")
	at.serial, err[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	at.name = strings.TrimSpace(line[12:16])
	at.altLoc = line[16]
	at.resName = strings.TrimSpace(line[17:20])
	at.chainID = strings.TrimSpace(line[21:22])
	at.resNumber, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	at.insert = line[26]
	for i := 0; i < 3; i++ {
		at.coord[i], err[2+i] = strconv.ParseFloat(strings.TrimSpace(line[30+8*i:38+8*i]), 64)
	}
	for _, e := range err {
		if e != nil {
			return at, e
		}
	}
	at.occupancy = 1
	if len(line) >= 60 {
		if o, e := strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64); e == nil {
			at.occupancy = o
		}
	}
	if len(line) >= 66 {
		if b, e := strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64); e == nil {
			at.bfactor = b
		}
	}
	if len(line) >= 78 {
		at.symbol = strings.TrimSpace(line[76:78])
	}
	if at.symbol == "" {
		at.symbol, _ = symbolFromName(at.name)
	}
	return at, nil
}

type resKey struct {
	chainID string
	number  int
	insert  byte
	name    string
}

// reader keeps the state of one PDB parse.
type reader struct {
	s        *atomstruct.Structure
	residues map[resKey]*atomstruct.Residue
	serials  map[int]*atomstruct.Atom
	order    []*atomstruct.Atom //atom of each ATOM line of the first model, nil for alternate locations
	seqres   map[string][]string
	seqOrder []string
	model    int
	models   int
	index    int //line index within the current model
	cs       *atomstruct.CoordSet
	conect   [][2]int
}

// ReadFile reads the PDB file name. See Read.
func ReadFile(name string, connect bool, opts ...atomstruct.Option) (*atomstruct.Structure, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "pdbio")
	}
	defer f.Close()
	opts = append([]atomstruct.Option{atomstruct.WithName(strings.TrimSuffix(baseName(name), ".pdb"))}, opts...)
	S, err := Read(f, connect, opts...)
	return S, errors.WithMessagef(err, "pdbio: reading %s", name)
}

func baseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Read builds a structure from PDB data. Every MODEL becomes a coordinate
// set with the model number as id. Alternate locations are kept, and the
// best one is made current. CONECT records add bonds, and if connect is true,
// bonds are also assigned by distance. Chain-adjacent polymer residues that
// are not bonded get a missing-structure pseudobond. SEQRES records become
// the structure's input sequence information.
func Read(r io.Reader, connect bool, opts ...atomstruct.Option) (*atomstruct.Structure, error) {
	R := &reader{
		s:        atomstruct.NewStructure(opts...),
		residues: make(map[resKey]*atomstruct.Residue),
		serials:  make(map[int]*atomstruct.Atom),
		seqres:   make(map[string][]string),
		model:    1,
	}
	S := R.s
	metadata := make(map[string][]string)
	pdb := bufio.NewScanner(r)
	pdb.Buffer(make([]byte, 0, 1024), 1024*1024)
	nline := 0
lines:
	for pdb.Scan() {
		nline++
		line := strings.TrimRight(pdb.Text(), "\r")
		if len(line) < 3 {
			continue
		}
		record := strings.TrimSpace(line[:min(6, len(line))])
		var err error
		switch {
		case record == "ATOM" || record == "HETATM":
			err = R.atom(line)
		case record == "MODEL":
			err = R.startModel(line)
		case record == "ENDMDL":
			R.cs = nil
		case record == "CONECT":
			err = R.readConect(line)
		case record == "SEQRES":
			R.readSeqres(line)
		case record == "REMARK":
			R.readRemark(line)
		case metadataRecords[record]:
			if len(line) > 10 {
				metadata[record] = append(metadata[record], strings.TrimSpace(line[10:]))
			}
		case record == "END":
			break lines
		}
		if err != nil {
			return nil, errors.Wrapf(err, "pdbio: line %d", nline)
		}
	}
	if err := pdb.Err(); err != nil {
		return nil, errors.Wrap(err, "pdbio")
	}
	if S.NumAtoms() == 0 {
		return nil, errors.New("pdbio: no atoms found")
	}
	S.SetMetadata(metadata)
	for _, chain := range R.seqOrder {
		S.SetInputSeqInfo(chain, R.seqres[chain])
	}
	if len(R.seqOrder) > 0 {
		S.SetInputSeqSource("SEQRES")
	}
	if err := R.applyConect(); err != nil {
		return nil, err
	}
	S.UseBestAltLocs()
	if connect {
		if _, err := S.ConnectByDistance(); err != nil {
			S.Logger().Warn("distance-based bonding failed", "structure", S.Name(), "err", err)
		}
	}
	if err := R.missingStructure(connect); err != nil {
		return nil, err
	}
	if first := S.CoordSets(); len(first) > 0 {
		if err := S.SetActiveCoordSet(first[0]); err != nil {
			return nil, errors.Wrap(err, "pdbio")
		}
	}
	return S, nil
}

func (R *reader) startModel(line string) error {
	n := R.models + 1
	if len(line) > 6 {
		if m, err := strconv.Atoi(strings.TrimSpace(line[6:])); err == nil {
			n = m
		}
	}
	R.models++
	R.model = n
	R.index = 0
	if R.models == 1 {
		R.cs = nil
		return nil
	}
	if R.s.FindCoordSet(n) != nil {
		return errors.Errorf("repeated model %d", n)
	}
	R.cs = R.s.NewCoordSetIndex(n)
	return nil
}

func (R *reader) atom(line string) error {
	at, err := readAtomLine(line)
	if err != nil {
		return err
	}
	S := R.s
	if R.models > 1 {
		//later models only bring coordinates, matched by line order
		if R.index >= len(R.order) {
			return errors.Errorf("model %d has more atoms than the first one", R.model)
		}
		a := R.order[R.index]
		R.index++
		if a == nil {
			return nil
		}
		a.SetCoordIn(at.coord, R.cs)
		R.cs.SetBfactor(a, at.bfactor)
		R.cs.SetOccupancy(a, at.occupancy)
		return nil
	}
	if S.ActiveCoordSet() == nil {
		if err := S.SetActiveCoordSet(S.NewCoordSetIndex(R.model)); err != nil {
			return err
		}
	}
	key := resKey{chainID: at.chainID, number: at.resNumber, insert: at.insert, name: at.resName}
	res, ok := R.residues[key]
	if !ok {
		res, err = S.NewResidue(at.resName, at.chainID, at.resNumber, at.insert, nil, false)
		if err != nil {
			return err
		}
		res.SetIsHet(at.het)
		R.residues[key] = res
	}
	alt := at.altLoc
	if alt == ' ' {
		alt = 0
	}
	var a *atomstruct.Atom
	if alt != 0 {
		a = res.FindAtom(at.name)
	}
	if a == nil {
		a = S.NewAtom(at.name, element.FromSymbol(at.symbol))
		a.SetSerialNumber(at.serial)
		if err := res.AddAtom(a); err != nil {
			return err
		}
		R.order = append(R.order, a)
	} else {
		R.order = append(R.order, nil)
	}
	if alt != 0 {
		if err := a.SetAltLoc(alt, true); err != nil {
			return err
		}
		a.SetSerialNumber(at.serial)
	}
	a.SetCoord(at.coord)
	a.SetBfactor(at.bfactor)
	a.SetOccupancy(at.occupancy)
	if _, seen := R.serials[at.serial]; !seen {
		R.serials[at.serial] = a
	}
	return nil
}

func (R *reader) readConect(line string) error {
	fields := make([]int, 0, 5)
	for i := 6; i+5 <= len(line) && len(fields) < 5; i += 5 {
		f := strings.TrimSpace(line[i : i+5])
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return errors.Wrap(err, "CONECT record")
		}
		fields = append(fields, n)
	}
	for _, n := range fields[min(1, len(fields)):] {
		R.conect = append(R.conect, [2]int{fields[0], n})
	}
	return nil
}

func (R *reader) applyConect() error {
	for _, c := range R.conect {
		a1, ok1 := R.serials[c[0]]
		a2, ok2 := R.serials[c[1]]
		if !ok1 || !ok2 {
			R.s.Logger().Warn("CONECT record to unknown atom serial", "from", c[0], "to", c[1])
			continue
		}
		if a1 == a2 || a1.ConnectsTo(a2) {
			continue
		}
		if _, err := R.s.NewBond(a1, a2); err != nil {
			return errors.Wrapf(err, "pdbio: CONECT %d-%d", c[0], c[1])
		}
	}
	return nil
}

func (R *reader) readSeqres(line string) {
	if len(line) < 20 {
		return
	}
	chain := strings.TrimSpace(line[11:12])
	if _, ok := R.seqres[chain]; !ok {
		R.seqOrder = append(R.seqOrder, chain)
	}
	R.seqres[chain] = append(R.seqres[chain], strings.Fields(line[19:])...)
}

// readRemark gets the format version from REMARK 4.
func (R *reader) readRemark(line string) {
	const tag = "FORMAT V."
	if !strings.HasPrefix(line, "REMARK   4") {
		return
	}
	i := strings.Index(line, tag)
	if i < 0 {
		return
	}
	v := strings.TrimSpace(line[i+len(tag):])
	if j := strings.IndexAny(v, ". "); j > 0 {
		v = v[:j]
	}
	if n, err := strconv.Atoi(v); err == nil {
		R.s.SetPDBVersion(n)
	}
}

// linkAtoms returns the atoms that bond residue i to residue i+1 in a
// polymer of the family of the given residue name.
func linkAtoms(resName string) (string, string, bool) {
	_, kind := seq.Letter(resName)
	switch kind {
	case seq.KindProtein:
		return "C", "N", true
	case seq.KindDeoxy, seq.KindRibo:
		return "O3'", "P", true
	}
	return "", "", false
}

// missingStructure joins consecutive polymer residues of a chain that are
// not bonded with a missing-structure pseudobond. Without distance-based
// bonding only numbering gaps count, since adjacent residues are then
// usually just unconnected.
func (R *reader) missingStructure(connected bool) error {
	S := R.s
	res := S.Residues()
	var group *atomstruct.PBGroup
	for i := 0; i+1 < len(res); i++ {
		r1, r2 := res[i], res[i+1]
		if r1.ChainID() != r2.ChainID() || r1.IsHet() || r2.IsHet() || r1.ConnectsTo(r2) {
			continue
		}
		if !connected && r2.Number()-r1.Number() <= 1 {
			continue
		}
		from, _, ok1 := linkAtoms(r1.Name())
		_, to, ok2 := linkAtoms(r2.Name())
		if !ok1 || !ok2 {
			continue
		}
		a1, a2 := r1.FindAtom(from), r2.FindAtom(to)
		if a1 == nil || a2 == nil {
			continue
		}
		if group == nil {
			var err error
			group, err = S.PBManager().Group(atomstruct.PBGMissingStructure, atomstruct.GroupNormal)
			if err != nil {
				return errors.Wrap(err, "pdbio")
			}
		}
		if _, err := group.NewPseudobond(a1, a2); err != nil {
			return errors.Wrap(err, "pdbio")
		}
	}
	return nil
}
