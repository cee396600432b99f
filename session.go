/*
 * session.go, part of atomstruct.
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
	"sort"

	"github.com/rmera/atomstruct/changes"
	"github.com/rmera/atomstruct/element"
	v3 "github.com/rmera/atomstruct/v3"
)

// CurrentSessionVersion is the version written by SessionInfo.
const CurrentSessionVersion = 1

// pbManagerSessionVersion is the layout version of the pseudobond section.
const pbManagerSessionVersion = 1

// Session sections, in buffer order.
const (
	secStructure = iota
	secAtoms
	secBonds
	secCoordSets
	secPBManager
	secResidues
	secChains
	numSections
)

var sectionNames = [numSections]string{"structure", "atoms", "bonds", "coordsets", "pseudobond manager", "residues", "chains"}

// Misc holds the variable-length data of one session section.
type Misc struct {
	Strings [][]string
	Maps    []map[string][]string
}

// SessionData is a structure flattened into parallel integer, float and misc
// streams, one entry of each per section.
type SessionData struct {
	Ints   [][]int
	Floats [][]float64
	Misc   []Misc
}

// Empty reports whether nothing has been written to d.
func (d *SessionData) Empty() bool {
	return len(d.Ints) == 0 && len(d.Floats) == 0 && len(d.Misc) == 0
}

// sessionOrdinals maps entities to their position in the save.
type sessionOrdinals struct {
	atoms     map[*Atom]int
	residues  map[*Residue]int
	coordSets map[*CoordSet]int
	chains    map[*Chain]int
}

// SessionSaveSetup numbers the entities of the structure for one save. It
// must be paired with SessionSaveTeardown. SessionInfo calls both if the
// caller hasn't.
func (S *Structure) SessionSaveSetup() {
	o := &sessionOrdinals{
		atoms:     make(map[*Atom]int, len(S.atoms)),
		residues:  make(map[*Residue]int, len(S.residues)),
		coordSets: make(map[*CoordSet]int, len(S.coordSets)),
		chains:    make(map[*Chain]int, len(S.chains)),
	}
	for i, a := range S.atoms {
		o.atoms[a] = i
	}
	for i, r := range S.residues {
		o.residues[r] = i
	}
	for i, cs := range S.coordSets {
		o.coordSets[cs] = i
	}
	for i, c := range S.chains {
		o.chains[c] = i
	}
	S.sessionOrdinal = o
}

// SessionSaveTeardown drops the numbering made by SessionSaveSetup.
func (S *Structure) SessionSaveTeardown() {
	S.sessionOrdinal = nil
}

// SessionAtomOrdinal returns the position of a in the current save, for
// savers of data that refers to the structure's atoms.
func (S *Structure) SessionAtomOrdinal(a *Atom) (int, bool) {
	if S.sessionOrdinal == nil {
		return 0, false
	}
	i, ok := S.sessionOrdinal.atoms[a]
	return i, ok
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func appendRgba(ints []int, c Rgba) []int {
	return append(ints, int(c[0]), int(c[1]), int(c[2]), int(c[3]))
}

// sessionReader reads one section. Errors are sticky: after the first one,
// every read returns zero and err keeps the first error.
type sessionReader struct {
	section string
	ints    []int
	floats  []float64
	ip, fp  int
	err     error
}

func newSessionReader(src *SessionData, sec int) *sessionReader {
	return &sessionReader{section: sectionNames[sec], ints: src.Ints[sec], floats: src.Floats[sec]}
}

func (r *sessionReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = newError(KindSerialization, "Structure.SessionRestore", "%s section: "+format, append([]any{r.section}, args...)...)
	}
}

func (r *sessionReader) int() int {
	if r.err != nil {
		return 0
	}
	if r.ip >= len(r.ints) {
		r.fail("integer buffer too short")
		return 0
	}
	r.ip++
	return r.ints[r.ip-1]
}

func (r *sessionReader) bool() bool { return r.int() != 0 }

// index reads an ordinal that must be in [0,n), or -1 if allowNone.
func (r *sessionReader) index(n int, allowNone bool, what string) int {
	i := r.int()
	if r.err != nil {
		return 0
	}
	if (i == -1 && allowNone) || (i >= 0 && i < n) {
		return i
	}
	r.fail("bad %s index %d", what, i)
	return 0
}

// count reads a non-negative length.
func (r *sessionReader) count(what string) int {
	n := r.int()
	if n < 0 {
		r.fail("negative %s count %d", what, n)
		return 0
	}
	return n
}

func (r *sessionReader) rgba() Rgba {
	var c Rgba
	for i := range c {
		c[i] = uint8(r.int())
	}
	return c
}

func (r *sessionReader) float() float64 {
	if r.err != nil {
		return 0
	}
	if r.fp >= len(r.floats) {
		r.fail("float buffer too short")
		return 0
	}
	r.fp++
	return r.floats[r.fp-1]
}

func (r *sessionReader) point() v3.Point {
	return v3.Point{r.float(), r.float(), r.float()}
}

// done checks that the whole section was consumed.
func (r *sessionReader) done() error {
	if r.err != nil {
		return r.err
	}
	if r.ip != len(r.ints) || r.fp != len(r.floats) {
		r.fail("%d integers and %d floats left over", len(r.ints)-r.ip, len(r.floats)-r.fp)
	}
	return r.err
}

// structure

const structureSessionInts = 14

func (S *Structure) SessionNumInts(version int) int   { return structureSessionInts }
func (S *Structure) SessionNumFloats(version int) int { return 1 }

// SessionInfo flattens the structure into dst, which must be empty, and
// returns the version of the layout written.
func (S *Structure) SessionInfo(dst *SessionData) (int, error) {
	if dst == nil || !dst.Empty() {
		return 0, newError(KindInvalidArgument, "Structure.SessionInfo", "session data destination is not empty")
	}
	if S.sessionOrdinal == nil {
		S.SessionSaveSetup()
		defer S.SessionSaveTeardown()
	}
	ord := S.sessionOrdinal
	dst.Ints = make([][]int, numSections)
	dst.Floats = make([][]float64, numSections)
	dst.Misc = make([]Misc, numSections)

	active := -1
	if S.activeCS != nil {
		active = ord.coordSets[S.activeCS]
	}
	dst.Ints[secStructure] = []int{len(S.atoms), len(S.bonds), len(S.coordSets), len(S.residues), len(S.chains),
		active, S.pdbVersion, b2i(S.display), b2i(S.isTraj), b2i(S.lowerCaseChains), b2i(S.asterisksTranslated),
		b2i(S.idatmValid), b2i(S.chainsMade), S.numCoords}
	dst.Floats[secStructure] = []float64{S.ballScale}
	dst.Misc[secStructure] = Misc{
		Strings: [][]string{{S.name}, {S.inputSeqSource}},
		Maps:    []map[string][]string{cloneStringsMap(S.metadata), cloneStringsMap(S.inputSeqInfo)},
	}

	names := make([]string, len(S.atoms))
	idatm := make([]string, len(S.atoms))
	for i, a := range S.atoms {
		names[i], idatm[i] = a.name, a.idatmType
		a.sessionSave(&dst.Ints[secAtoms], &dst.Floats[secAtoms])
	}
	dst.Misc[secAtoms] = Misc{Strings: [][]string{names, idatm}}

	for _, b := range S.bonds {
		b.sessionSave(&dst.Ints[secBonds], &dst.Floats[secBonds], ord)
	}
	for _, cs := range S.coordSets {
		cs.sessionSave(&dst.Ints[secCoordSets], &dst.Floats[secCoordSets], ord)
	}
	dst.Misc[secPBManager] = S.pbMgr.sessionSave(&dst.Ints[secPBManager], &dst.Floats[secPBManager], ord)

	resNames := make([]string, len(S.residues))
	chainIDs := make([]string, len(S.residues))
	for i, r := range S.residues {
		resNames[i], chainIDs[i] = r.name, r.chainID
		r.sessionSave(&dst.Ints[secResidues], ord)
	}
	dst.Misc[secResidues] = Misc{Strings: [][]string{resNames, chainIDs}}

	ids := make([]string, len(S.chains))
	chars := make([]string, len(S.chains))
	for i, c := range S.chains {
		ids[i], chars[i] = c.chainID, c.Characters()
		c.sessionSave(&dst.Ints[secChains], ord)
	}
	dst.Misc[secChains] = Misc{Strings: [][]string{ids, chars}}

	total := 0
	for _, v := range dst.Ints {
		total += len(v)
	}
	S.metrics.sessionSaved(total)
	S.logger.Debug("structure saved", "structure", S.name, "ints", total)
	return CurrentSessionVersion, nil
}

// RestoreSession builds a new structure, configured by opts, from session
// data written with the given version.
func RestoreSession(version int, src *SessionData, opts ...Option) (*Structure, error) {
	s := NewStructure(opts...)
	if err := s.SessionRestore(version, src); err != nil {
		return nil, errDecorate(err, "RestoreSession")
	}
	return s, nil
}

// SessionRestore fills an empty structure from session data.
func (S *Structure) SessionRestore(version int, src *SessionData) error {
	if version > CurrentSessionVersion {
		return newError(KindVersionTooNew, "Structure.SessionRestore", "session version %d is newer than the supported %d", version, CurrentSessionVersion)
	}
	if version < 1 {
		return newError(KindSerialization, "Structure.SessionRestore", "invalid session version %d", version)
	}
	if src == nil || len(src.Ints) != numSections || len(src.Floats) != numSections || len(src.Misc) != numSections {
		return newError(KindSerialization, "Structure.SessionRestore", "session data must have %d sections", numSections)
	}
	if len(S.atoms) > 0 || len(S.residues) > 0 || len(S.coordSets) > 0 {
		return newError(KindInvalidArgument, "Structure.SessionRestore", "can't restore into non-empty structure %s", S.name)
	}
	r := newSessionReader(src, secStructure)
	numAtoms, numBonds := r.count("atom"), r.count("bond")
	numCS, numRes, numChains := r.count("coordset"), r.count("residue"), r.count("chain")
	active := r.index(numCS, true, "active coordset")
	S.pdbVersion = r.int()
	S.display = r.bool()
	isTraj := r.bool()
	S.lowerCaseChains = r.bool()
	S.asterisksTranslated = r.bool()
	idatmValid := r.bool()
	chainsMade := r.bool()
	numCoords := r.count("coordinate")
	S.ballScale = r.float()
	if err := r.done(); err != nil {
		return err
	}
	misc := src.Misc[secStructure]
	if len(misc.Strings) != 2 || len(misc.Strings[0]) != 1 || len(misc.Strings[1]) != 1 || len(misc.Maps) != 2 {
		return newError(KindSerialization, "Structure.SessionRestore", "structure section: bad misc data")
	}
	S.name = misc.Strings[0][0]
	S.inputSeqSource = misc.Strings[1][0]
	S.metadata = cloneStringsMap(misc.Maps[0])
	S.inputSeqInfo = cloneStringsMap(misc.Maps[1])

	misc = src.Misc[secAtoms]
	if len(misc.Strings) != 2 || len(misc.Strings[0]) != numAtoms || len(misc.Strings[1]) != numAtoms {
		return newError(KindSerialization, "Structure.SessionRestore", "atoms section: expected %d names", numAtoms)
	}
	r = newSessionReader(src, secAtoms)
	for i := 0; i < numAtoms; i++ {
		a := S.NewAtom(misc.Strings[0][i], 0)
		a.idatmType = misc.Strings[1][i]
		a.sessionRestore(version, r, numCoords)
		if r.err != nil {
			break
		}
	}
	if err := r.done(); err != nil {
		return err
	}

	r = newSessionReader(src, secBonds)
	for i := 0; i < numBonds && r.err == nil; i++ {
		S.restoreBond(version, r)
	}
	if err := r.done(); err != nil {
		return err
	}

	r = newSessionReader(src, secCoordSets)
	for i := 0; i < numCS && r.err == nil; i++ {
		S.restoreCoordSet(version, r)
	}
	if err := r.done(); err != nil {
		return err
	}
	if active >= 0 {
		S.activeCS = S.coordSets[active]
	}

	r = newSessionReader(src, secPBManager)
	S.pbMgr.sessionRestore(version, r, src.Misc[secPBManager])
	if err := r.done(); err != nil {
		return err
	}

	misc = src.Misc[secResidues]
	if len(misc.Strings) != 2 || len(misc.Strings[0]) != numRes || len(misc.Strings[1]) != numRes {
		return newError(KindSerialization, "Structure.SessionRestore", "residues section: expected %d names", numRes)
	}
	r = newSessionReader(src, secResidues)
	for i := 0; i < numRes && r.err == nil; i++ {
		S.restoreResidue(version, r, misc.Strings[0][i], misc.Strings[1][i])
	}
	if err := r.done(); err != nil {
		return err
	}

	misc = src.Misc[secChains]
	if len(misc.Strings) != 2 || len(misc.Strings[0]) != numChains || len(misc.Strings[1]) != numChains {
		return newError(KindSerialization, "Structure.SessionRestore", "chains section: expected %d chain IDs", numChains)
	}
	r = newSessionReader(src, secChains)
	for i := 0; i < numChains && r.err == nil; i++ {
		S.restoreChain(version, r, misc.Strings[0][i], misc.Strings[1][i])
	}
	if err := r.done(); err != nil {
		return err
	}

	S.isTraj = isTraj
	S.idatmValid = idatmValid
	S.chainsMade = chainsMade
	S.invalidateTopology()
	S.metrics.sessionRestored()
	S.logger.Debug("structure restored", "structure", S.name, "atoms", numAtoms, "residues", numRes)
	return nil
}

// atoms

const (
	atomSessionInts     = 13
	atomSessionFloats   = 1
	altLocSessionInts   = 2
	altLocSessionFloats = 5
)

// SessionNumInts returns the number of integers the atom writes.
func (A *Atom) SessionNumInts(version int) int {
	return atomSessionInts + len(A.altLocs)*altLocSessionInts
}

func (A *Atom) SessionNumFloats(version int) int {
	return atomSessionFloats + len(A.altLocs)*altLocSessionFloats
}

func (A *Atom) sessionSave(ints *[]int, floats *[]float64) {
	*ints = append(*ints, A.element.Number(), A.coordIndex, int(A.altLoc), A.serial,
		b2i(A.display), A.hide, int(A.drawMode))
	*ints = appendRgba(*ints, A.color)
	*ints = append(*ints, len(A.altLocs))
	*floats = append(*floats, A.radius)
	for _, code := range A.AltLocs() {
		info := A.altLocs[code]
		*ints = append(*ints, int(code), info.serial)
		*floats = append(*floats, info.coord[0], info.coord[1], info.coord[2], info.bfactor, info.occupancy)
	}
}

func (A *Atom) sessionRestore(version int, r *sessionReader, numCoords int) {
	A.element = element.Element(r.int())
	A.coordIndex = r.index(numCoords, true, "coordinate")
	A.altLoc = byte(r.int())
	A.serial = r.int()
	A.display = r.bool()
	A.hide = r.int()
	A.drawMode = DrawMode(r.int())
	A.color = r.rgba()
	n := r.count("alt loc")
	A.radius = r.float()
	if r.err != nil {
		return
	}
	if A.coordIndex >= 0 {
		A.s.numCoords = max(A.s.numCoords, A.coordIndex+1)
	}
	if n > 0 {
		A.altLocs = make(map[byte]*altLocInfo, n)
	}
	for i := 0; i < n && r.err == nil; i++ {
		code := byte(r.int())
		info := &altLocInfo{serial: r.int()}
		info.coord = r.point()
		info.bfactor = r.float()
		info.occupancy = r.float()
		A.altLocs[code] = info
	}
	if A.altLoc != 0 && r.err == nil && !A.HasAltLoc(A.altLoc) {
		r.fail("atom %s has current alt loc '%c' but no data for it", A.name, A.altLoc)
	}
}

// bonds

func (B *Bond) SessionNumInts(version int) int   { return 9 }
func (B *Bond) SessionNumFloats(version int) int { return 1 }

func (B *Bond) sessionSave(ints *[]int, floats *[]float64, ord *sessionOrdinals) {
	*ints = append(*ints, ord.atoms[B.atoms[0]], ord.atoms[B.atoms[1]])
	*ints = appendRgba(*ints, B.color)
	*ints = append(*ints, b2i(B.halfbond), b2i(B.display), B.hide)
	*floats = append(*floats, B.radius)
}

func (S *Structure) restoreBond(version int, r *sessionReader) {
	i1 := r.index(len(S.atoms), false, "atom")
	i2 := r.index(len(S.atoms), false, "atom")
	color := r.rgba()
	halfbond, display, hide := r.bool(), r.bool(), r.int()
	radius := r.float()
	if r.err != nil {
		return
	}
	b, err := S.NewBond(S.atoms[i1], S.atoms[i2])
	if err != nil {
		r.fail("bond %d-%d: %v", i1, i2, err)
		return
	}
	b.color, b.halfbond, b.display, b.hide, b.radius = color, halfbond, display, hide, radius
}

// coordinate sets

func (C *CoordSet) SessionNumInts(version int) int {
	return 4 + len(C.bfactors) + len(C.occupancies)
}

func (C *CoordSet) SessionNumFloats(version int) int {
	return 3*C.Len() + len(C.bfactors) + len(C.occupancies)
}

// sortedAtomValues returns the entries of m ordered by atom ordinal.
func sortedAtomValues(m map[*Atom]float64, ord *sessionOrdinals) ([]int, []float64) {
	idx := make([]int, 0, len(m))
	byIdx := make(map[int]float64, len(m))
	for a, v := range m {
		i, ok := ord.atoms[a]
		if !ok {
			continue
		}
		idx = append(idx, i)
		byIdx[i] = v
	}
	sort.Ints(idx)
	vals := make([]float64, len(idx))
	for j, i := range idx {
		vals[j] = byIdx[i]
	}
	return idx, vals
}

func (C *CoordSet) sessionSave(ints *[]int, floats *[]float64, ord *sessionOrdinals) {
	bIdx, bVals := sortedAtomValues(C.bfactors, ord)
	oIdx, oVals := sortedAtomValues(C.occupancies, ord)
	*ints = append(*ints, C.id, C.Len(), len(bIdx), len(oIdx))
	*ints = append(*ints, bIdx...)
	*ints = append(*ints, oIdx...)
	*floats = append(*floats, C.coords.Raw()...)
	*floats = append(*floats, bVals...)
	*floats = append(*floats, oVals...)
}

func (S *Structure) restoreCoordSet(version int, r *sessionReader) {
	id := r.int()
	size := r.count("coordinate")
	nb, no := r.count("bfactor"), r.count("occupancy")
	if r.err != nil {
		return
	}
	if S.FindCoordSet(id) != nil {
		r.fail("duplicate coordset id %d", id)
		return
	}
	if nb+no > len(r.ints)-r.ip || 3*size+nb+no > len(r.floats)-r.fp {
		r.fail("buffers too short for coordset %d", id)
		return
	}
	bIdx := make([]int, nb)
	for i := range bIdx {
		bIdx[i] = r.index(len(S.atoms), false, "atom")
	}
	oIdx := make([]int, no)
	for i := range oIdx {
		oIdx[i] = r.index(len(S.atoms), false, "atom")
	}
	if r.err != nil {
		return
	}
	cs := S.NewCoordSetSized(id, size)
	for i := 0; i < size; i++ {
		cs.coords.Set(i, r.point())
	}
	for _, i := range bIdx {
		cs.bfactors[S.atoms[i]] = r.float()
	}
	for _, i := range oIdx {
		cs.occupancies[S.atoms[i]] = r.float()
	}
}

// pseudobonds

// SessionNumInts returns the integers written for the group, header included.
func (G *PBGroup) SessionNumInts(version int) int {
	n := 8
	switch G.kind {
	case PerStructure:
		n += 2 + len(G.perStructure.pbs)*pbSessionInts
	case PerCoordSet:
		for _, cs := range G.coordSets() {
			n += 2 + len(G.perCoordSet.sets[cs])*pbSessionInts
		}
	}
	return n
}

func (G *PBGroup) SessionNumFloats(version int) int {
	return 1 + G.NumPseudobonds()
}

const pbSessionInts = 9

func (P *Pseudobond) sessionSave(ints *[]int, floats *[]float64, ord *sessionOrdinals) {
	*ints = append(*ints, ord.atoms[P.atoms[0]], ord.atoms[P.atoms[1]])
	*ints = appendRgba(*ints, P.color)
	*ints = append(*ints, b2i(P.halfbond), b2i(P.display), P.hide)
	*floats = append(*floats, P.radius)
}

func (G *PBGroup) sessionSave(ints *[]int, floats *[]float64, ord *sessionOrdinals) {
	*ints = append(*ints, int(G.kind))
	*ints = appendRgba(*ints, G.color)
	*ints = append(*ints, b2i(G.halfbond), b2i(G.display))
	*floats = append(*floats, G.radius)
	saveSet := func(csOrd int, pbs []*Pseudobond) {
		*ints = append(*ints, csOrd, len(pbs))
		for _, pb := range pbs {
			pb.sessionSave(ints, floats, ord)
		}
	}
	switch G.kind {
	case PerStructure:
		*ints = append(*ints, 1)
		saveSet(-1, G.perStructure.pbs)
	case PerCoordSet:
		sets := G.coordSets()
		*ints = append(*ints, len(sets))
		for _, cs := range sets {
			saveSet(ord.coordSets[cs], G.perCoordSet.sets[cs])
		}
	default:
		panic("unknown pseudobond group kind")
	}
}

func (M *PBManager) sessionSave(ints *[]int, floats *[]float64, ord *sessionOrdinals) Misc {
	groups := M.Groups()
	*ints = append(*ints, pbManagerSessionVersion, len(groups))
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.name
		g.sessionSave(ints, floats, ord)
	}
	return Misc{Strings: [][]string{names}}
}

func (M *PBManager) sessionRestore(version int, r *sessionReader, misc Misc) {
	if v := r.int(); r.err == nil && v != pbManagerSessionVersion {
		r.fail("unknown pseudobond manager version %d", v)
		return
	}
	n := r.count("group")
	if r.err != nil {
		return
	}
	if len(misc.Strings) != 1 || len(misc.Strings[0]) != n {
		r.fail("expected %d group names", n)
		return
	}
	s := M.s
	for _, name := range misc.Strings[0] {
		kind := GroupKind(r.int())
		color := r.rgba()
		halfbond, display := r.bool(), r.bool()
		radius := r.float()
		nsets := r.count("pseudobond set")
		if r.err != nil {
			return
		}
		var policy GroupPolicy
		switch kind {
		case PerStructure:
			policy = GroupNormal
		case PerCoordSet:
			policy = GroupPerCoordSet
		default:
			r.fail("unknown group kind %d", kind)
			return
		}
		g, err := M.Group(name, policy)
		if err != nil {
			r.fail("group %s: %v", name, err)
			return
		}
		g.color, g.halfbond, g.display, g.radius = color, halfbond, display, radius
		for i := 0; i < nsets; i++ {
			csOrd := r.index(len(s.coordSets), kind == PerStructure, "coordset")
			npb := r.count("pseudobond")
			if r.err != nil {
				return
			}
			var cs *CoordSet
			if kind == PerCoordSet {
				cs = s.coordSets[csOrd]
			}
			for j := 0; j < npb; j++ {
				i1 := r.index(len(s.atoms), false, "atom")
				i2 := r.index(len(s.atoms), false, "atom")
				pcolor := r.rgba()
				phalf, pdisp, phide := r.bool(), r.bool(), r.int()
				prad := r.float()
				if r.err != nil {
					return
				}
				var pb *Pseudobond
				if cs == nil {
					pb, err = g.NewPseudobond(s.atoms[i1], s.atoms[i2])
				} else {
					pb, err = g.NewPseudobondIn(s.atoms[i1], s.atoms[i2], cs)
				}
				if err != nil {
					r.fail("pseudobond in group %s: %v", name, err)
					return
				}
				pb.color, pb.halfbond, pb.display, pb.hide, pb.radius = pcolor, phalf, pdisp, phide, prad
			}
		}
	}
}

// residues

const residueSessionInts = 13

func (R *Residue) SessionNumInts(version int) int   { return residueSessionInts + 1 + len(R.atoms) }
func (R *Residue) SessionNumFloats(version int) int { return 0 }

func (R *Residue) sessionSave(ints *[]int, ord *sessionOrdinals) {
	*ints = append(*ints, R.number, int(R.insert), b2i(R.isHelix), b2i(R.isStrand), b2i(R.isHet),
		R.ssID, b2i(R.ribbonDisplay), R.ribbonHide)
	*ints = appendRgba(*ints, R.ribbonColor)
	*ints = append(*ints, int(R.polymerType), len(R.atoms))
	for _, a := range R.atoms {
		*ints = append(*ints, ord.atoms[a])
	}
}

func (S *Structure) restoreResidue(version int, r *sessionReader, name, chainID string) {
	number, insert := r.int(), byte(r.int())
	isHelix, isStrand, isHet := r.bool(), r.bool(), r.bool()
	ssID, ribbonDisplay, ribbonHide := r.int(), r.bool(), r.int()
	ribbonColor := r.rgba()
	ptype := PolymerType(r.int())
	n := r.count("residue atom")
	if r.err != nil {
		return
	}
	res, err := S.NewResidue(name, chainID, number, insert, nil, false)
	if err != nil {
		r.fail("residue %s: %v", name, err)
		return
	}
	res.isHelix, res.isStrand, res.isHet, res.ssID = isHelix, isStrand, isHet, ssID
	res.ribbonDisplay, res.ribbonHide, res.ribbonColor, res.polymerType = ribbonDisplay, ribbonHide, ribbonColor, ptype
	for i := 0; i < n; i++ {
		ai := r.index(len(S.atoms), false, "atom")
		if r.err != nil {
			return
		}
		if err := res.AddAtom(S.atoms[ai]); err != nil {
			r.fail("residue %s: %v", res, err)
			return
		}
	}
}

// chains

func (C *Chain) SessionNumInts(version int) int   { return 3 + len(C.residues) }
func (C *Chain) SessionNumFloats(version int) int { return 0 }

func (C *Chain) sessionSave(ints *[]int, ord *sessionOrdinals) {
	*ints = append(*ints, b2i(C.fromSeqres), int(C.polymerType), len(C.residues))
	for _, r := range C.residues {
		i := -1
		if r != nil {
			i = ord.residues[r]
		}
		*ints = append(*ints, i)
	}
}

func (S *Structure) restoreChain(version int, r *sessionReader, chainID, chars string) {
	fromSeqres := r.bool()
	ptype := PolymerType(r.int())
	n := r.count("chain residue")
	if r.err != nil {
		return
	}
	if n != len(chars) {
		r.fail("chain %s has %d characters for %d residues", chainID, len(chars), n)
		return
	}
	slots := make([]*Residue, n)
	for i := range slots {
		ri := r.index(len(S.residues), true, "residue")
		if r.err != nil {
			return
		}
		if ri >= 0 {
			slots[i] = S.residues[ri]
		}
	}
	c := newChain(S, chainID)
	c.polymerType = ptype
	c.fromSeqres = fromSeqres
	c.residues = slots
	c.Swap(chars)
	c.rebuildMap()
	for _, res := range slots {
		if res != nil {
			res.chain = c
		}
	}
	S.chains = append(S.chains, c)
	S.tracker.AddCreated(changes.Chain, c)
}
