/*
 * structure.go, part of atomstruct.
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
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/rmera/atomstruct/changes"
	"github.com/rmera/atomstruct/config"
	"github.com/rmera/atomstruct/destruct"
	"github.com/rmera/atomstruct/element"
)

// Structure owns a graph of atoms, bonds and residues, its coordinate sets,
// chains and pseudobonds. A Structure is not safe for concurrent use: callers
// must serialize every mutating access.
type Structure struct {
	id        uuid.UUID
	name      string
	logger    *slog.Logger
	tracker   *changes.Tracker
	coord     *destruct.Coordinator
	templates *TemplateRegistry
	heur      config.Categories
	metrics   *Metrics

	atoms     []*Atom
	bonds     []*Bond
	residues  []*Residue
	coordSets []*CoordSet
	activeCS  *CoordSet
	numCoords int
	nextAtom  int64
	chains    []*Chain
	pbMgr     *PBManager

	metadata            map[string][]string
	inputSeqInfo        map[string][]string
	inputSeqSource      string
	pdbVersion          int
	display             bool
	ballScale           float64
	isTraj              bool
	lowerCaseChains     bool
	asterisksTranslated bool
	idatmValid          bool
	destroyed           bool

	//derived data, see cache.go
	bondedGroups   map[bool][][]*Atom
	polymers       map[polymerKey][]Polymer
	categoriesOK   bool
	chainsMade     bool
	ringsOK        bool
	ringsKey       ringKey
	ringsIgnore    map[*Residue]bool
	rings          []*Ring
	altLocsDirty   bool
	bestAltLocs    map[*Residue]byte
	sessionOrdinal *sessionOrdinals
}

// Option configures a new Structure.
type Option func(*Structure)

// WithLogger sets the logger for recoverable errors and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Structure) { s.logger = l }
}

// WithChangeTracker sets the tracker that records the structure's changes.
// Structures without one get a discarding tracker.
func WithChangeTracker(t *changes.Tracker) Option {
	return func(s *Structure) { s.tracker = t }
}

// WithCoordinator sets the destruction coordinator. Structures that share a
// coordinator have their deletions batched together.
func WithCoordinator(c *destruct.Coordinator) Option {
	return func(s *Structure) { s.coord = c }
}

// WithTemplates sets the residue template registry.
func WithTemplates(t *TemplateRegistry) Option {
	return func(s *Structure) { s.templates = t }
}

// WithHeuristics sets the constants used by the structure categorization.
// Zero or negative constants take their default values.
func WithHeuristics(c config.Categories) Option {
	return func(s *Structure) { s.heur = c.WithDefaults() }
}

// WithMetrics sets the collectors updated by the structure.
func WithMetrics(m *Metrics) Option {
	return func(s *Structure) { s.metrics = m }
}

// WithName sets the structure's name.
func WithName(name string) Option {
	return func(s *Structure) { s.name = name }
}

// NewStructure returns an empty structure.
func NewStructure(opts ...Option) *Structure {
	s := &Structure{
		id:           uuid.New(),
		logger:       slog.Default(),
		heur:         config.DefaultCategories(),
		metadata:     make(map[string][]string),
		inputSeqInfo: make(map[string][]string),
		display:      true,
		ballScale:    0.25,
	}
	for _, o := range opts {
		o(s)
	}
	if s.tracker == nil {
		s.tracker = changes.New()
		s.tracker.SetDiscarding(true)
	}
	if s.coord == nil {
		s.coord = destruct.New(destruct.WithLogger(s.logger))
	}
	s.metrics.attach(s.coord)
	if s.templates == nil {
		s.templates = DefaultTemplates()
	}
	s.pbMgr = newPBManager(s)
	s.coord.AddObserver(s.pbMgr)
	s.tracker.AddCreated(changes.Structure, s)
	return s
}

// ID returns the structure's unique identity.
func (S *Structure) ID() uuid.UUID { return S.id }

func (S *Structure) Logger() *slog.Logger { return S.logger }

func (S *Structure) ChangeTracker() *changes.Tracker { return S.tracker }

func (S *Structure) Coordinator() *destruct.Coordinator { return S.coord }

func (S *Structure) Templates() *TemplateRegistry { return S.templates }

// Destroyed reports whether the structure has been destroyed, e.g. by
// deleting its last atom.
func (S *Structure) Destroyed() bool { return S.destroyed }

func (S *Structure) track(reasons ...string) {
	S.tracker.AddModified(changes.Structure, S, reasons...)
}

// Atoms returns the atoms in creation order. The slice must not be modified.
func (S *Structure) Atoms() []*Atom { return S.atoms }

func (S *Structure) Bonds() []*Bond { return S.bonds }

// Residues returns the residues in structure order.
func (S *Structure) Residues() []*Residue { return S.residues }

// CoordSets returns the coordinate sets sorted by id.
func (S *Structure) CoordSets() []*CoordSet { return S.coordSets }

// ActiveCoordSet returns the active coordinate set, nil if there is none.
func (S *Structure) ActiveCoordSet() *CoordSet { return S.activeCS }

// PBManager returns the structure's pseudobond manager.
func (S *Structure) PBManager() *PBManager { return S.pbMgr }

// NumAtoms, NumBonds and NumResidues are handy for summaries.
func (S *Structure) NumAtoms() int    { return len(S.atoms) }
func (S *Structure) NumBonds() int    { return len(S.bonds) }
func (S *Structure) NumResidues() int { return len(S.residues) }

func (S *Structure) ownsAtom(a *Atom) bool {
	return a != nil && a.s == S && !S.destroyed
}

// NewAtom creates an atom. It has no coordinates and no residue until
// SetCoord and Residue.AddAtom are called.
func (S *Structure) NewAtom(name string, e element.Element) *Atom {
	a := &Atom{
		s:          S,
		id:         S.nextAtom,
		name:       name,
		element:    e,
		coordIndex: noCoord,
		display:    true,
	}
	S.nextAtom++
	S.atoms = append(S.atoms, a)
	S.idatmValid = false
	S.invalidateTopology()
	S.tracker.AddCreated(changes.Atom, a)
	return a
}

// NewBond bonds a1 and a2.
func (S *Structure) NewBond(a1, a2 *Atom) (*Bond, error) {
	if !S.ownsAtom(a1) || !S.ownsAtom(a2) {
		S.logger.Error("attempt to bond atoms not in the structure", "structure", S.name)
		return nil, newError(KindForeignEntity, "Structure.NewBond", "atoms don't belong to structure %s", S.name)
	}
	if a1 == a2 {
		return nil, newError(KindInvalidArgument, "Structure.NewBond", "can't bond atom %s to itself", a1)
	}
	if a1.ConnectsTo(a2) {
		return nil, newError(KindAlreadyConnected, "Structure.NewBond", "atoms %s and %s are already bonded", a1, a2)
	}
	b := &Bond{s: S, atoms: [2]*Atom{a1, a2}, radius: defaultBondRadius, halfbond: true, display: true}
	a1.bonds = append(a1.bonds, b)
	a1.neighbors = append(a1.neighbors, a2)
	a2.bonds = append(a2.bonds, b)
	a2.neighbors = append(a2.neighbors, a1)
	S.bonds = append(S.bonds, b)
	S.idatmValid = false
	S.invalidateTopology()
	S.tracker.AddCreated(changes.Bond, b)
	return b, nil
}

// NewResidue creates a residue. With a nil neighbor, the residue is appended
// to the residue list; otherwise it is placed before neighbor, or after it if
// after is true.
func (S *Structure) NewResidue(name, chainID string, pos int, insert byte, neighbor *Residue, after bool) (*Residue, error) {
	r := &Residue{s: S, name: name, chainID: chainID, number: pos, insert: insert, ribbonDisplay: false}
	if neighbor == nil {
		S.residues = append(S.residues, r)
	} else {
		idx := -1
		for i, v := range S.residues {
			if v == neighbor {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, newError(KindOutOfRange, "Structure.NewResidue", "waypoint residue not in residue list")
		}
		if after {
			idx++
		}
		S.residues = append(S.residues, nil)
		copy(S.residues[idx+1:], S.residues[idx:])
		S.residues[idx] = r
	}
	S.invalidateTopology()
	S.tracker.AddCreated(changes.Residue, r)
	return r, nil
}

// NewCoordSet creates a coordinate set with an id one past the last
// existing one (0 for the first), sized like the last set.
func (S *Structure) NewCoordSet() *CoordSet {
	if len(S.coordSets) == 0 {
		return S.NewCoordSetIndex(0)
	}
	return S.NewCoordSetIndex(S.coordSets[len(S.coordSets)-1].id + 1)
}

// NewCoordSetIndex creates a coordinate set with the given id, sized like the
// last existing set.
func (S *Structure) NewCoordSetIndex(id int) *CoordSet {
	size := S.numCoords
	if len(S.coordSets) > 0 {
		size = S.coordSets[len(S.coordSets)-1].Len()
	}
	return S.NewCoordSetSized(id, size)
}

// NewCoordSetSized creates a coordinate set holding size coordinates. The
// sets are kept sorted by id; a set with an existing id replaces the old one.
func (S *Structure) NewCoordSetSized(id, size int) *CoordSet {
	cs := newCoordSet(S, id, size)
	i := sort.Search(len(S.coordSets), func(i int) bool { return S.coordSets[i].id >= id })
	switch {
	case i < len(S.coordSets) && S.coordSets[i].id == id:
		old := S.coordSets[i]
		S.coordSets[i] = cs
		S.pbMgr.removeCoordSet(old)
		S.tracker.AddDeleted(changes.CoordSet, old)
		if S.activeCS == old {
			S.activeCS = cs
		}
	default:
		S.coordSets = append(S.coordSets, nil)
		copy(S.coordSets[i+1:], S.coordSets[i:])
		S.coordSets[i] = cs
	}
	if len(S.coordSets) > 1 {
		S.isTraj = true
	}
	S.tracker.AddCreated(changes.CoordSet, cs)
	return cs
}

// FindCoordSet returns the coordinate set with the given id, or nil.
func (S *Structure) FindCoordSet(id int) *CoordSet {
	i := sort.Search(len(S.coordSets), func(i int) bool { return S.coordSets[i].id >= id })
	if i < len(S.coordSets) && S.coordSets[i].id == id {
		return S.coordSets[i]
	}
	return nil
}

// SetActiveCoordSet makes cs the active coordinate set. A nil cs selects the
// first set, if any.
func (S *Structure) SetActiveCoordSet(cs *CoordSet) error {
	if cs == nil {
		if len(S.coordSets) == 0 {
			return nil
		}
		cs = S.coordSets[0]
	} else if cs.s != S || S.FindCoordSet(cs.id) != cs {
		return newError(KindOutOfRange, "Structure.SetActiveCoordSet", "requested active coordset not in coordsets")
	}
	if cs == S.activeCS {
		return nil
	}
	S.activeCS = cs
	S.invalidateMissingStructure()
	S.track(changes.ReasonActiveCoordSet)
	return nil
}

// FindResidue returns the residue with the given chain ID, number and
// insertion code, or nil.
func (S *Structure) FindResidue(chainID string, pos int, insert byte) *Residue {
	for _, r := range S.residues {
		if r.number == pos && r.insert == insert && r.chainID == chainID {
			return r
		}
	}
	return nil
}

// FindResidueNamed is like FindResidue, but the name must also match.
func (S *Structure) FindResidueNamed(chainID string, pos int, insert byte, name string) *Residue {
	for _, r := range S.residues {
		if r.number == pos && r.insert == insert && r.chainID == chainID && r.name == name {
			return r
		}
	}
	return nil
}

func (S *Structure) Name() string { return S.name }

func (S *Structure) SetName(name string) {
	if name == S.name {
		return
	}
	S.name = name
	S.track(changes.ReasonName)
}

// Metadata returns the header records of the structure, keyed by record name.
func (S *Structure) Metadata() map[string][]string { return S.metadata }

// SetMetadata replaces the structure's metadata.
func (S *Structure) SetMetadata(m map[string][]string) {
	if m == nil {
		m = make(map[string][]string)
	}
	S.metadata = m
	S.track(changes.ReasonMetadata)
}

// InputSeqInfo returns the residue names of each chain as given by the input
// file (e.g. SEQRES), keyed by chain ID.
func (S *Structure) InputSeqInfo() map[string][]string { return S.inputSeqInfo }

// InputSeqSource describes where the input sequences came from.
func (S *Structure) InputSeqSource() string { return S.inputSeqSource }

// SetInputSeqInfo sets the canonical residue names of chainID.
func (S *Structure) SetInputSeqInfo(chainID string, resNames []string) {
	S.inputSeqInfo[chainID] = resNames
	S.chainsMade = false
}

func (S *Structure) SetInputSeqSource(src string) { S.inputSeqSource = src }

func (S *Structure) PDBVersion() int { return S.pdbVersion }

func (S *Structure) SetPDBVersion(v int) { S.pdbVersion = v }

func (S *Structure) Display() bool { return S.display }

func (S *Structure) SetDisplay(d bool) {
	if d == S.display {
		return
	}
	S.display = d
	S.track(changes.ReasonDisplay)
}

func (S *Structure) BallScale() float64 { return S.ballScale }

func (S *Structure) SetBallScale(b float64) {
	if b == S.ballScale {
		return
	}
	S.ballScale = b
	S.track(changes.ReasonBallScale)
}

// IsTraj reports whether the structure is a trajectory, i.e. has had more
// than one coordinate set.
func (S *Structure) IsTraj() bool { return S.isTraj }

func (S *Structure) LowerCaseChains() bool { return S.lowerCaseChains }

func (S *Structure) SetLowerCaseChains(l bool) { S.lowerCaseChains = l }

func (S *Structure) AsterisksTranslated() bool { return S.asterisksTranslated }

func (S *Structure) SetAsterisksTranslated(a bool) { S.asterisksTranslated = a }

// IdatmValid reports whether the atom types are up to date with the topology.
func (S *Structure) IdatmValid() bool { return S.idatmValid }
