/*
 * pbmanager.go, part of atomstruct.
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

	"github.com/rmera/atomstruct/changes"
	"github.com/rmera/atomstruct/destruct"
)

// GroupPolicy tells PBManager.Group what to do with a missing group.
type GroupPolicy int

const (
	GroupNone        GroupPolicy = iota //only look up
	GroupNormal                         //create a per-structure group
	GroupPerCoordSet                    //create a per-coordset group
)

// PBManager owns the pseudobond groups of a structure, or, for the global
// manager, the groups whose pseudobonds join atoms of different structures.
type PBManager struct {
	s       *Structure //nil for the global manager
	groups  map[string]*PBGroup
	tracker *changes.Tracker
	logger  *slog.Logger
}

func newPBManager(s *Structure) *PBManager {
	return &PBManager{s: s, groups: make(map[string]*PBGroup), tracker: s.tracker, logger: s.logger}
}

// NewGlobalPBManager returns a manager for pseudobonds spanning structures.
// It only holds per-structure groups. If coord is not nil, the manager
// observes it to drop pseudobonds whose atoms are destroyed.
func NewGlobalPBManager(tracker *changes.Tracker, coord *destruct.Coordinator, logger *slog.Logger) *PBManager {
	if tracker == nil {
		tracker = changes.New()
		tracker.SetDiscarding(true)
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &PBManager{groups: make(map[string]*PBGroup), tracker: tracker, logger: logger}
	if coord != nil {
		coord.AddObserver(m)
	}
	return m
}

// Structure returns the owning structure, nil for the global manager.
func (M *PBManager) Structure() *Structure { return M.s }

// Group returns the group called name. A missing group is created according
// to policy, or nil is returned for GroupNone. Asking for an existing group
// with a creation policy of the other kind is a type mismatch.
func (M *PBManager) Group(name string, policy GroupPolicy) (*PBGroup, error) {
	if g, ok := M.groups[name]; ok {
		switch {
		case policy == GroupNormal && g.kind != PerStructure,
			policy == GroupPerCoordSet && g.kind != PerCoordSet:
			return nil, newError(KindTypeMismatch, "PBManager.Group", "group %s already exists as %s", name, g.kind)
		}
		return g, nil
	}
	var kind GroupKind
	switch policy {
	case GroupNone:
		return nil, nil
	case GroupNormal:
		kind = PerStructure
	case GroupPerCoordSet:
		if M.s == nil {
			return nil, newError(KindInvalidArgument, "PBManager.Group", "the global manager can't hold per-coordset group %s", name)
		}
		kind = PerCoordSet
	default:
		return nil, newError(KindInvalidArgument, "PBManager.Group", "unknown group policy %d", policy)
	}
	g := newPBGroup(M, name, kind)
	M.groups[name] = g
	M.tracker.AddCreated(changes.PseudobondGroup, g)
	return g, nil
}

// GroupNames returns the group names, sorted.
func (M *PBManager) GroupNames() []string {
	ret := make([]string, 0, len(M.groups))
	for k := range M.groups {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Groups returns the groups sorted by name.
func (M *PBManager) Groups() []*PBGroup {
	names := M.GroupNames()
	ret := make([]*PBGroup, len(names))
	for i, n := range names {
		ret[i] = M.groups[n]
	}
	return ret
}

// DeleteGroup removes g and its pseudobonds.
func (M *PBManager) DeleteGroup(g *PBGroup) error {
	if g == nil || M.groups[g.name] != g {
		return newError(KindInvalidArgument, "PBManager.DeleteGroup", "group not in manager")
	}
	g.Clear()
	delete(M.groups, g.name)
	M.tracker.AddDeleted(changes.PseudobondGroup, g)
	return nil
}

// DestructorsDone drops the pseudobonds of destroyed atoms.
func (M *PBManager) DestructorsDone(destroyed map[any]struct{}) {
	for _, g := range M.Groups() {
		g.checkDestroyedAtoms(destroyed)
	}
}

func (M *PBManager) removeCoordSet(cs *CoordSet) {
	for _, g := range M.Groups() {
		g.removeCoordSet(cs)
	}
}
