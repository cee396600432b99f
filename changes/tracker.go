/*
 * tracker.go, part of atomstruct.
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

//Package changes records which entities of a molecular structure were created,
//modified or deleted since the last time the record was cleared.
package changes

import "sort"

// Class identifies the kind of entity a change refers to.
type Class int

const (
	Atom Class = iota
	Bond
	Pseudobond
	Residue
	Chain
	Structure
	PseudobondGroup
	CoordSet
	NumClasses
)

var classNames = [NumClasses]string{"Atom", "Bond", "Pseudobond", "Residue", "Chain", "Structure", "PseudobondGroup", "CoordSet"}

func (c Class) String() string {
	if c < 0 || c >= NumClasses {
		return "Unknown"
	}
	return classNames[c]
}

//Modification reasons.
const (
	ReasonActiveCoordSet    = "active coord set"
	ReasonAltLoc            = "alt loc"
	ReasonBallScale         = "ball_scale"
	ReasonBfactor           = "bfactor"
	ReasonColor             = "color"
	ReasonCoord             = "coord"
	ReasonDisplay           = "display"
	ReasonDrawMode          = "draw_mode"
	ReasonHalfbond          = "halfbond"
	ReasonHide              = "hide"
	ReasonIdatmType         = "idatm_type"
	ReasonIsHet             = "is_het"
	ReasonMetadata          = "metadata"
	ReasonName              = "name"
	ReasonOccupancy         = "occupancy"
	ReasonPseudobonds       = "pseudobonds"
	ReasonRadius            = "radius"
	ReasonResidues          = "residues"
	ReasonRibbonColor       = "ribbon_color"
	ReasonRibbonDisplay     = "ribbon_display"
	ReasonSequence          = "sequence"
	ReasonSerialNumber      = "serial_number"
	ReasonStructureCategory = "structure_category"
	ReasonSSID              = "ss_id"
	ReasonSSType            = "ss_type"
)

// Changes is the record for one entity class. Deleted entities are only
// counted, never kept.
type Changes struct {
	Created    map[any]struct{}
	Modified   map[any]struct{}
	Reasons    map[string]struct{}
	NumDeleted int
}

func newChanges() Changes {
	return Changes{
		Created:  make(map[any]struct{}),
		Modified: make(map[any]struct{}),
		Reasons:  make(map[string]struct{}),
	}
}

// Changed reports whether anything was recorded.
func (c Changes) Changed() bool {
	return len(c.Created) != 0 || len(c.Modified) != 0 || c.NumDeleted != 0
}

// ReasonList returns the reasons, sorted.
func (c Changes) ReasonList() []string {
	ret := make([]string, 0, len(c.Reasons))
	for r := range c.Reasons {
		ret = append(ret, r)
	}
	sort.Strings(ret)
	return ret
}

func (c Changes) clone() Changes {
	n := newChanges()
	for k := range c.Created {
		n.Created[k] = struct{}{}
	}
	for k := range c.Modified {
		n.Modified[k] = struct{}{}
	}
	for k := range c.Reasons {
		n.Reasons[k] = struct{}{}
	}
	n.NumDeleted = c.NumDeleted
	return n
}

// Tracker is the change ledger. It is not safe for concurrent use; like the
// structures that feed it, callers serialize access.
type Tracker struct {
	discarding bool
	slots      [NumClasses]Changes
}

// New returns an empty Tracker.
func New() *Tracker {
	t := new(Tracker)
	for i := range t.slots {
		t.slots[i] = newChanges()
	}
	return t
}

// Discarding reports whether the tracker ignores incoming changes.
func (t *Tracker) Discarding() bool {
	return t.discarding
}

// SetDiscarding turns recording off (true) or back on.
func (t *Tracker) SetDiscarding(d bool) {
	t.discarding = d
}

// AddCreated records obj as newly created.
func (t *Tracker) AddCreated(c Class, obj any) {
	if t == nil || t.discarding {
		return
	}
	t.slots[c].Created[obj] = struct{}{}
}

// AddModified records obj as modified for the given reasons. Objects created
// since the last Clear are not also recorded as modified.
func (t *Tracker) AddModified(c Class, obj any, reasons ...string) {
	if t == nil || t.discarding {
		return
	}
	slot := &t.slots[c]
	if _, ok := slot.Created[obj]; ok {
		return
	}
	slot.Modified[obj] = struct{}{}
	for _, r := range reasons {
		slot.Reasons[r] = struct{}{}
	}
}

// AddDeleted counts obj as deleted and forgets it.
func (t *Tracker) AddDeleted(c Class, obj any) {
	if t == nil || t.discarding {
		return
	}
	slot := &t.slots[c]
	slot.NumDeleted++
	delete(slot.Created, obj)
	delete(slot.Modified, obj)
}

// Changed reports whether any class has recorded changes.
func (t *Tracker) Changed() bool {
	if t == nil {
		return false
	}
	for _, s := range t.slots {
		if s.Changed() {
			return true
		}
	}
	return false
}

// Changes returns a copy of the per-class records. Classes without changes are included.
func (t *Tracker) Changes() map[Class]Changes {
	ret := make(map[Class]Changes, NumClasses)
	for i, s := range t.slots {
		ret[Class(i)] = s.clone()
	}
	return ret
}

// Clear empties every slot.
func (t *Tracker) Clear() {
	for i := range t.slots {
		t.slots[i] = newChanges()
	}
}
