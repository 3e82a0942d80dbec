// Package segment implements the segment store, the single source of
// truth for the border-decomposition and simplification pipeline. It
// holds every directed line segment produced by decomposition, tombstones
// rather than deletes them as simplification removes vertices, and
// indexes them by line and by owning feature so the rest of the pipeline
// never has to scan the whole store.
//
// The store replaces the SQLite table the distilled system keeps as an
// ambient singleton (build2.py's `segments` table plus its three
// indexes): the mutable state here is an explicit value threaded through
// the decomposer, simplifier, and reassembler rather than a process-wide
// connection.
package segment

import (
	"sort"

	"github.com/mikenye/borderlines/point"
)

// NoOwner marks a segment's owner2 as unset: the segment lies on a
// feature's unshared boundary rather than a border shared with a
// neighbor.
const NoOwner = -1

// GUID is a segment's unique, monotonically assigned identifier. GUIDs
// start at 1; 0 is never issued and can be used as a sentinel.
type GUID uint64

// LineID groups segments that form one connected component of either a
// shared border or an unshared boundary fragment.
type LineID uint64

// Segment is the atomic unit of mutation: a directed two-point line with
// its owning feature(s) and line grouping. Direction is recorded (for
// coordinate stability across UpdateEndpoints) but carries no semantic
// meaning to neighboring segments; adjacency is purely by shared
// endpoint, per §4.5.
type Segment struct {
	GUID    GUID
	Owner1  int
	Owner2  int // NoOwner if unshared
	LineID  LineID
	A, B    point.Point
	Removed bool
}

// Shared reports whether the segment lies on a border between two
// features (I2).
func (s Segment) Shared() bool { return s.Owner2 != NoOwner }

// Store is the ordered, durable collection of segments. It is the only
// mutable state shared by the decomposer, simplifier, and reassembler;
// no other package holds a parallel copy of segment data.
type Store struct {
	segments []Segment // index i holds GUID i+1; never shrinks
	byLine   map[LineID][]GUID
	byOwner  map[int][]GUID
	nextGUID GUID
	nextLine LineID
}

// New creates an empty segment store.
func New() *Store {
	return &Store{
		byLine:  make(map[LineID][]GUID),
		byOwner: make(map[int][]GUID),
	}
}

// AllocateLineID returns the next monotonic line identifier. Callers
// allocate one per connected linestring component discovered during
// decomposition.
func (s *Store) AllocateLineID() LineID {
	s.nextLine++
	return s.nextLine
}

// Insert appends a new segment, assigning it the next GUID. owner2 should
// be [NoOwner] for unshared-boundary segments.
func (s *Store) Insert(owner1, owner2 int, line LineID, a, b point.Point) GUID {
	s.nextGUID++
	guid := s.nextGUID
	seg := Segment{
		GUID:   guid,
		Owner1: owner1,
		Owner2: owner2,
		LineID: line,
		A:      a,
		B:      b,
	}
	s.segments = append(s.segments, seg)
	s.byLine[line] = append(s.byLine[line], guid)
	s.byOwner[owner1] = append(s.byOwner[owner1], guid)
	if owner2 != NoOwner {
		s.byOwner[owner2] = append(s.byOwner[owner2], guid)
	}
	return guid
}

func (s *Store) index(guid GUID) int { return int(guid) - 1 }

// Get returns the current value of a segment by GUID. The bool result is
// false if the GUID was never issued.
func (s *Store) Get(guid GUID) (Segment, bool) {
	i := s.index(guid)
	if i < 0 || i >= len(s.segments) {
		return Segment{}, false
	}
	return s.segments[i], true
}

// MarkRemoved tombstones a segment. Removed segments are never deleted
// from the backing slice so that GUIDs remain stable for the lifetime of
// the store.
func (s *Store) MarkRemoved(guid GUID) {
	i := s.index(guid)
	if i < 0 || i >= len(s.segments) {
		return
	}
	s.segments[i].Removed = true
}

// UpdateEndpoints rewrites a segment's endpoints in place, as the
// simplifier does when it collapses an apex vertex.
func (s *Store) UpdateEndpoints(guid GUID, a, b point.Point) {
	i := s.index(guid)
	if i < 0 || i >= len(s.segments) {
		return
	}
	s.segments[i].A = a
	s.segments[i].B = b
}

// SegmentsOfLine yields the non-removed segments of a line, ordered by
// ascending GUID (construction order), satisfying the line-continuity
// invariant (I3): consecutive entries share an endpoint.
func (s *Store) SegmentsOfLine(line LineID) []Segment {
	guids := s.byLine[line]
	out := make([]Segment, 0, len(guids))
	for _, g := range guids {
		seg, ok := s.Get(g)
		if ok && !seg.Removed {
			out = append(out, seg)
		}
	}
	return out
}

// SegmentsOfFeature yields every non-removed segment owned by feature i,
// whether as owner1 or owner2.
func (s *Store) SegmentsOfFeature(i int) []Segment {
	guids := s.byOwner[i]
	out := make([]Segment, 0, len(guids))
	for _, g := range guids {
		seg, ok := s.Get(g)
		if ok && !seg.Removed {
			out = append(out, seg)
		}
	}
	return out
}

// LineIDs returns every line identifier that has ever held a segment,
// in allocation order.
func (s *Store) LineIDs() []LineID {
	ids := make([]LineID, 0, len(s.byLine))
	for id := range s.byLine {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AllLive returns every non-removed segment in the store, in GUID order.
// Used to rebuild the spatial index after a simplification pass.
func (s *Store) AllLive() []Segment {
	out := make([]Segment, 0, len(s.segments))
	for _, seg := range s.segments {
		if !seg.Removed {
			out = append(out, seg)
		}
	}
	return out
}

// CountActive returns the number of non-removed segments.
func (s *Store) CountActive() int {
	n := 0
	for _, seg := range s.segments {
		if !seg.Removed {
			n++
		}
	}
	return n
}

// CountLines returns the number of distinct line identifiers that still
// have at least one non-removed segment.
func (s *Store) CountLines() int {
	n := 0
	for _, guids := range s.byLine {
		for _, g := range guids {
			if seg, ok := s.Get(g); ok && !seg.Removed {
				n++
				break
			}
		}
	}
	return n
}
