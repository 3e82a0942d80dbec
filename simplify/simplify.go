// Package simplify implements the constrained, topology-preserving
// apex-removal loop described in §4.5 of the design: a Visvalingam-style
// simplifier that only collapses a vertex when doing so stays under an
// area tolerance AND does not introduce a crossing with any other live
// segment, anywhere in the dataset.
//
// This is the Go counterpart of build2.py's simplify_linework, rebuilt
// around an explicit [segment.Store] and [spatialindex.Index] rather than
// a module-level SQLite connection and Rtree instance, and with the
// per-removal spatial-index update inserting the surviving segment's own
// GUID (the source's shadowed-variable bug, noted as an open question in
// §9 of the design, does not reproduce here).
package simplify

import (
	"sort"

	"github.com/google/btree"
	"github.com/mikenye/borderlines/geomadapter"
	"github.com/mikenye/borderlines/point"
	"github.com/mikenye/borderlines/segment"
	"github.com/mikenye/borderlines/spatialindex"
)

// Simplifier runs the constrained apex-removal loop over a segment store,
// using geo for the robust crosses() check between a candidate collapsed
// segment and its spatial neighbors.
type Simplifier struct {
	geo *geomadapter.Adapter
}

// New creates a Simplifier over the given geometry adapter.
func New(geo *geomadapter.Adapter) *Simplifier {
	return &Simplifier{geo: geo}
}

// triangle is one candidate apex removal: collapsing the shared vertex of
// segments g1=(a,b) and g2=(b,c) into a single segment (a,c).
type triangle struct {
	area       float64
	g1, g2     segment.GUID
	a, c       point.Point
}

// lineLoad pairs a line with its live segment count, used only to order
// lines within a pass (descending count), per the ordering guarantee in
// §5.
type lineLoad struct {
	line  segment.LineID
	count int
}

func lineLoadLess(a, b lineLoad) bool {
	if a.count != b.count {
		return a.count > b.count // descending by count
	}
	return a.line < b.line // deterministic tiebreak
}

// Simplify runs passes over store until no pass removes a vertex,
// applying the given tolerance. minArea = tolerance^2, as specified.
// The simplifier never fails: a candidate that would cross a neighbor is
// simply skipped, and the pass continues.
func (s *Simplifier) Simplify(store *segment.Store, idx *spatialindex.Index, tolerance float64) {
	minArea := tolerance * tolerance
	stable := make(map[segment.LineID]bool)

	for {
		order := s.orderLines(store, stable)
		anyRemoved := false

		for _, line := range order {
			if stable[line] {
				continue
			}
			if s.processLine(store, idx, line, minArea, stable) {
				anyRemoved = true
			}
		}

		idx.RebuildFrom(store.AllLive())

		if !anyRemoved {
			break
		}
	}
}

// orderLines enumerates non-stable lines in descending live-segment-count
// order, using a google/btree ordered tree: construct once per pass, then
// drain in order.
func (s *Simplifier) orderLines(store *segment.Store, stable map[segment.LineID]bool) []segment.LineID {
	tree := btree.NewG[lineLoad](32, lineLoadLess)
	for _, line := range store.LineIDs() {
		if stable[line] {
			continue
		}
		count := len(store.SegmentsOfLine(line))
		tree.ReplaceOrInsert(lineLoad{line: line, count: count})
	}

	out := make([]segment.LineID, 0, tree.Len())
	tree.Ascend(func(item lineLoad) bool {
		out = append(out, item.line)
		return true
	})
	return out
}

// processLine runs one pass over a single line's candidate apex removals
// and reports whether any removal was applied. It marks the line stable
// if, at the start of the pass, its smallest candidate triangle is
// already at or above the area threshold.
func (s *Simplifier) processLine(store *segment.Store, idx *spatialindex.Index, line segment.LineID, minArea float64, stable map[segment.LineID]bool) bool {
	segs := store.SegmentsOfLine(line)
	if len(segs) < 2 {
		stable[line] = true
		return false
	}

	triangles := make([]triangle, 0, len(segs)-1)
	for i := 0; i+1 < len(segs); i++ {
		a, c := segs[i].A, segs[i+1].B
		triangles = append(triangles, triangle{
			area: triangleArea(a, segs[i].B, c),
			g1:   segs[i].GUID,
			g2:   segs[i+1].GUID,
			a:    a,
			c:    c,
		})
	}

	sort.Slice(triangles, func(i, j int) bool { return triangles[i].area < triangles[j].area })

	if triangles[0].area >= minArea {
		stable[line] = true
		return false
	}

	preserved := make(map[segment.GUID]bool)
	removed := false

	for _, t := range triangles {
		if t.area >= minArea {
			break
		}
		if preserved[t.g1] || preserved[t.g2] {
			continue
		}
		if s.crossesNeighbor(store, idx, t) {
			continue
		}

		store.UpdateEndpoints(t.g1, t.a, t.c)
		store.MarkRemoved(t.g2)
		if updated, ok := store.Get(t.g1); ok {
			idx.Insert(t.g1, spatialindex.EnvelopeOfSegment(updated))
		}
		preserved[t.g1] = true
		preserved[t.g2] = true
		removed = true
	}

	return removed
}

// crossesNeighbor queries the spatial index around the candidate
// collapsed segment (a,c) and tests crosses() against every live segment
// it returns, other than the two being collapsed. A stale or tombstoned
// hit is simply skipped; I5 tolerance is the index's job, not the
// simplifier's.
func (s *Simplifier) crossesNeighbor(store *segment.Store, idx *spatialindex.Index, t triangle) bool {
	env := spatialindex.EnvelopeOfSegment(segment.Segment{A: t.a, B: t.c})
	candidate := s.geo.NewLineString(t.a.X(), t.a.Y(), t.c.X(), t.c.Y())

	for _, guid := range idx.Query(env) {
		if guid == t.g1 || guid == t.g2 {
			continue
		}
		other, ok := store.Get(guid)
		if !ok || other.Removed {
			continue
		}
		otherLine := s.geo.NewLineString(other.A.X(), other.A.Y(), other.B.X(), other.B.Y())
		if s.geo.Crosses(candidate, otherLine) {
			return true
		}
	}
	return false
}

// triangleArea computes the unsigned area of the triangle (a, b, c) via
// the shoelace formula, matching Shapely's Polygon([c1,c2,c3,c1]).area
// used by the distilled system.
func triangleArea(a, b, c point.Point) float64 {
	area := a.X()*(b.Y()-c.Y()) + b.X()*(c.Y()-a.Y()) + c.X()*(a.Y()-b.Y())
	if area < 0 {
		area = -area
	}
	return area / 2
}
