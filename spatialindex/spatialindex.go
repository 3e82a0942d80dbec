// Package spatialindex wraps github.com/dhconnelly/rtreego to give the
// border decomposer and constrained simplifier fast envelope-intersection
// queries over segment bounding boxes, per §4.3 of the design: a 2-D
// R-tree keyed by segment GUID.
//
// The index is deliberately tolerant of staleness: between rebuilds it
// may still report GUIDs for segments that have since been tombstoned or
// moved. Callers are expected to re-check [segment.Store] for the
// current, live state of anything a query returns (see the simplifier's
// cross-check, which does exactly this).
package spatialindex

import (
	"github.com/dhconnelly/rtreego"
	"github.com/mikenye/borderlines/segment"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50
)

// entry adapts a segment GUID and its envelope to rtreego.Spatial.
type entry struct {
	guid   segment.GUID
	bounds rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.bounds }

// Envelope is an axis-aligned bounding box in the segment's current
// coordinate system.
type Envelope struct {
	MinX, MinY, MaxX, MaxY float64
}

func envelopeOf(x1, y1, x2, y2 float64) Envelope {
	return Envelope{
		MinX: min(x1, x2),
		MinY: min(y1, y2),
		MaxX: max(x1, x2),
		MaxY: max(y1, y2),
	}
}

// EnvelopeOfSegment computes the envelope of a segment's current
// endpoints, the value stored alongside its GUID in the index.
func EnvelopeOfSegment(s segment.Segment) Envelope {
	return envelopeOf(s.A.X(), s.A.Y(), s.B.X(), s.B.Y())
}

func (e Envelope) rect() rtreego.Rect {
	// rtreego.NewRect takes a minimum corner and non-negative side
	// lengths; a degenerate (zero-width or zero-height) segment envelope
	// is padded with a tiny epsilon so rtreego accepts it.
	const pad = 1e-9
	width := e.MaxX - e.MinX
	height := e.MaxY - e.MinY
	if width <= 0 {
		width = pad
	}
	if height <= 0 {
		height = pad
	}
	r, err := rtreego.NewRect(rtreego.Point{e.MinX, e.MinY}, []float64{width, height})
	if err != nil {
		// NewRect only errors on non-positive lengths, which the padding
		// above rules out.
		panic(err)
	}
	return r
}

// Index is the live R-tree over segment envelopes.
type Index struct {
	tree *rtreego.Rtree
}

// New creates an empty index.
func New() *Index {
	return &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
}

// Insert adds (or re-adds) a segment's envelope to the index. Repeated
// inserts for the same GUID are expected as segments are updated; the
// index does not deduplicate, matching its documented tolerance for
// stale entries (I5 is restored by the next RebuildFrom).
func (idx *Index) Insert(guid segment.GUID, env Envelope) {
	idx.tree.Insert(&entry{guid: guid, bounds: env.rect()})
}

// RebuildFrom replaces the index contents with exactly the given live
// segments, discarding any stale entries accumulated during a pass. The
// simplifier calls this once per pass, a global barrier in the otherwise
// per-line work of that pass.
func (idx *Index) RebuildFrom(live []segment.Segment) {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for _, s := range live {
		tree.Insert(&entry{guid: s.GUID, bounds: EnvelopeOfSegment(s).rect()})
	}
	idx.tree = tree
}

// Query returns the GUIDs of every segment whose indexed envelope
// intersects env. Results may include tombstoned or stale-envelope
// segments; callers must filter through the segment store.
func (idx *Index) Query(env Envelope) []segment.GUID {
	hits := idx.tree.SearchIntersect(env.rect())
	out := make([]segment.GUID, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*entry).guid)
	}
	return out
}
