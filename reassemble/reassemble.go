// Package reassemble rebuilds polygons from the segment store's surviving
// owned segments, per §4.6 of the design. This is the Go counterpart of
// build2.py's save_datasource loop: gather a feature's live segments,
// feed them to polygonize, and take the first polygon produced.
//
// Failures are classified rather than propagated as pipeline-fatal: a
// small feature whose linework failed to close is dropped silently,
// while a large one is routed to the error sink for a human to inspect.
package reassemble

import (
	"github.com/mikenye/borderlines/feature"
	"github.com/mikenye/borderlines/geomadapter"
	"github.com/mikenye/borderlines/segment"
)

// lostPortionThreshold is the cutoff from §4.6's failure policy: a
// feature whose area divided by tolerance^2 falls below this is an
// acceptably small feature dropped by tolerance, not a corruption.
const lostPortionThreshold = 4

// Result is one feature's reassembly outcome.
type Result struct {
	Feature feature.Feature
	Polygon geomadapter.Geometry // zero if Dropped or Failed
	Dropped bool                 // polygonization failed, feature small enough to omit
	Failed  bool                 // polygonization failed, feature large enough to be corrupt
	LineSoup []geomadapter.Geometry // populated only when Failed, for the error sink
}

// Reassembler rebuilds one polygon per feature from a segment store.
type Reassembler struct {
	geo *geomadapter.Adapter
}

// New creates a Reassembler over the given geometry adapter.
func New(geo *geomadapter.Adapter) *Reassembler {
	return &Reassembler{geo: geo}
}

// memo avoids reconstructing identical two-point line strings: distinct
// segments that happen to share the same endpoint pair (possible once
// simplification has run) reuse one constructed geometry, though each
// segment still contributes its own polygonize() input. Memo size is
// bounded by the live segment count for the feature being reassembled.
type memo struct {
	geo   *geomadapter.Adapter
	lines map[[4]float64]geomadapter.Geometry
}

func newMemo(geo *geomadapter.Adapter) *memo {
	return &memo{geo: geo, lines: make(map[[4]float64]geomadapter.Geometry)}
}

func (m *memo) lineString(s segment.Segment) geomadapter.Geometry {
	key := [4]float64{s.A.X(), s.A.Y(), s.B.X(), s.B.Y()}
	if g, ok := m.lines[key]; ok {
		return g
	}
	g := m.geo.NewLineString(key[0], key[1], key[2], key[3])
	m.lines[key] = g
	return g
}

// Reassemble rebuilds a polygon for every feature in features, using the
// given segment store for live, current-tolerance segments.
func (r *Reassembler) Reassemble(store *segment.Store, features []feature.Feature, tolerance float64) []Result {
	results := make([]Result, 0, len(features))
	for _, f := range features {
		results = append(results, r.reassembleOne(store, f, tolerance))
	}
	return results
}

func (r *Reassembler) reassembleOne(store *segment.Store, f feature.Feature, tolerance float64) Result {
	segs := store.SegmentsOfFeature(f.Index)
	m := newMemo(r.geo)

	lines := make([]geomadapter.Geometry, 0, len(segs))
	for _, s := range segs {
		lines = append(lines, m.lineString(s))
	}

	polys := r.geo.Polygonize(lines)
	if len(polys) > 0 {
		return Result{Feature: f, Polygon: polys[0]}
	}

	lostPortion := f.Area / (tolerance * tolerance)
	if lostPortion < lostPortionThreshold {
		return Result{Feature: f, Dropped: true}
	}
	return Result{Feature: f, Failed: true, LineSoup: lines}
}
