// Package decompose populates a segment store and spatial index from a
// set of adjacent polygon features, splitting each feature's boundary
// into shared-border and unshared-boundary segments keyed by owner, per
// §4.4 of the design. This is the Go counterpart of build2.py's
// populate_shared_segments_by_combination/_by_rtree and
// populate_unshared_segments.
package decompose

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
	"github.com/mikenye/borderlines/feature"
	"github.com/mikenye/borderlines/geomadapter"
	"github.com/mikenye/borderlines/point"
	"github.com/mikenye/borderlines/rectangle"
	"github.com/mikenye/borderlines/segment"
	"github.com/mikenye/borderlines/spatialindex"
)

// LengthEpsilon is the default tolerance for the per-feature length
// check (§4.4 Validation), in the feature layer's coordinate units.
const LengthEpsilon = 1e-6

// LengthCheckError reports a fatal I1 violation: a feature's reconstructed
// boundary length (shared borders + unshared boundary) does not match its
// original boundary length within [LengthEpsilon].
type LengthCheckError struct {
	FeatureIndex int
	Original     float64
	Reconstructed float64
}

func (e *LengthCheckError) Error() string {
	return fmt.Sprintf(
		"decompose: feature %d length check failed: original=%g reconstructed=%g",
		e.FeatureIndex, e.Original, e.Reconstructed,
	)
}

// featureBounds adapts a feature's envelope to rtreego.Spatial so the
// provisional feature-level R-tree can prune the O(N^2) pairwise
// intersection search down to near O(N*k), per §4.4.
type featureBounds struct {
	index  int
	bounds rtreego.Rect
}

func (f *featureBounds) Bounds() rtreego.Rect { return f.bounds }

// Decomposer owns the geometry adapter used to compute shared and
// unshared borders.
type Decomposer struct {
	geo *geomadapter.Adapter
}

// New creates a Decomposer over the given geometry adapter.
func New(geo *geomadapter.Adapter) *Decomposer {
	return &Decomposer{geo: geo}
}

// sharedOf tracks, per feature, the shared-border geometries that touch
// it, so unshared-boundary computation can subtract them in turn.
type sharedOf map[int][]geomadapter.Geometry

// Decompose populates store and idx from layer, returning a fatal error
// if any feature's I1 length check fails. Exact-envelope pruning is used
// for the provisional feature R-tree: the source's 0.1%-buffer before
// intersection (open question in §9) is not reproduced here, since exact
// bounds are sufficient once the true intersects() test follows.
func (d *Decomposer) Decompose(store *segment.Store, idx *spatialindex.Index, layer feature.Layer) error {
	shared := d.populateSharedBorders(store, idx, layer)
	return d.populateUnsharedBorders(store, idx, layer, shared)
}

func (d *Decomposer) populateSharedBorders(store *segment.Store, idx *spatialindex.Index, layer feature.Layer) sharedOf {
	tree := rtreego.NewTree(2, 25, 50)
	for i, f := range layer.Features {
		tree.Insert(&featureBounds{index: i, bounds: boundsOf(f)})
	}

	shared := make(sharedOf)
	seen := make(map[[2]int]bool)

	for i, fi := range layer.Features {
		candidates := tree.SearchIntersect(boundsOf(fi))
		for _, c := range candidates {
			j := c.(*featureBounds).index
			if j <= i {
				continue
			}
			pair := [2]int{i, j}
			if seen[pair] {
				continue
			}
			seen[pair] = true

			fj := layer.Features[j]
			if !d.geo.Intersects(fi.Geometry, fj.Geometry) {
				continue
			}
			border := d.geo.LineMerge(d.geo.Intersection(fi.Geometry, fj.Geometry))
			if border.IsZero() {
				continue
			}

			for _, part := range border.Parts() {
				if part.Kind() != geomadapter.KindLineString {
					continue
				}
				lineID := store.AllocateLineID()
				insertChain(store, idx, i, j, lineID, part.Coords())
			}

			shared[i] = append(shared[i], border)
			shared[j] = append(shared[j], border)
		}
	}
	return shared
}

func (d *Decomposer) populateUnsharedBorders(store *segment.Store, idx *spatialindex.Index, layer feature.Layer, shared sharedOf) error {
	for i, f := range layer.Features {
		boundary := f.Boundary
		for _, border := range shared[i] {
			boundary = d.geo.Difference(boundary, border)
		}

		var unsharedLength float64
		for _, part := range boundary.Parts() {
			if part.Kind() != geomadapter.KindLineString {
				continue
			}
			lineID := store.AllocateLineID()
			coords := part.Coords()
			insertChain(store, idx, i, segment.NoOwner, lineID, coords)
			unsharedLength += d.geo.Length(part)
		}

		var sharedLength float64
		for _, border := range shared[i] {
			sharedLength += d.geo.Length(border)
		}

		original := d.geo.Length(f.Boundary)
		reconstructed := sharedLength + unsharedLength
		if diff := original - reconstructed; diff > LengthEpsilon || diff < -LengthEpsilon {
			return &LengthCheckError{FeatureIndex: i, Original: original, Reconstructed: reconstructed}
		}
	}
	return nil
}

// insertChain appends one segment per consecutive coordinate pair in
// coords to the store, allocating owner1/owner2 as given, and inserts
// each into the spatial index.
func insertChain(store *segment.Store, idx *spatialindex.Index, owner1, owner2 int, lineID segment.LineID, coords [][2]float64) {
	for k := 0; k+1 < len(coords); k++ {
		a := point.New(coords[k][0], coords[k][1])
		b := point.New(coords[k+1][0], coords[k+1][1])
		guid := store.Insert(owner1, owner2, lineID, a, b)
		seg, _ := store.Get(guid)
		idx.Insert(guid, spatialindex.EnvelopeOfSegment(seg))
	}
}

// boundsOf derives a feature's envelope from its boundary's coordinate
// extent, expressed as a rectangle.Rectangle (the teacher's own
// axis-aligned-box type) before being handed to rtreego as a Rect. A
// feature carries no separately-stored envelope.
func boundsOf(f feature.Feature) rtreego.Rect {
	minX, minY := float64(0), float64(0)
	maxX, maxY := float64(0), float64(0)
	first := true
	for _, part := range f.Boundary.Parts() {
		for _, c := range part.Coords() {
			if first {
				minX, maxX = c[0], c[0]
				minY, maxY = c[1], c[1]
				first = false
				continue
			}
			minX = min(minX, c[0])
			maxX = max(maxX, c[0])
			minY = min(minY, c[1])
			maxY = max(maxY, c[1])
		}
	}

	const pad = 1e-9
	if maxX-minX <= 0 {
		maxX = minX + pad
	}
	if maxY-minY <= 0 {
		maxY = minY + pad
	}
	box := rectangle.New(minX, minY, maxX, maxY)

	r, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{box.Width(), box.Height()})
	if err != nil {
		panic(err)
	}
	return r
}
