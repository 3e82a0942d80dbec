package decompose

import (
	"testing"

	"github.com/mikenye/borderlines/feature"
	"github.com/mikenye/borderlines/geomadapter"
	"github.com/mikenye/borderlines/segment"
	"github.com/mikenye/borderlines/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adjacentSquares(geo *geomadapter.Adapter) feature.Layer {
	left := geo.FromWKT("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))")
	right := geo.FromWKT("POLYGON ((10 0, 20 0, 20 10, 10 10, 10 0))")

	mk := func(i int, g geomadapter.Geometry) feature.Feature {
		return feature.Feature{
			Index:    i,
			Geometry: g,
			Area:     geo.Area(g),
			Boundary: geo.Boundary(g),
		}
	}

	return feature.Layer{
		Features: []feature.Feature{mk(0, left), mk(1, right)},
	}
}

func TestDecompose_SplitsSharedAndUnsharedBorders(t *testing.T) {
	geo := geomadapter.New()
	layer := adjacentSquares(geo)

	store := segment.New()
	idx := spatialindex.New()
	d := New(geo)

	err := d.Decompose(store, idx, layer)
	require.NoError(t, err)

	shared := store.SegmentsOfFeature(0)
	var sharedCount, unsharedCount int
	for _, s := range shared {
		if s.Shared() {
			sharedCount++
		} else {
			unsharedCount++
		}
	}
	assert.Positive(t, sharedCount, "the two squares share a vertical edge")
	assert.Positive(t, unsharedCount, "each square has boundary outside the shared edge")

	// Both features should see the same shared segments as neighbors.
	assert.Equal(t, sharedCount, countShared(store.SegmentsOfFeature(1)))
}

func TestDecompose_DisjointFeaturesHaveNoSharedSegments(t *testing.T) {
	geo := geomadapter.New()
	left := geo.FromWKT("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))")
	far := geo.FromWKT("POLYGON ((100 100, 110 100, 110 110, 100 110, 100 100))")

	layer := feature.Layer{
		Features: []feature.Feature{
			{Index: 0, Geometry: left, Area: geo.Area(left), Boundary: geo.Boundary(left)},
			{Index: 1, Geometry: far, Area: geo.Area(far), Boundary: geo.Boundary(far)},
		},
	}

	store := segment.New()
	idx := spatialindex.New()
	d := New(geo)

	require.NoError(t, d.Decompose(store, idx, layer))
	assert.Equal(t, 0, countShared(store.SegmentsOfFeature(0)))
	assert.Equal(t, 0, countShared(store.SegmentsOfFeature(1)))
}

func TestDecompose_PopulatesSpatialIndex(t *testing.T) {
	geo := geomadapter.New()
	layer := adjacentSquares(geo)

	store := segment.New()
	idx := spatialindex.New()
	d := New(geo)

	require.NoError(t, d.Decompose(store, idx, layer))

	hits := idx.Query(spatialindex.Envelope{MinX: 0, MinY: 0, MaxX: 20, MaxY: 10})
	assert.NotEmpty(t, hits)
	for _, guid := range hits {
		_, ok := store.Get(guid)
		assert.True(t, ok)
	}
}

func countShared(segs []segment.Segment) int {
	n := 0
	for _, s := range segs {
		if s.Shared() {
			n++
		}
	}
	return n
}
