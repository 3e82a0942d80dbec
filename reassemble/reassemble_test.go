package reassemble

import (
	"testing"

	"github.com/mikenye/borderlines/feature"
	"github.com/mikenye/borderlines/geomadapter"
	"github.com/mikenye/borderlines/point"
	"github.com/mikenye/borderlines/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(store *segment.Store, owner int) segment.LineID {
	line := store.AllocateLineID()
	corners := []point.Point{
		point.New(0, 0),
		point.New(10, 0),
		point.New(10, 10),
		point.New(0, 10),
		point.New(0, 0),
	}
	for i := 0; i+1 < len(corners); i++ {
		store.Insert(owner, segment.NoOwner, line, corners[i], corners[i+1])
	}
	return line
}

func TestReassemble_ClosedRingProducesPolygon(t *testing.T) {
	geo := geomadapter.New()
	store := segment.New()
	square(store, 0)

	r := New(geo)
	f := feature.Feature{Index: 0, Area: 100}
	results := r.Reassemble(store, []feature.Feature{f}, 1)

	require.Len(t, results, 1)
	res := results[0]
	assert.False(t, res.Dropped)
	assert.False(t, res.Failed)
	assert.False(t, res.Polygon.IsZero())
	assert.InDelta(t, 100, geo.Area(res.Polygon), 1e-6)
}

func TestReassemble_BrokenRingSmallFeatureIsDropped(t *testing.T) {
	geo := geomadapter.New()
	store := segment.New()
	line := store.AllocateLineID()
	// An open chain, not a closed ring: polygonize cannot close it.
	store.Insert(0, segment.NoOwner, line, point.New(0, 0), point.New(10, 0))
	store.Insert(0, segment.NoOwner, line, point.New(10, 0), point.New(10, 10))

	r := New(geo)
	// Area small relative to tolerance^2: lostPortion = 1/100 = 0.01, well
	// under the threshold of 4, so the feature is dropped, not failed.
	f := feature.Feature{Index: 0, Area: 1}
	results := r.Reassemble(store, []feature.Feature{f}, 10)

	require.Len(t, results, 1)
	assert.True(t, results[0].Dropped)
	assert.False(t, results[0].Failed)
}

func TestReassemble_BrokenRingLargeFeatureFails(t *testing.T) {
	geo := geomadapter.New()
	store := segment.New()
	line := store.AllocateLineID()
	store.Insert(0, segment.NoOwner, line, point.New(0, 0), point.New(10, 0))
	store.Insert(0, segment.NoOwner, line, point.New(10, 0), point.New(10, 10))

	r := New(geo)
	// Area large relative to tolerance^2: lostPortion = 1000000/1 exceeds
	// the threshold, so the feature is routed to the error sink instead.
	f := feature.Feature{Index: 0, Area: 1000000}
	results := r.Reassemble(store, []feature.Feature{f}, 1)

	require.Len(t, results, 1)
	assert.False(t, results[0].Dropped)
	assert.True(t, results[0].Failed)
	assert.NotEmpty(t, results[0].LineSoup)
}

func TestReassemble_DuplicateSegmentsMemoized(t *testing.T) {
	geo := geomadapter.New()
	store := segment.New()
	line := store.AllocateLineID()

	// Two distinct GUIDs sharing the same endpoint pair, as can happen once
	// simplification has collapsed several original edges onto one line.
	store.Insert(0, segment.NoOwner, line, point.New(0, 0), point.New(10, 0))
	store.Insert(0, segment.NoOwner, line, point.New(0, 0), point.New(10, 0))
	store.Insert(0, segment.NoOwner, line, point.New(10, 0), point.New(10, 10))
	store.Insert(0, segment.NoOwner, line, point.New(10, 10), point.New(0, 0))

	r := New(geo)
	f := feature.Feature{Index: 0, Area: 50}
	results := r.Reassemble(store, []feature.Feature{f}, 1)

	require.Len(t, results, 1)
	assert.False(t, results[0].Failed)
}

func TestReassemble_MultipleFeaturesIndependent(t *testing.T) {
	geo := geomadapter.New()
	store := segment.New()
	square(store, 0)
	square(store, 1)

	r := New(geo)
	features := []feature.Feature{
		{Index: 0, Area: 100},
		{Index: 1, Area: 100},
	}
	results := r.Reassemble(store, features, 1)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.False(t, res.Dropped)
		assert.False(t, res.Failed)
	}
}
