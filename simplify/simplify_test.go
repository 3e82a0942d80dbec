package simplify

import (
	"testing"

	"github.com/mikenye/borderlines/geomadapter"
	"github.com/mikenye/borderlines/point"
	"github.com/mikenye/borderlines/segment"
	"github.com/mikenye/borderlines/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangleArea(t *testing.T) {
	// A right triangle with legs of 4 and 3 has area 6.
	area := triangleArea(point.New(0, 0), point.New(4, 0), point.New(0, 3))
	assert.InDelta(t, 6, area, 1e-9)
}

func TestTriangleArea_Collinear(t *testing.T) {
	area := triangleArea(point.New(0, 0), point.New(5, 0), point.New(10, 0))
	assert.InDelta(t, 0, area, 1e-9)
}

func TestSimplify_CollapsesApexBelowTolerance(t *testing.T) {
	store := segment.New()
	idx := spatialindex.New()
	line := store.AllocateLineID()

	// A shallow zigzag: the apex at (10,0.01) forms a triangle of area 0.1
	// with its neighbors, well under a tolerance of 1 (minArea = 1).
	a := point.New(0, 0)
	b := point.New(10, 0.01)
	c := point.New(20, 0)

	g1 := store.Insert(0, segment.NoOwner, line, a, b)
	g2 := store.Insert(0, segment.NoOwner, line, b, c)
	for _, g := range []segment.GUID{g1, g2} {
		seg, _ := store.Get(g)
		idx.Insert(g, spatialindex.EnvelopeOfSegment(seg))
	}

	s := New(geomadapter.New())
	s.Simplify(store, idx, 1)

	live := store.SegmentsOfLine(line)
	require.Len(t, live, 1, "the apex should collapse into a single segment")
	assert.True(t, live[0].A.Eq(a))
	assert.True(t, live[0].B.Eq(c))
}

func TestSimplify_PreservesApexAboveTolerance(t *testing.T) {
	store := segment.New()
	idx := spatialindex.New()
	line := store.AllocateLineID()

	// The same shallow zigzag, but a tiny tolerance (minArea = 1e-8) keeps
	// the triangle's 0.1 area well above threshold: nothing should move.
	a := point.New(0, 0)
	b := point.New(10, 0.01)
	c := point.New(20, 0)

	g1 := store.Insert(0, segment.NoOwner, line, a, b)
	g2 := store.Insert(0, segment.NoOwner, line, b, c)
	for _, g := range []segment.GUID{g1, g2} {
		seg, _ := store.Get(g)
		idx.Insert(g, spatialindex.EnvelopeOfSegment(seg))
	}

	s := New(geomadapter.New())
	s.Simplify(store, idx, 1e-4)

	live := store.SegmentsOfLine(line)
	require.Len(t, live, 2, "a sharp apex should survive a tight tolerance")
}

func TestSimplify_SkipsCollapseThatWouldCrossNeighbor(t *testing.T) {
	store := segment.New()
	idx := spatialindex.New()
	lineA := store.AllocateLineID()
	lineB := store.AllocateLineID()

	// Line A: a shallow zigzag whose flattened chord would pass straight
	// through line B, a segment planted directly across its path.
	a := point.New(0, 0)
	b := point.New(10, 0.01)
	c := point.New(20, 0)

	g1 := store.Insert(0, segment.NoOwner, lineA, a, b)
	g2 := store.Insert(0, segment.NoOwner, lineA, b, c)

	blocker := store.Insert(1, segment.NoOwner, lineB, point.New(10, -5), point.New(10, 5))

	for _, g := range []segment.GUID{g1, g2, blocker} {
		seg, _ := store.Get(g)
		idx.Insert(g, spatialindex.EnvelopeOfSegment(seg))
	}

	s := New(geomadapter.New())
	s.Simplify(store, idx, 1)

	live := store.SegmentsOfLine(lineA)
	assert.Len(t, live, 2, "collapsing the apex would cross the blocker, so it must be skipped")
}
