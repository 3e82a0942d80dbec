// Package geomadapter is a thin facade over the GEOS geometry engine
// (via github.com/twpayne/go-geos), exposing exactly the operations the
// rest of borderlines needs: intersection, difference, boundary, length,
// area, crosses, linemerge, and polygonize. Nothing upstream of this
// package should import go-geos directly; everything downstream treats
// a [Geometry] as opaque.
//
// The adapter also normalizes GEOS's runtime type dispatch (it reports
// geometry kind as a string/enum at the C boundary) into the closed set
// of variants described by [Kind], per the "tagged variants over dynamic
// geometry" guidance: callers switch on Kind rather than re-deriving it
// from the underlying GEOS type code.
package geomadapter

import (
	"fmt"

	"github.com/twpayne/go-geos"
)

// Kind is a closed sum of the geometry variants borderlines cares about.
// Anything GEOS reports outside this set (points, multipoints, geometry
// collections) is folded into KindOther by [Geometry.Kind].
type Kind uint8

const (
	KindLineString Kind = iota
	KindMultiLineString
	KindPolygon
	KindMultiPolygon
	KindOther
)

// Geometry wraps a single *geos.Geom. All geomadapter functions accept and
// return Geometry rather than *geos.Geom so that the GEOS context never
// leaks into caller code.
type Geometry struct {
	ctx *geos.Context
	g   *geos.Geom
}

// Adapter owns the single GEOS context used for every operation in a
// pipeline run. GEOS contexts are not safe for concurrent use from
// multiple goroutines, which matches the single-threaded, batch
// scheduling model of the rest of the system.
type Adapter struct {
	ctx *geos.Context
}

// New creates an Adapter with a fresh GEOS context.
func New() *Adapter {
	return &Adapter{ctx: geos.NewContext()}
}

// FromWKB decodes a well-known-binary geometry, as delivered by the input
// collaborator (see the datasource package), into a Geometry.
func (a *Adapter) FromWKB(wkb []byte) (Geometry, error) {
	g, err := a.ctx.NewGeomFromWKB(wkb)
	if err != nil {
		return Geometry{}, fmt.Errorf("geomadapter: decode wkb: %w", err)
	}
	return Geometry{ctx: a.ctx, g: g}, nil
}

// NewLineString builds a two-point line string, the atomic geometry value
// the simplifier constructs for every candidate segment and cross-check.
func (a *Adapter) NewLineString(x1, y1, x2, y2 float64) Geometry {
	g := a.ctx.NewGeomFromWKT(wktLineString(x1, y1, x2, y2))
	return Geometry{ctx: a.ctx, g: g}
}

// FromWKT parses a well-known-text geometry. The datasource package does
// not use it (both sources decode through [Adapter.FromWKB]); it is a
// convenience for building fixture geometries.
func (a *Adapter) FromWKT(wkt string) Geometry {
	g := a.ctx.NewGeomFromWKT(wkt)
	return Geometry{ctx: a.ctx, g: g}
}

// NewMultiLineString combines a soup of line geometries into one
// multi-line-string, used to hand a failed reassembly's full line soup to
// the error sink as a single geometry rather than dropping all but one of
// its parts.
func (a *Adapter) NewMultiLineString(lines []Geometry) Geometry {
	geoms := make([]*geos.Geom, len(lines))
	for i, l := range lines {
		geoms[i] = l.g
	}
	g := a.ctx.NewCollection(geos.TypeIDMultiLineString, geoms)
	return Geometry{ctx: a.ctx, g: g}
}

func wktLineString(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("LINESTRING (%g %g, %g %g)", x1, y1, x2, y2)
}

// IsZero reports whether g holds no underlying geometry.
func (g Geometry) IsZero() bool { return g.g == nil }

// Kind classifies the geometry into the closed variant set.
func (g Geometry) Kind() Kind {
	if g.g == nil {
		return KindOther
	}
	switch g.g.Type() {
	case geos.TypeIDLineString, geos.TypeIDLinearRing:
		return KindLineString
	case geos.TypeIDMultiLineString:
		return KindMultiLineString
	case geos.TypeIDPolygon:
		return KindPolygon
	case geos.TypeIDMultiPolygon:
		return KindMultiPolygon
	default:
		return KindOther
	}
}

// Parts flattens a multi-geometry into its components. A singleton
// (non-multi) geometry yields a one-element slice containing itself,
// per the "parts" normalization called for in the design notes.
func (g Geometry) Parts() []Geometry {
	if g.g == nil {
		return nil
	}
	if k := g.Kind(); k == KindLineString || k == KindPolygon {
		return []Geometry{g}
	}
	n := g.g.NumGeometries()
	parts := make([]Geometry, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, Geometry{ctx: g.ctx, g: g.g.Geometry(i)})
	}
	return parts
}

// Coords returns the ordered (x, y) vertices of a line-string geometry, or
// of a polygon's exterior ring; a polygon's interior rings are not
// included.
func (g Geometry) Coords() [][2]float64 {
	if g.g == nil {
		return nil
	}
	if g.Kind() == KindPolygon {
		return Geometry{ctx: g.ctx, g: g.g.ExteriorRing()}.Coords()
	}
	seq := g.g.CoordSeq()
	n := seq.Size()
	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		out[i] = [2]float64{seq.X(i), seq.Y(i)}
	}
	return out
}

// Intersects reports whether a and b share any point.
func (a *Adapter) Intersects(x, y Geometry) bool {
	return x.g.Intersects(y.g)
}

// Intersection computes the geometric intersection of two shapes, used by
// the border decomposer to derive a shared border between two features.
func (a *Adapter) Intersection(x, y Geometry) Geometry {
	return Geometry{ctx: a.ctx, g: x.g.Intersection(y.g)}
}

// Difference computes x minus y, used to carve a feature's unshared
// boundary out of its full boundary once shared borders are removed.
func (a *Adapter) Difference(x, y Geometry) Geometry {
	return Geometry{ctx: a.ctx, g: x.g.Difference(y.g)}
}

// Boundary returns the topological boundary of a polygon.
func (a *Adapter) Boundary(p Geometry) Geometry {
	return Geometry{ctx: a.ctx, g: p.g.Boundary()}
}

// Area returns the area of a polygon.
func (a *Adapter) Area(p Geometry) float64 {
	area, err := p.g.Area()
	if err != nil {
		return 0
	}
	return area
}

// Length returns the total length of a (multi)linestring or polygon
// boundary.
func (a *Adapter) Length(l Geometry) float64 {
	length, err := l.g.Length()
	if err != nil {
		return 0
	}
	return length
}

// Crosses implements the strict "crosses" semantic required by I4: the
// interiors of x and y intersect, but neither contains the other. Two
// segments that merely touch at a shared endpoint do not cross.
func (a *Adapter) Crosses(x, y Geometry) bool {
	return x.g.Crosses(y.g)
}

// LineMerge stitches a multi-line-string's components into maximal
// connected polylines, used when turning a raw pairwise intersection
// into one or more contiguous shared-border lines.
func (a *Adapter) LineMerge(ml Geometry) Geometry {
	return Geometry{ctx: a.ctx, g: ml.g.LineMerge()}
}

// Polygonize assembles a soup of line strings into polygons. It returns
// every polygon GEOS could close from the input lines; the reassembler
// takes the first (see §4.6 of the design).
func (a *Adapter) Polygonize(lines []Geometry) []Geometry {
	geoms := make([]*geos.Geom, len(lines))
	for i, l := range lines {
		geoms[i] = l.g
	}
	result := a.ctx.Polygonize(geoms)
	if result == nil {
		return nil
	}
	return Geometry{ctx: a.ctx, g: result}.Parts()
}
