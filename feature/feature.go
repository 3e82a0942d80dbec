// Package feature defines the immutable input data model: a Field schema
// shared by the whole layer, and the Feature values loaded from it. This
// mirrors the Field/Datasource split in the system the spec distills
// (build2.py's Field and Datasource classes), generalized into a Go value
// type the rest of borderlines can pass around without reaching back into
// whatever vector-I/O library produced it.
package feature

import "github.com/mikenye/borderlines/geomadapter"

// FieldType is a logical attribute type, independent of any one output
// driver's type system (shapefile DBF widths, GeoJSON's untyped values).
type FieldType uint8

const (
	FieldString FieldType = iota
	FieldInt
	FieldFloat
)

// Field describes one attribute column carried through decomposition,
// simplification, and reassembly unchanged.
type Field struct {
	Name  string
	Type  FieldType
	Width int
}

// Feature is one source polygon: an integer index into the layer, its
// attribute values (keyed by field name), and its original geometry.
// Features are immutable after Load; only the segment store mutates as
// the pipeline runs.
type Feature struct {
	Index    int
	Values   map[string]any
	Geometry geomadapter.Geometry

	// Area and Boundary are computed once at load time and reused by the
	// decomposer's length check and the reassembler's failure policy,
	// rather than recomputed from Geometry on every access.
	Area     float64
	Boundary geomadapter.Geometry
}

// Layer is the full set of features loaded from one input collaborator,
// plus the schema describing their attributes.
type Layer struct {
	Fields   []Field
	Features []Feature
	SRS      string // spatial reference, opaque; neither datasource driver fills it on load or writes it on output
}
