// Package datasource implements the external I/O collaborators described
// in §6 of the design: a vector data source for input, and an
// extension-dispatched vector data sink for output and for the error
// sink that receives features whose polygonization failed large. These
// are the Go equivalents of build2.py's ogr.Open/ogr.GetDriverByName
// calls, built on top of github.com/jonas-p/go-shp for Shapefiles and
// github.com/twpayne/go-geom's GeoJSON codec, with
// github.com/twpayne/go-geos providing the WKB bridge between the two.
//
// The core pipeline never imports this package's driver internals
// directly; it depends only on the [Source] and [Sink] interfaces, so a
// new driver can be added without touching decompose, simplify, or
// reassemble.
package datasource

import (
	"fmt"
	"path/filepath"

	"github.com/mikenye/borderlines/feature"
	"github.com/mikenye/borderlines/geomadapter"
)

// Source loads one named layer's schema and features.
type Source interface {
	Load(geo *geomadapter.Adapter) (feature.Layer, error)
}

// OutputGeometry selects the geometry type a [Sink] will be asked to
// write, since the error sink carries multi-line-strings rather than
// polygons.
type OutputGeometry uint8

const (
	GeometryPolygon OutputGeometry = iota
	GeometryMultiLineString
)

// Sink accepts a stream of output features sharing one schema and
// geometry type.
type Sink interface {
	// Append writes one feature's attribute values and geometry.
	Append(values map[string]any, geom geomadapter.Geometry) error
	// Close flushes and closes the underlying file.
	Close() error
}

// Open opens filename as a vector data source, dispatching on extension
// the same way [NewSink] does for output.
func Open(filename string) (Source, error) {
	switch ext := filepath.Ext(filename); ext {
	case ".shp":
		return newShapefileSource(filename), nil
	case ".json", ".geojson":
		return newGeoJSONSource(filename), nil
	default:
		return nil, fmt.Errorf("datasource: unsupported input extension %q", ext)
	}
}

// NewSink creates an output or error sink selected by filename's
// extension: .shp opens the ESRI Shapefile driver, .json the GeoJSON
// driver, matching the `drivers` table in build2.py.
func NewSink(filename string, geomType OutputGeometry, fields []feature.Field, srs string) (Sink, error) {
	switch ext := filepath.Ext(filename); ext {
	case ".shp":
		return newShapefileSink(filename, geomType, fields)
	case ".json", ".geojson":
		return newGeoJSONSink(filename, geomType, fields, srs)
	default:
		return nil, fmt.Errorf("datasource: unsupported output extension %q", ext)
	}
}
