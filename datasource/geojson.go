package datasource

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mikenye/borderlines/feature"
	"github.com/mikenye/borderlines/geomadapter"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// geoJSONSource loads a layer from a GeoJSON FeatureCollection.
type geoJSONSource struct {
	path string
}

func newGeoJSONSource(path string) *geoJSONSource {
	return &geoJSONSource{path: path}
}

func (s *geoJSONSource) Load(geo *geomadapter.Adapter) (feature.Layer, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return feature.Layer{}, fmt.Errorf("datasource: read geojson %q: %w", s.path, err)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return feature.Layer{}, fmt.Errorf("datasource: parse geojson %q: %w", s.path, err)
	}

	fieldSet := map[string]feature.Field{}
	var features []feature.Feature

	for i, gf := range fc.Features {
		wkbBytes, err := wkb.Marshal(gf.Geometry, binary.LittleEndian)
		if err != nil {
			return feature.Layer{}, fmt.Errorf("datasource: geojson %q: feature %d: %w", s.path, i, err)
		}
		g, err := geo.FromWKB(wkbBytes)
		if err != nil {
			return feature.Layer{}, fmt.Errorf("datasource: geojson %q: feature %d: %w", s.path, i, err)
		}

		values := make(map[string]any, len(gf.Properties))
		for name, v := range gf.Properties {
			values[name] = v
			if _, seen := fieldSet[name]; !seen {
				fieldSet[name] = feature.Field{Name: name, Type: geojsonFieldType(v)}
			}
		}

		features = append(features, feature.Feature{
			Index:    i,
			Values:   values,
			Geometry: g,
			Area:     geo.Area(g),
			Boundary: geo.Boundary(g),
		})
	}

	fields := make([]feature.Field, 0, len(fieldSet))
	for _, f := range fieldSet {
		fields = append(fields, f)
	}

	return feature.Layer{Fields: fields, Features: features}, nil
}

func geojsonFieldType(v any) feature.FieldType {
	switch v.(type) {
	case float64:
		return feature.FieldFloat
	case int, int64:
		return feature.FieldInt
	default:
		return feature.FieldString
	}
}

// geoJSONSink accumulates features in memory and writes one
// FeatureCollection on Close, matching how OGR's GeoJSON driver buffers
// an entire layer before flushing the file.
type geoJSONSink struct {
	path     string
	geomType OutputGeometry
	features []*geojson.Feature
}

func newGeoJSONSink(path string, geomType OutputGeometry, fields []feature.Field, srs string) (*geoJSONSink, error) {
	return &geoJSONSink{path: path, geomType: geomType}, nil
}

func (s *geoJSONSink) Append(values map[string]any, g geomadapter.Geometry) error {
	geomT, err := geometryToGeomT(g, s.geomType)
	if err != nil {
		return err
	}
	s.features = append(s.features, &geojson.Feature{
		Geometry:   geomT,
		Properties: values,
	})
	return nil
}

func (s *geoJSONSink) Close() error {
	fc := &geojson.FeatureCollection{Features: s.features}
	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("datasource: marshal geojson %q: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("datasource: write geojson %q: %w", s.path, err)
	}
	return nil
}

func geometryToGeomT(g geomadapter.Geometry, geomType OutputGeometry) (geom.T, error) {
	if geomType == GeometryMultiLineString {
		mls := geom.NewMultiLineString(geom.XY)
		for _, part := range g.Parts() {
			ls := geom.NewLineString(geom.XY)
			coords := make([]geom.Coord, 0)
			for _, c := range part.Coords() {
				coords = append(coords, geom.Coord{c[0], c[1]})
			}
			if _, err := ls.SetCoords(coords); err != nil {
				return nil, fmt.Errorf("datasource: build linestring: %w", err)
			}
			if err := mls.Push(ls); err != nil {
				return nil, fmt.Errorf("datasource: build multilinestring: %w", err)
			}
		}
		return mls, nil
	}

	poly := geom.NewPolygon(geom.XY)
	parts := g.Parts()
	if len(parts) == 0 {
		parts = []geomadapter.Geometry{g}
	}
	ring := make([][]float64, 0)
	for _, c := range parts[0].Coords() {
		ring = append(ring, []float64{c[0], c[1]})
	}
	coords := make([][]geom.Coord, 1)
	for _, c := range ring {
		coords[0] = append(coords[0], geom.Coord{c[0], c[1]})
	}
	if _, err := poly.SetCoords(coords); err != nil {
		return nil, fmt.Errorf("datasource: build polygon: %w", err)
	}
	return poly, nil
}
