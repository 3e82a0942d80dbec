package datasource

import (
	"fmt"
	"math"

	"github.com/jonas-p/go-shp"
	"github.com/mikenye/borderlines/feature"
	"github.com/mikenye/borderlines/geomadapter"
)

// shapefileSource loads an ESRI Shapefile layer.
type shapefileSource struct {
	path string
}

func newShapefileSource(path string) *shapefileSource {
	return &shapefileSource{path: path}
}

func (s *shapefileSource) Load(geo *geomadapter.Adapter) (feature.Layer, error) {
	reader, err := shp.Open(s.path)
	if err != nil {
		return feature.Layer{}, fmt.Errorf("datasource: open shapefile %q: %w", s.path, err)
	}
	defer reader.Close()

	shpFields := reader.Fields()
	fields := make([]feature.Field, len(shpFields))
	for i, f := range shpFields {
		fields[i] = feature.Field{
			Name:  f.String(),
			Type:  shapefileFieldType(f),
			Width: int(f.Size),
		}
	}

	var features []feature.Feature
	index := 0
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			return feature.Layer{}, fmt.Errorf("datasource: shapefile %q: non-polygon shape at record %d", s.path, index)
		}

		wkb := polygonToWKB(poly)
		geom, err := geo.FromWKB(wkb)
		if err != nil {
			return feature.Layer{}, fmt.Errorf("datasource: shapefile %q: record %d: %w", s.path, index, err)
		}

		values := make(map[string]any, len(fields))
		for fi, field := range fields {
			values[field.Name] = reader.ReadAttribute(index, fi)
		}

		features = append(features, feature.Feature{
			Index:    index,
			Values:   values,
			Geometry: geom,
			Area:     geo.Area(geom),
			Boundary: geo.Boundary(geom),
		})
		index++
	}

	return feature.Layer{Fields: fields, Features: features}, nil
}

func shapefileFieldType(f shp.Field) feature.FieldType {
	switch f.Fieldtype {
	case 'N':
		if f.Precision > 0 {
			return feature.FieldFloat
		}
		return feature.FieldInt
	case 'F':
		return feature.FieldFloat
	default:
		return feature.FieldString
	}
}

// shapefileSink writes polygon or multi-line-string features to an ESRI
// Shapefile, copying the input field schema verbatim.
type shapefileSink struct {
	writer   *shp.Writer
	fields   []feature.Field
	geomType OutputGeometry
	next     int32
}

func newShapefileSink(path string, geomType OutputGeometry, fields []feature.Field) (*shapefileSink, error) {
	shpType := shp.POLYGON
	if geomType == GeometryMultiLineString {
		shpType = shp.POLYLINE
	}

	writer, err := shp.Create(path, shpType)
	if err != nil {
		return nil, fmt.Errorf("datasource: create shapefile %q: %w", path, err)
	}

	shpFields := make([]shp.Field, len(fields))
	for i, f := range fields {
		switch f.Type {
		case feature.FieldInt:
			shpFields[i] = shp.NumberField(f.Name, uint8(f.Width))
		case feature.FieldFloat:
			shpFields[i] = shp.FloatField(f.Name, uint8(f.Width), 6)
		default:
			shpFields[i] = shp.StringField(f.Name, uint8(f.Width))
		}
	}
	if err := writer.SetFields(shpFields); err != nil {
		return nil, fmt.Errorf("datasource: set shapefile fields %q: %w", path, err)
	}

	return &shapefileSink{writer: writer, fields: fields, geomType: geomType}, nil
}

func (s *shapefileSink) Append(values map[string]any, geom geomadapter.Geometry) error {
	shape, err := geometryToShape(geom, s.geomType)
	if err != nil {
		return err
	}
	row, err := s.writer.Write(shape)
	if err != nil {
		return fmt.Errorf("datasource: write shapefile record: %w", err)
	}
	for i, f := range s.fields {
		if err := s.writer.WriteAttribute(int(row), i, values[f.Name]); err != nil {
			return fmt.Errorf("datasource: write shapefile attribute %q: %w", f.Name, err)
		}
	}
	s.next++
	return nil
}

func (s *shapefileSink) Close() error { return s.writer.Close() }

// polygonToWKB builds a WKB polygon from a go-shp Polygon, writing each
// of its parts as one ring of a single polygon in part order (the first
// part becomes the exterior ring).
func polygonToWKB(p *shp.Polygon) []byte {
	// WKB polygon: byte order, uint32 type=3, uint32 numRings, then per
	// ring uint32 numPoints and the coordinate pairs as float64 LE.
	buf := make([]byte, 0, 9+len(p.Points)*16)
	buf = append(buf, 1) // little endian
	buf = appendUint32LE(buf, 3)
	buf = appendUint32LE(buf, uint32(len(p.Parts)))

	for ring := 0; ring < len(p.Parts); ring++ {
		start := p.Parts[ring]
		end := int32(len(p.Points))
		if ring+1 < len(p.Parts) {
			end = p.Parts[ring+1]
		}
		buf = appendUint32LE(buf, uint32(end-start))
		for _, pt := range p.Points[start:end] {
			buf = appendFloat64LE(buf, pt.X)
			buf = appendFloat64LE(buf, pt.Y)
		}
	}
	return buf
}

func geometryToShape(geom geomadapter.Geometry, geomType OutputGeometry) (shp.Shape, error) {
	if geomType == GeometryMultiLineString {
		var points []shp.Point
		var parts []int32
		for _, part := range geom.Parts() {
			parts = append(parts, int32(len(points)))
			for _, c := range part.Coords() {
				points = append(points, shp.Point{X: c[0], Y: c[1]})
			}
		}
		return &shp.PolyLine{
			Box:       boxOf(points),
			NumParts:  int32(len(parts)),
			NumPoints: int32(len(points)),
			Parts:     parts,
			Points:    points,
		}, nil
	}

	part := geom
	if parts := geom.Parts(); len(parts) > 0 {
		part = parts[0]
	}
	var points []shp.Point
	for _, c := range part.Coords() {
		points = append(points, shp.Point{X: c[0], Y: c[1]})
	}
	return &shp.Polygon{
		Box:       boxOf(points),
		NumParts:  1,
		NumPoints: int32(len(points)),
		Parts:     []int32{0},
		Points:    points,
	}, nil
}

func boxOf(points []shp.Point) shp.Box {
	if len(points) == 0 {
		return shp.Box{}
	}
	box := shp.Box{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		box.MinX = min(box.MinX, p.X)
		box.MinY = min(box.MinY, p.Y)
		box.MaxX = max(box.MaxX, p.X)
		box.MaxY = max(box.MaxY, p.Y)
	}
	return box
}

func appendUint32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendFloat64LE(buf []byte, v float64) []byte {
	bits := math.Float64bits(v)
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(bits>>(8*i)))
	}
	return buf
}
