package datasource

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/mikenye/borderlines/feature"
	"github.com/mikenye/borderlines/geomadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygonToWKB_SingleRing(t *testing.T) {
	poly := &shp.Polygon{
		Box:       shp.Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		NumParts:  1,
		NumPoints: 5,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
		},
	}

	wkb := polygonToWKB(poly)

	require.Equal(t, byte(1), wkb[0], "little-endian byte order marker")
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(wkb[1:5]), "WKB polygon type")
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(wkb[5:9]), "one ring")
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(wkb[9:13]), "five points in the ring")

	geo := geomadapter.New()
	g, err := geo.FromWKB(wkb)
	require.NoError(t, err)
	assert.InDelta(t, 100, geo.Area(g), 1e-9)
}

func TestShapefile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "squares.shp")

	fields := []feature.Field{
		{Name: "NAME", Type: feature.FieldString, Width: 20},
		{Name: "COUNT", Type: feature.FieldInt, Width: 8},
	}

	sink, err := newShapefileSink(path, GeometryPolygon, fields)
	require.NoError(t, err)

	geo := geomadapter.New()
	square := geo.FromWKT("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))")
	require.NoError(t, sink.Append(map[string]any{"NAME": "square", "COUNT": 3}, square))
	require.NoError(t, sink.Close())

	src := newShapefileSource(path)
	layer, err := src.Load(geo)
	require.NoError(t, err)

	require.Len(t, layer.Features, 1)
	assert.InDelta(t, 100, layer.Features[0].Area, 1e-6)
}

func TestShapefileFieldType(t *testing.T) {
	tests := map[string]struct {
		field shp.Field
		want  feature.FieldType
	}{
		"integer number":   {field: shp.NumberField("n", 8), want: feature.FieldInt},
		"float field":      {field: shp.FloatField("f", 10, 6), want: feature.FieldFloat},
		"string field":     {field: shp.StringField("s", 20), want: feature.FieldString},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, shapefileFieldType(tc.field))
		})
	}
}

func TestAppendFloat64LE_RoundTrips(t *testing.T) {
	var buf []byte
	buf = appendFloat64LE(buf, 3.14159)
	bits := binary.LittleEndian.Uint64(buf)
	assert.InDelta(t, 3.14159, math.Float64frombits(bits), 1e-9)
}
