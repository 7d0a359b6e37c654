// Package wkb2geojson converts purely linear geometries into their GeoJSON
// equivalents. GeoJSON has no curved types, so curved input is an error
// here; run it through the linearizer first.
//
// Positions follow RFC 7946: x, y and an optional z. A measure dimension
// has no GeoJSON representation and is dropped.
package wkb2geojson

import (
	"fmt"

	"github.com/Mzandre2/TrueCruve-Toolbox/curvegeom"
	"github.com/paulmach/go.geojson"
	"github.com/twpayne/go-geom"
)

// ErrUnsupportedGeometry is returned for geometries with no GeoJSON
// representation: anything still curved, and implementations from outside
// the model.
type ErrUnsupportedGeometry struct {
	Value geom.T
}

func (e ErrUnsupportedGeometry) Error() string {
	return fmt.Sprintf("wkb2geojson: no GeoJSON representation for %s", curvegeom.TypeNameOf(e.Value))
}

// Convert turns a purely linear geometry into GeoJSON. A nil geometry
// converts to nil, which marshals as a null geometry.
func Convert(g geom.T) (*geojson.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	switch v := g.(type) {
	case *geom.Point:
		if v.Empty() {
			return geojson.NewPointGeometry([]float64{}), nil
		}
		return geojson.NewPointGeometry(position(v.Layout(), v.Coords())), nil
	case *geom.LineString:
		return geojson.NewLineStringGeometry(positions(v.Layout(), v.Coords())), nil
	case *geom.LinearRing:
		return geojson.NewLineStringGeometry(positions(v.Layout(), v.Coords())), nil
	case *geom.Polygon:
		return geojson.NewPolygonGeometry(rings(v)), nil
	case *geom.MultiPoint:
		points := make([][]float64, v.NumPoints())
		for i := range points {
			points[i] = position(v.Layout(), v.Point(i).Coords())
		}
		return geojson.NewMultiPointGeometry(points...), nil
	case *geom.MultiLineString:
		lines := make([][][]float64, v.NumLineStrings())
		for i := range lines {
			ls := v.LineString(i)
			lines[i] = positions(ls.Layout(), ls.Coords())
		}
		return geojson.NewMultiLineStringGeometry(lines...), nil
	case *geom.MultiPolygon:
		polygons := make([][][][]float64, v.NumPolygons())
		for i := range polygons {
			polygons[i] = rings(v.Polygon(i))
		}
		return geojson.NewMultiPolygonGeometry(polygons...), nil
	case *geom.GeometryCollection:
		members := make([]*geojson.Geometry, 0, v.NumGeoms())
		for _, child := range v.Geoms() {
			converted, err := Convert(child)
			if err != nil {
				return nil, err
			}
			members = append(members, converted)
		}
		return geojson.NewCollectionGeometry(members...), nil
	default:
		return nil, ErrUnsupportedGeometry{Value: g}
	}
}

// ConvertFeature wraps the converted geometry in a feature carrying the
// source identifier.
func ConvertFeature(id int64, g geom.T) (*geojson.Feature, error) {
	geometry, err := Convert(g)
	if err != nil {
		return nil, err
	}
	feature := geojson.NewFeature(geometry)
	feature.ID = id
	return feature, nil
}

// position maps one coordinate to a GeoJSON position, keeping z and
// dropping m.
func position(layout geom.Layout, c geom.Coord) []float64 {
	if zIndex := layout.ZIndex(); zIndex >= 0 && zIndex < len(c) {
		return []float64{c[0], c[1], c[zIndex]}
	}
	return []float64{c[0], c[1]}
}

func positions(layout geom.Layout, coords []geom.Coord) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = position(layout, c)
	}
	return out
}

func rings(poly *geom.Polygon) [][][]float64 {
	out := make([][][]float64, poly.NumLinearRings())
	for i := range out {
		ring := poly.LinearRing(i)
		out[i] = positions(ring.Layout(), ring.Coords())
	}
	return out
}
