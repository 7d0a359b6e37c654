// Package curvegeom extends the go-geom geometry model with the curved
// types of the SQL/MM standard: CircularString, CompoundCurve, CurvePolygon,
// MultiCurve and MultiSurface. All curved types implement geom.T, so values
// built from a mix of linear go-geom geometries and curved geometries can
// flow through the same pipelines.
//
// The package also provides the two operations the rest of the toolbox is
// built on: Segmentize (type-preserving densification of arcs within a chord
// deviation tolerance) and Flatten (full conversion of a curved geometry tree
// to its linear equivalent).
package curvegeom

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/twpayne/go-geom"
)

// A Type identifies a geometry kind by its ISO WKB code. The with-height and
// with-measure variants of the wire format (+1000/+2000/+3000 offsets) are
// not separate Types; dimensionality is carried by geom.Layout instead.
type Type uint32

const (
	TypeUnknown            Type = 0
	TypePoint              Type = 1
	TypeLineString         Type = 2
	TypePolygon            Type = 3
	TypeMultiPoint         Type = 4
	TypeMultiLineString    Type = 5
	TypeMultiPolygon       Type = 6
	TypeGeometryCollection Type = 7
	TypeCircularString     Type = 8
	TypeCompoundCurve      Type = 9
	TypeCurvePolygon       Type = 10
	TypeMultiCurve         Type = 11
	TypeMultiSurface       Type = 12
	TypeCurve              Type = 13
	TypeSurface            Type = 14
)

var typeNames = map[Type]string{
	TypeUnknown:            "Unknown",
	TypePoint:              "Point",
	TypeLineString:         "LineString",
	TypePolygon:            "Polygon",
	TypeMultiPoint:         "MultiPoint",
	TypeMultiLineString:    "MultiLineString",
	TypeMultiPolygon:       "MultiPolygon",
	TypeGeometryCollection: "GeometryCollection",
	TypeCircularString:     "CircularString",
	TypeCompoundCurve:      "CompoundCurve",
	TypeCurvePolygon:       "CurvePolygon",
	TypeMultiCurve:         "MultiCurve",
	TypeMultiSurface:       "MultiSurface",
	TypeCurve:              "Curve",
	TypeSurface:            "Surface",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint32(t))
}

// curveTypes is the set of curve-bearing kinds, matching the enumeration the
// conversion pipeline dispatches on. Abstract Curve is included so that wire
// data tagged with the non-instantiable code is still recognised as curved.
var curveTypes = map[Type]bool{
	TypeCircularString: true,
	TypeCompoundCurve:  true,
	TypeCurvePolygon:   true,
	TypeMultiCurve:     true,
	TypeMultiSurface:   true,
	TypeCurve:          true,
}

// IsCurveType reports whether t is one of the curve-bearing kinds.
func IsCurveType(t Type) bool {
	return curveTypes[t]
}

// TypeOf returns the Type tag for g, or TypeUnknown for geometry
// implementations from outside the go-geom/curvegeom model.
// A *geom.LinearRing is reported as TypeLineString; rings have no
// type code of their own on the wire.
func TypeOf(g geom.T) Type {
	switch g.(type) {
	case *geom.Point:
		return TypePoint
	case *geom.LineString, *geom.LinearRing:
		return TypeLineString
	case *geom.Polygon:
		return TypePolygon
	case *geom.MultiPoint:
		return TypeMultiPoint
	case *geom.MultiLineString:
		return TypeMultiLineString
	case *geom.MultiPolygon:
		return TypeMultiPolygon
	case *geom.GeometryCollection:
		return TypeGeometryCollection
	case *CircularString:
		return TypeCircularString
	case *CompoundCurve:
		return TypeCompoundCurve
	case *CurvePolygon:
		return TypeCurvePolygon
	case *MultiCurve:
		return TypeMultiCurve
	case *MultiSurface:
		return TypeMultiSurface
	default:
		return TypeUnknown
	}
}

// TypeNameOf returns the tag name for known kinds and the bare Go type name
// for foreign geom.T implementations. The latter keeps name-based curve
// detection working for geometry types this package has never heard of.
func TypeNameOf(g geom.T) string {
	if t := TypeOf(g); t != TypeUnknown {
		return t.String()
	}
	rt := reflect.TypeOf(g)
	for rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt == nil {
		return "Unknown"
	}
	return rt.Name()
}

// IsCurveBearing reports whether g needs linearization: either its tag is in
// the curve set, or its type name contains "CURVE" (the fallback for
// driver-specific implementations outside the enumerated tags).
func IsCurveBearing(g geom.T) bool {
	if g == nil {
		return false
	}
	if IsCurveType(TypeOf(g)) {
		return true
	}
	return strings.Contains(strings.ToUpper(TypeNameOf(g)), "CURVE")
}

// An ErrUnsupportedType is returned when an operation encounters a geometry
// value it cannot handle.
type ErrUnsupportedType struct {
	Value interface{}
}

func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("curvegeom: unsupported type %T", e.Value)
}

// ErrNestingTooDeep is returned by Flatten when a geometry tree nests beyond
// maxNesting levels. Trees that deep do not occur in well-formed data.
var ErrNestingTooDeep = errors.New("curvegeom: geometry nesting too deep")

// maxNesting bounds recursion over child geometries in Flatten and
// Segmentize. Well-formed curved geometries nest at most a handful of
// levels; the cap exists for hand-built or adversarial trees.
const maxNesting = 64

// knownChildKind reports whether g is a concrete kind from this model, as
// opposed to a foreign geom.T implementation. Containers accept foreign
// children so that driver-specific curve types can ride along; everything
// else about them is best-effort.
func knownChildKind(g geom.T) bool {
	return TypeOf(g) != TypeUnknown
}

// cloneChild deep-copies the child kinds containers can hold. Foreign
// implementations are returned as-is; the model cannot copy what it cannot
// see into.
func cloneChild(g geom.T) geom.T {
	switch c := g.(type) {
	case *geom.LineString:
		return c.Clone()
	case *geom.LinearRing:
		return c.Clone()
	case *geom.Polygon:
		return c.Clone()
	case *CircularString:
		return c.Clone()
	case *CompoundCurve:
		return c.Clone()
	case *CurvePolygon:
		return c.Clone()
	default:
		return g
	}
}

// cloneFlat copies a flat coordinate slice.
func cloneFlat(flatCoords []float64) []float64 {
	if flatCoords == nil {
		return nil
	}
	out := make([]float64, len(flatCoords))
	copy(out, flatCoords)
	return out
}

// inflate converts flat coordinates to per-vertex Coords.
func inflate(flatCoords []float64, stride int) []geom.Coord {
	if stride == 0 {
		return nil
	}
	coords := make([]geom.Coord, 0, len(flatCoords)/stride)
	for i := 0; i+stride <= len(flatCoords); i += stride {
		c := make(geom.Coord, stride)
		copy(c, flatCoords[i:i+stride])
		coords = append(coords, c)
	}
	return coords
}

// deflate converts per-vertex Coords to flat coordinates, validating stride.
func deflate(coords []geom.Coord, stride int) ([]float64, error) {
	flatCoords := make([]float64, 0, len(coords)*stride)
	for _, c := range coords {
		if len(c) != stride {
			return nil, geom.ErrStrideMismatch{Got: len(c), Want: stride}
		}
		flatCoords = append(flatCoords, c...)
	}
	return flatCoords, nil
}
