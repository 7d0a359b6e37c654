package curvegeom

import (
	"github.com/twpayne/go-geom"
)

// Flatten converts g into a purely linear geometry at the default fidelity
// of DefaultMaxAngleStep per chord. Linear geometries come back unchanged.
// A nil geometry flattens to nil.
func Flatten(g geom.T) (geom.T, error) {
	return flatten(g, fixedAngleStep, 0)
}

// FlattenTolerance converts g into a purely linear geometry whose chords
// deviate from the source arcs by at most tolerance, in coordinate units.
func FlattenTolerance(g geom.T, tolerance float64) (geom.T, error) {
	return flatten(g, toleranceStep(tolerance), 0)
}

func flatten(g geom.T, step angleStepFunc, depth int) (geom.T, error) {
	if g == nil {
		return nil, nil
	}
	if depth > maxNesting {
		return nil, ErrNestingTooDeep
	}
	switch v := g.(type) {
	case *geom.Point, *geom.LineString, *geom.LinearRing, *geom.Polygon,
		*geom.MultiPoint, *geom.MultiLineString, *geom.MultiPolygon:
		return g, nil
	case *geom.GeometryCollection:
		out := geom.NewGeometryCollection()
		out.SetSRID(v.SRID())
		for _, child := range v.Geoms() {
			lin, err := flatten(child, step, depth+1)
			if err != nil {
				return nil, err
			}
			if err := out.Push(lin); err != nil {
				return nil, err
			}
		}
		return out, nil
	case *CircularString:
		return geom.NewLineStringFlat(v.layout, densifyCircular(v, step)).SetSRID(v.srid), nil
	case *CompoundCurve:
		coords, err := compoundCoords(v, step)
		if err != nil {
			return nil, err
		}
		return geom.NewLineStringFlat(v.layout, coords).SetSRID(v.srid), nil
	case *CurvePolygon:
		out := geom.NewPolygon(v.layout)
		out.SetSRID(v.srid)
		for _, ring := range v.rings {
			coords, err := ringCoords(v.layout, ring, step)
			if err != nil {
				return nil, err
			}
			if err := out.Push(geom.NewLinearRingFlat(v.layout, coords)); err != nil {
				return nil, err
			}
		}
		return out, nil
	case *MultiCurve:
		out := geom.NewMultiLineString(v.layout)
		out.SetSRID(v.srid)
		for _, curve := range v.curves {
			lin, err := flatten(curve, step, depth+1)
			if err != nil {
				return nil, err
			}
			ls, ok := lin.(*geom.LineString)
			if !ok {
				return nil, ErrUnsupportedType{Value: lin}
			}
			if err := out.Push(ls); err != nil {
				return nil, err
			}
		}
		return out, nil
	case *MultiSurface:
		out := geom.NewMultiPolygon(v.layout)
		out.SetSRID(v.srid)
		for _, surface := range v.surfaces {
			lin, err := flatten(surface, step, depth+1)
			if err != nil {
				return nil, err
			}
			poly, ok := lin.(*geom.Polygon)
			if !ok {
				return nil, ErrUnsupportedType{Value: lin}
			}
			if err := out.Push(poly); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, ErrUnsupportedType{Value: g}
	}
}

// compoundCoords concatenates the linearized segments of a compound curve,
// deduplicating the shared joint between consecutive segments.
func compoundCoords(cc *CompoundCurve, step angleStepFunc) ([]float64, error) {
	stride := cc.layout.Stride()
	var dst []float64
	for _, s := range cc.segments {
		var coords []float64
		switch seg := s.(type) {
		case *geom.LineString:
			coords = seg.FlatCoords()
		case *CircularString:
			coords = densifyCircular(seg, step)
		default:
			return nil, ErrUnsupportedType{Value: s}
		}
		dst = appendJoined(dst, coords, stride)
	}
	return dst, nil
}

// appendJoined appends src to dst, skipping the first point of src when it
// exactly repeats the last point of dst.
func appendJoined(dst, src []float64, stride int) []float64 {
	if len(dst) >= stride && len(src) >= stride {
		join := true
		for k := 0; k < stride; k++ {
			if dst[len(dst)-stride+k] != src[k] {
				join = false
				break
			}
		}
		if join {
			return append(dst, src[stride:]...)
		}
	}
	return append(dst, src...)
}

// ringCoords linearizes one curve polygon ring into closed flat coordinates.
func ringCoords(layout geom.Layout, ring geom.T, step angleStepFunc) ([]float64, error) {
	var coords []float64
	switch r := ring.(type) {
	case *geom.LineString:
		coords = cloneFlat(r.FlatCoords())
	case *geom.LinearRing:
		coords = cloneFlat(r.FlatCoords())
	case *CircularString:
		coords = densifyCircular(r, step)
	case *CompoundCurve:
		var err error
		if coords, err = compoundCoords(r, step); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnsupportedType{Value: ring}
	}
	return closeRing(coords, layout.Stride()), nil
}

// closeRing appends the opening point when the ring does not already end on
// it. Empty rings stay empty.
func closeRing(coords []float64, stride int) []float64 {
	if len(coords) < stride {
		return coords
	}
	for k := 0; k < stride; k++ {
		if coords[k] != coords[len(coords)-stride+k] {
			return append(coords, coords[:stride]...)
		}
	}
	return coords
}
