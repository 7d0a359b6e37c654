package curvegeom

import (
	"github.com/twpayne/go-geom"
)

// Segmentize returns a copy of g densified so that no arc chord deviates
// from its circle by more than tolerance, in coordinate units. The geometry
// type is preserved: circular strings stay circular strings with their
// samples on the source circles, containers keep their shape, and purely
// linear geometries come back unchanged. Segmentize never fails; inputs it
// cannot densify pass through as-is.
func Segmentize(g geom.T, tolerance float64) geom.T {
	return segmentize(g, toleranceStep(tolerance), 0)
}

func segmentize(g geom.T, step angleStepFunc, depth int) geom.T {
	if g == nil || depth > maxNesting {
		return g
	}
	switch v := g.(type) {
	case *CircularString:
		out := NewCircularStringFlat(v.layout, densifyCircular(v, step))
		out.srid = v.srid
		return out
	case *CompoundCurve:
		out := NewCompoundCurve(v.layout)
		out.srid = v.srid
		for _, s := range v.segments {
			out.segments = append(out.segments, segmentize(s, step, depth+1))
		}
		return out
	case *CurvePolygon:
		out := NewCurvePolygon(v.layout)
		out.srid = v.srid
		for _, ring := range v.rings {
			out.rings = append(out.rings, segmentize(ring, step, depth+1))
		}
		return out
	case *MultiCurve:
		out := NewMultiCurve(v.layout)
		out.srid = v.srid
		for _, curve := range v.curves {
			out.curves = append(out.curves, segmentize(curve, step, depth+1))
		}
		return out
	case *MultiSurface:
		out := NewMultiSurface(v.layout)
		out.srid = v.srid
		for _, surface := range v.surfaces {
			out.surfaces = append(out.surfaces, segmentize(surface, step, depth+1))
		}
		return out
	case *geom.GeometryCollection:
		out := geom.NewGeometryCollection()
		out.SetSRID(v.SRID())
		for _, child := range v.Geoms() {
			if err := out.Push(segmentize(child, step, depth+1)); err != nil {
				return g
			}
		}
		return out
	default:
		return g
	}
}
