// Package linearizer converts curved geometries into purely linear
// equivalents within a caller-supplied tolerance.
//
// Conversion is best effort. A geometry that cannot be converted comes back
// unchanged rather than failing, and a member of a multi geometry that
// resists conversion is dropped so the remaining members still convert. The
// only hard failure is nesting beyond any plausible real-world depth.
package linearizer

import (
	"errors"

	"github.com/Mzandre2/TrueCruve-Toolbox/curvegeom"
	"github.com/twpayne/go-geom"
)

// ErrMaxDepthExceeded is returned for geometries nested beyond maxDepth.
// Unlike ordinary conversion failures it aborts the whole operation;
// swallowing it would turn a runaway structure into a silently empty result.
var ErrMaxDepthExceeded = errors.New("linearizer: maximum recursion depth exceeded")

// maxDepth bounds recursion over child geometries.
const maxDepth = 64

// Linearize returns a purely linear equivalent of g whose chords deviate
// from the source arcs by at most tolerance, in coordinate units. A nil
// geometry stays nil; a purely linear geometry is returned unchanged. The
// tolerance is applied at every level of nesting.
func Linearize(g geom.T, tolerance float64) (geom.T, error) {
	return linearize(g, tolerance, 0)
}

func linearize(g geom.T, tolerance float64, depth int) (geom.T, error) {
	if g == nil {
		return nil, nil
	}
	if depth >= maxDepth {
		return nil, ErrMaxDepthExceeded
	}

	// Most geometries convert in one pass. When they do not, for instance
	// because a container holds a segment kind the flattener has never
	// heard of, fall through to the structural handling below.
	if lin, err := curvegeom.FlattenTolerance(g, tolerance); err == nil {
		g = lin
	}

	switch v := g.(type) {
	case *curvegeom.MultiCurve:
		return linearizeMultiCurve(v, tolerance, depth)
	case *curvegeom.MultiSurface:
		return linearizeMultiSurface(v, tolerance, depth)
	}

	if !curvegeom.IsCurveBearing(g) {
		return g, nil
	}

	seg := curvegeom.Segmentize(g, tolerance)
	rebuilt := seg
	if children := childGeometries(seg); len(children) > 0 {
		converted := make([]geom.T, 0, len(children))
		for _, child := range children {
			lin, err := linearize(child, tolerance, depth+1)
			if err != nil {
				return nil, err
			}
			if lin == nil {
				continue
			}
			converted = append(converted, lin)
		}
		if len(converted) > 0 {
			rebuilt = rebuildContainer(seg, converted)
		}
	}

	final, err := curvegeom.FlattenTolerance(rebuilt, tolerance)
	if err != nil {
		// Still not convertible: hand back the densified form unchanged.
		return rebuilt, nil
	}
	return final, nil
}

// linearizeMultiCurve rebuilds a multi curve as a multi line string,
// converting each member independently. A member that does not come back as
// a line string is dropped, so the result can hold fewer members than the
// input.
func linearizeMultiCurve(mc *curvegeom.MultiCurve, tolerance float64, depth int) (geom.T, error) {
	out := geom.NewMultiLineString(mc.Layout())
	out.SetSRID(mc.SRID())
	for _, curve := range mc.Curves() {
		lin, err := linearize(curve, tolerance, depth+1)
		if err != nil {
			return nil, err
		}
		ls, ok := lin.(*geom.LineString)
		if !ok {
			continue
		}
		if err := out.Push(ls); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// linearizeMultiSurface rebuilds a multi surface as a multi polygon, with
// the same member-dropping behaviour as linearizeMultiCurve.
func linearizeMultiSurface(ms *curvegeom.MultiSurface, tolerance float64, depth int) (geom.T, error) {
	out := geom.NewMultiPolygon(ms.Layout())
	out.SetSRID(ms.SRID())
	for _, surface := range ms.Surfaces() {
		lin, err := linearize(surface, tolerance, depth+1)
		if err != nil {
			return nil, err
		}
		poly, ok := lin.(*geom.Polygon)
		if !ok {
			continue
		}
		if err := out.Push(poly); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// childGeometries returns the members of the containers the structural path
// can meet. Multi curves and multi surfaces never arrive here; they are
// retyped before the structural handling runs.
func childGeometries(g geom.T) []geom.T {
	switch v := g.(type) {
	case *curvegeom.CompoundCurve:
		return v.Segments()
	case *curvegeom.CurvePolygon:
		return v.Rings()
	default:
		return nil
	}
}

// rebuildContainer builds a fresh container of seg's kind holding only the
// converted children. seg itself is never mutated; callers may still be
// holding it.
func rebuildContainer(seg geom.T, children []geom.T) geom.T {
	switch v := seg.(type) {
	case *curvegeom.CompoundCurve:
		out := curvegeom.NewCompoundCurve(v.Layout())
		out.SetSRID(v.SRID())
		for _, child := range children {
			_ = out.Push(child) // a child the container cannot hold is dropped
		}
		return out
	case *curvegeom.CurvePolygon:
		out := curvegeom.NewCurvePolygon(v.Layout())
		out.SetSRID(v.SRID())
		for _, child := range children {
			_ = out.Push(child)
		}
		return out
	default:
		return seg
	}
}
