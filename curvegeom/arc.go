package curvegeom

import (
	"math"

	"github.com/twpayne/go-geom"
)

const (
	// DefaultMaxAngleStep is the per-chord angle used when no tolerance is
	// supplied: 4 degrees, the conventional curve-to-line default.
	DefaultMaxAngleStep = 4 * math.Pi / 180

	// MinAngleStep caps fidelity when the tolerance is zero or vanishingly
	// small, keeping subdivision finite.
	MinAngleStep = 1e-3

	// maxChordAngle keeps a single chord from spanning more than a quarter
	// circle however coarse the tolerance.
	maxChordAngle = math.Pi / 2

	// collinearEps is the relative cross-product threshold below which an
	// arc triple is treated as straight.
	collinearEps = 1e-11
)

// An angleStepFunc returns the maximum chord angle for an arc of radius r.
type angleStepFunc func(r float64) float64

// toleranceStep derives the chord angle from a maximum chord-to-arc
// deviation: a chord spanning angle a deviates by r*(1-cos(a/2)).
func toleranceStep(tolerance float64) angleStepFunc {
	return func(r float64) float64 {
		if tolerance <= 0 || r <= 0 {
			return MinAngleStep
		}
		if tolerance >= r {
			return maxChordAngle
		}
		step := 2 * math.Acos(1-tolerance/r)
		return math.Min(math.Max(step, MinAngleStep), maxChordAngle)
	}
}

func fixedAngleStep(float64) float64 {
	return DefaultMaxAngleStep
}

// An arc is one circular triple in normalized form.
type arc struct {
	cx, cy float64
	r      float64
	start  float64 // angle of the triple's first point
	sweep  float64 // signed sweep from first to last point
	mid    float64 // fraction of the sweep at the middle point, in (0,1)
	linear bool    // collinear or degenerate control points
}

// arcFromPoints builds the circle through three control points. A closed
// triple (first == last) is the full circle on the diameter to the middle
// point, swept counter-clockwise. Collinear and degenerate triples come back
// with linear set.
func arcFromPoints(x0, y0, x1, y1, x2, y2 float64) arc {
	bx, by := x1-x0, y1-y0
	ex, ey := x2-x0, y2-y0
	if x0 == x2 && y0 == y2 {
		if bx == 0 && by == 0 {
			return arc{linear: true}
		}
		cx, cy := x0+bx/2, y0+by/2
		return arc{
			cx:    cx,
			cy:    cy,
			r:     math.Hypot(bx, by) / 2,
			start: math.Atan2(y0-cy, x0-cx),
			sweep: 2 * math.Pi,
			mid:   0.5,
		}
	}
	d := 2 * (bx*ey - by*ex)
	bLen := math.Hypot(bx, by)
	eLen := math.Hypot(ex, ey)
	if bLen == 0 || eLen == 0 || math.Abs(d) <= collinearEps*bLen*eLen {
		return arc{linear: true}
	}
	b2 := bx*bx + by*by
	e2 := ex*ex + ey*ey
	ux := (ey*b2 - by*e2) / d
	uy := (bx*e2 - ex*b2) / d
	cx, cy := x0+ux, y0+uy
	r := math.Hypot(ux, uy)
	a0 := math.Atan2(y0-cy, x0-cx)
	a1 := math.Atan2(y1-cy, x1-cx)
	a2 := math.Atan2(y2-cy, x2-cx)

	// The triangle orientation picks the rotation direction that passes
	// through the middle point.
	var sweep, mid float64
	if d > 0 {
		sweep = positiveAngle(a2 - a0)
		mid = positiveAngle(a1-a0) / sweep
	} else {
		sweep = -positiveAngle(a0 - a2)
		mid = positiveAngle(a0-a1) / -sweep
	}
	if sweep == 0 {
		return arc{linear: true}
	}
	if math.IsNaN(mid) || mid <= 0 || mid >= 1 {
		mid = 0.5
	}
	return arc{cx: cx, cy: cy, r: r, start: a0, sweep: sweep, mid: mid}
}

// positiveAngle maps a into [0, 2*pi).
func positiveAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// pointAt returns the position at fraction f of the sweep.
func (a arc) pointAt(f float64) (float64, float64) {
	ang := a.start + a.sweep*f
	return a.cx + a.r*math.Cos(ang), a.cy + a.r*math.Sin(ang)
}

// arcSegments returns the chord count for a sweep at the given maximum chord
// angle: never fewer than two, rounded up to an even count so densified
// strings keep a valid odd point total.
func arcSegments(sweep, step float64) int {
	if step <= 0 {
		step = MinAngleStep
	}
	n := int(math.Ceil(math.Abs(sweep) / step))
	if n < 2 {
		n = 2
	}
	if n%2 == 1 {
		n++
	}
	return n
}

// interpolateThrough interpolates an extra dimension (Z or M) piecewise
// linearly from v0 through v1 to v2, with v1 pinned at sweep fraction mid.
func interpolateThrough(v0, v1, v2, f, mid float64) float64 {
	if mid <= 0 || mid >= 1 {
		return v0 + (v2-v0)*f
	}
	if f <= mid {
		return v0 + (v1-v0)*f/mid
	}
	return v1 + (v2-v1)*(f-mid)/(1-mid)
}

// appendArcPoints appends the subdivision of one arc triple to dst. The
// first and last control points are emitted exactly; interior points are
// sampled on the circle. Straight triples pass through unchanged.
func appendArcPoints(dst []float64, layout geom.Layout, p0, p1, p2 geom.Coord, step angleStepFunc, skipFirst bool) []float64 {
	a := arcFromPoints(p0[0], p0[1], p1[0], p1[1], p2[0], p2[1])
	if a.linear {
		if !skipFirst {
			dst = append(dst, p0...)
		}
		dst = append(dst, p1...)
		dst = append(dst, p2...)
		return dst
	}
	stride := layout.Stride()
	n := arcSegments(a.sweep, step(a.r))
	for i := 0; i <= n; i++ {
		switch i {
		case 0:
			if !skipFirst {
				dst = append(dst, p0...)
			}
		case n:
			dst = append(dst, p2...)
		default:
			f := float64(i) / float64(n)
			x, y := a.pointAt(f)
			dst = append(dst, x, y)
			for k := 2; k < stride; k++ {
				dst = append(dst, interpolateThrough(p0[k], p1[k], p2[k], f, a.mid))
			}
		}
	}
	return dst
}

// densifyCircular returns the flat coordinates of cs subdivided at the given
// step. The same point sequence serves both as a densified CircularString
// (all samples lie on the source circles) and as the chord polyline of its
// linear form. Strings with fewer than three points copy through; a dangling
// control point on a malformed even-count string joins straight.
func densifyCircular(cs *CircularString, step angleStepFunc) []float64 {
	n := cs.NumCoords()
	if n < 3 {
		return cloneFlat(cs.FlatCoords())
	}
	dst := make([]float64, 0, 2*len(cs.flatCoords))
	i := 0
	for ; i+2 < n; i += 2 {
		dst = appendArcPoints(dst, cs.layout, cs.Coord(i), cs.Coord(i+1), cs.Coord(i+2), step, i > 0)
	}
	for ; i+1 < n; i++ {
		dst = append(dst, cs.Coord(i+1)...)
	}
	return dst
}
