package curvegeom

import (
	"github.com/twpayne/go-geom"
)

// A CurvePolygon is a polygonal surface whose rings may be curved. The first
// ring is the outer shell, any further rings are holes. Each ring is a
// *geom.LineString, *geom.LinearRing, *CircularString or *CompoundCurve and
// should be closed.
type CurvePolygon struct {
	layout geom.Layout
	rings  []geom.T
	srid   int
}

// NewCurvePolygon returns a new CurvePolygon with layout l and no rings.
func NewCurvePolygon(l geom.Layout) *CurvePolygon {
	return &CurvePolygon{layout: l}
}

// Layout returns the layout of cp.
func (cp *CurvePolygon) Layout() geom.Layout {
	return cp.layout
}

// Stride returns the stride of cp.
func (cp *CurvePolygon) Stride() int {
	return cp.layout.Stride()
}

// Bounds returns the bounds of all rings of cp.
func (cp *CurvePolygon) Bounds() *geom.Bounds {
	b := geom.NewBounds(cp.layout)
	for _, r := range cp.rings {
		b = b.Extend(r)
	}
	return b
}

// FlatCoords returns nil. Ring coordinates live on the rings.
func (cp *CurvePolygon) FlatCoords() []float64 {
	return nil
}

// Ends returns nil.
func (cp *CurvePolygon) Ends() []int {
	return nil
}

// Endss returns nil.
func (cp *CurvePolygon) Endss() [][]int {
	return nil
}

// SRID returns the SRID of cp.
func (cp *CurvePolygon) SRID() int {
	return cp.srid
}

// SetSRID sets the SRID of cp.
func (cp *CurvePolygon) SetSRID(srid int) *CurvePolygon {
	cp.srid = srid
	return cp
}

// Empty reports whether cp has no rings.
func (cp *CurvePolygon) Empty() bool {
	return len(cp.rings) == 0
}

// NumRings returns the number of rings of cp.
func (cp *CurvePolygon) NumRings() int {
	return len(cp.rings)
}

// Ring returns the i-th ring of cp.
func (cp *CurvePolygon) Ring(i int) geom.T {
	return cp.rings[i]
}

// Rings returns the rings of cp.
func (cp *CurvePolygon) Rings() []geom.T {
	return cp.rings
}

// Push appends a ring to cp, validating kind and layout for known types.
func (cp *CurvePolygon) Push(ring geom.T) error {
	if knownChildKind(ring) {
		switch ring.(type) {
		case *geom.LineString, *geom.LinearRing, *CircularString, *CompoundCurve:
		default:
			return ErrUnsupportedType{Value: ring}
		}
		if ring.Layout() != cp.layout {
			return geom.ErrLayoutMismatch{Got: ring.Layout(), Want: cp.layout}
		}
	}
	cp.rings = append(cp.rings, ring)
	return nil
}

// MustPush appends a ring to cp and panics on any error.
func (cp *CurvePolygon) MustPush(ring geom.T) *CurvePolygon {
	if err := cp.Push(ring); err != nil {
		panic(err)
	}
	return cp
}

// Clone returns a deep copy of cp.
func (cp *CurvePolygon) Clone() *CurvePolygon {
	out := NewCurvePolygon(cp.layout)
	out.srid = cp.srid
	for _, r := range cp.rings {
		out.rings = append(out.rings, cloneChild(r))
	}
	return out
}
