package curvegeom

import (
	"github.com/twpayne/go-geom"
)

// A MultiCurve is a collection of curves: *geom.LineString, *CircularString
// or *CompoundCurve children in any mix. Once every child is linear the
// collection is conventionally re-typed to a plain MultiLineString.
type MultiCurve struct {
	layout geom.Layout
	curves []geom.T
	srid   int
}

// NewMultiCurve returns a new empty MultiCurve with layout l.
func NewMultiCurve(l geom.Layout) *MultiCurve {
	return &MultiCurve{layout: l}
}

// Layout returns the layout of mc.
func (mc *MultiCurve) Layout() geom.Layout {
	return mc.layout
}

// Stride returns the stride of mc.
func (mc *MultiCurve) Stride() int {
	return mc.layout.Stride()
}

// Bounds returns the bounds of all curves of mc.
func (mc *MultiCurve) Bounds() *geom.Bounds {
	b := geom.NewBounds(mc.layout)
	for _, c := range mc.curves {
		b = b.Extend(c)
	}
	return b
}

// FlatCoords returns nil. Coordinates live on the child curves.
func (mc *MultiCurve) FlatCoords() []float64 {
	return nil
}

// Ends returns nil.
func (mc *MultiCurve) Ends() []int {
	return nil
}

// Endss returns nil.
func (mc *MultiCurve) Endss() [][]int {
	return nil
}

// SRID returns the SRID of mc.
func (mc *MultiCurve) SRID() int {
	return mc.srid
}

// SetSRID sets the SRID of mc.
func (mc *MultiCurve) SetSRID(srid int) *MultiCurve {
	mc.srid = srid
	return mc
}

// Empty reports whether mc has no curves.
func (mc *MultiCurve) Empty() bool {
	return len(mc.curves) == 0
}

// NumCurves returns the number of curves of mc.
func (mc *MultiCurve) NumCurves() int {
	return len(mc.curves)
}

// Curve returns the i-th curve of mc.
func (mc *MultiCurve) Curve(i int) geom.T {
	return mc.curves[i]
}

// Curves returns the curves of mc.
func (mc *MultiCurve) Curves() []geom.T {
	return mc.curves
}

// Push appends a curve to mc, validating kind and layout for known types.
func (mc *MultiCurve) Push(curve geom.T) error {
	if knownChildKind(curve) {
		switch curve.(type) {
		case *geom.LineString, *CircularString, *CompoundCurve:
		default:
			return ErrUnsupportedType{Value: curve}
		}
		if curve.Layout() != mc.layout {
			return geom.ErrLayoutMismatch{Got: curve.Layout(), Want: mc.layout}
		}
	}
	mc.curves = append(mc.curves, curve)
	return nil
}

// MustPush appends a curve to mc and panics on any error.
func (mc *MultiCurve) MustPush(curve geom.T) *MultiCurve {
	if err := mc.Push(curve); err != nil {
		panic(err)
	}
	return mc
}

// Clone returns a deep copy of mc.
func (mc *MultiCurve) Clone() *MultiCurve {
	out := NewMultiCurve(mc.layout)
	out.srid = mc.srid
	for _, c := range mc.curves {
		out.curves = append(out.curves, cloneChild(c))
	}
	return out
}
