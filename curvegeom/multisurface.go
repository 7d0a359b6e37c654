package curvegeom

import (
	"github.com/twpayne/go-geom"
)

// A MultiSurface is a collection of surfaces: *geom.Polygon or *CurvePolygon
// children in any mix. Once every child is linear the collection is
// conventionally re-typed to a plain MultiPolygon.
type MultiSurface struct {
	layout   geom.Layout
	surfaces []geom.T
	srid     int
}

// NewMultiSurface returns a new empty MultiSurface with layout l.
func NewMultiSurface(l geom.Layout) *MultiSurface {
	return &MultiSurface{layout: l}
}

// Layout returns the layout of ms.
func (ms *MultiSurface) Layout() geom.Layout {
	return ms.layout
}

// Stride returns the stride of ms.
func (ms *MultiSurface) Stride() int {
	return ms.layout.Stride()
}

// Bounds returns the bounds of all surfaces of ms.
func (ms *MultiSurface) Bounds() *geom.Bounds {
	b := geom.NewBounds(ms.layout)
	for _, s := range ms.surfaces {
		b = b.Extend(s)
	}
	return b
}

// FlatCoords returns nil. Coordinates live on the child surfaces.
func (ms *MultiSurface) FlatCoords() []float64 {
	return nil
}

// Ends returns nil.
func (ms *MultiSurface) Ends() []int {
	return nil
}

// Endss returns nil.
func (ms *MultiSurface) Endss() [][]int {
	return nil
}

// SRID returns the SRID of ms.
func (ms *MultiSurface) SRID() int {
	return ms.srid
}

// SetSRID sets the SRID of ms.
func (ms *MultiSurface) SetSRID(srid int) *MultiSurface {
	ms.srid = srid
	return ms
}

// Empty reports whether ms has no surfaces.
func (ms *MultiSurface) Empty() bool {
	return len(ms.surfaces) == 0
}

// NumSurfaces returns the number of surfaces of ms.
func (ms *MultiSurface) NumSurfaces() int {
	return len(ms.surfaces)
}

// Surface returns the i-th surface of ms.
func (ms *MultiSurface) Surface(i int) geom.T {
	return ms.surfaces[i]
}

// Surfaces returns the surfaces of ms.
func (ms *MultiSurface) Surfaces() []geom.T {
	return ms.surfaces
}

// Push appends a surface to ms, validating kind and layout for known types.
func (ms *MultiSurface) Push(surface geom.T) error {
	if knownChildKind(surface) {
		switch surface.(type) {
		case *geom.Polygon, *CurvePolygon:
		default:
			return ErrUnsupportedType{Value: surface}
		}
		if surface.Layout() != ms.layout {
			return geom.ErrLayoutMismatch{Got: surface.Layout(), Want: ms.layout}
		}
	}
	ms.surfaces = append(ms.surfaces, surface)
	return nil
}

// MustPush appends a surface to ms and panics on any error.
func (ms *MultiSurface) MustPush(surface geom.T) *MultiSurface {
	if err := ms.Push(surface); err != nil {
		panic(err)
	}
	return ms
}

// Clone returns a deep copy of ms.
func (ms *MultiSurface) Clone() *MultiSurface {
	out := NewMultiSurface(ms.layout)
	out.srid = ms.srid
	for _, s := range ms.surfaces {
		out.surfaces = append(out.surfaces, cloneChild(s))
	}
	return out
}
