package curvegeom

import (
	"github.com/twpayne/go-geom"
)

// A CompoundCurve is a single continuous curve assembled from straight and
// circular segments. Each segment is a *geom.LineString or a *CircularString;
// consecutive segments should share their join point. Joins are not enforced
// here: sloppy real-world data decodes, and the flattener simply keeps both
// sides of a gap.
type CompoundCurve struct {
	layout   geom.Layout
	segments []geom.T
	srid     int
}

// NewCompoundCurve returns a new empty CompoundCurve with layout l.
func NewCompoundCurve(l geom.Layout) *CompoundCurve {
	return &CompoundCurve{layout: l}
}

// Layout returns the layout of cc.
func (cc *CompoundCurve) Layout() geom.Layout {
	return cc.layout
}

// Stride returns the stride of cc.
func (cc *CompoundCurve) Stride() int {
	return cc.layout.Stride()
}

// Bounds returns the bounds of all segments of cc.
func (cc *CompoundCurve) Bounds() *geom.Bounds {
	b := geom.NewBounds(cc.layout)
	for _, s := range cc.segments {
		b = b.Extend(s)
	}
	return b
}

// FlatCoords returns nil. Segment coordinates live on the segments.
func (cc *CompoundCurve) FlatCoords() []float64 {
	return nil
}

// Ends returns nil.
func (cc *CompoundCurve) Ends() []int {
	return nil
}

// Endss returns nil.
func (cc *CompoundCurve) Endss() [][]int {
	return nil
}

// SRID returns the SRID of cc.
func (cc *CompoundCurve) SRID() int {
	return cc.srid
}

// SetSRID sets the SRID of cc.
func (cc *CompoundCurve) SetSRID(srid int) *CompoundCurve {
	cc.srid = srid
	return cc
}

// Empty reports whether cc has no segments.
func (cc *CompoundCurve) Empty() bool {
	return len(cc.segments) == 0
}

// NumSegments returns the number of segments of cc.
func (cc *CompoundCurve) NumSegments() int {
	return len(cc.segments)
}

// Segment returns the i-th segment of cc.
func (cc *CompoundCurve) Segment(i int) geom.T {
	return cc.segments[i]
}

// Segments returns the segments of cc.
func (cc *CompoundCurve) Segments() []geom.T {
	return cc.segments
}

// Push appends a segment to cc. The segment must be a *geom.LineString or a
// *CircularString with the same layout as cc. Foreign geom.T implementations
// are accepted so driver-specific curve segments can ride along; the wire
// codec rejects them at encode time.
func (cc *CompoundCurve) Push(segment geom.T) error {
	if knownChildKind(segment) {
		switch segment.(type) {
		case *geom.LineString, *CircularString:
		default:
			return ErrUnsupportedType{Value: segment}
		}
		if segment.Layout() != cc.layout {
			return geom.ErrLayoutMismatch{Got: segment.Layout(), Want: cc.layout}
		}
	}
	cc.segments = append(cc.segments, segment)
	return nil
}

// MustPush appends a segment to cc and panics on any error.
func (cc *CompoundCurve) MustPush(segment geom.T) *CompoundCurve {
	if err := cc.Push(segment); err != nil {
		panic(err)
	}
	return cc
}

// Clone returns a deep copy of cc.
func (cc *CompoundCurve) Clone() *CompoundCurve {
	out := NewCompoundCurve(cc.layout)
	out.srid = cc.srid
	for _, s := range cc.segments {
		out.segments = append(out.segments, cloneChild(s))
	}
	return out
}
