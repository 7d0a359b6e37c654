package curvegeom

import (
	"github.com/twpayne/go-geom"
)

// A CircularString is a curve defined by consecutive overlapping triples of
// control points: (p0,p1,p2), (p2,p3,p4), and so on. Each triple is the
// circular arc that starts at its first point, passes through its second and
// ends at its third. A well-formed CircularString is empty or has an odd
// number of points, at least three; constructors are as lenient as go-geom's
// and leave enforcement to the wire codec.
//
// A triple whose first and last points coincide is a full circle on the
// diameter between its first and middle points. A collinear triple is a pair
// of straight segments.
type CircularString struct {
	layout     geom.Layout
	stride     int
	flatCoords []float64
	srid       int
}

// NewCircularString returns a new CircularString with layout l and no
// control points.
func NewCircularString(l geom.Layout) *CircularString {
	return NewCircularStringFlat(l, nil)
}

// NewCircularStringFlat returns a new CircularString with layout l and the
// given flat coordinates.
func NewCircularStringFlat(l geom.Layout, flatCoords []float64) *CircularString {
	return &CircularString{
		layout:     l,
		stride:     l.Stride(),
		flatCoords: flatCoords,
	}
}

// Layout returns the layout of cs.
func (cs *CircularString) Layout() geom.Layout {
	return cs.layout
}

// Stride returns the stride of cs.
func (cs *CircularString) Stride() int {
	return cs.stride
}

// Bounds returns the bounds of the control points of cs. Arc segments may
// bulge beyond the control points; these bounds cover the control polygon,
// which is what the wire formats and indexes of curved data conventionally
// use before linearization.
func (cs *CircularString) Bounds() *geom.Bounds {
	return geom.NewLineStringFlat(cs.layout, cs.flatCoords).Bounds()
}

// FlatCoords returns the flat coordinates of cs.
func (cs *CircularString) FlatCoords() []float64 {
	return cs.flatCoords
}

// Ends returns nil.
func (cs *CircularString) Ends() []int {
	return nil
}

// Endss returns nil.
func (cs *CircularString) Endss() [][]int {
	return nil
}

// SRID returns the SRID of cs.
func (cs *CircularString) SRID() int {
	return cs.srid
}

// SetSRID sets the SRID of cs.
func (cs *CircularString) SetSRID(srid int) *CircularString {
	cs.srid = srid
	return cs
}

// Empty reports whether cs has no control points.
func (cs *CircularString) Empty() bool {
	return len(cs.flatCoords) == 0
}

// NumCoords returns the number of control points of cs.
func (cs *CircularString) NumCoords() int {
	if cs.stride == 0 {
		return 0
	}
	return len(cs.flatCoords) / cs.stride
}

// Coord returns the i-th control point of cs.
func (cs *CircularString) Coord(i int) geom.Coord {
	return cs.flatCoords[i*cs.stride : (i+1)*cs.stride]
}

// Coords returns all control points of cs.
func (cs *CircularString) Coords() []geom.Coord {
	return inflate(cs.flatCoords, cs.stride)
}

// SetCoords sets the control points of cs.
func (cs *CircularString) SetCoords(coords []geom.Coord) (*CircularString, error) {
	flatCoords, err := deflate(coords, cs.stride)
	if err != nil {
		return nil, err
	}
	cs.flatCoords = flatCoords
	return cs, nil
}

// MustSetCoords sets the control points of cs and panics on any error.
func (cs *CircularString) MustSetCoords(coords []geom.Coord) *CircularString {
	if _, err := cs.SetCoords(coords); err != nil {
		panic(err)
	}
	return cs
}

// NumArcs returns the number of arc triples in cs.
func (cs *CircularString) NumArcs() int {
	n := cs.NumCoords()
	if n < 3 {
		return 0
	}
	return (n - 1) / 2
}

// Arc returns the i-th arc triple of cs as flat coordinates of its three
// control points.
func (cs *CircularString) Arc(i int) (p0, p1, p2 geom.Coord) {
	return cs.Coord(2 * i), cs.Coord(2*i + 1), cs.Coord(2*i + 2)
}

// Clone returns a deep copy of cs.
func (cs *CircularString) Clone() *CircularString {
	out := NewCircularStringFlat(cs.layout, cloneFlat(cs.flatCoords))
	out.srid = cs.srid
	return out
}
