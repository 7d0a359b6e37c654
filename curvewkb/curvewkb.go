// Package curvewkb reads and writes Well-Known Binary geometries, including
// the curved types (CircularString, CompoundCurve, CurvePolygon, MultiCurve,
// MultiSurface) that general-purpose geometry codecs leave out.
//
// Both ISO dimension offsets (1000/2000/3000) and PostGIS extended WKB flag
// bits are understood on input, in either byte order; output is ISO
// little-endian unless configured otherwise. Every embedded child geometry
// carries its own byte-order marker, so mixed-endian payloads decode.
package curvewkb

import (
	"errors"
	"fmt"

	"github.com/Mzandre2/TrueCruve-Toolbox/curvegeom"
	"github.com/twpayne/go-geom"
)

// Byte-order markers.
const (
	wkbXDR byte = 0 // big-endian
	wkbNDR byte = 1 // little-endian
)

// ISO dimension offsets added to the base type code.
const (
	isoZ  = 1000
	isoM  = 2000
	isoZM = 3000
)

// PostGIS extended WKB flag bits. The Z bit doubles as the legacy 2.5D
// marker, so both spellings of "has height" land on the same layout.
const (
	ewkbZ    = 0x80000000
	ewkbM    = 0x40000000
	ewkbSRID = 0x20000000
)

// maxNesting bounds recursion over embedded geometries in both directions.
const maxNesting = 64

// ErrNilGeometry is returned by Marshal when given a nil geometry.
var ErrNilGeometry = errors.New("curvewkb: nil geometry")

// ErrEmptyInput is returned by Unmarshal when given no bytes.
var ErrEmptyInput = errors.New("curvewkb: empty input")

// ErrUnexpectedEnd is returned when the input stops mid-geometry.
var ErrUnexpectedEnd = errors.New("curvewkb: unexpected end of input")

// ErrExtraData is returned when decoding succeeds with bytes left over.
var ErrExtraData = errors.New("curvewkb: extra data after geometry")

// ErrNestingTooDeep is returned for geometries nested beyond any plausible
// real-world depth, before recursion becomes a resource problem.
var ErrNestingTooDeep = errors.New("curvewkb: geometry nesting too deep")

// ErrUnsupportedByteOrder is returned for a byte-order marker that is
// neither XDR nor NDR.
type ErrUnsupportedByteOrder struct {
	Value byte
}

func (e ErrUnsupportedByteOrder) Error() string {
	return fmt.Sprintf("curvewkb: unsupported byte order %d", e.Value)
}

// ErrUnknownType is returned for a type code outside the supported set.
// The abstract Curve and Surface codes land here too; they tag wire data
// but are not instantiable.
type ErrUnknownType struct {
	Code uint32
}

func (e ErrUnknownType) Error() string {
	return fmt.Sprintf("curvewkb: unknown geometry type code %d", e.Code)
}

// ErrUnsupportedLayout is returned when a geometry's layout has no WKB
// dimension encoding.
type ErrUnsupportedLayout struct {
	Layout geom.Layout
}

func (e ErrUnsupportedLayout) Error() string {
	return fmt.Sprintf("curvewkb: unsupported layout %s", e.Layout)
}

// ErrInvalidChild is returned when a container embeds a geometry kind it
// cannot hold, such as a Point inside a MultiCurve.
type ErrInvalidChild struct {
	Parent curvegeom.Type
	Child  curvegeom.Type
}

func (e ErrInvalidChild) Error() string {
	return fmt.Sprintf("curvewkb: %s cannot contain %s", e.Parent, e.Child)
}

// ErrCountExceedsInput is returned when a declared element count could not
// possibly fit in the remaining input, before any allocation happens.
type ErrCountExceedsInput struct {
	Count uint32
}

func (e ErrCountExceedsInput) Error() string {
	return fmt.Sprintf("curvewkb: declared element count %d exceeds remaining input", e.Count)
}

// ErrUnsupportedGeometry is returned by Marshal for geometry implementations
// from outside the go-geom/curvegeom model.
type ErrUnsupportedGeometry struct {
	Value geom.T
}

func (e ErrUnsupportedGeometry) Error() string {
	return fmt.Sprintf("curvewkb: cannot encode %T", e.Value)
}
