package curvewkb

import (
	"encoding/binary"
	"math"

	"github.com/Mzandre2/TrueCruve-Toolbox/curvegeom"
	"github.com/twpayne/go-geom"
)

type encodeOptions struct {
	order binary.ByteOrder
	ewkb  bool
}

// An EncodeOption adjusts how Marshal lays out its output.
type EncodeOption func(*encodeOptions)

// EncodeOptionByteOrder sets the byte order of the output. The default is
// little-endian.
func EncodeOptionByteOrder(order binary.ByteOrder) EncodeOption {
	return func(o *encodeOptions) {
		o.order = order
	}
}

// EncodeOptionEWKB switches the output from ISO dimension offsets to
// PostGIS extended WKB flag bits, embedding the SRID on the outermost
// geometry when it carries one.
func EncodeOptionEWKB() EncodeOption {
	return func(o *encodeOptions) {
		o.ewkb = true
	}
}

// Marshal encodes g as WKB.
func Marshal(g geom.T, opts ...EncodeOption) ([]byte, error) {
	if g == nil {
		return nil, ErrNilGeometry
	}
	o := encodeOptions{order: binary.LittleEndian}
	for _, opt := range opts {
		opt(&o)
	}
	e := &encoder{opts: o}
	if err := e.geometry(g, true, 0); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	opts encodeOptions
	buf  []byte
}

func (e *encoder) appendByteOrder() {
	if e.opts.order == binary.BigEndian {
		e.buf = append(e.buf, wkbXDR)
		return
	}
	e.buf = append(e.buf, wkbNDR)
}

func (e *encoder) appendUint32(v uint32) {
	var b [4]byte
	e.opts.order.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) appendFloat(f float64) {
	var b [8]byte
	e.opts.order.PutUint64(b[:], math.Float64bits(f))
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) appendFloats(fs []float64) {
	for _, f := range fs {
		e.appendFloat(f)
	}
}

// typeCode builds the wire type value for g: the base code plus either ISO
// dimension offsets or extended WKB flag bits. The SRID flag is only ever
// set on the outermost geometry.
func (e *encoder) typeCode(g geom.T, top bool) (uint32, error) {
	t := curvegeom.TypeOf(g)
	if t == curvegeom.TypeUnknown {
		return 0, ErrUnsupportedGeometry{Value: g}
	}
	code := uint32(t)
	layout := g.Layout()
	if layout == geom.NoLayout {
		// An empty collection has no coordinates to take a layout from.
		layout = geom.XY
	}
	if e.opts.ewkb {
		switch layout {
		case geom.XY:
		case geom.XYZ:
			code |= ewkbZ
		case geom.XYM:
			code |= ewkbM
		case geom.XYZM:
			code |= ewkbZ | ewkbM
		default:
			return 0, ErrUnsupportedLayout{Layout: layout}
		}
		if top && g.SRID() != 0 {
			code |= ewkbSRID
		}
		return code, nil
	}
	switch layout {
	case geom.XY:
	case geom.XYZ:
		code += isoZ
	case geom.XYM:
		code += isoM
	case geom.XYZM:
		code += isoZM
	default:
		return 0, ErrUnsupportedLayout{Layout: layout}
	}
	return code, nil
}

func (e *encoder) geometry(g geom.T, top bool, depth int) error {
	if depth > maxNesting {
		return ErrNestingTooDeep
	}
	code, err := e.typeCode(g, top)
	if err != nil {
		return err
	}
	e.appendByteOrder()
	e.appendUint32(code)
	if e.opts.ewkb && top && g.SRID() != 0 {
		e.appendUint32(uint32(g.SRID()))
	}
	switch v := g.(type) {
	case *geom.Point:
		coords := v.FlatCoords()
		if len(coords) == 0 {
			// An empty point has no wire representation of its own;
			// all-NaN coordinates are the convention.
			for i := 0; i < v.Layout().Stride(); i++ {
				e.appendFloat(math.NaN())
			}
			return nil
		}
		e.appendFloats(coords)
	case *geom.LineString:
		e.appendPoints(v.Layout(), v.FlatCoords())
	case *geom.LinearRing:
		e.appendPoints(v.Layout(), v.FlatCoords())
	case *curvegeom.CircularString:
		e.appendPoints(v.Layout(), v.FlatCoords())
	case *geom.Polygon:
		e.appendUint32(uint32(v.NumLinearRings()))
		for i := 0; i < v.NumLinearRings(); i++ {
			ring := v.LinearRing(i)
			e.appendPoints(ring.Layout(), ring.FlatCoords())
		}
	case *geom.MultiPoint:
		e.appendUint32(uint32(v.NumPoints()))
		for i := 0; i < v.NumPoints(); i++ {
			if err := e.geometry(v.Point(i), false, depth+1); err != nil {
				return err
			}
		}
	case *geom.MultiLineString:
		e.appendUint32(uint32(v.NumLineStrings()))
		for i := 0; i < v.NumLineStrings(); i++ {
			if err := e.geometry(v.LineString(i), false, depth+1); err != nil {
				return err
			}
		}
	case *geom.MultiPolygon:
		e.appendUint32(uint32(v.NumPolygons()))
		for i := 0; i < v.NumPolygons(); i++ {
			if err := e.geometry(v.Polygon(i), false, depth+1); err != nil {
				return err
			}
		}
	case *geom.GeometryCollection:
		e.appendUint32(uint32(v.NumGeoms()))
		for _, child := range v.Geoms() {
			if err := e.geometry(child, false, depth+1); err != nil {
				return err
			}
		}
	case *curvegeom.CompoundCurve:
		e.appendUint32(uint32(v.NumSegments()))
		for _, s := range v.Segments() {
			if err := e.geometry(s, false, depth+1); err != nil {
				return err
			}
		}
	case *curvegeom.CurvePolygon:
		e.appendUint32(uint32(v.NumRings()))
		for _, ring := range v.Rings() {
			if err := e.geometry(ring, false, depth+1); err != nil {
				return err
			}
		}
	case *curvegeom.MultiCurve:
		e.appendUint32(uint32(v.NumCurves()))
		for _, curve := range v.Curves() {
			if err := e.geometry(curve, false, depth+1); err != nil {
				return err
			}
		}
	case *curvegeom.MultiSurface:
		e.appendUint32(uint32(v.NumSurfaces()))
		for _, surface := range v.Surfaces() {
			if err := e.geometry(surface, false, depth+1); err != nil {
				return err
			}
		}
	default:
		return ErrUnsupportedGeometry{Value: g}
	}
	return nil
}

// appendPoints writes a count-prefixed coordinate sequence.
func (e *encoder) appendPoints(layout geom.Layout, flatCoords []float64) {
	stride := layout.Stride()
	if stride == 0 {
		e.appendUint32(0)
		return
	}
	e.appendUint32(uint32(len(flatCoords) / stride))
	e.appendFloats(flatCoords)
}
