package curvewkb

import (
	"encoding/binary"
	"math"

	"github.com/Mzandre2/TrueCruve-Toolbox/curvegeom"
	"github.com/twpayne/go-geom"
)

// Unmarshal parses a single WKB geometry from data. The whole input must be
// consumed; trailing bytes are an error.
func Unmarshal(data []byte) (geom.T, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	d := &decoder{data: data}
	g, err := d.geometry(0)
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, ErrExtraData
	}
	return g, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) remaining() int {
	return len(d.data) - d.pos
}

func (d *decoder) readByte() (byte, error) {
	if d.remaining() < 1 {
		return 0, ErrUnexpectedEnd
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readUint32(order binary.ByteOrder) (uint32, error) {
	if d.remaining() < 4 {
		return 0, ErrUnexpectedEnd
	}
	v := order.Uint32(d.data[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *decoder) readFloats(order binary.ByteOrder, n int) ([]float64, error) {
	if d.remaining() < 8*n {
		return nil, ErrUnexpectedEnd
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(order.Uint64(d.data[d.pos:]))
		d.pos += 8
	}
	return out, nil
}

// readCount reads an element count and rejects values that cannot fit in
// the remaining input at minSize bytes per element.
func (d *decoder) readCount(order binary.ByteOrder, minSize int) (int, error) {
	n, err := d.readUint32(order)
	if err != nil {
		return 0, err
	}
	if int64(n)*int64(minSize) > int64(d.remaining()) {
		return 0, ErrCountExceedsInput{Count: n}
	}
	return int(n), nil
}

// A header is the decoded preamble of one geometry: byte order, kind,
// layout and, for extended WKB, the SRID.
type header struct {
	order  binary.ByteOrder
	typ    curvegeom.Type
	layout geom.Layout
	srid   int
}

func (d *decoder) readHeader() (header, error) {
	var h header
	marker, err := d.readByte()
	if err != nil {
		return h, err
	}
	switch marker {
	case wkbXDR:
		h.order = binary.BigEndian
	case wkbNDR:
		h.order = binary.LittleEndian
	default:
		return h, ErrUnsupportedByteOrder{Value: marker}
	}
	raw, err := d.readUint32(h.order)
	if err != nil {
		return h, err
	}
	z := raw&ewkbZ != 0
	m := raw&ewkbM != 0
	hasSRID := raw&ewkbSRID != 0
	raw &^= ewkbZ | ewkbM | ewkbSRID
	switch raw / 1000 {
	case 0:
	case 1:
		z = true
	case 2:
		m = true
	case 3:
		z, m = true, true
	default:
		return h, ErrUnknownType{Code: raw}
	}
	switch {
	case z && m:
		h.layout = geom.XYZM
	case z:
		h.layout = geom.XYZ
	case m:
		h.layout = geom.XYM
	default:
		h.layout = geom.XY
	}
	h.typ = curvegeom.Type(raw % 1000)
	if hasSRID {
		srid, err := d.readUint32(h.order)
		if err != nil {
			return h, err
		}
		h.srid = int(srid)
	}
	return h, nil
}

func (d *decoder) geometry(depth int) (geom.T, error) {
	if depth > maxNesting {
		return nil, ErrNestingTooDeep
	}
	h, err := d.readHeader()
	if err != nil {
		return nil, err
	}
	g, err := d.body(h, depth)
	if err != nil {
		return nil, err
	}
	if h.srid != 0 {
		setSRID(g, h.srid)
	}
	return g, nil
}

func (d *decoder) body(h header, depth int) (geom.T, error) {
	switch h.typ {
	case curvegeom.TypePoint:
		coords, err := d.readFloats(h.order, h.layout.Stride())
		if err != nil {
			return nil, err
		}
		if allNaN(coords) {
			return geom.NewPointEmpty(h.layout), nil
		}
		return geom.NewPointFlat(h.layout, coords), nil
	case curvegeom.TypeLineString:
		coords, err := d.readPoints(h)
		if err != nil {
			return nil, err
		}
		return geom.NewLineStringFlat(h.layout, coords), nil
	case curvegeom.TypeCircularString:
		coords, err := d.readPoints(h)
		if err != nil {
			return nil, err
		}
		return curvegeom.NewCircularStringFlat(h.layout, coords), nil
	case curvegeom.TypePolygon:
		return d.polygon(h)
	case curvegeom.TypeMultiPoint:
		return d.multiPoint(h, depth)
	case curvegeom.TypeMultiLineString:
		return d.multiLineString(h, depth)
	case curvegeom.TypeMultiPolygon:
		return d.multiPolygon(h, depth)
	case curvegeom.TypeGeometryCollection:
		return d.geometryCollection(h, depth)
	case curvegeom.TypeCompoundCurve:
		return d.compoundCurve(h, depth)
	case curvegeom.TypeCurvePolygon:
		return d.curvePolygon(h, depth)
	case curvegeom.TypeMultiCurve:
		return d.multiCurve(h, depth)
	case curvegeom.TypeMultiSurface:
		return d.multiSurface(h, depth)
	default:
		return nil, ErrUnknownType{Code: uint32(h.typ)}
	}
}

// readPoints reads a count-prefixed coordinate sequence.
func (d *decoder) readPoints(h header) ([]float64, error) {
	stride := h.layout.Stride()
	n, err := d.readCount(h.order, 8*stride)
	if err != nil {
		return nil, err
	}
	return d.readFloats(h.order, n*stride)
}

func (d *decoder) polygon(h header) (geom.T, error) {
	numRings, err := d.readCount(h.order, 4)
	if err != nil {
		return nil, err
	}
	poly := geom.NewPolygon(h.layout)
	for i := 0; i < numRings; i++ {
		coords, err := d.readPoints(h)
		if err != nil {
			return nil, err
		}
		if err := poly.Push(geom.NewLinearRingFlat(h.layout, coords)); err != nil {
			return nil, err
		}
	}
	return poly, nil
}

func (d *decoder) multiPoint(h header, depth int) (geom.T, error) {
	n, err := d.readCount(h.order, 5)
	if err != nil {
		return nil, err
	}
	mp := geom.NewMultiPoint(h.layout)
	for i := 0; i < n; i++ {
		child, err := d.geometry(depth + 1)
		if err != nil {
			return nil, err
		}
		pt, ok := child.(*geom.Point)
		if !ok {
			return nil, ErrInvalidChild{Parent: h.typ, Child: curvegeom.TypeOf(child)}
		}
		if err := mp.Push(pt); err != nil {
			return nil, err
		}
	}
	return mp, nil
}

func (d *decoder) multiLineString(h header, depth int) (geom.T, error) {
	n, err := d.readCount(h.order, 5)
	if err != nil {
		return nil, err
	}
	ml := geom.NewMultiLineString(h.layout)
	for i := 0; i < n; i++ {
		child, err := d.geometry(depth + 1)
		if err != nil {
			return nil, err
		}
		ls, ok := child.(*geom.LineString)
		if !ok {
			return nil, ErrInvalidChild{Parent: h.typ, Child: curvegeom.TypeOf(child)}
		}
		if err := ml.Push(ls); err != nil {
			return nil, err
		}
	}
	return ml, nil
}

func (d *decoder) multiPolygon(h header, depth int) (geom.T, error) {
	n, err := d.readCount(h.order, 5)
	if err != nil {
		return nil, err
	}
	mp := geom.NewMultiPolygon(h.layout)
	for i := 0; i < n; i++ {
		child, err := d.geometry(depth + 1)
		if err != nil {
			return nil, err
		}
		poly, ok := child.(*geom.Polygon)
		if !ok {
			return nil, ErrInvalidChild{Parent: h.typ, Child: curvegeom.TypeOf(child)}
		}
		if err := mp.Push(poly); err != nil {
			return nil, err
		}
	}
	return mp, nil
}

func (d *decoder) geometryCollection(h header, depth int) (geom.T, error) {
	n, err := d.readCount(h.order, 5)
	if err != nil {
		return nil, err
	}
	gc := geom.NewGeometryCollection()
	for i := 0; i < n; i++ {
		child, err := d.geometry(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := gc.Push(child); err != nil {
			return nil, err
		}
	}
	return gc, nil
}

func (d *decoder) compoundCurve(h header, depth int) (geom.T, error) {
	n, err := d.readCount(h.order, 5)
	if err != nil {
		return nil, err
	}
	cc := curvegeom.NewCompoundCurve(h.layout)
	for i := 0; i < n; i++ {
		child, err := d.geometry(depth + 1)
		if err != nil {
			return nil, err
		}
		switch child.(type) {
		case *geom.LineString, *curvegeom.CircularString:
		default:
			return nil, ErrInvalidChild{Parent: h.typ, Child: curvegeom.TypeOf(child)}
		}
		if err := cc.Push(child); err != nil {
			return nil, err
		}
	}
	return cc, nil
}

func (d *decoder) curvePolygon(h header, depth int) (geom.T, error) {
	n, err := d.readCount(h.order, 5)
	if err != nil {
		return nil, err
	}
	cp := curvegeom.NewCurvePolygon(h.layout)
	for i := 0; i < n; i++ {
		child, err := d.geometry(depth + 1)
		if err != nil {
			return nil, err
		}
		switch child.(type) {
		case *geom.LineString, *curvegeom.CircularString, *curvegeom.CompoundCurve:
		default:
			return nil, ErrInvalidChild{Parent: h.typ, Child: curvegeom.TypeOf(child)}
		}
		if err := cp.Push(child); err != nil {
			return nil, err
		}
	}
	return cp, nil
}

func (d *decoder) multiCurve(h header, depth int) (geom.T, error) {
	n, err := d.readCount(h.order, 5)
	if err != nil {
		return nil, err
	}
	mc := curvegeom.NewMultiCurve(h.layout)
	for i := 0; i < n; i++ {
		child, err := d.geometry(depth + 1)
		if err != nil {
			return nil, err
		}
		switch child.(type) {
		case *geom.LineString, *curvegeom.CircularString, *curvegeom.CompoundCurve:
		default:
			return nil, ErrInvalidChild{Parent: h.typ, Child: curvegeom.TypeOf(child)}
		}
		if err := mc.Push(child); err != nil {
			return nil, err
		}
	}
	return mc, nil
}

func (d *decoder) multiSurface(h header, depth int) (geom.T, error) {
	n, err := d.readCount(h.order, 5)
	if err != nil {
		return nil, err
	}
	ms := curvegeom.NewMultiSurface(h.layout)
	for i := 0; i < n; i++ {
		child, err := d.geometry(depth + 1)
		if err != nil {
			return nil, err
		}
		switch child.(type) {
		case *geom.Polygon, *curvegeom.CurvePolygon:
		default:
			return nil, ErrInvalidChild{Parent: h.typ, Child: curvegeom.TypeOf(child)}
		}
		if err := ms.Push(child); err != nil {
			return nil, err
		}
	}
	return ms, nil
}

func allNaN(coords []float64) bool {
	for _, c := range coords {
		if !math.IsNaN(c) {
			return false
		}
	}
	return len(coords) > 0
}

func setSRID(g geom.T, srid int) {
	switch v := g.(type) {
	case *geom.Point:
		v.SetSRID(srid)
	case *geom.LineString:
		v.SetSRID(srid)
	case *geom.LinearRing:
		v.SetSRID(srid)
	case *geom.Polygon:
		v.SetSRID(srid)
	case *geom.MultiPoint:
		v.SetSRID(srid)
	case *geom.MultiLineString:
		v.SetSRID(srid)
	case *geom.MultiPolygon:
		v.SetSRID(srid)
	case *geom.GeometryCollection:
		v.SetSRID(srid)
	case *curvegeom.CircularString:
		v.SetSRID(srid)
	case *curvegeom.CompoundCurve:
		v.SetSRID(srid)
	case *curvegeom.CurvePolygon:
		v.SetSRID(srid)
	case *curvegeom.MultiCurve:
		v.SetSRID(srid)
	case *curvegeom.MultiSurface:
		v.SetSRID(srid)
	}
}
