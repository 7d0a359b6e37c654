package curvegeom

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/twpayne/go-geom"
)

// stubGeometry is a geom.T implementation from outside the model.
type stubGeometry struct{}

func (stubGeometry) Layout() geom.Layout  { return geom.XY }
func (stubGeometry) Stride() int          { return 2 }
func (stubGeometry) Bounds() *geom.Bounds { return geom.NewBounds(geom.XY) }
func (stubGeometry) FlatCoords() []float64 {
	return []float64{0, 0}
}
func (stubGeometry) Ends() []int    { return nil }
func (stubGeometry) Endss() [][]int { return nil }
func (stubGeometry) SRID() int      { return 0 }
func (stubGeometry) Empty() bool    { return false }

// stubCurveGeometry is a foreign implementation whose type name marks it as
// curved.
type stubCurveGeometry struct {
	stubGeometry
}

// semicircle is the upper half of the unit circle centred on (1, 0).
func semicircle() *CircularString {
	return NewCircularStringFlat(geom.XY, []float64{0, 0, 1, 1, 2, 0})
}

// fullCircle is the unit circle centred on (1, 0), closed at the origin.
func fullCircle() *CircularString {
	return NewCircularStringFlat(geom.XY, []float64{0, 0, 2, 0, 0, 0})
}

func TestTypeOf(t *testing.T) {
	for _, test := range []struct {
		g    geom.T
		want Type
	}{
		{geom.NewPointFlat(geom.XY, []float64{1, 2}), TypePoint},
		{geom.NewLineString(geom.XY), TypeLineString},
		{geom.NewLinearRing(geom.XY), TypeLineString},
		{geom.NewPolygon(geom.XY), TypePolygon},
		{geom.NewMultiPoint(geom.XY), TypeMultiPoint},
		{geom.NewMultiLineString(geom.XY), TypeMultiLineString},
		{geom.NewMultiPolygon(geom.XY), TypeMultiPolygon},
		{geom.NewGeometryCollection(), TypeGeometryCollection},
		{NewCircularString(geom.XY), TypeCircularString},
		{NewCompoundCurve(geom.XY), TypeCompoundCurve},
		{NewCurvePolygon(geom.XY), TypeCurvePolygon},
		{NewMultiCurve(geom.XY), TypeMultiCurve},
		{NewMultiSurface(geom.XY), TypeMultiSurface},
		{stubGeometry{}, TypeUnknown},
	} {
		if got := TypeOf(test.g); got != test.want {
			t.Errorf("TypeOf(%T) = %s, want %s", test.g, got, test.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got, want := TypeCircularString.String(), "CircularString"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := Type(99).String(), "Type(99)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIsCurveBearing(t *testing.T) {
	for _, test := range []struct {
		name string
		g    geom.T
		want bool
	}{
		{"nil", nil, false},
		{"LineString", geom.NewLineString(geom.XY), false},
		{"Polygon", geom.NewPolygon(geom.XY), false},
		{"CircularString", NewCircularString(geom.XY), true},
		{"CompoundCurve", NewCompoundCurve(geom.XY), true},
		{"CurvePolygon", NewCurvePolygon(geom.XY), true},
		{"MultiCurve", NewMultiCurve(geom.XY), true},
		{"MultiSurface", NewMultiSurface(geom.XY), true},
		{"foreign non-curve", stubGeometry{}, false},
		{"foreign curve-named", stubCurveGeometry{}, true},
	} {
		if got := IsCurveBearing(test.g); got != test.want {
			t.Errorf("%s: IsCurveBearing = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestArcFromPoints(t *testing.T) {
	a := arcFromPoints(0, 0, 1, 1, 2, 0)
	if a.linear {
		t.Fatal("semicircle reported as linear")
	}
	if math.Abs(a.cx-1) > 1e-12 || math.Abs(a.cy) > 1e-12 {
		t.Errorf("centre = (%v, %v), want (1, 0)", a.cx, a.cy)
	}
	if math.Abs(a.r-1) > 1e-12 {
		t.Errorf("radius = %v, want 1", a.r)
	}
	if math.Abs(a.sweep+math.Pi) > 1e-12 {
		t.Errorf("sweep = %v, want %v", a.sweep, -math.Pi)
	}
	if math.Abs(a.mid-0.5) > 1e-12 {
		t.Errorf("mid = %v, want 0.5", a.mid)
	}
}

func TestArcFromPointsCounterClockwise(t *testing.T) {
	a := arcFromPoints(0, 0, 1, -1, 2, 0)
	if a.linear {
		t.Fatal("arc reported as linear")
	}
	if a.sweep <= 0 {
		t.Errorf("sweep = %v, want positive", a.sweep)
	}
	if math.Abs(a.mid-0.5) > 1e-12 {
		t.Errorf("mid = %v, want 0.5", a.mid)
	}
}

func TestArcFromPointsCollinear(t *testing.T) {
	for _, coords := range [][6]float64{
		{0, 0, 1, 1, 2, 2},
		{0, 0, 0, 0, 1, 1},
		{5, 5, 5, 5, 5, 5},
	} {
		a := arcFromPoints(coords[0], coords[1], coords[2], coords[3], coords[4], coords[5])
		if !a.linear {
			t.Errorf("arcFromPoints(%v) not reported as linear", coords)
		}
	}
}

func TestArcFromPointsFullCircle(t *testing.T) {
	a := arcFromPoints(0, 0, 2, 0, 0, 0)
	if a.linear {
		t.Fatal("full circle reported as linear")
	}
	if math.Abs(a.cx-1) > 1e-12 || math.Abs(a.cy) > 1e-12 || math.Abs(a.r-1) > 1e-12 {
		t.Errorf("circle = (%v, %v) r=%v, want (1, 0) r=1", a.cx, a.cy, a.r)
	}
	if a.sweep != 2*math.Pi {
		t.Errorf("sweep = %v, want %v", a.sweep, 2*math.Pi)
	}
}

func TestArcSegments(t *testing.T) {
	for _, test := range []struct {
		sweep, step float64
		want        int
	}{
		{math.Pi, math.Pi / 2, 2},
		{2 * math.Pi, math.Pi / 2, 4},
		{math.Pi, math.Pi / 4, 4},
		{math.Pi, 1, 4},    // ceil(pi) = 4 rounded even
		{0.001, 10, 2},     // never below two chords
		{-math.Pi, 1, 4},   // sign does not matter
		{math.Pi, 0, 3142}, // zero step falls back to the minimum angle
	} {
		if got := arcSegments(test.sweep, test.step); got != test.want {
			t.Errorf("arcSegments(%v, %v) = %d, want %d", test.sweep, test.step, got, test.want)
		}
		if got := arcSegments(test.sweep, test.step); got%2 != 0 {
			t.Errorf("arcSegments(%v, %v) = %d, want even", test.sweep, test.step, got)
		}
	}
}

func TestSegmentizeCircularString(t *testing.T) {
	tolerance := 0.001
	out, ok := Segmentize(semicircle(), tolerance).(*CircularString)
	if !ok {
		t.Fatal("segmentized circular string changed type")
	}
	n := out.NumCoords()
	if n < 5 {
		t.Fatalf("got %d points, want at least 5", n)
	}
	if n%2 != 1 {
		t.Errorf("got %d points, want an odd count", n)
	}
	if diff := cmp.Diff([]float64{0, 0}, []float64(out.Coord(0))); diff != "" {
		t.Errorf("first point mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2, 0}, []float64(out.Coord(n-1))); diff != "" {
		t.Errorf("last point mismatch (-want +got):\n%s", diff)
	}
	for i := 0; i < n; i++ {
		c := out.Coord(i)
		if d := math.Abs(math.Hypot(c[0]-1, c[1]) - 1); d > 1e-9 {
			t.Errorf("point %d = %v is off the circle by %v", i, c, d)
		}
	}
	for i := 0; i+1 < n; i++ {
		c0, c1 := out.Coord(i), out.Coord(i+1)
		mx, my := (c0[0]+c1[0])/2, (c0[1]+c1[1])/2
		if dev := 1 - math.Hypot(mx-1, my); dev > tolerance+1e-9 {
			t.Errorf("chord %d deviates by %v, beyond tolerance %v", i, dev, tolerance)
		}
	}
}

func TestSegmentizeCoarseTolerance(t *testing.T) {
	// A tolerance at or beyond the radius still yields two chords through
	// the arc's middle control point.
	out := Segmentize(semicircle(), 5).(*CircularString)
	if got := out.NumCoords(); got != 3 {
		t.Fatalf("got %d points, want 3", got)
	}
	if diff := cmp.Diff([]float64{1, 1}, []float64(out.Coord(1))); diff != "" {
		t.Errorf("apex mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentizeFullCircle(t *testing.T) {
	out := Segmentize(fullCircle(), 5).(*CircularString)
	n := out.NumCoords()
	if n != 5 {
		t.Fatalf("got %d points, want 5", n)
	}
	if diff := cmp.Diff(out.Coord(0), out.Coord(n-1)); diff != "" {
		t.Errorf("circle not closed (-first +last):\n%s", diff)
	}
	for i := 0; i < n; i++ {
		c := out.Coord(i)
		if d := math.Abs(math.Hypot(c[0]-1, c[1]) - 1); d > 1e-9 {
			t.Errorf("point %d = %v is off the circle by %v", i, c, d)
		}
	}
}

func TestSegmentizeToleranceMonotonic(t *testing.T) {
	fine := Segmentize(semicircle(), 0.0001).(*CircularString).NumCoords()
	coarse := Segmentize(semicircle(), 0.5).(*CircularString).NumCoords()
	if fine <= coarse {
		t.Errorf("fine tolerance gave %d points, coarse gave %d", fine, coarse)
	}
}

func TestSegmentizeZInterpolation(t *testing.T) {
	cs := NewCircularStringFlat(geom.XYZ, []float64{0, 0, 0, 1, 1, 5, 2, 0, 10})
	out := Segmentize(cs, 5).(*CircularString)
	if got := out.NumCoords(); got != 3 {
		t.Fatalf("got %d points, want 3", got)
	}
	if got := out.Coord(1)[2]; got != 5 {
		t.Errorf("mid z = %v, want 5", got)
	}
	fine := Segmentize(cs, 0.001).(*CircularString)
	prev := math.Inf(-1)
	for i := 0; i < fine.NumCoords(); i++ {
		z := fine.Coord(i)[2]
		if z < prev {
			t.Fatalf("z not monotonic at point %d: %v after %v", i, z, prev)
		}
		prev = z
	}
	if got := fine.Coord(fine.NumCoords() - 1)[2]; got != 10 {
		t.Errorf("final z = %v, want 10", got)
	}
}

func TestSegmentizeCollinearTriple(t *testing.T) {
	cs := NewCircularStringFlat(geom.XY, []float64{0, 0, 1, 1, 2, 2})
	out := Segmentize(cs, 0.001).(*CircularString)
	if diff := cmp.Diff(cs.FlatCoords(), out.FlatCoords()); diff != "" {
		t.Errorf("straight triple changed (-want +got):\n%s", diff)
	}
}

func TestSegmentizeLinearUnchanged(t *testing.T) {
	ls := geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1})
	if out := Segmentize(ls, 0.001); out != geom.T(ls) {
		t.Error("linear geometry was rebuilt")
	}
	if out := Segmentize(nil, 0.001); out != nil {
		t.Error("nil input produced a geometry")
	}
}

func TestSegmentizeContainers(t *testing.T) {
	cc := NewCompoundCurve(geom.XY).
		MustPush(geom.NewLineStringFlat(geom.XY, []float64{-1, 0, 0, 0})).
		MustPush(semicircle())
	cc.SetSRID(27700)
	out, ok := Segmentize(cc, 0.001).(*CompoundCurve)
	if !ok {
		t.Fatal("segmentized compound curve changed type")
	}
	if got, want := out.SRID(), 27700; got != want {
		t.Errorf("srid = %d, want %d", got, want)
	}
	if got := out.NumSegments(); got != 2 {
		t.Fatalf("got %d segments, want 2", got)
	}
	if _, ok := out.Segment(0).(*geom.LineString); !ok {
		t.Errorf("segment 0 is %T, want *geom.LineString", out.Segment(0))
	}
	seg1, ok := out.Segment(1).(*CircularString)
	if !ok {
		t.Fatalf("segment 1 is %T, want *CircularString", out.Segment(1))
	}
	if seg1.NumCoords() <= 3 {
		t.Errorf("circular segment not densified: %d points", seg1.NumCoords())
	}

	cp := NewCurvePolygon(geom.XY).MustPush(fullCircle())
	pout := Segmentize(cp, 0.1).(*CurvePolygon)
	if ring, ok := pout.Ring(0).(*CircularString); !ok || ring.NumCoords() <= 3 {
		t.Errorf("curve polygon ring not densified: %T", pout.Ring(0))
	}

	mc := NewMultiCurve(geom.XY).MustPush(semicircle())
	mout := Segmentize(mc, 0.1).(*MultiCurve)
	if curve, ok := mout.Curve(0).(*CircularString); !ok || curve.NumCoords() <= 3 {
		t.Errorf("multi curve member not densified: %T", mout.Curve(0))
	}
}

func TestFlattenNil(t *testing.T) {
	out, err := Flatten(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Errorf("got %v, want nil", out)
	}
}

func TestFlattenLinearPassthrough(t *testing.T) {
	for _, g := range []geom.T{
		geom.NewPointFlat(geom.XY, []float64{1, 2}),
		geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}),
		geom.NewPolygon(geom.XY),
		geom.NewMultiPolygon(geom.XY),
	} {
		out, err := Flatten(g)
		if err != nil {
			t.Fatalf("%T: unexpected error: %v", g, err)
		}
		if out != g {
			t.Errorf("%T: linear geometry was rebuilt", g)
		}
	}
}

func TestFlattenCircularString(t *testing.T) {
	cs := semicircle().SetSRID(4326)
	out, err := Flatten(cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ls, ok := out.(*geom.LineString)
	if !ok {
		t.Fatalf("got %T, want *geom.LineString", out)
	}
	if got, want := ls.SRID(), 4326; got != want {
		t.Errorf("srid = %d, want %d", got, want)
	}
	n := ls.NumCoords()
	if n < 3 {
		t.Fatalf("got %d points, want at least 3", n)
	}
	if diff := cmp.Diff([]float64{0, 0}, []float64(ls.Coord(0))); diff != "" {
		t.Errorf("first point mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2, 0}, []float64(ls.Coord(n-1))); diff != "" {
		t.Errorf("last point mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenToleranceControlsDensity(t *testing.T) {
	fine, err := FlattenTolerance(semicircle(), 0.0001)
	if err != nil {
		t.Fatal(err)
	}
	coarse, err := FlattenTolerance(semicircle(), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	nf := fine.(*geom.LineString).NumCoords()
	nc := coarse.(*geom.LineString).NumCoords()
	if nf <= nc {
		t.Errorf("fine tolerance gave %d points, coarse gave %d", nf, nc)
	}
}

func TestFlattenCompoundCurve(t *testing.T) {
	cc := NewCompoundCurve(geom.XY).
		MustPush(geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 0})).
		MustPush(NewCircularStringFlat(geom.XY, []float64{1, 0, 2, 1, 3, 0}))
	out, err := FlattenTolerance(cc, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ls, ok := out.(*geom.LineString)
	if !ok {
		t.Fatalf("got %T, want *geom.LineString", out)
	}
	// 2 points from the straight segment, 3 from the coarse arc, 1 shared.
	if got, want := ls.NumCoords(), 4; got != want {
		t.Errorf("got %d points, want %d", got, want)
	}
	if diff := cmp.Diff([]float64{0, 0, 1, 0, 2, 1, 3, 0}, ls.FlatCoords()); diff != "" {
		t.Errorf("coordinate mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenCompoundCurveDisjointSegments(t *testing.T) {
	// Segments that do not share an endpoint keep both joint points.
	cc := NewCompoundCurve(geom.XY).
		MustPush(geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 0})).
		MustPush(geom.NewLineStringFlat(geom.XY, []float64{5, 5, 6, 5}))
	out, err := Flatten(cc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.(*geom.LineString).NumCoords(), 4; got != want {
		t.Errorf("got %d points, want %d", got, want)
	}
}

func TestFlattenCurvePolygon(t *testing.T) {
	cp := NewCurvePolygon(geom.XY).MustPush(semicircle())
	cp.SetSRID(4326)
	out, err := FlattenTolerance(cp, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	poly, ok := out.(*geom.Polygon)
	if !ok {
		t.Fatalf("got %T, want *geom.Polygon", out)
	}
	if got, want := poly.SRID(), 4326; got != want {
		t.Errorf("srid = %d, want %d", got, want)
	}
	if got := poly.NumLinearRings(); got != 1 {
		t.Fatalf("got %d rings, want 1", got)
	}
	ring := poly.LinearRing(0)
	n := ring.NumCoords()
	if n < 4 {
		t.Fatalf("got %d ring points, want at least 4", n)
	}
	if diff := cmp.Diff(ring.Coord(0), ring.Coord(n-1)); diff != "" {
		t.Errorf("ring not closed (-first +last):\n%s", diff)
	}
}

func TestFlattenMultiCurve(t *testing.T) {
	mc := NewMultiCurve(geom.XY).
		MustPush(geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1})).
		MustPush(semicircle()).
		MustPush(NewCompoundCurve(geom.XY).MustPush(semicircle()))
	out, err := FlattenTolerance(mc, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mls, ok := out.(*geom.MultiLineString)
	if !ok {
		t.Fatalf("got %T, want *geom.MultiLineString", out)
	}
	if got, want := mls.NumLineStrings(), 3; got != want {
		t.Fatalf("got %d line strings, want %d", got, want)
	}
	if got := mls.LineString(1).NumCoords(); got <= 3 {
		t.Errorf("circular member not densified: %d points", got)
	}
}

func TestFlattenMultiSurface(t *testing.T) {
	poly := geom.NewPolygon(geom.XY)
	if err := poly.Push(geom.NewLinearRingFlat(geom.XY, []float64{0, 0, 1, 0, 1, 1, 0, 0})); err != nil {
		t.Fatal(err)
	}
	ms := NewMultiSurface(geom.XY).
		MustPush(poly).
		MustPush(NewCurvePolygon(geom.XY).MustPush(fullCircle()))
	out, err := FlattenTolerance(ms, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mp, ok := out.(*geom.MultiPolygon)
	if !ok {
		t.Fatalf("got %T, want *geom.MultiPolygon", out)
	}
	if got, want := mp.NumPolygons(), 2; got != want {
		t.Fatalf("got %d polygons, want %d", got, want)
	}
	if got := mp.Polygon(1).LinearRing(0).NumCoords(); got < 5 {
		t.Errorf("curved surface ring has %d points, want at least 5", got)
	}
}

func TestFlattenGeometryCollection(t *testing.T) {
	gc := geom.NewGeometryCollection()
	gc.SetSRID(4326)
	if err := gc.Push(geom.NewPointFlat(geom.XY, []float64{1, 2})); err != nil {
		t.Fatal(err)
	}
	if err := gc.Push(semicircle()); err != nil {
		t.Fatal(err)
	}
	out, err := FlattenTolerance(gc, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oc, ok := out.(*geom.GeometryCollection)
	if !ok {
		t.Fatalf("got %T, want *geom.GeometryCollection", out)
	}
	if got, want := oc.NumGeoms(), 2; got != want {
		t.Fatalf("got %d members, want %d", got, want)
	}
	if got, want := oc.SRID(), 4326; got != want {
		t.Errorf("srid = %d, want %d", got, want)
	}
	if _, ok := oc.Geom(0).(*geom.Point); !ok {
		t.Errorf("member 0 is %T, want *geom.Point", oc.Geom(0))
	}
	if _, ok := oc.Geom(1).(*geom.LineString); !ok {
		t.Errorf("member 1 is %T, want *geom.LineString", oc.Geom(1))
	}
}

func TestFlattenForeignGeometry(t *testing.T) {
	_, err := Flatten(stubCurveGeometry{})
	var unsupported ErrUnsupportedType
	if !errors.As(err, &unsupported) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}

	cc := NewCompoundCurve(geom.XY)
	if err := cc.Push(stubCurveGeometry{}); err != nil {
		t.Fatalf("foreign segment rejected: %v", err)
	}
	if _, err := Flatten(cc); !errors.As(err, &unsupported) {
		t.Errorf("got %v, want ErrUnsupportedType", err)
	}
}

func TestFlattenNestingLimit(t *testing.T) {
	var g geom.T = semicircle()
	for i := 0; i < maxNesting+2; i++ {
		gc := geom.NewGeometryCollection()
		if err := gc.Push(g); err != nil {
			t.Fatal(err)
		}
		g = gc
	}
	if _, err := Flatten(g); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("got %v, want ErrNestingTooDeep", err)
	}
}

func TestPushValidation(t *testing.T) {
	cc := NewCompoundCurve(geom.XY)
	if err := cc.Push(geom.NewPolygon(geom.XY)); err == nil {
		t.Error("compound curve accepted a polygon segment")
	} else if got, want := err.Error(), fmt.Sprintf("curvegeom: unsupported type %T", geom.NewPolygon(geom.XY)); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if err := cc.Push(geom.NewLineString(geom.XYZ)); err == nil {
		t.Error("compound curve accepted a mismatched layout")
	}

	cp := NewCurvePolygon(geom.XY)
	if err := cp.Push(geom.NewLinearRing(geom.XY)); err != nil {
		t.Errorf("curve polygon rejected a linear ring: %v", err)
	}

	mc := NewMultiCurve(geom.XY)
	if err := mc.Push(NewCurvePolygon(geom.XY)); err == nil {
		t.Error("multi curve accepted a surface member")
	}

	ms := NewMultiSurface(geom.XY)
	if err := ms.Push(geom.NewLineString(geom.XY)); err == nil {
		t.Error("multi surface accepted a line member")
	}
	if err := ms.Push(NewCurvePolygon(geom.XY)); err != nil {
		t.Errorf("multi surface rejected a curve polygon: %v", err)
	}
}

func TestCircularStringArcs(t *testing.T) {
	cs := NewCircularStringFlat(geom.XY, []float64{0, 0, 1, 1, 2, 0, 3, -1, 4, 0})
	if got, want := cs.NumArcs(), 2; got != want {
		t.Fatalf("got %d arcs, want %d", got, want)
	}
	p0, p1, p2 := cs.Arc(1)
	if diff := cmp.Diff(geom.Coord{2, 0}, p0); diff != "" {
		t.Errorf("arc start mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(geom.Coord{3, -1}, p1); diff != "" {
		t.Errorf("arc middle mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(geom.Coord{4, 0}, p2); diff != "" {
		t.Errorf("arc end mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cs := semicircle()
	clone := cs.Clone()
	clone.flatCoords[0] = 99
	if cs.flatCoords[0] == 99 {
		t.Error("clone shares coordinates with the original")
	}

	cp := NewCurvePolygon(geom.XY).MustPush(semicircle())
	pclone := cp.Clone()
	pclone.rings[0].(*CircularString).flatCoords[0] = 99
	if cp.rings[0].(*CircularString).flatCoords[0] == 99 {
		t.Error("clone shares ring storage with the original")
	}
}
