package analyser

import (
	"fmt"
	"strings"

	"github.com/Mzandre2/TrueCruve-Toolbox/curvegeom"
	"github.com/Mzandre2/TrueCruve-Toolbox/curvewkb"
	"github.com/Mzandre2/TrueCruve-Toolbox/linearizer"
	"github.com/Mzandre2/TrueCruve-Toolbox/models"
	"github.com/ONSdigital/go-ns/log"
	"github.com/twpayne/go-geom"
)

// defaultTolerance is applied to requests that do not supply a tolerance
var defaultTolerance = 3.0

// UseDefaultTolerance overrides the tolerance applied to requests that do not supply one
func UseDefaultTolerance(tolerance float64) {
	defaultTolerance = tolerance
}

// AnalyseFeatures inspects each feature in the request without converting it, reporting its geometry type,
// curve content and the vertex count a conversion at the requested tolerance would produce
func AnalyseFeatures(request *models.AnalyseRequest) (*models.AnalyseResponse, error) {

	tolerance := defaultTolerance
	if request.Tolerance != nil {
		tolerance = *request.Tolerance
	}

	summaries := []*models.FeatureSummary{}
	failed := []string{}
	curved := 0

	for _, feature := range request.Features {
		g, err := decodeFeature(feature)
		if err != nil {
			log.Error(err, log.Data{"_message": "Failed to decode feature WKB", "feature_id": feature.ID})
			failed = append(failed, fmt.Sprint(feature.ID))
			continue
		}
		summary := summariseFeature(feature.ID, g, tolerance)
		if summary.Curved {
			curved++
		}
		summaries = append(summaries, summary)
	}

	if len(failed) == len(request.Features) {
		return nil, fmt.Errorf("No features could be decoded as WKB - could not analyse the request")
	}

	messages := []*models.Message{}
	if len(failed) > 0 {
		messages = append(messages, &models.Message{Level: models.LevelWarning, Text: fmt.Sprintf("%d features could not be decoded as WKB and were skipped. Feature IDs: [%v]", len(failed), strings.Join(failed, ", "))})
	}
	messages = append(messages, &models.Message{Level: models.LevelInfo, Text: fmt.Sprintf("Successfully analysed %d of %d features", len(summaries), len(request.Features))})

	return &models.AnalyseResponse{
		Total:    len(request.Features),
		Curved:   curved,
		Features: summaries,
		Messages: messages,
	}, nil
}

// decodeFeature decodes the base64 WKB payload of a feature into a geometry
func decodeFeature(feature *models.Feature) (geom.T, error) {
	data, err := feature.DecodeWKB()
	if err != nil {
		return nil, err
	}
	return curvewkb.Unmarshal(data)
}

// summariseFeature builds the per-feature report. The estimated vertex count comes from running the
// conversion itself, so it matches what a linearize request at the same tolerance would return.
func summariseFeature(id int64, g geom.T, tolerance float64) *models.FeatureSummary {
	counts := map[string]int{}
	countCurves(g, counts)

	summary := &models.FeatureSummary{
		ID:           id,
		GeometryType: curvegeom.TypeNameOf(g),
		Curved:       len(counts) > 0 || curvegeom.IsCurveBearing(g),
		VertexCount:  vertexCount(g),
		SRID:         g.SRID(),
	}
	if len(counts) > 0 {
		summary.CurveCounts = counts
	}

	summary.EstimatedVertexCount = summary.VertexCount
	if summary.Curved {
		if converted, err := linearizer.Linearize(g, tolerance); err == nil {
			summary.EstimatedVertexCount = vertexCount(converted)
		}
	}
	return summary
}

// countCurves walks g, counting every curve-bearing node by type name
func countCurves(g geom.T, counts map[string]int) {
	if g == nil {
		return
	}
	if curvegeom.IsCurveBearing(g) {
		counts[curvegeom.TypeNameOf(g)]++
	}
	for _, child := range children(g) {
		countCurves(child, counts)
	}
}

// children returns the nested geometries of container kinds
func children(g geom.T) []geom.T {
	switch v := g.(type) {
	case *geom.GeometryCollection:
		return v.Geoms()
	case *curvegeom.CompoundCurve:
		return v.Segments()
	case *curvegeom.CurvePolygon:
		return v.Rings()
	case *curvegeom.MultiCurve:
		return v.Curves()
	case *curvegeom.MultiSurface:
		return v.Surfaces()
	default:
		return nil
	}
}

// vertexCount returns the total number of vertices in g, walking into containers
func vertexCount(g geom.T) int {
	if g == nil {
		return 0
	}
	switch g.(type) {
	case *geom.GeometryCollection, *curvegeom.CompoundCurve, *curvegeom.CurvePolygon, *curvegeom.MultiCurve, *curvegeom.MultiSurface:
		total := 0
		for _, child := range children(g) {
			total += vertexCount(child)
		}
		return total
	}
	if stride := g.Stride(); stride > 0 {
		return len(g.FlatCoords()) / stride
	}
	return 0
}
