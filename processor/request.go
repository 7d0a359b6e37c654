package processor

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/Mzandre2/TrueCruve-Toolbox/curvewkb"
	"github.com/Mzandre2/TrueCruve-Toolbox/health"
	"github.com/Mzandre2/TrueCruve-Toolbox/models"
	"github.com/Mzandre2/TrueCruve-Toolbox/wkb2geojson"
	"github.com/ONSdigital/go-ns/log"
	"github.com/twpayne/go-geom"
)

// defaults applied to requests, overridden from main via the Use functions
var (
	defaultTolerance = 3.0
	defaultWorkers   = 1
)

// UseDefaultTolerance sets the tolerance applied to requests that do not supply one
func UseDefaultTolerance(tolerance float64) {
	defaultTolerance = tolerance
}

// UseWorkers sets the number of concurrent workers used to process requests
func UseWorkers(workers int) {
	defaultWorkers = workers
}

// ProcessRequest converts every feature in the request, returning per-feature
// output in the requested format along with counts and levelled messages
func ProcessRequest(ctx context.Context, request *models.LinearizeRequest) (*models.LinearizeResponse, error) {
	defer health.TrackTime(time.Now(), "processor.ProcessRequest")

	tolerance := defaultTolerance
	if request.Tolerance != nil {
		tolerance = *request.Tolerance
	}

	features := make([]Feature, 0, len(request.Features))
	for _, feature := range request.Features {
		data, err := feature.DecodeWKB()
		if err != nil {
			log.Error(err, log.Data{"_message": "Failed to decode base64 payload", "feature_id": feature.ID})
			// an undecodable payload flows through as empty WKB and is
			// reported with the other skips
			data = nil
		}
		features = append(features, Feature{ID: feature.ID, WKB: data})
	}

	report, err := Process(ctx, features, Options{Tolerance: tolerance, Workers: defaultWorkers})
	if err != nil {
		return nil, err
	}

	warnings := append([]string{}, report.Warnings...)
	converted := []*models.ConvertedFeature{}
	skipped := report.Skipped

	for _, result := range report.Results {
		feature, err := encodeResult(result, request.OutputFormat)
		if err != nil {
			log.Error(err, log.Data{"feature_id": result.ID})
			warnings = append(warnings, fmt.Sprintf("skipping feature %d - could not encode geometry", result.ID))
			skipped++
			continue
		}
		converted = append(converted, feature)
	}

	messages := []*models.Message{}
	for _, warning := range warnings {
		messages = append(messages, &models.Message{Level: models.LevelWarning, Text: warning})
	}
	messages = append(messages, &models.Message{Level: models.LevelInfo, Text: fmt.Sprintf("Successfully converted %d of %d features", len(converted), report.Total)})

	return &models.LinearizeResponse{
		Total:     report.Total,
		Converted: len(converted),
		Skipped:   skipped,
		Features:  converted,
		Messages:  messages,
	}, nil
}

// encodeResult renders a converted geometry in the requested output format
func encodeResult(result *Result, outputFormat string) (*models.ConvertedFeature, error) {
	if outputFormat == models.OutputFormatGeoJSON {
		f, err := wkb2geojson.ConvertFeature(result.ID, result.Geometry)
		if err != nil {
			return nil, err
		}
		return &models.ConvertedFeature{ID: result.ID, GeoJSON: f}, nil
	}

	data, err := marshalResult(result.Geometry)
	if err != nil {
		return nil, err
	}
	return &models.ConvertedFeature{ID: result.ID, WKB: base64.StdEncoding.EncodeToString(data)}, nil
}

// marshalResult encodes geometry as ISO WKB, or extended WKB when a SRID
// needs to be carried
func marshalResult(g geom.T) ([]byte, error) {
	if g != nil && g.SRID() != 0 {
		return curvewkb.Marshal(g, curvewkb.EncodeOptionEWKB())
	}
	return curvewkb.Marshal(g)
}
