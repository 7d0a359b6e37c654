package models

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ONSdigital/go-ns/log"
	"github.com/json-iterator/go"
	"github.com/paulmach/go.geojson"
)

// A list of errors returned from package
var (
	ErrorReadingBody         = errors.New("Failed to read message body")
	ErrorNoData              = errors.New("Bad request - Missing data in body")
	ErrorInvalidTolerance    = errors.New("Bad request - Tolerance must be a non-negative number")
	ErrorInvalidOutputFormat = errors.New("Bad request - Unknown output format")
)

// possible values for the OutputFormat of a LinearizeRequest. WKB is the default.
var (
	OutputFormatWKB     = "wkb"
	OutputFormatGeoJSON = "geojson"
)

// possible levels for response Messages
var (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Feature is a single identified geometry, WKB encoded and carried as base64
type Feature struct {
	ID  int64  `json:"id"`
	WKB string `json:"wkb"` // base64 encoded WKB, ISO or extended, either byte order
}

// DecodeWKB returns the raw WKB bytes of the feature
func (f *Feature) DecodeWKB() ([]byte, error) {
	return base64.StdEncoding.DecodeString(f.WKB)
}

// LinearizeRequest represents a structure for a linearize job
type LinearizeRequest struct {
	Tolerance    *float64   `json:"tolerance,omitempty"`     // maximum chord deviation in coordinate units. The server default applies when omitted
	OutputFormat string     `json:"output_format,omitempty"` // wkb (the default) or geojson
	Features     []*Feature `json:"features"`
}

// AnalyseRequest represents the structure of a request to analyse features without converting them
type AnalyseRequest struct {
	Tolerance *float64   `json:"tolerance,omitempty"` // used to estimate post-conversion vertex counts
	Features  []*Feature `json:"features"`
}

// ConvertedFeature is a single feature of a linearize response, in whichever output format the request asked for
type ConvertedFeature struct {
	ID      int64            `json:"id"`
	WKB     string           `json:"wkb,omitempty"`
	GeoJSON *geojson.Feature `json:"geojson,omitempty"`
}

// LinearizeResponse represents the structure of a linearize response
type LinearizeResponse struct {
	Total     int                 `json:"total_features"`
	Converted int                 `json:"converted_features"`
	Skipped   int                 `json:"skipped_features"`
	Features  []*ConvertedFeature `json:"features"`
	Messages  []*Message          `json:"messages,omitempty"`
}

// FeatureSummary describes a single analysed feature
type FeatureSummary struct {
	ID                   int64          `json:"id"`
	GeometryType         string         `json:"geometry_type"`
	Curved               bool           `json:"curved"`
	CurveCounts          map[string]int `json:"curve_counts,omitempty"` // curved type name to occurrence count
	VertexCount          int            `json:"vertex_count"`
	EstimatedVertexCount int            `json:"estimated_vertex_count"` // vertex count after conversion at the requested tolerance
	SRID                 int            `json:"srid,omitempty"`
}

// AnalyseResponse represents the structure of an analyse response
type AnalyseResponse struct {
	Total    int               `json:"total_features"`
	Curved   int               `json:"curved_features"`
	Features []*FeatureSummary `json:"features"`
	Messages []*Message        `json:"messages"`
}

// Message represents a message with a level type
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// CreateLinearizeRequest manages the creation of a LinearizeRequest from a reader
func CreateLinearizeRequest(reader io.Reader) (*LinearizeRequest, error) {

	bytes, err := io.ReadAll(reader)
	if err != nil {
		log.Error(err, log.Data{"request_body": string(bytes)})
		return nil, ErrorReadingBody
	}

	var request LinearizeRequest
	err = jsoniter.Unmarshal(bytes, &request)
	if err != nil {
		log.Error(err, log.Data{"request_body": string(bytes)})
		return nil, err
	}

	// This should be the last check before returning LinearizeRequest
	if len(bytes) == 2 {
		return &request, ErrorNoData
	}

	return &request, nil
}

// ValidateLinearizeRequest checks the content of the request structure
func (r *LinearizeRequest) ValidateLinearizeRequest() error {

	if err := validateFeatures(r.Features); err != nil {
		return err
	}
	if err := validateTolerance(r.Tolerance); err != nil {
		return err
	}

	switch r.OutputFormat {
	case "", OutputFormatWKB, OutputFormatGeoJSON:
	default:
		return ErrorInvalidOutputFormat
	}

	return nil
}

// CreateAnalyseRequest manages the creation of an AnalyseRequest from a reader
func CreateAnalyseRequest(reader io.Reader) (*AnalyseRequest, error) {
	bytes, err := io.ReadAll(reader)
	if err != nil {
		log.Error(err, log.Data{"request_body": string(bytes)})
		return nil, ErrorReadingBody
	}

	var request AnalyseRequest
	err = json.Unmarshal(bytes, &request)
	if err != nil {
		log.Error(err, log.Data{"request_body": string(bytes)})
		return nil, err
	}

	// This should be the last check before returning AnalyseRequest
	if len(bytes) == 2 {
		return &request, ErrorNoData
	}

	return &request, nil
}

// ValidateAnalyseRequest checks the content of the request structure
func (r *AnalyseRequest) ValidateAnalyseRequest() error {

	if err := validateFeatures(r.Features); err != nil {
		return err
	}
	return validateTolerance(r.Tolerance)
}

func validateFeatures(features []*Feature) error {

	var missingFields []string

	if len(features) == 0 {
		missingFields = append(missingFields, "features")
	}
	for i, f := range features {
		if f == nil || len(f.WKB) == 0 {
			missingFields = append(missingFields, fmt.Sprintf("features[%d].wkb", i))
		}
	}

	if missingFields != nil {
		return fmt.Errorf("Missing mandatory field(s): %v", missingFields)
	}

	return nil
}

func validateTolerance(tolerance *float64) error {
	if tolerance == nil {
		return nil
	}
	if math.IsNaN(*tolerance) || math.IsInf(*tolerance, 0) || *tolerance < 0 {
		return ErrorInvalidTolerance
	}
	return nil
}
