package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Mzandre2/TrueCruve-Toolbox/curvewkb"
	"github.com/Mzandre2/TrueCruve-Toolbox/health"
	"github.com/Mzandre2/TrueCruve-Toolbox/processor"
	"github.com/Mzandre2/TrueCruve-Toolbox/wkb2geojson"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"
)

var (
	inputFile  string
	outputFile string
	tolerance  float64
	format     string
	numWorkers int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "linearize",
	Short: "Convert curved WKB geometries to linear equivalents",
	Long: `Reads hex encoded WKB geometries, one per line, converts every arc to
a chain of straight segments within the given tolerance, and writes the
result as hex WKB or GeoJSON. Blank lines and lines starting with # are
skipped.`,
	Run: runLinearize,
}

func init() {
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file of hex WKB lines (default stdin)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	rootCmd.Flags().Float64VarP(&tolerance, "tolerance", "t", 3.0, "Maximum chord deviation in coordinate units")
	rootCmd.Flags().StringVarP(&format, "format", "f", "wkb", "Output format: wkb or geojson")
	rootCmd.Flags().IntVarP(&numWorkers, "workers", "w", 1, "Number of worker goroutines")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runLinearize(cmd *cobra.Command, args []string) {
	if format != "wkb" && format != "geojson" {
		log.Fatalf("Unknown output format: %s", format)
	}

	features, err := readFeatures(inputFile)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	options := processor.Options{Tolerance: tolerance, Workers: numWorkers}
	if verbose {
		options.OnProgress = func(percent int) {
			fmt.Fprintf(os.Stderr, "progress: %d%%\n", percent)
		}
	}

	report, err := processor.Process(ctx, features, options)
	if err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	writer := bufio.NewWriter(out)
	for _, result := range report.Results {
		line, err := encodeResult(result)
		if err != nil {
			log.Fatalf("Failed to encode feature %d: %v", result.ID, err)
		}
		fmt.Fprintln(writer, line)
	}
	if err := writer.Flush(); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	for _, warning := range report.Warnings {
		fmt.Fprintln(os.Stderr, warning)
	}
	fmt.Fprintf(os.Stderr, "Converted %d of %d features (%d skipped)\n", report.Converted, report.Total, report.Skipped)
	if verbose {
		health.LogTime()
	}
}

// readFeatures parses hex WKB lines. Feature IDs are input line numbers, so
// warnings can be traced back to the source file.
func readFeatures(path string) ([]processor.Feature, error) {
	in := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	features := []processor.Feature{}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		data, err := hex.DecodeString(line)
		if err != nil {
			// an invalid line flows through as empty WKB and is reported
			// with the other skips
			fmt.Fprintf(os.Stderr, "line %d is not valid hex: %v\n", lineNum, err)
			data = nil
		}
		features = append(features, processor.Feature{ID: int64(lineNum), WKB: data})
	}
	return features, scanner.Err()
}

func encodeResult(result *processor.Result) (string, error) {
	if format == "geojson" {
		f, err := wkb2geojson.ConvertFeature(result.ID, result.Geometry)
		if err != nil {
			return "", err
		}
		data, err := json.Marshal(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := marshalWKB(result.Geometry)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

// marshalWKB encodes geometry as ISO WKB, or extended WKB when a SRID needs
// to be carried.
func marshalWKB(g geom.T) ([]byte, error) {
	if g != nil && g.SRID() != 0 {
		return curvewkb.Marshal(g, curvewkb.EncodeOptionEWKB())
	}
	return curvewkb.Marshal(g)
}
