// Package export writes a single trajectory to CSV, JSON or SVG. Nothing is
// kept between runs; every call writes one self-contained file.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/physics"
)

// Run describes one simulated flight and the settings that produced it.
type Run struct {
	Name       string
	Method     string
	Drag       bool
	Gravity    float64
	Dt         float64
	Trajectory *physics.Trajectory
	Flight     metrics.Flight
}

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	SVG  Format = "svg"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", ext)
	}
}

// Write encodes runs in the given format. CSV and JSON take exactly one run;
// SVG overlays all of them.
func Write(w io.Writer, f Format, runs ...Run) error {
	if len(runs) == 0 {
		return fmt.Errorf("nothing to export")
	}
	switch f {
	case CSV:
		return WriteCSV(w, runs[0].Trajectory)
	case JSON:
		return WriteJSON(w, runs[0])
	case SVG:
		_, err := io.WriteString(w, TrajectorySVG(runs, 800, 400))
		return err
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// WriteFile writes runs to path, choosing the format from its extension.
func WriteFile(path string, runs ...Run) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := Write(file, f, runs...); err != nil {
		return err
	}
	return file.Close()
}
