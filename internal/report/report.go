// Package report renders scan, conflict and error-log results for
// humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"ck3mm/internal/conflict"
	"ck3mm/internal/errlog"
	"ck3mm/internal/scan"
)

// Format selects the output rendering.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatHuman, "":
		return FormatHuman, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown report format: %s", s)
	}
}

// ConflictReport is the full result of a conflict check.
type ConflictReport struct {
	GeneratedAt time.Time                 `json:"generatedAt" yaml:"generatedAt"`
	Mods        []string                  `json:"mods" yaml:"mods"`
	Scan        *scan.Result              `json:"scan,omitempty" yaml:"scan,omitempty"`
	Groups      []conflict.Group          `json:"conflicts" yaml:"conflicts"`
	Overrides   []conflict.ParsedOverride `json:"engineOverrides,omitempty" yaml:"engineOverrides,omitempty"`
}

// ErrorReport is the full result of an error-log analysis.
type ErrorReport struct {
	GeneratedAt time.Time                `json:"generatedAt" yaml:"generatedAt"`
	LogFile     string                   `json:"logFile" yaml:"logFile"`
	Counts      map[errlog.ErrorType]int `json:"counts" yaml:"counts"`
	Errors      []errlog.ParsedError     `json:"errors" yaml:"errors"`
	Attributed  int                      `json:"attributed" yaml:"attributed"`
}

// NewConflictReport assembles a conflict report.
func NewConflictReport(modNames []string, res *scan.Result, groups []conflict.Group, overrides []conflict.ParsedOverride) *ConflictReport {
	return &ConflictReport{
		GeneratedAt: time.Now().UTC(),
		Mods:        modNames,
		Scan:        res,
		Groups:      groups,
		Overrides:   overrides,
	}
}

// NewErrorReport assembles an error-log report.
func NewErrorReport(logFile string, errors []errlog.ParsedError, attributed int) *ErrorReport {
	return &ErrorReport{
		GeneratedAt: time.Now().UTC(),
		LogFile:     logFile,
		Counts:      errlog.CountByType(errors),
		Errors:      errors,
		Attributed:  attributed,
	}
}

// Render writes the report to w in the requested format.
func Render(w io.Writer, report interface{}, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(report)
	default:
		switch r := report.(type) {
		case *ConflictReport:
			return renderConflictsHuman(w, r)
		case *ErrorReport:
			return renderErrorsHuman(w, r)
		default:
			return fmt.Errorf("no human rendering for %T", report)
		}
	}
}

// WriteFile renders the report to a file. Paths ending in .zst are
// compressed with zstandard, which keeps multi-megabyte JSON reports of
// large playsets small enough to attach to bug reports.
func WriteFile(path string, report interface{}, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".zst") {
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return err
		}
		if err := Render(zw, report, format); err != nil {
			zw.Close()
			return err
		}
		// Close flushes the final frame; losing its error would
		// truncate the report.
		return zw.Close()
	}
	return Render(f, report, format)
}

// ReadConflictReport loads a previously written conflict report,
// transparently decompressing .zst files. Only JSON reports round-trip.
func ReadConflictReport(path string) (*ConflictReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	var report ConflictReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}
