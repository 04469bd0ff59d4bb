package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vizlab/heatsel/model"
)

// Format defines the available export formats
type Format int

const (
	// FormatJSON exports the documented record schema as a JSON array
	FormatJSON Format = iota
	// FormatCSV exports comma-separated values, one line per selection row
	FormatCSV
	// FormatTSV exports tab-separated values
	FormatTSV
	// FormatHTML exports a self-contained HTML report
	FormatHTML
)

// String returns a human-readable representation of the export format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatTSV:
		return ".tsv"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format
	Format Format

	// PrettyPrint enables indented output for JSON
	PrettyPrint bool

	// IncludeHeader includes a header row in CSV/TSV exports
	IncludeHeader bool

	// IncludeLabels includes resolved label columns in CSV/TSV/HTML
	IncludeLabels bool

	// Title is the document title for HTML reports
	Title string
}

// DefaultConfig returns sensible defaults for export configuration
func DefaultConfig() Config {
	return Config{
		Format:        FormatJSON,
		PrettyPrint:   false,
		IncludeHeader: true,
		IncludeLabels: true,
		Title:         "Selection report",
	}
}

// Write serializes the record to the writer in the configured format.
func Write(w io.Writer, rec model.SelectionRecord, cfg Config) error {
	switch cfg.Format {
	case FormatJSON:
		return writeJSON(w, rec, cfg)
	case FormatCSV:
		return writeSeparated(w, rec, cfg, ',')
	case FormatTSV:
		return writeSeparated(w, rec, cfg, '\t')
	case FormatHTML:
		return writeHTML(w, rec, cfg)
	default:
		return fmt.Errorf("export: unsupported format %d", int(cfg.Format))
	}
}

func writeJSON(w io.Writer, rec model.SelectionRecord, cfg Config) error {
	enc := json.NewEncoder(w)
	if cfg.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return nil
}

func writeSeparated(w io.Writer, rec model.SelectionRecord, cfg Config, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	if cfg.IncludeHeader {
		header := []string{"heatmap", "slice", "row_slice", "column_slice", "row_index", "column_index"}
		if cfg.IncludeLabels {
			header = append(header, "row_label", "column_label")
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for _, row := range rec {
		slice, rowSlice, colSlice := "", "", ""
		if !row.IsAnnotation() {
			slice = row.SliceID().String()
			rowSlice = strconv.Itoa(row.RowSplit)
			colSlice = strconv.Itoa(row.ColumnSplit)
		}
		fields := []string{
			row.Panel, slice, rowSlice, colSlice,
			joinInts(row.RowIndices), joinInts(row.ColumnIndices),
		}
		if cfg.IncludeLabels {
			fields = append(fields, strings.Join(row.RowLabels, " "), strings.Join(row.ColumnLabels, " "))
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
