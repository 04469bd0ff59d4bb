// Package export serializes selection records for downstream consumers.
//
// Three formats are supported:
//
//   - JSON - the documented record schema, optionally pretty-printed
//   - CSV/TSV - one line per selection row with flattened index sets
//   - HTML - a small self-contained report table
//
// # Usage
//
//	cfg := export.DefaultConfig()
//	cfg.Format = export.FormatCSV
//	err := export.Write(os.Stdout, record, cfg)
//
// The JSON output round-trips through [model.SelectionRecord]; the CSV and
// HTML outputs are presentation surfaces and flatten index sets to
// space-separated lists.
package export
