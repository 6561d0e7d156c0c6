// Package report groups scan findings by container and renders them.
//
// Results is the aggregator: it owns the findings of one scan and indexes
// them by the map or common event they were found in. Renderers are pure
// functions of a Results, the project's name tables and a run id:
//
//   - RenderText writes the sectioned human-readable report, optionally
//     colored with lipgloss.
//   - RenderJSON writes the equivalent JSON document, described by
//     schemas/report.schema.json.
//
// OpenSink opens an output file, compressing it with zstd when the path ends
// in ".zst".
package report
