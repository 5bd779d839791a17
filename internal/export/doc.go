// Package export writes finished runs out to disk: flight paths as KML
// for map viewers, per-tick traces as CSV, run summaries as JSON, and a
// quick SVG rendering of the area and traces. It only reads the
// in-memory simulation types; nothing in the kernel serializes itself.
package export
