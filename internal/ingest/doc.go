// Package ingest reads a ratings export CSV and aggregates the dated rating
// events into per-day values. Parsing is tolerant of individual malformed
// rows, which are skipped and counted; structural problems such as a missing
// date column fail the whole run.
package ingest
