// Package exporter writes the report artifacts that accompany the heatmap
// images: a daily aggregate CSV, a markdown overview linking the per-year
// images, and an optional XLSX summary workbook.
package exporter
