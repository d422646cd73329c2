// Package render lays aggregated daily values out into per-year calendar
// grids and draws them as heatmap PNG images, one file per year. Cell color
// intensity grows monotonically with the day's value; days without data keep
// the neutral background color.
package render
