// Package viz draws simulation trajectories.
//
// Two renderers implement [Renderer]:
//
//   - [Terminal]: a Braille [Canvas] of the trajectory framed with lipgloss,
//     followed by asciigraph panels of each time series
//   - [Image]: a gonum/plot line chart encoded as PNG or SVG
//
// Both take a [Figure], which carries the points, labels, axis bounds and an
// optional marker for the starting point.
package viz
