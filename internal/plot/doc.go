// Package plot draws a script trace as a chart: panel offset against virtual
// time, one guide line per anchor, and the tracked content offset when a
// scroll view took part in the run.
//
// SVG output is built with svgo and raster output with gg. Both share the
// same frame so the two renderings line up point for point.
package plot
