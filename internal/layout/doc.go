// Package layout holds the floating point geometry primitives shared by the
// panel engine and its tools: sizes, edge insets, rectangles, points, and
// insets that are either fixed or fractional.
//
// Types are re-exported through the root panel package for public consumption.
package layout
