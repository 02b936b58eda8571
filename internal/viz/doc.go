// Package viz renders reaction-diffusion fields and run statistics in the
// terminal.
//
//   - [Heatmap]: half-block colored rendering of a field between contrast limits
//   - [Canvas]: Braille dot canvas for binary fields
//   - [Plot], [PlotMany]: metric time series through asciigraph
//   - Themes pairing a colormap with UI accent colors
package viz
