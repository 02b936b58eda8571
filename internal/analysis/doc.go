// Package analysis provides pattern analysis tools.
//
//   - [RadialSpectrum]: power spectrum of a field binned by radial wavenumber
//   - [DominantWavelength]: characteristic length of a developed pattern
//   - [BifurcationDiagram]: parameter sweep recording settled concentration levels
//   - [GeneratePhasePortrait]: trajectory of two species' spatial means
//
// # Pattern Wavelength
//
// A Turing pattern has a characteristic wavelength set by the diffusion
// ratio; the dominant wavelength of a settled field measures it:
//
//	v, _ := p.Field("V")
//	lambda := analysis.DominantWavelength(v, p.Dx())
package analysis
