// Package interp provides interpolation primitives for resampling recorded
// series at arbitrary query times.
//
// Available methods:
//
//   - [Linear2]:  2-point linear interpolation between neighbouring samples
//   - [Linear]:   piecewise-linear resampling of an irregularly sampled series
//
// [Linear] never extrapolates: query times outside the sampled support, and
// NaN query times, yield NaN.
package interp
