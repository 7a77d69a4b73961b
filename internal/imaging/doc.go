// Package imaging provides the pixel buffer shared by every halftoning and
// color-space operation in this module.
//
// A Buffer holds interleaved samples as float64 values together with the
// Storage type they belong to (uint8, uint16, int16 or float). Keeping a
// single numeric representation lets converters, quantizers and ditherers
// work without per-type code paths while still casting back to the declared
// storage at the edges.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Samples are addressed as (y*Width + x)*Channels + c.
//
// # Errors
//
// The error taxonomy used by the whole module lives here:
//   - UnknownModeError (ErrUnknownMode): a mode name is not registered
//   - NoConversionPathError (ErrNoConversionPath): two families are not connected
//   - ShapeMismatchError (ErrShapeMismatch): incompatible buffer shapes
//   - InvalidParameterError (ErrInvalidParameter): an argument is out of range
//
// Test with errors.Is against the sentinel or errors.As against the type.
//
// # Per-Channel Operations
//
// Single-channel filters such as dithering are lifted to color buffers with
// ApplyPerChannel, which transforms the color channels and leaves an alpha
// channel untouched.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Buffers are plain values; operations
// in this module return new buffers and never share them between calls.
//
// # File I/O
//
// Only ImageCache (decoding) and EncodePNG (encoding) touch codecs. The rest
// of the module consumes and produces Buffers.
package imaging
