// Package colorspace converts pixel buffers between named color modes.
//
// Modes ("L", "RGB", "CMYK", "LAB", ...) are grouped into families, and a
// directed Graph over the families holds one Converter per supported pair.
// Convert finds the shortest family path with a breadth-first search and
// pipes the buffer through each converter, so a request such as "CMYK" to
// "HSV" runs cmyk -> rgb -> hsv without a dedicated converter.
//
// The default graph is built from the registry once, during package
// initialization, and is read-only afterwards. Mode lookups and conversions
// are safe for concurrent use.
package colorspace
