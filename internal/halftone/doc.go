// Package halftone reduces single-channel buffers to a few discrete levels.
//
// Quantize thresholds each sample independently. Dither adds a strategy on
// top: error diffusion with one of the Floyd-Steinberg, Sierra Lite, Stucki
// or Philips kernels, Gaussian noise, or a Bayer ordered pattern. All
// results hold level indices 0..N-1, not intensities.
//
// Multi-channel buffers are dithered channel by channel:
//
//	out, err := imaging.ApplyPerChannel(rgb, func(c *imaging.Buffer) (*imaging.Buffer, error) {
//	    return halftone.Dither(c, halftone.Stucki, 2, 255)
//	})
package halftone
