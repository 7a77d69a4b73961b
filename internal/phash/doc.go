// Package phash computes average (perceptual) hashes of pixel buffers.
//
// An average hash shrinks a grayscale copy of the image to size x size
// pixels and records, for each pixel in row-major order, whether it is
// brighter than the mean. Similar images produce hashes that differ in few
// bits; Distance reports the normalized Hamming distance in [0, 2].
//
// The thumbnail step is pluggable. The registered resamplers are backed by
// disintegration/imaging (lanczos, box), golang.org/x/image/draw (bilinear,
// nearest), nfnt/resize (mitchell) and disintegration/gift (cubic).
package phash
