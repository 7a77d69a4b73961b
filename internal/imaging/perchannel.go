package imaging

import "fmt"

// ChannelFunc transforms a single-channel buffer.
type ChannelFunc func(*Buffer) (*Buffer, error)

// ColorChannels returns the channel indices holding color data: channel 0 for
// gray and gray+alpha buffers, the first three channels otherwise. An alpha
// channel is never included.
func ColorChannels(b *Buffer) []int {
	n := b.Channels
	if n > 3 {
		n = 3
	}
	if n == 2 {
		n = 1
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// ApplyPerChannel runs fn on each listed channel of b and reassembles the
// results into a buffer with b's channel count.
//
// Parameters:
//   - b: The source buffer. It is not modified.
//   - fn: The single-channel transform. Every call must return a buffer of
//     the same width and height as b with exactly one channel.
//   - channels: Channel indices to transform. When empty, ColorChannels(b)
//     is used, so an alpha channel passes through untouched.
//
// Returns:
//   - *Buffer: The reassembled buffer. Its storage is the storage reported by
//     fn; channels that were not transformed are copied verbatim and are not
//     rescaled, so when fn changes the value range the caller must keep the
//     passed-through samples valid for the new storage.
//   - error: Non-nil if a channel index is out of range, fn fails, or fn
//     returns a buffer of the wrong shape.
//
// A single-channel b is passed to fn directly.
func ApplyPerChannel(b *Buffer, fn ChannelFunc, channels ...int) (*Buffer, error) {
	if b.Channels == 1 {
		return fn(b)
	}
	if len(channels) == 0 {
		channels = ColorChannels(b)
	}

	results := make(map[int]*Buffer, len(channels))
	storage := b.Storage
	for i, c := range channels {
		plane, err := b.Channel(c)
		if err != nil {
			return nil, fmt.Errorf("per-channel: %w", err)
		}
		res, err := fn(plane)
		if err != nil {
			return nil, fmt.Errorf("per-channel %d: %w", c, err)
		}
		if res.Channels != 1 || !res.SameSize(b) {
			return nil, &ShapeMismatchError{
				Op:   "per-channel",
				Want: fmt.Sprintf("%dx%dx1", b.Width, b.Height),
				Got:  res.Shape(),
			}
		}
		if i == 0 {
			storage = res.Storage
		}
		results[c] = res
	}

	out := b.Like(b.Channels, storage)
	copy(out.Data, b.Data)
	for c, res := range results {
		for p := 0; p < b.Pixels(); p++ {
			out.Data[p*b.Channels+c] = res.Data[p]
		}
	}
	return out, nil
}
