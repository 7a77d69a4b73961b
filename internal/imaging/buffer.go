package imaging

import "fmt"

// Storage identifies the numeric type a buffer's samples are stored as.
//
// Samples are always held in a []float64 so that converters and ditherers can
// work without per-type code paths; Storage records which value domain the
// numbers belong to and how they are cast back when a mode requires it.
type Storage uint8

const (
	Uint8  Storage = iota // 0..255
	Uint16                // 0..65535
	Int16                 // -32768..32767
	Float                 // native float, usually 0..1
)

// String returns the lower-case storage name.
func (s Storage) String() string {
	switch s {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Int16:
		return "int16"
	case Float:
		return "float"
	}
	return fmt.Sprintf("storage(%d)", uint8(s))
}

// Range returns the representable range of the storage type. Float reports
// the conventional normalized range 0..1.
func (s Storage) Range() (min, max float64) {
	switch s {
	case Uint8:
		return 0, 255
	case Uint16:
		return 0, 65535
	case Int16:
		return -32768, 32767
	}
	return 0, 1
}

// IsInteger reports whether samples of this storage are whole numbers.
func (s Storage) IsInteger() bool {
	return s != Float
}

// Buffer is an in-memory pixel buffer with interleaved channels.
//
// Samples are laid out row-major, pixel by pixel, channel by channel:
//
//	index = (y*Width + x)*Channels + c
//
// The invariant len(Data) == Width*Height*Channels always holds for buffers
// built through NewBuffer or NewBufferFrom. Operations in this module return
// new buffers unless their documentation says otherwise.
type Buffer struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Channels int       `json:"channels"`
	Storage  Storage   `json:"storage"`
	Data     []float64 `json:"-"`
}

// NewBuffer allocates a zeroed buffer. A channel count of 0 is treated as 1.
func NewBuffer(width, height, channels int, storage Storage) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, &InvalidParameterError{
			Op:     "new buffer",
			Param:  "size",
			Reason: fmt.Sprintf("negative dimensions %dx%d", width, height),
		}
	}
	if channels < 0 {
		return nil, &InvalidParameterError{Op: "new buffer", Param: "channels", Reason: "must not be negative"}
	}
	if channels == 0 {
		channels = 1
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Storage:  storage,
		Data:     make([]float64, width*height*channels),
	}, nil
}

// NewBufferFrom wraps data as a buffer after checking its length. The slice
// is used directly, not copied.
func NewBufferFrom(width, height, channels int, storage Storage, data []float64) (*Buffer, error) {
	if channels == 0 {
		channels = 1
	}
	b := &Buffer{Width: width, Height: height, Channels: channels, Storage: storage, Data: data}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the length invariant.
func (b *Buffer) Validate() error {
	if b == nil {
		return &InvalidParameterError{Op: "validate", Param: "buffer", Reason: "nil buffer"}
	}
	if b.Width < 0 || b.Height < 0 || b.Channels < 1 {
		return &InvalidParameterError{
			Op:     "validate",
			Param:  "size",
			Reason: fmt.Sprintf("invalid shape %dx%dx%d", b.Width, b.Height, b.Channels),
		}
	}
	if want := b.Width * b.Height * b.Channels; len(b.Data) != want {
		return &ShapeMismatchError{
			Op:   "validate",
			Want: fmt.Sprintf("%d samples", want),
			Got:  fmt.Sprintf("%d samples", len(b.Data)),
		}
	}
	return nil
}

// Pixels returns Width*Height.
func (b *Buffer) Pixels() int {
	return b.Width * b.Height
}

// Empty reports whether the buffer holds no pixels.
func (b *Buffer) Empty() bool {
	return b.Width == 0 || b.Height == 0
}

// Shape returns a printable WxHxC description.
func (b *Buffer) Shape() string {
	return fmt.Sprintf("%dx%dx%d", b.Width, b.Height, b.Channels)
}

// SameSize reports whether both buffers have the same width and height.
func (b *Buffer) SameSize(o *Buffer) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// Index returns the offset of sample (x, y, c) in Data.
func (b *Buffer) Index(x, y, c int) int {
	return (y*b.Width+x)*b.Channels + c
}

// At returns sample (x, y, c).
func (b *Buffer) At(x, y, c int) float64 {
	return b.Data[b.Index(x, y, c)]
}

// Set stores v at sample (x, y, c).
func (b *Buffer) Set(x, y, c int, v float64) {
	b.Data[b.Index(x, y, c)] = v
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := *b
	out.Data = make([]float64, len(b.Data))
	copy(out.Data, b.Data)
	return &out
}

// Like returns a zeroed buffer with the same size and the given channel
// count and storage.
func (b *Buffer) Like(channels int, storage Storage) *Buffer {
	return &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: channels,
		Storage:  storage,
		Data:     make([]float64, b.Width*b.Height*channels),
	}
}

// Channel extracts channel c as a new single-channel buffer.
func (b *Buffer) Channel(c int) (*Buffer, error) {
	if c < 0 || c >= b.Channels {
		return nil, &InvalidParameterError{
			Op:     "channel",
			Param:  "channel",
			Reason: fmt.Sprintf("index %d outside 0..%d", c, b.Channels-1),
		}
	}
	out := b.Like(1, b.Storage)
	for i := 0; i < b.Pixels(); i++ {
		out.Data[i] = b.Data[i*b.Channels+c]
	}
	return out, nil
}

// Invert returns max - v for every sample, keeping the storage.
func Invert(b *Buffer, max float64) *Buffer {
	out := b.Clone()
	for i, v := range out.Data {
		out.Data[i] = max - v
	}
	return out
}
