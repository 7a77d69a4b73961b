package colorspace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

// ColorMode describes a named pixel encoding.
//
// Modes sharing a Family describe the same conceptual color space at
// different precisions ("L", "U", "F" are all "gray"); the conversion graph
// works on families only and the storage cast between modes of one family is
// applied at the end of Convert.
type ColorMode struct {
	// Name is the canonical, upper-case mode name ("RGB", "L", "1", ...).
	Name string `json:"name"`

	// Family is the color-space family used as a graph node.
	Family string `json:"family"`

	// Channels is the number of interleaved channels.
	Channels int `json:"channels"`

	// Storage is the numeric type samples are stored as.
	Storage imaging.Storage `json:"storage"`

	// Min and Max bound the sample values of the mode.
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Families.
const (
	FamilyBool = "bool"
	FamilyGray = "gray"
	FamilyRGB  = "rgb"
	FamilyRGBA = "rgba"
	FamilyCMYK = "cmyk"
	FamilyLab  = "lab"
	FamilyXYZ  = "xyz"
	FamilyHSV  = "hsv"
)

var modeTable = map[string]ColorMode{
	"1":    {Name: "1", Family: FamilyBool, Channels: 1, Storage: imaging.Uint8, Min: 0, Max: 1},
	"F":    {Name: "F", Family: FamilyGray, Channels: 1, Storage: imaging.Float, Min: 0, Max: 1},
	"U":    {Name: "U", Family: FamilyGray, Channels: 1, Storage: imaging.Uint16, Min: 0, Max: 65535},
	"I":    {Name: "I", Family: FamilyGray, Channels: 1, Storage: imaging.Int16, Min: -32768, Max: 32767},
	"L":    {Name: "L", Family: FamilyGray, Channels: 1, Storage: imaging.Uint8, Min: 0, Max: 255},
	"P":    {Name: "P", Family: FamilyGray, Channels: 1, Storage: imaging.Uint8, Min: 0, Max: 255},
	"RGB":  {Name: "RGB", Family: FamilyRGB, Channels: 3, Storage: imaging.Uint8, Min: 0, Max: 255},
	"RGBA": {Name: "RGBA", Family: FamilyRGBA, Channels: 4, Storage: imaging.Uint8, Min: 0, Max: 255},
	"CMYK": {Name: "CMYK", Family: FamilyCMYK, Channels: 4, Storage: imaging.Uint8, Min: 0, Max: 255},
	"LAB":  {Name: "LAB", Family: FamilyLab, Channels: 3, Storage: imaging.Float, Min: -100, Max: 100},
	"XYZ":  {Name: "XYZ", Family: FamilyXYZ, Channels: 3, Storage: imaging.Float, Min: 0, Max: 1},
	"HSV":  {Name: "HSV", Family: FamilyHSV, Channels: 3, Storage: imaging.Float, Min: 0, Max: 1},
}

// Lookup returns the mode registered under name. Matching is
// case-insensitive.
func Lookup(name string) (ColorMode, error) {
	m, ok := modeTable[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return ColorMode{}, &imaging.UnknownModeError{Name: name}
	}
	return m, nil
}

// Modes returns every registered mode sorted by name.
func Modes() []ColorMode {
	out := make([]ColorMode, 0, len(modeTable))
	for _, m := range modeTable {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Families returns the distinct family names of the registry, sorted.
func Families() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range modeTable {
		if !seen[m.Family] {
			seen[m.Family] = true
			out = append(out, m.Family)
		}
	}
	sort.Strings(out)
	return out
}

// Check reports whether b can carry samples of mode m: the channel count and
// storage must both match.
func (m ColorMode) Check(b *imaging.Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.Channels != m.Channels || b.Storage != m.Storage {
		return &imaging.ShapeMismatchError{
			Op:   "mode " + m.Name,
			Want: fmt.Sprintf("%d channels of %s", m.Channels, m.Storage),
			Got:  fmt.Sprintf("%d channels of %s", b.Channels, b.Storage),
		}
	}
	return nil
}

// normalize returns a float copy of b with integer samples divided by m.Max.
// Float modes are already in their native range and are only copied.
func (m ColorMode) normalize(b *imaging.Buffer) *imaging.Buffer {
	out := b.Clone()
	out.Storage = imaging.Float
	if !m.Storage.IsInteger() {
		return out
	}
	for i, v := range out.Data {
		out.Data[i] = v / m.Max
	}
	return out
}

// denormalize casts a float buffer into m's storage. Integer modes scale by
// Max, round and clamp to [Min, Max]; float modes keep native values.
func (m ColorMode) denormalize(b *imaging.Buffer) *imaging.Buffer {
	out := b.Clone()
	out.Storage = m.Storage
	if !m.Storage.IsInteger() {
		return out
	}
	for i, v := range out.Data {
		out.Data[i] = clampRound(v*m.Max, m.Min, m.Max)
	}
	return out
}
