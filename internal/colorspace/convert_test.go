package colorspace

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

func mustBuffer(t *testing.T, w, h, ch int, s imaging.Storage, data ...float64) *imaging.Buffer {
	t.Helper()
	b, err := imaging.NewBufferFrom(w, h, ch, s, data)
	if err != nil {
		t.Fatalf("NewBufferFrom failed: %v", err)
	}
	return b
}

func assertData(t *testing.T, got *imaging.Buffer, tol float64, want ...float64) {
	t.Helper()
	if len(got.Data) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got.Data), len(want), got.Data)
	}
	for i := range want {
		if math.Abs(got.Data[i]-want[i]) > tol {
			t.Errorf("Data[%d] = %v, want %v (±%v)", i, got.Data[i], want[i], tol)
		}
	}
}

func TestLookup(t *testing.T) {
	m, err := Lookup("rgb")
	if err != nil {
		t.Fatalf("Lookup(rgb) failed: %v", err)
	}
	if m.Name != "RGB" || m.Family != FamilyRGB || m.Channels != 3 {
		t.Errorf("Lookup(rgb) = %+v", m)
	}
	if m, _ := Lookup("Lab"); m.Min != -100 || m.Max != 100 || m.Storage != imaging.Float {
		t.Errorf("Lookup(Lab) = %+v", m)
	}

	_, err = Lookup("YCbCr")
	if !errors.Is(err, imaging.ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
}

func TestModes(t *testing.T) {
	modes := Modes()
	if len(modes) != 12 {
		t.Fatalf("len(Modes) = %d, want 12", len(modes))
	}
	for i := 1; i < len(modes); i++ {
		if modes[i-1].Name >= modes[i].Name {
			t.Errorf("Modes not sorted at %d: %s >= %s", i, modes[i-1].Name, modes[i].Name)
		}
	}
	want := []string{"bool", "cmyk", "gray", "hsv", "lab", "rgb", "rgba", "xyz"}
	got := Families()
	if len(got) != len(want) {
		t.Fatalf("Families = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Families = %v, want %v", got, want)
			break
		}
	}
}

func TestConvert_IdentityReturnsInput(t *testing.T) {
	b := mustBuffer(t, 2, 1, 3, imaging.Uint8, 1, 2, 3, 4, 5, 6)
	out, err := Convert(b, "RGB", "rgb")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if out != b {
		t.Error("identical mode conversion did not return the input")
	}
}

func TestConvert_GrayRGBRoundTrip(t *testing.T) {
	b := mustBuffer(t, 4, 1, 1, imaging.Uint8, 0, 17, 128, 255)
	rgb, err := Convert(b, "L", "RGB")
	if err != nil {
		t.Fatalf("L->RGB failed: %v", err)
	}
	assertData(t, rgb, 0, 0, 0, 0, 17, 17, 17, 128, 128, 128, 255, 255, 255)
	if rgb.Storage != imaging.Uint8 {
		t.Errorf("RGB storage = %v", rgb.Storage)
	}

	back, err := Convert(rgb, "RGB", "L")
	if err != nil {
		t.Fatalf("RGB->L failed: %v", err)
	}
	assertData(t, back, 0, b.Data...)
}

func TestConvert_StorageCast(t *testing.T) {
	tests := []struct {
		name           string
		source, target string
		in             *imaging.Buffer
		want           []float64
		storage        imaging.Storage
	}{
		{"L to F", "L", "F", mustBuffer(t, 2, 1, 1, imaging.Uint8, 0, 255), []float64{0, 1}, imaging.Float},
		{"F to L rounds", "F", "L", mustBuffer(t, 3, 1, 1, imaging.Float, 0.5, 0.1, 1.2), []float64{128, 26, 255}, imaging.Uint8},
		{"L to U", "L", "U", mustBuffer(t, 1, 1, 1, imaging.Uint8, 255), []float64{65535}, imaging.Uint16},
		{"F to I clamps", "F", "I", mustBuffer(t, 2, 1, 1, imaging.Float, -2, 1), []float64{-32768, 32767}, imaging.Int16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Convert(tt.in, tt.source, tt.target)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if out.Storage != tt.storage {
				t.Errorf("Storage = %v, want %v", out.Storage, tt.storage)
			}
			assertData(t, out, 1e-9, tt.want...)
		})
	}
}

func TestConvert_CMYK(t *testing.T) {
	b := mustBuffer(t, 4, 1, 3, imaging.Uint8,
		0, 0, 0,
		255, 255, 255,
		255, 0, 0,
		200, 150, 50,
	)
	cmyk, err := Convert(b, "RGB", "CMYK")
	if err != nil {
		t.Fatalf("RGB->CMYK failed: %v", err)
	}
	assertData(t, cmyk, 0,
		0, 0, 0, 255,
		0, 0, 0, 0,
		0, 255, 255, 0,
		0, 64, 191, 55,
	)

	back, err := Convert(cmyk, "CMYK", "RGB")
	if err != nil {
		t.Fatalf("CMYK->RGB failed: %v", err)
	}
	assertData(t, back, 1, b.Data...)
}

func TestConvert_ColorimetricRoundTrips(t *testing.T) {
	b := mustBuffer(t, 5, 1, 3, imaging.Uint8,
		0, 0, 0,
		255, 255, 255,
		255, 0, 0,
		30, 144, 255,
		200, 180, 20,
	)
	for _, mode := range []string{"LAB", "XYZ", "HSV", "CMYK", "RGBA"} {
		t.Run(mode, func(t *testing.T) {
			mid, err := Convert(b, "RGB", mode)
			if err != nil {
				t.Fatalf("RGB->%s failed: %v", mode, err)
			}
			back, err := Convert(mid, mode, "RGB")
			if err != nil {
				t.Fatalf("%s->RGB failed: %v", mode, err)
			}
			assertData(t, back, 1, b.Data...)
		})
	}
}

func TestConvert_Lab(t *testing.T) {
	b := mustBuffer(t, 2, 1, 3, imaging.Uint8, 255, 255, 255, 0, 0, 0)
	lab, err := Convert(b, "RGB", "LAB")
	if err != nil {
		t.Fatalf("RGB->LAB failed: %v", err)
	}
	assertData(t, lab, 0.5, 100, 0, 0, 0, 0, 0)
	if lab.Storage != imaging.Float {
		t.Errorf("Storage = %v, want float", lab.Storage)
	}
}

func TestConvert_HSV(t *testing.T) {
	b := mustBuffer(t, 2, 1, 3, imaging.Uint8, 255, 0, 0, 0, 0, 255)
	hsv, err := Convert(b, "RGB", "HSV")
	if err != nil {
		t.Fatalf("RGB->HSV failed: %v", err)
	}
	assertData(t, hsv, 1e-9, 0, 1, 1, 240.0/360, 1, 1)
}

func TestConvert_RGBAFlattensOverWhite(t *testing.T) {
	b := mustBuffer(t, 3, 1, 4, imaging.Uint8,
		0, 0, 0, 0,
		255, 0, 0, 255,
		0, 0, 0, 128,
	)
	rgb, err := Convert(b, "RGBA", "RGB")
	if err != nil {
		t.Fatalf("RGBA->RGB failed: %v", err)
	}
	assertData(t, rgb, 0,
		255, 255, 255,
		255, 0, 0,
		127, 127, 127,
	)
}

func TestConvert_Bool(t *testing.T) {
	b := mustBuffer(t, 2, 1, 1, imaging.Uint8, 0, 255)
	bits, err := Convert(b, "L", "1")
	if err != nil {
		t.Fatalf("L->1 failed: %v", err)
	}
	assertData(t, bits, 0, 0, 1)

	rgb, err := Convert(bits, "1", "RGB")
	if err != nil {
		t.Fatalf("1->RGB failed: %v", err)
	}
	assertData(t, rgb, 0, 0, 0, 0, 255, 255, 255)
}

func TestConvert_EmptyBuffer(t *testing.T) {
	b, _ := imaging.NewBuffer(0, 0, 1, imaging.Uint8)
	for _, target := range []string{"RGB", "1", "LAB", "CMYK"} {
		out, err := Convert(b, "L", target)
		if err != nil {
			t.Fatalf("L->%s on 0x0 failed: %v", target, err)
		}
		if out.Width != 0 || out.Height != 0 || len(out.Data) != 0 {
			t.Errorf("L->%s on 0x0 = %s", target, out.Shape())
		}
	}
}

func TestConvert_Errors(t *testing.T) {
	rgb := mustBuffer(t, 1, 1, 3, imaging.Uint8, 1, 2, 3)
	tests := []struct {
		name           string
		source, target string
		want           error
	}{
		{"unknown source", "YUV", "RGB", imaging.ErrUnknownMode},
		{"unknown target", "RGB", "YUV", imaging.ErrUnknownMode},
		{"channels do not match source", "L", "RGB", imaging.ErrShapeMismatch},
		{"storage does not match source", "HSV", "RGB", imaging.ErrShapeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Convert(rgb, tt.source, tt.target); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
