package renderer

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"github.com/amitkumarghb/bpt-veach/pkg/core"
)

func testSensor(t *testing.T) *Sensor {
	t.Helper()
	s, err := NewSensor(2, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	s.Pixel(0, 0, core.NewColor(1, 0, 0))
	s.Pixel(1, 0, core.NewColor(0, 1, 0))
	s.Pixel(0, 1, core.NewColor(0, 0, 1))
	s.Pixel(1, 1, core.NewColor(0.5, 0.5, 0.5))
	return s
}

func TestWriteTGAHeader(t *testing.T) {
	s := testSensor(t)

	var buf bytes.Buffer
	if err := WriteTGA(&buf, s, false); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	if len(data) != 18+2*2*3 {
		t.Fatalf("file size = %d, want %d", len(data), 18+12)
	}
	if data[0] != 0 {
		t.Errorf("comment length = %d, want 0", data[0])
	}
	if data[1] != 0 {
		t.Errorf("colormap type = %d, want 0", data[1])
	}
	if data[2] != 2 {
		t.Errorf("datatype = %d, want 2 (uncompressed true color)", data[2])
	}
	if data[12] != 2 || data[13] != 0 || data[14] != 2 || data[15] != 0 {
		t.Errorf("dimensions = % x, want 2x2 little endian", data[12:16])
	}
	if data[16] != 24 {
		t.Errorf("bits per pixel = %d, want 24", data[16])
	}
	if data[17] != 32 {
		t.Errorf("descriptor = %d, want 32 (upper left origin)", data[17])
	}

	// First pixel is pure red, stored BGR
	if data[18] != 0 || data[19] != 0 || data[20] != 255 {
		t.Errorf("pixel (0,0) = % x, want 00 00 ff", data[18:21])
	}
	// Gray pixel: round(255 * 0.5^(1/2.2)) in all channels
	gray := uint8(math.Round(255 * math.Pow(0.5, 1.0/2.2)))
	if data[27] != gray || data[28] != gray || data[29] != gray {
		t.Errorf("pixel (1,1) = % x, want %x repeated", data[27:30], gray)
	}
}

func TestWriteTGALibgdkVariant(t *testing.T) {
	s := testSensor(t)

	var buf bytes.Buffer
	if err := WriteTGA(&buf, s, true); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	if len(data) != 19+2*2*3 {
		t.Fatalf("file size = %d, want %d", len(data), 19+12)
	}
	if data[0] != 1 {
		t.Errorf("comment length = %d, want 1", data[0])
	}
	if data[18] != 0 {
		t.Errorf("comment byte = %d, want 0", data[18])
	}
}

func TestWriteTGARoundTrip(t *testing.T) {
	s := testSensor(t)

	var buf bytes.Buffer
	if err := WriteTGA(&buf, s, false); err != nil {
		t.Fatal(err)
	}

	img, err := tga.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding our own TGA: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Fatalf("decoded size %v, want 2x2", bounds)
	}

	// Pixel (0,0) is red after gamma
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("decoded (0,0) = (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
	gray := uint32(math.Round(255 * math.Pow(0.5, 1.0/2.2)))
	r, g, b, _ = img.At(1, 1).RGBA()
	if r>>8 != gray || g>>8 != gray || b>>8 != gray {
		t.Errorf("decoded (1,1) = (%d,%d,%d), want gray %d", r>>8, g>>8, b>>8, gray)
	}
}

func TestEncoderFormats(t *testing.T) {
	s := testSensor(t)

	t.Run("PNG", func(t *testing.T) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, s.Image()); err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Dx() != 2 {
			t.Errorf("png size %v", img.Bounds())
		}
	})

	t.Run("BMP", func(t *testing.T) {
		var buf bytes.Buffer
		if err := bmp.Encode(&buf, s.Image()); err != nil {
			t.Fatal(err)
		}
		img, err := bmp.Decode(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Dy() != 2 {
			t.Errorf("bmp size %v", img.Bounds())
		}
	})

	t.Run("WebP", func(t *testing.T) {
		var buf bytes.Buffer
		if err := SaveImageTo(&buf, s, FormatWebP, false); err != nil {
			t.Fatal(err)
		}
		img, err := webp.Decode(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Dx() != 2 {
			t.Errorf("webp size %v", img.Bounds())
		}
	})
}

func TestSaveImageUnknownFormat(t *testing.T) {
	s := testSensor(t)
	if _, err := SaveImage(t.TempDir()+"/out", s, "gif", false); err == nil {
		t.Error("unknown format must fail")
	}
}

func TestSaveImageWritesFile(t *testing.T) {
	s := testSensor(t)
	fileName, err := SaveImage(t.TempDir()+"/render", s, FormatTGA, false)
	if err != nil {
		t.Fatal(err)
	}
	if fileName == "" {
		t.Error("empty file name")
	}
}
