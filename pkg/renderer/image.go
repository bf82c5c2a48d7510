package renderer

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
)

// Image output formats
const (
	FormatTGA  = "tga"
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatWebP = "webp"
)

// WriteTGA writes the sensor as an uncompressed 24-bit TGA with the origin in
// the upper left. When libgdk is set, the header grows to 19 bytes with a one
// byte comment, a workaround for a nonzero-length bug in libgdk loaders.
func WriteTGA(w io.Writer, s *Sensor, libgdk bool) error {
	headerSize := 18
	if libgdk {
		headerSize = 19
	}
	width := s.Width()
	height := s.Height()
	data := make([]byte, headerSize+width*height*3)

	// Comment data size
	if libgdk {
		data[0] = 1
	}
	// Colormap type is none, datatype 2 is uncompressed true color
	data[2] = 2
	// Image dimensions, little endian
	data[12] = byte(width % 256)
	data[13] = byte(width / 256)
	data[14] = byte(height % 256)
	data[15] = byte(height / 256)
	// Bits per pixel
	data[16] = 24
	// Image descriptor, bit 5 set means upper left origin
	data[17] = 32

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := s.At(x, y)
			index := headerSize + (x+y*width)*3
			// TGA uses BGR color order
			data[index] = encodeChannel(c.B)
			data[index+1] = encodeChannel(c.G)
			data[index+2] = encodeChannel(c.R)
		}
	}

	_, err := w.Write(data)
	return err
}

// SaveImageTo encodes the sensor in the given format
func SaveImageTo(w io.Writer, s *Sensor, format string, libgdk bool) error {
	switch strings.ToLower(format) {
	case FormatTGA:
		return WriteTGA(w, s, libgdk)
	case FormatPNG:
		return png.Encode(w, s.Image())
	case FormatBMP:
		return bmp.Encode(w, s.Image())
	case FormatWebP:
		return nativewebp.Encode(w, s.Image(), nil)
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
}

// SaveImage writes the sensor to path in the given format. The matching file
// extension is appended to the path.
func SaveImage(path string, s *Sensor, format string, libgdk bool) (string, error) {
	format = strings.ToLower(format)
	switch format {
	case FormatTGA, FormatPNG, FormatBMP, FormatWebP:
	default:
		return "", fmt.Errorf("unknown image format %q", format)
	}

	fileName := path + "." + format
	f, err := os.Create(fileName)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fileName, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := SaveImageTo(w, s, format, libgdk); err != nil {
		return "", fmt.Errorf("encode %s: %w", fileName, err)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("write %s: %w", fileName, err)
	}
	return fileName, nil
}
