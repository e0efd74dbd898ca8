package skymap

import (
	"fmt"
	"os"

	"github.com/astrogo/fitsio"
)

// Image is a two-dimensional FITS image with pixel data flattened row-major:
// Data[y*Width+x].
type Image struct {
	Width  int
	Height int
	Data   []float64
}

// At returns the pixel value at (x, y).
func (im *Image) At(x, y int) float64 {
	return im.Data[y*im.Width+x]
}

// ReadFITS loads the primary HDU of a FITS file as a float64 image.
// Integer and single-precision pixel formats are widened.
func ReadFITS(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening FITS file: %w", err)
	}
	defer f.Close()

	fits, err := fitsio.Open(f)
	if err != nil {
		return nil, fmt.Errorf("reading FITS %s: %w", path, err)
	}
	defer fits.Close()

	hdu := fits.HDU(0)
	img, ok := hdu.(fitsio.Image)
	if !ok {
		return nil, fmt.Errorf("primary HDU of %s is not an image", path)
	}

	hdr := img.Header()
	axes := hdr.Axes()
	if len(axes) < 2 {
		return nil, fmt.Errorf("primary HDU of %s has %d axes, need 2", path, len(axes))
	}
	width, height := axes[0], axes[1]
	n := width * height

	data, err := readPixels(img, hdr.Bitpix(), n)
	if err != nil {
		return nil, fmt.Errorf("reading pixels of %s: %w", path, err)
	}

	return &Image{Width: width, Height: height, Data: data}, nil
}

// readPixels reads n pixels from the HDU, converting to float64 based on the
// BITPIX keyword.
func readPixels(img fitsio.Image, bitpix, n int) ([]float64, error) {
	out := make([]float64, 0, n)

	switch bitpix {
	case 8:
		raw := make([]int8, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for _, v := range raw {
			out = append(out, float64(v))
		}
	case 16:
		raw := make([]int16, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for _, v := range raw {
			out = append(out, float64(v))
		}
	case 32:
		raw := make([]int32, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for _, v := range raw {
			out = append(out, float64(v))
		}
	case 64:
		raw := make([]int64, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for _, v := range raw {
			out = append(out, float64(v))
		}
	case -32:
		raw := make([]float32, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for _, v := range raw {
			out = append(out, float64(v))
		}
	case -64:
		raw := make([]float64, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		out = raw
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d", bitpix)
	}

	if len(out) < n {
		return nil, fmt.Errorf("short pixel data: got %d, want %d", len(out), n)
	}
	return out[:n], nil
}
