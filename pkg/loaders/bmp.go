package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/df07/go-bounce-tracer/pkg/renderer"
)

const (
	bmpMagic      = 0x4D42 // "BM" read as a little-endian uint16
	bmpHeaderSize = 54     // file header (14) + info header (40)
	bmpInfoSize   = 40
	bmpBitCount   = 32
)

var ErrInvalidBMP = errors.New("invalid BMP")

// bmpHeader is the BITMAPFILEHEADER followed by the BITMAPINFOHEADER.
// encoding/binary writes the fields packed, in declaration order.
type bmpHeader struct {
	FileType        uint16
	FileSize        uint32
	Reserved1       uint16
	Reserved2       uint16
	BitmapOffset    uint32
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	SizeOfBitmap    uint32
	HorzResolution  int32
	VertResolution  int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

func init() {
	image.RegisterFormat("bmp", "BM????\x00\x00\x00\x00", decodeImage, decodeConfig)
}

// EncodeBMP writes img as an uncompressed 32-bit BMP. The height is stored
// positive, so readers treat the first row as the bottom of the picture,
// which is also the first row the renderer produces.
func EncodeBMP(w io.Writer, img *renderer.Image) error {
	bitmapSize := uint64(img.PixelCount()) * 4
	if bitmapSize+bmpHeaderSize > 0xFFFFFFFF {
		return fmt.Errorf("%w: %dx%d does not fit in a BMP", ErrInvalidBMP, img.Width, img.Height)
	}

	header := bmpHeader{
		FileType:     bmpMagic,
		FileSize:     uint32(bmpHeaderSize + bitmapSize),
		BitmapOffset: bmpHeaderSize,
		Size:         bmpInfoSize,
		Width:        int32(img.Width),
		Height:       int32(img.Height),
		Planes:       1,
		BitsPerPixel: bmpBitCount,
		SizeOfBitmap: uint32(bitmapSize),
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write BMP header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, img.Pix); err != nil {
		return fmt.Errorf("failed to write BMP pixels: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write BMP pixels: %w", err)
	}
	return nil
}

func readBMPHeader(r io.Reader) (bmpHeader, error) {
	var header bmpHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return header, fmt.Errorf("%w: short header: %v", ErrInvalidBMP, err)
	}

	switch {
	case header.FileType != bmpMagic:
		return header, fmt.Errorf("%w: bad magic %#04x", ErrInvalidBMP, header.FileType)
	case header.Size < bmpInfoSize || header.BitmapOffset < bmpHeaderSize:
		return header, fmt.Errorf("%w: unsupported header layout", ErrInvalidBMP)
	case header.Planes != 1 || header.BitsPerPixel != bmpBitCount || header.Compression != 0:
		return header, fmt.Errorf("%w: only uncompressed 32-bit bitmaps are supported (got %d bpp, compression %d)",
			ErrInvalidBMP, header.BitsPerPixel, header.Compression)
	case header.Width <= 0 || header.Height == 0:
		return header, fmt.Errorf("%w: size %dx%d", ErrInvalidBMP, header.Width, header.Height)
	}
	return header, nil
}

// DecodeBMP reads an uncompressed 32-bit BMP into a packed pixel buffer.
// Both bottom-up (positive height) and top-down files are accepted; the
// result is always in render order with row 0 at the bottom.
func DecodeBMP(r io.Reader) (*renderer.Image, error) {
	br := bufio.NewReader(r)
	header, err := readBMPHeader(br)
	if err != nil {
		return nil, err
	}

	topDown := header.Height < 0
	height := int(header.Height)
	if topDown {
		height = -height
	}

	img, err := renderer.NewImage(int(header.Width), height)
	if err != nil {
		return nil, err
	}

	if _, err := br.Discard(int(header.BitmapOffset) - bmpHeaderSize); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBMP, err)
	}
	if err := binary.Read(br, binary.LittleEndian, img.Pix); err != nil {
		return nil, fmt.Errorf("%w: truncated pixel data: %v", ErrInvalidBMP, err)
	}

	if topDown {
		for y := 0; y < height/2; y++ {
			top := img.Pix[y*img.Width : (y+1)*img.Width]
			bottom := img.Pix[(height-1-y)*img.Width : (height-y)*img.Width]
			for x := range top {
				top[x], bottom[x] = bottom[x], top[x]
			}
		}
	}

	return img, nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, err := DecodeBMP(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func decodeConfig(r io.Reader) (image.Config, error) {
	header, err := readBMPHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	height := int(header.Height)
	if height < 0 {
		height = -height
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: int(header.Width), Height: height}, nil
}
