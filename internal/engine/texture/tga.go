package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types.
const (
	tgaTypeTrueColor = 2  // uncompressed true-color
	tgaTypeRLE       = 10 // RLE compressed true-color
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color TGA with 24 or 32 bits
// per pixel. TGA has no magic number, so Load selects it by file extension.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != tgaTypeTrueColor && imageType != tgaTypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if 18+idLength > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[18+idLength:],
		bytesPP:     bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	var err error
	if imageType == tgaTypeTrueColor {
		err = d.raw(width * height)
	} else {
		err = d.rle(width * height)
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	data        []byte
	pos         int
	pixel       int
	bytesPP     int
	topToBottom bool
}

// next reads one BGR(A) pixel.
func (d *tgaDecoder) next() ([4]byte, error) {
	if d.pos+d.bytesPP > len(d.data) {
		return [4]byte{}, errTGATruncated
	}
	p := d.data[d.pos:]
	c := [4]byte{p[2], p[1], p[0], 255}
	if d.bytesPP == 4 {
		c[3] = p[3]
	}
	d.pos += d.bytesPP
	return c, nil
}

// put stores c at the current pixel index, honoring the origin flag.
func (d *tgaDecoder) put(c [4]byte) {
	w := d.img.Rect.Dx()
	x, y := d.pixel%w, d.pixel/w
	if !d.topToBottom {
		y = d.img.Rect.Dy() - 1 - y
	}
	i := d.img.PixOffset(x, y)
	copy(d.img.Pix[i:i+4], c[:])
	d.pixel++
}

func (d *tgaDecoder) raw(count int) error {
	for d.pixel < count {
		c, err := d.next()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle(count int) error {
	for d.pixel < count {
		if d.pos >= len(d.data) {
			return errTGATruncated
		}
		packet := d.data[d.pos]
		d.pos++
		n := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			c, err := d.next()
			if err != nil {
				return err
			}
			for i := 0; i < n && d.pixel < count; i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < n && d.pixel < count; i++ {
			c, err := d.next()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
