package imagedecode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
)

const (
	sampleSize = 64
	// quantShift keeps the top 4 bits of each channel when bucketing colours.
	quantShift = 4
)

// Decoder turns base64 payloads into decoded images with a dominant colour.
type Decoder struct {
	maxBytes int
}

var _ analyzer.ImageDecoder = (*Decoder)(nil)

// NewDecoder builds a decoder rejecting payloads above maxBytes once decoded.
func NewDecoder(maxBytes int) *Decoder {
	if maxBytes <= 0 {
		maxBytes = 8 << 20
	}
	return &Decoder{maxBytes: maxBytes}
}

// Decode accepts raw base64 or a data URL.
func (d *Decoder) Decode(input string) (analyzer.DecodedImage, error) {
	payload := strings.TrimSpace(input)
	isDataURL := strings.HasPrefix(payload, "data:")
	if isDataURL {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return analyzer.DecodedImage{}, errors.New("malformed data url")
		}
		if !strings.HasSuffix(payload[:comma], ";base64") {
			return analyzer.DecodedImage{}, errors.New("data url must be base64 encoded")
		}
		payload = payload[comma+1:]
	}

	raw, err := decodeBase64(payload)
	if err != nil {
		return analyzer.DecodedImage{}, fmt.Errorf("decode base64: %w", err)
	}
	if len(raw) > d.maxBytes {
		return analyzer.DecodedImage{}, fmt.Errorf("image exceeds %d bytes", d.maxBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return analyzer.DecodedImage{}, fmt.Errorf("decode image: %w", err)
	}
	contentType := "image/" + format

	dataURL := strings.TrimSpace(input)
	if !isDataURL {
		dataURL = "data:" + contentType + ";base64," + payload
	}

	b := img.Bounds()
	return analyzer.DecodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Dominant:    DominantColor(img),
		ContentType: contentType,
		Data:        raw,
		DataURL:     dataURL,
	}, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, errors.New("empty payload")
	}
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// DominantColor downsamples img and returns the average colour of the most
// populated colour bucket. Mostly transparent pixels are ignored.
func DominantColor(img image.Image) color.RGBA {
	b := img.Bounds()
	if b.Empty() {
		return color.RGBA{A: 0xff}
	}
	w, h := sampleSize, sampleSize
	if b.Dx() < w {
		w = b.Dx()
	}
	if b.Dy() < h {
		h = b.Dy()
	}
	sample := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(sample, sample.Bounds(), img, b, draw.Src, nil)

	type bucket struct {
		count   int
		r, g, b int
	}
	buckets := make(map[uint16]*bucket)
	var best *bucket
	var bestKey uint16
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := sample.RGBAAt(x, y)
			if px.A < 0x80 {
				continue
			}
			key := uint16(px.R>>quantShift)<<8 | uint16(px.G>>quantShift)<<4 | uint16(px.B>>quantShift)
			bk, ok := buckets[key]
			if !ok {
				bk = &bucket{}
				buckets[key] = bk
			}
			bk.count++
			bk.r += int(px.R)
			bk.g += int(px.G)
			bk.b += int(px.B)
			// Ties go to the lower key so results do not depend on scan order.
			if best == nil || bk.count > best.count || (bk.count == best.count && key < bestKey) {
				best, bestKey = bk, key
			}
		}
	}
	if best == nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{
		R: uint8(best.r / best.count),
		G: uint8(best.g / best.count),
		B: uint8(best.b / best.count),
		A: 0xff,
	}
}
