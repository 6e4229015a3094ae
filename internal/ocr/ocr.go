// Package ocr wraps Tesseract for scoreboard cell recognition.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"golang.org/x/image/draw"
)

// digitChars restricts recognition for stat columns. Player names stay
// unrestricted.
const digitChars = "0123456789"

// Cells below this height get upscaled before recognition; Tesseract
// degrades badly on short text lines.
const minCellHeight = 40

// Engine performs OCR over cropped scoreboard cells.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine. Callers own Close.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language: %w", err)
	}

	// Player handles and garbled stat reads aren't dictionary words; stop
	// Tesseract from "correcting" them.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases Tesseract resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Recognize runs OCR over one cell. The image is converted to grayscale
// first. numeric restricts output to digit characters. The result is
// whitespace-trimmed but otherwise returned as-is: a garbled read becomes a
// garbled string, there is no retry and no confidence gate.
func (e *Engine) Recognize(cell image.Image, numeric bool) (string, error) {
	if cell == nil || cell.Bounds().Empty() {
		return "", fmt.Errorf("empty cell image")
	}

	prepared := preprocess(cell)

	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return "", fmt.Errorf("encode cell: %w", err)
	}

	// PSM 6: a cell is a single uniform block of text.
	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("set page seg mode: %w", err)
	}
	whitelist := ""
	if numeric {
		whitelist = digitChars
	}
	if err := e.client.SetWhitelist(whitelist); err != nil && numeric {
		return "", fmt.Errorf("set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// preprocess converts the cell to grayscale and upscales short cells.
func preprocess(cell image.Image) image.Image {
	gray := imaging.Grayscale(cell)

	h := gray.Bounds().Dy()
	if h >= minCellHeight {
		return gray
	}
	scale := float64(minCellHeight) / float64(h)
	w := int(scale * float64(gray.Bounds().Dx()))
	dst := image.NewNRGBA(image.Rect(0, 0, w, minCellHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Over, nil)
	return dst
}
