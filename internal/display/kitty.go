package display

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"

	// chunkSize is the largest base64 payload per escape sequence.
	chunkSize = 4096
)

// KittyProtocol implements Protocol with the Kitty graphics protocol.
// Images are transmitted once and placed by ID.
type KittyProtocol struct {
	cellW, cellH int
}

// NewKittyProtocol creates a KittyProtocol using the terminal's cell size.
func NewKittyProtocol() *KittyProtocol {
	w, h := getCellSize()
	return &KittyProtocol{cellW: w, cellH: h}
}

func (k *KittyProtocol) Name() string { return "kitty" }

func (k *KittyProtocol) Prepare(img image.Image, id uint32) (string, error) {
	return TransmitImage(img, id)
}

func (k *KittyProtocol) PrepareFromPNG(pngData []byte, id uint32) (string, error) {
	return TransmitPNG(pngData, id), nil
}

func (k *KittyProtocol) Place(id uint32, row, col, width, height int) string {
	return PlaceImage(id, row, col, width, height)
}

func (k *KittyProtocol) Delete(id uint32) string {
	return DeleteImage(id)
}

func (k *KittyProtocol) CellSize() (width, height int) {
	if k.cellW <= 0 || k.cellH <= 0 {
		return defaultCellW, defaultCellH
	}
	return k.cellW, k.cellH
}

// EncodePNG encodes img as PNG. Cards are two-color, so the default
// compression level keeps the payload small.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// TransmitImage returns the command that sends img to the terminal without
// displaying it (a=t).
func TransmitImage(img image.Image, id uint32) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return TransmitPNG(data, id), nil
}

// TransmitPNG returns the command that sends PNG data to the terminal,
// split into chunks. Only the first chunk carries the parameters:
// f=100 PNG, i=ID, q=2 quiet; m=1 while more chunks follow.
func TransmitPNG(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded) || i == 0; i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}

// PlaceImage returns the escape sequence that displays a transmitted image
// at row, col (1-based) over width x height cells. The fixed placement ID
// replaces the previous placement instead of stacking a new one.
func PlaceImage(id uint32, row, col, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// DeleteImage returns the escape sequence that frees a transmitted image
// and clears its placements.
func DeleteImage(id uint32) string {
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}

// BlankPlaceholder returns width x height cells of spaces so lipgloss can
// lay out the image area without measuring escape sequences.
func BlankPlaceholder(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
