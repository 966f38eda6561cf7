// Package qrcode renders share codes for catalog titles.
package qrcode

import (
	"fmt"
	"strings"

	"github.com/Varun5711/cinerate/internal/models"
	"github.com/skip2/go-qrcode"
)

const shareBase = "https://www.themoviedb.org"

// ShareURL is the public page a share code points at.
func ShareURL(kind models.Kind, id string) string {
	section := "movie"
	if kind == models.KindSeries {
		section = "tv"
	}
	return fmt.Sprintf("%s/%s/%s", shareBase, section, id)
}

// Terminal renders url as a QR code using half-block glyphs, two modules
// per text row, so it stays square in a terminal cell grid.
func Terminal(url string) (string, error) {
	qr, err := qrcode.New(url, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	bitmap := qr.Bitmap()
	var sb strings.Builder

	for y := 0; y < len(bitmap); y += 2 {
		for x := 0; x < len(bitmap[y]); x++ {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// WritePNG saves the share code for url as a PNG image.
func WritePNG(url, path string, size int) error {
	if size <= 0 {
		size = 256
	}
	if err := qrcode.WriteFile(url, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("failed to write QR code: %w", err)
	}
	return nil
}
