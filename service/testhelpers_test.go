package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"skorpik-value/models"
)

// pngBytes encodes a solid w×h PNG
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 220, G: 38, B: 38, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeDrive struct {
	images    []models.ItemImage
	files     map[string][]byte
	listErr   error
	downloads []string
}

func (f *fakeDrive) ListItemImages(string) ([]models.ItemImage, error) {
	return f.images, f.listErr
}

func (f *fakeDrive) DownloadImage(fileID string) ([]byte, error) {
	f.downloads = append(f.downloads, fileID)
	data, ok := f.files[fileID]
	if !ok {
		return nil, errNotFound
	}
	return data, nil
}
