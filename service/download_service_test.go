package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skorpik-value/models"
)

func TestDownloadAllImagesWarmsCache(t *testing.T) {
	drive := &fakeDrive{
		images: []models.ItemImage{
			{ItemID: "scorp", FileID: "f1", FileName: "scorp.png"},
			{ItemID: "broken", FileID: "f2", FileName: "broken.png"},
			{ItemID: "gone", FileID: "f3", FileName: "gone.png"},
		},
		files: map[string][]byte{
			"f1": pngBytes(t, 120, 120),
			"f2": []byte("not an image"),
		},
	}
	cache := NewThumbCache(t.TempDir())
	svc := NewDownloadService(drive, cache, 60, nil)

	stats, err := svc.DownloadAllImages(context.Background(), "folder")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Downloaded)
	assert.Len(t, stats.Errors, 2)

	_, ok := cache.Read("scorp", 60)
	assert.True(t, ok)
	_, ok = cache.Read("scorp", MediumSize)
	assert.True(t, ok)

	drive.downloads = nil
	stats, err = svc.DownloadAllImages(context.Background(), "folder")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.NotContains(t, drive.downloads, "f1")
}
