package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
)

func TestItemImagesFromFiles(t *testing.T) {
	files := []*drive.File{
		{Id: "f1", Name: "Golden-Scorpion.PNG", MimeType: "image/png"},
		{Id: "f2", Name: "notes.txt", MimeType: "text/plain"},
		{Id: "f3", Name: "pass1.jpg", MimeType: "image/jpeg"},
		{Id: "f4", Name: "weird", MimeType: "image/png"},
	}

	images := itemImagesFromFiles(files, zap.NewNop())
	require.Len(t, images, 2)
	assert.Equal(t, "golden-scorpion", images[0].ItemID)
	assert.Equal(t, "f1", images[0].FileID)
	assert.Equal(t, "https://drive.google.com/uc?id=f1", images[0].ImageURL)
	assert.Equal(t, "pass1", images[1].ItemID)
}

func TestDriveFileIDFromURL(t *testing.T) {
	id, ok := DriveFileIDFromURL(DriveImageURL("abc-123_X"))
	require.True(t, ok)
	assert.Equal(t, "abc-123_X", id)

	_, ok = DriveFileIDFromURL("https://example.com/x.png")
	assert.False(t, ok)
	_, ok = DriveFileIDFromURL("https://drive.google.com/uc?id=")
	assert.False(t, ok)
}
