package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skorpik-value/models"
)

type fakeCatalogRepo struct {
	updates map[string]string
	failFor string
}

func (r *fakeCatalogRepo) LoadItems(context.Context) ([]models.Item, error) { return nil, nil }

func (r *fakeCatalogRepo) UpdateImage(_ context.Context, itemID, image string) error {
	if itemID == r.failFor {
		return errors.New("write failed")
	}
	r.updates[itemID] = image
	return nil
}

func TestSyncItemImages(t *testing.T) {
	drive := &fakeDrive{images: []models.ItemImage{
		{ItemID: "scorp", FileID: "f1", FileName: "Scorp.png", ImageURL: DriveImageURL("f1")},
		{ItemID: "pass1", FileID: "f2", FileName: "pass1.png", ImageURL: DriveImageURL("f2")},
		{ItemID: "ghost", FileID: "f3", FileName: "ghost.png", ImageURL: DriveImageURL("f3")},
	}}
	repo := &fakeCatalogRepo{updates: map[string]string{}}
	items := []models.Item{
		{ID: "Scorp", Name: "Golden Scorpion"},
		{ID: "pass1", Name: "Season Pass", Image: "https://cdn/pass.png"},
		{ID: "crate", Name: "Crate"},
	}

	out, stats, err := NewSyncService(drive, repo, nil).SyncItemImages(context.Background(), "folder", items)
	require.NoError(t, err)

	assert.Equal(t, SyncStats{Total: 3, Updated: 1, Skipped: 1, Unmatched: 1}, stats)
	assert.Equal(t, DriveImageURL("f1"), out[0].Image)
	assert.Equal(t, "https://cdn/pass.png", out[1].Image)
	assert.Empty(t, out[2].Image)
	assert.Empty(t, items[0].Image, "input must not be modified")
	assert.Equal(t, map[string]string{"Scorp": DriveImageURL("f1")}, repo.updates)
}

func TestSyncItemImagesWithoutRepository(t *testing.T) {
	drive := &fakeDrive{images: []models.ItemImage{{ItemID: "a", FileID: "f1", ImageURL: DriveImageURL("f1")}}}

	out, stats, err := NewSyncService(drive, nil, nil).SyncItemImages(context.Background(), "folder", []models.Item{{ID: "a"}})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, DriveImageURL("f1"), out[0].Image)
}

func TestSyncItemImagesRepositoryFailureKeepsItem(t *testing.T) {
	drive := &fakeDrive{images: []models.ItemImage{{ItemID: "a", FileID: "f1", ImageURL: DriveImageURL("f1")}}}
	repo := &fakeCatalogRepo{updates: map[string]string{}, failFor: "a"}

	out, stats, err := NewSyncService(drive, repo, nil).SyncItemImages(context.Background(), "folder", []models.Item{{ID: "a"}})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Updated)
	assert.Empty(t, out[0].Image)
}

func TestSyncItemImagesListError(t *testing.T) {
	drive := &fakeDrive{listErr: errors.New("quota exceeded")}
	_, _, err := NewSyncService(drive, nil, nil).SyncItemImages(context.Background(), "folder", nil)
	assert.Error(t, err)
}
