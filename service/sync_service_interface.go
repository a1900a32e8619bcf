package service

import (
	"context"

	"skorpik-value/models"
)

// SyncServiceInterface defines the contract for filling item images from Drive
type SyncServiceInterface interface {
	// SyncItemImages returns a copy of items where every item without an image
	// gets the Drive image named after it, plus the sync stats.
	SyncItemImages(ctx context.Context, folderID string, items []models.Item) ([]models.Item, SyncStats, error)
}
