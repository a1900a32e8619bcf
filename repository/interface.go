package repository

import (
	"context"

	"skorpik-value/models"
)

// StateStoreInterface is the key-value store that remembers view state across sessions
type StateStoreInterface interface {
	// Get returns the stored value and whether the key was present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CatalogRepositoryInterface defines the contract for catalog item storage
type CatalogRepositoryInterface interface {
	LoadItems(ctx context.Context) ([]models.Item, error)
	UpdateImage(ctx context.Context, itemID, image string) error
}
