package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"skorpik-value/models"
)

// CatalogRepository reads the item catalog from the items table
type CatalogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sql.DB, logger *zap.Logger) *CatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogRepository{db: db, logger: logger}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// LoadItems retrieves every item in catalog order
func (r *CatalogRepository) LoadItems(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT
			id,
			name,
			rarity,
			value,
			demand,
			COALESCE(status, 'stable') as status,
			COALESCE(image, '') as image
		FROM items
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("❌ LoadItems: query failed", zap.Error(err))
		return nil, errors.Wrap(err, "failed to query items")
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var rarity, status string
		if err := rows.Scan(&item.ID, &item.Name, &rarity, &item.Value, &item.Demand, &status, &item.Image); err != nil {
			return nil, errors.Wrap(err, "failed to scan item")
		}
		item.Rarity = models.Rarity(rarity)
		item.Status = models.ParseStatus(status)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate items")
	}

	r.logger.Info("✓ LoadItems: fetched catalog", zap.Int("count", len(items)))
	return items, nil
}

// UpdateImage stores the image reference found for an item
func (r *CatalogRepository) UpdateImage(ctx context.Context, itemID, image string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE items SET image = $1 WHERE id = $2`, image, itemID)
	if err != nil {
		return errors.Wrapf(err, "failed to update image for item %q", itemID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.logger.Warn("UpdateImage: no item matched", zap.String("itemId", itemID))
	}
	return nil
}
