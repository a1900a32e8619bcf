package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"skorpik-value/models"
)

// ErrNoImage is returned for items without an image reference
var ErrNoImage = errors.New("item has no image")

// ItemImageService serves catalog item pictures at preview size
type ItemImageService struct {
	fetcher ImageFetcher
	cache   *ThumbCache
	logger  *zap.Logger
}

// NewItemImageService creates a new ItemImageService
func NewItemImageService(fetcher ImageFetcher, cache *ThumbCache, logger *zap.Logger) *ItemImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemImageService{fetcher: fetcher, cache: cache, logger: logger}
}

// MediumImage returns the item image as a JPEG no larger than MediumSize on
// either side. Results are cached under the item id.
func (s *ItemImageService) MediumImage(ctx context.Context, item models.Item) ([]byte, error) {
	if item.Image == "" {
		return nil, errors.Wrapf(ErrNoImage, "item %q", item.ID)
	}
	if data, ok := s.cache.Read(item.ID, MediumSize); ok {
		return data, nil
	}

	raw, err := s.fetcher.Fetch(ctx, item.Image)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch image of %q", item.ID)
	}
	data, err := OptimizeImage(raw)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Save(item.ID, MediumSize, data); err != nil {
		s.logger.Warn("MediumImage: failed to cache image", zap.String("itemId", item.ID), zap.Error(err))
	}
	return data, nil
}
