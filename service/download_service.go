package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DownloadStats summarises a cache warm-up run
type DownloadStats struct {
	Total      int      `json:"total"`
	Downloaded int      `json:"downloaded"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

// DownloadService downloads Drive images and stores export thumbnails and
// preview images in the cache ahead of time, so nothing waits on Drive.
// Implements DownloadServiceInterface
type DownloadService struct {
	driveService DriveServiceInterface
	cache        *ThumbCache
	thumbSize    int
	logger       *zap.Logger
}

// NewDownloadService creates a new DownloadService instance
func NewDownloadService(driveService DriveServiceInterface, cache *ThumbCache, thumbSize int, logger *zap.Logger) *DownloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if thumbSize <= 0 {
		thumbSize = DefaultThumbSize
	}
	return &DownloadService{
		driveService: driveService,
		cache:        cache,
		thumbSize:    thumbSize,
		logger:       logger,
	}
}

// Ensure DownloadService implements DownloadServiceInterface
var _ DownloadServiceInterface = (*DownloadService)(nil)

// DownloadAllImages fills the cache with the thumbnail and the preview of
// every item image in a folder.
// Already cached items are skipped; per-file failures are collected, not fatal.
func (ds *DownloadService) DownloadAllImages(ctx context.Context, folderID string) (DownloadStats, error) {
	ds.logger.Info("📥 DownloadAllImages: starting", zap.String("folderId", folderID))

	images, err := ds.driveService.ListItemImages(folderID)
	if err != nil {
		return DownloadStats{}, errors.Wrap(err, "failed to list item images from Drive")
	}

	stats := DownloadStats{Total: len(images)}
	for _, img := range images {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		if ds.cached(img.ItemID) {
			stats.Skipped++
			continue
		}

		raw, err := ds.driveService.DownloadImage(img.FileID)
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("download %s (%s): %v", img.FileName, img.FileID, err))
			continue
		}
		thumb, err := Thumbnail(raw, ds.thumbSize)
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("optimize %s: %v", img.FileName, err))
			continue
		}
		medium, err := OptimizeImage(raw)
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("optimize %s: %v", img.FileName, err))
			continue
		}
		if err := ds.cache.Save(img.ItemID, ds.thumbSize, thumb); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("save %s: %v", img.FileName, err))
			continue
		}
		if err := ds.cache.Save(img.ItemID, MediumSize, medium); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("save %s: %v", img.FileName, err))
			continue
		}
		stats.Downloaded++
	}

	ds.logger.Info("🎉 DownloadAllImages: completed",
		zap.Int("downloaded", stats.Downloaded),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", len(stats.Errors)),
		zap.Int("total", stats.Total),
	)
	return stats, nil
}

func (ds *DownloadService) cached(itemID string) bool {
	if _, ok := ds.cache.Read(itemID, ds.thumbSize); !ok {
		return false
	}
	_, ok := ds.cache.Read(itemID, MediumSize)
	return ok
}
