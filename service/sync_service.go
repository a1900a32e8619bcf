package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"skorpik-value/models"
	"skorpik-value/repository"
)

// SyncStats summarises one image sync run
type SyncStats struct {
	Total     int `json:"total"`     // images seen in Drive
	Updated   int `json:"updated"`   // items that received an image
	Skipped   int `json:"skipped"`   // items that already had one
	Unmatched int `json:"unmatched"` // images named after no known item
}

// SyncService fills missing item images from a Google Drive folder
// Implements SyncServiceInterface
type SyncService struct {
	driveService DriveServiceInterface
	repository   repository.CatalogRepositoryInterface
	logger       *zap.Logger
}

// NewSyncService creates a new SyncService. repo may be nil for file-backed
// catalogs, in which case images are only applied in memory.
func NewSyncService(driveService DriveServiceInterface, repo repository.CatalogRepositoryInterface, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		driveService: driveService,
		repository:   repo,
		logger:       logger,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

func (s *SyncService) SyncItemImages(ctx context.Context, folderID string, items []models.Item) ([]models.Item, SyncStats, error) {
	s.logger.Info("🔄 SyncItemImages: starting", zap.String("folderId", folderID))

	images, err := s.driveService.ListItemImages(folderID)
	if err != nil {
		return nil, SyncStats{}, errors.Wrap(err, "failed to list item images from Drive")
	}

	out := make([]models.Item, len(items))
	copy(out, items)

	byID := make(map[string]int, len(out))
	for i, item := range out {
		byID[strings.ToLower(item.ID)] = i
	}

	stats := SyncStats{Total: len(images)}
	for _, img := range images {
		idx, ok := byID[img.ItemID]
		if !ok {
			s.logger.Debug("SyncItemImages: no item for image", zap.String("file", img.FileName))
			stats.Unmatched++
			continue
		}
		if out[idx].Image != "" {
			stats.Skipped++
			continue
		}

		if s.repository != nil {
			if err := s.repository.UpdateImage(ctx, out[idx].ID, img.ImageURL); err != nil {
				s.logger.Error("❌ SyncItemImages: failed to store image", zap.String("itemId", out[idx].ID), zap.Error(err))
				continue
			}
		}
		out[idx].Image = img.ImageURL
		stats.Updated++
	}

	s.logger.Info("🎉 SyncItemImages: completed",
		zap.Int("total", stats.Total),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("unmatched", stats.Unmatched),
	)
	return out, stats, nil
}
