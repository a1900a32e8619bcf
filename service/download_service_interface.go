package service

import "context"

// DownloadServiceInterface defines the contract for warming the thumbnail cache
type DownloadServiceInterface interface {
	DownloadAllImages(ctx context.Context, folderID string) (DownloadStats, error)
}
