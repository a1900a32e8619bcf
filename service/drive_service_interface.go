package service

import "skorpik-value/models"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListItemImages(folderID string) ([]models.ItemImage, error)
	DownloadImage(fileID string) ([]byte, error)
}
