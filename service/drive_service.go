package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"skorpik-value/models"
	"skorpik-value/utils"
)

const driveImageURLPrefix = "https://drive.google.com/uc?id="

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
	logger *zap.Logger
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance.
// credentialsJSON takes precedence over credentialsPath, the Service Account JSON file.
func NewDriveService(ctx context.Context, credentialsPath, credentialsJSON string, logger *zap.Logger) (*DriveService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var opt option.ClientOption
	switch {
	case credentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(credentialsJSON))
	case credentialsPath != "":
		opt = option.WithCredentialsFile(credentialsPath)
	default:
		return nil, errors.New("drive credentials not set")
	}

	driveService, err := drive.NewService(ctx, opt, option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create drive service")
	}

	return &DriveService{
		client: driveService,
		logger: logger,
	}, nil
}

// ListItemImages lists the image files of a folder and maps each to the item it is named after
func (ds *DriveService) ListItemImages(folderID string) ([]models.ItemImage, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list files in folder %s", folderID)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	images := itemImagesFromFiles(allFiles, ds.logger)
	ds.logger.Info("📦 ListItemImages: listed folder",
		zap.String("folderId", folderID),
		zap.Int("files", len(allFiles)),
		zap.Int("images", len(images)),
	)
	return images, nil
}

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

func itemImagesFromFiles(files []*drive.File, logger *zap.Logger) []models.ItemImage {
	var images []models.ItemImage
	for _, file := range files {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}

		itemID, err := utils.ParseImageFileName(file.Name)
		if err != nil {
			logger.Warn("ListItemImages: skipping file", zap.String("name", file.Name), zap.Error(err))
			continue
		}

		images = append(images, models.ItemImage{
			ItemID:   itemID,
			FileID:   file.Id,
			FileName: file.Name,
			ImageURL: DriveImageURL(file.Id),
		})
	}
	return images
}

// DownloadImage downloads the raw bytes of a Drive file
func (ds *DriveService) DownloadImage(fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Download()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download file %s", fileID)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", fileID)
	}
	return data, nil
}

// DriveImageURL builds the public URL of a Drive file
func DriveImageURL(fileID string) string {
	return driveImageURLPrefix + url.QueryEscape(fileID)
}

// DriveFileIDFromURL returns the file id of a URL built by DriveImageURL
func DriveFileIDFromURL(ref string) (string, bool) {
	if !strings.HasPrefix(ref, driveImageURLPrefix) {
		return "", false
	}
	id, err := url.QueryUnescape(strings.TrimPrefix(ref, driveImageURLPrefix))
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}
