package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var (
	ErrSyncParamsMissing  = errors.New("folder_id and event_id are required")
	ErrFolderListerAbsent = errors.New("folder lister is not configured")
	ErrFolderListFailed   = errors.New("folder listing failed")
)

// FolderLister lists the image files of a remote folder.
type FolderLister interface {
	ListImages(ctx context.Context, folderID string) ([]RemoteFile, error)
}

// DriveFolderLister lists images through the Google Drive v3 API.
type DriveFolderLister struct {
	service *drive.Service
}

// NewDriveFolderLister builds a Drive client from a service-account credentials file or an API key.
// The credentials file wins when both are set.
func NewDriveFolderLister(ctx context.Context, apiKey, credentialsFile string, extra ...option.ClientOption) (*DriveFolderLister, error) {
	opts := make([]option.ClientOption, 0, len(extra)+1)

	switch {
	case strings.TrimSpace(credentialsFile) != "":
		data, err := os.ReadFile(strings.TrimSpace(credentialsFile))
		if err != nil {
			return nil, fmt.Errorf("read drive credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, drive.DriveReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("parse drive credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	case strings.TrimSpace(apiKey) != "":
		opts = append(opts, option.WithAPIKey(strings.TrimSpace(apiKey)))
	}
	opts = append(opts, extra...)

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveFolderLister{service: svc}, nil
}

// ListImages returns every non-trashed image directly inside folderID, following all result pages.
func (l *DriveFolderLister) ListImages(ctx context.Context, folderID string) ([]RemoteFile, error) {
	folderID = strings.TrimSpace(folderID)
	query := fmt.Sprintf("'%s' in parents and mimeType contains 'image/' and trashed = false", strings.ReplaceAll(folderID, "'", `\'`))

	files := make([]RemoteFile, 0)
	err := l.service.Files.List().
		Q(query).
		Fields(googleapi.Field("nextPageToken, files(id, name, mimeType)")).
		OrderBy("name").
		PageSize(1000).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				files = append(files, RemoteFile{ID: f.Id, Name: f.Name})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list drive folder %s: %w", folderID, err)
	}
	return files, nil
}

// GallerySyncService imports a remote folder into an event's photos.
type GallerySyncService struct {
	gallery *GalleryService
	lister  FolderLister
}

// NewGallerySyncService creates a GallerySyncService. lister may be nil when Drive is not configured.
func NewGallerySyncService(gallery *GalleryService, lister FolderLister) *GallerySyncService {
	return &GallerySyncService{gallery: gallery, lister: lister}
}

// Sync lists the folder and replaces the event's photos with its contents.
// The listing happens before any write, so a Drive failure leaves existing photos untouched.
func (s *GallerySyncService) Sync(ctx context.Context, folderID string, eventID uint) (PhotoSyncResult, error) {
	folderID = strings.TrimSpace(folderID)
	if folderID == "" || eventID == 0 {
		return PhotoSyncResult{}, ErrSyncParamsMissing
	}
	if _, err := s.gallery.GetEvent(eventID); err != nil {
		return PhotoSyncResult{}, err
	}
	if s.lister == nil {
		return PhotoSyncResult{}, ErrFolderListerAbsent
	}

	files, err := s.lister.ListImages(ctx, folderID)
	if err != nil {
		return PhotoSyncResult{}, fmt.Errorf("%w: %v", ErrFolderListFailed, err)
	}

	result, err := s.gallery.ReplaceEventPhotos(eventID, files)
	if err != nil {
		return result, err
	}

	log.Printf("[gallery] synced folder %s into event %d: %d photos (+%d -%d ~%d)",
		folderID, eventID, len(result.Photos), result.Added, result.Removed, result.Renamed)
	return result, nil
}
