// internal/service/media/media.go
package media

import (
	"context"
	"fmt"
	"io"
	"sync"

	"garimoto-service/internal/domain/vehicle"
	"garimoto-service/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// maxConcurrentUploads bounds parallel writes to the image store.
const maxConcurrentUploads = 4

// Inventory is the slice of the inventory service the media workflow needs.
type Inventory interface {
	GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error)
	AttachImages(ctx context.Context, id string, images []vehicle.Image) (*vehicle.Vehicle, error)
	RemoveImage(ctx context.Context, id, imageID string) (*vehicle.Vehicle, *vehicle.Image, error)
	SetFeaturedImage(ctx context.Context, id, imageID string) (*vehicle.Vehicle, error)
}

// UploadFile is one pending upload. Open is called at most once, from the
// worker goroutine that processes the file.
type UploadFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// UploadResult reports the outcome for one file. Failures are per-file: one
// bad upload never voids the batch.
type UploadResult struct {
	Filename string         `json:"filename"`
	Image    *vehicle.Image `json:"image,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type MediaService struct {
	inventory Inventory
	store     storage.ImageStore
	maxBytes  int64
	sem       *semaphore.Weighted
	logger    *zap.Logger
}

func NewMediaService(inventory Inventory, store storage.ImageStore, maxBytes int64, logger *zap.Logger) *MediaService {
	return &MediaService{
		inventory: inventory,
		store:     store,
		maxBytes:  maxBytes,
		sem:       semaphore.NewWeighted(maxConcurrentUploads),
		logger:    logger,
	}
}

// UploadImages stores a batch of files in parallel and attaches the
// successful ones to the vehicle. Results come back in input order, one per
// file, so the admin form can show exactly which uploads failed.
func (s *MediaService) UploadImages(ctx context.Context, vehicleID string, files []UploadFile) (*vehicle.Vehicle, []UploadResult, error) {
	if _, err := s.inventory.GetVehicle(ctx, vehicleID); err != nil {
		return nil, nil, err
	}

	results := make([]UploadResult, len(files))
	var wg sync.WaitGroup

	for i, f := range files {
		wg.Add(1)
		go func(i int, f UploadFile) {
			defer wg.Done()
			results[i] = s.uploadOne(ctx, f)
		}(i, f)
	}
	wg.Wait()

	images := make([]vehicle.Image, 0, len(files))
	for _, r := range results {
		if r.Image != nil {
			images = append(images, *r.Image)
		}
	}

	if len(images) == 0 {
		return nil, results, nil
	}

	v, err := s.inventory.AttachImages(ctx, vehicleID, images)
	if err != nil {
		// The objects are stored but unreferenced; remove them so a failed
		// attach leaves nothing behind.
		for _, img := range images {
			if rmErr := s.store.Remove(context.Background(), img.ID); rmErr != nil {
				s.logger.Warn("failed to remove orphaned upload",
					zap.String("image_id", img.ID), zap.Error(rmErr))
			}
		}
		return nil, nil, err
	}

	s.logger.Info("images uploaded",
		zap.String("vehicle_id", vehicleID),
		zap.Int("requested", len(files)),
		zap.Int("stored", len(images)),
	)

	return v, results, nil
}

func (s *MediaService) uploadOne(ctx context.Context, f UploadFile) UploadResult {
	res := UploadResult{Filename: f.Filename}

	if s.maxBytes > 0 && f.Size > s.maxBytes {
		res.Error = fmt.Sprintf("file exceeds the %d byte upload limit", s.maxBytes)
		return res
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		res.Error = err.Error()
		return res
	}
	defer s.sem.Release(1)

	r, err := f.Open()
	if err != nil {
		res.Error = fmt.Sprintf("failed to open upload: %v", err)
		return res
	}
	defer r.Close()

	id, url, err := s.store.Save(ctx, f.Filename, r)
	if err != nil {
		s.logger.Warn("upload failed", zap.String("filename", f.Filename), zap.Error(err))
		res.Error = err.Error()
		return res
	}

	res.Image = &vehicle.Image{ID: id, URL: url}
	return res
}

// RemoveImage detaches an image from the vehicle and deletes the stored
// object. Object deletion is best effort; the record is authoritative.
func (s *MediaService) RemoveImage(ctx context.Context, vehicleID, imageID string) (*vehicle.Vehicle, error) {
	v, removed, err := s.inventory.RemoveImage(ctx, vehicleID, imageID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Remove(ctx, removed.ID); err != nil {
		s.logger.Warn("failed to remove stored image",
			zap.String("image_id", removed.ID), zap.Error(err))
	}

	return v, nil
}

// SetFeatured designates one attached image as the featured one.
func (s *MediaService) SetFeatured(ctx context.Context, vehicleID, imageID string) (*vehicle.Vehicle, error) {
	return s.inventory.SetFeaturedImage(ctx, vehicleID, imageID)
}
