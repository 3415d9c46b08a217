package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"garimoto-service/internal/domain/vehicle"
	xerrors "garimoto-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// fakeStore is an in-memory ImageStore. Filenames containing "corrupt" fail
// to save, standing in for a disk or network fault.
type fakeStore struct {
	mu      sync.Mutex
	seq     int
	objects map[string]string
	removed []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}}
}

func (s *fakeStore) Save(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	if strings.Contains(filename, "corrupt") {
		return "", "", fmt.Errorf("short write")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("img-%d", s.seq)
	url := "http://media.test/" + id
	s.objects[id] = url
	return id, url, nil
}

func (s *fakeStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, id)
	s.removed = append(s.removed, id)
	return nil
}

// fakeInventory implements the Inventory slice the media workflow uses.
type fakeInventory struct {
	mu       sync.Mutex
	vehicles map[string]*vehicle.Vehicle
}

func newFakeInventory(ids ...string) *fakeInventory {
	inv := &fakeInventory{vehicles: map[string]*vehicle.Vehicle{}}
	for _, id := range ids {
		inv.vehicles[id] = &vehicle.Vehicle{ID: id, Images: []vehicle.Image{}}
	}
	return inv
}

func (f *fakeInventory) GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return v, nil
}

func (f *fakeInventory) AttachImages(ctx context.Context, id string, images []vehicle.Image) (*vehicle.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	v.Images = vehicle.NormalizeFeatured(append(v.Images, images...))
	return v, nil
}

func (f *fakeInventory) RemoveImage(ctx context.Context, id, imageID string) (*vehicle.Vehicle, *vehicle.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return nil, nil, xerrors.ErrNotFound
	}
	for _, img := range v.Images {
		if img.ID == imageID {
			removed := img
			v.Images = vehicle.RemoveImage(v.Images, imageID)
			return v, &removed, nil
		}
	}
	return nil, nil, xerrors.ErrNotFound
}

func (f *fakeInventory) SetFeaturedImage(ctx context.Context, id, imageID string) (*vehicle.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	if !vehicle.SetFeatured(v.Images, imageID) {
		return nil, xerrors.ErrNotFound
	}
	return v, nil
}

func upload(name string, size int64) UploadFile {
	return UploadFile{
		Filename: name,
		Size:     size,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("bytes")), nil
		},
	}
}

func TestUploadPartialFailure(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInventory("veh-1")
	svc := NewMediaService(inv, newFakeStore(), 0, zap.NewNop())

	v, results, err := svc.UploadImages(ctx, "veh-1", []UploadFile{
		upload("front.jpg", 100),
		upload("corrupt.jpg", 100),
		upload("rear.jpg", 100),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Image == nil || results[2].Image == nil {
		t.Fatalf("expected first and third uploads to succeed: %+v", results)
	}
	if results[1].Error == "" || results[1].Image != nil {
		t.Fatalf("expected second upload to fail: %+v", results[1])
	}

	if len(v.Images) != 2 {
		t.Fatalf("expected 2 attached images, got %d", len(v.Images))
	}
	if v.FeaturedImage() == nil {
		t.Fatal("expected a featured image after attach")
	}
}

func TestUploadEnforcesSizeLimit(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInventory("veh-1")
	svc := NewMediaService(inv, newFakeStore(), 1024, zap.NewNop())

	v, results, err := svc.UploadImages(ctx, "veh-1", []UploadFile{
		upload("huge.jpg", 10<<20),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if results[0].Error == "" {
		t.Fatalf("expected size limit error, got %+v", results[0])
	}
	if v != nil {
		t.Fatal("expected no vehicle change when every upload fails")
	}
}

func TestUploadUnknownVehicle(t *testing.T) {
	svc := NewMediaService(newFakeInventory(), newFakeStore(), 0, zap.NewNop())

	_, _, err := svc.UploadImages(context.Background(), "missing", []UploadFile{upload("a.jpg", 1)})
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveImageDeletesStoredObject(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInventory("veh-1")
	store := newFakeStore()
	svc := NewMediaService(inv, store, 0, zap.NewNop())

	_, results, err := svc.UploadImages(ctx, "veh-1", []UploadFile{upload("a.jpg", 1)})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	imageID := results[0].Image.ID

	v, err := svc.RemoveImage(ctx, "veh-1", imageID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(v.Images) != 0 {
		t.Fatalf("expected no images, got %+v", v.Images)
	}
	if len(store.removed) != 1 || store.removed[0] != imageID {
		t.Fatalf("expected stored object %s removed, got %v", imageID, store.removed)
	}
}
