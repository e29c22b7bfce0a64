package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nuestraboda/rsvp-backend/internal/models"
	"github.com/nuestraboda/rsvp-backend/pkg/payload"
)

type fakePhotoStore struct {
	createErrOn int // 1-based call index that fails, 0 for never
	calls       int
	photos      []*models.Photo
}

func (f *fakePhotoStore) Create(photo *models.Photo) error {
	f.calls++
	if f.createErrOn != 0 && f.calls == f.createErrOn {
		return errors.New("insert failed")
	}
	f.photos = append(f.photos, photo)
	return nil
}

type fakeObjectStorage struct {
	failOn  int // 1-based upload index that fails, 0 for never
	uploads int
	deleted []string
}

func (f *fakeObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.uploads++
	if f.failOn != 0 && f.uploads == f.failOn {
		return "", errors.New("storage unavailable")
	}
	return "https://photos.example/" + key, nil
}

func (f *fakeObjectStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func jpegFile(name string) payload.File {
	return payload.File{FieldName: "photo", Filename: name, MimeType: "image/jpeg", Data: []byte("bytes")}
}

func storeWithRSVP(t *testing.T, id uint) *fakeRSVPStore {
	t.Helper()
	store := newFakeRSVPStore()
	store.rsvps[id] = &models.RSVP{ID: id, Name: "Ana", Email: "ana@example.com"}
	return store
}

func TestUploadBatchAllSucceed(t *testing.T) {
	photos := &fakePhotoStore{}
	objects := &fakeObjectStorage{}
	svc := NewPhotoService(photos, storeWithRSVP(t, 42), objects, zap.NewNop())

	result, err := svc.UploadBatch(context.Background(), 42, []payload.File{
		jpegFile("a.jpg"), jpegFile("b.jpg"), jpegFile("c.jpg"),
	})
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if len(result.URLs) != 3 || result.Failed != 0 {
		t.Errorf("result = %d urls, %d failed; want 3/0", len(result.URLs), result.Failed)
	}
	if len(photos.photos) != 3 {
		t.Errorf("persisted %d photos, want 3", len(photos.photos))
	}
	for _, p := range photos.photos {
		if p.RSVPID != 42 {
			t.Errorf("photo references rsvp %d, want 42", p.RSVPID)
		}
		if p.URL == "" {
			t.Error("photo row created with empty URL")
		}
	}
}

func TestUploadBatchIsolatesFailure(t *testing.T) {
	photos := &fakePhotoStore{}
	objects := &fakeObjectStorage{failOn: 2}
	svc := NewPhotoService(photos, storeWithRSVP(t, 42), objects, zap.NewNop())

	result, err := svc.UploadBatch(context.Background(), 42, []payload.File{
		jpegFile("a.jpg"), jpegFile("b.jpg"), jpegFile("c.jpg"),
	})
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if len(result.URLs) != 2 || result.Failed != 1 {
		t.Errorf("result = %d urls, %d failed; want 2/1", len(result.URLs), result.Failed)
	}
	// the third file must still have been attempted after the second failed
	if objects.uploads != 3 {
		t.Errorf("upload attempts = %d, want 3", objects.uploads)
	}
	if len(photos.photos) != 2 {
		t.Errorf("persisted %d photos, want 2", len(photos.photos))
	}
}

func TestUploadBatchCleansUpOnPersistFailure(t *testing.T) {
	photos := &fakePhotoStore{createErrOn: 1}
	objects := &fakeObjectStorage{}
	svc := NewPhotoService(photos, storeWithRSVP(t, 42), objects, zap.NewNop())

	result, err := svc.UploadBatch(context.Background(), 42, []payload.File{
		jpegFile("a.jpg"), jpegFile("b.jpg"),
	})
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if len(result.URLs) != 1 || result.Failed != 1 {
		t.Errorf("result = %d urls, %d failed; want 1/1", len(result.URLs), result.Failed)
	}
	if len(objects.deleted) != 1 {
		t.Errorf("uploaded object not cleaned up after persist failure, deletions = %v", objects.deleted)
	}
	if len(photos.photos) != 1 {
		t.Errorf("persisted %d photos, want 1", len(photos.photos))
	}
}

func TestUploadBatchMissingRSVPID(t *testing.T) {
	objects := &fakeObjectStorage{}
	svc := NewPhotoService(&fakePhotoStore{}, newFakeRSVPStore(), objects, zap.NewNop())

	_, err := svc.UploadBatch(context.Background(), 0, []payload.File{jpegFile("a.jpg")})
	if !errors.Is(err, ErrMissingRSVPID) {
		t.Errorf("error = %v, want ErrMissingRSVPID", err)
	}
	if objects.uploads != 0 {
		t.Errorf("uploads attempted without an owner id")
	}
}

func TestUploadBatchUnknownRSVP(t *testing.T) {
	objects := &fakeObjectStorage{}
	svc := NewPhotoService(&fakePhotoStore{}, newFakeRSVPStore(), objects, zap.NewNop())

	_, err := svc.UploadBatch(context.Background(), 99, []payload.File{jpegFile("a.jpg")})
	if !errors.Is(err, ErrRSVPNotFound) {
		t.Errorf("error = %v, want ErrRSVPNotFound", err)
	}
	if objects.uploads != 0 {
		t.Errorf("uploads attempted for unknown rsvp")
	}
}

func TestUploadBatchRejectsNonImage(t *testing.T) {
	photos := &fakePhotoStore{}
	objects := &fakeObjectStorage{}
	svc := NewPhotoService(photos, storeWithRSVP(t, 42), objects, zap.NewNop())

	files := []payload.File{
		{FieldName: "photo", Filename: "notes.txt", MimeType: "text/plain", Data: []byte("hi")},
		jpegFile("a.jpg"),
	}
	result, err := svc.UploadBatch(context.Background(), 42, files)
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if len(result.URLs) != 1 || result.Failed != 1 {
		t.Errorf("result = %d urls, %d failed; want 1/1", len(result.URLs), result.Failed)
	}
	if objects.uploads != 1 {
		t.Errorf("non-image reached storage, uploads = %d", objects.uploads)
	}
}

func TestObjectKeySanitizesFilename(t *testing.T) {
	key := objectKey(7, "../../etc passwd?.jpg")
	if strings.Contains(key, "..") || strings.Contains(key, " ") || strings.Contains(key, "?") {
		t.Errorf("object key not sanitized: %q", key)
	}
	if !strings.HasPrefix(key, "rsvps/7/") {
		t.Errorf("object key %q not namespaced under rsvps/7/", key)
	}
}
