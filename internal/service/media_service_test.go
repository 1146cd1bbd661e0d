package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/logger"
)

// fakeStorage is an in-memory stand-in for the S3 layer.
type fakeStorage struct {
	objects     map[string][]byte
	presignErr  error
	deleted     []string
	uploadedKey string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, objectKey, _ string, data []byte) (string, error) {
	f.objects[objectKey] = data
	f.uploadedKey = objectKey
	return "https://bucket.example.com/" + objectKey, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	delete(f.objects, objectKey)
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, objectKey string) (bool, error) {
	_, ok := f.objects[objectKey]
	return ok, nil
}

func (f *fakeStorage) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://signed.example.com/upload/" + objectKey, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://signed.example.com/" + objectKey, nil
}

func newMediaService(t *testing.T) (*testEnv, *fakeStorage, MediaService) {
	t.Helper()
	env := newTestEnv(t)
	fs := newFakeStorage()
	return env, fs, NewMediaService(env.mediaRepo, fs, logger.NewNop())
}

func TestMediaUpsertIsStableByFilePath(t *testing.T) {
	_, _, svc := newMediaService(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, UpsertMediaInput{
		FilePath: "images/exercises/squat.png",
		Folder:   "images/exercises",
		URL:      "https://bucket.example.com/images/exercises/squat.png",
		Name:     "Squat",
	})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, UpsertMediaInput{
		FilePath:    "images/exercises/squat.png",
		Folder:      "images/exercises",
		URL:         "https://bucket.example.com/images/exercises/squat.png",
		Name:        "Back Squat",
		Description: "demo image",
	})
	require.NoError(t, err)

	// Same row, refreshed fields.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Back Squat", second.Name)
	assert.Equal(t, "demo image", second.Description)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMediaUpsertRejectsEmptyPath(t *testing.T) {
	_, _, svc := newMediaService(t)

	_, err := svc.Upsert(context.Background(), UpsertMediaInput{FilePath: "   "})
	assert.ErrorIs(t, err, ErrInvalidFilePath)
}

func TestMediaMissingReportsDrift(t *testing.T) {
	_, fs, svc := newMediaService(t)
	ctx := context.Background()

	// Three objects in storage: one fully tracked, one with a blank-name
	// row, one with no row at all. A deeper nested object is out of scope.
	fs.objects["images/exercises/squat.png"] = []byte("a")
	fs.objects["images/exercises/bench.png"] = []byte("b")
	fs.objects["images/banners/promo.png"] = []byte("c")
	fs.objects["images/exercises/archive/old/x.png"] = []byte("d")

	_, err := svc.Upsert(ctx, UpsertMediaInput{
		FilePath: "images/exercises/squat.png", Folder: "images/exercises",
		Name: "Squat", Description: "demo",
	})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, UpsertMediaInput{
		FilePath: "images/exercises/bench.png", Folder: "images/exercises",
	})
	require.NoError(t, err)

	findings, err := svc.Missing(ctx, "images")
	require.NoError(t, err)
	require.Len(t, findings, 2)

	byPath := make(map[string]MissingAsset, len(findings))
	for _, f := range findings {
		byPath[f.FilePath] = f
	}
	assert.Equal(t, "incomplete_record", byPath["images/exercises/bench.png"].Reason)
	assert.Equal(t, "no_record", byPath["images/banners/promo.png"].Reason)
}

func TestMediaSignedURLDegradesToStoredURL(t *testing.T) {
	_, fs, svc := newMediaService(t)
	ctx := context.Background()

	asset, err := svc.Upsert(ctx, UpsertMediaInput{
		FilePath: "images/logo.png",
		URL:      "https://bucket.example.com/images/logo.png",
		Name:     "Logo", Description: "brand",
	})
	require.NoError(t, err)

	url, err := svc.SignedURL(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/images/logo.png", url)

	// Presign failures fall back to the stored URL; lookups never degrade.
	fs.presignErr = errors.New("sts unavailable")
	url, err = svc.SignedURL(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/images/logo.png", url)

	_, err = svc.SignedURL(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrMediaAssetNotFound)
}

func TestMediaDeleteRemovesBlobAndRow(t *testing.T) {
	_, fs, svc := newMediaService(t)
	ctx := context.Background()

	fs.objects["images/gone.png"] = []byte("x")
	asset, err := svc.Upsert(ctx, UpsertMediaInput{
		FilePath: "images/gone.png", Name: "Gone", Description: "d",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, asset.ID))
	assert.Contains(t, fs.deleted, "images/gone.png")

	_, err = svc.GetByID(ctx, asset.ID)
	assert.ErrorIs(t, err, ErrMediaAssetNotFound)
}
