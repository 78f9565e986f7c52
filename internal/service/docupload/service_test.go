package docupload_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"data-catalog/internal/domain"
	"data-catalog/internal/pkg/logger"
	"data-catalog/internal/repository/memory"
	"data-catalog/internal/service/docupload"
	"data-catalog/internal/service/product"
)

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *mockObjectStore) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

// failingUpdates rejects every product update.
type failingUpdates struct {
	product.Service
}

func (failingUpdates) Update(context.Context, string, int64, domain.UpdateProductInput) (*domain.DataProduct, error) {
	return nil, errors.New("catalog write failed")
}

func setup(t *testing.T) (product.Service, *domain.DataProduct) {
	t.Helper()
	products := product.NewService(memory.NewRepositories(), product.Options{})
	p, err := products.Create(context.Background(), "", domain.CreateProductInput{
		Name:          "Credit Score",
		Type:          domain.TypeTraditionalAI,
		Domain:        domain.DomainFinance,
		Status:        domain.StatusActive,
		Owner:         "Risk",
		OwnerInitials: "RK",
	})
	require.NoError(t, err)
	return products, p
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores object and links it", func(t *testing.T) {
		products, p := setup(t)
		store := new(mockObjectStore)
		svc := docupload.NewService(store, products, "catalog-docs", "http://files.local/", nil)

		store.On("PutObject", ctx, "catalog-docs",
			mock.MatchedBy(func(name string) bool {
				return strings.HasPrefix(name, "products/1/") && strings.HasSuffix(name, "-model-card.pdf")
			}),
			mock.Anything, int64(4),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/pdf" }),
		).Return(minio.UploadInfo{}, nil).Once()

		updated, err := svc.Upload(ctx, "risk@example.com", p.ID, docupload.UploadInput{
			FileName:    "../model card.pdf",
			Size:        4,
			ContentType: "application/pdf",
			Reader:      strings.NewReader("%PDF"),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.DocumentationURL)
		assert.True(t, strings.HasPrefix(*updated.DocumentationURL, "http://files.local/catalog-docs/products/1/"))
		store.AssertExpectations(t)
	})

	t.Run("Unknown product uploads nothing", func(t *testing.T) {
		products, _ := setup(t)
		store := new(mockObjectStore)
		svc := docupload.NewService(store, products, "catalog-docs", "http://files.local", nil)

		_, err := svc.Upload(ctx, "", 77, docupload.UploadInput{FileName: "a.txt", Reader: strings.NewReader("")})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Storage failure", func(t *testing.T) {
		products, p := setup(t)
		store := new(mockObjectStore)
		svc := docupload.NewService(store, products, "catalog-docs", "http://files.local", nil)
		store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("bucket offline")).Once()

		_, err := svc.Upload(ctx, "", p.ID, docupload.UploadInput{FileName: "a.txt", Reader: strings.NewReader("x"), Size: 1})
		assert.ErrorContains(t, err, "bucket offline")

		current, err := products.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, current.DocumentationURL)
	})

	t.Run("Without object storage", func(t *testing.T) {
		products, p := setup(t)
		svc := docupload.NewService(nil, products, "catalog-docs", "", nil)

		_, err := svc.Upload(ctx, "", p.ID, docupload.UploadInput{FileName: "a.txt", Reader: strings.NewReader("x")})
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	})

	t.Run("Failed link removes the object and logs cleanup errors", func(t *testing.T) {
		products, p := setup(t)
		store := new(mockObjectStore)
		core, logs := observer.New(zapcore.WarnLevel)
		log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
		svc := docupload.NewService(store, failingUpdates{products}, "catalog-docs", "http://files.local", log)

		store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil).Once()
		store.On("RemoveObject", mock.Anything, "catalog-docs", mock.Anything, mock.Anything).
			Return(errors.New("permission denied")).Once()

		_, err := svc.Upload(ctx, "", p.ID, docupload.UploadInput{FileName: "a.txt", Reader: strings.NewReader("x"), Size: 1})
		assert.ErrorContains(t, err, "catalog write failed")
		store.AssertExpectations(t)

		entries := logs.FilterMessage("failed to remove orphaned documentation object").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "permission denied", entries[0].ContextMap()["error"])
	})
}
