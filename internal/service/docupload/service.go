package docupload

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"data-catalog/internal/domain"
	"data-catalog/internal/pkg/logger"
	"data-catalog/internal/service/product"
)

// ObjectStore is the subset of *minio.Client used for documentation files.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type UploadInput struct {
	FileName    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type Service interface {
	// Upload stores a documentation file and points the product's documentationUrl at it.
	Upload(ctx context.Context, actor string, productID int64, input UploadInput) (*domain.DataProduct, error)
}

type service struct {
	store      ObjectStore
	products   product.Service
	bucket     string
	publicBase string
	log        *logger.Logger
}

// NewService returns a documentation service. A nil store makes every upload
// fail with domain.ErrStorageUnavailable.
func NewService(store ObjectStore, products product.Service, bucket, publicBase string, log *logger.Logger) Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &service{
		store:      store,
		products:   products,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		log:        log,
	}
}

func (s *service) Upload(ctx context.Context, actor string, productID int64, input UploadInput) (*domain.DataProduct, error) {
	if s.store == nil {
		return nil, domain.ErrStorageUnavailable
	}

	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("products/%d/%s-%s", productID, uuid.New().String(), sanitizeFileName(input.FileName))
	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.store.PutObject(ctx, s.bucket, objectName, input.Reader, input.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, objectName)
	updated, err := s.products.Update(ctx, actor, productID, domain.UpdateProductInput{
		DocumentationURL: domain.NullableString{Value: &url, Set: true},
	})
	if err != nil {
		if rmErr := s.store.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); rmErr != nil {
			s.log.Warn("failed to remove orphaned documentation object", "object", objectName, "error", rmErr)
		}
		return nil, err
	}
	return updated, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeFileChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "document"
	}
	return name
}
