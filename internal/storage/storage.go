package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"nabta/internal/config"
	"nabta/internal/middleware"
	"nabta/internal/models"
)

// Storage uploads user media to a MinIO bucket. Avatars are timestamped so
// history survives; covers overwrite in place, one per user.
type Storage struct {
	client *minio.Client
	bucket string
	public string
}

// NewStorage connects to MinIO and makes sure the bucket exists.
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg.MinioEndpoint == "" {
		return nil, models.NewConfigError("MINIO_ENDPOINT is not configured")
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.MinioBucket, err)
		}
		middleware.Logger.Info("created object storage bucket", "bucket", cfg.MinioBucket)
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	return &Storage{
		client: client,
		bucket: cfg.MinioBucket,
		public: fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}, nil
}

// UploadAvatar stores a new avatar under avatars/{userID}/{timestamp}_{filename}
// and returns its URL. Earlier avatars stay retrievable.
func (s *Storage) UploadAvatar(ctx context.Context, userID uint, filename string, r io.Reader, size int64, contentType string) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return "", models.NewValidationError("filename is required")
	}
	object := fmt.Sprintf("avatars/%d/%d_%s", userID, time.Now().Unix(), name)
	return s.put(ctx, object, r, size, contentType)
}

// UploadCover stores the user's cover image under covers/{userID},
// overwriting any previous one.
func (s *Storage) UploadCover(ctx context.Context, userID uint, r io.Reader, size int64, contentType string) (string, error) {
	object := fmt.Sprintf("covers/%d", userID)
	return s.put(ctx, object, r, size, contentType)
}

func (s *Storage) put(ctx context.Context, object string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", models.NewUpstreamError("object storage upload failed", err)
	}
	return s.public + "/" + object, nil
}

// sanitizeFilename strips path components and characters that break object
// keys or URLs.
func sanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	// A name of nothing but dots and underscores carries no information.
	// Otherwise keep the substituted runes intact (a fully non-ASCII
	// basename becomes underscores but retains its extension) and only
	// strip leading dots so keys cannot masquerade as relative paths.
	s := b.String()
	if strings.Trim(s, "._") == "" {
		return ""
	}
	return strings.TrimLeft(s, ".")
}
