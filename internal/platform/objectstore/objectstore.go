// Package objectstore wraps the MinIO SDK for the upload endpoints.
// File bytes never pass through the database; the backend either signs
// an upload grant for direct client PUTs or relays multipart uploads
// into the bucket.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yolo-life/yolo-api/internal/config"
	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/platform/logger"
)

// Folder and file-type errors wrap domain.ErrValidation so the API
// layer reports them as client mistakes, not server faults.
var (
	ErrInvalidFolder   = fmt.Errorf("%w: invalid folder", domain.ErrValidation)
	ErrInvalidFileType = fmt.Errorf("%w: invalid file type", domain.ErrValidation)
	ErrFileTooLarge    = fmt.Errorf("%w: file exceeds size limit", domain.ErrValidation)
	ErrEmptyFile       = fmt.Errorf("%w: file is empty", domain.ErrValidation)
)

// UploadGrant authorizes one direct client upload: a presigned PUT URL
// for the generated object key, plus the URL the object will be served
// from once uploaded.
type UploadGrant struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is a MinIO-backed object store bound to one bucket.
type Store struct {
	client *minio.Client
	cfg    config.StorageConfig
	logger *slog.Logger
}

// New constructs the object store from configuration.
func New(cfg config.StorageConfig, log *slog.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("storage access key and secret key are required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if log == nil {
		log = slog.Default()
	}
	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = "us-east-1"
	}

	// Pinning the region keeps presigning local; without it the SDK
	// resolves the bucket location over the network before signing.
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Store{
		client: client,
		cfg:    cfg,
		logger: log.With(slog.String("component", "objectstore")),
	}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
}

// ValidateFolder rejects folder names that could escape or mangle the
// key space: parent references, absolute paths, or characters outside
// the letter, digit, '-', '_' and '/' set.
func ValidateFolder(folder string) error {
	if folder == "" {
		return nil
	}
	if strings.Contains(folder, "..") {
		return ErrInvalidFolder
	}
	if strings.HasPrefix(folder, "/") || strings.HasSuffix(folder, "/") {
		return ErrInvalidFolder
	}
	for _, r := range folder {
		if !isKeyRune(r) && r != '/' {
			return ErrInvalidFolder
		}
	}
	return nil
}

// validateFileType accepts a single key segment, same charset as
// folders but without separators.
func validateFileType(fileType string) error {
	if fileType == "" {
		return nil
	}
	for _, r := range fileType {
		if !isKeyRune(r) {
			return ErrInvalidFileType
		}
	}
	return nil
}

func isKeyRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_':
		return true
	}
	return false
}

// BuildKey generates a collision-resistant object key under
// folder/fileType, keeping the original file extension:
// 20260901T120000_1a2b3c4d.jpg. An empty folder falls back to the
// configured default.
func (s *Store) BuildKey(folder, fileType, filename string) (string, error) {
	if err := ValidateFolder(folder); err != nil {
		return "", err
	}
	if err := validateFileType(fileType); err != nil {
		return "", err
	}
	if folder == "" {
		folder = s.cfg.DefaultFolder
	}

	ext := strings.ToLower(path.Ext(filename))
	stamp := time.Now().UTC().Format("20060102T150405")
	unique := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	name := fmt.Sprintf("%s_%s%s", stamp, unique, ext)

	parts := []string{folder}
	if fileType != "" {
		parts = append(parts, fileType)
	}
	parts = append(parts, name)
	return path.Join(parts...), nil
}

// UploadGrant presigns a PUT for a fresh object key so the client can
// push the bytes straight to the bucket.
func (s *Store) UploadGrant(ctx context.Context, folder, fileType, filename string) (*UploadGrant, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	key, err := s.BuildKey(folder, fileType, filename)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.cfg.UploadTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	signed, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, key, ttl)
	if err != nil {
		log.Error("failed to presign upload",
			slog.String("error", err.Error()),
			slog.String("object_key", key))
		return nil, err
	}

	log.Debug("upload grant issued",
		slog.String("object_key", key),
		slog.Duration("ttl", ttl))

	return &UploadGrant{
		Key:       key,
		UploadURL: signed.String(),
		PublicURL: s.PublicURL(key),
		Method:    "PUT",
		ExpiresAt: time.Now().UTC().Add(ttl),
	}, nil
}

// Upload relays a file into the bucket and returns its public URL.
// Size is checked against the configured limit before any bytes move.
func (s *Store) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if size <= 0 {
		return "", ErrEmptyFile
	}
	if s.cfg.MaxFileSizeBytes > 0 && size > s.cfg.MaxFileSizeBytes {
		return "", ErrFileTooLarge
	}

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Error("failed to upload object",
			slog.String("error", err.Error()),
			slog.String("object_key", key))
		return "", err
	}

	log.Info("object uploaded",
		slog.String("object_key", key),
		slog.Int64("size", size))
	return s.PublicURL(key), nil
}

// Delete removes an object from the bucket.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{})
}

// PublicURL returns the address an uploaded object is served from.
// A configured public base (CDN or reverse proxy) wins over the raw
// endpoint form.
func (s *Store) PublicURL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + key
	}
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   s.cfg.Endpoint,
		Path:   "/" + s.cfg.Bucket + "/" + key,
	}
	return u.String()
}

// MaxFileSize exposes the configured upload size limit.
func (s *Store) MaxFileSize() int64 {
	return s.cfg.MaxFileSizeBytes
}
