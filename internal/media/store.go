package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/dna-dashboard/internal/config"
	"github.com/mauv0809/dna-dashboard/internal/metrics"
	"github.com/mauv0809/dna-dashboard/internal/pubsub"
	"golang.org/x/sync/errgroup"
)

// S3Store keeps media in an S3 compatible bucket served through a public CDN.
type S3Store struct {
	client    S3API
	presigner Presigner
	bucket    string
	publicURL string
	maxBytes  int64
	metrics   metrics.Metrics
	publisher Publisher
	notifier  Notifier
	now       func() time.Time
}

var _ Store = (*S3Store)(nil)

// Options configures an S3Store. Publisher and Notifier may be nil.
type Options struct {
	Client    S3API
	Presigner Presigner
	Bucket    string
	PublicURL string
	MaxBytes  int64
	Metrics   metrics.Metrics
	Publisher Publisher
	Notifier  Notifier
}

// NewR2Client creates an S3 client for a Cloudflare R2 account.
func NewR2Client(cfg config.StorageConfig) *s3.Client {
	return s3.New(s3.Options{
		Region:                     "auto",
		BaseEndpoint:               aws.String(cfg.R2Endpoint()),
		Credentials:                credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle:               true,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
}

// NewS3Store creates a store from opts.
func NewS3Store(opts Options) *S3Store {
	return &S3Store{
		client:    opts.Client,
		presigner: opts.Presigner,
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
		maxBytes:  opts.MaxBytes,
		metrics:   opts.Metrics,
		publisher: opts.Publisher,
		notifier:  opts.Notifier,
		now:       time.Now,
	}
}

// PublicURL returns the CDN URL of key.
func (s *S3Store) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

func (s *S3Store) Upload(ctx context.Context, body io.Reader, size int64, mimeType, originalName string, purpose Purpose) (*UploadedFile, error) {
	if err := Validate(size, mimeType, s.maxBytes); err != nil {
		return nil, err
	}

	key := NewKey(PrefixFor(mimeType, purpose), originalName)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(mimeType),
		Metadata:      map[string]string{"originalfilename": originalName},
	})
	if err != nil {
		s.metrics.IncUpstreamErrors()
		log.Error("Error uploading file to bucket", "key", key, "error", err)
		return nil, fmt.Errorf("failed to upload %s: %w", originalName, err)
	}
	s.metrics.IncMediaUploads()

	file := UploadedFile{
		Key:        key,
		URL:        s.PublicURL(key),
		Filename:   originalName,
		MimeType:   mimeType,
		Size:       size,
		UploadedAt: s.now().UTC().Format(time.RFC3339),
	}
	log.Info("Uploaded media file", "key", key, "size", size, "mime_type", mimeType)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, pubsub.EventMediaUploaded, file); err != nil {
			log.Warn("Failed to publish media upload", "key", key, "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.MediaUploaded(ctx, file); err != nil {
			log.Warn("Failed to notify about media upload", "key", key, "error", err)
		}
	}
	return &file, nil
}

// List returns every object under the known prefixes, grouped in prefix order.
func (s *S3Store) List(ctx context.Context) ([]UploadedFile, error) {
	results := make([][]UploadedFile, len(Prefixes))
	g, ctx := errgroup.WithContext(ctx)
	for i, prefix := range Prefixes {
		g.Go(func() error {
			files, err := s.listPrefix(ctx, prefix)
			if err != nil {
				return err
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.IncUpstreamErrors()
		log.Error("Error listing media files", "error", err)
		return nil, err
	}

	all := make([]UploadedFile, 0)
	for _, files := range results {
		all = append(all, files...)
	}
	return all, nil
}

func (s *S3Store) listPrefix(ctx context.Context, prefix string) ([]UploadedFile, error) {
	var files []UploadedFile
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			files = append(files, s.fromObject(obj))
		}
	}
	return files, nil
}

func (s *S3Store) fromObject(obj types.Object) UploadedFile {
	key := aws.ToString(obj.Key)
	uploadedAt := s.now()
	if obj.LastModified != nil {
		uploadedAt = *obj.LastModified
	}
	return UploadedFile{
		Key:        key,
		URL:        s.PublicURL(key),
		Filename:   path.Base(key),
		MimeType:   MimeFromKey(key),
		Size:       aws.ToInt64(obj.Size),
		UploadedAt: uploadedAt.UTC().Format(time.RFC3339),
	}
}

// Delete removes key from the bucket. Deleting a missing object succeeds.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	var missing *types.NoSuchKey
	if err != nil && !errors.As(err, &missing) {
		s.metrics.IncUpstreamErrors()
		log.Error("Error deleting file from bucket", "key", key, "error", err)
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.metrics.IncMediaDeletes()
	log.Info("Deleted media file", "key", key)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, pubsub.EventMediaDeleted, Deleted{Key: key}); err != nil {
			log.Warn("Failed to publish media delete", "key", key, "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.MediaDeleted(ctx, key); err != nil {
			log.Warn("Failed to notify about media delete", "key", key, "error", err)
		}
	}
	return nil
}

// PresignUpload issues a URL the browser can PUT the file to directly.
func (s *S3Store) PresignUpload(ctx context.Context, filename, mimeType string, purpose Purpose) (*PresignedUpload, error) {
	if err := Validate(0, mimeType, 0); err != nil {
		return nil, err
	}
	if s.presigner == nil {
		return nil, errors.New("presigned uploads are not configured")
	}

	key := NewKey(PrefixFor(mimeType, purpose), filename)
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(mimeType),
		Metadata:    map[string]string{"originalfilename": filename},
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		s.metrics.IncUpstreamErrors()
		log.Error("Error generating presigned URL", "key", key, "error", err)
		return nil, fmt.Errorf("failed to presign %s: %w", filename, err)
	}

	return &PresignedUpload{
		URL:       req.URL,
		Key:       key,
		PublicURL: s.PublicURL(key),
		ExpiresAt: s.now().Add(PresignExpiry).UTC(),
	}, nil
}
