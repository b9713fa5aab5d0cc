package media

import (
	"context"
	"io"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mauv0809/dna-dashboard/internal/pubsub"
)

// Store manages the media files of the game in the bucket.
type Store interface {
	Upload(ctx context.Context, body io.Reader, size int64, mimeType, originalName string, purpose Purpose) (*UploadedFile, error)
	List(ctx context.Context) ([]UploadedFile, error)
	Delete(ctx context.Context, key string) error
	PresignUpload(ctx context.Context, filename, mimeType string, purpose Purpose) (*PresignedUpload, error)
}

// S3API is the subset of the S3 client the store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Presigner signs PUT requests for direct uploads.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Publisher announces media changes to game clients.
type Publisher interface {
	Publish(ctx context.Context, event pubsub.EventType, payload any) error
}

// Notifier tells operators about media changes.
type Notifier interface {
	MediaUploaded(ctx context.Context, file UploadedFile) error
	MediaDeleted(ctx context.Context, key string) error
}
