package media

import (
	"errors"
	"time"
)

var (
	// ErrFileTooLarge is returned for uploads over the configured ceiling.
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
	// ErrUnsupportedType is returned for MIME types outside the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Purpose selects where an uploaded video is stored. Images ignore it.
type Purpose string

const (
	PurposeBackground Purpose = "background"
	PurposeIntro      Purpose = "intro"
	PurposeWin        Purpose = "win"
	PurposeOther      Purpose = "other"
)

// Key prefixes in listing order.
const (
	PrefixBackgrounds = "backgrounds/"
	PrefixIntroVideos = "videos/intro/"
	PrefixWinVideos   = "videos/win/"
	PrefixOtherVideos = "videos/other/"
)

var Prefixes = []string{PrefixBackgrounds, PrefixIntroVideos, PrefixWinVideos, PrefixOtherVideos}

// PresignExpiry is how long a presigned upload URL stays valid.
const PresignExpiry = 15 * time.Minute

// UploadedFile describes an object in the media bucket.
type UploadedFile struct {
	Key        string `json:"key" msgpack:"key"`
	URL        string `json:"url" msgpack:"url"`
	Filename   string `json:"filename" msgpack:"filename"`
	MimeType   string `json:"mimeType" msgpack:"mimeType"`
	Size       int64  `json:"size" msgpack:"size"`
	UploadedAt string `json:"uploadedAt" msgpack:"uploadedAt"`
}

// PresignedUpload lets a browser PUT a file straight into the bucket.
type PresignedUpload struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Deleted is the payload of a media-deleted event.
type Deleted struct {
	Key string `msgpack:"key"`
}
