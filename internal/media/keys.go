package media

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// AllowedMIMETypes lists the MIME types accepted for upload.
var AllowedMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/jpg",
	"image/webp",
	"image/gif",
	"video/mp4",
	"video/webm",
	"video/ogg",
}

var mimeByExt = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"ogg":  "video/ogg",
}

// Validate rejects files over limit bytes or with a MIME type outside the allow-list.
// A limit of zero or less disables the size check.
func Validate(size int64, mimeType string, limit int64) error {
	if limit > 0 && size > limit {
		return TooLargeError(limit)
	}
	if !slices.Contains(AllowedMIMETypes, mimeType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
	}
	return nil
}

// TooLargeError reports ErrFileTooLarge together with the limit.
func TooLargeError(limit int64) error {
	return fmt.Errorf("%w of %s", ErrFileTooLarge, formatLimit(limit))
}

func formatLimit(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// PrefixFor picks the key prefix for a file of the given type and purpose.
func PrefixFor(mimeType string, purpose Purpose) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return PrefixBackgrounds
	case strings.HasPrefix(mimeType, "video/"):
		switch purpose {
		case PurposeIntro:
			return PrefixIntroVideos
		case PurposeWin:
			return PrefixWinVideos
		default:
			return PrefixOtherVideos
		}
	}
	return ""
}

// NewKey returns prefix + a random UUID + the extension of originalName, if it has one.
func NewKey(prefix, originalName string) string {
	key := prefix + uuid.NewString()
	if ext := extension(originalName); ext != "" {
		key += "." + ext
	}
	return key
}

// MimeFromKey infers a MIME type from the key's extension.
func MimeFromKey(key string) string {
	if mt, ok := mimeByExt[strings.ToLower(extension(key))]; ok {
		return mt
	}
	return "application/octet-stream"
}

func extension(name string) string {
	return strings.TrimPrefix(path.Ext(path.Base(name)), ".")
}
