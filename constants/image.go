package constants

import (
	"strings"
	"time"
)

// MaxImagesPerJob caps the number of pages processed per job. References
// beyond the cap are ignored, not queued.
const MaxImagesPerJob = 10

// MaxImageBytes caps a single page payload before transport encoding.
const MaxImageBytes = 20 << 20

// Fetch behavior for the object store.
const (
	FetchTimeout    = 15 * time.Second
	FetchRetries    = 2
	FetchRetryDelay = 500 * time.Millisecond
)

// ResolveWorkers bounds concurrent image resolution within one job.
const ResolveWorkers = 4

// AllowedExtensions holds the accepted page extensions for exam uploads.
var AllowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
	"pdf":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MIMEForExt maps a normalized extension to the MIME type declared in the
// data URL. Unknown extensions fall back to JPEG, which every vision
// endpoint accepts.
func MIMEForExt(ext string) string {
	switch NormalizeExt(ext) {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}
