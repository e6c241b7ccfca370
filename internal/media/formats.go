package media

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported media format")

var supportedFormats = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".ogg":  true,
	".flac": true,
	".aac":  true,
}

// mimeTypes maps normalized output formats to upload content types.
var mimeTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"flac": "audio/flac",
	"ogg":  "audio/ogg",
	"aac":  "audio/aac",
}

// IsSupported reports whether path has an extension the normalizer accepts
func IsSupported(path string) bool {
	return supportedFormats[strings.ToLower(filepath.Ext(path))]
}

// MIMEType returns the upload content type for a normalized output format
func MIMEType(format string) string {
	if mt, ok := mimeTypes[strings.ToLower(format)]; ok {
		return mt
	}
	return "application/octet-stream"
}

func codecFor(format string) string {
	switch strings.ToLower(format) {
	case "mp3":
		return "libmp3lame"
	case "wav":
		return "pcm_s16le"
	case "flac":
		return "flac"
	case "ogg":
		return "libvorbis"
	default:
		return "aac"
	}
}
