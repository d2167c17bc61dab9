package formatter

import (
	"strings"
	"time"

	"github.com/desertthunder/lineup/internal/shared"
)

// mediaTypes maps allowed upload extensions to their MIME types.
//
// The map doubles as the extension allowlist. Lookups through [MediaType]
// stay total by defaulting to image/jpeg, so an allowed-but-unmapped
// extension can never produce an unhandled case.
var mediaTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Ext returns the lower-cased substring after the last '.' in filename, or
// "" when there is no extension.
func Ext(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// AllowedFile reports whether the filename carries an allowed image extension.
func AllowedFile(filename string) bool {
	_, ok := mediaTypes[Ext(filename)]
	return ok
}

// MediaType returns the MIME type for an extension, defaulting to image/jpeg.
func MediaType(ext string) string {
	if mt, ok := mediaTypes[strings.ToLower(ext)]; ok {
		return mt
	}
	return "image/jpeg"
}

// ValidateUpload checks an uploaded filename and returns its media type.
//
// Fails with the corresponding validation error when the filename is empty
// or its extension is not in the allowed set.
func ValidateUpload(filename string) (string, error) {
	if filename == "" {
		return "", shared.ErrNoFilename
	}
	if !AllowedFile(filename) {
		return "", shared.ErrInvalidFileType
	}
	return MediaType(Ext(filename)), nil
}

// SanitizeName reduces a festival name to a filesystem-safe token: ASCII
// letters, digits, dashes and underscores, with runs of anything else
// collapsed to single underscores.
func SanitizeName(name string) string {
	var b strings.Builder
	lastUnderscore := false

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "upload"
	}
	return out
}

// BaseFilename derives the shared base name for a persisted image/CSV pair.
//
// Format: <sanitized-festival>_<year>_<YYYYMMDD_HHMMSS>_<shortid>. The short
// ID suffix makes same-second requests for the same festival collision-free.
func BaseFilename(festivalName, year string, now time.Time) string {
	return strings.Join([]string{
		SanitizeName(festivalName),
		SanitizeName(year),
		now.Format("20060102_150405"),
		shared.ShortID(),
	}, "_")
}

// DerivedCSVName builds a download-style CSV filename from the festival name
// and year: lower-cased, spaces replaced by underscores, fixed suffix.
//
// Used by the CLI when no output path is given.
func DerivedCSVName(festivalName, year string) string {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(festivalName), " ", "_"))
	if name == "" {
		name = "lineup"
	}
	return name + "_" + year + "_lineup.csv"
}
