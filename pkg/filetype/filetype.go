// Package filetype classifies files by extension into a small fixed
// taxonomy (text, audio, video, archive). Lookups are case-insensitive
// and accept extensions with or without the leading dot. The mapping is
// built once and never mutated at runtime.
package filetype

import (
	"sort"
	"strings"

	"github.com/arthur-debert/dedup/pkg/errors"
)

// Category is a coarse grouping of file extensions
type Category string

const (
	Text    Category = "text"
	Audio   Category = "audio"
	Video   Category = "video"
	Archive Category = "archive"
	Unknown Category = "unknown"
)

// extensionMap holds lowercase, dot-stripped extensions
var extensionMap = map[string]Category{
	// Text documents
	"txt":  Text,
	"md":   Text,
	"rtf":  Text,
	"doc":  Text,
	"docx": Text,
	"pdf":  Text,

	// Audio files
	"mp3":  Audio,
	"m4a":  Audio,
	"wav":  Audio,
	"aac":  Audio,
	"flac": Audio,

	// Video files
	"mp4":  Video,
	"mov":  Video,
	"avi":  Video,
	"mkv":  Video,
	"webm": Video,

	// Archives
	"zip": Archive,
	"rar": Archive,
	"7z":  Archive,
	"tar": Archive,
	"gz":  Archive,
	"bz2": Archive,
	"dmg": Archive,
	"pkg": Archive,
}

// normalize lower-cases an extension and strips a leading dot
func normalize(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return strings.ToLower(ext)
}

// Lookup returns the Category for a file extension, or Unknown when
// the extension is not in the taxonomy.
func Lookup(ext string) Category {
	if cat, ok := extensionMap[normalize(ext)]; ok {
		return cat
	}
	return Unknown
}

// IsSupported reports whether the extension is in the taxonomy.
func IsSupported(ext string) bool {
	return Lookup(ext) != Unknown
}

// Extensions returns all extensions of a category, sorted and with
// leading dots. Unknown yields an empty list.
func Extensions(cat Category) []string {
	if cat == Unknown {
		return nil
	}

	var exts []string
	for ext, c := range extensionMap {
		if c == cat {
			exts = append(exts, "."+ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Categories returns the known categories in a stable order,
// Unknown excluded.
func Categories() []Category {
	return []Category{Text, Audio, Video, Archive}
}

// ParseCategory converts a user-supplied name into a Category.
// Fails with INVALID_INPUT on unrecognized names.
func ParseCategory(name string) (Category, error) {
	switch Category(strings.ToLower(name)) {
	case Text:
		return Text, nil
	case Audio:
		return Audio, nil
	case Video:
		return Video, nil
	case Archive:
		return Archive, nil
	default:
		return Unknown, errors.Newf(errors.ErrInvalidInput, "unknown file type %q", name)
	}
}
