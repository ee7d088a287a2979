package media

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	maxBaseLength = 40
	fallbackBase  = "file"

	// uniqueness suffix range: {unixMillis}-{0..randomRange}
	randomRange = 1_000_000_000_000
)

// DefaultExtensions is the upload allow-list used when configuration leaves it empty.
var DefaultExtensions = NewExtensionSet("jpg", "jpeg", "png", "webp", "gif", "mp4", "mov", "webm", "mkv")

// ExtensionSet holds lower-cased extensions with their leading dot.
type ExtensionSet map[string]struct{}

func NewExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s[strings.ToLower(ext)]
	return ok
}

// Sanitize derives a collision-resistant storage name from a client filename
// using the default allow-list.
func Sanitize(filename, mimeType string) string {
	return DefaultExtensions.StorageName(filename, mimeType)
}

// StorageName never fails: every input maps to "{base}-{millis}-{random}{ext}"
// where base is [A-Za-z0-9_-]{1,40}.
func (s ExtensionSet) StorageName(filename, mimeType string) string {
	ext := extensionOf(filename)
	base := sanitizeBase(strings.TrimSuffix(filename, ext))

	storedExt := strings.ToLower(ext)
	if !s.Contains(storedExt) {
		storedExt = fallbackExtension(mimeType)
	}

	var b strings.Builder
	b.Grow(len(base) + len(storedExt) + 32)
	b.WriteString(base)
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(rand.Int63n(randomRange), 10))
	b.WriteString(storedExt)
	return b.String()
}

// extensionOf returns the final ".ext" of the last slash-separated element,
// or "" when there is none. A leading dot (".env") is not an extension.
// Backslash is an ordinary character, so "a.php\x" has extension ".php\x".
func extensionOf(filename string) string {
	base := filename
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i:]
}

func sanitizeBase(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	dash := false
	for _, r := range name {
		if isSafe(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > maxBaseLength {
		out = out[:maxBaseLength]
	}
	if out == "" {
		return fallbackBase
	}
	return out
}

// isSafe reports letters, digits and underscore; '-' is handled as a separator.
func isSafe(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func fallbackExtension(mimeType string) string {
	switch KindOf(mimeType) {
	case KindImage:
		return ".jpg"
	case KindVideo:
		return ".mp4"
	default:
		return ".bin"
	}
}
