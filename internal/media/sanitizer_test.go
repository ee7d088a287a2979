package media

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storageNamePattern = regexp.MustCompile(`^([A-Za-z0-9_-]+)-(\d+)-(\d+)(\.[a-z0-9]+)$`)

func TestSanitize_Examples(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mime     string
		wantBase string
		wantExt  string
	}{
		{"plain image", "Photo 1.PNG", "image/png", "Photo-1", ".png"},
		{"path traversal", "../../etc/passwd", "application/octet-stream", "etc-passwd", ".bin"},
		{"empty name", "", "image/jpeg", "file", ".jpg"},
		{"only symbols", "@@@.jpeg", "image/jpeg", "file", ".jpeg"},
		{"unknown ext video", "clip.avi", "video/x-msvideo", "clip", ".mp4"},
		{"no ext image", "screenshot", "image/webp", "screenshot", ".jpg"},
		{"dash runs", "a---b__c", "image/gif", "a-b__c", ".jpg"},
		{"unicode", "фото отпуск.jpg", "image/jpeg", "file", ".jpg"},
		{"leading dot", ".hidden", "video/mp4", "hidden", ".mp4"},
		{"windows path", `C:\Users\me\pic.webp`, "image/webp", "C-Users-me-pic", ".webp"},
		{"backslash in ext", `shell.php\x`, "image/png", "shell", ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.filename, tt.mime)
			m := storageNamePattern.FindStringSubmatch(got)
			require.NotNil(t, m, "unexpected storage name %q", got)
			assert.Equal(t, tt.wantBase, m[1])
			assert.Equal(t, tt.wantExt, m[4])
		})
	}
}

func TestSanitize_TruncatesBase(t *testing.T) {
	got := Sanitize(strings.Repeat("x", 200)+".mp4", "video/mp4")
	m := storageNamePattern.FindStringSubmatch(got)
	require.NotNil(t, m)
	assert.Len(t, m[1], maxBaseLength)
	assert.Equal(t, ".mp4", m[4])
}

func TestSanitize_OutputAlphabet(t *testing.T) {
	inputs := []string{
		"../../../../root/.ssh/id_rsa",
		"a/b\\c:d*e?f\"g<h>i|j",
		"\x00\x01\x02.png",
		"名前.mov",
		"   spaced   out   .GIF",
		"semi;colon&amp.webm",
		strings.Repeat("-", 80),
	}
	safe := regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

	for _, in := range inputs {
		for _, mime := range []string{"image/png", "video/mp4", "text/plain", ""} {
			got := Sanitize(in, mime)
			assert.Regexp(t, safe, got)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, "..")

			m := storageNamePattern.FindStringSubmatch(got)
			require.NotNil(t, m, "unexpected storage name %q", got)
			assert.LessOrEqual(t, len(m[1]), maxBaseLength)
		}
	}
}

func TestSanitize_Uniqueness(t *testing.T) {
	const samples = 10_000
	seen := make(map[string]struct{}, samples)
	for i := 0; i < samples; i++ {
		name := Sanitize("same.jpg", "image/jpeg")
		_, dup := seen[name]
		require.False(t, dup, "collision on %q after %d samples", name, i)
		seen[name] = struct{}{}
	}
}

func TestExtensionSet_Normalizes(t *testing.T) {
	set := NewExtensionSet("JPG", ".Png", " webm ", "")
	assert.True(t, set.Contains(".jpg"))
	assert.True(t, set.Contains(".PNG"))
	assert.True(t, set.Contains(".webm"))
	assert.Len(t, set, 3)
}
