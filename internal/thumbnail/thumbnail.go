// Package thumbnail derives a display image for videos that were added
// without an explicit thumbnail.
package thumbnail

import (
	"fmt"
	"regexp"

	"github.com/kdimtricp/videogrid/internal/models"
)

// Invalid is the text shown in place of an image when no id can be found.
const Invalid = "Invalid YouTube URL"

const idLength = 11

var (
	linkPattern = regexp.MustCompile(`^.*((youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)|(\?v=))([^#&?]*).*`)
	barePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// Result is either an image URL or the "no thumbnail available" case.
type Result struct {
	URL       string
	Available bool
}

// String returns the image URL, or Invalid when none is available.
func (r Result) String() string {
	if !r.Available {
		return Invalid
	}
	return r.URL
}

// Resolve prefers the explicit thumbnail and falls back to FromURL.
func Resolve(v models.Video) Result {
	if v.Thumbnail != "" {
		return Result{URL: v.Thumbnail, Available: true}
	}
	return FromURL(v.URL)
}

// FromURL builds the hqdefault image URL for a YouTube link or bare id.
func FromURL(url string) Result {
	id, ok := ExtractID(url)
	if !ok {
		return Result{}
	}
	return Result{
		URL:       fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id),
		Available: true,
	}
}

// ExtractID finds the 11-character video id in the common YouTube link
// shapes: /v/, /u/<x>/, /embed/, ?v=, &v=, youtu.be/ and a bare id.
func ExtractID(url string) (string, bool) {
	if barePattern.MatchString(url) {
		return url, true
	}
	m := linkPattern.FindStringSubmatch(url)
	if m == nil || len(m[4]) != idLength {
		return "", false
	}
	return m[4], true
}
