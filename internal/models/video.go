package models

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

type Video struct {
	ID            string
	Name          string
	URL           string
	Thumbnail     string
	Category      string
	Comment       string
	RecommendedBy string
	Date          time.Time
}

// Draft holds the editable fields of a Video before the catalog assigns
// its ID and Date.
type Draft struct {
	Name          string
	URL           string
	Thumbnail     string
	Category      string
	Comment       string
	RecommendedBy string
}

// MissingFieldsError lists the required draft fields that were left empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Validate checks required-field presence only.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.URL) == "" {
		missing = append(missing, "url")
	}
	if strings.TrimSpace(d.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(d.RecommendedBy) == "" {
		missing = append(missing, "recommendedBy")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// Normalize trims every field and puts it in Unicode NFC form.
func (d Draft) Normalize() Draft {
	clean := func(s string) string {
		return norm.NFC.String(strings.TrimSpace(s))
	}
	return Draft{
		Name:          clean(d.Name),
		URL:           clean(d.URL),
		Thumbnail:     clean(d.Thumbnail),
		Category:      clean(d.Category),
		Comment:       clean(d.Comment),
		RecommendedBy: clean(d.RecommendedBy),
	}
}

// NewVideo builds the Video a draft becomes once stored under id at date.
func NewVideo(id string, d Draft, date time.Time) Video {
	return Video{
		ID:            id,
		Name:          d.Name,
		URL:           d.URL,
		Thumbnail:     d.Thumbnail,
		Category:      d.Category,
		Comment:       d.Comment,
		RecommendedBy: d.RecommendedBy,
		Date:          date,
	}
}
