// Package seed decodes TOML catalog imports.
//
//	[[videos]]
//	name = "Never Gonna Give You Up"
//	url = "https://youtu.be/dQw4w9WgXcQ"
//	category = "Music"
//	recommended_by = "Ana"
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kdimtricp/videogrid/internal/models"
	"github.com/pelletier/go-toml/v2"
)

type entry struct {
	Name          string `toml:"name"`
	URL           string `toml:"url"`
	Thumbnail     string `toml:"thumbnail"`
	Category      string `toml:"category"`
	Comment       string `toml:"comment"`
	RecommendedBy string `toml:"recommended_by"`
}

type file struct {
	Videos []entry `toml:"videos"`
}

// Decode reads drafts in file order and validates each one. Unknown keys
// are rejected so a typo does not silently drop a field.
func Decode(r io.Reader) ([]models.Draft, error) {
	var f file
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parse import: %s", strict.String())
		}
		return nil, fmt.Errorf("parse import: %w", err)
	}

	drafts := make([]models.Draft, 0, len(f.Videos))
	for i, e := range f.Videos {
		d := models.Draft{
			Name:          e.Name,
			URL:           e.URL,
			Thumbnail:     e.Thumbnail,
			Category:      e.Category,
			Comment:       e.Comment,
			RecommendedBy: e.RecommendedBy,
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("video %d: %w", i+1, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func DecodeFile(path string) ([]models.Draft, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Adder is satisfied by *catalog.Client.
type Adder interface {
	Add(ctx context.Context, draft models.Draft) (models.Video, error)
}

// Import adds drafts in order and stops at the first failure. It returns
// how many were added.
func Import(ctx context.Context, adder Adder, drafts []models.Draft) (int, error) {
	for i, d := range drafts {
		if _, err := adder.Add(ctx, d); err != nil {
			return i, fmt.Errorf("add %q: %w", d.Name, err)
		}
	}
	return len(drafts), nil
}
