package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kdimtricp/videogrid/internal/models"
)

const sample = `
[[videos]]
name = "First"
url = "https://youtu.be/dQw4w9WgXcQ"
category = "Music"
recommended_by = "Ana"

[[videos]]
name = "Second"
url = "https://www.youtube.com/watch?v=9bZkp7q19f0"
thumbnail = "https://cdn.example.com/second.png"
category = "Dance"
comment = "still holds up"
recommended_by = "Ben"
`

func TestDecode(t *testing.T) {
	drafts, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Name != "First" || drafts[1].Name != "Second" {
		t.Errorf("Expected file order, got %q, %q", drafts[0].Name, drafts[1].Name)
	}
	if drafts[1].Comment != "still holds up" || drafts[1].RecommendedBy != "Ben" {
		t.Errorf("Unexpected second draft: %+v", drafts[1])
	}
}

func TestDecode_MissingField(t *testing.T) {
	_, err := Decode(strings.NewReader("[[videos]]\nname = \"x\"\nurl = \"y\"\n"))
	var missing *models.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 2 {
		t.Errorf("Expected category and recommendedBy missing, got %v", missing.Fields)
	}
}

func TestDecode_UnknownKey(t *testing.T) {
	_, err := Decode(strings.NewReader(sample + "\n[[videos]]\ntitle = \"typo\"\n"))
	if err == nil {
		t.Fatal("Expected error for unknown key, got nil")
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	drafts, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("Failed to decode file: %v", err)
	}
	if len(drafts) != 2 {
		t.Errorf("Expected 2 drafts, got %d", len(drafts))
	}

	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

type recordingAdder struct {
	added  []string
	failOn string
}

func (a *recordingAdder) Add(_ context.Context, d models.Draft) (models.Video, error) {
	if d.Name == a.failOn {
		return models.Video{}, errors.New("store unavailable")
	}
	a.added = append(a.added, d.Name)
	return models.Video{Name: d.Name}, nil
}

func TestImport(t *testing.T) {
	drafts, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	adder := &recordingAdder{}
	n, err := Import(context.Background(), adder, drafts)
	if err != nil || n != 2 {
		t.Fatalf("Expected 2 added, got %d (%v)", n, err)
	}

	adder = &recordingAdder{failOn: "Second"}
	n, err = Import(context.Background(), adder, drafts)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if n != 1 || len(adder.added) != 1 {
		t.Errorf("Expected to stop after 1, got %d", n)
	}
}
