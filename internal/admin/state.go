// Package admin holds the authenticated add/remove flow behind /admin.
// State is never stored: every call derives it from the session the
// identity provider currently reports for the request's token.
package admin

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/kdimtricp/videogrid/internal/auth"
	"github.com/kdimtricp/videogrid/internal/models"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

func StateFor(_ auth.Session, ok bool) State {
	if ok {
		return Authenticated
	}
	return Unauthenticated
}

// MaxFieldLength bounds every form field, in runes.
const MaxFieldLength = 2048

// Form field names as posted by the admin page.
const (
	FieldName          = "name"
	FieldURL           = "url"
	FieldThumbnail     = "thumbnail"
	FieldCategory      = "category"
	FieldComment       = "comment"
	FieldRecommendedBy = "recommendedBy"
)

// Form is the add form's draft.
type Form struct {
	Name          string
	URL           string
	Thumbnail     string
	Category      string
	Comment       string
	RecommendedBy string
}

func FormFromValues(v url.Values) Form {
	return Form{
		Name:          bounded(v.Get(FieldName)),
		URL:           bounded(v.Get(FieldURL)),
		Thumbnail:     bounded(v.Get(FieldThumbnail)),
		Category:      bounded(v.Get(FieldCategory)),
		Comment:       bounded(v.Get(FieldComment)),
		RecommendedBy: bounded(v.Get(FieldRecommendedBy)),
	}
}

func (f Form) Draft() models.Draft {
	return models.Draft{
		Name:          f.Name,
		URL:           f.URL,
		Thumbnail:     f.Thumbnail,
		Category:      f.Category,
		Comment:       f.Comment,
		RecommendedBy: f.RecommendedBy,
	}
}

// Missing lists the required fields left empty.
func (f Form) Missing() []string {
	var missing *models.MissingFieldsError
	if errors.As(f.Draft().Validate(), &missing) {
		return missing.Fields
	}
	return nil
}

func (f *Form) Reset() {
	*f = Form{}
}

func bounded(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= MaxFieldLength {
		return s
	}
	return string([]rune(s)[:MaxFieldLength])
}
