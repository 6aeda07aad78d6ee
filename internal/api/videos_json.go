package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kdimtricp/videogrid/internal/thumbnail"
)

type videoJSON struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	Category      string    `json:"category"`
	Comment       string    `json:"comment,omitempty"`
	RecommendedBy string    `json:"recommendedBy"`
	Date          time.Time `json:"date"`
}

type dayJSON struct {
	Day    string      `json:"day"`
	Videos []videoJSON `json:"videos"`
}

// VideosJSONHandler serves the grouped catalog. Thumbnail is omitted when
// none can be derived.
func (app *App) VideosJSONHandler(w http.ResponseWriter, r *http.Request) {
	groups, fetchErr := app.fetchGroups(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if fetchErr != "" {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": fetchErr})
		return
	}

	days := make([]dayJSON, 0, len(groups))
	for _, g := range groups {
		day := dayJSON{Day: g.Key, Videos: make([]videoJSON, 0, len(g.Videos))}
		for _, v := range g.Videos {
			thumb := thumbnail.Resolve(v)
			day.Videos = append(day.Videos, videoJSON{
				ID:            v.ID,
				Name:          v.Name,
				URL:           v.URL,
				Thumbnail:     thumb.URL,
				Category:      v.Category,
				Comment:       v.Comment,
				RecommendedBy: v.RecommendedBy,
				Date:          v.Date,
			})
		}
		days = append(days, day)
	}

	if err := json.NewEncoder(w).Encode(days); err != nil {
		app.Logger.Error("Error encoding videos", "error", err)
	}
}
