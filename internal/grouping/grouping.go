// Package grouping buckets videos by the calendar day they were added.
package grouping

import (
	"time"

	"github.com/kdimtricp/videogrid/internal/models"
)

// DayKeyLayout renders a day as e.g. "March 5, 2024".
const DayKeyLayout = "January 2, 2006"

type Group struct {
	Key    string
	Videos []models.Video
}

// DayKey returns the grouping key of t in loc. A nil loc means time.Local.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayKeyLayout)
}

// GroupByDay partitions videos by DayKey. Groups appear in the order their
// key is first seen and videos keep their input order, so a list sorted by
// date descending yields the most recent day first. Nothing is re-sorted.
func GroupByDay(videos []models.Video, loc *time.Location) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, v := range videos {
		key := DayKey(v.Date, loc)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Videos = append(groups[i].Videos, v)
	}

	return groups
}
