package controllers

import (
	"encoding/json"
	"sort"
	"strconv"

	"gorm.io/datatypes"
)

// normalizeWatchedIDs coerces a raw watched-set payload into a sorted set of
// distinct positive integers. JSON numbers arrive as float64 and older rows
// may carry numeric strings; anything non-numeric is discarded.
func normalizeWatchedIDs(raw []interface{}) []int {
	seen := make(map[int]bool, len(raw))
	ids := make([]int, 0, len(raw))

	for _, v := range raw {
		var id int
		switch t := v.(type) {
		case float64:
			id = int(t)
		case int:
			id = t
		case json.Number:
			n, err := t.Int64()
			if err != nil {
				continue
			}
			id = int(n)
		case string:
			n, err := strconv.Atoi(t)
			if err != nil {
				continue
			}
			id = n
		default:
			continue
		}
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids
}

// decodeWatchedIDs reads the stored watched set, re-normalizing on every read
// so a malformed prior write can never poison the progress computation.
func decodeWatchedIDs(stored datatypes.JSON) []int {
	if len(stored) == 0 {
		return []int{}
	}
	var raw []interface{}
	if err := json.Unmarshal(stored, &raw); err != nil {
		return []int{}
	}
	return normalizeWatchedIDs(raw)
}

// encodeWatchedIDs serializes a normalized watched set for storage.
func encodeWatchedIDs(ids []int) datatypes.JSON {
	b, _ := json.Marshal(ids)
	return datatypes.JSON(b)
}

// computeProgress derives the completion percentage from the number of
// distinct watched videos and the course's duration_in_days. Progress is an
// approximation of days of content engaged with, not a fraction of the video
// count: a 30-video course with duration_in_days=5 hits 100% after 5 distinct
// watched videos.
func computeProgress(watchedCount, durationInDays int) int {
	if durationInDays <= 0 {
		return 0
	}
	progress := watchedCount * 100 / durationInDays
	if progress > 100 {
		progress = 100
	}
	return progress
}

// mergeWatchedIDs unions two normalized sets, keeping order and distinctness.
func mergeWatchedIDs(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	merged := make([]int, 0, len(a)+len(b))
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	sort.Ints(merged)
	return merged
}
