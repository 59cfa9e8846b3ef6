package favorites

import (
	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/holiday"
)

// AddFromSearch appends every row flagged as favorite unless an entry with
// the same date, name and country code is already present. Existing entries
// are never removed.
func AddFromSearch(current []holiday.Holiday, rows []catalog.SearchRow) ([]holiday.Holiday, int) {
	out := make([]holiday.Holiday, len(current), len(current)+len(rows))
	copy(out, current)

	added := 0
	for _, row := range rows {
		if !row.Favorite {
			continue
		}
		if containsEntry(out, row.Holiday) {
			continue
		}
		out = append(out, row.Holiday)
		added++
	}
	return out, added
}

// RemoveSelected keeps the entries that match none of selected on date, name
// and country code. Selected entries no longer present are ignored.
func RemoveSelected(current, selected []holiday.Holiday) ([]holiday.Holiday, int) {
	out := make([]holiday.Holiday, 0, len(current))
	removed := 0
	for _, item := range current {
		if containsEntry(selected, item) {
			removed++
			continue
		}
		out = append(out, item)
	}
	return out, removed
}

func containsEntry(list []holiday.Holiday, target holiday.Holiday) bool {
	for _, item := range list {
		if item.SameEntry(target) {
			return true
		}
	}
	return false
}
