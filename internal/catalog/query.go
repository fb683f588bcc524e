package catalog

import (
	"sort"
	"strings"

	"github.com/frabrice/insightium/internal/models"
)

// SortKey selects the total order applied to a catalog view.
type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortPopular SortKey = "popular"
	SortRating  SortKey = "rating"
)

// AllCategories is the sentinel category meaning "no category filter".
const AllCategories = "all"

// ParseSortKey maps a query parameter to a SortKey, defaulting to newest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortOldest, SortPopular, SortRating:
		return SortKey(s)
	}
	return SortNewest
}

// Query describes one catalog view: free-text search, category filter
// and sort order.
type Query struct {
	Search   string
	Category string
	Sort     SortKey
}

// DefaultQuery returns the view shown before the user touches any control.
func DefaultQuery() Query {
	return Query{Category: AllCategories, Sort: SortNewest}
}

// Apply filters and orders items according to q. The input slice is never
// mutated; the result is a fresh slice. Search matches the lower-cased
// title or description as a literal substring (never a pattern), the
// category filter is an exact match unless it is the "all" sentinel, and
// every sort is stable so equal keys keep their original relative order.
func Apply(items []models.MediaItem, q Query) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(items))
	search := strings.ToLower(q.Search)

	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Title), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		if q.Category != "" && q.Category != AllCategories && item.Category != q.Category {
			continue
		}
		out = append(out, item)
	}

	sortItems(out, q.Sort)
	return out
}

func sortItems(items []models.MediaItem, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return ParseDate(items[i].PublishDate).Before(ParseDate(items[j].PublishDate))
		})
	case SortPopular:
		sort.SliceStable(items, func(i, j int) bool {
			return ParseViewCount(items[i].ViewCount) > ParseViewCount(items[j].ViewCount)
		})
	case SortRating:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	default: // newest
		sort.SliceStable(items, func(i, j int) bool {
			return ParseDate(items[i].PublishDate).After(ParseDate(items[j].PublishDate))
		})
	}
}

// Categories returns the distinct categories present in items, sorted
// alphabetically. The "all" sentinel is not included.
func Categories(items []models.MediaItem) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)
	return categories
}
