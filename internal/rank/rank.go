// Package rank orders deal candidates. The per-category pass wants the
// steepest discount first, then priority brands, then popularity signals;
// the global pass across category winners only looks at discount and brand.
package rank

import (
	"sort"
	"strings"

	"github.com/Migueldelg/RadarOfertas/internal/deal"
)

// BrandPriority reports 1 when the title mentions any of the configured
// priority brands, 0 otherwise. Matching is a case-insensitive substring
// check; it is a ranking tiebreaker, never a filter.
func BrandPriority(title string, brands []string) int {
	lower := strings.ToLower(title)
	for _, brand := range brands {
		if brand == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(brand)) {
			return 1
		}
	}
	return 0
}

// SortCandidates orders products best-first for the per-category pass:
// discount, brand priority, rating count, sales signal, all descending.
// The sort is stable so extractor order decides remaining ties.
func SortCandidates(products []deal.Product, brands []string) {
	sort.SliceStable(products, func(i, j int) bool {
		return categoryLess(products[j], products[i], brands)
	})
}

// GlobalLess reports whether a ranks strictly below b under the global key
// (discount, brand priority). Callers sort descending with a stable sort so
// the per-category order decides ties.
func GlobalLess(a, b deal.Product, brands []string) bool {
	if a.Discount != b.Discount {
		return a.Discount < b.Discount
	}
	return BrandPriority(a.Title, brands) < BrandPriority(b.Title, brands)
}

func categoryLess(a, b deal.Product, brands []string) bool {
	if a.Discount != b.Discount {
		return a.Discount < b.Discount
	}
	if pa, pb := BrandPriority(a.Title, brands), BrandPriority(b.Title, brands); pa != pb {
		return pa < pb
	}
	if a.Ratings != b.Ratings {
		return a.Ratings < b.Ratings
	}
	return a.Sales < b.Sales
}
