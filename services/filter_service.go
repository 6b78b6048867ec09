package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Asip90/User-View-OpenFood/entity"
)

// FilterService derives the visible item set from a menu snapshot. The
// four filters compose conjunctively and each is independently clearable
// to its sentinel. The engine is stateless; filter state lives on the
// session.
type FilterService struct{}

// Apply returns the flat filtered view.
func (FilterService) Apply(menu *entity.MenuData, f entity.FilterState) []entity.FlatItem {
	out := []entity.FlatItem{}
	query := Fold(strings.TrimSpace(f.Query))
	hasAvailability := menu.HasAvailabilityData()

	for _, cat := range menu.Categories {
		if f.Category != entity.FilterAll && !cat.MatchesCategory(f.Category) {
			continue
		}
		for _, it := range cat.Items {
			if matches(&it, cat.Name, query, f, hasAvailability) {
				out = append(out, entity.FlatItem{MenuItem: it, CategoryID: cat.ID, CategoryName: cat.Name})
			}
		}
	}
	return out
}

// ApplyGrouped returns the per-category view with the same semantics as
// Apply. Categories left with no matching items are omitted entirely.
func (s FilterService) ApplyGrouped(menu *entity.MenuData, f entity.FilterState) []entity.CategoryGroup {
	out := []entity.CategoryGroup{}
	query := Fold(strings.TrimSpace(f.Query))
	hasAvailability := menu.HasAvailabilityData()

	for _, cat := range menu.Categories {
		if f.Category != entity.FilterAll && !cat.MatchesCategory(f.Category) {
			continue
		}
		group := entity.CategoryGroup{ID: cat.ID, Name: cat.Name}
		for _, it := range cat.Items {
			if matches(&it, cat.Name, query, f, hasAvailability) {
				group.Items = append(group.Items, entity.FlatItem{MenuItem: it, CategoryID: cat.ID, CategoryName: cat.Name})
			}
		}
		if len(group.Items) > 0 {
			out = append(out, group)
		}
	}
	return out
}

func matches(it *entity.MenuItem, categoryName, query string, f entity.FilterState, hasAvailability bool) bool {
	if query != "" && !matchesQuery(it, categoryName, query) {
		return false
	}
	if f.PriceBucket != entity.FilterAll && !MatchesPriceBucket(f.PriceBucket, it.UnitPrice()) {
		return false
	}
	// Availability only filters catalogs that actually carry the attribute.
	if hasAvailability && f.Availability != entity.FilterAll {
		if f.Availability == entity.AvailabilityAvailable && !it.Available() {
			return false
		}
		if f.Availability == entity.AvailabilityUnavailable && it.Available() {
			return false
		}
	}
	return true
}

// matchesQuery matches the folded query against name, description and
// category name as a union.
func matchesQuery(it *entity.MenuItem, categoryName, query string) bool {
	return strings.Contains(Fold(it.Name), query) ||
		strings.Contains(Fold(it.Description), query) ||
		strings.Contains(Fold(categoryName), query)
}

// MatchesPriceBucket checks a unit price against one of the four disjoint
// ranges: <500, [500,1000], (1000,2000], >2000. Values are opaque numbers
// in the deployment currency, not currency-aware amounts.
func MatchesPriceBucket(bucket string, price float64) bool {
	switch bucket {
	case entity.PriceUnder500:
		return price < 500
	case entity.Price500To1000:
		return price >= 500 && price <= 1000
	case entity.Price1000To2000:
		return price > 1000 && price <= 2000
	case entity.PriceOver2000:
		return price > 2000
	}
	return true
}

// Fold lowercases and strips diacritics so "Crème" matches "creme". The
// transform chain is built per call because its state is not safe for
// concurrent reuse.
func Fold(s string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
