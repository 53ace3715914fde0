// Package facet derives the flat, filtered and sorted list of service
// offerings shown on the browse page from the provider roster.
package facet

import (
	"sort"
	"strings"

	"societyBack/internal/models"
)

// AnyValue disables the category, subcategory and keyword predicates.
const AnyValue = "All"

type Sort string

const (
	SortNone Sort = "none"
	SortAsc  Sort = "asc"
	SortDesc Sort = "desc"
)

// ParseSort accepts the short names and the labels used by the sort picker.
func ParseSort(s string) Sort {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "low to high", "price_asc":
		return SortAsc
	case "desc", "high to low", "price_desc":
		return SortDesc
	default:
		return SortNone
	}
}

// Filters is the conjunction of the current selections. A nil price bound
// leaves that side of the range open; with both nil the price predicate is off.
type Filters struct {
	SearchText  string
	Category    string
	Subcategory string
	Keyword     string
	MinRating   float64
	PriceMin    *float64
	PriceMax    *float64
	Sort        Sort
}

// Listing is an offering denormalised with its owning provider.
type Listing struct {
	models.ServiceOffering
	Provider *models.Provider
}

// ProviderName is empty when the listing has no provider attached.
func (l Listing) ProviderName() string {
	if l.Provider == nil {
		return ""
	}
	return l.Provider.User.Name
}

// Flatten produces one listing per offering, in roster order.
func Flatten(providers []models.Provider) []Listing {
	var out []Listing
	for i := range providers {
		p := &providers[i]
		for _, o := range p.ServiceOfferings {
			out = append(out, Listing{ServiceOffering: o, Provider: p})
		}
	}
	return out
}

// FilterServices flattens the roster and applies f.
func FilterServices(providers []models.Provider, f Filters) []Listing {
	return Apply(Flatten(providers), f)
}

// Apply returns the listings matching every predicate of f, sorted by price
// when f.Sort asks for it. The input slice is not modified.
func Apply(listings []Listing, f Filters) []Listing {
	preds := f.predicates()
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if matchAll(l, preds) {
			out = append(out, l)
		}
	}

	switch f.Sort {
	case SortAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.SortKey() < out[j].Price.SortKey()
		})
	case SortDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.SortKey() > out[j].Price.SortKey()
		})
	}
	return out
}

type predicate func(Listing) bool

func matchAll(l Listing, preds []predicate) bool {
	for _, p := range preds {
		if !p(l) {
			return false
		}
	}
	return true
}

// predicates lists only the active predicates, in evaluation order.
func (f Filters) predicates() []predicate {
	var preds []predicate

	if q := strings.ToLower(strings.TrimSpace(f.SearchText)); q != "" {
		preds = append(preds, func(l Listing) bool { return matchesText(l, q) })
	}
	if isSelected(f.Category) {
		preds = append(preds, func(l Listing) bool { return l.ServiceCategory == f.Category })
	}
	if isSelected(f.Subcategory) {
		preds = append(preds, func(l Listing) bool { return contains(l.SubCategories, f.Subcategory) })
	}
	if isSelected(f.Keyword) {
		preds = append(preds, func(l Listing) bool { return contains(l.Keywords, f.Keyword) })
	}
	if f.PriceMin != nil || f.PriceMax != nil {
		min, max := f.PriceMin, f.PriceMax
		preds = append(preds, func(l Listing) bool { return inRange(l.Price, min, max) })
	}
	if f.MinRating > 0 {
		preds = append(preds, func(l Listing) bool { return rating(l) >= f.MinRating })
	}
	return preds
}

func isSelected(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, AnyValue)
}

func matchesText(l Listing, q string) bool {
	fields := []string{
		l.Name,
		l.ServiceCategory,
		l.Description,
		strings.Join(l.Keywords, " "),
		strings.Join(l.SubCategories, " "),
		l.ProviderName(),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func inRange(p models.Price, min, max *float64) bool {
	if !p.Filterable() {
		return false
	}
	if min != nil && p.Amount < *min {
		return false
	}
	if max != nil && p.Amount > *max {
		return false
	}
	return true
}

func rating(l Listing) float64 {
	if l.Rating == nil {
		return 0
	}
	return *l.Rating
}
