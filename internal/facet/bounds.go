package facet

import (
	"sync"

	"societyBack/internal/models"
)

// Range is a closed price interval.
type Range struct {
	Min float64
	Max float64
}

// Bounds is the smallest range covering every filterable price. It is the
// zero range when no listing has one.
func Bounds(listings []Listing) Range {
	var r Range
	first := true
	for _, l := range listings {
		if !l.Price.Filterable() {
			continue
		}
		v := l.Price.Amount
		if first {
			r = Range{Min: v, Max: v}
			first = false
			continue
		}
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	return r
}

// Clamp moves both ends of r into b.
func (r Range) Clamp(b Range) Range {
	out := Range{Min: clamp(r.Min, b), Max: clamp(r.Max, b)}
	if out.Min > out.Max {
		out.Min, out.Max = out.Max, out.Min
	}
	return out
}

func clamp(v float64, b Range) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Browser holds the data set behind a browse page together with the price
// slider state. Safe for concurrent use.
type Browser struct {
	mu       sync.RWMutex
	listings []Listing
	bounds   Range
	active   Range
	priceSet bool
}

func NewBrowser() *Browser {
	return &Browser{}
}

// SetProviders replaces the data set, recomputes the price bounds and clamps
// the active range into them.
func (b *Browser) SetProviders(providers []models.Provider) {
	listings := Flatten(providers)
	bounds := Bounds(listings)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listings = listings
	b.bounds = bounds
	if b.priceSet {
		b.active = b.active.Clamp(bounds)
	} else {
		b.active = bounds
	}
}

// SetPriceRange activates the price predicate with r clamped into the bounds.
func (b *Browser) SetPriceRange(r Range) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	b.active = r.Clamp(b.bounds)
	b.priceSet = true
}

// ClearPriceRange turns the price predicate off.
func (b *Browser) ClearPriceRange() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = b.bounds
	b.priceSet = false
}

func (b *Browser) Bounds() Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bounds
}

// ActiveRange returns the slider position and whether the price predicate is on.
func (b *Browser) ActiveRange() (Range, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active, b.priceSet
}

// Results applies f to the current data set. When a price range is active it
// overrides the price bounds in f.
func (b *Browser) Results(f Filters) []Listing {
	b.mu.RLock()
	listings := b.listings
	active, set := b.active, b.priceSet
	b.mu.RUnlock()

	if set {
		min, max := active.Min, active.Max
		f.PriceMin, f.PriceMax = &min, &max
	}
	return Apply(listings, f)
}
