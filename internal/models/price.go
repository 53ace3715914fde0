package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Price is an offering price as it arrives over the wire. The backend stores a
// nullable decimal, but listings imported from older clients may carry free
// text, so the raw form is kept next to the parsed amount.
type Price struct {
	Raw     string
	Amount  float64
	Numeric bool
}

// NewPrice returns a numeric price.
func NewPrice(amount float64) Price {
	return Price{Raw: strconv.FormatFloat(amount, 'f', -1, 64), Amount: amount, Numeric: true}
}

// ParsePrice parses s leniently. Anything that is not a finite number is kept
// as raw text with Numeric unset.
func ParsePrice(s string) Price {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{Raw: s}
	}
	return Price{Raw: s, Amount: v, Numeric: true}
}

// IsZero reports whether no price was given at all.
func (p Price) IsZero() bool {
	return p.Raw == "" && !p.Numeric
}

// Filterable reports whether the price can take part in range filtering:
// finite and non-negative.
func (p Price) Filterable() bool {
	return p.Numeric && p.Amount >= 0
}

// SortKey is the value used for price ordering; non-numeric prices sort as 0.
func (p Price) SortKey() float64 {
	if !p.Numeric {
		return 0
	}
	return p.Amount
}

func (p Price) MarshalJSON() ([]byte, error) {
	switch {
	case p.Numeric:
		return json.Marshal(p.Amount)
	case p.Raw != "":
		return json.Marshal(p.Raw)
	default:
		return []byte("null"), nil
	}
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParsePrice(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		// booleans, objects and arrays are not prices
		*p = Price{Raw: string(data)}
		return nil
	}
	*p = Price{Raw: string(data), Amount: v, Numeric: true}
	return nil
}
