package repositories

import (
	"database/sql"
	"math"
)

// averageRating converts an AVG() column. Offerings without reviews have no
// rating rather than a zero one.
func averageRating(avg sql.NullFloat64) *float64 {
	if !avg.Valid {
		return nil
	}
	v := roundRating(avg.Float64)
	return &v
}

func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
