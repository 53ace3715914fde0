package models

const (
	DefaultTopLimit = 5
	MaxTopLimit     = 50
)

// TopCategory aggregates review activity for one service category.
type TopCategory struct {
	Category     string  `json:"category"`
	ReviewsCount int     `json:"reviewsCount"`
	AvgRating    float64 `json:"avgRating"`
}

type TopService struct {
	ServiceID       int     `json:"serviceId"`
	Name            string  `json:"name"`
	ServiceCategory string  `json:"serviceCategory"`
	ProviderName    string  `json:"providerName"`
	ReviewsCount    int     `json:"reviewsCount"`
	AvgRating       float64 `json:"avgRating"`
}

type TopCategoriesResponse struct {
	Categories []TopCategory `json:"categories"`
}

type TopServicesResponse struct {
	Services []TopService `json:"services"`
}

// ClampTopLimit applies the default and the upper bound to a requested limit.
func ClampTopLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopLimit
	}
	if limit > MaxTopLimit {
		return MaxTopLimit
	}
	return limit
}

// MessageResponse is the generic acknowledgement and error body.
type MessageResponse struct {
	Message string `json:"message"`
}
