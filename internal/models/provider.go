package models

import (
	"time"
)

type Provider struct {
	ID               int               `json:"id"`
	User             UserSummary       `json:"user"`
	Bio              string            `json:"bio"`
	Experience       int               `json:"experience"`
	ServiceOfferings []ServiceOffering `json:"serviceOfferings"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        *time.Time        `json:"updatedAt,omitempty"`
}

// ServiceOffering is a single service a provider lists.
type ServiceOffering struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	ServiceCategory string           `json:"serviceCategory"`
	SubCategories   []string         `json:"subCategories"`
	Keywords        []string         `json:"keywords"`
	Description     string           `json:"description"`
	Price           Price            `json:"price"`
	PortfolioImages []PortfolioImage `json:"portfolioImages"`
	ProviderID      int              `json:"providerRef"`
	Rating          *float64         `json:"rating,omitempty"`
	ReviewsCount    int              `json:"reviewsCount"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty"`
}

type PortfolioImage struct {
	URL string `json:"url"`
}

type ProviderProfileRequest struct {
	Bio        string `json:"bio"`
	Experience int    `json:"experience"`
}

type OfferingRequest struct {
	Name            string   `json:"name"`
	ServiceCategory string   `json:"serviceCategory"`
	SubCategories   []string `json:"subCategories"`
	Keywords        []string `json:"keywords"`
	Description     string   `json:"description"`
	Price           *float64 `json:"price"`
}

type ProvidersResponse struct {
	Providers []Provider `json:"providers"`
}

type ProviderResponse struct {
	Provider Provider `json:"provider"`
}

type OfferingResponse struct {
	Service ServiceOffering `json:"service"`
}
