package services

import (
	"context"
	"fmt"
	"strings"

	"societyBack/internal/models"
)

// allowedImageTypes are the portfolio upload formats.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type ProviderService struct {
	Providers   ProviderStore
	Offerings   OfferingStore
	Storage     ImageStorage
	ImageFolder string
}

// ListProviders returns the roster with every provider's offerings attached.
func (s *ProviderService) ListProviders(ctx context.Context) ([]models.Provider, error) {
	providers, err := s.Providers.ListProviders(ctx)
	if err != nil {
		return nil, err
	}
	offerings, err := s.Offerings.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byProvider := make(map[int][]models.ServiceOffering, len(providers))
	for _, o := range offerings {
		byProvider[o.ProviderID] = append(byProvider[o.ProviderID], o)
	}
	for i := range providers {
		if list, ok := byProvider[providers[i].ID]; ok {
			providers[i].ServiceOfferings = list
		}
	}
	return providers, nil
}

func (s *ProviderService) GetProvider(ctx context.Context, id int) (models.Provider, error) {
	p, err := s.Providers.GetProviderByID(ctx, id)
	if err != nil {
		return models.Provider{}, err
	}
	return s.withOfferings(ctx, p)
}

func (s *ProviderService) withOfferings(ctx context.Context, p models.Provider) (models.Provider, error) {
	offerings, err := s.Offerings.ListByProvider(ctx, p.ID)
	if err != nil {
		return models.Provider{}, err
	}
	p.ServiceOfferings = offerings
	return p, nil
}

// UpsertProfile creates or edits the caller's provider profile.
func (s *ProviderService) UpsertProfile(ctx context.Context, userID int, role string, req models.ProviderProfileRequest) (models.Provider, error) {
	if role != models.RoleProvider && role != models.RoleAdmin {
		return models.Provider{}, models.ErrForbidden
	}
	if req.Experience < 0 {
		req.Experience = 0
	}
	req.Bio = strings.TrimSpace(req.Bio)

	id, err := s.Providers.UpsertProfile(ctx, userID, req)
	if err != nil {
		return models.Provider{}, err
	}
	return s.GetProvider(ctx, id)
}

func validateOffering(req *models.OfferingRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.ServiceCategory = strings.TrimSpace(req.ServiceCategory)
	if req.Name == "" {
		return models.ErrInvalidOffering
	}
	if req.Price != nil && *req.Price < 0 {
		return models.ErrInvalidOffering
	}
	return nil
}

// AddOffering lists a new offering on the caller's profile.
func (s *ProviderService) AddOffering(ctx context.Context, userID int, req models.OfferingRequest) (models.ServiceOffering, error) {
	if err := validateOffering(&req); err != nil {
		return models.ServiceOffering{}, err
	}
	p, err := s.Providers.GetProviderByUserID(ctx, userID)
	if err != nil {
		return models.ServiceOffering{}, err
	}

	id, err := s.Offerings.Create(ctx, p.ID, req)
	if err != nil {
		return models.ServiceOffering{}, err
	}
	return s.Offerings.GetByID(ctx, id)
}

// ensureOwner fails with models.ErrForbidden unless userID owns serviceID.
func (s *ProviderService) ensureOwner(ctx context.Context, userID, serviceID int) error {
	ownerID, err := s.Offerings.OwnerUserID(ctx, serviceID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return models.ErrForbidden
	}
	return nil
}

func (s *ProviderService) UpdateOffering(ctx context.Context, userID, serviceID int, req models.OfferingRequest) (models.ServiceOffering, error) {
	if err := validateOffering(&req); err != nil {
		return models.ServiceOffering{}, err
	}
	if err := s.ensureOwner(ctx, userID, serviceID); err != nil {
		return models.ServiceOffering{}, err
	}
	if err := s.Offerings.Update(ctx, serviceID, req); err != nil {
		return models.ServiceOffering{}, err
	}
	return s.Offerings.GetByID(ctx, serviceID)
}

func (s *ProviderService) DeleteOffering(ctx context.Context, userID, serviceID int) error {
	if err := s.ensureOwner(ctx, userID, serviceID); err != nil {
		return err
	}
	return s.Offerings.Delete(ctx, serviceID)
}

// AddOfferingImage uploads a portfolio image and appends it to the offering.
func (s *ProviderService) AddOfferingImage(ctx context.Context, userID, serviceID int, contentType string, data []byte) (models.ServiceOffering, error) {
	if !allowedImageTypes[contentType] {
		return models.ServiceOffering{}, models.ErrInvalidImage
	}
	if err := s.ensureOwner(ctx, userID, serviceID); err != nil {
		return models.ServiceOffering{}, err
	}

	url, err := s.Storage.Upload(ctx, fmt.Sprintf("%s/%d", s.ImageFolder, serviceID), contentType, data)
	if err != nil {
		return models.ServiceOffering{}, err
	}
	if err := s.Offerings.AddImage(ctx, serviceID, url); err != nil {
		return models.ServiceOffering{}, err
	}
	return s.Offerings.GetByID(ctx, serviceID)
}
