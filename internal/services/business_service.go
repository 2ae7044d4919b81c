package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
)

const (
	maxWebsiteLength  = 255
	maxIndustryLength = 100
)

// BusinessService manages business profiles
type BusinessService struct {
	repo *repository.Repository
}

// NewBusinessService creates a new BusinessService
func NewBusinessService(repo *repository.Repository) *BusinessService {
	return &BusinessService{repo: repo}
}

// BusinessProfileInput is the business profile form
type BusinessProfileInput struct {
	CompanyName string
	Website     string
	Industry    string
	Description string
}

// GetProfile returns the business's own profile
func (s *BusinessService) GetProfile(ctx context.Context, businessID uint) (*models.Business, error) {
	business, err := s.repo.GetBusiness(ctx, businessID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("business profile")
	}
	return business, err
}

// UpdateProfile validates and saves the profile form
func (s *BusinessService) UpdateProfile(ctx context.Context, businessID uint, in BusinessProfileInput) (*models.Business, error) {
	business, err := s.GetProfile(ctx, businessID)
	if err != nil {
		return nil, err
	}

	companyName := strings.TrimSpace(in.CompanyName)
	if companyName == "" || len(companyName) > maxCompanyNameLength {
		return nil, invalid("companyName", fmt.Sprintf("company name is required and must be at most %d characters", maxCompanyNameLength))
	}

	website := strings.TrimSpace(in.Website)
	if website != "" {
		if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
			return nil, invalid("website", "website must start with http:// or https://")
		}
		if len(website) > maxWebsiteLength {
			return nil, invalid("website", fmt.Sprintf("website must be at most %d characters", maxWebsiteLength))
		}
	}

	industry := strings.TrimSpace(in.Industry)
	if len(industry) > maxIndustryLength {
		return nil, invalid("industry", fmt.Sprintf("industry must be at most %d characters", maxIndustryLength))
	}

	business.CompanyName = companyName
	business.Website = website
	business.Industry = industry
	business.Description = strings.TrimSpace(in.Description)

	if err := s.repo.SaveBusiness(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to save business profile: %w", err)
	}

	log.Printf("Business %d updated profile", businessID)
	return business, nil
}
