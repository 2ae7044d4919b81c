package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
	"konnect/internal/storage"
)

const (
	maxNicheLength = 100
	maxLinkLength  = 255
)

// CreatorService manages creator profiles and the creator directory
type CreatorService struct {
	repo  *repository.Repository
	files FileStore
}

// NewCreatorService creates a new CreatorService
func NewCreatorService(repo *repository.Repository, files FileStore) *CreatorService {
	return &CreatorService{repo: repo, files: files}
}

// CreatorProfileInput is the creator profile form
type CreatorProfileInput struct {
	DisplayName   string
	Bio           string
	Niche         string
	PricingInfo   string
	FollowerCount string
	Instagram     string
	YouTube       string
	TikTok        string
	MediaKit      *storage.Upload
}

// GetProfile returns the creator's own profile
func (s *CreatorService) GetProfile(ctx context.Context, creatorID uint) (*models.Creator, error) {
	creator, err := s.repo.GetCreator(ctx, creatorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("creator profile")
	}
	return creator, err
}

// GetPublicProfile returns a creator profile as shown to businesses. Banned creators are hidden.
func (s *CreatorService) GetPublicProfile(ctx context.Context, creatorID uint) (*models.Creator, error) {
	creator, err := s.GetProfile(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator.User == nil || creator.User.Banned || creator.User.Role != models.RoleCreator {
		return nil, notFound("creator")
	}
	return creator, nil
}

// UpdateProfile saves the profile form. A new media kit replaces the previous file.
func (s *CreatorService) UpdateProfile(ctx context.Context, creatorID uint, in CreatorProfileInput) (*models.Creator, error) {
	creator, err := s.GetProfile(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" || len(displayName) > maxDisplayNameLength {
		return nil, invalid("displayName", fmt.Sprintf("display name is required and must be at most %d characters", maxDisplayNameLength))
	}
	niche := strings.TrimSpace(in.Niche)
	if len(niche) > maxNicheLength {
		return nil, invalid("niche", fmt.Sprintf("niche must be at most %d characters", maxNicheLength))
	}

	followers := 0
	if raw := strings.TrimSpace(in.FollowerCount); raw != "" {
		followers, err = strconv.Atoi(raw)
		if err != nil {
			return nil, invalid("followerCount", "follower count must be a whole number")
		}
		if followers < 0 {
			followers = 0
		}
	}

	links := models.SocialLinks{}
	for platform, raw := range map[string]string{
		models.PlatformInstagram: in.Instagram,
		models.PlatformYouTube:   in.YouTube,
		models.PlatformTikTok:    in.TikTok,
	} {
		link := strings.TrimSpace(raw)
		if link == "" {
			continue
		}
		if len(link) > maxLinkLength {
			return nil, invalid(platform, fmt.Sprintf("link must be at most %d characters", maxLinkLength))
		}
		links[platform] = link
	}

	newKit, err := saveUpload(s.files, storage.CategoryMediaKits, "mediaKit", in.MediaKit)
	if err != nil {
		return nil, err
	}

	oldKit := creator.MediaKitPath
	creator.DisplayName = displayName
	creator.Bio = strings.TrimSpace(in.Bio)
	creator.Niche = niche
	creator.PricingInfo = strings.TrimSpace(in.PricingInfo)
	creator.FollowerCount = followers
	creator.SocialLinks = datatypes.NewJSONType(links)
	if newKit != nil {
		creator.MediaKitPath = newKit
	}

	if err := s.repo.SaveCreator(ctx, creator); err != nil {
		discardFile(s.files, newKit)
		return nil, fmt.Errorf("failed to save creator profile: %w", err)
	}
	if newKit != nil {
		discardFile(s.files, oldKit)
	}

	log.Printf("Creator %d updated profile", creatorID)
	return creator, nil
}

// Search lists creators for businesses, most followed first
func (s *CreatorService) Search(ctx context.Context, niche string, minFollowers, page int) (*Paged[models.Creator], error) {
	creators, total, err := s.repo.SearchCreators(ctx, repository.CreatorFilter{
		Niche:        niche,
		MinFollowers: minFollowers,
	}, pageWindow(page, CreatorsPerPage))
	if err != nil {
		return nil, fmt.Errorf("failed to search creators: %w", err)
	}
	return newPaged(creators, total, page, CreatorsPerPage), nil
}
