package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
)

// AdminService handles user moderation and the admin dashboard
type AdminService struct {
	repo *repository.Repository
}

func NewAdminService(repo *repository.Repository) *AdminService {
	return &AdminService{repo: repo}
}

// DashboardStats is the admin landing page summary
type DashboardStats struct {
	TotalUsers      int64                 `json:"total_users"`
	UsersByRole     map[models.Role]int64 `json:"users_by_role"`
	TotalCampaigns  int64                 `json:"total_campaigns"`
	ActiveCampaigns int64                 `json:"active_campaigns"`
	TotalReports    int64                 `json:"total_reports"`
	PendingReports  int64                 `json:"pending_reports"`
	RecentLogs      []models.AdminLog     `json:"recent_logs"`
}

// GetAllUsers returns users whose email matches search
func (s *AdminService) GetAllUsers(ctx context.Context, search string, page int) (*Paged[models.User], error) {
	users, total, err := s.repo.ListUsers(ctx, search, pageWindow(page, AdminListPerPage))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return newPaged(users, total, page, AdminListPerPage), nil
}

// BanUser bans a user and ends all of their sessions. Admins cannot ban themselves.
func (s *AdminService) BanUser(ctx context.Context, adminID, userID uint) error {
	return s.setBanned(ctx, adminID, userID, true)
}

// UnbanUser lifts a ban
func (s *AdminService) UnbanUser(ctx context.Context, adminID, userID uint) error {
	return s.setBanned(ctx, adminID, userID, false)
}

func (s *AdminService) setBanned(ctx context.Context, adminID, userID uint, banned bool) error {
	if banned && adminID == userID {
		return ErrSelfBan
	}

	action := models.AdminActionUnbanUser
	if banned {
		action = models.AdminActionBanUser
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.SetUserBanned(ctx, userID, banned)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if n == 0 {
			return notFound("user")
		}
		if banned {
			if _, err := tx.RevokeUserSessions(ctx, userID, time.Now()); err != nil {
				return fmt.Errorf("failed to revoke sessions: %w", err)
			}
		}
		return logAdminAction(ctx, tx, adminID, action, "user", userID, nil)
	})
	if err != nil {
		return err
	}

	log.Printf("Admin %d set banned=%t for user %d", adminID, banned, userID)
	return nil
}

// GetUser returns any account for the moderation view
func (s *AdminService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user")
	}
	return user, err
}

// GetDashboardStats returns platform counters and the latest moderation actions
func (s *AdminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.UsersByRole, err = s.repo.CountUsersByRole(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCampaigns, err = s.repo.CountCampaigns(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveCampaigns, err = s.repo.CountCampaigns(ctx, models.CampaignStatusActive); err != nil {
		return nil, err
	}
	if stats.TotalReports, err = s.repo.CountReports(ctx); err != nil {
		return nil, err
	}
	if stats.PendingReports, err = s.repo.CountReports(ctx, models.ReportStatusPending); err != nil {
		return nil, err
	}
	if stats.RecentLogs, err = s.repo.ListAdminLogs(ctx, repository.Page{Limit: 10}); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetAdminLogs returns admin activity logs
func (s *AdminService) GetAdminLogs(ctx context.Context, limit, offset int) ([]models.AdminLog, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultAdminLogSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListAdminLogs(ctx, repository.Page{Limit: limit, Offset: offset})
}
