package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
)

const maxReasonLength = 255

// ReportService handles user reports and their moderation
type ReportService struct {
	repo *repository.Repository
}

// NewReportService creates a new ReportService
func NewReportService(repo *repository.Repository) *ReportService {
	return &ReportService{repo: repo}
}

// ReportInput is a complaint filed from a creator or business dashboard
type ReportInput struct {
	ReportedUserID uint
	Reason         string
	Details        string
}

// ReportableRole returns the role a reporter of role r may report.
// Businesses report creators and creators report businesses.
func ReportableRole(r models.Role) (models.Role, bool) {
	switch r {
	case models.RoleBusiness:
		return models.RoleCreator, true
	case models.RoleCreator:
		return models.RoleBusiness, true
	}
	return "", false
}

// Create files a pending report from reporter against the reported user
func (s *ReportService) Create(ctx context.Context, reporter *models.User, in ReportInput) (*models.Report, error) {
	if in.ReportedUserID == reporter.ID {
		return nil, invalid("reportedUserId", "you cannot report yourself")
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, invalid("reason", "please give a reason for the report")
	}
	if len(reason) > maxReasonLength {
		return nil, invalid("reason", fmt.Sprintf("reason must be at most %d characters", maxReasonLength))
	}

	target, err := s.repo.GetUserByID(ctx, in.ReportedUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("reported user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reported user: %w", err)
	}

	want, ok := ReportableRole(reporter.Role)
	if !ok {
		return nil, ErrForbidden
	}
	if target.Role != want {
		return nil, invalid("reportedUserId", fmt.Sprintf("you can only report %s accounts", want))
	}

	report := &models.Report{
		ReporterUserID: reporter.ID,
		ReportedUserID: target.ID,
		Reason:         reason,
		Status:         models.ReportStatusPending,
	}
	if details := strings.TrimSpace(in.Details); details != "" {
		report.Details = &details
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	log.Printf("User %d reported user %d (report %d)", reporter.ID, target.ID, report.ID)
	return report, nil
}

// List returns reports for the admin queue, optionally filtered by status
func (s *ReportService) List(ctx context.Context, status string, page int) (*Paged[models.Report], error) {
	filter := models.ReportStatus(status)
	switch filter {
	case "", models.ReportStatusPending, models.ReportStatusReviewed, models.ReportStatusActionTaken, models.ReportStatusDismissed:
	default:
		return nil, invalid("status", "unknown report status")
	}

	reports, total, err := s.repo.ListReports(ctx, filter, pageWindow(page, AdminListPerPage))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return newPaged(reports, total, page, AdminListPerPage), nil
}

// Get returns one report with both parties
func (s *ReportService) Get(ctx context.Context, reportID uint) (*models.Report, error) {
	report, err := s.repo.GetReportByID(ctx, reportID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("report")
	}
	return report, err
}

// UpdateStatus moves a report along pending -> reviewed -> action_taken | dismissed
func (s *ReportService) UpdateStatus(ctx context.Context, adminID, reportID uint, status string) error {
	next := models.ReportStatus(status)
	from := models.ReportTransitionSources(next)
	if len(from) == 0 {
		return invalid("status", "status must be reviewed, action_taken or dismissed")
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := transitionReport(ctx, tx, reportID, from, next); err != nil {
			return err
		}
		return logAdminAction(ctx, tx, adminID, models.AdminActionUpdateReportStatus, "report", reportID, map[string]interface{}{
			"status": string(next),
		})
	})
}

// Dismiss closes a report without action
func (s *ReportService) Dismiss(ctx context.Context, adminID, reportID uint) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		from := models.ReportTransitionSources(models.ReportStatusDismissed)
		if err := transitionReport(ctx, tx, reportID, from, models.ReportStatusDismissed); err != nil {
			return err
		}
		return logAdminAction(ctx, tx, adminID, models.AdminActionDismissReport, "report", reportID, nil)
	})
}

// BanFromReport bans the reported user and marks the report action_taken.
// The ban, the session revocation, the report update and the audit entry commit together or not at all.
func (s *ReportService) BanFromReport(ctx context.Context, adminID, reportID uint) (*models.Report, error) {
	var banned uint

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		report, err := tx.GetReportByID(ctx, reportID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("report")
		}
		if err != nil {
			return err
		}
		if report.ReportedUserID == adminID {
			return ErrSelfBan
		}

		n, err := tx.SetUserBanned(ctx, report.ReportedUserID, true)
		if err != nil {
			return fmt.Errorf("failed to ban user: %w", err)
		}
		if n == 0 {
			return notFound("reported user")
		}
		if _, err := tx.RevokeUserSessions(ctx, report.ReportedUserID, time.Now()); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}

		from := models.ReportTransitionSources(models.ReportStatusActionTaken)
		if err := transitionReport(ctx, tx, reportID, from, models.ReportStatusActionTaken); err != nil {
			return err
		}

		banned = report.ReportedUserID
		return logAdminAction(ctx, tx, adminID, models.AdminActionBanFromReport, "user", report.ReportedUserID, map[string]interface{}{
			"report_id": reportID,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Admin %d banned user %d based on report %d", adminID, banned, reportID)
	return s.Get(ctx, reportID)
}

func transitionReport(
	ctx context.Context,
	tx *repository.Repository,
	reportID uint,
	from []models.ReportStatus,
	next models.ReportStatus,
) error {
	n, err := tx.UpdateReportStatus(ctx, reportID, from, next, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if n == 1 {
		return nil
	}

	report, err := tx.GetReportByID(ctx, reportID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("report")
	}
	if err != nil {
		return err
	}
	return conflict(fmt.Sprintf("a %s report cannot become %s", report.Status, next))
}

func logAdminAction(
	ctx context.Context,
	tx *repository.Repository,
	adminID uint,
	action string,
	resourceType string,
	resourceID uint,
	details map[string]interface{},
) error {
	entry := &models.AdminLog{
		AdminUserID:  adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   &resourceID,
	}
	if details != nil {
		entry.Details = datatypes.JSONMap(details)
	}
	if err := tx.CreateAdminLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to write admin log: %w", err)
	}
	return nil
}
