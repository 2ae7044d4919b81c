//go:build integration
// +build integration

package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"konnect/internal/auth"
	"konnect/internal/database"
	"konnect/internal/models"
	"konnect/internal/repository"
	"konnect/internal/storage"
)

// setupPostgres starts a PostgreSQL container and migrates the schema into it
func setupPostgres(t *testing.T) *repository.Repository {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("konnect"),
		postgres.WithUsername("konnect"),
		postgres.WithPassword("konnect"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Connect("postgres", connStr))
	require.NoError(t, database.AutoMigrate())

	return repository.NewRepository(database.GetDB())
}

func TestPostgresMarketplaceScenario(t *testing.T) {
	auth.InitJWT("integration-secret")
	repo := setupPostgres(t)
	ctx := context.Background()

	authService := NewAuthService(repo, time.Hour)
	campaigns := NewCampaignService(repo, storage.NewStore(t.TempDir(), 0))
	applications := NewApplicationService(repo)
	reports := NewReportService(repo)
	admin := NewAdminService(repo)

	adminUser, err := authService.SeedAdmin(ctx, "admin@example.com", "s3cret-pass")
	require.NoError(t, err)
	biz, err := authService.Register(ctx, RegisterInput{
		Email: "b@example.com", Password: "s3cret-pass", ConfirmPassword: "s3cret-pass",
		Role: "business", CompanyName: "Acme",
	})
	require.NoError(t, err)

	_, err = authService.Register(ctx, RegisterInput{
		Email: "B@Example.com", Password: "s3cret-pass", ConfirmPassword: "s3cret-pass",
		Role: "creator", DisplayName: "Dup",
	})
	assert.True(t, IsValidation(err))

	campaign, err := campaigns.Create(ctx, biz.ID, CampaignInput{
		Title: "Launch", Description: "Launch campaign", Budget: "2500.75",
		StartDate: "2026-11-01", EndDate: "2026-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "2500.75", campaign.Budget.Decimal.StringFixed(2))

	// concurrent applications from distinct creators plus duplicates from one of them
	var creators []*models.User
	for i, name := range []string{"Ann", "Ben", "Cat"} {
		u, err := authService.Register(ctx, RegisterInput{
			Email: string(rune('a'+i)) + "@creators.io", Password: "s3cret-pass", ConfirmPassword: "s3cret-pass",
			Role: "creator", DisplayName: name,
		})
		require.NoError(t, err)
		creators = append(creators, u)
	}

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := applications.Apply(ctx, creators[0].ID, campaign.ID, "pick me")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 7, conflicts)

	list, err := applications.ListForCampaign(ctx, biz.ID, campaign.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// accept and reject racing on the same pending application: exactly one wins
	var respondWG sync.WaitGroup
	outcomes := make(chan error, 2)
	for _, accept := range []bool{true, false} {
		respondWG.Add(1)
		go func(accept bool) {
			defer respondWG.Done()
			outcomes <- applications.Respond(ctx, biz.ID, list[0].ID, accept)
		}(accept)
	}
	respondWG.Wait()
	close(outcomes)

	var won int
	for err := range outcomes {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, won)

	// ban from report commits atomically on postgres
	report, err := reports.Create(ctx, biz, ReportInput{ReportedUserID: creators[1].ID, Reason: "spam"})
	require.NoError(t, err)
	_, err = reports.BanFromReport(ctx, adminUser.ID, report.ID)
	require.NoError(t, err)

	_, err = authService.Authenticate(ctx, creators[1].Email, "s3cret-pass")
	assert.ErrorIs(t, err, ErrBanned)

	// varchar columns on postgres reject split characters
	_, err = authService.Login(ctx, "b@example.com", "s3cret-pass", SessionMeta{
		UserAgent: "Mozilla/5.0 " + strings.Repeat("日本", 100),
	})
	require.NoError(t, err)

	orphan := &models.Application{CampaignID: 9999, CreatorUserID: 8888, PitchMessage: "x", Status: models.ApplicationStatusPending}
	assert.ErrorIs(t, repo.CreateApplication(ctx, orphan), gorm.ErrForeignKeyViolated)

	stats, err := admin.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalUsers)
	require.NotEmpty(t, stats.RecentLogs)
	assert.Equal(t, float64(report.ID), stats.RecentLogs[0].Details["report_id"])
}
