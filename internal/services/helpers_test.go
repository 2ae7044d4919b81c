package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"konnect/internal/auth"
	"konnect/internal/database/dbtest"
	"konnect/internal/models"
	"konnect/internal/repository"
	"konnect/internal/storage"
)

const testPassword = "s3cret-pass"

type recordedEvent struct {
	userID  uint
	event   string
	payload interface{}
}

type recordingNotifier struct {
	events []recordedEvent
}

func (n *recordingNotifier) Notify(userID uint, event string, payload interface{}) {
	n.events = append(n.events, recordedEvent{userID: userID, event: event, payload: payload})
}

type testEnv struct {
	ctx          context.Context
	db           *gorm.DB
	repo         *repository.Repository
	files        *storage.Store
	filesDir     string
	notifier     *recordingNotifier
	auth         *AuthService
	users        *UserService
	admin        *AdminService
	campaigns    *CampaignService
	applications *ApplicationService
	invites      *InviteService
	reports      *ReportService
	creators     *CreatorService
	businesses   *BusinessService
	messages     *MessageService
	dashboards   *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth.InitJWT("services-test-secret")

	db := dbtest.Open(t)
	repo := repository.NewRepository(db)
	dir := t.TempDir()
	files := storage.NewStore(dir, 0)
	notifier := &recordingNotifier{}

	return &testEnv{
		ctx:          context.Background(),
		db:           db,
		repo:         repo,
		files:        files,
		filesDir:     dir,
		notifier:     notifier,
		auth:         NewAuthService(repo, 0),
		users:        NewUserService(repo),
		admin:        NewAdminService(repo),
		campaigns:    NewCampaignService(repo, files),
		applications: NewApplicationService(repo),
		invites:      NewInviteService(repo),
		reports:      NewReportService(repo),
		creators:     NewCreatorService(repo, files),
		businesses:   NewBusinessService(repo),
		messages:     NewMessageService(repo, notifier),
		dashboards:   NewDashboardService(repo),
	}
}

func (e *testEnv) creator(t *testing.T, email, name string) *models.User {
	t.Helper()
	u, err := e.auth.Register(e.ctx, RegisterInput{
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
		Role:            string(models.RoleCreator),
		DisplayName:     name,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) business(t *testing.T, email, company string) *models.User {
	t.Helper()
	u, err := e.auth.Register(e.ctx, RegisterInput{
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
		Role:            string(models.RoleBusiness),
		CompanyName:     company,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) adminUser(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := e.auth.SeedAdmin(e.ctx, email, testPassword)
	require.NoError(t, err)
	return u
}

func (e *testEnv) campaign(t *testing.T, businessID uint, title string) *models.Campaign {
	t.Helper()
	c, err := e.campaigns.Create(e.ctx, businessID, CampaignInput{
		Title:       title,
		Description: "Describe " + title,
		Budget:      "500",
	})
	require.NoError(t, err)
	return c
}

func (e *testEnv) reload(t *testing.T, dest interface{}, id interface{}) {
	t.Helper()
	require.NoError(t, e.db.First(dest, id).Error)
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}
