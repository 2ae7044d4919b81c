package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"konnect/internal/auth"
	"konnect/internal/models"
	"konnect/internal/repository"
)

const (
	maxEmailLength       = 255
	minPasswordLength    = 8
	maxDisplayNameLength = 100
	maxCompanyNameLength = 255
)

// AuthService handles registration, login and session resolution
type AuthService struct {
	repo       *repository.Repository
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(repo *repository.Repository, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessionTTL: sessionTTL}
}

// RegisterInput is the self-service sign-up form
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
	DisplayName     string
	CompanyName     string
}

// SessionMeta describes the client a session is issued to
type SessionMeta struct {
	UserAgent string
	IP        string
}

// LoginResult is returned after a successful login
type LoginResult struct {
	User      *models.User
	Token     string
	SessionID uuid.UUID
	ExpiresAt time.Time
	Redirect  string
}

// NormalizeEmail trims and lowercases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a creator or business account together with its empty profile.
// Both rows are written in one transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") || len(email) > maxEmailLength {
		return nil, invalid("email", "please enter a valid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, invalid("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if in.Password != in.ConfirmPassword {
		return nil, invalid("confirmPassword", "passwords do not match")
	}

	role, err := models.ParseRole(in.Role)
	if err != nil || role == models.RoleAdmin {
		return nil, invalid("role", "please select creator or business")
	}

	displayName := strings.TrimSpace(in.DisplayName)
	companyName := strings.TrimSpace(in.CompanyName)
	switch role {
	case models.RoleCreator:
		if displayName == "" || len(displayName) > maxDisplayNameLength {
			return nil, invalid("displayName", fmt.Sprintf("display name is required and must be at most %d characters", maxDisplayNameLength))
		}
	case models.RoleBusiness:
		if companyName == "" || len(companyName) > maxCompanyNameLength {
			return nil, invalid("companyName", fmt.Sprintf("company name is required and must be at most %d characters", maxCompanyNameLength))
		}
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, invalid("email", "this email address is already registered")
	}

	user, err := newUser(email, in.Password, role)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		if role == models.RoleCreator {
			return tx.CreateCreator(ctx, &models.Creator{
				UserID:      user.ID,
				DisplayName: displayName,
				SocialLinks: datatypes.NewJSONType(models.SocialLinks{}),
			})
		}
		return tx.CreateBusiness(ctx, &models.Business{
			UserID:      user.ID,
			CompanyName: companyName,
		})
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, invalid("email", "this email address is already registered")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Printf("New %s registered: %s (ID: %d)", role, email, user.ID)
	return s.repo.GetUserByID(ctx, user.ID)
}

// Authenticate checks credentials. An unknown email is NotFound, a banned account is Banned
// and a wrong password is BadCredential.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("account")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.Banned {
		return nil, ErrBanned
	}
	if !auth.VerifyPassword(password, user.PasswordHash, user.Salt) {
		return nil, ErrBadCredential
	}

	return user, nil
}

// Login authenticates and opens a new session
func (s *AuthService) Login(ctx context.Context, email, password string, meta SessionMeta) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:    user.ID,
		UserAgent: truncate(meta.UserAgent, 255),
		IP:        truncate(meta.IP, 64),
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := auth.GenerateToken(session.ID, user.ID, string(user.Role), session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	log.Printf("User logged in: %s (ID: %d)", user.Email, user.ID)
	return &LoginResult{
		User:      user,
		Token:     token,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
		Redirect:  user.Role.DashboardPath(),
	}, nil
}

// Logout revokes a session. Unknown or already revoked sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.RevokeSession(ctx, sessionID, time.Now()); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ResolveSession returns the session user if the session is live and belongs to userID.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID uuid.UUID, userID uint) (*models.User, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID || !session.Live(time.Now()) {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// RevokeUserSessions ends every session of userID
func (s *AuthService) RevokeUserSessions(ctx context.Context, userID uint) error {
	n, err := s.repo.RevokeUserSessions(ctx, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	if n > 0 {
		log.Printf("Revoked %d session(s) of user %d", n, userID)
	}
	return nil
}

// SweepSessions deletes sessions that expired or were revoked more than retention ago
func (s *AuthService) SweepSessions(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := s.repo.DeleteStaleSessions(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale sessions: %w", err)
	}
	return n, nil
}

// SeedAdmin creates an admin account. Admins cannot sign up through Register.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") || len(email) > maxEmailLength {
		return nil, invalid("email", "please enter a valid email address")
	}
	if len(password) < minPasswordLength {
		return nil, invalid("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, invalid("email", "this email address is already registered")
	}

	user, err := newUser(email, password, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	log.Printf("Admin account created: %s (ID: %d)", email, user.ID)
	return user, nil
}

func newUser(email, password string, role models.Role) (*models.User, error) {
	salt, err := auth.GenerateSalt()
	if err != nil {
		return nil, err
	}
	digest, err := auth.HashPassword(password, salt)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Email:        email,
		PasswordHash: digest,
		Salt:         salt,
		Role:         role,
	}, nil
}

// truncate limits s to at most n bytes without splitting a character.
// Invalid UTF-8 from the client is dropped first.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
