package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"konnect/internal/auth"
	"konnect/internal/database/dbtest"
	"konnect/internal/repository"
	"konnect/internal/services"
	"konnect/internal/storage"
	ws "konnect/internal/websocket"
)

const testPassword = "s3cret-pass"

type server struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	auth   *services.AuthService
}

type response struct {
	Code    int
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Field   string          `json:"field"`
	header  http.Header
}

func (r *response) decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v))
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.InitJWT("handlers-test-secret")

	db := dbtest.Open(t)
	repo := repository.NewRepository(db)
	files := storage.NewStore(t.TempDir(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub()
	go hub.Run(ctx)

	authService := services.NewAuthService(repo, 0)
	userService := services.NewUserService(repo)
	campaigns := services.NewCampaignService(repo, files)
	applications := services.NewApplicationService(repo)
	invites := services.NewInviteService(repo)
	reports := services.NewReportService(repo)
	creators := services.NewCreatorService(repo, files)
	businesses := services.NewBusinessService(repo)
	dashboards := services.NewDashboardService(repo)
	messages := services.NewMessageService(repo, hub)

	router := gin.New()
	RegisterRoutes(router, authService, &Handlers{
		Auth:     NewAuthHandler(authService, userService, false),
		Creator:  NewCreatorHandler(campaigns, applications, invites, creators, dashboards),
		Business: NewBusinessHandler(campaigns, applications, invites, creators, businesses, dashboards),
		Report:   NewReportHandler(reports, userService),
		Admin:    NewAdminHandler(services.NewAdminService(repo), reports, campaigns),
		Chat:     NewChatHandler(messages, hub, nil),
	})

	return &server{t: t, db: db, router: router, auth: authService}
}

func (s *server) do(req *http.Request, token string) *response {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	res := &response{Code: w.Code, header: w.Header()}
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), res), w.Body.String())
	}
	return res
}

func (s *server) get(path, token string) *response {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil), token)
}

func (s *server) postForm(path, token string, form url.Values) *response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, token)
}

func (s *server) postJSON(path, token string, body interface{}) *response {
	raw, err := json.Marshal(body)
	require.NoError(s.t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, token)
}

func (s *server) postMultipart(path, token string, fields map[string]string, fileField, filename string, content []byte) *response {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(s.t, err)
		_, err = fw.Write(content)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req, token)
}

// signup registers an account and logs it in, returning the user id and token
func (s *server) signup(email, role, name string) (uint, string) {
	s.t.Helper()
	form := url.Values{
		"email":           {email},
		"password":        {testPassword},
		"confirmPassword": {testPassword},
		"role":            {role},
		"displayName":     {name},
		"companyName":     {name},
	}
	res := s.postForm("/register", "", form)
	require.Equal(s.t, http.StatusCreated, res.Code, res.Error)

	var user struct {
		ID uint `json:"id"`
	}
	res.decode(s.t, &user)
	return user.ID, s.login(email)
}

func (s *server) login(email string) string {
	s.t.Helper()
	res := s.postJSON("/login", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(s.t, http.StatusOK, res.Code, res.Error)

	var out struct {
		Token string `json:"token"`
	}
	res.decode(s.t, &out)
	return out.Token
}

func (s *server) admin(email string) (uint, string) {
	s.t.Helper()
	u, err := s.auth.SeedAdmin(context.Background(), email, testPassword)
	require.NoError(s.t, err)
	return u.ID, s.login(email)
}
