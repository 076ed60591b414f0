package handler

import (
	"PeerFund_Auth/internal/logger"
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/repository"
	"PeerFund_Auth/internal/security"
	"PeerFund_Auth/internal/service"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

type testApp struct {
	router     *chi.Mux
	repository *repository.MemoryMemberRepository
	now        time.Time
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	app := &testApp{repository: repository.NewMemoryMemberRepository(), now: testNow}

	codec, err := security.NewJWTCodec([]byte("handler-secret"), security.DefaultPolicy(),
		security.WithClock(func() time.Time { return app.now }))
	require.NoError(t, err)

	hash, err := service.HashPassword("correct-pw")
	require.NoError(t, err)
	for _, member := range []*model.Member{
		{Username: "alice", Password: hash, Roles: []string{"ROLE_USER"}},
		{Username: "root", Password: hash, Roles: []string{"ROLE_USER", AuthorityAdmin}},
	} {
		_, err := app.repository.Save(context.Background(), member)
		require.NoError(t, err)
	}

	authenticationService := service.NewAuthenticationService(app.repository, codec, nil)
	credentialAuthenticator := service.NewCredentialAuthenticator(
		service.NewPasswordAuthenticationManager(app.repository), app.repository, codec)

	app.router = chi.NewRouter()
	app.router.Use(middleware.RequestID)
	app.router.Use(Logging(logger.NewNoop().Logger))
	RegisterRoutes(app.router, NewAuthenticationHandler(credentialAuthenticator), authenticationService)
	return app
}

func (app *testApp) do(request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	app.router.ServeHTTP(recorder, request)
	return recorder
}

func (app *testApp) login(t *testing.T, username string, password string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"}`
	return app.do(httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
}

func (app *testApp) loginTokens(t *testing.T, username string) (string, string) {
	t.Helper()
	recorder := app.login(t, username, "correct-pw")
	require.Equal(t, http.StatusOK, recorder.Code)
	return bearer(t, recorder.Header().Get(security.AccessTokenHeader)),
		bearer(t, recorder.Header().Get(security.RefreshTokenHeader))
}

func bearer(t *testing.T, header string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(header, security.TokenPrefix), "header %q", header)
	return strings.TrimPrefix(header, security.TokenPrefix)
}

func apiRequest(path string, accessToken string, refreshToken string) *http.Request {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if accessToken != "" {
		request.Header.Set(security.AccessTokenHeader, security.TokenPrefix+accessToken)
	}
	if refreshToken != "" {
		request.Header.Set(security.RefreshTokenHeader, security.TokenPrefix+refreshToken)
	}
	return request
}

func decodeMessage(t *testing.T, recorder *httptest.ResponseRecorder) MessageResponse {
	t.Helper()
	var response MessageResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func decodeException(t *testing.T, recorder *httptest.ResponseRecorder) ExceptionResponse {
	t.Helper()
	var response ExceptionResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestLogin_Success(t *testing.T) {
	app := newTestApp(t)

	recorder := app.login(t, "alice", "correct-pw")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, contentTypeJSON, recorder.Header().Get("Content-Type"))
	assert.Equal(t, MessageResponse{Success: true, Message: "login success"}, decodeMessage(t, recorder))

	bearer(t, recorder.Header().Get(security.AccessTokenHeader))
	refreshToken := bearer(t, recorder.Header().Get(security.RefreshTokenHeader))

	stored, err := app.repository.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, refreshToken, stored.RefreshToken.String)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		expected string
	}{
		{"wrong password", `{"username":"alice","password":"wrong"}`, http.StatusUnauthorized, "login failed: WRONG_PASSWORD"},
		{"unknown member", `{"username":"bob","password":"correct-pw"}`, http.StatusUnauthorized, "login failed: ITEM_NOT_EXIST"},
		{"unparseable body", `{"username":`, http.StatusBadRequest, "login failed: ITEM_NOT_EXIST"},
		{"missing password", `{"username":"alice"}`, http.StatusBadRequest, "login failed: ITEM_NOT_EXIST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			_, previousRefresh := app.loginTokens(t, "alice")

			recorder := app.do(httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body)))

			require.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, MessageResponse{Success: false, Message: tt.expected}, decodeMessage(t, recorder))
			assert.Empty(t, recorder.Header().Get(security.AccessTokenHeader))

			stored, err := app.repository.FindByUsername(context.Background(), "alice")
			require.NoError(t, err)
			assert.Equal(t, previousRefresh, stored.RefreshToken.String)
		})
	}
}

func TestMe_AccessOnly(t *testing.T) {
	app := newTestApp(t)
	accessToken, _ := app.loginTokens(t, "alice")

	app.now = app.now.Add(10 * time.Minute)
	recorder := app.do(apiRequest("/api/me", accessToken, ""))

	require.Equal(t, http.StatusOK, recorder.Code)
	var response CurrentMemberResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "alice", response.Username)
	assert.Equal(t, []string{"ROLE_USER"}, response.Authorities)
	assert.Empty(t, recorder.Header().Get(security.AccessTokenHeader))
	assert.Empty(t, recorder.Header().Get(security.RefreshTokenHeader))
}

func TestMe_AccessOnlyExpired(t *testing.T) {
	app := newTestApp(t)
	accessToken, _ := app.loginTokens(t, "alice")

	app.now = app.now.Add(time.Hour)
	recorder := app.do(apiRequest("/api/me", accessToken, ""))

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, contentTypeJSON, recorder.Header().Get("Content-Type"))
	response := decodeException(t, recorder)
	assert.Equal(t, http.StatusUnauthorized, response.Status)
	assert.True(t, strings.HasPrefix(response.Message, "EXPIRED_EXCEPTION_"), response.Message)
}

func TestMe_FreshRefreshReissuesAccessOnly(t *testing.T) {
	app := newTestApp(t)
	accessToken, refreshToken := app.loginTokens(t, "alice")

	app.now = app.now.Add(time.Hour)
	recorder := app.do(apiRequest("/api/me", accessToken, refreshToken))

	require.Equal(t, http.StatusOK, recorder.Code)
	bearer(t, recorder.Header().Get(security.AccessTokenHeader))
	assert.Empty(t, recorder.Header().Get(security.RefreshTokenHeader))
}

func TestMe_RefreshNearExpiryRotates(t *testing.T) {
	app := newTestApp(t)
	accessToken, refreshToken := app.loginTokens(t, "alice")

	app.now = app.now.Add(8 * 24 * time.Hour)
	recorder := app.do(apiRequest("/api/me", accessToken, refreshToken))

	require.Equal(t, http.StatusOK, recorder.Code)
	reissuedAccess := bearer(t, recorder.Header().Get(security.AccessTokenHeader))
	rotatedRefresh := bearer(t, recorder.Header().Get(security.RefreshTokenHeader))
	assert.NotEqual(t, refreshToken, rotatedRefresh)

	stored, err := app.repository.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, rotatedRefresh, stored.RefreshToken.String)

	// прежний refresh токен больше не сопоставлен ни с кем
	recorder = app.do(apiRequest("/api/me", reissuedAccess, refreshToken))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = app.do(apiRequest("/api/me", reissuedAccess, rotatedRefresh))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestMe_ExpiredRefresh(t *testing.T) {
	app := newTestApp(t)
	accessToken, refreshToken := app.loginTokens(t, "alice")

	app.now = app.now.Add(15 * 24 * time.Hour)
	recorder := app.do(apiRequest("/api/me", accessToken, refreshToken))

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	response := decodeException(t, recorder)
	assert.Equal(t, http.StatusUnauthorized, response.Status)
	assert.True(t, strings.HasPrefix(response.Message, "EXPIRED_EXCEPTION_"), response.Message)
	assert.Empty(t, recorder.Header().Get(security.AccessTokenHeader))
}

func TestMe_ForeignSignature(t *testing.T) {
	app := newTestApp(t)
	foreign, err := security.NewJWTCodec([]byte("other-secret"), security.DefaultPolicy(),
		security.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	accessToken, err := foreign.CreateAccessToken("alice")
	require.NoError(t, err)

	recorder := app.do(apiRequest("/api/me", accessToken, ""))

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.True(t, strings.HasPrefix(decodeException(t, recorder).Message, "EXPIRED_EXCEPTION_"))
}

func TestMe_WithoutTokensIsDenied(t *testing.T) {
	app := newTestApp(t)

	recorder := app.do(apiRequest("/api/me", "", ""))

	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, MessageResponse{Success: false, Message: "authentication required"}, decodeMessage(t, recorder))
}

func TestAdminPing(t *testing.T) {
	app := newTestApp(t)

	userAccess, _ := app.loginTokens(t, "alice")
	recorder := app.do(apiRequest("/api/admin/ping", userAccess, ""))
	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, MessageResponse{Success: false, Message: "admin authority required"}, decodeMessage(t, recorder))

	adminAccess, _ := app.loginTokens(t, "root")
	recorder = app.do(apiRequest("/api/admin/ping", adminAccess, ""))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, MessageResponse{Success: true, Message: "pong"}, decodeMessage(t, recorder))
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	recorder := app.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
