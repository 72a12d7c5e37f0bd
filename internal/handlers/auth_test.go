package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lustrahome/shop/internal/models"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]string{
		"email":      "ivan@example.com",
		"password":   "secret123",
		"first_name": "Ivan",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", load)
	require.NoError(t, env.A.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ivan@example.com", resp.Email)
	require.Equal(t, "user", resp.Role)
	require.NotContains(t, rec.Body.String(), "password_hash")

	var stored models.User
	require.NoError(t, env.DB.Where("email = ?", "ivan@example.com").First(&stored).Error)
	require.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]string{
		"email":      "ivan@example.com",
		"password":   "secret123",
		"first_name": "Ivan",
	}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", load)
	require.NoError(t, env.A.Register(c))

	_, c = env.doJSONRequest(http.MethodPost, "/api/v1/register", load)
	he := httpError(t, env.A.Register(c))
	require.Equal(t, http.StatusConflict, he.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]string{
		"email":      "ivan@example.com",
		"password":   "123",
		"first_name": "Ivan",
	}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", load)
	he := httpError(t, env.A.Register(c))
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestLoginSetsCookies(t *testing.T) {
	env := newTestEnv(t)

	reg := map[string]string{
		"email":      "ivan@example.com",
		"password":   "secret123",
		"first_name": "Ivan",
	}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", reg)
	require.NoError(t, env.A.Register(c))

	login := map[string]string{"email": "ivan@example.com", "password": "secret123"}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", login)
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	names := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		names = append(names, ck.Name)
	}
	require.Contains(t, names, "accessToken")
	require.Contains(t, names, "refreshToken")

	var resp struct {
		IsAdmin bool `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.IsAdmin)

	var count int64
	env.DB.Model(&models.RefreshToken{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	reg := map[string]string{
		"email":      "ivan@example.com",
		"password":   "secret123",
		"first_name": "Ivan",
	}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", reg)
	require.NoError(t, env.A.Register(c))

	login := map[string]string{"email": "ivan@example.com", "password": "wrong"}
	_, c = env.doJSONRequest(http.MethodPost, "/api/v1/login", login)
	he := httpError(t, env.A.Login(c))
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)

	reg := map[string]string{
		"email":      "ivan@example.com",
		"password":   "secret123",
		"first_name": "Ivan",
	}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", reg)
	require.NoError(t, env.A.Register(c))

	login := map[string]string{"email": "ivan@example.com", "password": "secret123"}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", login)
	require.NoError(t, env.A.Login(c))

	var refresh *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "refreshToken" {
			refresh = ck
		}
	}
	require.NotNil(t, refresh)

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/logout", nil, refresh)
	require.NoError(t, env.A.LogOut(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.RefreshToken
	require.NoError(t, env.DB.Where("token = ?", refresh.Value).First(&stored).Error)
	require.True(t, stored.Revoked)
}
