package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSignup(t *testing.T) {
	app, _, db := setupServerTest(t)

	t.Run("Creates User And Sets Cookie", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/signup", map[string]string{
			"username": "newwriter",
			"email":    "newwriter@example.com",
			"password": "StrongPass1",
		})
		resp, body := doRequest(t, app, req)
		assert.Equal(t, http.StatusCreated, resp.StatusCode, body)
		assert.Contains(t, body, "token")

		cookieSet := false
		for _, c := range resp.Cookies() {
			if c.Name == "token" && c.Value != "" {
				cookieSet = true
			}
		}
		assert.True(t, cookieSet, "token cookie should be set")

		var user models.User
		require.NoError(t, db.Where("username = ?", "newwriter").First(&user).Error)
		assert.NotEqual(t, "StrongPass1", user.Password, "password must be hashed")
	})

	t.Run("Rejects Weak Password", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/signup", map[string]string{
			"username": "weakling",
			"email":    "weakling@example.com",
			"password": "short",
		})
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Rejects Reserved Username", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/signup", map[string]string{
			"username": "follow",
			"email":    "follow@example.com",
			"password": "StrongPass1",
		})
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Rejects Duplicate Email", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/signup", map[string]string{
			"username": "othername",
			"email":    "newwriter@example.com",
			"password": "StrongPass1",
		})
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	app, _, db := setupServerTest(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "returning",
		Email:    "returning@example.com",
		Password: string(hashed),
	}).Error)

	t.Run("Valid Credentials", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "returning@example.com",
			"password": "StrongPass1",
		})
		resp, body := doRequest(t, app, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "token")
	})

	t.Run("Wrong Password", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "returning@example.com",
			"password": "WrongPass1",
		})
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "StrongPass1",
		})
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLoginFormEchoesNext(t *testing.T) {
	app, _, _ := setupServerTest(t)

	_, body := doRequest(t, app,
		httptest.NewRequest(http.MethodGet, "/auth/login?next=%2Fnew", nil))

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, "/new", payload["next"])
}

func TestLogoutExpiresCookie(t *testing.T) {
	app, _, _ := setupServerTest(t)

	resp, _ := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	expired := false
	for _, c := range resp.Cookies() {
		if c.Name == "token" && c.Value == "" {
			expired = true
		}
	}
	assert.True(t, expired, "token cookie should be cleared")
}
