package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func signupBody(username string) string {
	return `{"display_name":"Test User","username":"` + username + `","password":"hunter2hunter2"}`
}

func decodeToken(t *testing.T, body []byte) *models.JwtCustomClaims {
	t.Helper()

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Token)

	claims := &models.JwtCustomClaims{}
	_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("supersecretjwtkey"), nil
	})
	require.NoError(t, err)
	return claims
}

func TestSignup(t *testing.T) {
	userRepo := newStubUserRepo()
	handler := NewAuthHandler(userRepo, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/auth/signup", signupBody("newuser"))

	require.NoError(t, handler.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	claims := decodeToken(t, rec.Body.Bytes())
	assert.Equal(t, "newuser", claims.Username)

	stored, err := userRepo.GetUserByUsername("newuser")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2hunter2")))
}

func TestSignupTakenUsernameIsConflict(t *testing.T) {
	userRepo := newStubUserRepo(&models.User{ID: "user-1", Username: "newuser"})
	handler := NewAuthHandler(userRepo, nil)

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/signup", signupBody("newuser"))

	err := handler.Signup(c)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
}

func TestSignupRejectsInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing password", body: `{"display_name":"Test","username":"newuser"}`},
		{name: "short password", body: `{"display_name":"Test","username":"newuser","password":"short"}`},
		{name: "username with spaces", body: `{"display_name":"Test","username":"new user","password":"hunter2hunter2"}`},
		{name: "username with symbols", body: `{"display_name":"Test","username":"new@user!","password":"hunter2hunter2"}`},
	}

	handler := NewAuthHandler(newStubUserRepo(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/signup", tt.body)

			err := handler.Signup(c)
			assert.Equal(t, http.StatusUnprocessableEntity, httpStatus(t, err))
		})
	}
}

func TestSignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo := newStubUserRepo(&models.User{ID: "user-1", Username: "newuser", Password: string(hash)})
	handler := NewAuthHandler(userRepo, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/auth/signin",
		`{"username":"newuser","password":"hunter2hunter2"}`)

	require.NoError(t, handler.SignIn(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	claims := decodeToken(t, rec.Body.Bytes())
	assert.Equal(t, "user-1", claims.UserID)
}

func TestSignInWrongCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo := newStubUserRepo(&models.User{ID: "user-1", Username: "newuser", Password: string(hash)})
	handler := NewAuthHandler(userRepo, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: `{"username":"newuser","password":"wrongwrongwrong"}`},
		{name: "unknown username", body: `{"username":"ghost","password":"hunter2hunter2"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/signin", tt.body)

			err := handler.SignIn(c)
			assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
		})
	}
}

func TestFirebaseLoginUnconfigured(t *testing.T) {
	handler := NewAuthHandler(newStubUserRepo(), nil)

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/auth/firebase-login",
		`{"id_token":"some-token"}`)

	err := handler.FirebaseLogin(c)
	assert.Equal(t, http.StatusNotImplemented, httpStatus(t, err))
}
