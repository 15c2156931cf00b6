package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/pageza/foodgram/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

type staticValidator struct {
	token  string
	claims *types.TokenClaims
}

func (v staticValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token != v.token {
		return nil, errors.New("bad token")
	}
	return v.claims, nil
}

func newAuthRouter(handler gin.HandlerFunc, validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/private", AuthMiddleware(validator), handler)
	router.GET("/public", OptionalAuth(validator), handler)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := staticValidator{token: "good", claims: &types.TokenClaims{UserID: userID, Username: "chef"}}

	var seen uuid.UUID
	var identified bool
	router := newAuthRouter(func(c *gin.Context) {
		seen, identified = UserID(c)
		c.Status(http.StatusOK)
	}, validator)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"invalid", "Bearer bad", http.StatusUnauthorized},
		{"bearer", "Bearer good", http.StatusOK},
		{"token scheme", "Token good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen, identified = uuid.Nil, false
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.True(t, identified)
				assert.Equal(t, userID, seen)
			} else {
				assert.False(t, identified)
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	validator := staticValidator{token: "good", claims: &types.TokenClaims{UserID: userID}}

	var identity interface{}
	var identified bool
	router := newAuthRouter(func(c *gin.Context) {
		_, identified = UserID(c)
		identity = logger.FromContext(c.Request.Context()).Data["identity"]
		c.Status(http.StatusOK)
	}, validator)

	for header, want := range map[string]bool{"": false, "Bearer bad": false, "Bearer good": true} {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Equal(t, want, identified, header)
		if want {
			assert.Equal(t, userID.String(), identity)
		}
	}
}
