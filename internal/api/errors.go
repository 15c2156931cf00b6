package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/pageza/foodgram/backend/internal/middleware"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/storage"
)

var badRequestErrors = []error{
	service.ErrInvalidInput,
	service.ErrInvalidCredentials,
	service.ErrUserExists,
	service.ErrTagExists,
	service.ErrAlreadyInCart,
	service.ErrNotInCart,
	service.ErrAlreadyFavorited,
	service.ErrNotFavorited,
	service.ErrAlreadySubscribed,
	service.ErrNotSubscribed,
	service.ErrSelfSubscription,
	storage.ErrInvalidImage,
}

// respondError maps service errors to a status code and a JSON error body.
// Anything unrecognised is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, middleware.ErrorResponse{Error: err.Error()})
		return
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: err.Error()})
			return
		}
	}

	logger.FromContext(c.Request.Context()).WithError(err).
		WithField("path", c.FullPath()).
		Error("request failed")
	c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "Internal Server Error"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: message})
}

// uuidParam parses the named path parameter. A malformed id cannot match any
// row, so it is reported as not found.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "not found"})
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated caller. Routes behind AuthMiddleware
// always have one.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: "authentication credentials were not provided"})
	}
	return userID, ok
}
