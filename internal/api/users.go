package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/pageza/foodgram/backend/internal/middleware"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/types"
)

// UserHandler serves registration, tokens, profiles and subscriptions.
type UserHandler struct {
	authService   service.IAuthService
	followService service.IFollowService
}

func NewUserHandler(authService service.IAuthService, followService service.IFollowService) *UserHandler {
	return &UserHandler{
		authService:   authService,
		followService: followService,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.FromContext(c.Request.Context()).WithField("user_id", user.ID).Info("user registered")
	c.JSON(http.StatusCreated, userResponse(user, false))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	token, _, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user, false))
}

// ListUsers pages through all users; is_subscribed reflects the caller when
// a token is present.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)
	users, total, err := h.authService.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	viewerID, _ := middleware.UserID(c)
	subscribed, err := h.followService.SubscribedAmong(c.Request.Context(), viewerID, ids)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]types.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, userResponse(&users[i], subscribed[users[i].ID]))
	}
	c.JSON(http.StatusOK, types.PageResponse[types.UserResponse]{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}

func (h *UserHandler) SetPassword(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.authService.SetPassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	logger.FromContext(c.Request.Context()).WithField("user_id", userID).Info("password changed")
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	viewerID, _ := middleware.UserID(c)
	subscribed, err := h.followService.IsSubscribed(c.Request.Context(), viewerID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user, subscribed))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	authorID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	sub, err := h.followService.Subscribe(c.Request.Context(), userID, authorID, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscriptionResponse(sub))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	authorID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.authService.GetUserByID(c.Request.Context(), authorID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.followService.Unsubscribe(c.Request.Context(), userID, authorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	page, limit := pageParams(c)
	subs, total, err := h.followService.ListSubscriptions(c.Request.Context(), userID, page, limit, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]types.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		results = append(results, subscriptionResponse(&subs[i]))
	}
	c.JSON(http.StatusOK, types.PageResponse[types.SubscriptionResponse]{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}

func subscriptionResponse(sub *service.Subscription) types.SubscriptionResponse {
	return types.SubscriptionResponse{
		UserResponse: userResponse(&sub.Author, true),
		Recipes:      shortRecipes(sub.Recipes),
		RecipesCount: sub.RecipesCount,
	}
}

// recipesLimit reads ?recipes_limit=; a missing or malformed value falls back
// to the service default.
func recipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || limit < 0 {
		return service.DefaultRecipesLimit
	}
	return limit
}

// pageParams reads ?page= and ?limit= with the listing defaults applied.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = service.DefaultPageSize
	}
	if limit > service.MaxPageSize {
		limit = service.MaxPageSize
	}
	return page, limit
}
