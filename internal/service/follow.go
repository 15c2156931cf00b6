package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultRecipesLimit is how many recipes of each followed author are shown.
const DefaultRecipesLimit = 3

// Subscription is a followed author with a preview of their recipes.
type Subscription struct {
	Author       models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

func (s *FollowService) Subscribe(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (*Subscription, error) {
	if userID == authorID {
		return nil, ErrSelfSubscription
	}

	var author models.User
	err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	subscribed, err := s.IsSubscribed(ctx, userID, authorID)
	if err != nil {
		return nil, err
	}
	if subscribed {
		return nil, ErrAlreadySubscribed
	}

	err = s.db.WithContext(ctx).Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrAlreadySubscribed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	return s.subscriptionFor(ctx, author, recipesLimit)
}

func (s *FollowService) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotSubscribed
	}
	return nil
}

func (s *FollowService) IsSubscribed(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}

// SubscribedAmong reports which of authorIDs userID follows.
func (s *FollowService) SubscribedAmong(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	subscribed := make(map[uuid.UUID]bool, len(authorIDs))
	if userID == uuid.Nil || len(authorIDs) == 0 {
		return subscribed, nil
	}

	var followed []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &followed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check subscriptions: %w", err)
	}
	for _, id := range followed {
		subscribed[id] = true
	}
	return subscribed, nil
}

// ListSubscriptions returns one page of the authors userID follows and the
// total number of followed authors.
func (s *FollowService) ListSubscriptions(ctx context.Context, userID uuid.UUID, page, limit, recipesLimit int) ([]Subscription, int64, error) {
	followed := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.User{}).
			Joins("JOIN follows ON follows.author_id = users.id").
			Where("follows.user_id = ?", userID)
	}

	var total int64
	if err := followed().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	page, limit = normalizePage(page, limit)
	var authors []models.User
	err := followed().
		Order("follows.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	subscriptions := make([]Subscription, 0, len(authors))
	for _, author := range authors {
		sub, err := s.subscriptionFor(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		subscriptions = append(subscriptions, *sub)
	}
	return subscriptions, total, nil
}

func (s *FollowService) subscriptionFor(ctx context.Context, author models.User, recipesLimit int) (*Subscription, error) {
	if recipesLimit < 0 {
		recipesLimit = DefaultRecipesLimit
	}

	sub := &Subscription{Author: author}
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Count(&sub.RecipesCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count author recipes: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Where("author_id = ?", author.ID).
		Order("created_at DESC").
		Limit(recipesLimit).
		Find(&sub.Recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list author recipes: %w", err)
	}
	return sub, nil
}
