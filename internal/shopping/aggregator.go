// Package shopping turns the recipes in a user's cart into one summed
// shopping list.
package shopping

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrOrphanedLineItem is returned when a cart recipe references an ingredient
// that no longer exists. The whole export fails rather than silently dropping
// the line.
var ErrOrphanedLineItem = errors.New("shopping cart references a missing ingredient")

// OrphanError identifies the line item whose ingredient is missing.
type OrphanError struct {
	RecipeID     uuid.UUID
	IngredientID uint
}

func (e *OrphanError) Error() string {
	return fmt.Sprintf("recipe %s references missing ingredient %d", e.RecipeID, e.IngredientID)
}

func (e *OrphanError) Is(target error) bool {
	return target == ErrOrphanedLineItem
}

// LineItem is one ingredient line of a recipe in the cart, joined with its
// catalog entry. Orphaned is set when the catalog entry is gone.
type LineItem struct {
	RecipeID     uuid.UUID
	IngredientID uint
	Name         string
	Unit         string
	Amount       decimal.Decimal
	Orphaned     bool
}

// AggregatedLine is the summed amount of one (name, unit) pair.
type AggregatedLine struct {
	Name  string
	Unit  string
	Total decimal.Decimal
}

// Source reads every line item of every recipe in a user's cart in a single
// consistent read.
type Source interface {
	CartLineItems(ctx context.Context, userID uuid.UUID) ([]LineItem, error)
}

type Aggregator struct {
	source Source
}

func NewAggregator(source Source) *Aggregator {
	return &Aggregator{source: source}
}

// BuildShoppingList returns the user's cart as one line per (name, unit),
// ordered by name then unit. An empty cart yields an empty list.
func (a *Aggregator) BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]AggregatedLine, error) {
	items, err := a.source.CartLineItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart line items: %w", err)
	}

	lines, err := Aggregate(items)
	if err != nil {
		var orphan *OrphanError
		if errors.As(err, &orphan) {
			logger.FromContext(ctx).WithFields(logrus.Fields{
				"user_id":       userID,
				"recipe_id":     orphan.RecipeID,
				"ingredient_id": orphan.IngredientID,
			}).Error("shopping list export failed: orphaned line item")
		}
		return nil, err
	}
	return lines, nil
}

type groupKey struct {
	name string
	unit string
}

// Aggregate groups items by (name, unit) and sums their amounts. The result
// does not depend on the order of items.
func Aggregate(items []LineItem) ([]AggregatedLine, error) {
	totals := make(map[groupKey]decimal.Decimal)
	for _, item := range items {
		if item.Orphaned {
			return nil, &OrphanError{RecipeID: item.RecipeID, IngredientID: item.IngredientID}
		}
		key := groupKey{name: item.Name, unit: item.Unit}
		totals[key] = totals[key].Add(item.Amount)
	}

	lines := make([]AggregatedLine, 0, len(totals))
	for key, total := range totals {
		lines = append(lines, AggregatedLine{Name: key.name, Unit: key.unit, Total: total})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].Unit < lines[j].Unit
	})
	return lines, nil
}
