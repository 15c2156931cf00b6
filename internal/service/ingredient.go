package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns the catalog ordered by name, optionally narrowed to
// names containing name (case-insensitive).
func (s *IngredientService) ListIngredients(ctx context.Context, name string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Order("name").Order("measurement_unit")
	if name = strings.TrimSpace(name); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *IngredientService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).First(&ingredient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return &ingredient, nil
}

// GetOrCreate returns the catalog entry for (name, unit), creating it when
// missing. The bool reports whether a row was created.
func (s *IngredientService) GetOrCreate(ctx context.Context, name, unit string) (*models.Ingredient, bool, error) {
	name, unit = strings.TrimSpace(name), strings.TrimSpace(unit)
	if name == "" || unit == "" {
		return nil, false, fmt.Errorf("%w: ingredient name and measurement unit are required", ErrInvalidInput)
	}
	if len(name) > 255 || len(unit) > 255 {
		return nil, false, fmt.Errorf("%w: ingredient %q is longer than 255 characters", ErrInvalidInput, name)
	}

	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).
		Where("name = ? AND measurement_unit = ?", name, unit).
		First(&ingredient).Error
	if err == nil {
		return &ingredient, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to get ingredient: %w", err)
	}

	ingredient = models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return &ingredient, true, nil
}

// ImportResult counts the rows of an import.
type ImportResult struct {
	Created  int
	Existing int
}

// Import reads "name,measurement_unit" rows and adds the ones not yet in the
// catalog. Blank lines are skipped; the whole import runs in one transaction.
func (s *IngredientService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	var result ImportResult

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txSvc := &IngredientService{db: tx}
		line := 0
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			line++
			if err != nil {
				return fmt.Errorf("failed to read line %d: %w", line, err)
			}
			if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
				continue
			}
			if len(record) < 2 {
				return fmt.Errorf("%w: line %d: expected name and measurement unit", ErrInvalidInput, line)
			}

			_, created, err := txSvc.GetOrCreate(ctx, record[0], record[1])
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			if created {
				result.Created++
			} else {
				result.Existing++
			}
		}
	})
	if err != nil {
		return ImportResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"created":  result.Created,
		"existing": result.Existing,
	}).Info("imported ingredients")
	return result, nil
}
