package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/uniadvisor/counsel-api/internal/models"
)

// UniversityFilter describes filters applied to catalog queries.
type UniversityFilter struct {
	Country     string
	Major       string
	MinTuition  *float64
	MaxTuition  *float64
	MinRanking  *int
	MaxRanking  *int
	Scholarship *bool
}

// UniversityRepository exposes catalog persistence helpers.
type UniversityRepository interface {
	List(ctx context.Context, filter UniversityFilter) ([]models.University, error)
	GetByID(ctx context.Context, id uint) (models.University, error)
	GetByName(ctx context.Context, name string) (models.University, error)
	Create(ctx context.Context, university *models.University) error
	UpsertBatch(ctx context.Context, universities []models.University) (int64, error)
}

type universityRepository struct {
	db *gorm.DB
}

// NewUniversityRepository constructs a catalog repository.
func NewUniversityRepository(db *gorm.DB) UniversityRepository {
	return &universityRepository{db: db}
}

func (r *universityRepository) List(ctx context.Context, filter UniversityFilter) ([]models.University, error) {
	query := r.db.WithContext(ctx).Model(&models.University{})

	if filter.Country != "" {
		query = query.Where("LOWER(country) = ?", strings.ToLower(strings.TrimSpace(filter.Country)))
	}
	if filter.Major != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Major)) + "%"
		query = query.Where("LOWER(programs) LIKE ?", pattern)
	}
	if filter.MinTuition != nil {
		query = query.Where("tuition_fee_max >= ?", *filter.MinTuition)
	}
	if filter.MaxTuition != nil {
		query = query.Where("tuition_fee_min <= ?", *filter.MaxTuition)
	}
	if filter.MinRanking != nil {
		query = query.Where("ranking >= ?", *filter.MinRanking)
	}
	if filter.MaxRanking != nil {
		query = query.Where("ranking <= ?", *filter.MaxRanking)
	}
	if filter.Scholarship != nil {
		query = query.Where("scholarship_available = ?", *filter.Scholarship)
	}

	var universities []models.University
	if err := query.Order("ranking IS NULL, ranking ASC").Find(&universities).Error; err != nil {
		return nil, err
	}
	return universities, nil
}

func (r *universityRepository) GetByID(ctx context.Context, id uint) (models.University, error) {
	var university models.University
	if err := r.db.WithContext(ctx).First(&university, id).Error; err != nil {
		return models.University{}, translateNotFound(err)
	}
	return university, nil
}

func (r *universityRepository) GetByName(ctx context.Context, name string) (models.University, error) {
	var university models.University
	if err := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).First(&university).Error; err != nil {
		return models.University{}, translateNotFound(err)
	}
	return university, nil
}

func (r *universityRepository) Create(ctx context.Context, university *models.University) error {
	return r.db.WithContext(ctx).Create(university).Error
}

func (r *universityRepository) UpsertBatch(ctx context.Context, universities []models.University) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range universities {
			var existing models.University
			err := tx.Where("LOWER(name) = ?", strings.ToLower(universities[i].Name)).First(&existing).Error
			switch {
			case err == nil:
				continue
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&universities[i]).Error; err != nil {
					return err
				}
				affected++
			default:
				return err
			}
		}
		return nil
	})
	return affected, err
}
