package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/database"
	"github.com/panchito04/BackHogEle/internal/models"
)

// BoxRepository provides access to inventory boxes
type BoxRepository interface {
	List(ctx context.Context) ([]models.Box, error)
	GetByID(ctx context.Context, id uint) (*models.Box, error)
	GetByCode(ctx context.Context, code string) (*models.Box, error)
	Create(ctx context.Context, box *models.Box) error
	Update(ctx context.Context, box *models.Box) error
	Delete(ctx context.Context, id uint) error
	CountProducts(ctx context.Context, boxID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.BoxStatus) (int64, error)
	CountWithProducts(ctx context.Context) (int64, error)
}

type boxRepository struct {
	db *gorm.DB
}

// NewBoxRepository creates a new box repository
func NewBoxRepository(db *gorm.DB) BoxRepository {
	return &boxRepository{db: db}
}

func (r *boxRepository) List(ctx context.Context) ([]models.Box, error) {
	var boxes []models.Box
	err := r.db.WithContext(ctx).Order("arrival_date DESC, id DESC").Find(&boxes).Error
	return boxes, err
}

func (r *boxRepository) GetByID(ctx context.Context, id uint) (*models.Box, error) {
	var box models.Box
	err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Products.Category").
		First(&box, id).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &box, nil
}

func (r *boxRepository) GetByCode(ctx context.Context, code string) (*models.Box, error) {
	var box models.Box
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&box).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &box, nil
}

func (r *boxRepository) Create(ctx context.Context, box *models.Box) error {
	return r.db.WithContext(ctx).Create(box).Error
}

func (r *boxRepository) Update(ctx context.Context, box *models.Box) error {
	return r.db.WithContext(ctx).Save(box).Error
}

func (r *boxRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Box{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *boxRepository) CountProducts(ctx context.Context, boxID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("box_id = ?", boxID).
		Count(&count).Error
	return count, err
}

func (r *boxRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Box{}).Count(&count).Error
	return count, err
}

func (r *boxRepository) CountByStatus(ctx context.Context, status models.BoxStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Box{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *boxRepository) CountWithProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("box_id IS NOT NULL").
		Distinct("box_id").
		Count(&count).Error
	return count, err
}
