package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/database"
	"github.com/panchito04/BackHogEle/internal/models"
)

// PaymentRepository provides access to payments
type PaymentRepository interface {
	List(ctx context.Context) ([]models.Payment, error)
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	ListByOrder(ctx context.Context, orderID uint) ([]models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	SumAmounts(ctx context.Context) (float64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC, id DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) SumAmounts(ctx context.Context) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
