package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/cache"
	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/repository"
)

// UpdatePaymentInput carries the adjustable payment fields. Order state
// is never touched from here.
type UpdatePaymentInput struct {
	Amount     *float64 `json:"amount"`
	Method     *string  `json:"method"`
	ReceiptURL *string  `json:"receipt_url"`
}

// PaymentService keeps the ledger of payments and synchronizes order
// state with payment existence: an order is paid iff it has a payment
// recorded here.
type PaymentService struct {
	db          *gorm.DB
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	cache       *cache.RedisCache
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, c *cache.RedisCache) *PaymentService {
	return &PaymentService{
		db:          db,
		paymentRepo: repository.NewPaymentRepository(db),
		orderRepo:   repository.NewOrderRepository(db),
		cache:       c,
	}
}

// ListPayments returns all payments
func (s *PaymentService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.paymentRepo.List(ctx)
}

// GetPayment returns one payment
func (s *PaymentService) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// ListPaymentsByOrder returns the payments recorded against an order
func (s *PaymentService) ListPaymentsByOrder(ctx context.Context, orderID uint) ([]models.Payment, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByOrder(ctx, orderID)
}

// RecordPayment inserts a payment against a pending order and flips the
// order to paid, in one transaction.
func (s *PaymentService) RecordPayment(ctx context.Context, orderID uint, input PaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, Invalidf("amount must be greater than zero")
	}
	if input.Method == "" {
		return nil, Invalidf("method is required")
	}

	payment := &models.Payment{
		OrderID:    orderID,
		Amount:     input.Amount,
		Method:     input.Method,
		ReceiptURL: input.ReceiptURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrapf(repository.ErrNotFound, "order %d", orderID)
			}
			return errors.Wrap(err, "failed to load order")
		}

		if order.Status != models.OrderPending {
			return Conflictf(string(order.Status),
				"cannot record a payment, the order is %s", order.Status)
		}

		if err := tx.Create(payment).Error; err != nil {
			return errors.Wrap(err, "failed to create payment")
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Update("status", models.OrderPaid).Error; err != nil {
			return errors.Wrap(err, "failed to mark order as paid")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.DashboardKey)

	log.Info().
		Uint("payment_id", payment.ID).
		Uint("order_id", orderID).
		Float64("amount", payment.Amount).
		Str("method", payment.Method).
		Msg("Payment recorded, order marked as paid")

	return payment, nil
}

// UpdatePayment adjusts amount, method or receipt reference only
func (s *PaymentService) UpdatePayment(ctx context.Context, id uint, input UpdatePaymentInput) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, Invalidf("amount must be greater than zero")
		}
		payment.Amount = *input.Amount
	}
	if input.Method != nil {
		if *input.Method == "" {
			return nil, Invalidf("method is required")
		}
		payment.Method = *input.Method
	}
	if input.ReceiptURL != nil {
		payment.ReceiptURL = *input.ReceiptURL
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to update payment")
	}

	s.cache.Invalidate(ctx, cache.DashboardKey)
	return payment, nil
}

// DeletePayment removes a payment and resets its order to pending, in
// one transaction. The order reopens for a new payment.
func (s *PaymentService) DeletePayment(ctx context.Context, id uint) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Payment{}, id).Error; err != nil {
			return errors.Wrap(err, "failed to delete payment")
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ?", payment.OrderID).
			Update("status", models.OrderPending).Error; err != nil {
			return errors.Wrap(err, "failed to reset order to pending")
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, cache.DashboardKey)

	log.Info().
		Uint("payment_id", id).
		Uint("order_id", payment.OrderID).
		Msg("Payment deleted, order returned to pending")

	return nil
}
