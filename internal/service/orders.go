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

// OrderLineInput is one requested unit of a product, with the price the
// seller agreed to at sale time.
type OrderLineInput struct {
	ProductID uint    `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
}

// PaymentInput carries the fields accepted when recording a payment
type PaymentInput struct {
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	ReceiptURL string  `json:"receipt_url"`
}

// CreateOrderInput carries everything needed to create an order
type CreateOrderInput struct {
	CustomerID uint             `json:"customer_id"`
	Lines      []OrderLineInput `json:"lines"`
	Notes      string           `json:"notes"`
	DirectSale bool             `json:"direct_sale"`
	Payment    *PaymentInput    `json:"payment"`
}

// UpdateOrderInput carries the fields accepted when updating an order
type UpdateOrderInput struct {
	Status *models.OrderStatus `json:"status"`
	Notes  *string             `json:"notes"`
}

// OrderService manages the order lifecycle:
//
//	pending --(payment recorded)--> paid --(mark delivered)--> delivered
//	pending --(cancel)--> cancelled
//	paid    --(payment removed)--> pending
type OrderService struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	cache        *cache.RedisCache
}

// NewOrderService creates a new order service
func NewOrderService(db *gorm.DB, c *cache.RedisCache) *OrderService {
	return &OrderService{
		db:           db,
		orderRepo:    repository.NewOrderRepository(db),
		customerRepo: repository.NewCustomerRepository(db),
		cache:        c,
	}
}

// ListOrders returns all orders with their lines and payments
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.List(ctx)
}

// GetOrder returns one order with its lines and payments
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// GetOrderLines returns the lines of an order
func (s *OrderService) GetOrderLines(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListLines(ctx, orderID)
}

// CreateOrder validates availability for every line and inserts the
// order, its lines and an optional direct-sale payment in one
// transaction. Either all rows are inserted or none are.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if len(input.Lines) == 0 {
		return nil, Invalidf("at least one order line is required")
	}
	if input.DirectSale && input.Payment != nil {
		if input.Payment.Amount <= 0 {
			return nil, Invalidf("payment amount must be greater than zero")
		}
		if input.Payment.Method == "" {
			return nil, Invalidf("payment method is required")
		}
	}

	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, errors.Wrap(err, "customer")
	}

	order := &models.Order{
		CustomerID: input.CustomerID,
		Notes:      input.Notes,
		Status:     models.OrderPending,
	}
	if input.DirectSale && input.Payment != nil {
		order.Status = models.OrderPaid
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check every line inside the transaction so two concurrent
		// orders cannot both claim the last unit.
		requested := make(map[uint]int64)
		for _, line := range input.Lines {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.Wrapf(repository.ErrNotFound, "product %d", line.ProductID)
				}
				return errors.Wrap(err, "failed to load product")
			}

			sold, err := repository.SoldCountTx(tx, product.ID)
			if err != nil {
				return errors.Wrap(err, "failed to count sold units")
			}

			requested[product.ID]++
			if sold+requested[product.ID] > int64(product.Quantity) {
				return Conflictf("unavailable",
					"product %q has no units available", product.Name)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		lines := make([]models.OrderLine, 0, len(input.Lines))
		for _, line := range input.Lines {
			lines = append(lines, models.OrderLine{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  1,
				UnitPrice: line.UnitPrice,
			})
		}
		if err := tx.Create(&lines).Error; err != nil {
			return errors.Wrap(err, "failed to create order lines")
		}

		if input.DirectSale && input.Payment != nil {
			payment := models.Payment{
				OrderID:    order.ID,
				Amount:     input.Payment.Amount,
				Method:     input.Payment.Method,
				ReceiptURL: input.Payment.ReceiptURL,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return errors.Wrap(err, "failed to create payment")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.DashboardKey)

	log.Info().
		Uint("order_id", order.ID).
		Uint("customer_id", order.CustomerID).
		Int("lines", len(input.Lines)).
		Str("status", string(order.Status)).
		Msg("Order created")

	return s.orderRepo.GetByID(ctx, order.ID)
}

// UpdateOrder changes an order's status and/or notes. Transitions to
// paid are rejected here; payments must go through the payment ledger
// so order state and payment existence cannot diverge.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		status := *input.Status
		if !models.ValidOrderStatus(status) {
			return nil, Invalidf("invalid status, must be one of: pending, paid, delivered, cancelled")
		}
		if status == models.OrderPaid && order.Status != models.OrderPaid {
			return nil, Invalidf("orders are marked paid by recording a payment, not by updating the status")
		}
		order.Status = status
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	updates := map[string]interface{}{"status": order.Status, "notes": order.Notes}
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	s.cache.Invalidate(ctx, cache.DashboardKey)

	log.Info().Uint("order_id", id).Str("status", string(order.Status)).Msg("Order updated")
	return s.orderRepo.GetByID(ctx, id)
}

// DeleteOrder removes a pending or cancelled order and its lines
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if order.Status == models.OrderPaid || order.Status == models.OrderDelivered {
		return Conflictf(string(order.Status), "cannot delete a %s order", order.Status)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete order lines")
		}
		if err := tx.Delete(&models.Order{}, id).Error; err != nil {
			return errors.Wrap(err, "failed to delete order")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, cache.DashboardKey)

	log.Info().Uint("order_id", id).Msg("Order deleted, its products are sellable again")
	return nil
}
