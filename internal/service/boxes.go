package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/repository"
)

// BoxView is a box together with its unit totals: quantities summed
// across the box's products, units allocated to non-cancelled orders,
// and the difference.
type BoxView struct {
	models.Box
	TotalProducts     int64 `json:"total_products"`
	SoldProducts      int64 `json:"sold_products"`
	AvailableProducts int64 `json:"available_products"`
}

// BoxDetail is a box with its products and their availability
type BoxDetail struct {
	BoxView
	ProductViews []ProductView `json:"products"`
}

// BoxStats summarizes all boxes
type BoxStats struct {
	Total        int64 `json:"total"`
	InProgress   int64 `json:"in_progress"`
	Completed    int64 `json:"completed"`
	WithProducts int64 `json:"with_products"`
}

// BoxInput carries the fields accepted for box create/update
type BoxInput struct {
	Code        string           `json:"code"`
	Description string           `json:"description"`
	ArrivalDate *time.Time       `json:"arrival_date"`
	Supplier    string           `json:"supplier"`
	TotalCost   float64          `json:"total_cost"`
	Notes       string           `json:"notes"`
	Status      models.BoxStatus `json:"status"`
}

// BoxService manages inventory boxes
type BoxService struct {
	boxRepo     repository.BoxRepository
	productRepo repository.ProductRepository
}

// NewBoxService creates a new box service
func NewBoxService(db *gorm.DB) *BoxService {
	return &BoxService{
		boxRepo:     repository.NewBoxRepository(db),
		productRepo: repository.NewProductRepository(db),
	}
}

// ListBoxes returns all boxes with their product totals
func (s *BoxService) ListBoxes(ctx context.Context) ([]BoxView, error) {
	boxes, err := s.boxRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list boxes")
	}

	views := make([]BoxView, 0, len(boxes))
	for _, box := range boxes {
		total, err := s.productRepo.SumQuantities(ctx, &box.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to sum box product quantities")
		}

		soldCounts, err := s.productRepo.SoldCountsForBox(ctx, box.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count sold box products")
		}

		views = append(views, boxView(box, total, soldCounts))
	}
	return views, nil
}

// boxView assembles the unit totals for a box
func boxView(box models.Box, totalUnits int64, soldCounts map[uint]int64) BoxView {
	var sold int64
	for _, count := range soldCounts {
		sold += count
	}

	available := totalUnits - sold
	if available < 0 {
		available = 0
	}
	return BoxView{
		Box:               box,
		TotalProducts:     totalUnits,
		SoldProducts:      sold,
		AvailableProducts: available,
	}
}

// GetBox returns one box with its products and their availability
func (s *BoxService) GetBox(ctx context.Context, id uint) (*BoxDetail, error) {
	box, err := s.boxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	soldCounts, err := s.productRepo.SoldCountsForBox(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sold box products")
	}

	productViews := make([]ProductView, 0, len(box.Products))
	var total int64
	for _, product := range box.Products {
		productViews = append(productViews, view(product, soldCounts[product.ID]))
		total += int64(product.Quantity)
	}
	box.Products = nil

	return &BoxDetail{
		BoxView:      boxView(*box, total, soldCounts),
		ProductViews: productViews,
	}, nil
}

// CreateBox validates and stores a new box
func (s *BoxService) CreateBox(ctx context.Context, input BoxInput) (*BoxView, error) {
	if input.Code == "" {
		return nil, Invalidf("code is required")
	}
	if input.Status == "" {
		input.Status = models.BoxInProgress
	}
	if !models.ValidBoxStatus(input.Status) {
		return nil, Invalidf("invalid status, must be one of: in_progress, completed, archived")
	}

	_, err := s.boxRepo.GetByCode(ctx, input.Code)
	if err == nil {
		return nil, Invalidf("a box with this code already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "failed to check for duplicate box code")
	}

	box := &models.Box{
		Code:        input.Code,
		Description: input.Description,
		ArrivalDate: input.ArrivalDate,
		Supplier:    input.Supplier,
		TotalCost:   input.TotalCost,
		Notes:       input.Notes,
		Status:      input.Status,
	}
	if err := s.boxRepo.Create(ctx, box); err != nil {
		return nil, errors.Wrap(err, "failed to create box")
	}

	log.Info().Uint("box_id", box.ID).Str("code", box.Code).Msg("Box created")
	return &BoxView{Box: *box}, nil
}

// UpdateBox replaces the mutable fields of a box
func (s *BoxService) UpdateBox(ctx context.Context, id uint, input BoxInput) (*models.Box, error) {
	box, err := s.boxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code == "" {
		return nil, Invalidf("code is required")
	}
	if input.Status != "" && !models.ValidBoxStatus(input.Status) {
		return nil, Invalidf("invalid status, must be one of: in_progress, completed, archived")
	}

	if input.Code != box.Code {
		_, err := s.boxRepo.GetByCode(ctx, input.Code)
		if err == nil {
			return nil, Invalidf("a box with this code already exists")
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, errors.Wrap(err, "failed to check for duplicate box code")
		}
	}

	box.Code = input.Code
	box.Description = input.Description
	box.ArrivalDate = input.ArrivalDate
	box.Supplier = input.Supplier
	box.TotalCost = input.TotalCost
	box.Notes = input.Notes
	if input.Status != "" {
		box.Status = input.Status
	}
	box.Products = nil

	if err := s.boxRepo.Update(ctx, box); err != nil {
		return nil, errors.Wrap(err, "failed to update box")
	}
	return box, nil
}

// DeleteBox removes a box that owns no products
func (s *BoxService) DeleteBox(ctx context.Context, id uint) error {
	if _, err := s.boxRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.boxRepo.CountProducts(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to count box products")
	}
	if count > 0 {
		return Conflictf("has_products", "cannot delete a box that has products assigned")
	}

	if err := s.boxRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete box")
	}

	log.Info().Uint("box_id", id).Msg("Box deleted")
	return nil
}

// Stats aggregates box counts
func (s *BoxService) Stats(ctx context.Context) (*BoxStats, error) {
	total, err := s.boxRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count boxes")
	}

	inProgress, err := s.boxRepo.CountByStatus(ctx, models.BoxInProgress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count in-progress boxes")
	}

	completed, err := s.boxRepo.CountByStatus(ctx, models.BoxCompleted)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count completed boxes")
	}

	withProducts, err := s.boxRepo.CountWithProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count boxes with products")
	}

	return &BoxStats{
		Total:        total,
		InProgress:   inProgress,
		Completed:    completed,
		WithProducts: withProducts,
	}, nil
}
