package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/repository"
)

// ProductView is a product together with its availability state.
// Availability follows the numeric model: quantity minus units already
// allocated to non-cancelled orders. The sold/available booleans cover
// the single-unit case the back office mostly deals in.
type ProductView struct {
	models.Product
	SoldCount int64 `json:"sold_count"`
	Available int64 `json:"available"`
	Sold      bool  `json:"sold"`
}

// ProductStats summarizes the product inventory. Sold and Available
// are unit totals, consistent with per-product availability; Total
// counts catalog entries.
type ProductStats struct {
	Total      int64            `json:"total"`
	Sold       int64            `json:"sold"`
	Available  int64            `json:"available"`
	ByCategory map[string]int64 `json:"by_category"`
	ByBox      map[string]int64 `json:"by_box"`
}

// CreateProductInput carries the fields accepted for product creation
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	ImageURL    string
	BoxID       *uint
	CategoryID  *uint
}

// InventoryService tracks products and answers how many units of each
// are currently sellable.
type InventoryService struct {
	productRepo  repository.ProductRepository
	boxRepo      repository.BoxRepository
	categoryRepo repository.CategoryRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{
		productRepo:  repository.NewProductRepository(db),
		boxRepo:      repository.NewBoxRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
	}
}

func view(product models.Product, sold int64) ProductView {
	available := int64(product.Quantity) - sold
	if available < 0 {
		// Oversold rows need manual reconciliation; surface them in the logs.
		log.Warn().
			Uint("product_id", product.ID).
			Int64("sold", sold).
			Int("quantity", product.Quantity).
			Msg("Product is oversold")
		available = 0
	}
	return ProductView{
		Product:   product,
		SoldCount: sold,
		Available: available,
		Sold:      available == 0 && sold > 0,
	}
}

// ListProducts returns all products with their availability
func (s *InventoryService) ListProducts(ctx context.Context) ([]ProductView, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	soldCounts, err := s.productRepo.SoldCounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sold units")
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, view(product, soldCounts[product.ID]))
	}
	return views, nil
}

// GetProduct returns one product with its availability
func (s *InventoryService) GetProduct(ctx context.Context, id uint) (*ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sold, err := s.productRepo.SoldCount(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sold units")
	}

	v := view(*product, sold)
	return &v, nil
}

// SoldCount counts units of the product allocated to non-cancelled orders
func (s *InventoryService) SoldCount(ctx context.Context, productID uint) (int64, error) {
	return s.productRepo.SoldCount(ctx, productID)
}

// Available computes quantity minus sold count for the product
func (s *InventoryService) Available(ctx context.Context, productID uint) (int64, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	sold, err := s.productRepo.SoldCount(ctx, productID)
	if err != nil {
		return 0, err
	}
	return int64(product.Quantity) - sold, nil
}

// CreateProduct validates and stores a new product
func (s *InventoryService) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	if input.Name == "" {
		return nil, Invalidf("name is required")
	}
	if input.Price <= 0 {
		return nil, Invalidf("price must be greater than zero")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		return nil, Invalidf("quantity must be at least 1")
	}

	if input.BoxID != nil {
		if _, err := s.boxRepo.GetByID(ctx, *input.BoxID); err != nil {
			return nil, errors.Wrap(err, "box")
		}
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, errors.Wrap(err, "category")
		}
	}

	if err := s.checkDuplicate(ctx, input.Name, input.Price, input.BoxID, 0); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ImageURL:    input.ImageURL,
		BoxID:       input.BoxID,
		CategoryID:  input.CategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	created, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	log.Info().Uint("product_id", created.ID).Str("name", created.Name).Msg("Product created")
	v := view(*created, 0)
	return &v, nil
}

// UpdateProduct replaces the mutable fields of a product that has not
// been sold yet.
func (s *InventoryService) UpdateProduct(ctx context.Context, id uint, input CreateProductInput) (*ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sold, err := s.productRepo.SoldCount(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sold units")
	}
	if sold > 0 {
		return nil, Conflictf("sold", "cannot edit a product that has already been sold")
	}

	if input.Name == "" {
		return nil, Invalidf("name is required")
	}
	if input.Price <= 0 {
		return nil, Invalidf("price must be greater than zero")
	}
	if input.Quantity == 0 {
		input.Quantity = product.Quantity
	}
	if input.Quantity < 0 {
		return nil, Invalidf("quantity must be at least 1")
	}

	if err := s.checkDuplicate(ctx, input.Name, input.Price, input.BoxID, id); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Quantity = input.Quantity
	product.BoxID = input.BoxID
	product.CategoryID = input.CategoryID
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	product.Box = nil
	product.Category = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	updated, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := view(*updated, 0)
	return &v, nil
}

// DeleteProduct removes a product that has not been sold yet
func (s *InventoryService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}

	sold, err := s.productRepo.SoldCount(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to count sold units")
	}
	if sold > 0 {
		return Conflictf("sold", "cannot delete a product that has already been sold")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	log.Info().Uint("product_id", id).Msg("Product deleted")
	return nil
}

// ProductStats aggregates inventory counts
func (s *InventoryService) ProductStats(ctx context.Context) (*ProductStats, error) {
	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	soldCounts, err := s.productRepo.SoldCounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sold units")
	}

	byCategory, err := s.productRepo.CountByCategory(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products by category")
	}

	byBox, err := s.productRepo.CountByBox(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products by box")
	}

	totalUnits, err := s.productRepo.SumQuantities(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum product quantities")
	}

	var soldUnits int64
	for _, count := range soldCounts {
		soldUnits += count
	}

	available := totalUnits - soldUnits
	if available < 0 {
		available = 0
	}
	return &ProductStats{
		Total:      total,
		Sold:       soldUnits,
		Available:  available,
		ByCategory: byCategory,
		ByBox:      byBox,
	}, nil
}

func (s *InventoryService) checkDuplicate(ctx context.Context, name string, price float64, boxID *uint, excludeID uint) error {
	_, err := s.productRepo.FindDuplicate(ctx, name, price, boxID, excludeID)
	if err == nil {
		return Invalidf("a product with the same name and price already exists in this box")
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return errors.Wrap(err, "failed to check for duplicate product")
}
