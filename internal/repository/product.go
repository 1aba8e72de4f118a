package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/database"
	"github.com/panchito04/BackHogEle/internal/models"
)

// ProductRepository provides access to products and the sold-unit
// counts that drive availability.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	// SumQuantities totals the units across all products, or across one
	// box's products when boxID is non-nil.
	SumQuantities(ctx context.Context, boxID *uint) (int64, error)

	// FindDuplicate looks for another product with the same name, price
	// and box. excludeID skips the product being updated; pass 0 on create.
	FindDuplicate(ctx context.Context, name string, price float64, boxID *uint, excludeID uint) (*models.Product, error)

	// SoldCount counts order lines for the product whose owning order is
	// not cancelled.
	SoldCount(ctx context.Context, productID uint) (int64, error)
	// SoldCounts returns non-cancelled sold-unit counts keyed by product id.
	SoldCounts(ctx context.Context) (map[uint]int64, error)
	// SoldCountsForBox returns sold-unit counts for the box's products.
	SoldCountsForBox(ctx context.Context, boxID uint) (map[uint]int64, error)

	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountByBox(ctx context.Context) (map[string]int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Box").
		Order("created_at DESC, id DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Box").
		First(&product, id).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) SumQuantities(ctx context.Context, boxID *uint) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if boxID != nil {
		query = query.Where("box_id = ?", *boxID)
	}

	var total *int64
	err := query.Select("SUM(quantity)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *productRepository) FindDuplicate(ctx context.Context, name string, price float64, boxID *uint, excludeID uint) (*models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("name = ? AND price = ?", name, price)

	if boxID != nil {
		query = query.Where("box_id = ?", *boxID)
	} else {
		query = query.Where("box_id IS NULL")
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var product models.Product
	err := query.First(&product).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) SoldCount(ctx context.Context, productID uint) (int64, error) {
	return soldCount(r.db.WithContext(ctx), productID)
}

// soldCount runs the availability query on the given handle so the
// order-create transaction can reuse it against its own tx.
func soldCount(db *gorm.DB, productID uint) (int64, error) {
	var count int64
	err := db.
		Model(&models.OrderLine{}).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("order_lines.product_id = ? AND orders.status <> ?", productID, models.OrderCancelled).
		Count(&count).Error
	return count, err
}

// SoldCountTx exposes the availability count for use inside a transaction.
func SoldCountTx(tx *gorm.DB, productID uint) (int64, error) {
	return soldCount(tx, productID)
}

type productCount struct {
	ProductID uint
	Count     int64
}

func (r *productRepository) SoldCounts(ctx context.Context) (map[uint]int64, error) {
	var rows []productCount
	err := r.db.WithContext(ctx).
		Model(&models.OrderLine{}).
		Select("order_lines.product_id AS product_id, COUNT(*) AS count").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.status <> ?", models.OrderCancelled).
		Group("order_lines.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ProductID] = row.Count
	}
	return counts, nil
}

func (r *productRepository) SoldCountsForBox(ctx context.Context, boxID uint) (map[uint]int64, error) {
	var rows []productCount
	err := r.db.WithContext(ctx).
		Model(&models.OrderLine{}).
		Select("order_lines.product_id AS product_id, COUNT(*) AS count").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Where("products.box_id = ? AND orders.status <> ?", boxID, models.OrderCancelled).
		Group("order_lines.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ProductID] = row.Count
	}
	return counts, nil
}

type nameCount struct {
	Name  *string
	Count int64
}

func (r *productRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []nameCount
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("categories.name AS name, COUNT(*) AS count").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Group("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		name := "uncategorized"
		if row.Name != nil {
			name = *row.Name
		}
		counts[name] = row.Count
	}
	return counts, nil
}

func (r *productRepository) CountByBox(ctx context.Context) (map[string]int64, error) {
	var rows []nameCount
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("boxes.code AS name, COUNT(*) AS count").
		Joins("LEFT JOIN boxes ON boxes.id = products.box_id").
		Group("boxes.code").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		name := "unboxed"
		if row.Name != nil {
			name = *row.Name
		}
		counts[name] = row.Count
	}
	return counts, nil
}
