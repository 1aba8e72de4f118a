package models

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// BoxStatus is the lifecycle state of an inventory box.
type BoxStatus string

const (
	BoxInProgress BoxStatus = "in_progress"
	BoxCompleted  BoxStatus = "completed"
	BoxArchived   BoxStatus = "archived"
)

// ValidBoxStatus reports whether s is a known box status.
func ValidBoxStatus(s BoxStatus) bool {
	switch s {
	case BoxInProgress, BoxCompleted, BoxArchived:
		return true
	}
	return false
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPaid, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Role is a user capability level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSeller   Role = "seller"
	RoleDelivery Role = "delivery"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleDelivery:
		return true
	}
	return false
}

// Box represents a received shipment batch that groups products
type Box struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Code        string     `gorm:"not null;uniqueIndex" json:"code"`
	Description string     `json:"description"`
	ArrivalDate *time.Time `json:"arrival_date"`
	Supplier    string     `json:"supplier"`
	TotalCost   float64    `gorm:"not null;default:0" json:"total_cost"`
	Notes       string     `json:"notes"`
	Status      BoxStatus  `gorm:"not null;default:in_progress" json:"status"`
	Products    []Product  `gorm:"foreignKey:BoxID" json:"products,omitempty"`
}

// Category classifies products
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Products    []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// Product represents a sellable item, optionally belonging to a box
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	ImageURL    string    `json:"image_url"`
	BoxID       *uint     `gorm:"index" json:"box_id"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Box         *Box      `gorm:"foreignKey:BoxID" json:"box,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Customer represents a buyer
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	Name       string    `gorm:"not null" json:"name"`
	TikTokUser string    `json:"tiktok_user"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Orders     []Order   `gorm:"foreignKey:CustomerID" json:"-"`
}

// Order represents a sale composed of order lines, settled by payments
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	CustomerID uint        `gorm:"not null;index" json:"customer_id"`
	Notes      string      `json:"notes"`
	Status     OrderStatus `gorm:"not null;default:pending" json:"status"`
	Customer   *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines      []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
	Payments   []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// OrderLine is one sold unit within an order, with its price snapshotted
// at sale time. Each line always covers exactly one physical unit;
// multi-quantity sales are expressed as multiple lines.
type OrderLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Payment settles an order
type Payment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Method     string    `gorm:"not null" json:"method"`
	ReceiptURL string    `json:"receipt_url"`
}

// User is a back-office account
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null" json:"role"`
}

// SetupModels configures GORM models and runs migrations
func SetupModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Box{},
		&Category{},
		&Product{},
		&Customer{},
		&Order{},
		&OrderLine{},
		&Payment{},
		&User{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run auto migrations")
	}

	return nil
}
