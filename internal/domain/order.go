package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderItem is one purchased line item, written by the buyer-facing store.
// The panel only reads these (orders table, product detail sales history).
type OrderItem struct {
	OrderItemID   uuid.UUID                   `gorm:"column:order_item_id;type:uuid;primaryKey" json:"id"`
	OrderID       string                      `gorm:"column:order_id;not null;index" json:"orderId"`
	ShopID        uuid.UUID                   `gorm:"column:shop_id;type:uuid;not null;index" json:"shopId"`
	ProductID     uuid.UUID                   `gorm:"column:product_id;type:uuid;not null;index" json:"productId"`
	ProductName   string                      `gorm:"column:product_name;not null" json:"productName"`
	ImageUrls     datatypes.JSONSlice[string] `gorm:"column:image_urls" json:"imageUrls"`
	SelectedColor string                      `gorm:"column:selected_color" json:"selectedColor"`
	SelectedSize  string                      `gorm:"column:selected_size" json:"selectedSize"`
	Quantity      int                         `gorm:"column:quantity;not null" json:"quantity"`
	Price         float64                     `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	BuyerID       uuid.UUID                   `gorm:"column:buyer_id;type:uuid;not null" json:"buyerId"`
	Timestamp     time.Time                   `gorm:"column:timestamp;not null;index" json:"timestamp"`
	CreatedAt     time.Time                   `json:"createdAt"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (o *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if o.OrderItemID == uuid.Nil {
		o.OrderItemID = uuid.New()
	}
	return nil
}
