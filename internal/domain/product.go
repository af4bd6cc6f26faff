package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ShopProduct is a live marketplace product owned by a shop.
// ColorQuantities maps color name to stock on hand; ColorImages maps color
// name to its uploaded image URLs. SearchIndex holds lowercased search terms.
type ShopProduct struct {
	ProductID       uuid.UUID                            `gorm:"column:product_id;type:uuid;primaryKey" json:"id"`
	ShopID          uuid.UUID                            `gorm:"column:shop_id;type:uuid;not null;index" json:"shopId"`
	OwnerID         uuid.UUID                            `gorm:"column:owner_id;type:uuid;not null" json:"ownerId"`
	ProductName     string                               `gorm:"column:product_name;not null" json:"productName"`
	Description     string                               `gorm:"column:description" json:"description"`
	Price           float64                              `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Currency        string                               `gorm:"column:currency;type:varchar(8);default:'TL'" json:"currency"`
	Condition       string                               `gorm:"column:condition" json:"condition"`
	BrandModel      string                               `gorm:"column:brand_model" json:"brandModel"`
	DeliveryOption  string                               `gorm:"column:delivery_option" json:"deliveryOption"`
	Category        string                               `gorm:"column:category" json:"category"`
	Subcategory     string                               `gorm:"column:subcategory" json:"subcategory"`
	Subsubcategory  string                               `gorm:"column:subsubcategory" json:"subsubcategory"`
	ImageUrls       datatypes.JSONSlice[string]          `gorm:"column:image_urls" json:"imageUrls"`
	VideoURL        *string                              `gorm:"column:video_url" json:"videoUrl"`
	ColorImages     datatypes.JSONType[map[string][]string] `gorm:"column:color_images" json:"colorImages"`
	Quantity        int                                  `gorm:"column:quantity;not null;default:0" json:"quantity"`
	ColorQuantities datatypes.JSONType[map[string]int]   `gorm:"column:color_quantities" json:"colorQuantities"`
	Sold            bool                                 `gorm:"column:sold;not null;default:false" json:"sold"`
	Paused          bool                                 `gorm:"column:paused;not null;default:false" json:"paused"`
	ClickCount      int                                  `gorm:"column:click_count;not null;default:0" json:"clickCount"`
	PurchaseCount   int                                  `gorm:"column:purchase_count;not null;default:0" json:"purchaseCount"`
	CartCount       int                                  `gorm:"column:cart_count;not null;default:0" json:"cartCount"`
	FavoritesCount  int                                  `gorm:"column:favorites_count;not null;default:0" json:"favoritesCount"`
	IsBoosted       bool                                 `gorm:"column:is_boosted;not null;default:false" json:"isBoosted"`
	BoostStartTime  *time.Time                           `gorm:"column:boost_start_time" json:"boostStartTime"`
	BoostEndTime    *time.Time                           `gorm:"column:boost_end_time" json:"boostEndTime"`
	SearchIndex     datatypes.JSONSlice[string]          `gorm:"column:search_index" json:"searchIndex"`
	CreatedAt       time.Time                            `json:"createdAt"`
	UpdatedAt       time.Time                            `json:"updatedAt"`
}

func (ShopProduct) TableName() string {
	return "shop_products"
}

func (p *ShopProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ProductID == uuid.Nil {
		p.ProductID = uuid.New()
	}
	return nil
}

// SalePreferences is the per-product discount rule: buy DiscountThreshold or
// more (never above MaxQuantity per order) and get DiscountPercentage off.
type SalePreferences struct {
	ProductID          uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey" json:"productId"`
	MaxQuantity        int       `gorm:"column:max_quantity;not null;default:0" json:"maxQuantity"`
	DiscountThreshold  int       `gorm:"column:discount_threshold;not null;default:0" json:"discountThreshold"`
	DiscountPercentage int       `gorm:"column:discount_percentage;not null;default:0" json:"discountPercentage"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (SalePreferences) TableName() string {
	return "sale_preferences"
}
