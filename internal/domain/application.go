package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductApplication is the moderation record written when a merchant submits
// a new listing. It carries the full product payload plus a snapshot of the
// shop's seller info; once approved it becomes a ShopProduct. NeedsSync marks
// records the approval pipeline has not yet picked up.
type ProductApplication struct {
	ApplicationID   uuid.UUID                               `gorm:"column:application_id;type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                               `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	OwnerID         uuid.UUID                               `gorm:"column:owner_id;type:uuid;not null" json:"ownerId"`
	ShopID          *uuid.UUID                              `gorm:"column:shop_id;type:uuid;index" json:"shopId"`
	SellerName      string                                  `gorm:"column:seller_name;not null" json:"sellerName"`
	IlanNo          string                                  `gorm:"column:ilan_no;not null" json:"ilanNo"`
	ProductName     string                                  `gorm:"column:product_name;not null" json:"productName"`
	Description     string                                  `gorm:"column:description;not null" json:"description"`
	Price           float64                                 `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Currency        string                                  `gorm:"column:currency;type:varchar(8);default:'TL'" json:"currency"`
	Condition       string                                  `gorm:"column:condition;not null" json:"condition"`
	BrandModel      string                                  `gorm:"column:brand_model" json:"brandModel"`
	DeliveryOption  string                                  `gorm:"column:delivery_option;not null" json:"deliveryOption"`
	Category        string                                  `gorm:"column:category;not null" json:"category"`
	Subcategory     string                                  `gorm:"column:subcategory;not null" json:"subcategory"`
	Subsubcategory  string                                  `gorm:"column:subsubcategory;not null" json:"subsubcategory"`
	Quantity        int                                     `gorm:"column:quantity;not null" json:"quantity"`
	ColorQuantities datatypes.JSONType[map[string]int]      `gorm:"column:color_quantities" json:"colorQuantities"`
	ImageUrls       datatypes.JSONSlice[string]             `gorm:"column:image_urls" json:"imageUrls"`
	VideoURL        *string                                 `gorm:"column:video_url" json:"videoUrl"`
	ColorImages     datatypes.JSONType[map[string][]string] `gorm:"column:color_images" json:"colorImages"`

	// Category variant bundle; only the fields for the chosen category chain are set.
	JewelryType      string                      `gorm:"column:jewelry_type" json:"jewelryType"`
	JewelryMaterials datatypes.JSONSlice[string] `gorm:"column:jewelry_materials" json:"jewelryMaterials"`
	ClothingSizes    datatypes.JSONSlice[string] `gorm:"column:clothing_sizes" json:"clothingSizes"`
	ClothingFit      string                      `gorm:"column:clothing_fit" json:"clothingFit"`
	ClothingType     string                      `gorm:"column:clothing_type" json:"clothingType"`
	PantSizes        datatypes.JSONSlice[string] `gorm:"column:pant_sizes" json:"pantSizes"`
	FootwearGender   string                      `gorm:"column:footwear_gender" json:"footwearGender"`
	FootwearSizes    datatypes.JSONSlice[string] `gorm:"column:footwear_sizes" json:"footwearSizes"`
	Gender           string                      `gorm:"column:gender" json:"gender"`

	// Seller info snapshot at submission time.
	Phone            string `gorm:"column:phone" json:"phone"`
	Region           string `gorm:"column:region" json:"region"`
	Address          string `gorm:"column:address" json:"address"`
	IbanOwnerName    string `gorm:"column:iban_owner_name" json:"ibanOwnerName"`
	IbanOwnerSurname string `gorm:"column:iban_owner_surname" json:"ibanOwnerSurname"`
	Iban             string `gorm:"column:iban" json:"iban"`

	// Engagement counters start at zero; flags start false.
	AverageRating  float64 `gorm:"column:average_rating;not null;default:0" json:"averageRating"`
	ReviewCount    int     `gorm:"column:review_count;not null;default:0" json:"reviewCount"`
	ClickCount     int     `gorm:"column:click_count;not null;default:0" json:"clickCount"`
	PurchaseCount  int     `gorm:"column:purchase_count;not null;default:0" json:"purchaseCount"`
	CartCount      int     `gorm:"column:cart_count;not null;default:0" json:"cartCount"`
	FavoritesCount int     `gorm:"column:favorites_count;not null;default:0" json:"favoritesCount"`
	IsBoosted      bool    `gorm:"column:is_boosted;not null;default:false" json:"isBoosted"`
	IsFeatured     bool    `gorm:"column:is_featured;not null;default:false" json:"isFeatured"`
	IsTrending     bool    `gorm:"column:is_trending;not null;default:false" json:"isTrending"`
	Sold           bool    `gorm:"column:sold;not null;default:false" json:"sold"`
	Paused         bool    `gorm:"column:paused;not null;default:false" json:"paused"`
	NeedsSync      bool    `gorm:"column:needs_sync;not null;default:true" json:"needsSync"`

	SearchIndex datatypes.JSONSlice[string] `gorm:"column:search_index" json:"searchIndex"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (ProductApplication) TableName() string {
	return "product_applications"
}

func (a *ProductApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ApplicationID == uuid.Nil {
		a.ApplicationID = uuid.New()
	}
	return nil
}
