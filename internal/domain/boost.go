package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Boost record statuses.
const (
	BoostStatusPending = "pending"
	BoostStatusActive  = "active"
	BoostStatusExpired = "expired"
)

// BoostRecord is one boost purchase covering one or more products.
// Duration is in days; pricing is duration * base price * item count.
// The record is created pending and activated by the Stripe webhook.
type BoostRecord struct {
	BoostID               uuid.UUID                   `gorm:"column:boost_id;type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID                   `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	ShopID                uuid.UUID                   `gorm:"column:shop_id;type:uuid;not null;index" json:"shopId"`
	ProductIDs            datatypes.JSONSlice[string] `gorm:"column:product_ids;not null" json:"productIds"`
	Duration              int                         `gorm:"column:duration;not null" json:"duration"`
	PricePerItem          float64                     `gorm:"column:price_per_item;type:decimal(18,2);not null" json:"pricePerItem"`
	TotalPrice            float64                     `gorm:"column:total_price;type:decimal(18,2);not null" json:"totalPrice"`
	Status                string                      `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	StripePaymentIntentID string                      `gorm:"column:stripe_payment_intent_id;index" json:"-"`
	BoostStartTime        *time.Time                  `gorm:"column:boost_start_time" json:"boostStartTime"`
	BoostEndTime          *time.Time                  `gorm:"column:boost_end_time" json:"boostEndTime"`
	CreatedAt             time.Time                   `json:"createdAt"`
	UpdatedAt             time.Time                   `json:"updatedAt"`
}

func (BoostRecord) TableName() string {
	return "boost_records"
}

func (b *BoostRecord) BeforeCreate(tx *gorm.DB) error {
	if b.BoostID == uuid.Nil {
		b.BoostID = uuid.New()
	}
	return nil
}
