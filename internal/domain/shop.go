package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Shop is a merchant storefront. Editors, co-owners and viewers are user id
// lists; role resolution lives in the shops service.
type Shop struct {
	ShopID     uuid.UUID                      `gorm:"column:shop_id;type:uuid;primaryKey" json:"id"`
	Name       string                         `gorm:"column:name;not null" json:"name"`
	OwnerID    uuid.UUID                      `gorm:"column:owner_id;type:uuid;not null;index" json:"ownerId"`
	Editors    datatypes.JSONSlice[string]    `gorm:"column:editors" json:"editors"`
	CoOwners   datatypes.JSONSlice[string]    `gorm:"column:co_owners" json:"coOwners"`
	Viewers    datatypes.JSONSlice[string]    `gorm:"column:viewers" json:"viewers"`
	ClickCount int                            `gorm:"column:click_count;not null;default:0" json:"clickCount"`
	CreatedAt  time.Time                      `json:"createdAt"`
	UpdatedAt  time.Time                      `json:"updatedAt"`
}

func (Shop) TableName() string {
	return "shops"
}

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ShopID == uuid.Nil {
		s.ShopID = uuid.New()
	}
	return nil
}

// SellerInfo is the per-shop payout and contact record. A shop must have one
// before it can list products.
type SellerInfo struct {
	ShopID           uuid.UUID `gorm:"column:shop_id;type:uuid;primaryKey" json:"shopId"`
	Phone            string    `gorm:"column:phone;not null" json:"phone"`
	Region           string    `gorm:"column:region;not null" json:"region"`
	Address          string    `gorm:"column:address;not null" json:"address"`
	IbanOwnerName    string    `gorm:"column:iban_owner_name;not null" json:"ibanOwnerName"`
	IbanOwnerSurname string    `gorm:"column:iban_owner_surname;not null" json:"ibanOwnerSurname"`
	Iban             string    `gorm:"column:iban;not null" json:"iban"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (SellerInfo) TableName() string {
	return "seller_infos"
}
