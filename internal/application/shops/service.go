// Package shops resolves the merchant's shop context: which shops a user can
// act for, their role in each, dashboard metrics and the seller info record.
package shops

import (
	"context"
	"errors"
	"strings"

	"pazar-backend/internal/catalog"
	"pazar-backend/internal/domain"
	"pazar-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop membership roles.
const (
	RoleOwner   = "owner"
	RoleCoOwner = "co-owner"
	RoleEditor  = "editor"
	RoleViewer  = "viewer"
)

var (
	ErrShopNotFound = errors.New("Shop not found")
	ErrNotMember    = errors.New("You do not have access to this shop")
)

// Service holds DB for shop operations.
type Service struct {
	DB *gorm.DB
}

// ShopWithRole is a shop plus the requesting user's role in it.
type ShopWithRole struct {
	domain.Shop
	Role string `json:"role"`
}

// ListForUser returns every shop the user owns, co-owns, edits or views.
// Membership lists are JSON arrays, matched by quoted-id containment so the
// query works on both Postgres and the sqlite test driver.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]ShopWithRole, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, errors.New("Invalid user ID format (must be a valid UUID)")
	}
	pattern := `%"` + userID + `"%`
	var records []domain.Shop
	err := s.DB.WithContext(ctx).
		Where("owner_id = ? OR editors LIKE ? OR co_owners LIKE ? OR viewers LIKE ?",
			userID, pattern, pattern, pattern).
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]ShopWithRole, 0, len(records))
	for _, shop := range records {
		role := roleIn(shop, userID)
		if role == "" {
			continue
		}
		out = append(out, ShopWithRole{Shop: shop, Role: role})
	}
	return out, nil
}

// Select verifies membership and returns the shop with the user's role, for
// storing in the session as the active shop.
func (s *Service) Select(ctx context.Context, userID, shopID string) (*ShopWithRole, error) {
	shop, err := s.get(ctx, shopID)
	if err != nil {
		return nil, err
	}
	role := roleIn(*shop, userID)
	if role == "" {
		return nil, ErrNotMember
	}
	return &ShopWithRole{Shop: *shop, Role: role}, nil
}

// Metrics is the dashboard aggregate for one shop.
type Metrics struct {
	ProductViews   int64 `json:"productViews"`
	SoldProducts   int64 `json:"soldProducts"`
	Carts          int64 `json:"carts"`
	Favorites      int64 `json:"favorites"`
	ShopClicks     int   `json:"shopClicks"`
	BoostPurchases int64 `json:"boostPurchases"`
}

type counterSums struct {
	Clicks    int64
	Purchases int64
	Carts     int64
	Favorites int64
}

// CollectMetrics sums engagement counters over the shop's products, reads the
// shop click counter and counts the user's boost purchases.
func (s *Service) CollectMetrics(ctx context.Context, userID, shopID string) (*Metrics, error) {
	shop, err := s.get(ctx, shopID)
	if err != nil {
		return nil, err
	}

	var sums counterSums
	err = s.DB.WithContext(ctx).Model(&domain.ShopProduct{}).
		Select("COALESCE(SUM(click_count),0) as clicks, COALESCE(SUM(purchase_count),0) as purchases, COALESCE(SUM(cart_count),0) as carts, COALESCE(SUM(favorites_count),0) as favorites").
		Where("shop_id = ?", shopID).
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	var boostCount int64
	if err := s.DB.WithContext(ctx).Model(&domain.BoostRecord{}).
		Where("user_id = ?", userID).Count(&boostCount).Error; err != nil {
		return nil, err
	}

	return &Metrics{
		ProductViews:   sums.Clicks,
		SoldProducts:   sums.Purchases,
		Carts:          sums.Carts,
		Favorites:      sums.Favorites,
		ShopClicks:     shop.ClickCount,
		BoostPurchases: boostCount,
	}, nil
}

// SellerInfoInput is the payout/contact form payload.
type SellerInfoInput struct {
	Phone            string `json:"phone"`
	Region           string `json:"region"`
	Address          string `json:"address"`
	IbanOwnerName    string `json:"ibanOwnerName"`
	IbanOwnerSurname string `json:"ibanOwnerSurname"`
	Iban             string `json:"iban"`
}

// GetSellerInfo returns the shop's seller info, or nil when not yet filled in.
func (s *Service) GetSellerInfo(ctx context.Context, shopID string) (*domain.SellerInfo, error) {
	if _, err := uuid.Parse(shopID); err != nil {
		return nil, ErrShopNotFound
	}
	var info domain.SellerInfo
	err := s.DB.WithContext(ctx).First(&info, "shop_id = ?", shopID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// PutSellerInfo validates and upserts the shop's seller info. All fields are
// required; listing a product is gated on this record existing.
func (s *Service) PutSellerInfo(ctx context.Context, shopID string, in SellerInfoInput) (*domain.SellerInfo, error) {
	shopUUID, err := uuid.Parse(shopID)
	if err != nil {
		return nil, ErrShopNotFound
	}
	if !validation.IsValidPhone(in.Phone) {
		return nil, errors.New("Valid phone number is required")
	}
	if !catalog.ValidRegion(in.Region) {
		return nil, errors.New("Please select a region")
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, errors.New("Address is required")
	}
	if strings.TrimSpace(in.IbanOwnerName) == "" || strings.TrimSpace(in.IbanOwnerSurname) == "" {
		return nil, errors.New("IBAN owner name and surname are required")
	}
	if !validation.IsValidIBAN(in.Iban) {
		return nil, errors.New("Valid IBAN is required")
	}

	info := domain.SellerInfo{
		ShopID:           shopUUID,
		Phone:            strings.TrimSpace(in.Phone),
		Region:           in.Region,
		Address:          strings.TrimSpace(in.Address),
		IbanOwnerName:    strings.TrimSpace(in.IbanOwnerName),
		IbanOwnerSurname: strings.TrimSpace(in.IbanOwnerSurname),
		Iban:             strings.ToUpper(strings.ReplaceAll(in.Iban, " ", "")),
	}

	var existing domain.SellerInfo
	err = s.DB.WithContext(ctx).First(&existing, "shop_id = ?", shopID).Error
	if err == gorm.ErrRecordNotFound {
		if err := s.DB.WithContext(ctx).Create(&info).Error; err != nil {
			return nil, err
		}
		return &info, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.SellerInfo{}).
		Where("shop_id = ?", shopID).
		Updates(map[string]interface{}{
			"phone":              info.Phone,
			"region":             info.Region,
			"address":            info.Address,
			"iban_owner_name":    info.IbanOwnerName,
			"iban_owner_surname": info.IbanOwnerSurname,
			"iban":               info.Iban,
		}).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteSellerInfo removes the record; listing is gated again afterwards.
func (s *Service) DeleteSellerInfo(ctx context.Context, shopID string) error {
	if _, err := uuid.Parse(shopID); err != nil {
		return ErrShopNotFound
	}
	return s.DB.WithContext(ctx).Delete(&domain.SellerInfo{}, "shop_id = ?", shopID).Error
}

func (s *Service) get(ctx context.Context, shopID string) (*domain.Shop, error) {
	if _, err := uuid.Parse(shopID); err != nil {
		return nil, ErrShopNotFound
	}
	var shop domain.Shop
	if err := s.DB.WithContext(ctx).First(&shop, "shop_id = ?", shopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// roleIn resolves the strongest role the user holds in the shop.
func roleIn(shop domain.Shop, userID string) string {
	if shop.OwnerID.String() == userID {
		return RoleOwner
	}
	if containsID(shop.CoOwners, userID) {
		return RoleCoOwner
	}
	if containsID(shop.Editors, userID) {
		return RoleEditor
	}
	if containsID(shop.Viewers, userID) {
		return RoleViewer
	}
	return ""
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
