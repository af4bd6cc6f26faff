// Package boost implements paid product promotion: candidate selection,
// purchase pricing, Stripe-confirmed activation and expiry.
package boost

import (
	"context"
	"errors"
	"time"

	"pazar-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Durations (days) a boost can run for.
var Durations = []int{5, 10, 15, 20, 25, 30, 35}

// BasePricePerProduct is the TL price per product per duration day.
const BasePricePerProduct = 150.0

var (
	ErrInvalidDuration = errors.New("Invalid boost duration")
	ErrNoItems         = errors.New("No products selected for boost")
	ErrBadItem         = errors.New("One or more products cannot be boosted")
)

// Service holds DB for boost operations.
type Service struct {
	DB *gorm.DB
}

// Candidates returns the shop's products eligible for boosting: not already
// boosted and not sold out.
func (s *Service) Candidates(ctx context.Context, shopID string) ([]domain.ShopProduct, error) {
	if _, err := uuid.Parse(shopID); err != nil {
		return nil, errors.New("Invalid shop ID format (must be a valid UUID)")
	}
	var products []domain.ShopProduct
	err := s.DB.WithContext(ctx).
		Where("shop_id = ? AND is_boosted = ? AND sold = ?", shopID, false, false).
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// PurchaseInput is a boost checkout request.
type PurchaseInput struct {
	UserID     string
	ShopID     string
	ProductIDs []string
	Duration   int
}

// Purchase is the priced, pending boost awaiting payment confirmation.
type Purchase struct {
	Record       *domain.BoostRecord `json:"record"`
	ItemCount    int                 `json:"totalRequestedItems"`
	PricePerItem float64             `json:"pricePerItem"`
	TotalPrice   float64             `json:"totalPrice"`
}

// CreatePurchase validates the request, prices it (duration x base price x
// item count) and writes a pending BoostRecord. Activation happens when the
// payment webhook fires.
func (s *Service) CreatePurchase(ctx context.Context, in PurchaseInput) (*Purchase, error) {
	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, errors.New("Invalid user ID format (must be a valid UUID)")
	}
	shopID, err := uuid.Parse(in.ShopID)
	if err != nil {
		return nil, errors.New("Invalid shop ID format (must be a valid UUID)")
	}
	if !validDuration(in.Duration) {
		return nil, ErrInvalidDuration
	}
	if len(in.ProductIDs) == 0 {
		return nil, ErrNoItems
	}

	var count int64
	err = s.DB.WithContext(ctx).Model(&domain.ShopProduct{}).
		Where("product_id IN ? AND shop_id = ? AND is_boosted = ? AND sold = ?",
			in.ProductIDs, in.ShopID, false, false).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count != int64(len(in.ProductIDs)) {
		return nil, ErrBadItem
	}

	pricePerItem := float64(in.Duration) * BasePricePerProduct
	totalPrice := pricePerItem * float64(len(in.ProductIDs))

	record := &domain.BoostRecord{
		UserID:       userID,
		ShopID:       shopID,
		ProductIDs:   datatypes.NewJSONSlice(in.ProductIDs),
		Duration:     in.Duration,
		PricePerItem: pricePerItem,
		TotalPrice:   totalPrice,
		Status:       domain.BoostStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}

	return &Purchase{
		Record:       record,
		ItemCount:    len(in.ProductIDs),
		PricePerItem: pricePerItem,
		TotalPrice:   totalPrice,
	}, nil
}

// AttachPaymentIntent links the Stripe PaymentIntent to the pending record so
// the webhook can find it.
func (s *Service) AttachPaymentIntent(ctx context.Context, boostID, paymentIntentID string) error {
	return s.DB.WithContext(ctx).Model(&domain.BoostRecord{}).
		Where("boost_id = ?", boostID).
		Update("stripe_payment_intent_id", paymentIntentID).Error
}

// Activate flips a paid boost live: record becomes active with its window set
// and every covered product gets is_boosted plus the window. Idempotent on
// the payment intent id.
func (s *Service) Activate(ctx context.Context, paymentIntentID string) (*domain.BoostRecord, error) {
	var record domain.BoostRecord
	err := s.DB.WithContext(ctx).
		First(&record, "stripe_payment_intent_id = ?", paymentIntentID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil // not a boost payment, skip silently
	}
	if err != nil {
		return nil, err
	}
	if record.Status != domain.BoostStatusPending {
		return &record, nil // already processed
	}

	start := time.Now()
	end := start.AddDate(0, 0, record.Duration)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.BoostRecord{}).
			Where("boost_id = ?", record.BoostID).
			Updates(map[string]interface{}{
				"status":           domain.BoostStatusActive,
				"boost_start_time": start,
				"boost_end_time":   end,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.ShopProduct{}).
			Where("product_id IN ?", []string(record.ProductIDs)).
			Updates(map[string]interface{}{
				"is_boosted":       true,
				"boost_start_time": start,
				"boost_end_time":   end,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	record.Status = domain.BoostStatusActive
	record.BoostStartTime = &start
	record.BoostEndTime = &end
	return &record, nil
}

// ActiveItem is a boosted product with its countdown, clamped at zero.
type ActiveItem struct {
	Product          domain.ShopProduct `json:"product"`
	RemainingSeconds int64              `json:"remainingSeconds"`
}

// Active returns the shop's currently boosted products with time remaining.
func (s *Service) Active(ctx context.Context, shopID string) ([]ActiveItem, error) {
	if _, err := uuid.Parse(shopID); err != nil {
		return nil, errors.New("Invalid shop ID format (must be a valid UUID)")
	}
	var products []domain.ShopProduct
	err := s.DB.WithContext(ctx).
		Where("shop_id = ? AND is_boosted = ?", shopID, true).
		Order("boost_end_time asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]ActiveItem, 0, len(products))
	for _, p := range products {
		var remaining int64
		if p.BoostEndTime != nil {
			remaining = int64(p.BoostEndTime.Sub(now).Seconds())
			if remaining < 0 {
				remaining = 0
			}
		}
		items = append(items, ActiveItem{Product: p, RemainingSeconds: remaining})
	}
	return items, nil
}

// ExpireDue clears is_boosted on products whose window passed and marks the
// matching records expired. Returns how many products were cleared.
func (s *Service) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&domain.ShopProduct{}).
		Where("is_boosted = ? AND boost_end_time IS NOT NULL AND boost_end_time < ?", true, now).
		Updates(map[string]interface{}{"is_boosted": false})
	if res.Error != nil {
		return 0, res.Error
	}
	if err := s.DB.WithContext(ctx).Model(&domain.BoostRecord{}).
		Where("status = ? AND boost_end_time IS NOT NULL AND boost_end_time < ?", domain.BoostStatusActive, now).
		Update("status", domain.BoostStatusExpired).Error; err != nil {
		return 0, err
	}
	if res.RowsAffected > 0 {
		log.Info().Int64("products", res.RowsAffected).Msg("Expired boosts cleared")
	}
	return res.RowsAffected, nil
}

func validDuration(d int) bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}
