// Package products serves the shop's live product list, the product detail
// view and the per-product sale preferences.
package products

import (
	"context"
	"errors"
	"strings"

	"pazar-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("Product not found")

// Service holds DB for product operations.
type Service struct {
	DB *gorm.DB
}

// ListInput is the product list query.
type ListInput struct {
	ShopID string
	Search string
	Offset int
	Limit  int
}

// List returns the shop's products, newest first, with a total for paging.
func (s *Service) List(ctx context.Context, in ListInput) ([]domain.ShopProduct, int64, error) {
	if _, err := uuid.Parse(in.ShopID); err != nil {
		return nil, 0, errors.New("Invalid shop ID format (must be a valid UUID)")
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	q := s.DB.WithContext(ctx).Model(&domain.ShopProduct{}).Where("shop_id = ?", in.ShopID)
	if term := strings.TrimSpace(in.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(product_name) LIKE ? OR LOWER(brand_model) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []domain.ShopProduct
	err := q.Order("created_at desc").Offset(in.Offset).Limit(in.Limit).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Detail is a product with its sale preferences and sales history.
type Detail struct {
	Product     domain.ShopProduct       `json:"product"`
	Preferences *domain.SalePreferences  `json:"preferences"`
	Orders      []domain.OrderItem       `json:"orders"`
}

// GetDetail returns one shop product with preferences and order items.
func (s *Service) GetDetail(ctx context.Context, shopID, productID string) (*Detail, error) {
	product, err := s.getOwned(ctx, shopID, productID)
	if err != nil {
		return nil, err
	}

	out := &Detail{Product: *product}

	var prefs domain.SalePreferences
	err = s.DB.WithContext(ctx).First(&prefs, "product_id = ?", productID).Error
	if err == nil {
		out.Preferences = &prefs
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("timestamp desc").
		Find(&out.Orders).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// PreferencesInput is the sale preferences payload. All zeros clears the row.
type PreferencesInput struct {
	MaxQuantity        int `json:"maxQuantity"`
	DiscountThreshold  int `json:"discountThreshold"`
	DiscountPercentage int `json:"discountPercentage"`
}

func (in PreferencesInput) empty() bool {
	return in.MaxQuantity == 0 && in.DiscountThreshold == 0 && in.DiscountPercentage == 0
}

// UpdatePreferences validates and upserts the discount rule; an all-zero
// payload deletes it.
func (s *Service) UpdatePreferences(ctx context.Context, shopID, productID string, in PreferencesInput) (*domain.SalePreferences, error) {
	product, err := s.getOwned(ctx, shopID, productID)
	if err != nil {
		return nil, err
	}

	if in.empty() {
		if err := s.DB.WithContext(ctx).Delete(&domain.SalePreferences{}, "product_id = ?", productID).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	if in.MaxQuantity <= 0 {
		return nil, errors.New("Max quantity must be a positive number")
	}
	if in.DiscountThreshold < 0 || in.DiscountPercentage < 0 {
		return nil, errors.New("Discount values cannot be negative")
	}
	if in.DiscountThreshold > in.MaxQuantity {
		return nil, errors.New("Discount threshold cannot exceed max quantity")
	}
	if in.DiscountPercentage > 90 {
		return nil, errors.New("Discount percentage cannot exceed 90")
	}

	prefs := domain.SalePreferences{
		ProductID:          product.ProductID,
		MaxQuantity:        in.MaxQuantity,
		DiscountThreshold:  in.DiscountThreshold,
		DiscountPercentage: in.DiscountPercentage,
	}

	var existing domain.SalePreferences
	err = s.DB.WithContext(ctx).First(&existing, "product_id = ?", productID).Error
	if err == gorm.ErrRecordNotFound {
		if err := s.DB.WithContext(ctx).Create(&prefs).Error; err != nil {
			return nil, err
		}
		return &prefs, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.SalePreferences{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"max_quantity":        in.MaxQuantity,
			"discount_threshold":  in.DiscountThreshold,
			"discount_percentage": in.DiscountPercentage,
		}).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// getOwned loads a product and checks it belongs to the shop.
func (s *Service) getOwned(ctx context.Context, shopID, productID string) (*domain.ShopProduct, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, ErrProductNotFound
	}
	var product domain.ShopProduct
	if err := s.DB.WithContext(ctx).First(&product, "product_id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.ShopID.String() != shopID {
		return nil, ErrProductNotFound
	}
	return &product, nil
}
