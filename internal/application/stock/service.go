// Package stock implements the inventory screen: filtered product listing and
// quantity edits, overall or per color.
package stock

import (
	"context"
	"errors"
	"strings"

	"pazar-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("Product not found")

// Service holds DB for stock operations.
type Service struct {
	DB *gorm.DB
}

// ListInput filters the stock table.
type ListInput struct {
	ShopID         string
	Search         string
	Category       string
	Subcategory    string
	Subsubcategory string
	OutOfStockOnly bool
	Offset         int
	Limit          int
}

// List returns the shop's products under the stock filters, newest first.
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
	if in.Category != "" {
		q = q.Where("category = ?", in.Category)
	}
	if in.Subcategory != "" {
		q = q.Where("subcategory = ?", in.Subcategory)
	}
	if in.Subsubcategory != "" {
		q = q.Where("subsubcategory = ?", in.Subsubcategory)
	}
	if in.OutOfStockOnly {
		q = q.Where("quantity <= 0")
	}
	if term := strings.TrimSpace(in.Search); term != "" {
		// search_index holds lowercased terms; match against the JSON text
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(product_name) LIKE ? OR search_index LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []domain.ShopProduct
	if err := q.Order("created_at desc").Offset(in.Offset).Limit(in.Limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// UpdateQuantityInput updates overall stock, or one color's stock when Color
// is set. Per-color updates merge into the existing color quantity map and
// the overall quantity becomes the map's sum.
type UpdateQuantityInput struct {
	ShopID    string
	ProductID string
	Color     string
	Quantity  int
}

// UpdateQuantity applies a stock edit and returns the updated product.
func (s *Service) UpdateQuantity(ctx context.Context, in UpdateQuantityInput) (*domain.ShopProduct, error) {
	if in.Quantity < 0 {
		return nil, errors.New("Quantity cannot be negative")
	}
	if _, err := uuid.Parse(in.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	var product domain.ShopProduct
	if err := s.DB.WithContext(ctx).First(&product, "product_id = ?", in.ProductID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.ShopID.String() != in.ShopID {
		return nil, ErrProductNotFound
	}

	upd := map[string]interface{}{}
	if in.Color == "" {
		upd["quantity"] = in.Quantity
		product.Quantity = in.Quantity
	} else {
		quantities := product.ColorQuantities.Data()
		if quantities == nil {
			quantities = map[string]int{}
		}
		quantities[in.Color] = in.Quantity
		total := 0
		for _, q := range quantities {
			total += q
		}
		product.ColorQuantities = datatypes.NewJSONType(quantities)
		product.Quantity = total
		upd["color_quantities"] = product.ColorQuantities
		upd["quantity"] = total
	}

	if err := s.DB.WithContext(ctx).Model(&domain.ShopProduct{}).
		Where("product_id = ?", in.ProductID).
		Updates(upd).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
