// Package orders serves the shop's order table.
package orders

import (
	"context"
	"errors"

	"pazar-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service holds DB for order queries.
type Service struct {
	DB *gorm.DB
}

// Row is an order item with the buyer's display name resolved.
type Row struct {
	domain.OrderItem
	BuyerName string `json:"buyerName"`
}

// ListForShop returns the shop's order items newest first, resolving buyer
// display names in one pass; unknown buyers fall back to their id.
func (s *Service) ListForShop(ctx context.Context, shopID string) ([]Row, error) {
	if _, err := uuid.Parse(shopID); err != nil {
		return nil, errors.New("Invalid shop ID format (must be a valid UUID)")
	}

	var items []domain.OrderItem
	err := s.DB.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("timestamp desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	// Collect distinct buyer ids, then one lookup for all names.
	idSet := map[uuid.UUID]bool{}
	for _, it := range items {
		idSet[it.BuyerID] = true
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		var buyers []domain.User
		if err := s.DB.WithContext(ctx).Where("user_id IN ?", ids).Find(&buyers).Error; err != nil {
			return nil, err
		}
		for _, b := range buyers {
			if b.DisplayName != "" {
				names[b.UserID] = b.DisplayName
			} else if b.Fullname != "" {
				names[b.UserID] = b.Fullname
			}
		}
	}

	rows := make([]Row, 0, len(items))
	for _, it := range items {
		name, ok := names[it.BuyerID]
		if !ok {
			name = it.BuyerID.String()
		}
		rows = append(rows, Row{OrderItem: it, BuyerName: name})
	}
	return rows, nil
}
