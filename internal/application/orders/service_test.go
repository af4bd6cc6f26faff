package orders

import (
	"context"
	"testing"
	"time"

	"pazar-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrders(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.OrderItem{}, &domain.User{}))
	return &Service{DB: db}, db
}

func TestListForShop_NewestFirstWithBuyerNames(t *testing.T) {
	svc, db := setupOrders(t)
	shopID := uuid.New()

	named := uuid.New()
	require.NoError(t, db.Create(&domain.User{
		UserID: named, Fullname: "Ayse Yilmaz", DisplayName: "Ayse'nin Dukkani",
		Email: "a@test.com", PasswordHash: "x",
	}).Error)
	noDisplay := uuid.New()
	require.NoError(t, db.Create(&domain.User{
		UserID: noDisplay, Fullname: "Mehmet Demir",
		Email: "m@test.com", PasswordHash: "x",
	}).Error)
	unknown := uuid.New()

	base := time.Now()
	for i, buyer := range []uuid.UUID{named, noDisplay, unknown} {
		require.NoError(t, db.Create(&domain.OrderItem{
			OrderID: uuid.NewString(), ShopID: shopID, ProductID: uuid.New(),
			ProductName: "Lamp", Quantity: 1, Price: 150.5, BuyerID: buyer,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}
	// Another shop's order stays out.
	require.NoError(t, db.Create(&domain.OrderItem{
		OrderID: uuid.NewString(), ShopID: uuid.New(), ProductID: uuid.New(),
		ProductName: "Other", Quantity: 1, Price: 1, BuyerID: named,
		Timestamp: base,
	}).Error)

	rows, err := svc.ListForShop(context.Background(), shopID.String())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Newest first: unknown, then fullname fallback, then display name.
	assert.Equal(t, unknown.String(), rows[0].BuyerName)
	assert.Equal(t, "Mehmet Demir", rows[1].BuyerName)
	assert.Equal(t, "Ayse'nin Dukkani", rows[2].BuyerName)
}

func TestListForShop_InvalidShopID(t *testing.T) {
	svc, _ := setupOrders(t)
	_, err := svc.ListForShop(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid shop ID format (must be a valid UUID)", err.Error())
}

func TestListForShop_EmptyShop(t *testing.T) {
	svc, _ := setupOrders(t)
	rows, err := svc.ListForShop(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, rows)
}
