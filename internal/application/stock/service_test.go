package stock

import (
	"context"
	"testing"

	"pazar-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupStock(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ShopProduct{}))
	return &Service{DB: db}, db
}

func TestList_Filters(t *testing.T) {
	svc, db := setupStock(t)
	shopID := uuid.New()

	require.NoError(t, db.Create(&domain.ShopProduct{
		ShopID: shopID, OwnerID: uuid.New(), ProductName: "Ceramic Lamp",
		Category: "Home", Subcategory: "Lighting", Subsubcategory: "Lamps",
		Quantity: 3, Price: 150.5,
		SearchIndex: datatypes.NewJSONSlice([]string{"ceramic lamp", "home", "lighting"}),
	}).Error)
	require.NoError(t, db.Create(&domain.ShopProduct{
		ShopID: shopID, OwnerID: uuid.New(), ProductName: "Silk Dress",
		Category: "Women", Subcategory: "Clothing", Subsubcategory: "Dresses",
		Quantity: 0, Price: 899,
		SearchIndex: datatypes.NewJSONSlice([]string{"silk dress", "women"}),
	}).Error)

	out, total, err := svc.List(context.Background(), ListInput{ShopID: shopID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, out, 2)

	out, total, err = svc.List(context.Background(), ListInput{ShopID: shopID.String(), Category: "Home"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Ceramic Lamp", out[0].ProductName)

	out, total, err = svc.List(context.Background(), ListInput{ShopID: shopID.String(), OutOfStockOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Silk Dress", out[0].ProductName)

	_, total, err = svc.List(context.Background(), ListInput{ShopID: shopID.String(), Search: "lighting"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestList_InvalidShopID(t *testing.T) {
	svc, _ := setupStock(t)
	_, _, err := svc.List(context.Background(), ListInput{ShopID: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid shop ID format (must be a valid UUID)", err.Error())
}

func TestUpdateQuantity_Overall(t *testing.T) {
	svc, db := setupStock(t)
	shopID := uuid.New()
	p := domain.ShopProduct{ShopID: shopID, OwnerID: uuid.New(), ProductName: "Lamp", Quantity: 2, Price: 1}
	require.NoError(t, db.Create(&p).Error)

	out, err := svc.UpdateQuantity(context.Background(), UpdateQuantityInput{
		ShopID: shopID.String(), ProductID: p.ProductID.String(), Quantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Quantity)

	var got domain.ShopProduct
	require.NoError(t, db.First(&got, "product_id = ?", p.ProductID).Error)
	assert.Equal(t, 7, got.Quantity)
}

func TestUpdateQuantity_PerColorMergesAndSums(t *testing.T) {
	svc, db := setupStock(t)
	shopID := uuid.New()
	p := domain.ShopProduct{
		ShopID: shopID, OwnerID: uuid.New(), ProductName: "Dress", Quantity: 5, Price: 1,
		ColorQuantities: datatypes.NewJSONType(map[string]int{"Red": 3, "Blue": 2}),
	}
	require.NoError(t, db.Create(&p).Error)

	out, err := svc.UpdateQuantity(context.Background(), UpdateQuantityInput{
		ShopID: shopID.String(), ProductID: p.ProductID.String(), Color: "Red", Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Red": 10, "Blue": 2}, out.ColorQuantities.Data())
	assert.Equal(t, 12, out.Quantity)

	// A color not yet in the map is merged in.
	out, err = svc.UpdateQuantity(context.Background(), UpdateQuantityInput{
		ShopID: shopID.String(), ProductID: p.ProductID.String(), Color: "Green", Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 13, out.Quantity)
	assert.Equal(t, 1, out.ColorQuantities.Data()["Green"])
}

func TestUpdateQuantity_NegativeRejected(t *testing.T) {
	svc, _ := setupStock(t)
	_, err := svc.UpdateQuantity(context.Background(), UpdateQuantityInput{
		ShopID: uuid.NewString(), ProductID: uuid.NewString(), Quantity: -1,
	})
	require.Error(t, err)
	assert.Equal(t, "Quantity cannot be negative", err.Error())
}

func TestUpdateQuantity_WrongShop(t *testing.T) {
	svc, db := setupStock(t)
	p := domain.ShopProduct{ShopID: uuid.New(), OwnerID: uuid.New(), ProductName: "Lamp", Price: 1}
	require.NoError(t, db.Create(&p).Error)

	_, err := svc.UpdateQuantity(context.Background(), UpdateQuantityInput{
		ShopID: uuid.NewString(), ProductID: p.ProductID.String(), Quantity: 1,
	})
	assert.Equal(t, ErrProductNotFound, err)
}
