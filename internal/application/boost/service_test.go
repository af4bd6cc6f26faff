package boost

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

func setupBoost(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ShopProduct{}, &domain.BoostRecord{}))
	return &Service{DB: db}, db
}

func seedProduct(t *testing.T, db *gorm.DB, shopID uuid.UUID, boosted, sold bool) uuid.UUID {
	p := domain.ShopProduct{
		ShopID:      shopID,
		OwnerID:     uuid.New(),
		ProductName: "Lamp",
		Price:       150.5,
		Quantity:    2,
		IsBoosted:   boosted,
		Sold:        sold,
	}
	require.NoError(t, db.Create(&p).Error)
	return p.ProductID
}

func TestCandidates_ExcludesBoostedAndSold(t *testing.T) {
	svc, db := setupBoost(t)
	shopID := uuid.New()
	eligible := seedProduct(t, db, shopID, false, false)
	seedProduct(t, db, shopID, true, false)
	seedProduct(t, db, shopID, false, true)

	out, err := svc.Candidates(context.Background(), shopID.String())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, eligible, out[0].ProductID)
}

func TestCreatePurchase_Pricing(t *testing.T) {
	svc, db := setupBoost(t)
	shopID := uuid.New()
	p1 := seedProduct(t, db, shopID, false, false)
	p2 := seedProduct(t, db, shopID, false, false)

	out, err := svc.CreatePurchase(context.Background(), PurchaseInput{
		UserID:     uuid.NewString(),
		ShopID:     shopID.String(),
		ProductIDs: []string{p1.String(), p2.String()},
		Duration:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.ItemCount)
	assert.Equal(t, 1500.0, out.PricePerItem)
	assert.Equal(t, 3000.0, out.TotalPrice)
	assert.Equal(t, domain.BoostStatusPending, out.Record.Status)
}

func TestCreatePurchase_InvalidDuration(t *testing.T) {
	svc, db := setupBoost(t)
	shopID := uuid.New()
	p1 := seedProduct(t, db, shopID, false, false)

	_, err := svc.CreatePurchase(context.Background(), PurchaseInput{
		UserID:     uuid.NewString(),
		ShopID:     shopID.String(),
		ProductIDs: []string{p1.String()},
		Duration:   7,
	})
	assert.Equal(t, ErrInvalidDuration, err)
}

func TestCreatePurchase_RejectsForeignOrIneligibleProducts(t *testing.T) {
	svc, db := setupBoost(t)
	shopID := uuid.New()
	ours := seedProduct(t, db, shopID, false, false)
	theirs := seedProduct(t, db, uuid.New(), false, false)
	boosted := seedProduct(t, db, shopID, true, false)

	for _, ids := range [][]string{
		{ours.String(), theirs.String()},
		{ours.String(), boosted.String()},
	} {
		_, err := svc.CreatePurchase(context.Background(), PurchaseInput{
			UserID:     uuid.NewString(),
			ShopID:     shopID.String(),
			ProductIDs: ids,
			Duration:   5,
		})
		assert.Equal(t, ErrBadItem, err)
	}
}

func TestCreatePurchase_NoItems(t *testing.T) {
	svc, _ := setupBoost(t)
	_, err := svc.CreatePurchase(context.Background(), PurchaseInput{
		UserID:   uuid.NewString(),
		ShopID:   uuid.NewString(),
		Duration: 5,
	})
	assert.Equal(t, ErrNoItems, err)
}

func TestActivate_FlipsRecordAndProducts(t *testing.T) {
	svc, db := setupBoost(t)
	shopID := uuid.New()
	p1 := seedProduct(t, db, shopID, false, false)

	out, err := svc.CreatePurchase(context.Background(), PurchaseInput{
		UserID:     uuid.NewString(),
		ShopID:     shopID.String(),
		ProductIDs: []string{p1.String()},
		Duration:   5,
	})
	require.NoError(t, err)
	require.NoError(t, svc.AttachPaymentIntent(context.Background(), out.Record.BoostID.String(), "pi_123"))

	record, err := svc.Activate(context.Background(), "pi_123")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.BoostStatusActive, record.Status)
	require.NotNil(t, record.BoostEndTime)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 5), *record.BoostEndTime, time.Minute)

	var p domain.ShopProduct
	require.NoError(t, db.First(&p, "product_id = ?", p1).Error)
	assert.True(t, p.IsBoosted)
	require.NotNil(t, p.BoostEndTime)

	// Second delivery of the same event is a no-op.
	again, err := svc.Activate(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, domain.BoostStatusActive, again.Status)
}

func TestActivate_UnknownPaymentIntentSkipped(t *testing.T) {
	svc, _ := setupBoost(t)
	record, err := svc.Activate(context.Background(), "pi_unknown")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestActive_CountdownClampedAtZero(t *testing.T) {
	svc, db := setupBoost(t)
	shopID := uuid.New()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(2 * time.Hour)
	require.NoError(t, db.Create(&domain.ShopProduct{
		ShopID: shopID, OwnerID: uuid.New(), ProductName: "Expired", Price: 1,
		IsBoosted: true, BoostEndTime: &past,
	}).Error)
	require.NoError(t, db.Create(&domain.ShopProduct{
		ShopID: shopID, OwnerID: uuid.New(), ProductName: "Running", Price: 1,
		IsBoosted: true, BoostEndTime: &future,
	}).Error)

	items, err := svc.Active(context.Background(), shopID.String())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Expired", items[0].Product.ProductName)
	assert.Equal(t, int64(0), items[0].RemainingSeconds)
	assert.Greater(t, items[1].RemainingSeconds, int64(3600))
}

func TestExpireDue_ClearsProductsAndRecords(t *testing.T) {
	svc, db := setupBoost(t)
	shopID := uuid.New()
	p1 := seedProduct(t, db, shopID, false, false)

	out, err := svc.CreatePurchase(context.Background(), PurchaseInput{
		UserID:     uuid.NewString(),
		ShopID:     shopID.String(),
		ProductIDs: []string{p1.String()},
		Duration:   5,
	})
	require.NoError(t, err)
	require.NoError(t, svc.AttachPaymentIntent(context.Background(), out.Record.BoostID.String(), "pi_exp"))
	_, err = svc.Activate(context.Background(), "pi_exp")
	require.NoError(t, err)

	// Not yet due.
	n, err := svc.ExpireDue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// Past the window.
	n, err = svc.ExpireDue(context.Background(), time.Now().AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var p domain.ShopProduct
	require.NoError(t, db.First(&p, "product_id = ?", p1).Error)
	assert.False(t, p.IsBoosted)

	var record domain.BoostRecord
	require.NoError(t, db.First(&record, "boost_id = ?", out.Record.BoostID).Error)
	assert.Equal(t, domain.BoostStatusExpired, record.Status)
}
