package shops

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

func setupShops(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Shop{}, &domain.SellerInfo{}, &domain.ShopProduct{}, &domain.BoostRecord{}))
	return &Service{DB: db}, db
}

func TestListForUser_RolesResolved(t *testing.T) {
	svc, db := setupShops(t)
	owner := uuid.New()
	editor := uuid.New()

	require.NoError(t, db.Create(&domain.Shop{
		ShopID: uuid.New(), Name: "Owned", OwnerID: owner,
	}).Error)
	require.NoError(t, db.Create(&domain.Shop{
		ShopID: uuid.New(), Name: "Edited", OwnerID: uuid.New(),
		Editors: datatypes.NewJSONSlice([]string{editor.String()}),
	}).Error)
	require.NoError(t, db.Create(&domain.Shop{
		ShopID: uuid.New(), Name: "Unrelated", OwnerID: uuid.New(),
	}).Error)

	out, err := svc.ListForUser(context.Background(), owner.String())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Owned", out[0].Name)
	assert.Equal(t, RoleOwner, out[0].Role)

	out, err = svc.ListForUser(context.Background(), editor.String())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Edited", out[0].Name)
	assert.Equal(t, RoleEditor, out[0].Role)
}

func TestListForUser_OwnerRoleWinsOverWeaker(t *testing.T) {
	svc, db := setupShops(t)
	user := uuid.New()
	require.NoError(t, db.Create(&domain.Shop{
		ShopID: uuid.New(), Name: "Both", OwnerID: user,
		Viewers: datatypes.NewJSONSlice([]string{user.String()}),
	}).Error)

	out, err := svc.ListForUser(context.Background(), user.String())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, RoleOwner, out[0].Role)
}

func TestSelect_MembershipRequired(t *testing.T) {
	svc, db := setupShops(t)
	shopID := uuid.New()
	require.NoError(t, db.Create(&domain.Shop{
		ShopID: shopID, Name: "Shop", OwnerID: uuid.New(),
		CoOwners: datatypes.NewJSONSlice([]string{}),
	}).Error)

	_, err := svc.Select(context.Background(), uuid.NewString(), shopID.String())
	assert.Equal(t, ErrNotMember, err)

	_, err = svc.Select(context.Background(), uuid.NewString(), uuid.NewString())
	assert.Equal(t, ErrShopNotFound, err)
}

func TestSelect_ReturnsRole(t *testing.T) {
	svc, db := setupShops(t)
	user := uuid.New()
	shopID := uuid.New()
	require.NoError(t, db.Create(&domain.Shop{
		ShopID: shopID, Name: "Shop", OwnerID: uuid.New(),
		CoOwners: datatypes.NewJSONSlice([]string{user.String()}),
	}).Error)

	out, err := svc.Select(context.Background(), user.String(), shopID.String())
	require.NoError(t, err)
	assert.Equal(t, RoleCoOwner, out.Role)
	assert.Equal(t, "Shop", out.Name)
}

func TestCollectMetrics_SumsShopCountersOnly(t *testing.T) {
	svc, db := setupShops(t)
	user := uuid.New()
	shopID := uuid.New()
	otherShop := uuid.New()

	require.NoError(t, db.Create(&domain.Shop{
		ShopID: shopID, Name: "Shop", OwnerID: user, ClickCount: 42,
	}).Error)
	require.NoError(t, db.Create(&domain.ShopProduct{
		ShopID: shopID, OwnerID: user, ProductName: "A", Price: 1,
		ClickCount: 10, PurchaseCount: 2, CartCount: 3, FavoritesCount: 4,
	}).Error)
	require.NoError(t, db.Create(&domain.ShopProduct{
		ShopID: shopID, OwnerID: user, ProductName: "B", Price: 1,
		ClickCount: 5, PurchaseCount: 1, CartCount: 1, FavoritesCount: 1,
	}).Error)
	// Another shop's counters must not leak in.
	require.NoError(t, db.Create(&domain.ShopProduct{
		ShopID: otherShop, OwnerID: uuid.New(), ProductName: "C", Price: 1,
		ClickCount: 100,
	}).Error)
	require.NoError(t, db.Create(&domain.BoostRecord{
		UserID: user, ShopID: shopID, Duration: 5, PricePerItem: 750, TotalPrice: 750,
		ProductIDs: datatypes.NewJSONSlice([]string{uuid.NewString()}),
		Status:     domain.BoostStatusPending,
	}).Error)

	m, err := svc.CollectMetrics(context.Background(), user.String(), shopID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(15), m.ProductViews)
	assert.Equal(t, int64(3), m.SoldProducts)
	assert.Equal(t, int64(4), m.Carts)
	assert.Equal(t, int64(5), m.Favorites)
	assert.Equal(t, 42, m.ShopClicks)
	assert.Equal(t, int64(1), m.BoostPurchases)
}

func TestSellerInfo_PutGetDelete(t *testing.T) {
	svc, db := setupShops(t)
	shopID := uuid.New()
	require.NoError(t, db.Create(&domain.Shop{ShopID: shopID, Name: "Shop", OwnerID: uuid.New()}).Error)

	// Absent is nil, not an error; the client gates the listing flow on it.
	info, err := svc.GetSellerInfo(context.Background(), shopID.String())
	require.NoError(t, err)
	assert.Nil(t, info)

	in := SellerInfoInput{
		Phone: "0532 123 45 67", Region: "İstanbul", Address: "Kadikoy",
		IbanOwnerName: "Ayse", IbanOwnerSurname: "Yilmaz",
		Iban: "tr33 0006 1005 1978 6457 8413 26",
	}
	saved, err := svc.PutSellerInfo(context.Background(), shopID.String(), in)
	require.NoError(t, err)
	assert.Equal(t, "TR330006100519786457841326", saved.Iban, "IBAN stored normalized")

	info, err = svc.GetSellerInfo(context.Background(), shopID.String())
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "İstanbul", info.Region)

	// Upsert keeps a single row.
	in.Address = "Moda"
	_, err = svc.PutSellerInfo(context.Background(), shopID.String(), in)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&domain.SellerInfo{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.DeleteSellerInfo(context.Background(), shopID.String()))
	info, err = svc.GetSellerInfo(context.Background(), shopID.String())
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestPutSellerInfo_Validation(t *testing.T) {
	svc, _ := setupShops(t)
	shopID := uuid.NewString()
	valid := SellerInfoInput{
		Phone: "5321234567", Region: "İstanbul", Address: "Kadikoy",
		IbanOwnerName: "Ayse", IbanOwnerSurname: "Yilmaz",
		Iban: "TR330006100519786457841326",
	}

	cases := []struct {
		name   string
		mutate func(*SellerInfoInput)
		want   string
	}{
		{"bad phone", func(in *SellerInfoInput) { in.Phone = "123" }, "Valid phone number is required"},
		{"bad region", func(in *SellerInfoInput) { in.Region = "Atlantis" }, "Please select a region"},
		{"missing address", func(in *SellerInfoInput) { in.Address = " " }, "Address is required"},
		{"missing owner name", func(in *SellerInfoInput) { in.IbanOwnerName = "" }, "IBAN owner name and surname are required"},
		{"bad iban", func(in *SellerInfoInput) { in.Iban = "DE00123" }, "Valid IBAN is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := svc.PutSellerInfo(context.Background(), shopID, in)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}
