package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	boostsvc "pazar-backend/internal/application/boost"
	"pazar-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const testSecret = "whsec_test_secret_123"

func setupWebhookTest(t *testing.T) (*WebhookHandler, *gorm.DB, *fiber.App) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.BoostRecord{}, &domain.ShopProduct{}))
	wh := &WebhookHandler{
		Boost:         &boostsvc.Service{DB: db},
		WebhookSecret: testSecret,
	}
	app := fiber.New()
	app.Post("/webhook", wh.HandleWebhook)
	return wh, db, app
}

func signPayload(payload []byte, secret string) string {
	ts := fmt.Sprintf("%d", time.Now().Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "." + string(payload)))
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestWebhook_EmptyBody(t *testing.T) {
	_, _, app := setupWebhookTest(t)

	req := httptest.NewRequest("POST", "/webhook", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestWebhook_MissingSignature(t *testing.T) {
	_, _, app := setupWebhookTest(t)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestWebhook_InvalidSignature(t *testing.T) {
	_, _, app := setupWebhookTest(t)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=123,v1=deadbeef")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestWebhook_StaleTimestampRejected(t *testing.T) {
	_, _, app := setupWebhookTest(t)

	payload := []byte(`{}`)
	ts := fmt.Sprintf("%d", time.Now().Add(-10*time.Minute).Unix())
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(ts + "." + string(payload)))
	sig := fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", sig)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestWebhook_PaymentSucceededActivatesBoost(t *testing.T) {
	_, db, app := setupWebhookTest(t)

	productID := uuid.New()
	shopID := uuid.New()
	require.NoError(t, db.Create(&domain.ShopProduct{
		ProductID: productID, ShopID: shopID,
		ProductName: "Lamp", Price: 150.5, Currency: "TL", Quantity: 2,
	}).Error)
	require.NoError(t, db.Create(&domain.BoostRecord{
		BoostID: uuid.New(), UserID: uuid.New(), ShopID: shopID,
		ProductIDs:            datatypes.NewJSONSlice([]string{productID.String()}),
		Duration:              10,
		PricePerItem:          1500,
		TotalPrice:            1500,
		Status:                domain.BoostStatusPending,
		StripePaymentIntentID: "pi_test_123",
	}).Error)

	payload := []byte(`{
		"id": "evt_1",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_test_123", "amount_received": 150000, "currency": "try", "status": "succeeded"}}
	}`)
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signPayload(payload, testSecret))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var record domain.BoostRecord
	require.NoError(t, db.First(&record, "stripe_payment_intent_id = ?", "pi_test_123").Error)
	assert.Equal(t, domain.BoostStatusActive, record.Status)

	var product domain.ShopProduct
	require.NoError(t, db.First(&product, "product_id = ?", productID).Error)
	assert.True(t, product.IsBoosted)
}

func TestWebhook_UnknownPaymentIntentIsAcknowledged(t *testing.T) {
	_, _, app := setupWebhookTest(t)

	payload := []byte(`{
		"id": "evt_2",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_not_ours", "status": "succeeded"}}
	}`)
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signPayload(payload, testSecret))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode, "non-boost payments are acknowledged, not retried")
}

func TestWebhook_OtherEventTypesIgnored(t *testing.T) {
	_, _, app := setupWebhookTest(t)

	payload := []byte(`{"id": "evt_3", "type": "charge.refunded", "data": {"object": {}}}`)
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signPayload(payload, testSecret))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
