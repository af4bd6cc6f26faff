package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	listsvc "pazar-backend/internal/application/listing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupListing(t *testing.T) (*Handlers, *listsvc.RedisDraftChannel, *fiber.App) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	ch := &listsvc.RedisDraftChannel{RDB: rdb}
	h := &Handlers{Channel: ch}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": "550e8400-e29b-41d4-a716-446655440000",
		})
		return c.Next()
	})
	app.Post("/draft", h.Submit)
	app.Get("/draft", h.Restore)
	app.Delete("/draft", h.Discard)
	return h, ch, app
}

func validEncoded() listsvc.EncodedDraft {
	return listsvc.EncodedDraft{
		Title:          "Ceramic Table Lamp",
		Description:    "Hand painted",
		Price:          "150.5",
		Quantity:       "2",
		Condition:      "Brand New",
		DeliveryOption: "Fast Delivery",
		Category:       "Home",
		Subcategory:    "Lighting",
		Subsubcategory: "Lamps",
		Images: []listsvc.EncodedFile{
			{Name: "front.jpg", Type: "image/jpeg", Size: 2, Data: "data:image/jpeg;base64,aGk="},
		},
	}
}

func TestSubmit_NoSession(t *testing.T) {
	h := &Handlers{}
	app := fiber.New()
	app.Post("/draft", h.Submit)

	req := httptest.NewRequest("POST", "/draft", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubmit_ValidDraftLandsInChannel(t *testing.T) {
	_, ch, app := setupListing(t)

	body, _ := json.Marshal(validEncoded())
	req := httptest.NewRequest("POST", "/draft", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].(map[string]interface{})
	assert.Equal(t, "/listing/preview", data["next"])

	got, err := ch.Read(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)
	assert.Equal(t, "Ceramic Table Lamp", got.Title)
}

func TestSubmit_ValidationMessagesInOrder(t *testing.T) {
	_, _, app := setupListing(t)

	cases := []struct {
		name   string
		mutate func(*listsvc.EncodedDraft)
		want   string
	}{
		{"missing title", func(e *listsvc.EncodedDraft) { e.Title = "" }, "Please enter a product title"},
		{"bad price", func(e *listsvc.EncodedDraft) { e.Price = "-5" }, "Please enter a valid price"},
		{"no images", func(e *listsvc.EncodedDraft) { e.Images = nil }, "Please upload at least one product image"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := validEncoded()
			tc.mutate(&enc)
			body, _ := json.Marshal(enc)
			req := httptest.NewRequest("POST", "/draft", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			b, _ := io.ReadAll(resp.Body)
			var out map[string]interface{}
			require.NoError(t, json.Unmarshal(b, &out))
			errObj, _ := out["error"].(map[string]interface{})
			require.NotNil(t, errObj)
			assert.Equal(t, tc.want, errObj["message"])
		})
	}
}

func TestSubmit_CorruptFilePayload(t *testing.T) {
	_, _, app := setupListing(t)

	enc := validEncoded()
	enc.Images[0].Data = "not-a-data-url"
	body, _ := json.Marshal(enc)
	req := httptest.NewRequest("POST", "/draft", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRestore_NoDraft(t *testing.T) {
	_, _, app := setupListing(t)

	req := httptest.NewRequest("GET", "/draft", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRestore_ReturnsStoredDraft(t *testing.T) {
	_, ch, app := setupListing(t)
	require.NoError(t, ch.Write(context.Background(), "550e8400-e29b-41d4-a716-446655440000", validEncoded()))

	req := httptest.NewRequest("GET", "/draft", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].(map[string]interface{})
	assert.Equal(t, "Ceramic Table Lamp", data["title"])
}

func TestDiscard_ClearsDraft(t *testing.T) {
	_, ch, app := setupListing(t)
	ctx := context.Background()
	require.NoError(t, ch.Write(ctx, "550e8400-e29b-41d4-a716-446655440000", validEncoded()))

	req := httptest.NewRequest("DELETE", "/draft", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err = ch.Read(ctx, "550e8400-e29b-41d4-a716-446655440000")
	assert.Equal(t, listsvc.ErrNoDraft, err)
}
