package boost

import (
	"math"

	boostsvc "pazar-backend/internal/application/boost"
	"pazar-backend/internal/middleware"
	"pazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Handlers holds dependencies for boost endpoints.
type Handlers struct {
	Service       *boostsvc.Service
	StripeCreator StripePaymentIntentCreator
}

// StripePaymentIntentCreator abstracts Stripe PaymentIntent creation for testability.
type StripePaymentIntentCreator interface {
	Create(amountCents int64, currency string, metadata map[string]string) (*StripePaymentIntentResult, error)
}

type StripePaymentIntentResult struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// RealStripeCreator uses the Stripe Go SDK to create PaymentIntents.
type RealStripeCreator struct {
	SecretKey string
}

func (r *RealStripeCreator) Create(amountCents int64, currency string, metadata map[string]string) (*StripePaymentIntentResult, error) {
	if r.SecretKey == "" {
		return nil, fiber.NewError(501, "Stripe integration pending")
	}
	stripe.Key = r.SecretKey
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		Metadata: metadata,
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &StripePaymentIntentResult{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

var boostStatusMap = map[string]int{
	"Invalid boost duration":                        400,
	"No products selected for boost":                400,
	"One or more products cannot be boosted":        400,
	"Invalid user ID format (must be a valid UUID)": 400,
	"Invalid shop ID format (must be a valid UUID)": 400,
}

// Candidates GET /api/v1/boost/candidates — products that can be boosted.
func (h *Handlers) Candidates(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	products, err := h.Service.Candidates(c.Context(), shop.ID)
	if err != nil {
		if code, ok := boostStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Boost candidates fetched", fiber.Map{
		"products":  products,
		"durations": boostsvc.Durations,
		"basePrice": boostsvc.BasePricePerProduct,
	}, nil)
}

// Purchase POST /api/v1/boost/purchase — price the selection, write a pending
// record and create the Stripe PaymentIntent the client confirms with.
func (h *Handlers) Purchase(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	shop := middleware.GetSessionShop(c)

	var body struct {
		ProductIDs []string `json:"product_ids"`
		Duration   int      `json:"duration"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}

	purchase, err := h.Service.CreatePurchase(c.Context(), boostsvc.PurchaseInput{
		UserID:     userID,
		ShopID:     shop.ID,
		ProductIDs: body.ProductIDs,
		Duration:   body.Duration,
	})
	if err != nil {
		if code, ok := boostStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	if h.StripeCreator == nil {
		return response.Error(c, "Stripe not configured", 500, nil)
	}

	amountCents := int64(math.Round(purchase.TotalPrice * 100))
	pi, err := h.StripeCreator.Create(amountCents, "try", map[string]string{
		"boost_id": purchase.Record.BoostID.String(),
		"shop_id":  shop.ID,
	})
	if err != nil {
		code := 500
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		return response.Error(c, err.Error(), code, nil)
	}

	if err := h.Service.AttachPaymentIntent(c.Context(), purchase.Record.BoostID.String(), pi.ID); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	return response.Success(c, "Boost purchase created", fiber.Map{
		"boost_id":            purchase.Record.BoostID.String(),
		"totalRequestedItems": purchase.ItemCount,
		"pricePerItem":        purchase.PricePerItem,
		"totalPrice":          purchase.TotalPrice,
		"payment_intent_id":   pi.ID,
		"client_secret":       pi.ClientSecret,
	}, nil)
}

// Active GET /api/v1/boost/active — boosted products with their countdowns.
func (h *Handlers) Active(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	items, err := h.Service.Active(c.Context(), shop.ID)
	if err != nil {
		if code, ok := boostStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Active boosts fetched", items, nil)
}

func sessionUserID(c *fiber.Ctx) string {
	user := middleware.GetUser(c)
	m, ok := user.(map[string]interface{})
	if !ok {
		return ""
	}
	id, _ := m["user_id"].(string)
	return id
}
