// Package preview implements the preview/submit step of the listing flow:
// rehydrating the draft from the handoff channel, uploading media and writing
// the moderation record.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"pazar-backend/internal/application/listing"
	"pazar-backend/internal/application/uploads"
	"pazar-backend/internal/catalog"
	"pazar-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotSignedIn aborts a confirm before any upload happens.
var ErrNotSignedIn = errors.New("You must be signed in to list a product")

// Actor is the signed-in user performing the preview/confirm.
type Actor struct {
	UserID      string
	DisplayName string
}

// ShopRef is the actor's selected shop; Name is the session-cached copy used
// when the shop record cannot be read.
type ShopRef struct {
	ID   string
	Name string
}

// Service runs the preview and confirm steps.
type Service struct {
	DB      *gorm.DB
	Channel listing.DraftChannel
	Blobs   uploads.BlobStore
}

// ColorView is a color entry as shown on the preview page.
type ColorView struct {
	Quantity string `json:"quantity"`
	HasImage bool   `json:"hasImage"`
}

// View is the decoded draft summary for the preview page. Binary payloads are
// never echoed back; only names and counts.
type View struct {
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Price          string               `json:"price"`
	Quantity       string               `json:"quantity"`
	Condition      string               `json:"condition"`
	DeliveryOption string               `json:"deliveryOption"`
	Category       string               `json:"category"`
	Subcategory    string               `json:"subcategory"`
	Subsubcategory string               `json:"subsubcategory"`
	Brand          string               `json:"brand"`
	JewelryType    string               `json:"jewelryType,omitempty"`
	Materials      []string             `json:"materials,omitempty"`
	PantSizes      []string             `json:"pantSizes,omitempty"`
	ClothingSizes  []string             `json:"clothingSizes,omitempty"`
	ClothingFit    string               `json:"clothingFit,omitempty"`
	ClothingType   string               `json:"clothingType,omitempty"`
	FootwearGender string               `json:"footwearGender,omitempty"`
	FootwearSizes  []string             `json:"footwearSizes,omitempty"`
	Gender         string               `json:"gender,omitempty"`
	Colors         map[string]ColorView `json:"colors"`
	ImageNames     []string             `json:"imageNames"`
	HasVideo       bool                 `json:"hasVideo"`
}

// Load reads and decodes the channel draft for the preview page.
// Absence and corruption both come back as ErrNoDraft: the caller routes the
// user to the compose step, never an error dialog. A corrupt entry is cleared.
func (s *Service) Load(ctx context.Context, userID string) (*View, error) {
	enc, err := s.Channel.Read(ctx, userID)
	if err != nil {
		if errors.Is(err, listing.ErrNoDraft) {
			return nil, listing.ErrNoDraft
		}
		// Unreadable blob: discard so the next visit starts clean.
		_ = s.Channel.Clear(ctx, userID)
		return nil, listing.ErrNoDraft
	}
	draft, err := listing.Decode(enc)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Discarding corrupt draft")
		_ = s.Channel.Clear(ctx, userID)
		return nil, listing.ErrNoDraft
	}
	return viewOf(draft), nil
}

func viewOf(d listing.Draft) *View {
	v := &View{
		Title:          d.Title,
		Description:    d.Description,
		Price:          d.Price,
		Quantity:       d.Quantity,
		Condition:      d.Condition,
		DeliveryOption: d.DeliveryOption,
		Category:       d.Category,
		Subcategory:    d.Subcategory,
		Subsubcategory: d.Subsubcategory,
		Brand:          d.Brand,
		JewelryType:    d.JewelryType,
		Materials:      d.Materials,
		PantSizes:      d.PantSizes,
		ClothingSizes:  d.ClothingSizes,
		ClothingFit:    d.ClothingFit,
		ClothingType:   d.ClothingType,
		FootwearGender: d.FootwearGender,
		FootwearSizes:  d.FootwearSizes,
		Gender:         d.Gender,
		Colors:         map[string]ColorView{},
		HasVideo:       d.Video != nil,
	}
	for _, img := range d.Images {
		v.ImageNames = append(v.ImageNames, img.Name)
	}
	for name, entry := range d.Colors {
		v.Colors[name] = ColorView{Quantity: entry.Quantity, HasImage: entry.Image != nil}
	}
	return v
}

// Confirm turns the channel draft into a durable ProductApplication:
// upload media, resolve the seller name, build the search index, re-validate,
// write the record and clear the channel. Failures before the write leave the
// channel intact so the user can retry from the preview page.
func (s *Service) Confirm(ctx context.Context, actor Actor, shop *ShopRef) (*domain.ProductApplication, error) {
	actorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, ErrNotSignedIn
	}
	enc, err := s.Channel.Read(ctx, actor.UserID)
	if err != nil {
		return nil, listing.ErrNoDraft
	}
	draft, err := listing.Decode(enc)
	if err != nil {
		_ = s.Channel.Clear(ctx, actor.UserID)
		return nil, listing.ErrNoDraft
	}

	imageURLs, videoURL, colorImages, err := s.uploadMedia(ctx, actor.UserID, draft)
	if err != nil {
		return nil, fmt.Errorf("media upload failed: %w", err)
	}

	// Only colors whose quantity parses to a positive integer make the
	// quantity map; their images are kept regardless.
	colorQuantities := map[string]int{}
	for name, entry := range draft.Colors {
		if q, err := strconv.Atoi(strings.TrimSpace(entry.Quantity)); err == nil && q > 0 {
			colorQuantities[name] = q
		}
	}

	sellerName, sellerInfo := s.resolveSeller(actor, shop)

	price, _ := strconv.ParseFloat(strings.TrimSpace(draft.Price), 64)
	quantity, _ := strconv.Atoi(strings.TrimSpace(draft.Quantity))

	app := &domain.ProductApplication{
		UserID:           actorID,
		OwnerID:          actorID,
		SellerName:       sellerName,
		IlanNo:           fmt.Sprintf("%d", time.Now().UnixMilli()),
		ProductName:      strings.TrimSpace(draft.Title),
		Description:      strings.TrimSpace(draft.Description),
		Price:            price,
		Currency:         catalog.DefaultCurrency,
		Condition:        draft.Condition,
		BrandModel:       draft.Brand,
		DeliveryOption:   draft.DeliveryOption,
		Category:         draft.Category,
		Subcategory:      draft.Subcategory,
		Subsubcategory:   draft.Subsubcategory,
		Quantity:         quantity,
		ColorQuantities:  datatypes.NewJSONType(colorQuantities),
		ImageUrls:        datatypes.NewJSONSlice(imageURLs),
		VideoURL:         videoURL,
		ColorImages:      datatypes.NewJSONType(colorImages),
		JewelryType:      draft.JewelryType,
		JewelryMaterials: datatypes.NewJSONSlice(ensureStrings(draft.Materials)),
		ClothingSizes:    datatypes.NewJSONSlice(ensureStrings(draft.ClothingSizes)),
		ClothingFit:      draft.ClothingFit,
		ClothingType:     draft.ClothingType,
		PantSizes:        datatypes.NewJSONSlice(ensureStrings(draft.PantSizes)),
		FootwearGender:   draft.FootwearGender,
		FootwearSizes:    datatypes.NewJSONSlice(ensureStrings(draft.FootwearSizes)),
		Gender:           draft.Gender,
		NeedsSync:        true,
		SearchIndex:      datatypes.NewJSONSlice(buildSearchIndex(draft)),
	}
	if shop != nil {
		id, err := uuid.Parse(shop.ID)
		if err == nil {
			app.ShopID = &id
		}
	}
	if sellerInfo != nil {
		app.Phone = sellerInfo.Phone
		app.Region = sellerInfo.Region
		app.Address = sellerInfo.Address
		app.IbanOwnerName = sellerInfo.IbanOwnerName
		app.IbanOwnerSurname = sellerInfo.IbanOwnerSurname
		app.Iban = sellerInfo.Iban
	}

	if err := validateRecord(app); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}

	if err := s.Channel.Clear(ctx, actor.UserID); err != nil {
		log.Warn().Err(err).Str("user_id", actor.UserID).Msg("Draft channel clear failed after submit")
	}
	return app, nil
}

// uploadMedia fans out every attachment concurrently and collects the public
// URLs in their original order. First error wins; the whole confirm fails.
func (s *Service) uploadMedia(ctx context.Context, userID string, draft listing.Draft) ([]string, *string, map[string][]string, error) {
	ts := time.Now().UnixMilli()
	imageURLs := make([]string, len(draft.Images))
	colorImages := map[string][]string{}
	var videoURL *string

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		uploadErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if uploadErr == nil {
			uploadErr = err
		}
	}

	for i, img := range draft.Images {
		wg.Add(1)
		go func(i int, img listing.FileBlob) {
			defer wg.Done()
			path := fmt.Sprintf("products/%s/default_images/%d_%s", userID, ts, img.Name)
			url, err := s.Blobs.Upload(ctx, path, img.ContentType, img.Data)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			imageURLs[i] = url
			mu.Unlock()
		}(i, img)
	}

	if draft.Video != nil {
		wg.Add(1)
		go func(v listing.FileBlob) {
			defer wg.Done()
			path := fmt.Sprintf("products/%s/preview_videos/%d_%s", userID, ts, v.Name)
			url, err := s.Blobs.Upload(ctx, path, v.ContentType, v.Data)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			videoURL = &url
			mu.Unlock()
		}(*draft.Video)
	}

	for name, entry := range draft.Colors {
		if entry.Image == nil {
			continue
		}
		wg.Add(1)
		go func(name string, img listing.FileBlob) {
			defer wg.Done()
			path := fmt.Sprintf("products/%s/color_images/%d_%s", userID, ts, img.Name)
			url, err := s.Blobs.Upload(ctx, path, img.ContentType, img.Data)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			colorImages[name] = []string{url}
			mu.Unlock()
		}(name, *entry.Image)
	}

	wg.Wait()
	if uploadErr != nil {
		return nil, nil, nil, uploadErr
	}
	return imageURLs, videoURL, colorImages, nil
}

// resolveSeller resolves the display name shown on the listing, and the
// seller info snapshot when a shop is selected. A fresh shop record wins over
// the session-cached name; with no shop the user profile is consulted.
func (s *Service) resolveSeller(actor Actor, shop *ShopRef) (string, *domain.SellerInfo) {
	if shop != nil {
		name := ""
		var rec domain.Shop
		if err := s.DB.First(&rec, "shop_id = ?", shop.ID).Error; err == nil {
			name = rec.Name
		}
		if name == "" {
			name = shop.Name
		}
		if name == "" {
			name = "Unknown Shop"
		}
		var info domain.SellerInfo
		if err := s.DB.First(&info, "shop_id = ?", shop.ID).Error; err == nil {
			return name, &info
		}
		return name, nil
	}

	var user domain.User
	if err := s.DB.First(&user, "user_id = ?", actor.UserID).Error; err == nil && user.DisplayName != "" {
		return user.DisplayName, nil
	}
	if actor.DisplayName != "" {
		return actor.DisplayName, nil
	}
	return "Unknown Seller", nil
}

// validateRecord re-runs the submit checks against the assembled record.
// The channel payload is client-supplied, so the compose-side validation is
// advisory only; this pass is the authoritative one.
func validateRecord(app *domain.ProductApplication) error {
	if app.ProductName == "" {
		return errors.New("Product name is required")
	}
	if app.Description == "" {
		return errors.New("Product description is required")
	}
	if app.Price <= 0 {
		return errors.New("Valid price is required")
	}
	if app.Quantity <= 0 {
		return errors.New("Valid quantity is required")
	}
	if app.Condition == "" {
		return errors.New("Product condition is required")
	}
	if app.DeliveryOption == "" {
		return errors.New("Delivery option is required")
	}
	if app.Category == "" || app.Subcategory == "" || app.Subsubcategory == "" {
		return errors.New("Category selection is incomplete")
	}
	if len(app.ImageUrls) == 0 {
		return errors.New("At least one product image is required")
	}
	return nil
}

// buildSearchIndex lowercases title, description, category chain, brand,
// materials and color names, drops empties and dedupes first-seen.
func buildSearchIndex(d listing.Draft) []string {
	terms := []string{d.Title, d.Description, d.Category, d.Subcategory, d.Subsubcategory, d.Brand}
	terms = append(terms, d.Materials...)
	for name := range d.Colors {
		terms = append(terms, name)
	}

	seen := map[string]bool{}
	out := []string{}
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ensureStrings normalizes a possibly-nil slice to an empty one so JSON
// columns store [] rather than null.
func ensureStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
