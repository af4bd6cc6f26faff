package listing

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// EncodedFile is a file attachment in transport-safe form. Data is a
// data URL: "data:<mime>;base64,<payload>".
type EncodedFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int    `json:"size"`
	Data string `json:"data"`
}

// EncodedColor is a color entry with its image flattened to a data URL.
type EncodedColor struct {
	Quantity  string  `json:"quantity"`
	ImageData *string `json:"imageData,omitempty"`
}

// EncodedDraft is the Draft with every binary field replaced by its encoded
// form. This is the exact shape held by the draft handoff channel.
type EncodedDraft struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Price          string `json:"price"`
	Quantity       string `json:"quantity"`
	Condition      string `json:"condition"`
	DeliveryOption string `json:"deliveryOption"`

	Category       string `json:"category"`
	Subcategory    string `json:"subcategory"`
	Subsubcategory string `json:"subsubcategory"`
	Brand          string `json:"brand"`

	JewelryType            string   `json:"jewelryType"`
	SelectedMaterials      []string `json:"selectedMaterials"`
	SelectedPantSizes      []string `json:"selectedPantSizes"`
	SelectedClothingSizes  []string `json:"selectedClothingSizes"`
	SelectedClothingFit    string   `json:"selectedClothingFit"`
	SelectedClothingType   string   `json:"selectedClothingType"`
	SelectedFootwearGender string   `json:"selectedFootwearGender"`
	SelectedFootwearSizes  []string `json:"selectedFootwearSizes"`
	SelectedGender         string   `json:"selectedGender"`

	SelectedColors map[string]EncodedColor `json:"selectedColors"`
	Images         []EncodedFile           `json:"images"`
	Video          *EncodedFile            `json:"video,omitempty"`
}

// Encode converts a Draft to its transport-safe form. Non-binary fields pass
// through unchanged; every file becomes a self-describing data URL.
func Encode(d Draft) (EncodedDraft, error) {
	out := EncodedDraft{
		Title:                  d.Title,
		Description:            d.Description,
		Price:                  d.Price,
		Quantity:               d.Quantity,
		Condition:              d.Condition,
		DeliveryOption:         d.DeliveryOption,
		Category:               d.Category,
		Subcategory:            d.Subcategory,
		Subsubcategory:         d.Subsubcategory,
		Brand:                  d.Brand,
		JewelryType:            d.JewelryType,
		SelectedMaterials:      d.Materials,
		SelectedPantSizes:      d.PantSizes,
		SelectedClothingSizes:  d.ClothingSizes,
		SelectedClothingFit:    d.ClothingFit,
		SelectedClothingType:   d.ClothingType,
		SelectedFootwearGender: d.FootwearGender,
		SelectedFootwearSizes:  d.FootwearSizes,
		SelectedGender:         d.Gender,
		SelectedColors:         map[string]EncodedColor{},
	}

	for _, img := range d.Images {
		out.Images = append(out.Images, encodeFile(img))
	}
	if d.Video != nil {
		v := encodeFile(*d.Video)
		out.Video = &v
	}
	for name, entry := range d.Colors {
		ec := EncodedColor{Quantity: entry.Quantity}
		if entry.Image != nil {
			dataURL := encodeDataURL(*entry.Image)
			ec.ImageData = &dataURL
		}
		out.SelectedColors[name] = ec
	}
	return out, nil
}

// Decode converts an EncodedDraft back to a Draft. All-or-nothing: any
// malformed payload fails the whole decode so a corrupt channel entry is
// discarded rather than half-restored.
func Decode(e EncodedDraft) (Draft, error) {
	d := Draft{
		Title:          e.Title,
		Description:    e.Description,
		Price:          e.Price,
		Quantity:       e.Quantity,
		Condition:      e.Condition,
		DeliveryOption: e.DeliveryOption,
		Category:       e.Category,
		Subcategory:    e.Subcategory,
		Subsubcategory: e.Subsubcategory,
		Brand:          e.Brand,
		JewelryType:    e.JewelryType,
		Materials:      e.SelectedMaterials,
		PantSizes:      e.SelectedPantSizes,
		ClothingSizes:  e.SelectedClothingSizes,
		ClothingFit:    e.SelectedClothingFit,
		ClothingType:   e.SelectedClothingType,
		FootwearGender: e.SelectedFootwearGender,
		FootwearSizes:  e.SelectedFootwearSizes,
		Gender:         e.SelectedGender,
		Colors:         map[string]ColorEntry{},
	}

	for i, ef := range e.Images {
		blob, err := decodeFile(ef)
		if err != nil {
			return Draft{}, fmt.Errorf("image %d: %w", i, err)
		}
		d.Images = append(d.Images, blob)
	}
	if e.Video != nil {
		blob, err := decodeFile(*e.Video)
		if err != nil {
			return Draft{}, fmt.Errorf("video: %w", err)
		}
		d.Video = &blob
	}
	for name, ec := range e.SelectedColors {
		entry := ColorEntry{Quantity: ec.Quantity}
		if ec.ImageData != nil {
			mime, data, err := decodeDataURL(*ec.ImageData)
			if err != nil {
				return Draft{}, fmt.Errorf("color %q image: %w", name, err)
			}
			entry.Image = &FileBlob{Name: name + ".jpg", ContentType: mime, Data: data}
		}
		d.Colors[name] = entry
	}
	return d, nil
}

func encodeFile(f FileBlob) EncodedFile {
	return EncodedFile{
		Name: f.Name,
		Type: f.ContentType,
		Size: len(f.Data),
		Data: encodeDataURL(f),
	}
}

func decodeFile(e EncodedFile) (FileBlob, error) {
	mime, data, err := decodeDataURL(e.Data)
	if err != nil {
		return FileBlob{}, err
	}
	if mime == "" {
		mime = e.Type
	}
	return FileBlob{Name: e.Name, ContentType: mime, Data: data}, nil
}

func encodeDataURL(f FileBlob) string {
	return "data:" + f.ContentType + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// decodeDataURL splits "data:<mime>;base64,<payload>" into mime and bytes.
func decodeDataURL(s string) (string, []byte, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return "", nil, errors.New("not a data URL")
	}
	header := parts[0]
	if !strings.HasPrefix(header, "data:") || !strings.Contains(header, ";base64") {
		return "", nil, errors.New("not a base64 data URL")
	}
	mime := strings.TrimPrefix(header, "data:")
	mime = strings.SplitN(mime, ";", 2)[0]
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, err
	}
	return mime, data, nil
}
