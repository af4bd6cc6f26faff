// Package listing owns the product listing draft: the in-memory form state
// machine, the draft codec and the Redis handoff channel between the compose
// and preview steps.
package listing

// FileBlob is an in-memory file attachment (image or video).
type FileBlob struct {
	Name        string
	ContentType string
	Data        []byte
}

// ColorEntry is one selected color: the requested stock as entered (text)
// and an optional color-specific image.
type ColorEntry struct {
	Quantity string
	Image    *FileBlob
}

// Draft is a work-in-progress listing. Price and Quantity stay text until
// submit-time validation; exactly one variant group (jewelry, pants, clothing,
// footwear) is populated at a time, enforced by the Form cascade.
type Draft struct {
	Title          string
	Description    string
	Price          string
	Quantity       string
	Condition      string
	DeliveryOption string

	Category       string
	Subcategory    string
	Subsubcategory string
	Brand          string

	JewelryType    string
	Materials      []string
	PantSizes      []string
	ClothingSizes  []string
	ClothingFit    string
	ClothingType   string
	FootwearGender string
	FootwearSizes  []string
	Gender         string

	Colors map[string]ColorEntry
	Images []FileBlob
	Video  *FileBlob
}

// clearVariants empties brand, every variant group and the color map.
// Called by the category cascade.
func (d *Draft) clearVariants() {
	d.Brand = ""
	d.JewelryType = ""
	d.Materials = nil
	d.PantSizes = nil
	d.ClothingSizes = nil
	d.ClothingFit = ""
	d.ClothingType = ""
	d.FootwearGender = ""
	d.FootwearSizes = nil
	d.Gender = ""
	d.Colors = map[string]ColorEntry{}
}
