// Package catalog holds the marketplace taxonomy: category tree, brand lists,
// variant size charts and color options used by the listing flow.
package catalog

// DefaultCurrency is the marketplace display currency.
const DefaultCurrency = "TL"

// Conditions a product can be listed in.
var Conditions = []string{"Brand New", "Used", "Refurbished"}

// DeliveryOptions supported at checkout.
var DeliveryOptions = []string{"Fast Delivery", "Self Delivery"}

// Categories is the top level of the category tree.
var Categories = []string{"Women", "Men", "Bags", "Home"}

var subcategories = map[string][]string{
	"Women": {"Clothing", "Shoes", "Accessories"},
	"Men":   {"Clothing", "Shoes", "Accessories"},
	"Bags":  {"Handbags", "Backpacks", "Wallets"},
	"Home":  {"Lighting", "Furniture", "Kitchen", "Decor"},
}

var subSubcategories = map[string]map[string][]string{
	"Women": {
		"Clothing":    {"Dresses", "Tops", "Pants", "Jeans", "Leggings", "Outerwear"},
		"Shoes":       {"Women's Shoes", "Sports Shoes"},
		"Accessories": {"Jewelry", "Belts", "Hats", "Scarves"},
	},
	"Men": {
		"Clothing":    {"Shirts", "T-Shirts", "Pants", "Jeans", "Outerwear"},
		"Shoes":       {"Men's Shoes", "Sports Shoes"},
		"Accessories": {"Jewelry", "Watches", "Belts"},
	},
	"Bags": {
		"Handbags":  {"Shoulder Bags", "Crossbody Bags", "Tote Bags"},
		"Backpacks": {"Casual Backpacks", "Laptop Backpacks"},
		"Wallets":   {"Card Holders", "Long Wallets"},
	},
	"Home": {
		"Lighting":  {"Lamps", "Ceiling Lights", "Wall Lights"},
		"Furniture": {"Chairs", "Tables", "Shelves"},
		"Kitchen":   {"Cookware", "Tableware", "Storage"},
		"Decor":     {"Vases", "Frames", "Candles"},
	},
}

var brands = map[string]map[string][]string{
	"Women": {
		"Clothing":    {"Zara", "Mango", "H&M", "Koton", "LC Waikiki", "Mavi", "DeFacto"},
		"Shoes":       {"Nike", "Adidas", "Puma", "Skechers", "FLO", "Hotiç"},
		"Accessories": {"Accessorize", "Parfois", "Koton"},
	},
	"Men": {
		"Clothing":    {"Zara", "H&M", "Koton", "LC Waikiki", "Mavi", "DeFacto", "Kiğılı"},
		"Shoes":       {"Nike", "Adidas", "Puma", "New Balance", "Skechers", "FLO"},
		"Accessories": {"Daniel Klein", "Fossil", "Derimod"},
	},
	"Bags": {
		"Handbags":  {"Derimod", "Matmazel", "Housebags", "Guess"},
		"Backpacks": {"Samsonite", "Eastpak", "Herschel", "Jansport"},
		"Wallets":   {"Derimod", "Tergan", "Cengiz Pakel"},
	},
	"Home": {
		"Lighting":  {"Philips", "Osram", "Safir Light", "Avonni"},
		"Furniture": {"IKEA", "Vivense", "Bellona", "Doğtaş"},
		"Kitchen":   {"Karaca", "Paşabahçe", "Korkmaz", "Emsan"},
		"Decor":     {"Madame Coco", "English Home", "Paşabahçe"},
	},
}

// Jewelry flow (Women/Men accessories).
var (
	JewelryTypes     = []string{"Necklace", "Ring", "Bracelet", "Earrings", "Anklet"}
	JewelryMaterials = []string{"Gold", "Silver", "Rose Gold", "Stainless Steel", "Leather", "Beads"}
)

var pantSizes = map[string][]string{
	"Women": {"34", "36", "38", "40", "42", "44"},
	"Men":   {"29", "30", "31", "32", "33", "34", "36", "38"},
}

// Clothing flow.
var (
	ClothingSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}
	ClothingFits  = []string{"Slim", "Regular", "Oversized", "Relaxed"}
	ClothingTypes = []string{"Casual", "Formal", "Sport"}
)

// Footwear flow.
var (
	FootwearGenders = []string{"Women", "Men", "Kids"}
	footwearSizes   = map[string][]string{
		"Women": {"35", "36", "37", "38", "39", "40", "41"},
		"Men":   {"39", "40", "41", "42", "43", "44", "45", "46"},
		"Kids":  {"24", "26", "28", "30", "32", "34"},
	}
)

// BagGenders is the target-gender choice shown for the Bags category.
var BagGenders = []string{"Women", "Men", "Unisex"}

// ColorOption is a selectable product color with its swatch hex.
type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

var ColorOptions = []ColorOption{
	{"Black", "#000000"}, {"White", "#FFFFFF"}, {"Red", "#EF4444"},
	{"Blue", "#3B82F6"}, {"Green", "#22C55E"}, {"Yellow", "#EAB308"},
	{"Orange", "#F97316"}, {"Purple", "#8B5CF6"}, {"Pink", "#EC4899"},
	{"Brown", "#92400E"}, {"Gray", "#6B7280"}, {"Beige", "#D6CDB8"},
	{"Navy", "#1E3A8A"},
}

// Regions selectable in the seller info form.
var Regions = []string{
	"İstanbul", "Ankara", "İzmir", "Bursa", "Antalya", "Adana", "Konya",
	"Gaziantep", "Kayseri", "Mersin", "Eskişehir", "Trabzon", "Samsun",
	"Denizli", "Diyarbakır",
}

var pantStyleSubsubs = []string{"Pants", "Jeans", "Leggings"}

var footwearSubsubs = []string{
	"Footwear", "Women's Shoes", "Men's Shoes", "Kids' Shoes", "Sports Shoes",
}

// Subcategories returns the subcategory list for a category.
func Subcategories(category string) []string {
	return subcategories[category]
}

// SubSubcategories returns the third level for a category + subcategory pair.
func SubSubcategories(category, subcategory string) []string {
	if m, ok := subSubcategories[category]; ok {
		return m[subcategory]
	}
	return nil
}

// Brands returns the brand list for a category + subcategory pair.
func Brands(category, subcategory string) []string {
	if m, ok := brands[category]; ok {
		return m[subcategory]
	}
	return nil
}

// PantSizes returns the size chart for the Women/Men pant flow.
func PantSizes(category string) []string {
	return pantSizes[category]
}

// FootwearSizes returns the size chart for a footwear gender.
func FootwearSizes(gender string) []string {
	return footwearSizes[gender]
}

// IsJewelry reports whether the selection enters the jewelry flow
// (type + materials instead of a brand).
func IsJewelry(category, subsubcategory string) bool {
	return subsubcategory == "Jewelry" && (category == "Women" || category == "Men")
}

// IsPantStyle reports whether the selection enters the pant size flow.
func IsPantStyle(category, subsubcategory string) bool {
	if category != "Women" && category != "Men" {
		return false
	}
	return contains(pantStyleSubsubs, subsubcategory)
}

// IsClothing reports whether the selection enters the clothing size/fit/type flow.
func IsClothing(category, subcategory, subsubcategory string) bool {
	if category != "Women" && category != "Men" {
		return false
	}
	return subcategory == "Clothing" && subsubcategory != "Pants"
}

// IsFootwear reports whether the selection enters the footwear gender/size flow.
func IsFootwear(subsubcategory string) bool {
	return contains(footwearSubsubs, subsubcategory)
}

// ValidCondition reports whether the condition is a known enum value.
func ValidCondition(condition string) bool {
	return contains(Conditions, condition)
}

// ValidDeliveryOption reports whether the delivery option is a known enum value.
func ValidDeliveryOption(option string) bool {
	return contains(DeliveryOptions, option)
}

// ValidRegion reports whether the region is selectable.
func ValidRegion(region string) bool {
	return contains(Regions, region)
}

// IsColor reports whether the name is a selectable color.
func IsColor(name string) bool {
	for _, c := range ColorOptions {
		if c.Name == name {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
