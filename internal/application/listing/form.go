package listing

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Form states.
type State int

const (
	StateEmpty State = iota
	StateComposing
	StateRestoring
	StateSubmitted
)

// restoreGrace is how long after a restore the category cascade stays
// suppressed, so restored category values do not wipe their own draft.
const restoreGrace = 100 * time.Millisecond

// Form is the mutable listing draft with the category cascade rules.
// Safe for concurrent use.
type Form struct {
	mu    sync.Mutex
	state State
	draft Draft
	timer *time.Timer
}

// NewForm returns an empty form. Quantity starts at "1" like the compose page.
func NewForm() *Form {
	return &Form{
		state: StateEmpty,
		draft: Draft{Quantity: "1", Colors: map[string]ColorEntry{}},
	}
}

// State returns the current form state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form) compose(mutate func(*Draft)) Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateEmpty {
		f.state = StateComposing
	}
	mutate(&f.draft)
	return f.draft
}

// SetTitle through SetVideo mutate one field with no validation; validation
// happens once, at Submit.

func (f *Form) SetTitle(v string) Draft       { return f.compose(func(d *Draft) { d.Title = v }) }
func (f *Form) SetDescription(v string) Draft { return f.compose(func(d *Draft) { d.Description = v }) }
func (f *Form) SetPrice(v string) Draft       { return f.compose(func(d *Draft) { d.Price = v }) }
func (f *Form) SetQuantity(v string) Draft    { return f.compose(func(d *Draft) { d.Quantity = v }) }
func (f *Form) SetCondition(v string) Draft   { return f.compose(func(d *Draft) { d.Condition = v }) }
func (f *Form) SetDeliveryOption(v string) Draft {
	return f.compose(func(d *Draft) { d.DeliveryOption = v })
}
func (f *Form) SetBrand(v string) Draft       { return f.compose(func(d *Draft) { d.Brand = v }) }
func (f *Form) SetJewelryType(v string) Draft { return f.compose(func(d *Draft) { d.JewelryType = v }) }
func (f *Form) SetMaterials(v []string) Draft { return f.compose(func(d *Draft) { d.Materials = v }) }
func (f *Form) SetPantSizes(v []string) Draft { return f.compose(func(d *Draft) { d.PantSizes = v }) }
func (f *Form) SetClothingSizes(v []string) Draft {
	return f.compose(func(d *Draft) { d.ClothingSizes = v })
}
func (f *Form) SetClothingFit(v string) Draft {
	return f.compose(func(d *Draft) { d.ClothingFit = v })
}
func (f *Form) SetClothingType(v string) Draft {
	return f.compose(func(d *Draft) { d.ClothingType = v })
}
func (f *Form) SetFootwearGender(v string) Draft {
	return f.compose(func(d *Draft) { d.FootwearGender = v })
}
func (f *Form) SetFootwearSizes(v []string) Draft {
	return f.compose(func(d *Draft) { d.FootwearSizes = v })
}
func (f *Form) SetGender(v string) Draft { return f.compose(func(d *Draft) { d.Gender = v }) }

// SetCategory replaces the category and, unless a restore is in progress,
// clears subcategory, sub-subcategory, brand, every variant group and the
// color map in one atomic step. Returns the resulting draft.
func (f *Form) SetCategory(v string) Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateEmpty {
		f.state = StateComposing
	}
	f.draft.Category = v
	if f.state != StateRestoring {
		f.draft.Subcategory = ""
		f.draft.Subsubcategory = ""
		f.draft.clearVariants()
	}
	return f.draft
}

// SetSubcategory applies the same cascade one level narrower.
func (f *Form) SetSubcategory(v string) Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateEmpty {
		f.state = StateComposing
	}
	f.draft.Subcategory = v
	if f.state != StateRestoring {
		f.draft.Subsubcategory = ""
		f.draft.clearVariants()
	}
	return f.draft
}

// SetSubSubcategory clears brand, variant groups and colors unless restoring.
func (f *Form) SetSubSubcategory(v string) Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateEmpty {
		f.state = StateComposing
	}
	f.draft.Subsubcategory = v
	if f.state != StateRestoring {
		f.draft.clearVariants()
	}
	return f.draft
}

// ToggleColor adds the color with an empty entry, or removes it entirely,
// discarding any entered quantity or image.
func (f *Form) ToggleColor(name string) Draft {
	return f.compose(func(d *Draft) {
		if d.Colors == nil {
			d.Colors = map[string]ColorEntry{}
		}
		if _, ok := d.Colors[name]; ok {
			delete(d.Colors, name)
		} else {
			d.Colors[name] = ColorEntry{}
		}
	})
}

// SetColorQuantity updates the entered quantity for a selected color.
// No-op when the color is not selected.
func (f *Form) SetColorQuantity(name, quantity string) Draft {
	return f.compose(func(d *Draft) {
		if entry, ok := d.Colors[name]; ok {
			entry.Quantity = quantity
			d.Colors[name] = entry
		}
	})
}

// SetColorImage sets or clears (nil) the image for a selected color.
func (f *Form) SetColorImage(name string, img *FileBlob) Draft {
	return f.compose(func(d *Draft) {
		if entry, ok := d.Colors[name]; ok {
			entry.Image = img
			d.Colors[name] = entry
		}
	})
}

// AddImages appends to the image list.
func (f *Form) AddImages(files ...FileBlob) Draft {
	return f.compose(func(d *Draft) { d.Images = append(d.Images, files...) })
}

// RemoveImage removes the image at index; out-of-range is a no-op.
func (f *Form) RemoveImage(i int) Draft {
	return f.compose(func(d *Draft) {
		if i >= 0 && i < len(d.Images) {
			d.Images = append(d.Images[:i], d.Images[i+1:]...)
		}
	})
}

// SetVideo replaces the optional video.
func (f *Form) SetVideo(v *FileBlob) Draft {
	return f.compose(func(d *Draft) { d.Video = v })
}

// RemoveVideo clears the optional video.
func (f *Form) RemoveVideo() Draft {
	return f.compose(func(d *Draft) { d.Video = nil })
}

// Restore loads a prior draft and enters the Restoring state, which suppresses
// the category cascade so the restored values do not wipe each other. The
// suppression lifts on its own after a short grace period, or immediately via
// FinishRestore.
func (f *Form) Restore(d Draft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d.Colors == nil {
		d.Colors = map[string]ColorEntry{}
	}
	f.draft = d
	f.state = StateRestoring
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(restoreGrace, f.FinishRestore)
}

// FinishRestore ends the Restoring state; cascades apply again from here on.
func (f *Form) FinishRestore() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	if f.state == StateRestoring {
		f.state = StateComposing
	}
}

// Submit runs the fixed validation sequence and, on success, returns the
// encoded draft ready for the handoff channel. On failure the form is left
// untouched so the user can correct and resubmit.
func (f *Form) Submit() (EncodedDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ValidateDraft(f.draft); err != nil {
		return EncodedDraft{}, err
	}
	enc, err := Encode(f.draft)
	if err != nil {
		return EncodedDraft{}, err
	}
	f.state = StateSubmitted
	return enc, nil
}

// ValidateDraft runs the submit checks in a fixed order, stopping at the
// first failure. The order is part of the product behavior: the user is told
// about one problem at a time, top of the form first.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("Please enter a product title")
	}
	if strings.TrimSpace(d.Description) == "" {
		return errors.New("Please enter a product description")
	}
	if price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64); err != nil || price <= 0 {
		return errors.New("Please enter a valid price")
	}
	if qty, err := strconv.Atoi(strings.TrimSpace(d.Quantity)); err != nil || qty <= 0 {
		return errors.New("Please enter a valid quantity")
	}
	if d.Condition == "" {
		return errors.New("Please select a product condition")
	}
	if d.DeliveryOption == "" {
		return errors.New("Please select a delivery option")
	}
	if d.Category == "" || d.Subcategory == "" || d.Subsubcategory == "" {
		return errors.New("Please complete the category selection")
	}
	if len(d.Images) == 0 {
		return errors.New("Please upload at least one product image")
	}
	return nil
}
