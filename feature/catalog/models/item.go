package models

import (
	"encoding/json"
	"fmt"

	"catalog-manager/core/dataerr"
)

// PlaceholderID marks items and ingredients read from a spreadsheet before
// they are assigned a real id.
const PlaceholderID = -1

// WikiImageHost prefixes ImageRef.FandomWikiImagePath.
const WikiImageHost = "https://static.wikia.nocookie.net/tiny-shop/images/"

// Category is the item category.
type Category string

const (
	CategoryGear        Category = "Gear"
	CategoryConsumables Category = "Consumables"
	CategoryMaterial    Category = "Material"
	CategoryDecor       Category = "Decor"
	CategoryQuest       Category = "Quest"
	CategoryPlant       Category = "Plant"
	CategoryCosmetic    Category = "Cosmetic"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryGear, CategoryConsumables, CategoryMaterial, CategoryDecor,
	CategoryQuest, CategoryPlant, CategoryCosmetic,
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", dataerr.UnknownValue("category", s)
}

// UnmarshalJSON rejects names outside Categories.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ImageRef points at an image. Only one of the fields is expected to be set.
type ImageRef struct {
	FandomWikiImagePath string `json:"fandom_wiki_image_path,omitempty"`
	LocalPath           string `json:"local_path,omitempty"`
	URL                 string `json:"url,omitempty"`
}

// Src resolves the image location, preferring the wiki path, then the local
// path, then the absolute url.
func (r *ImageRef) Src() string {
	switch {
	case r == nil:
		return ""
	case r.FandomWikiImagePath != "":
		return WikiImageHost + r.FandomWikiImagePath
	case r.LocalPath != "":
		return r.LocalPath
	default:
		return r.URL
	}
}

// IsZero reports whether no location is set.
func (r *ImageRef) IsZero() bool {
	return r == nil || (r.FandomWikiImagePath == "" && r.LocalPath == "" && r.URL == "")
}

// Ingredient is one recipe input. Quantity is per craft and may be fractional.
type Ingredient struct {
	Name     string  `json:"name"`
	ID       int     `json:"id"`
	Quantity float64 `json:"quantity"`
}

// Recipe describes how an item is crafted.
type Recipe struct {
	Ingredient  []Ingredient `json:"ingredient"`
	CraftAmount int          `json:"craft_amount"`
}

// Item is a catalog entry. Names are not unique.
type Item struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Category      Category   `json:"category"`
	Image         *ImageRef  `json:"image,omitempty"`
	Recipe        *Recipe    `json:"recipe,omitempty"`
	LicenseAmount *int       `json:"license_amount,omitempty"`
	Source        SourceList `json:"source,omitempty"`
}

// Licensable reports whether license progress can be tracked for the item.
func (i Item) Licensable() bool {
	return i.LicenseAmount != nil && *i.LicenseAmount > 0
}

func (i Item) String() string {
	return fmt.Sprintf("%d (%s)", i.ID, i.Name)
}

// ItemFile is the on-disk shape of an item file.
type ItemFile struct {
	Items []Item `json:"items"`
}

// NamedIcon is a wiki image path found for an item name.
type NamedIcon struct {
	Name string
	Path string
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
