package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"catalog-manager/core/reconcile"
	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"
)

// ItemAdapter implements the reconcile.Adapter interface for catalog items.
type ItemAdapter struct{}

// NewItemAdapter creates a new item adapter.
func NewItemAdapter() *ItemAdapter {
	return &ItemAdapter{}
}

// Name returns the unique name of this adapter.
func (a *ItemAdapter) Name() string {
	return "items"
}

// ExtractKey returns the item id.
func (a *ItemAdapter) ExtractKey(e reconcile.Entity) string {
	return utils.FormatID(e.(models.Item).ID)
}

// ResolveName prefers the incoming name.
func (a *ItemAdapter) ResolveName(current, incoming reconcile.Entity) string {
	if incoming != nil {
		return incoming.(models.Item).Name
	}
	if current != nil {
		return current.(models.Item).Name
	}
	return ""
}

// CompareFields lists the fields that differ between both versions of an item.
func (a *ItemAdapter) CompareFields(current, incoming reconcile.Entity) []string {
	cur := current.(models.Item)
	inc := incoming.(models.Item)

	var mismatches []string

	if cur.Name != inc.Name {
		mismatches = append(mismatches, fmt.Sprintf("name: old='%s' new='%s'", cur.Name, inc.Name))
	}
	if cur.Category != inc.Category {
		mismatches = append(mismatches, fmt.Sprintf("category: old='%s' new='%s'", cur.Category, inc.Category))
	}
	if o, n := cur.Image.Src(), inc.Image.Src(); o != n {
		mismatches = append(mismatches, fmt.Sprintf("image: old='%s' new='%s'", o, n))
	}
	if o, n := licenseString(cur.LicenseAmount), licenseString(inc.LicenseAmount); o != n {
		mismatches = append(mismatches, fmt.Sprintf("license_amount: old=%s new=%s", o, n))
	}
	if o, n := recipeString(cur.Recipe), recipeString(inc.Recipe); o != n {
		mismatches = append(mismatches, fmt.Sprintf("recipe: old='%s' new='%s'", o, n))
	}
	if o, n := sourcesString(cur.Source), sourcesString(inc.Source); o != n {
		mismatches = append(mismatches, fmt.Sprintf("source: old='%s' new='%s'", o, n))
	}

	return mismatches
}

// GetMetadata returns the item category.
func (a *ItemAdapter) GetMetadata(current, incoming reconcile.Entity) map[string]string {
	var it models.Item
	switch {
	case incoming != nil:
		it = incoming.(models.Item)
	case current != nil:
		it = current.(models.Item)
	default:
		return nil
	}
	return map[string]string{"category": string(it.Category)}
}

func licenseString(v *int) string {
	if v == nil {
		return "none"
	}
	return strconv.Itoa(*v)
}

func recipeString(r *models.Recipe) string {
	if r == nil {
		return ""
	}
	parts := make([]string, len(r.Ingredient))
	for i, ing := range r.Ingredient {
		parts[i] = fmt.Sprintf("%gx%s#%d", ing.Quantity, ing.Name, ing.ID)
	}
	return fmt.Sprintf("%d<-%s", r.CraftAmount, strings.Join(parts, "+"))
}

func sourcesString(l models.SourceList) string {
	parts := make([]string, len(l))
	for i, s := range l {
		d := s.Drop()
		parts[i] = fmt.Sprintf("%s/%s/%t", models.SourceKeyOf(s), d.Kind, d.Fragment)
	}
	return strings.Join(parts, ",")
}

// itemEntities converts items to reconcile entities.
func itemEntities(items []models.Item) []reconcile.Entity {
	out := make([]reconcile.Entity, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
