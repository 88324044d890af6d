package validator

import (
	"fmt"
	"sort"
	"strconv"

	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/overrides"

	"go.uber.org/zap"
)

// Rule names a consistency check.
type Rule string

const (
	RecipeWithoutRecipeSource Rule = "recipe-without-recipe-source"
	RecipeSourceWithoutRecipe Rule = "recipe-source-without-recipe"
	ImplausibleFragment       Rule = "implausible-fragment"
	JourneyRecipeNotFragment  Rule = "journey-recipe-not-fragment"
	TaskChestFragmentPolicy   Rule = "task-chest-fragment-policy"
	IngredientMismatch        Rule = "ingredient-mismatch"
	InvalidCraftAmount        Rule = "invalid-craft-amount"
	CombineTargetMissing      Rule = "combine-target-missing"
	DanglingDrop              Rule = "dangling-drop"
	SourceKeyMismatch         Rule = "source-key-mismatch"
)

// Warning is a single finding. ItemID is zero for findings about a source
// rather than an item.
type Warning struct {
	Rule     Rule   `json:"rule"`
	ItemID   int    `json:"item_id"`
	ItemName string `json:"item_name,omitempty"`
	Message  string `json:"message"`
}

// Report holds the warnings of one validation run, sorted by item id.
type Report struct {
	Warnings []Warning `json:"warnings"`
}

// Empty reports whether nothing was found.
func (r Report) Empty() bool {
	return len(r.Warnings) == 0
}

// Count returns the number of warnings per rule.
func (r Report) Count() map[Rule]int {
	out := make(map[Rule]int)
	for _, w := range r.Warnings {
		out[w.Rule]++
	}
	return out
}

// Log writes every warning at warn level.
func (r Report) Log(log *zap.Logger) {
	log = logger.OrNop(log)
	for _, w := range r.Warnings {
		log.Warn(w.Message,
			zap.String("rule", string(w.Rule)),
			zap.Int("item_id", w.ItemID),
			zap.String("item_name", w.ItemName))
	}
	log.Info("Integrity check finished", zap.Int("warnings", len(r.Warnings)))
}

// fragmentless categories are stacked in whole units.
var fragmentless = map[models.Category]bool{
	models.CategoryMaterial:    true,
	models.CategoryConsumables: true,
	models.CategoryPlant:       true,
}

type checker struct {
	db  *models.Database
	ov  *overrides.Overrides
	out []Warning
}

func (c *checker) warn(rule Rule, it models.Item, format string, args ...any) {
	c.out = append(c.out, Warning{
		Rule:     rule,
		ItemID:   it.ID,
		ItemName: it.Name,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Validate checks db for data that is well-formed but probably wrong.
func Validate(db *models.Database, ov *overrides.Overrides) Report {
	c := &checker{db: db, ov: ov}

	for _, id := range db.ItemIDs() {
		c.item(db.Items[id])
	}
	for _, key := range db.SourceKeys() {
		c.source(key, db.Sources[key])
	}

	sort.SliceStable(c.out, func(i, j int) bool { return c.out[i].ItemID < c.out[j].ItemID })
	return Report{Warnings: c.out}
}

func (c *checker) item(it models.Item) {
	hasRecipeSource := false
	for _, s := range it.Source {
		drop := s.Drop()
		if drop.Kind == models.KindRecipe {
			hasRecipeSource = true
			if it.Recipe == nil {
				c.warn(RecipeSourceWithoutRecipe, it, "%s drops a recipe but the item has none", models.DisplayName(s))
			}
		}
		if drop.Kind == models.KindItem && drop.Fragment && fragmentless[it.Category] {
			c.warn(ImplausibleFragment, it, "%s drops %s fragments", models.DisplayName(s), it.Category)
		}

		switch v := s.(type) {
		case models.JourneySource:
			if drop.Kind == models.KindRecipe && !drop.Fragment && !c.ov.JourneyRecipeWhole(it.ID) {
				c.warn(JourneyRecipeNotFragment, it, "journey %q drops a whole recipe", v.Name)
			}
		case models.TaskChestSource:
			c.taskChest(it, v)
		case models.CombineSource:
			id, err := strconv.Atoi(v.ItemID)
			if _, ok := c.db.Items[id]; err != nil || !ok {
				c.warn(CombineTargetMissing, it, "combine source references unknown item %q", v.ItemID)
			}
		}
	}

	if it.Recipe == nil {
		return
	}
	if len(it.Source) > 0 && !hasRecipeSource {
		c.warn(RecipeWithoutRecipeSource, it, "item has a recipe but no known source for it")
	}
	if it.Recipe.CraftAmount <= 0 {
		c.warn(InvalidCraftAmount, it, "recipe crafts %d items", it.Recipe.CraftAmount)
	}
	for _, ing := range it.Recipe.Ingredient {
		target, ok := c.db.Items[ing.ID]
		switch {
		case !ok:
			c.warn(IngredientMismatch, it, "ingredient %q references unknown item %d", ing.Name, ing.ID)
		case target.Name != ing.Name:
			c.warn(IngredientMismatch, it, "ingredient %q references item %d named %q", ing.Name, ing.ID, target.Name)
		}
	}
}

func (c *checker) taskChest(it models.Item, s models.TaskChestSource) {
	scope := string(s.Scope)
	if ev, ok := s.Scope.Event(); ok {
		scope = string(ev.Category())
	}
	fragment := s.Drop().Fragment
	switch c.ov.TaskChestPolicy(scope) {
	case overrides.FragmentWhole:
		if fragment {
			c.warn(TaskChestFragmentPolicy, it, "%s task chests drop whole items, found a fragment", scope)
		}
	case overrides.FragmentOnly:
		if !fragment {
			c.warn(TaskChestFragmentPolicy, it, "%s task chests drop fragments, found a whole item", scope)
		}
	}
}

func (c *checker) source(key models.SourceKey, d models.SourceDetails) {
	if got := models.SourceKeyOf(d.Source); got != key {
		c.out = append(c.out, Warning{
			Rule:    SourceKeyMismatch,
			Message: fmt.Sprintf("source %q is stored under key %q", got, key),
		})
	}
	for _, drop := range d.Drops {
		if _, ok := c.db.Items[drop.ItemID]; !ok {
			c.out = append(c.out, Warning{
				Rule:    DanglingDrop,
				ItemID:  drop.ItemID,
				Message: fmt.Sprintf("source %q drops unknown item %d", key, drop.ItemID),
			})
		}
	}
}
