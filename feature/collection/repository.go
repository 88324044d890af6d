package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importBatchSize = 200

// Repository persists collected items with gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the collected_items table.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&CollectedItem{}); err != nil {
		return fmt.Errorf("failed to migrate collected_items: %w", err)
	}
	return nil
}

// Get returns the state of one item, or its default state when it has no row.
func (r *Repository) Get(ctx context.Context, id int) (CollectedItem, error) {
	return get(r.db.WithContext(ctx), id)
}

func get(tx *gorm.DB, id int) (CollectedItem, error) {
	var it CollectedItem
	err := tx.Where("id = ?", id).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Default(id), nil
	}
	if err != nil {
		return CollectedItem{}, fmt.Errorf("failed to get collected item %d: %w", id, err)
	}
	return it, nil
}

// All returns every recorded item ordered by id.
func (r *Repository) All(ctx context.Context) ([]CollectedItem, error) {
	var items []CollectedItem
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list collected items: %w", err)
	}
	return items, nil
}

// Save writes it, replacing any previous state.
func (r *Repository) Save(ctx context.Context, it CollectedItem) error {
	return save(r.db.WithContext(ctx), it)
}

func save(tx *gorm.DB, it CollectedItem) error {
	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&it).Error; err != nil {
		return fmt.Errorf("failed to save collected item %d: %w", it.ID, err)
	}
	return nil
}

// Observe marks an item as seen.
func (r *Repository) Observe(ctx context.Context, id int) (CollectedItem, error) {
	return r.update(ctx, id, func(it *CollectedItem) { it.Seen = true })
}

// MarkLicensed marks an item as seen and licensed.
func (r *Repository) MarkLicensed(ctx context.Context, id int) (CollectedItem, error) {
	return r.update(ctx, id, func(it *CollectedItem) {
		it.Seen = true
		it.Licensed = true
	})
}

func (r *Repository) update(ctx context.Context, id int, fn func(*CollectedItem)) (CollectedItem, error) {
	var out CollectedItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		it, err := get(tx, id)
		if err != nil {
			return err
		}
		fn(&it)
		if err := save(tx, it); err != nil {
			return err
		}
		out = it
		return nil
	})
	return out, err
}

// Export returns every recorded item keyed by id.
func (r *Repository) Export(ctx context.Context) (Collection, error) {
	items, err := r.All(ctx)
	if err != nil {
		return Collection{}, err
	}
	c := Collection{Items: make(map[int]CollectedItem, len(items))}
	for _, it := range items {
		c.Items[it.ID] = it
	}
	return c, nil
}

// Import replaces the whole collection with c in a single transaction.
func (r *Repository) Import(ctx context.Context, c Collection) error {
	if err := c.Validate(); err != nil {
		return err
	}

	items := make([]CollectedItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&CollectedItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear collected items: %w", err)
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(items, importBatchSize).Error; err != nil {
			return fmt.Errorf("failed to import collected items: %w", err)
		}
		return nil
	})
}
