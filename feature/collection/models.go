package collection

import (
	"fmt"
)

// CollectedItem is the collection state of one catalog item.
type CollectedItem struct {
	ID              int  `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Seen            bool `gorm:"column:seen;not null" json:"seen"`
	Licensed        bool `gorm:"column:licensed;not null" json:"licensed"`
	HaveRecipe      bool `gorm:"column:have_recipe;not null" json:"have_recipe"`
	Collected       bool `gorm:"column:collected;not null" json:"collected"`
	LicenseProgress int  `gorm:"column:license_progress;not null" json:"license_progress"`
	StorageAmount   int  `gorm:"column:storage_amount;not null" json:"storage_amount"`
}

func (CollectedItem) TableName() string {
	return "collected_items"
}

// Columns lists the columns the collected_items table must carry.
var Columns = []string{"id", "seen", "licensed", "have_recipe", "collected", "license_progress", "storage_amount"}

// Default is the state of an item that was never recorded.
func Default(id int) CollectedItem {
	return CollectedItem{ID: id}
}

// Collection is the export file shape. Keys are item ids.
type Collection struct {
	Items map[int]CollectedItem `json:"items"`
}

// Validate checks that every entry is consistent with its key. Entries with
// a zero id take the id of their key.
func (c *Collection) Validate() error {
	for id, it := range c.Items {
		if id <= 0 {
			return fmt.Errorf("invalid item id %d", id)
		}
		switch it.ID {
		case 0:
			it.ID = id
			c.Items[id] = it
		case id:
		default:
			return fmt.Errorf("item %d is stored under key %d", it.ID, id)
		}
		if it.LicenseProgress < 0 || it.StorageAmount < 0 {
			return fmt.Errorf("item %d has a negative amount", id)
		}
	}
	return nil
}
