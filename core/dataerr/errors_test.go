package dataerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"DuplicateID", DuplicateID(5, "Pumpkin"), DuplicateItemID},
		{"DuplicateName", DuplicateName("Pumpkin", 238), DuplicateItemName},
		{"DuplicateCatalog", DuplicateCatalog("main"), DuplicateCatalogKey},
		{"Unresolved", Unresolved("Flour", "Bread", nil), UnresolvedIngredient},
		{"Missing", Missing("Bread", nil), MissingItem},
		{"Malformed", Malformed(3, "quote", `"abc`), MalformedRow},
		{"UnknownValue", UnknownValue("category", "WEAPON"), UnknownEnumValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("import failed: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.kind))
			assert.False(t, errors.Is(wrapped, Kind("other")))

			var de *Error
			require.True(t, errors.As(wrapped, &de))
			assert.Equal(t, tt.kind, de.Kind)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "duplicate item id 5 (Pumpkin)", DuplicateID(5, "Pumpkin").Error())
	assert.Equal(t, `malformed row 3: unclosed quote: "\"abc"`, Malformed(3, "unclosed quote", `"abc`).Error())
	assert.Equal(t,
		`unresolved ingredient "Flor" referenced by "Bread" (did you mean "Flour"?)`,
		Unresolved("Flor", "Bread", []string{"Flour"}).Error())
	assert.Equal(t,
		`unknown enum value "WEAPON" for category of "Sword" at row 4`,
		UnknownValue("category", "WEAPON").At(4, "Sword").Error())
}

func TestAtKeepsOriginal(t *testing.T) {
	base := UnknownValue("kind", "Thing")
	located := base.At(7, "Bread")

	assert.Equal(t, 0, base.Row)
	assert.Equal(t, 7, located.Row)
	assert.Equal(t, "Bread", located.Name)
	assert.Equal(t, "Bread", located.At(0, "").Name)
}
