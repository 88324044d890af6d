package dataerr

import (
	"fmt"
	"strings"
)

// Kind identifies a class of data error. A Kind is itself an error so it can
// be used as the target of errors.Is.
type Kind string

const (
	DuplicateItemID      Kind = "duplicate item id"
	DuplicateItemName    Kind = "duplicate item name"
	DuplicateCatalogKey  Kind = "duplicate catalog key"
	UnresolvedIngredient Kind = "unresolved ingredient"
	MalformedRow         Kind = "malformed row"
	UnknownEnumValue     Kind = "unknown enum value"
	MissingItem          Kind = "missing item"
)

func (k Kind) Error() string {
	return string(k)
}

// Error is a data error with the context needed to locate the bad input.
type Error struct {
	Kind Kind
	// ItemID is the offending item id, when one is known.
	ItemID int
	// Name is the item, ingredient or catalog name involved.
	Name string
	// Row is the 1-based row number in a tabular input.
	Row int
	// Field names the column or attribute holding Value.
	Field string
	// Value is the raw offending value.
	Value string
	// Suggestions lists near matches for an unresolved name.
	Suggestions []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))

	switch e.Kind {
	case DuplicateItemID:
		fmt.Fprintf(&b, " %d", e.ItemID)
		if e.Name != "" {
			fmt.Fprintf(&b, " (%s)", e.Name)
		}
	case DuplicateItemName:
		fmt.Fprintf(&b, " %q (not listed as a known duplicate)", e.Name)
	case DuplicateCatalogKey:
		fmt.Fprintf(&b, " %q", e.Name)
	case UnresolvedIngredient, MissingItem:
		fmt.Fprintf(&b, " %q", e.Name)
		if e.Value != "" {
			fmt.Fprintf(&b, " referenced by %q", e.Value)
		}
	case MalformedRow:
		if e.Row > 0 {
			fmt.Fprintf(&b, " %d", e.Row)
		}
		if e.Name != "" {
			fmt.Fprintf(&b, " (%s)", e.Name)
		}
		if e.Field != "" {
			fmt.Fprintf(&b, ": %s", e.Field)
		}
		if e.Value != "" {
			fmt.Fprintf(&b, ": %q", e.Value)
		}
	case UnknownEnumValue:
		fmt.Fprintf(&b, " %q", e.Value)
		if e.Field != "" {
			fmt.Fprintf(&b, " for %s", e.Field)
		}
		if e.Name != "" {
			fmt.Fprintf(&b, " of %q", e.Name)
		}
		if e.Row > 0 {
			fmt.Fprintf(&b, " at row %d", e.Row)
		}
	}

	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(quoteAll(e.Suggestions), ", "))
	}
	return b.String()
}

// Unwrap exposes the Kind so errors.Is(err, dataerr.MalformedRow) works.
func (e *Error) Unwrap() error {
	return e.Kind
}

// DuplicateID reports an item id seen twice.
func DuplicateID(id int, name string) *Error {
	return &Error{Kind: DuplicateItemID, ItemID: id, Name: name}
}

// DuplicateName reports a repeated item name that is not an expected duplicate.
func DuplicateName(name string, id int) *Error {
	return &Error{Kind: DuplicateItemName, Name: name, ItemID: id}
}

// DuplicateCatalog reports a catalog key defined twice.
func DuplicateCatalog(key string) *Error {
	return &Error{Kind: DuplicateCatalogKey, Name: key}
}

// Unresolved reports an ingredient whose name has no id.
func Unresolved(ingredient, item string, suggestions []string) *Error {
	return &Error{Kind: UnresolvedIngredient, Name: ingredient, Value: item, Suggestions: suggestions}
}

// Missing reports data addressed to an item that does not exist.
func Missing(name string, suggestions []string) *Error {
	return &Error{Kind: MissingItem, Name: name, Suggestions: suggestions}
}

// Malformed reports a row that cannot be parsed.
func Malformed(row int, field, value string) *Error {
	return &Error{Kind: MalformedRow, Row: row, Field: field, Value: value}
}

// UnknownValue reports a value outside a closed vocabulary.
func UnknownValue(field, value string) *Error {
	return &Error{Kind: UnknownEnumValue, Field: field, Value: value}
}

// At returns a copy of e located at the given row and item name. Zero values
// keep the existing context.
func (e *Error) At(row int, name string) *Error {
	cp := *e
	if row > 0 {
		cp.Row = row
	}
	if name != "" {
		cp.Name = name
	}
	return &cp
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
