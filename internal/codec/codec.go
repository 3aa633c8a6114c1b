// Package codec serializes the two inventory documents to the UTF-8 JSON
// representation used on disk: pretty-printed with 4-space indentation.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/mystock-app/mystock/internal/model"
)

const indent = "    "

// EncodeCatalog renders a category catalog as indented JSON.
func EncodeCatalog(c model.CategoryCatalog) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", indent)
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}
	return data, nil
}

// DecodeCatalog parses and validates a category catalog document.
func DecodeCatalog(data []byte) (model.CategoryCatalog, error) {
	var c model.CategoryCatalog
	if err := json.Unmarshal(data, &c); err != nil {
		return model.CategoryCatalog{}, fmt.Errorf("decode categories: %w", err)
	}
	if err := ValidateCatalog(c); err != nil {
		return model.CategoryCatalog{}, err
	}
	return c, nil
}

// EncodeLedger renders a stock ledger as indented JSON.
func EncodeLedger(l model.StockLedger) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", indent)
	if err != nil {
		return nil, fmt.Errorf("encode stock: %w", err)
	}
	return data, nil
}

// DecodeLedger parses and validates a stock ledger document.
func DecodeLedger(data []byte) (model.StockLedger, error) {
	var l model.StockLedger
	if err := json.Unmarshal(data, &l); err != nil {
		return model.StockLedger{}, fmt.Errorf("decode stock: %w", err)
	}
	if err := ValidateLedger(l); err != nil {
		return model.StockLedger{}, err
	}
	return l, nil
}

// ValidateCatalog checks the shape invariants of a catalog: unique category
// ids and non-negative quantities and check intervals. Display fields are
// not checked here; they are creation-time concerns.
func ValidateCatalog(c model.CategoryCatalog) error {
	seen := make(map[int]struct{}, len(c.BaseCategories))
	for _, cat := range c.BaseCategories {
		if _, dup := seen[cat.ID]; dup {
			return fmt.Errorf("duplicate category id %d", cat.ID)
		}
		seen[cat.ID] = struct{}{}

		if cat.Quantity < 0 {
			return fmt.Errorf("category %d: negative quantity %d", cat.ID, cat.Quantity)
		}
		if cat.UsualExpiryCheckDays < 0 {
			return fmt.Errorf("category %d: negative check interval %d", cat.ID, cat.UsualExpiryCheckDays)
		}
	}
	return nil
}

// ValidateLedger checks the shape invariants of a ledger. Dangling typeId
// references are deliberately not an error; they are tolerated and surfaced
// by the view layer instead.
func ValidateLedger(l model.StockLedger) error {
	for i, item := range l.Products {
		if item.Quantity < 0 {
			return fmt.Errorf("stock item %d (%q): negative quantity %d", i, item.Description, item.Quantity)
		}
	}
	return nil
}
