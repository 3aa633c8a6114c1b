// Package seed carries the bundled default documents used by the explicit
// initialize action. Nothing reads them implicitly: a missing document stays
// a caller-visible condition until the user asks for initialization.
package seed

import (
	"embed"
	"fmt"

	"github.com/mystock-app/mystock/internal/codec"
	"github.com/mystock-app/mystock/internal/model"
)

//go:embed data/*.json
var data embed.FS

// Catalog returns the default category catalog.
func Catalog() (model.CategoryCatalog, error) {
	raw, err := data.ReadFile("data/productCategories.json")
	if err != nil {
		return model.CategoryCatalog{}, fmt.Errorf("read seed categories: %w", err)
	}
	catalog, err := codec.DecodeCatalog(raw)
	if err != nil {
		return model.CategoryCatalog{}, fmt.Errorf("seed categories: %w", err)
	}
	return catalog, nil
}

// Ledger returns the default (empty) stock ledger.
func Ledger() (model.StockLedger, error) {
	raw, err := data.ReadFile("data/stock.json")
	if err != nil {
		return model.StockLedger{}, fmt.Errorf("read seed stock: %w", err)
	}
	ledger, err := codec.DecodeLedger(raw)
	if err != nil {
		return model.StockLedger{}, fmt.Errorf("seed stock: %w", err)
	}
	return ledger, nil
}
