// Package exchange moves the full inventory in and out of the store as a
// single combined document, for user-driven export/import and for backup
// snapshots.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mystock-app/mystock/internal/codec"
	"github.com/mystock-app/mystock/internal/dateutil"
	"github.com/mystock-app/mystock/internal/docstore"
	"github.com/mystock-app/mystock/internal/model"
)

// Document is the combined export payload.
type Document struct {
	ProductCategories model.CategoryCatalog `json:"productCategories"`
	Stock             model.StockLedger     `json:"stock"`
}

// rawDocument mirrors Document with presence-checkable fields, so a payload
// missing a section is rejected rather than silently zeroed.
type rawDocument struct {
	ProductCategories *struct {
		LastUpdate     string            `json:"lastUpdate"`
		BaseCategories *[]model.Category `json:"baseCategories"`
	} `json:"productCategories"`
	Stock *struct {
		Products *[]model.StockItem `json:"products"`
	} `json:"stock"`
}

// Export reads both documents and renders the combined payload with 2-space
// indentation. Export is read-only; a half-initialized store surfaces as the
// underlying read error.
func Export(ctx context.Context, store *docstore.Store) ([]byte, error) {
	catalog, err := store.ReadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}
	ledger, err := store.ReadStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("export stock: %w", err)
	}

	doc := Document{ProductCategories: catalog, Stock: ledger}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// Filename returns the suggested download name for an export made today.
func Filename() string {
	return "mystock-export-" + dateutil.Today() + ".json"
}

// Parse decodes and validates an import payload without touching the store.
func Parse(data []byte) (Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("decode import: %w", err)
	}
	if raw.ProductCategories == nil || raw.ProductCategories.BaseCategories == nil {
		return Document{}, fmt.Errorf("import payload has no productCategories.baseCategories")
	}
	if raw.Stock == nil || raw.Stock.Products == nil {
		return Document{}, fmt.Errorf("import payload has no stock.products")
	}

	doc := Document{
		ProductCategories: model.CategoryCatalog{
			LastUpdate:     raw.ProductCategories.LastUpdate,
			BaseCategories: *raw.ProductCategories.BaseCategories,
		},
		Stock: model.StockLedger{Products: *raw.Stock.Products},
	}
	if err := codec.ValidateCatalog(doc.ProductCategories); err != nil {
		return Document{}, fmt.Errorf("import categories: %w", err)
	}
	if err := codec.ValidateLedger(doc.Stock); err != nil {
		return Document{}, fmt.Errorf("import stock: %w", err)
	}
	return doc, nil
}

// Import replaces the store contents with the payload. The payload is fully
// staged and validated first; nothing is deleted until it has passed, so a
// bad file leaves the existing data untouched.
func Import(ctx context.Context, store *docstore.Store, data []byte) (Document, error) {
	doc, err := Parse(data)
	if err != nil {
		return Document{}, err
	}

	if err := store.ResetAll(ctx); err != nil {
		return Document{}, fmt.Errorf("reset before import: %w", err)
	}
	// WriteCategories restamps lastUpdate; the imported value only matters
	// until the first subsequent edit anyway.
	if err := store.WriteCategories(ctx, doc.ProductCategories); err != nil {
		return Document{}, fmt.Errorf("import categories: %w", err)
	}
	if err := store.WriteStock(ctx, doc.Stock); err != nil {
		return Document{}, fmt.Errorf("import stock: %w", err)
	}
	return doc, nil
}
