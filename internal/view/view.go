// Package view computes the presentation aggregates derived from the two
// documents. Everything here is a pure function of its inputs; nothing
// touches the store.
package view

import (
	"math"
	"sort"

	"github.com/mystock-app/mystock/internal/dateutil"
	"github.com/mystock-app/mystock/internal/model"
)

// UnknownProductType labels the synthetic placeholder category used for
// stock items whose category was deleted. Such items are shown, never
// silently dropped.
const UnknownProductType = "Unknown category"

// StockGroup is one category's slice of the current stock.
type StockGroup struct {
	Category      model.Category    `json:"category"`
	Items         []model.StockItem `json:"items"`
	TotalQuantity int               `json:"totalQuantity"`
	// StockPercentage is round(100 * total / effective), or 100 when the
	// effective quantity is zero.
	StockPercentage int `json:"stockPercentage"`
	// AvgDaysToCheck is the mean number of days from today until the
	// items' next checks, rounded; 0 for an empty group.
	AvgDaysToCheck int `json:"avgDaysToCheck"`
	// HasDueItems is true when any item's next check date has passed.
	HasDueItems bool `json:"hasDueItems"`
}

// ShoppingListEntry is one category's deficit against its effective
// quantity.
type ShoppingListEntry struct {
	Category        model.Category `json:"category"`
	CurrentQuantity int            `json:"currentQuantity"`
	QuantityToBuy   int            `json:"quantityToBuy"`
}

// GroupStockByCategory groups the ledger by category for the current-stock
// view, using today's date for the due/average calculations.
func GroupStockByCategory(catalog model.CategoryCatalog, ledger model.StockLedger) []StockGroup {
	return GroupStockByCategoryAt(catalog, ledger, dateutil.Today())
}

// GroupStockByCategoryAt is GroupStockByCategory with an explicit "today",
// for deterministic evaluation.
//
// The result contains every category whose effective quantity is positive,
// plus any category referenced by a stock item (including deleted ones,
// under a placeholder). Groups are sorted by ascending category id.
func GroupStockByCategoryAt(catalog model.CategoryCatalog, ledger model.StockLedger, today string) []StockGroup {
	groups := make(map[int]*StockGroup)

	for _, cat := range catalog.BaseCategories {
		if cat.EffectiveQuantity() > 0 {
			groups[cat.ID] = &StockGroup{Category: cat}
		}
	}

	for _, item := range ledger.Products {
		g, ok := groups[item.TypeID]
		if !ok {
			cat := catalog.FindCategory(item.TypeID)
			if cat == nil {
				// Category was deleted while items remained.
				g = &StockGroup{Category: model.Category{
					ID:          item.TypeID,
					ProductType: UnknownProductType,
				}}
			} else {
				g = &StockGroup{Category: *cat}
			}
			groups[item.TypeID] = g
		}
		g.Items = append(g.Items, item)
		g.TotalQuantity += item.Quantity
	}

	out := make([]StockGroup, 0, len(groups))
	for _, g := range groups {
		g.StockPercentage = percentage(g.TotalQuantity, g.Category.EffectiveQuantity())
		g.AvgDaysToCheck = avgDaysToCheck(g.Items, today)
		g.HasDueItems = hasDueItems(g.Items, today)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category.ID < out[j].Category.ID })
	return out
}

func percentage(total, effective int) int {
	if effective == 0 {
		return 100
	}
	return int(math.Round(100 * float64(total) / float64(effective)))
}

func avgDaysToCheck(items []model.StockItem, today string) int {
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, item := range items {
		sum += dateutil.DaysBetween(today, item.NextCheck)
	}
	return int(math.Round(float64(sum) / float64(len(items))))
}

func hasDueItems(items []model.StockItem, today string) bool {
	for _, item := range items {
		if dateutil.IsBefore(item.NextCheck, today) {
			return true
		}
	}
	return false
}

// ComputeShoppingList returns, in catalog order, each category's deficit
// against its effective quantity. Entries with nothing to buy are included;
// use FilterShoppingList for the printable view.
func ComputeShoppingList(catalog model.CategoryCatalog, ledger model.StockLedger) []ShoppingListEntry {
	current := make(map[int]int, len(catalog.BaseCategories))
	for _, cat := range catalog.BaseCategories {
		current[cat.ID] = 0
	}
	for _, item := range ledger.Products {
		if _, ok := current[item.TypeID]; ok {
			current[item.TypeID] += item.Quantity
		}
	}

	entries := make([]ShoppingListEntry, 0, len(catalog.BaseCategories))
	for _, cat := range catalog.BaseCategories {
		toBuy := cat.EffectiveQuantity() - current[cat.ID]
		if toBuy < 0 {
			toBuy = 0
		}
		entries = append(entries, ShoppingListEntry{
			Category:        cat,
			CurrentQuantity: current[cat.ID],
			QuantityToBuy:   toBuy,
		})
	}
	return entries
}

// FilterShoppingList drops entries that require no purchase.
func FilterShoppingList(entries []ShoppingListEntry) []ShoppingListEntry {
	out := make([]ShoppingListEntry, 0, len(entries))
	for _, e := range entries {
		if e.QuantityToBuy > 0 {
			out = append(out, e)
		}
	}
	return out
}
