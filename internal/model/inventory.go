package model

// Category is a user-defined product type with a recommended baseline
// quantity and an expiry-check interval for the items stocked under it.
type Category struct {
	ID          int    `json:"id"`
	ProductType string `json:"productType"`
	Description string `json:"description,omitempty"`
	// Quantity is the recommended baseline. QuantityOverride, when set,
	// supersedes it for all downstream calculations.
	Quantity             int    `json:"quantity"`
	QuantityOverride     *int   `json:"quantityOverride,omitempty"`
	UsualExpiryCheckDays int    `json:"usualExpiryCheckDays"`
	DefaultUnit          string `json:"defaultUnit,omitempty"`
	// OnlineShopLink holds at most one URL. It is a list for historical
	// reasons; only index 0 is ever read.
	OnlineShopLink []string `json:"onlineShopLink,omitempty"`
}

// EffectiveQuantity returns the override when present, else the baseline.
func (c Category) EffectiveQuantity() int {
	if c.QuantityOverride != nil {
		return *c.QuantityOverride
	}
	return c.Quantity
}

// ShopLink returns the first online shop link, or "" when none is set.
func (c Category) ShopLink() string {
	if len(c.OnlineShopLink) == 0 {
		return ""
	}
	return c.OnlineShopLink[0]
}

// CategoryCatalog is the persisted category document. LastUpdate is stamped
// by the document store on every write, not by callers.
type CategoryCatalog struct {
	LastUpdate     string     `json:"lastUpdate"`
	BaseCategories []Category `json:"baseCategories"`
}

// FindCategory returns the category with the given id, or nil.
func (c *CategoryCatalog) FindCategory(id int) *Category {
	for i := range c.BaseCategories {
		if c.BaseCategories[i].ID == id {
			return &c.BaseCategories[i]
		}
	}
	return nil
}

// NextID returns the id to assign to a new category: one past the highest
// id currently in the catalog, starting at 1 for an empty catalog.
func (c *CategoryCatalog) NextID() int {
	max := 0
	for _, cat := range c.BaseCategories {
		if cat.ID > max {
			max = cat.ID
		}
	}
	return max + 1
}

// StockItem is one physical batch of a product being tracked. It carries no
// generated id: items are addressed by the composite key
// (typeId, description, checkedDate).
type StockItem struct {
	TypeID          int    `json:"typeId"`
	Description     string `json:"description"`
	Quantity        int    `json:"quantity"`
	OnlineStoreLink string `json:"onlineStoreLink,omitempty"`
	CheckedDate     string `json:"checkedDate"`
	NextCheck       string `json:"nextCheck"`
	// ComputedNextCheck and ComputedExpiry are populated once at creation.
	// Check actions recompute NextCheck from the category interval instead
	// of trusting these stored values.
	ComputedNextCheck string `json:"computedNextCheck,omitempty"`
	ComputedExpiry    string `json:"computedExpiry,omitempty"`
}

// ItemKey is the composite identity of a stock item. Two physical items with
// the same type, description, and checked date are indistinguishable;
// operations using a key apply to every matching item.
type ItemKey struct {
	TypeID      int    `json:"typeId"`
	Description string `json:"description"`
	CheckedDate string `json:"checkedDate"`
}

// Key returns the item's composite identity.
func (i StockItem) Key() ItemKey {
	return ItemKey{TypeID: i.TypeID, Description: i.Description, CheckedDate: i.CheckedDate}
}

// Matches reports whether the item is addressed by the given key.
func (i StockItem) Matches(k ItemKey) bool {
	return i.TypeID == k.TypeID && i.Description == k.Description && i.CheckedDate == k.CheckedDate
}

// StockLedger is the persisted stock document. Products keep insertion
// order; no sorting is implied.
type StockLedger struct {
	Products []StockItem `json:"products"`
}
