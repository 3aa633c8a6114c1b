// Package inventory implements the edit operations on the two documents.
// Every mutation reads the full document, applies the change, and writes the
// full document back; there are no partial patches.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mystock-app/mystock/internal/dateutil"
	"github.com/mystock-app/mystock/internal/docstore"
	"github.com/mystock-app/mystock/internal/model"
	"github.com/mystock-app/mystock/internal/seed"
)

// Fallback check interval for stock items whose category defines none.
const defaultCheckDays = 90

// Default check interval suggested for new categories.
const defaultCategoryCheckDays = 180

var (
	// ErrInvalid marks a rejected input; handlers map it to a client error.
	ErrInvalid = errors.New("invalid input")

	// ErrCategoryNotFound is returned when no category has the given id.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrItemNotFound is returned when no stock item matches the given
	// composite key.
	ErrItemNotFound = errors.New("stock item not found")

	// ErrAlreadyInitialized guards Initialize against clobbering data.
	ErrAlreadyInitialized = errors.New("documents already initialized")
)

// Service owns the business rules over a document store. It is handed to
// whichever layer needs it; there is no ambient singleton.
type Service struct {
	store  *docstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Service.
func New(store *docstore.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

func (s *Service) today() string { return dateutil.Format(s.now()) }

// Catalog loads the category document.
func (s *Service) Catalog(ctx context.Context) (model.CategoryCatalog, error) {
	return s.store.ReadCategories(ctx)
}

// Ledger loads the stock document.
func (s *Service) Ledger(ctx context.Context) (model.StockLedger, error) {
	return s.store.ReadStock(ctx)
}

// Initialize seeds both documents with the bundled defaults. It refuses to
// run when either document already exists.
func (s *Service) Initialize(ctx context.Context) error {
	if s.store.CategoriesExist(ctx) || s.store.StockExists(ctx) {
		return ErrAlreadyInitialized
	}

	catalog, err := seed.Catalog()
	if err != nil {
		return err
	}
	ledger, err := seed.Ledger()
	if err != nil {
		return err
	}

	if err := s.store.Initialize(ctx, catalog, ledger); err != nil {
		return err
	}
	s.logger.Info("documents initialized", "categories", len(catalog.BaseCategories))
	return nil
}

// Reset deletes both documents unconditionally.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.ResetAll(ctx); err != nil {
		return err
	}
	s.logger.Info("documents reset")
	return nil
}

// NewCategory carries the caller-supplied fields for AddCategory.
type NewCategory struct {
	ProductType          string
	Description          string
	Quantity             int
	UsualExpiryCheckDays *int
	DefaultUnit          string
	OnlineShopLink       string
}

// AddCategory appends a category with the next free id. A zero check
// interval is legal; a nil one falls back to the suggested default.
func (s *Service) AddCategory(ctx context.Context, in NewCategory) (model.Category, error) {
	in.ProductType = strings.TrimSpace(in.ProductType)
	if in.ProductType == "" {
		return model.Category{}, fmt.Errorf("%w: productType is required", ErrInvalid)
	}
	if in.Quantity < 0 {
		return model.Category{}, fmt.Errorf("%w: quantity must not be negative", ErrInvalid)
	}
	checkDays := defaultCategoryCheckDays
	if in.UsualExpiryCheckDays != nil {
		if *in.UsualExpiryCheckDays < 0 {
			return model.Category{}, fmt.Errorf("%w: usualExpiryCheckDays must not be negative", ErrInvalid)
		}
		checkDays = *in.UsualExpiryCheckDays
	}

	catalog, err := s.store.ReadCategories(ctx)
	if err != nil {
		return model.Category{}, err
	}

	cat := model.Category{
		ID:                   catalog.NextID(),
		ProductType:          in.ProductType,
		Description:          in.Description,
		Quantity:             in.Quantity,
		UsualExpiryCheckDays: checkDays,
		DefaultUnit:          in.DefaultUnit,
	}
	if link := strings.TrimSpace(in.OnlineShopLink); link != "" {
		cat.OnlineShopLink = []string{link}
	}

	catalog.BaseCategories = append(catalog.BaseCategories, cat)
	if err := s.store.WriteCategories(ctx, catalog); err != nil {
		return model.Category{}, err
	}
	s.logger.Info("category added", "id", cat.ID, "productType", cat.ProductType)
	return cat, nil
}

// CategoryUpdate carries a partial category edit; nil fields are untouched.
type CategoryUpdate struct {
	ProductType          *string
	Description          *string
	Quantity             *int
	UsualExpiryCheckDays *int
	DefaultUnit          *string
	OnlineShopLink       *string
}

// UpdateCategory merges the update into the identified category.
func (s *Service) UpdateCategory(ctx context.Context, id int, up CategoryUpdate) (model.Category, error) {
	catalog, err := s.store.ReadCategories(ctx)
	if err != nil {
		return model.Category{}, err
	}

	cat := catalog.FindCategory(id)
	if cat == nil {
		return model.Category{}, ErrCategoryNotFound
	}

	if up.ProductType != nil {
		trimmed := strings.TrimSpace(*up.ProductType)
		if trimmed == "" {
			return model.Category{}, fmt.Errorf("%w: productType is required", ErrInvalid)
		}
		cat.ProductType = trimmed
	}
	if up.Description != nil {
		cat.Description = *up.Description
	}
	if up.Quantity != nil {
		if *up.Quantity < 0 {
			return model.Category{}, fmt.Errorf("%w: quantity must not be negative", ErrInvalid)
		}
		cat.Quantity = *up.Quantity
	}
	if up.UsualExpiryCheckDays != nil {
		if *up.UsualExpiryCheckDays < 0 {
			return model.Category{}, fmt.Errorf("%w: usualExpiryCheckDays must not be negative", ErrInvalid)
		}
		cat.UsualExpiryCheckDays = *up.UsualExpiryCheckDays
	}
	if up.DefaultUnit != nil {
		cat.DefaultUnit = *up.DefaultUnit
	}
	if up.OnlineShopLink != nil {
		if link := strings.TrimSpace(*up.OnlineShopLink); link != "" {
			cat.OnlineShopLink = []string{link}
		} else {
			cat.OnlineShopLink = nil
		}
	}

	if err := s.store.WriteCategories(ctx, catalog); err != nil {
		return model.Category{}, err
	}
	s.logger.Info("category updated", "id", id)
	return *cat, nil
}

// SetQuantityOverride sets or clears (nil) a category's override.
func (s *Service) SetQuantityOverride(ctx context.Context, id int, override *int) (model.Category, error) {
	catalog, err := s.store.ReadCategories(ctx)
	if err != nil {
		return model.Category{}, err
	}

	cat := catalog.FindCategory(id)
	if cat == nil {
		return model.Category{}, ErrCategoryNotFound
	}
	if override != nil && *override < 0 {
		return model.Category{}, fmt.Errorf("%w: quantityOverride must not be negative", ErrInvalid)
	}
	cat.QuantityOverride = override

	if err := s.store.WriteCategories(ctx, catalog); err != nil {
		return model.Category{}, err
	}
	s.logger.Info("category override set", "id", id, "override", override)
	return *cat, nil
}

// DeleteCategory removes the category. Stock items that reference it keep
// their typeId; the view layer surfaces them under a placeholder rather
// than losing them.
func (s *Service) DeleteCategory(ctx context.Context, id int) error {
	catalog, err := s.store.ReadCategories(ctx)
	if err != nil {
		return err
	}

	kept := catalog.BaseCategories[:0]
	found := false
	for _, cat := range catalog.BaseCategories {
		if cat.ID == id {
			found = true
			continue
		}
		kept = append(kept, cat)
	}
	if !found {
		return ErrCategoryNotFound
	}
	catalog.BaseCategories = kept

	if err := s.store.WriteCategories(ctx, catalog); err != nil {
		return err
	}
	s.logger.Info("category deleted", "id", id)
	return nil
}

// NewStockItem carries the caller-supplied fields for AddStockItem.
type NewStockItem struct {
	TypeID          int
	Description     string
	Quantity        int
	OnlineStoreLink string
}

// AddStockItem appends an item checked today. The next check lands after the
// category's interval (or the fallback when the category defines none), and
// the historical computed fields are stamped once here.
func (s *Service) AddStockItem(ctx context.Context, in NewStockItem) (model.StockItem, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return model.StockItem{}, fmt.Errorf("%w: description is required", ErrInvalid)
	}
	if in.Quantity < 0 {
		return model.StockItem{}, fmt.Errorf("%w: quantity must not be negative", ErrInvalid)
	}

	catalog, err := s.store.ReadCategories(ctx)
	if err != nil {
		return model.StockItem{}, err
	}
	ledger, err := s.store.ReadStock(ctx)
	if err != nil {
		return model.StockItem{}, err
	}

	checkDays := defaultCheckDays
	if cat := catalog.FindCategory(in.TypeID); cat != nil && cat.UsualExpiryCheckDays > 0 {
		checkDays = cat.UsualExpiryCheckDays
	}

	today := s.today()
	item := model.StockItem{
		TypeID:            in.TypeID,
		Description:       in.Description,
		Quantity:          in.Quantity,
		OnlineStoreLink:   in.OnlineStoreLink,
		CheckedDate:       today,
		NextCheck:         dateutil.AddDays(today, checkDays),
		ComputedNextCheck: dateutil.AddDays(today, checkDays),
		ComputedExpiry:    dateutil.AddDays(today, 2*checkDays),
	}

	ledger.Products = append(ledger.Products, item)
	if err := s.store.WriteStock(ctx, ledger); err != nil {
		return model.StockItem{}, err
	}
	s.logger.Info("stock item added", "typeId", item.TypeID, "description", item.Description)
	return item, nil
}

// mutateItems applies fn to every item matching key and writes the ledger
// back. It returns the number of matches; zero matches means nothing was
// written.
func (s *Service) mutateItems(ctx context.Context, key model.ItemKey, fn func(*model.StockItem)) (int, error) {
	ledger, err := s.store.ReadStock(ctx)
	if err != nil {
		return 0, err
	}

	matched := 0
	for i := range ledger.Products {
		if ledger.Products[i].Matches(key) {
			fn(&ledger.Products[i])
			matched++
		}
	}
	if matched == 0 {
		return 0, ErrItemNotFound
	}

	if err := s.store.WriteStock(ctx, ledger); err != nil {
		return 0, err
	}
	return matched, nil
}

// UpdateItemQuantity sets the on-hand count of every item matching the key.
func (s *Service) UpdateItemQuantity(ctx context.Context, key model.ItemKey, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalid)
	}
	matched, err := s.mutateItems(ctx, key, func(it *model.StockItem) {
		it.Quantity = quantity
	})
	if err != nil {
		return err
	}
	s.logger.Info("stock quantity updated", "description", key.Description, "quantity", quantity, "matched", matched)
	return nil
}

// CheckItem records a physical verification today and moves the next check
// one category interval ahead. When the category is gone or has no
// interval, the existing next-check date is kept.
func (s *Service) CheckItem(ctx context.Context, key model.ItemKey) error {
	catalog, err := s.store.ReadCategories(ctx)
	if err != nil {
		return err
	}

	today := s.today()
	nextCheck := ""
	if cat := catalog.FindCategory(key.TypeID); cat != nil && cat.UsualExpiryCheckDays > 0 {
		nextCheck = dateutil.AddDays(today, cat.UsualExpiryCheckDays)
	}

	matched, err := s.mutateItems(ctx, key, func(it *model.StockItem) {
		it.CheckedDate = today
		if nextCheck != "" {
			it.NextCheck = nextCheck
		}
	})
	if err != nil {
		return err
	}
	s.logger.Info("stock item checked", "description", key.Description, "nextCheck", nextCheck, "matched", matched)
	return nil
}

// SetNextCheck moves the next verification date of every matching item to
// the user-chosen date.
func (s *Service) SetNextCheck(ctx context.Context, key model.ItemKey, date string) error {
	if _, err := dateutil.Parse(date); err != nil {
		return fmt.Errorf("%w: nextCheck must be a YYYY-MM-DD date", ErrInvalid)
	}
	matched, err := s.mutateItems(ctx, key, func(it *model.StockItem) {
		it.NextCheck = date
	})
	if err != nil {
		return err
	}
	s.logger.Info("next check set", "description", key.Description, "nextCheck", date, "matched", matched)
	return nil
}

// DeleteItem removes every item matching the key.
func (s *Service) DeleteItem(ctx context.Context, key model.ItemKey) error {
	ledger, err := s.store.ReadStock(ctx)
	if err != nil {
		return err
	}

	kept := ledger.Products[:0]
	removed := 0
	for _, item := range ledger.Products {
		if item.Matches(key) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed == 0 {
		return ErrItemNotFound
	}
	ledger.Products = kept

	if err := s.store.WriteStock(ctx, ledger); err != nil {
		return err
	}
	s.logger.Info("stock item deleted", "description", key.Description, "removed", removed)
	return nil
}
