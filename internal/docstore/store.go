package docstore

import (
	"context"
	"time"

	"github.com/mystock-app/mystock/internal/codec"
	"github.com/mystock-app/mystock/internal/dateutil"
	"github.com/mystock-app/mystock/internal/model"
)

// Store is the single source of truth for reading and writing the two
// inventory documents. It holds no cache: every read hits the backend, which
// is fine for a single active user editing through one window.
type Store struct {
	backend Backend
	now     func() time.Time
}

// New creates a Store over the given backend.
func New(backend Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// CategoriesExist reports whether the category document can be read and
// parsed. It never returns an error; any failure means "do not call
// ReadCategories yet".
func (s *Store) CategoriesExist(ctx context.Context) bool {
	_, err := s.ReadCategories(ctx)
	return err == nil
}

// StockExists is the stock-document counterpart of CategoriesExist.
func (s *Store) StockExists(ctx context.Context) bool {
	_, err := s.ReadStock(ctx)
	return err == nil
}

// ReadCategories loads the category catalog. A missing document is
// ErrNotFound; a document that does not parse is a ParseError. The store
// never hands back fabricated defaults in either case.
func (s *Store) ReadCategories(ctx context.Context) (model.CategoryCatalog, error) {
	data, err := s.backend.Read(ctx, DocCategories)
	if err != nil {
		return model.CategoryCatalog{}, err
	}
	catalog, err := codec.DecodeCatalog(data)
	if err != nil {
		return model.CategoryCatalog{}, &ParseError{Name: DocCategories, Err: err}
	}
	return catalog, nil
}

// ReadStock loads the stock ledger under the same contract as
// ReadCategories.
func (s *Store) ReadStock(ctx context.Context) (model.StockLedger, error) {
	data, err := s.backend.Read(ctx, DocStock)
	if err != nil {
		return model.StockLedger{}, err
	}
	ledger, err := codec.DecodeLedger(data)
	if err != nil {
		return model.StockLedger{}, &ParseError{Name: DocStock, Err: err}
	}
	return ledger, nil
}

// WriteCategories stamps lastUpdate with the current date and overwrites the
// whole document.
func (s *Store) WriteCategories(ctx context.Context, catalog model.CategoryCatalog) error {
	catalog.LastUpdate = dateutil.Format(s.now())
	data, err := codec.EncodeCatalog(catalog)
	if err != nil {
		return &WriteError{Name: DocCategories, Err: err}
	}
	if err := s.backend.Write(ctx, DocCategories, data); err != nil {
		return &WriteError{Name: DocCategories, Err: err}
	}
	return nil
}

// WriteStock overwrites the whole ledger verbatim; no stamping.
func (s *Store) WriteStock(ctx context.Context, ledger model.StockLedger) error {
	data, err := codec.EncodeLedger(ledger)
	if err != nil {
		return &WriteError{Name: DocStock, Err: err}
	}
	if err := s.backend.Write(ctx, DocStock, data); err != nil {
		return &WriteError{Name: DocStock, Err: err}
	}
	return nil
}

// DeleteCategories removes the category document. Deleting an absent
// document succeeds.
func (s *Store) DeleteCategories(ctx context.Context) error {
	if err := s.backend.Delete(ctx, DocCategories); err != nil {
		return &DeleteError{Name: DocCategories, Err: err}
	}
	return nil
}

// DeleteStock removes the stock document. Deleting an absent document
// succeeds.
func (s *Store) DeleteStock(ctx context.Context) error {
	if err := s.backend.Delete(ctx, DocStock); err != nil {
		return &DeleteError{Name: DocStock, Err: err}
	}
	return nil
}

// Initialize writes both seed documents. Callers use it only when no data
// exists yet.
func (s *Store) Initialize(ctx context.Context, catalog model.CategoryCatalog, ledger model.StockLedger) error {
	if err := s.WriteCategories(ctx, catalog); err != nil {
		return err
	}
	return s.WriteStock(ctx, ledger)
}

// ResetAll deletes both documents unconditionally.
func (s *Store) ResetAll(ctx context.Context) error {
	if err := s.DeleteCategories(ctx); err != nil {
		return err
	}
	return s.DeleteStock(ctx)
}
