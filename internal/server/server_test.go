package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mystock-app/mystock/internal/backup"
	"github.com/mystock-app/mystock/internal/docstore"
	"github.com/mystock-app/mystock/internal/model"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	backend, err := docstore.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	store := docstore.New(backend)
	srv := New(store, backup.Config{}, slog.Default())
	return srv.Router()
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestStateBeforeAndAfterInit(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/state", nil)
	state := decode[map[string]any](t, rec)
	if state["categoriesExist"] != false || state["stockExists"] != false {
		t.Errorf("fresh state = %v", state)
	}

	if rec := do(t, router, http.MethodPost, "/api/init", nil); rec.Code != http.StatusCreated {
		t.Fatalf("init status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodGet, "/api/state", nil)
	state = decode[map[string]any](t, rec)
	if state["categoriesExist"] != true || state["stockExists"] != true {
		t.Errorf("state after init = %v", state)
	}
	if state["categories"] == nil || state["stock"] == nil {
		t.Error("state must carry the documents once they exist")
	}
}

func TestInitTwiceConflicts(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/init", nil)

	if rec := do(t, router, http.MethodPost, "/api/init", nil); rec.Code != http.StatusConflict {
		t.Errorf("second init status = %d, want 409", rec.Code)
	}
}

func TestReadBeforeInitIs404(t *testing.T) {
	router := newTestRouter(t)
	for _, path := range []string{"/api/categories", "/api/stock", "/api/stock/groups", "/api/shopping-list", "/api/export"} {
		if rec := do(t, router, http.MethodGet, path, nil); rec.Code != http.StatusNotFound {
			t.Errorf("%s before init: status = %d, want 404", path, rec.Code)
		}
	}
}

func TestCategoryLifecycle(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/init", nil)

	rec := do(t, router, http.MethodPost, "/api/categories", map[string]any{
		"productType": "Coffee", "quantity": 2, "defaultUnit": "kg",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[model.Category](t, rec)
	if created.ID == 0 || created.ProductType != "Coffee" {
		t.Fatalf("created = %+v", created)
	}

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/api/categories/%d", created.ID), map[string]any{"quantity": 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[model.Category](t, rec); got.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", got.Quantity)
	}

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/api/categories/%d/override", created.ID), map[string]any{"quantityOverride": 9})
	if rec.Code != http.StatusOK {
		t.Fatalf("override status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[model.Category](t, rec); got.EffectiveQuantity() != 9 {
		t.Errorf("effective = %d, want 9", got.EffectiveQuantity())
	}

	if rec := do(t, router, http.MethodDelete, fmt.Sprintf("/api/categories/%d", created.ID), nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := do(t, router, http.MethodDelete, fmt.Sprintf("/api/categories/%d", created.ID), nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestCategoryValidationOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/init", nil)

	if rec := do(t, router, http.MethodPost, "/api/categories", map[string]any{"productType": ""}); rec.Code != http.StatusBadRequest {
		t.Errorf("blank productType status = %d, want 400", rec.Code)
	}
	if rec := do(t, router, http.MethodPut, "/api/categories/notanumber", map[string]any{}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
	if rec := do(t, router, http.MethodPut, "/api/categories/9999", map[string]any{"quantity": 1}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestStockLifecycle(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/init", nil)

	rec := do(t, router, http.MethodPost, "/api/stock", map[string]any{
		"typeId": 1, "description": "6-pack", "quantity": 12,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	item := decode[model.StockItem](t, rec)
	if item.CheckedDate == "" || item.NextCheck == "" {
		t.Fatalf("dates not stamped: %+v", item)
	}

	key := map[string]any{"typeId": item.TypeID, "description": item.Description, "checkedDate": item.CheckedDate}

	body := map[string]any{"quantity": 8}
	for k, v := range key {
		body[k] = v
	}
	if rec := do(t, router, http.MethodPost, "/api/stock/quantity", body); rec.Code != http.StatusNoContent {
		t.Fatalf("quantity status = %d: %s", rec.Code, rec.Body.String())
	}

	if rec := do(t, router, http.MethodPost, "/api/stock/check", key); rec.Code != http.StatusNoContent {
		t.Fatalf("check status = %d: %s", rec.Code, rec.Body.String())
	}

	nextBody := map[string]any{"nextCheck": "2030-01-01"}
	for k, v := range key {
		nextBody[k] = v
	}
	if rec := do(t, router, http.MethodPost, "/api/stock/next-check", nextBody); rec.Code != http.StatusNoContent {
		t.Fatalf("next-check status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodGet, "/api/stock", nil)
	ledger := decode[model.StockLedger](t, rec)
	if len(ledger.Products) != 1 || ledger.Products[0].Quantity != 8 {
		t.Fatalf("ledger after edits: %+v", ledger.Products)
	}
	if ledger.Products[0].NextCheck != "2030-01-01" {
		t.Errorf("nextCheck = %s, want 2030-01-01", ledger.Products[0].NextCheck)
	}

	if rec := do(t, router, http.MethodPost, "/api/stock/delete", key); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, router, http.MethodPost, "/api/stock/delete", key); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestShoppingListFiltering(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/init", nil)

	rec := do(t, router, http.MethodGet, "/api/shopping-list", nil)
	filtered := decode[[]map[string]any](t, rec)

	rec = do(t, router, http.MethodGet, "/api/shopping-list?all=true", nil)
	all := decode[[]map[string]any](t, rec)

	// Freshly initialized: no stock, so every seeded category is a deficit.
	if len(all) == 0 {
		t.Fatal("expected shopping list entries for the seed catalog")
	}
	if len(filtered) > len(all) {
		t.Errorf("filtered list longer than full list: %d > %d", len(filtered), len(all))
	}
}

func TestExportImportOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/init", nil)
	do(t, router, http.MethodPost, "/api/stock", map[string]any{"typeId": 1, "description": "6-pack", "quantity": 3})

	rec := do(t, router, http.MethodGet, "/api/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "mystock-export-") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	exported := rec.Body.Bytes()

	// Reset, then restore from the export.
	if rec := do(t, router, http.MethodPost, "/api/reset", nil); rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(exported))
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rec2.Code, rec2.Body.String())
	}
	counts := decode[map[string]int](t, rec2)
	if counts["stockItems"] != 1 {
		t.Errorf("import counts = %v", counts)
	}

	rec = do(t, router, http.MethodGet, "/api/stock", nil)
	ledger := decode[model.StockLedger](t, rec)
	if len(ledger.Products) != 1 {
		t.Errorf("stock not restored: %+v", ledger.Products)
	}
}

func TestImportRejectsBadPayload(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/init", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{"stock": {}}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("import status = %d, want 400", rec.Code)
	}

	// Existing data survives the rejected import.
	if rec := do(t, router, http.MethodGet, "/api/categories", nil); rec.Code != http.StatusOK {
		t.Errorf("categories gone after rejected import: %d", rec.Code)
	}
}

func TestBackupEndpointsWithoutConfig(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/backup/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status endpoint = %d", rec.Code)
	}
	status := decode[map[string]any](t, rec)
	if status["state"] != "disabled" {
		t.Errorf("state = %v, want disabled", status["state"])
	}

	if rec := do(t, router, http.MethodPost, "/api/backup/now", nil); rec.Code != http.StatusConflict {
		t.Errorf("run-now without config = %d, want 409", rec.Code)
	}
}
