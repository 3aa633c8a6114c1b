package exchange

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mystock-app/mystock/internal/docstore"
	"github.com/mystock-app/mystock/internal/model"
)

func newTestStore(t *testing.T) *docstore.Store {
	t.Helper()
	backend, err := docstore.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	return docstore.New(backend)
}

func seed(t *testing.T, store *docstore.Store) {
	t.Helper()
	ctx := context.Background()
	catalog := model.CategoryCatalog{BaseCategories: []model.Category{
		{ID: 1, ProductType: "Water", Quantity: 6, UsualExpiryCheckDays: 365},
		{ID: 2, ProductType: "Rice", Quantity: 4, UsualExpiryCheckDays: 365},
	}}
	ledger := model.StockLedger{Products: []model.StockItem{
		{TypeID: 1, Description: "6-pack", Quantity: 3, CheckedDate: "2026-08-01", NextCheck: "2027-08-01"},
	}}
	if err := store.Initialize(ctx, catalog, ledger); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestExportShape(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	data, err := Export(context.Background(), store)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// Exports use 2-space indentation, unlike the 4-space documents.
	if !strings.HasPrefix(string(data), "{\n  \"productCategories\"") {
		t.Errorf("unexpected export prefix: %q", string(data)[:40])
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := doc["productCategories"]; !ok {
		t.Error("export missing productCategories")
	}
	if _, ok := doc["stock"]; !ok {
		t.Error("export missing stock")
	}
}

func TestExportUninitializedStore(t *testing.T) {
	store := newTestStore(t)
	if _, err := Export(context.Background(), store); err == nil {
		t.Error("export of an empty store must fail, not fabricate data")
	}
}

func TestFilename(t *testing.T) {
	name := Filename()
	if !strings.HasPrefix(name, "mystock-export-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected filename %q", name)
	}
}

func TestImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	seed(t, src)
	data, err := Export(context.Background(), src)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newTestStore(t)
	doc, err := Import(context.Background(), dst, data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(doc.ProductCategories.BaseCategories) != 2 || len(doc.Stock.Products) != 1 {
		t.Errorf("import returned wrong counts: %d categories, %d items",
			len(doc.ProductCategories.BaseCategories), len(doc.Stock.Products))
	}

	catalog, err := dst.ReadCategories(context.Background())
	if err != nil {
		t.Fatalf("read after import: %v", err)
	}
	if catalog.BaseCategories[0].ProductType != "Water" {
		t.Errorf("imported catalog differs: %+v", catalog.BaseCategories[0])
	}
	if catalog.LastUpdate == "" {
		t.Error("import must stamp lastUpdate")
	}
}

func TestImportReplacesExistingData(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	payload := `{
		"productCategories": {"lastUpdate": "2020-01-01", "baseCategories": [
			{"id": 9, "productType": "Candles", "quantity": 2, "usualExpiryCheckDays": 730}
		]},
		"stock": {"products": []}
	}`
	if _, err := Import(context.Background(), store, []byte(payload)); err != nil {
		t.Fatalf("import: %v", err)
	}

	catalog, _ := store.ReadCategories(context.Background())
	if len(catalog.BaseCategories) != 1 || catalog.BaseCategories[0].ID != 9 {
		t.Errorf("old data survived the import: %+v", catalog.BaseCategories)
	}
	ledger, _ := store.ReadStock(context.Background())
	if len(ledger.Products) != 0 {
		t.Error("old stock survived the import")
	}
}

func TestImportRejectsInvalidPayloadWithoutTouchingStore(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	bad := []string{
		`not json at all`,
		`{"stock": {"products": []}}`,                                  // no categories section
		`{"productCategories": {"baseCategories": []}}`,                // no stock section
		`{"productCategories": {}, "stock": {"products": []}}`,         // categories present but empty shape
		`{"productCategories": {"baseCategories": []}, "stock": {}}`,   // stock present but empty shape
		`{"productCategories": {"baseCategories": [{"id": 1, "productType": "A", "quantity": -3, "usualExpiryCheckDays": 30}]}, "stock": {"products": []}}`,
	}

	for _, payload := range bad {
		if _, err := Import(context.Background(), store, []byte(payload)); err == nil {
			t.Errorf("payload accepted but should fail: %s", payload)
		}
		// The existing documents must be untouched after a rejected import.
		catalog, err := store.ReadCategories(context.Background())
		if err != nil || len(catalog.BaseCategories) != 2 {
			t.Fatalf("store damaged by rejected import %q: %v", payload, err)
		}
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte(`{"productCategories":{"baseCategories":[]},"stock":{"products":[]}}`)

	sealed, err := Encrypt(plaintext, "correct horse battery staple")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if len(sealed) <= len(plaintext) {
		t.Error("sealed payload must carry salt, nonce and tag overhead")
	}

	opened, err := Decrypt(sealed, "correct horse battery staple")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if string(opened) != string(plaintext) {
		t.Error("round trip changed the payload")
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	sealed, err := Encrypt([]byte("secret"), "right")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := Decrypt(sealed, "wrong"); err == nil {
		t.Error("wrong passphrase must fail authentication")
	}
}

func TestDecryptTamperedPayload(t *testing.T) {
	sealed, err := Encrypt([]byte("secret"), "pw")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff
	if _, err := Decrypt(sealed, "pw"); err == nil {
		t.Error("tampered ciphertext must fail authentication")
	}
}

func TestDecryptTruncatedPayload(t *testing.T) {
	if _, err := Decrypt([]byte("short"), "pw"); err == nil {
		t.Error("truncated payload must be rejected")
	}
}

func TestEncryptUniqueSalts(t *testing.T) {
	a, err := Encrypt([]byte("same"), "pw")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := Encrypt([]byte("same"), "pw")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if string(a[:saltSize]) == string(b[:saltSize]) {
		t.Error("each encryption must draw a fresh salt")
	}
}
