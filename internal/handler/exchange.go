package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mystock-app/mystock/internal/docstore"
	"github.com/mystock-app/mystock/internal/exchange"
	"github.com/mystock-app/mystock/internal/websocket"
)

// Import payloads are small; cap the body well above any realistic size.
const maxImportBytes = 8 << 20

// ExchangeHandler serves the export download and the import upload.
type ExchangeHandler struct {
	store  *docstore.Store
	notify saveNotifier
}

func NewExchangeHandler(store *docstore.Store, hub *websocket.Hub) *ExchangeHandler {
	return &ExchangeHandler{store: store, notify: saveNotifier{hub: hub}}
}

// Export streams the combined document as a JSON download.
func (h *ExchangeHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := exchange.Export(r.Context(), h.store)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exchange.Filename()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import validates the uploaded document and replaces the store contents.
// Validation happens before anything is deleted, so a rejected payload
// leaves existing data untouched.
func (h *ExchangeHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	if _, err := exchange.Parse(data); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.notify.saving()
	doc, err := exchange.Import(r.Context(), h.store, data)
	h.notify.finish("inventory", "imported", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"categories": len(doc.ProductCategories.BaseCategories),
		"stockItems": len(doc.Stock.Products),
	})
}
