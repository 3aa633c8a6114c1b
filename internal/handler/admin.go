package handler

import (
	"net/http"

	"github.com/mystock-app/mystock/internal/docstore"
	"github.com/mystock-app/mystock/internal/inventory"
	"github.com/mystock-app/mystock/internal/model"
	"github.com/mystock-app/mystock/internal/websocket"
)

// AdminHandler covers first-run state, initialization and reset.
type AdminHandler struct {
	svc    *inventory.Service
	store  *docstore.Store
	notify saveNotifier
}

func NewAdminHandler(svc *inventory.Service, store *docstore.Store, hub *websocket.Hub) *AdminHandler {
	return &AdminHandler{svc: svc, store: store, notify: saveNotifier{hub: hub}}
}

type stateResponse struct {
	CategoriesExist bool                   `json:"categoriesExist"`
	StockExists     bool                   `json:"stockExists"`
	Categories      *model.CategoryCatalog `json:"categories,omitempty"`
	Stock           *model.StockLedger     `json:"stock,omitempty"`
}

// State reports whether each document exists and, when present, its
// contents. The first-run screen keys off the existence flags.
func (h *AdminHandler) State(w http.ResponseWriter, r *http.Request) {
	resp := stateResponse{
		CategoriesExist: h.store.CategoriesExist(r.Context()),
		StockExists:     h.store.StockExists(r.Context()),
	}

	if resp.CategoriesExist {
		catalog, err := h.store.ReadCategories(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp.Categories = &catalog
	}
	if resp.StockExists {
		ledger, err := h.store.ReadStock(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp.Stock = &ledger
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	h.notify.saving()
	err := h.svc.Initialize(r.Context())
	h.notify.finish("inventory", "initialized", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "initialized"})
}

func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.notify.saving()
	err := h.svc.Reset(r.Context())
	h.notify.finish("inventory", "reset", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
