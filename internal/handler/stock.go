package handler

import (
	"net/http"

	"github.com/mystock-app/mystock/internal/inventory"
	"github.com/mystock-app/mystock/internal/model"
	"github.com/mystock-app/mystock/internal/view"
	"github.com/mystock-app/mystock/internal/websocket"
)

type StockHandler struct {
	svc    *inventory.Service
	notify saveNotifier
}

func NewStockHandler(svc *inventory.Service, hub *websocket.Hub) *StockHandler {
	return &StockHandler{svc: svc, notify: saveNotifier{hub: hub}}
}

func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.svc.Ledger(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

// Groups renders the current-stock view grouped by category.
func (h *StockHandler) Groups(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.Catalog(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	ledger, err := h.svc.Ledger(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.GroupStockByCategory(catalog, ledger))
}

// ShoppingList renders the per-category deficits. By default entries with
// nothing to buy are dropped; ?all=true returns every category.
func (h *StockHandler) ShoppingList(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.Catalog(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	ledger, err := h.svc.Ledger(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	entries := view.ComputeShoppingList(catalog, ledger)
	if r.URL.Query().Get("all") != "true" {
		entries = view.FilterShoppingList(entries)
	}
	writeJSON(w, http.StatusOK, entries)
}

type stockItemRequest struct {
	TypeID          int    `json:"typeId"`
	Description     string `json:"description"`
	Quantity        int    `json:"quantity"`
	OnlineStoreLink string `json:"onlineStoreLink"`
}

func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req stockItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	h.notify.saving()
	item, err := h.svc.AddStockItem(r.Context(), inventory.NewStockItem{
		TypeID:          req.TypeID,
		Description:     req.Description,
		Quantity:        req.Quantity,
		OnlineStoreLink: req.OnlineStoreLink,
	})
	h.notify.finish("stock", "created", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// itemKeyRequest addresses stock items by their composite key. Items are not
// individually identified, so every operation applies to all matches.
type itemKeyRequest struct {
	TypeID      int    `json:"typeId"`
	Description string `json:"description"`
	CheckedDate string `json:"checkedDate"`
}

func (r itemKeyRequest) key() model.ItemKey {
	return model.ItemKey{TypeID: r.TypeID, Description: r.Description, CheckedDate: r.CheckedDate}
}

func (h *StockHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		itemKeyRequest
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	h.notify.saving()
	err := h.svc.UpdateItemQuantity(r.Context(), req.key(), req.Quantity)
	h.notify.finish("stock", "updated", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StockHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req itemKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	h.notify.saving()
	err := h.svc.CheckItem(r.Context(), req.key())
	h.notify.finish("stock", "updated", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StockHandler) SetNextCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		itemKeyRequest
		NextCheck string `json:"nextCheck"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	h.notify.saving()
	err := h.svc.SetNextCheck(r.Context(), req.key(), req.NextCheck)
	h.notify.finish("stock", "updated", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req itemKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	h.notify.saving()
	err := h.svc.DeleteItem(r.Context(), req.key())
	h.notify.finish("stock", "deleted", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
