package handler

import (
	"net/http"

	"github.com/mystock-app/mystock/internal/inventory"
	"github.com/mystock-app/mystock/internal/websocket"
)

type CategoryHandler struct {
	svc    *inventory.Service
	notify saveNotifier
}

func NewCategoryHandler(svc *inventory.Service, hub *websocket.Hub) *CategoryHandler {
	return &CategoryHandler{svc: svc, notify: saveNotifier{hub: hub}}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.Catalog(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

type categoryRequest struct {
	ProductType          string `json:"productType"`
	Description          string `json:"description"`
	Quantity             int    `json:"quantity"`
	UsualExpiryCheckDays *int   `json:"usualExpiryCheckDays"`
	DefaultUnit          string `json:"defaultUnit"`
	OnlineShopLink       string `json:"onlineShopLink"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	h.notify.saving()
	cat, err := h.svc.AddCategory(r.Context(), inventory.NewCategory{
		ProductType:          req.ProductType,
		Description:          req.Description,
		Quantity:             req.Quantity,
		UsualExpiryCheckDays: req.UsualExpiryCheckDays,
		DefaultUnit:          req.DefaultUnit,
		OnlineShopLink:       req.OnlineShopLink,
	})
	h.notify.finish("category", "created", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

type categoryUpdateRequest struct {
	ProductType          *string `json:"productType"`
	Description          *string `json:"description"`
	Quantity             *int    `json:"quantity"`
	UsualExpiryCheckDays *int    `json:"usualExpiryCheckDays"`
	DefaultUnit          *string `json:"defaultUnit"`
	OnlineShopLink       *string `json:"onlineShopLink"`
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req categoryUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	h.notify.saving()
	cat, err := h.svc.UpdateCategory(r.Context(), id, inventory.CategoryUpdate{
		ProductType:          req.ProductType,
		Description:          req.Description,
		Quantity:             req.Quantity,
		UsualExpiryCheckDays: req.UsualExpiryCheckDays,
		DefaultUnit:          req.DefaultUnit,
		OnlineShopLink:       req.OnlineShopLink,
	})
	h.notify.finish("category", "updated", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	// A null or absent quantityOverride clears the override.
	var req struct {
		QuantityOverride *int `json:"quantityOverride"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	h.notify.saving()
	cat, err := h.svc.SetQuantityOverride(r.Context(), id, req.QuantityOverride)
	h.notify.finish("category", "updated", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	h.notify.saving()
	err = h.svc.DeleteCategory(r.Context(), id)
	h.notify.finish("category", "deleted", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
