// Package handler contains the HTTP handlers for the JSON API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mystock-app/mystock/internal/docstore"
	"github.com/mystock-app/mystock/internal/inventory"
	"github.com/mystock-app/mystock/internal/websocket"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps service and store errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var parseErr *docstore.ParseError
	switch {
	case errors.Is(err, inventory.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, inventory.ErrCategoryNotFound),
		errors.Is(err, inventory.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, inventory.ErrAlreadyInitialized):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, docstore.ErrNotFound):
		writeError(w, http.StatusNotFound, "inventory not initialized")
	case errors.As(err, &parseErr):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// saveNotifier drives the save-status feed around a mutating operation.
type saveNotifier struct {
	hub *websocket.Hub
}

func (n saveNotifier) saving() {
	n.hub.Broadcast(websocket.SaveStatusEvent(websocket.StatusSaving, ""))
}

// finish broadcasts the terminal save status, plus the entity change event
// on success.
func (n saveNotifier) finish(entity, action string, err error) {
	if err != nil {
		n.hub.Broadcast(websocket.SaveStatusEvent(websocket.StatusError, err.Error()))
		return
	}
	n.hub.Broadcast(websocket.SaveStatusEvent(websocket.StatusSaved, ""))
	n.hub.Broadcast(websocket.ChangeEvent(entity, action))
}
