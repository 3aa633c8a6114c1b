// Package server wires the store, services and handlers into an HTTP router.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mystock-app/mystock/internal/backup"
	"github.com/mystock-app/mystock/internal/docstore"
	"github.com/mystock-app/mystock/internal/exchange"
	"github.com/mystock-app/mystock/internal/handler"
	"github.com/mystock-app/mystock/internal/inventory"
	"github.com/mystock-app/mystock/internal/middleware"
	ws "github.com/mystock-app/mystock/internal/websocket"
)

type Server struct {
	store     *docstore.Store
	hub       *ws.Hub
	adminH    *handler.AdminHandler
	categoryH *handler.CategoryHandler
	stockH    *handler.StockHandler
	exchangeH *handler.ExchangeHandler
	backupH   *handler.BackupHandler
	backupMgr *backup.Manager
	logger    *slog.Logger
}

func New(store *docstore.Store, backupCfg backup.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	svc := inventory.New(store, logger.With("component", "inventory"))

	exporter := backup.ExporterFunc(func(ctx context.Context) ([]byte, error) {
		return exchange.Export(ctx, store)
	})
	backupMgr := backup.NewManager(backupCfg, exporter, logger.With("component", "backup"), func(s backup.Status) {
		hub.Broadcast(ws.Event{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(s.State),
			Detail: s.Error,
		})
	})

	return &Server{
		store:     store,
		hub:       hub,
		adminH:    handler.NewAdminHandler(svc, store, hub),
		categoryH: handler.NewCategoryHandler(svc, hub),
		stockH:    handler.NewStockHandler(svc, hub),
		exchangeH: handler.NewExchangeHandler(store, hub),
		backupH:   handler.NewBackupHandler(backupMgr),
		backupMgr: backupMgr,
		logger:    logger,
	}
}

// BackupManager returns the backup manager for lifecycle control.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupMgr
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /api/state", s.adminH.State)
	mux.HandleFunc("POST /api/init", s.adminH.Initialize)
	mux.HandleFunc("POST /api/reset", s.adminH.Reset)

	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("POST /api/categories", s.categoryH.Create)
	mux.HandleFunc("PUT /api/categories/{id}", s.categoryH.Update)
	mux.HandleFunc("PUT /api/categories/{id}/override", s.categoryH.SetOverride)
	mux.HandleFunc("DELETE /api/categories/{id}", s.categoryH.Delete)

	mux.HandleFunc("GET /api/stock", s.stockH.List)
	mux.HandleFunc("POST /api/stock", s.stockH.Create)
	mux.HandleFunc("GET /api/stock/groups", s.stockH.Groups)
	mux.HandleFunc("POST /api/stock/quantity", s.stockH.UpdateQuantity)
	mux.HandleFunc("POST /api/stock/check", s.stockH.Check)
	mux.HandleFunc("POST /api/stock/next-check", s.stockH.SetNextCheck)
	mux.HandleFunc("POST /api/stock/delete", s.stockH.Delete)

	mux.HandleFunc("GET /api/shopping-list", s.stockH.ShoppingList)

	mux.HandleFunc("GET /api/export", s.exchangeH.Export)
	mux.HandleFunc("POST /api/import", s.exchangeH.Import)

	mux.HandleFunc("GET /api/backup/status", s.backupH.Status)
	mux.HandleFunc("POST /api/backup/now", s.backupH.RunNow)

	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
