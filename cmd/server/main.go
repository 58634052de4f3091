package main

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hayashilab/sevenq/internal/api"
	"github.com/hayashilab/sevenq/internal/config"
	"github.com/hayashilab/sevenq/internal/services"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	catalog := services.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = services.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			logger.Fatal("load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
		}
	}

	router := api.NewRouter(catalog, services.NewExportService(), logger)

	mux := http.NewServeMux()
	mux.Handle("/api/", router.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":        true,
			"name":      "sevenq API",
			"questions": catalog.Len(),
		})
	})
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	logger.Info("server listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
