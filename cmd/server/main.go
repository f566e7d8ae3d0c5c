package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sakecatalog/backend/internal/catalog"
	"github.com/sakecatalog/backend/internal/config"
	"github.com/sakecatalog/backend/internal/geo"
	"github.com/sakecatalog/backend/internal/handler"
	"github.com/sakecatalog/backend/internal/logging"
	"github.com/sakecatalog/backend/internal/repository"
	"github.com/sakecatalog/backend/internal/service"
	"github.com/sakecatalog/backend/internal/storage"
	"github.com/sakecatalog/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo := openRepository(ctx, cfg)
	defer closeRepo()

	products, err := repo.List(ctx)
	if err != nil {
		logging.Fatal("failed to load products", "source", cfg.Catalog.Source, "error", err)
	}
	cat := catalog.New(products)
	taxonomy := geo.New(cfg.Geo.RegionSelect)
	slog.Info("catalog loaded",
		"source", cfg.Catalog.Source,
		"records", cat.Len(),
		"visible", len(cat.Visible()),
		"region_select", taxonomy.Policy(),
	)

	exportStore := storage.NewLocalStorage(cfg.Export.Dir, cfg.Export.URLPrefix)
	sessionService := service.NewSessionService(cat, taxonomy)
	documentService := service.NewDocumentService(sessionService, cat)
	exportService := service.NewExportService(service.ManifestRenderer{}, exportStore)
	adminProductService := service.NewAdminProductService(repo, cat)
	go sessionService.RunJanitor(ctx, time.Hour, service.SessionIdleTTL)

	sessionSecret := auth.SessionSecretBytes(cfg.Auth.SessionSecret)
	secureCookies := strings.HasPrefix(cfg.Server.FrontendURL, "https://")

	h := handler.New(repo, cfg.Server.FrontendURL)
	catalogHandler := handler.NewCatalogHandler(sessionService, taxonomy)
	selectionHandler := handler.NewSelectionHandler(sessionService)
	documentHandler := handler.NewDocumentHandler(documentService)
	exportHandler := handler.NewExportHandler(documentService, exportService)
	adminProductHandler := handler.NewAdminProductHandler(adminProductService)

	// 閲覧セッション（選択状態の持ち主）
	withSession := auth.EnsureSession(sessionSecret, secureCookies)

	// 管理者エンドポイント。AUTH_REQUIRED=false のときは開発ユーザーを管理者扱いにする
	wrapAdmin := func(next http.Handler) http.Handler {
		next = auth.AdminMiddleware(cfg.Auth.AdminUserIDs, !cfg.Auth.Required)(next)
		if cfg.Auth.Required {
			return auth.RequireAuth(sessionSecret)(next)
		}
		return auth.DevAuth(next)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	mux.Handle("GET /api/catalog", withSession(http.HandlerFunc(catalogHandler.Search)))
	mux.HandleFunc("GET /api/catalog/origins", catalogHandler.Origins)

	mux.Handle("GET /api/selection", withSession(http.HandlerFunc(selectionHandler.Get)))
	mux.Handle("POST /api/selection/{id}", withSession(http.HandlerFunc(selectionHandler.Toggle)))
	mux.Handle("DELETE /api/selection", withSession(http.HandlerFunc(selectionHandler.Clear)))

	mux.Handle("GET /api/documents/{kind}", withSession(http.HandlerFunc(documentHandler.Get)))

	mux.Handle("POST /api/exports", withSession(http.HandlerFunc(exportHandler.Start)))
	mux.HandleFunc("GET /api/exports/status", exportHandler.Status)

	mux.Handle("PATCH /api/admin/products/{id}/hidden", wrapAdmin(http.HandlerFunc(adminProductHandler.SetHidden)))
	mux.Handle("PUT /api/admin/products", wrapAdmin(http.HandlerFunc(adminProductHandler.Save)))

	// 書き出した成果物の配信
	mux.Handle("GET "+cfg.Export.URLPrefix+"/",
		http.StripPrefix(cfg.Export.URLPrefix, http.FileServer(http.Dir(exportStore.BaseDir()))))

	limiter := handler.NewRateLimiter(cfg.Server.RateLimitPerMinute)
	defer limiter.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(limiter.Middleware(mux)))),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	// 実行中のエクスポートは中断しない
	exportService.Wait()
}

// openRepository は CATALOG_SOURCE に応じたリポジトリと後始末関数を返す
func openRepository(ctx context.Context, cfg *config.Config) (repository.ProductRepository, func()) {
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		pool, err := repository.NewPool(ctx, cfg.Catalog.DatabaseURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		return repository.NewPgProductRepository(pool), pool.Close
	default:
		if _, err := os.Stat(cfg.Catalog.File); err != nil {
			logging.Fatal("catalog file not readable", "file", cfg.Catalog.File, "error", err)
		}
		return repository.NewJSONProductRepository(cfg.Catalog.File), func() {}
	}
}
